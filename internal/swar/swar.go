// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package swar implements word-at-a-time searches for the bytes that end or
// interrupt a run of plain JSON string content.
//
// Each 8-byte word is loaded as a little-endian uint64 and tested for the
// target bytes in parallel. When the CPU has wide vector units, the search
// unrolls four words per iteration. The results of every path are identical;
// only the stride differs.
package swar

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

const (
	lsb = 0x0101010101010101
	msb = 0x8080808080808080

	quotes     = lsb * '"'
	backslashs = lsb * '\\'
)

// wide reports whether to use the unrolled 32-byte stride.
var wide = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// IndexString returns the offset of the first byte in b that is a quotation
// mark, a reverse solidus, or a control character (< 0x20), or -1 if b
// contains none of them.
func IndexString(b []byte) int { return index(b, false) }

// IndexStringOrHigh is like IndexString, but also stops at any byte with
// its high bit set (>= 0x80).
func IndexStringOrHigh(b []byte) int { return index(b, true) }

func index(b []byte, high bool) int {
	i := 0
	if wide {
		for ; i+32 <= len(b); i += 32 {
			m0 := mask(binary.LittleEndian.Uint64(b[i:]), high)
			m1 := mask(binary.LittleEndian.Uint64(b[i+8:]), high)
			m2 := mask(binary.LittleEndian.Uint64(b[i+16:]), high)
			m3 := mask(binary.LittleEndian.Uint64(b[i+24:]), high)
			if m0|m1|m2|m3 == 0 {
				continue
			}
			switch {
			case m0 != 0:
				return i + first(m0)
			case m1 != 0:
				return i + 8 + first(m1)
			case m2 != 0:
				return i + 16 + first(m2)
			default:
				return i + 24 + first(m3)
			}
		}
	}
	for ; i+8 <= len(b); i += 8 {
		if m := mask(binary.LittleEndian.Uint64(b[i:]), high); m != 0 {
			return i + first(m)
		}
	}
	for ; i < len(b); i++ {
		if c := b[i]; c == '"' || c == '\\' || c < ' ' || (high && c >= 0x80) {
			return i
		}
	}
	return -1
}

// mask returns a word with the high bit of each byte lane set where x has a
// target byte. Lanes above the lowest match may hold false positives from
// borrow propagation, so only the lowest set lane is meaningful.
func mask(x uint64, high bool) uint64 {
	m := zero(x^quotes) | zero(x^backslashs) | less(x, ' ')
	if high {
		m |= x & msb
	}
	return m
}

// zero marks the zero bytes of x.
func zero(x uint64) uint64 { return (x - lsb) & ^x & msb }

// less marks the bytes of x less than n. Precondition: n <= 0x80.
func less(x uint64, n byte) uint64 { return (x - lsb*uint64(n)) & ^x & msb }

// first returns the lane index of the lowest set lane in m.
func first(m uint64) int { return bits.TrailingZeros64(m) >> 3 }
