// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"encoding/binary"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/creachadair/jcodec/internal/escape"
	"github.com/creachadair/jcodec/internal/swar"

	"go4.org/mem"
)

// Symbol is the constraint satisfied by the supported symbol widths: byte
// for UTF-8 input and uint16 for UTF-16 code units. Every scanning, escaping,
// and decoding operation in this package is written once over Symbol.
type Symbol interface{ byte | uint16 }

// SequenceValidity reports the outcome of decoding one scalar value from the
// front of a buffer.
type SequenceValidity byte

// Constants defining the valid SequenceValidity values.
const (
	WellFormed SequenceValidity = iota // a complete, valid sequence
	Invalid                            // malformed input
	Incomplete                         // a valid prefix cut off by the end of the buffer
)

func (v SequenceValidity) String() string {
	switch v {
	case WellFormed:
		return "well-formed"
	case Invalid:
		return "invalid"
	case Incomplete:
		return "incomplete"
	}
	return "unknown validity"
}

// A codec supplies the operations whose details depend on symbol width.
type codec[S Symbol] interface {
	// indexString returns the offset of the first quotation mark, reverse
	// solidus, or control character in src, or -1.
	indexString(src []S) int

	// indexBackslash returns the offset of the first reverse solidus in src, or -1.
	indexBackslash(src []S) int

	// indexEscape returns the offset of the first unit of src that must be
	// escaped under p, or -1.
	indexEscape(src []S, p EscapePolicy) int

	// escapeSize reports how many units one \uXXXX escape with value v
	// decodes to. Each half of a surrogate pair is counted separately.
	escapeSize(v rune) int

	// putRune encodes r at the front of dst and reports the units written.
	putRune(dst []S, r rune) int

	// decodeRune decodes the scalar or unit at the front of src, which must
	// not be empty.
	decodeRune(src []S) (rune, int, SequenceValidity)

	// partialTail returns the offset of a sequence cut short at the end of
	// src, or len(src) if there is none.
	partialTail(src []S) int

	// string converts decoded units to a Go string.
	string(src []S) string

	// hash and equal key the unescape cache by the raw content of a string.
	hash(src []S) uint64
	equal(src []S, raw string) bool
	key(src []S) string
}

// codecFor returns the codec for the symbol width S.
func codecFor[S Symbol]() codec[S] {
	var z S
	if _, ok := any(z).(byte); ok {
		return any(utf8Codec{}).(codec[S])
	}
	return any(utf16Codec{}).(codec[S])
}

// utf8Codec implements codec[byte].
type utf8Codec struct{}

func (utf8Codec) indexString(src []byte) int { return swar.IndexString(src) }

func (utf8Codec) indexBackslash(src []byte) int { return mem.IndexByte(mem.B(src), '\\') }

func (utf8Codec) indexEscape(src []byte, p EscapePolicy) int {
	switch p {
	case EscapeDefault:
		return swar.IndexString(src)
	case EscapeNonASCII:
		return swar.IndexStringOrHigh(src)
	}
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c < utf8.RuneSelf {
			if p.Action(c) != 0 {
				return i
			}
		} else if c == 0xe2 && i+2 < len(src) && src[i+1] == 0x80 && (src[i+2] == 0xa8 || src[i+2] == 0xa9) {
			return i // U+2028 or U+2029
		}
	}
	return -1
}

func (utf8Codec) escapeSize(v rune) int {
	if escape.IsHighSurrogate(v) || escape.IsLowSurrogate(v) {
		return 2 // a complete pair encodes to 4 bytes
	}
	return utf8.RuneLen(v)
}

func (utf8Codec) putRune(dst []byte, r rune) int { return utf8.EncodeRune(dst, r) }

func (utf8Codec) decodeRune(src []byte) (rune, int, SequenceValidity) {
	if c := src[0]; c < utf8.RuneSelf {
		return rune(c), 1, WellFormed
	}
	if !utf8.FullRune(src) {
		return utf8.RuneError, 0, Incomplete
	}
	r, n := utf8.DecodeRune(src)
	if r == utf8.RuneError && n == 1 {
		return r, n, Invalid
	}
	return r, n, WellFormed
}

func (utf8Codec) partialTail(src []byte) int {
	for k := len(src) - 1; k >= 0 && k > len(src)-utf8.UTFMax; k-- {
		if utf8.RuneStart(src[k]) {
			if src[k] >= utf8.RuneSelf && !utf8.FullRune(src[k:]) {
				return k
			}
			break
		}
	}
	return len(src)
}

func (utf8Codec) string(src []byte) string { return string(src) }

func (utf8Codec) hash(src []byte) uint64 { return xxhash.Sum64(src) }

func (utf8Codec) equal(src []byte, raw string) bool { return string(src) == raw }

func (utf8Codec) key(src []byte) string { return string(src) }

// utf16Codec implements codec[uint16].
type utf16Codec struct{}

func (utf16Codec) indexString(src []uint16) int {
	for i, c := range src {
		if c == '"' || c == '\\' || c < ' ' {
			return i
		}
	}
	return -1
}

func (utf16Codec) indexBackslash(src []uint16) int { return slices.Index(src, '\\') }

func (utf16Codec) indexEscape(src []uint16, p EscapePolicy) int {
	for i, c := range src {
		if c < utf8.RuneSelf {
			if p.Action(byte(c)) != 0 {
				return i
			}
		} else if p.Needs(rune(c)) {
			return i
		}
	}
	return -1
}

func (utf16Codec) escapeSize(rune) int { return 1 }

func (utf16Codec) putRune(dst []uint16, r rune) int {
	if r > 0xffff {
		hi, lo := utf16.EncodeRune(r)
		dst[0], dst[1] = uint16(hi), uint16(lo)
		return 2
	}
	dst[0] = uint16(r)
	return 1
}

// decodeRune reports single code units. Escaping UTF-16 works unit by unit:
// a surrogate pair becomes two \u escapes, which is the same output as
// splitting the scalar it encodes.
func (utf16Codec) decodeRune(src []uint16) (rune, int, SequenceValidity) {
	return rune(src[0]), 1, WellFormed
}

// Each unit is escaped on its own, so no unit depends on the next.
func (utf16Codec) partialTail(src []uint16) int { return len(src) }

func (utf16Codec) string(src []uint16) string {
	buf := make([]byte, 0, len(src)+len(src)/2)
	for i := 0; i < len(src); i++ {
		r := rune(src[i])
		if escape.IsHighSurrogate(r) && i+1 < len(src) && escape.IsLowSurrogate(rune(src[i+1])) {
			r = utf16.DecodeRune(r, rune(src[i+1]))
			i++
		}
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}

func (utf16Codec) hash(src []uint16) uint64 {
	var d xxhash.Digest
	d.Reset()
	var chunk [64]byte
	for len(src) != 0 {
		n := min(len(src), len(chunk)/2)
		for i, c := range src[:n] {
			binary.LittleEndian.PutUint16(chunk[2*i:], c)
		}
		d.Write(chunk[:2*n])
		src = src[n:]
	}
	return d.Sum64()
}

func (utf16Codec) equal(src []uint16, raw string) bool {
	if len(raw) != 2*len(src) {
		return false
	}
	for i, c := range src {
		if raw[2*i] != byte(c) || raw[2*i+1] != byte(c>>8) {
			return false
		}
	}
	return true
}

func (utf16Codec) key(src []uint16) string {
	buf := make([]byte, 2*len(src))
	for i, c := range src {
		binary.LittleEndian.PutUint16(buf[2*i:], c)
	}
	return string(buf)
}
