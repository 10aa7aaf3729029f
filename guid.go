// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// ParseGUID parses text as a GUID in either the 32-digit form
//
//	00112233445566778899aabbccddeeff
//
// or the 36-character hyphenated form
//
//	00112233-4455-6677-8899-aabbccddeeff
//
// Hex digits may be upper or lower case. Any other length, a misplaced
// hyphen, or a non-hex digit is an error of kind InvalidGuidPattern.
func ParseGUID[S Symbol](text []S) (uuid.UUID, error) {
	g, f := parseGUID(text)
	if !f.ok() {
		return uuid.Nil, guidError(f, text)
	}
	return g, nil
}

func guidError[S Symbol](f fault, text []S) error {
	return syntaxErrorf(f.kind, f.pos, "invalid GUID %q", codecFor[S]().string(text))
}

func parseGUID[S Symbol](text []S) (uuid.UUID, fault) {
	if n := len(text); n != 32 && n != 36 {
		return uuid.Nil, fault{InvalidGuidPattern, 0}
	}
	var buf [36]byte
	for i, c := range text {
		if c >= 0x80 {
			return uuid.Nil, fault{InvalidGuidPattern, i}
		}
		buf[i] = byte(c)
	}
	g, err := uuid.ParseBytes(buf[:len(text)])
	if err != nil {
		return uuid.Nil, fault{InvalidGuidPattern, 0}
	}
	return g, fault{}
}

// GUIDLayout returns the 16-byte memory layout of g in which the first three
// fields (of 4, 2, and 2 bytes) are stored in the byte order of the host and
// the remaining 8 bytes in text order. On little-endian hosts this is the
// layout used by COM and .NET.
func GUIDLayout(g uuid.UUID) [16]byte {
	var out [16]byte
	binary.NativeEndian.PutUint32(out[0:], binary.BigEndian.Uint32(g[0:]))
	binary.NativeEndian.PutUint16(out[4:], binary.BigEndian.Uint16(g[4:]))
	binary.NativeEndian.PutUint16(out[6:], binary.BigEndian.Uint16(g[6:]))
	copy(out[8:], g[8:])
	return out
}

// ReadGUID reads a string literal containing a GUID.
func (r *Reader[S]) ReadGUID() (uuid.UUID, error) {
	var g uuid.UUID
	err := r.withDecoded(func(text []S, base int) error {
		var f fault
		if g, f = parseGUID(text); !f.ok() {
			return guidError(f.shift(base), text)
		}
		return nil
	})
	return g, err
}
