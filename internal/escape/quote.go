// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "unicode/utf16"

// A Policy selects which characters must be escaped when writing a JSON
// string. A policy is fixed for the duration of a single write.
type Policy byte

// Constants defining the valid Policy values.
const (
	Default  Policy = iota // quotation mark, reverse solidus, and controls
	HTML                   // Default plus characters significant to HTML
	NonASCII               // Default plus every code point above U+007F
)

var policyStr = [...]string{
	Default:  "default",
	HTML:     "html",
	NonASCII: "non-ascii",
}

func (p Policy) String() string {
	if int(p) >= len(policyStr) {
		return "invalid policy"
	}
	return policyStr[p]
}

// Hex is the digit alphabet used for \uXXXX escapes.
const Hex = "0123456789abcdef"

// Escape actions for ASCII code points. A zero entry means the character is
// written as-is, 'u' means it is written as \u00XX, and any other value is
// the letter of a two-character escape (e.g., 'n' for "\n").
type table [128]byte

var controls = table{
	0x00: 'u', 0x01: 'u', 0x02: 'u', 0x03: 'u', 0x04: 'u', 0x05: 'u', 0x06: 'u', 0x07: 'u',
	'\b': 'b', '\t': 't', '\n': 'n', 0x0b: 'u', '\f': 'f', '\r': 'r', 0x0e: 'u', 0x0f: 'u',
	0x10: 'u', 0x11: 'u', 0x12: 'u', 0x13: 'u', 0x14: 'u', 0x15: 'u', 0x16: 'u', 0x17: 'u',
	0x18: 'u', 0x19: 'u', 0x1a: 'u', 0x1b: 'u', 0x1c: 'u', 0x1d: 'u', 0x1e: 'u', 0x1f: 'u',
}

// htmlUnsafe is the fixed set of ASCII characters escaped under the HTML
// policy in addition to the controls. The quotation mark is included so that
// it is written as \u0022 rather than \".
var htmlUnsafe = [...]byte{'"', '&', '\'', '+', '<', '>', '`'}

var tables = func() [3]table {
	var t [3]table
	for p := range t {
		t[p] = controls
		t[p]['"'] = '"'
		t[p]['\\'] = '\\'
	}
	for _, c := range htmlUnsafe {
		t[HTML][c] = 'u'
	}
	return t
}()

// Action reports how the ASCII character c is written under p.
// It returns 0 if c is written as-is.
// Precondition: c < 0x80.
func (p Policy) Action(c byte) byte { return tables[p][c] }

// Needs reports whether the code point r must be escaped under p.
func (p Policy) Needs(r rune) bool {
	if r < 0x80 {
		return tables[p][r] != 0
	}
	switch p {
	case NonASCII:
		return true
	case HTML:
		return r == '\u2028' || r == '\u2029'
	}
	return false
}

// A symbol is one of the supported code unit types.
type symbol interface{ byte | uint16 }

// AppendRune appends the escaped form of r under p to dst.
// Code points above U+FFFF are written as a surrogate pair of \u escapes.
// Precondition: p.Needs(r).
func AppendRune[S symbol](dst []S, r rune, p Policy) []S {
	if r < 0x80 {
		if a := tables[p][r]; a != 'u' {
			return append(dst, '\\', S(a))
		}
		return AppendHex4(dst, uint16(r))
	}
	if r > 0xffff {
		hi, lo := utf16.EncodeRune(r)
		dst = AppendHex4(dst, uint16(hi))
		return AppendHex4(dst, uint16(lo))
	}
	return AppendHex4(dst, uint16(r))
}

// AppendHex4 appends the six-character escape \uXXXX for v to dst.
func AppendHex4[S symbol](dst []S, v uint16) []S {
	return append(dst, '\\', 'u',
		S(Hex[v>>12]), S(Hex[v>>8&15]), S(Hex[v>>4&15]), S(Hex[v&15]))
}
