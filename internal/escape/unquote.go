// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape defines the character tables shared by the JSON string
// escaper and unescaper.
package escape

// Unescape maps the character following a reverse solidus to the character
// it denotes. A zero entry marks an invalid escape. The entry for 'u' is
// non-zero but the caller must decode the four hex digits that follow.
var Unescape = [128]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'u':  'u',
}

// hexValue maps ASCII hex digits to their values, and all else to -1.
var hexValue = func() (t [128]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := '0'; i <= '9'; i++ {
		t[i] = int8(i - '0')
	}
	for i := 'a'; i <= 'f'; i++ {
		t[i] = int8(i - 'a' + 10)
		t[i-'a'+'A'] = int8(i - 'a' + 10)
	}
	return
}()

// ParseHex4 decodes the four hex digits at the front of src.
// It reports false if src is shorter than 4 or any digit is invalid.
func ParseHex4[S symbol](src []S) (rune, bool) {
	if len(src) < 4 {
		return 0, false
	}
	var v rune
	for _, c := range src[:4] {
		if c >= 0x80 || hexValue[int(c)] < 0 {
			return 0, false
		}
		v = v<<4 | rune(hexValue[int(c)])
	}
	return v, true
}

// IsHighSurrogate reports whether r is in the range U+D800..U+DBFF.
func IsHighSurrogate(r rune) bool { return r >= 0xd800 && r < 0xdc00 }

// IsLowSurrogate reports whether r is in the range U+DC00..U+DFFF.
func IsLowSurrogate(r rune) bool { return r >= 0xdc00 && r < 0xe000 }
