// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"fmt"
	"unicode/utf16"

	"github.com/creachadair/jcodec/internal/escape"
)

// unescape decodes src, the raw content of a string literal without its
// quotation marks, into dst and reports the number of units written.
// Fault offsets are relative to src.
//
// The caller sizes dst from the escaped count reported by scanString; a
// correct count is len(src) - escaped, and unescape writes exactly that many
// units for any src that scanString accepted.
func unescape[S Symbol](c codec[S], dst, src []S) (int, fault) {
	var n, i int
	for {
		// n counts the units due, even past the end of a short dst.
		j := c.indexBackslash(src[i:])
		if j < 0 {
			copy(dst[n:], src[i:])
			return n + len(src) - i, fault{}
		}
		copy(dst[n:], src[i:i+j])
		n += j
		i += j

		// Decode the escape at src[i]. Any character other than the ones in the
		// table is an error; there is no pass-through of unknown escapes.
		if i+1 >= len(src) {
			return n, fault{InvalidEscape, i}
		}
		e := src[i+1]
		if e != 'u' {
			if e >= 0x80 || escape.Unescape[int(e)] == 0 {
				return n, fault{InvalidEscape, i}
			}
			dst[n] = S(escape.Unescape[int(e)])
			n++
			i += 2
			continue
		}

		r, ok := escape.ParseHex4(src[i+2:])
		if !ok {
			return n, fault{InvalidEscape, i}
		}
		switch {
		case escape.IsHighSurrogate(r):
			// The next escape must be the low half of the pair.
			if i+12 > len(src) || src[i+6] != '\\' || src[i+7] != 'u' {
				return n, fault{InvalidSurrogatePair, i}
			}
			lo, ok := escape.ParseHex4(src[i+8:])
			if !ok {
				return n, fault{InvalidEscape, i + 6}
			} else if !escape.IsLowSurrogate(lo) {
				return n, fault{InvalidSurrogatePair, i}
			}
			// UTF-16 output reproduces the pair; UTF-8 output encodes the scalar.
			n += c.putRune(dst[n:], utf16.DecodeRune(r, lo))
			i += 12

		case escape.IsLowSurrogate(r):
			return n, fault{InvalidSurrogatePair, i}

		default:
			n += c.putRune(dst[n:], r)
			i += 6
		}
	}
}

// decodeInto unescapes src into dst, which must have been sized from the
// escaped count of src. It panics if the decoded length disagrees, since that
// means the count did not come from a scan of src.
func decodeInto[S Symbol](c codec[S], dst, src []S) fault {
	n, f := unescape(c, dst, src)
	if f.ok() && n != len(dst) {
		panic(fmt.Sprintf("jcodec: decoded %d units, want %d", n, len(dst)))
	}
	return f
}
