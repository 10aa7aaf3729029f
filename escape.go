// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"unsafe"

	"github.com/creachadair/jcodec/internal/escape"
)

// An EscapePolicy selects which characters are escaped when writing a JSON
// string. It is configuration for one call, not state.
type EscapePolicy = escape.Policy

// Constants defining the valid EscapePolicy values.
const (
	// EscapeDefault escapes the quotation mark, the reverse solidus, and the
	// control characters U+0000 to U+001F, using the two-character forms
	// \" \\ \b \f \n \r \t where they exist and \u00XX otherwise.
	EscapeDefault = escape.Default

	// EscapeHTML escapes everything EscapeDefault does, writes the quotation
	// mark as \u0022, and also escapes & ' + < > ` and the line and paragraph
	// separators U+2028 and U+2029.
	EscapeHTML = escape.HTML

	// EscapeNonASCII escapes everything EscapeDefault does, and every code
	// point above U+007F as \uXXXX, using a surrogate pair of escapes for code
	// points above U+FFFF.
	EscapeNonASCII = escape.NonASCII
)

// maxEscapeExpansion is the most output units a single input unit can
// produce: a control character or UTF-16 code unit becomes \uXXXX.
const maxEscapeExpansion = 6

// NeedsEscapingUnit reports whether the code unit u must be escaped under p.
//
// For UTF-16 the answer is exact. A UTF-8 byte above 0x7F is part of a
// multi-byte sequence and cannot be classified alone; for EscapeHTML and
// EscapeNonASCII it reports true, meaning the sequence may need escaping.
func NeedsEscapingUnit[S Symbol](u S, p EscapePolicy) bool {
	if u < 0x80 {
		return p.Action(byte(u)) != 0
	}
	var z S
	if _, ok := any(z).(byte); ok {
		return p != EscapeDefault
	}
	return p.Needs(rune(u))
}

// NeedsEscaping returns the offset of the first unit of src that must be
// escaped under p, or -1 if src can be written as-is.
func NeedsEscaping[S Symbol](src []S, p EscapePolicy) int {
	return codecFor[S]().indexEscape(src, p)
}

// MaxEscapedLength returns an upper bound on the escaped length of n units
// whose first unit needing escape is at offset first (or -1 for none).
// Every unit from first onward is assumed to expand to the worst case.
func MaxEscapedLength(n, first int) int {
	if first < 0 || first >= n {
		return n
	}
	return first + (n-first)*maxEscapeExpansion
}

// Escape returns the escaped form of src under p. The result does not include
// enclosing quotation marks. If src contains no characters needing escape,
// Escape returns src itself.
//
// For UTF-8 input, EscapeNonASCII decodes every multi-byte sequence, and
// Escape reports an error of kind InvalidUTF8 for malformed or truncated
// sequences. EscapeDefault and EscapeHTML pass non-ASCII bytes through
// untouched, apart from the separators U+2028 and U+2029 under EscapeHTML.
func Escape[S Symbol](src []S, p EscapePolicy) ([]S, error) {
	c := codecFor[S]()
	first := c.indexEscape(src, p)
	if first < 0 {
		return src, nil
	}
	dst := make([]S, 0, MaxEscapedLength(len(src), first))
	dst, f := appendEscaped(c, dst, src, p, first, true)
	if !f.ok() {
		return nil, f.err()
	}
	return dst, nil
}

// AppendEscaped appends the escaped form of src under p to dst and returns
// the extended buffer.
func AppendEscaped[S Symbol](dst, src []S, p EscapePolicy) ([]S, error) {
	c := codecFor[S]()
	first := c.indexEscape(src, p)
	if first < 0 {
		return append(dst, src...), nil
	}
	dst, f := appendEscaped(c, dst, src, p, first, true)
	if !f.ok() {
		return dst, f.err()
	}
	return dst, nil
}

// EscapePartial is the incremental form of AppendEscaped for callers that
// receive UTF-8 text in pieces. It escapes as much of src as possible and
// reports how many units were consumed along with the validity of the
// sequence at which it stopped. A result of Incomplete means the unconsumed
// tail of src is a valid prefix that must be retried with more input; Invalid
// means src[consumed:] begins with a malformed sequence.
//
// A multi-byte sequence cut short at the end of src is held back under every
// policy, so the escaped output of a stream does not depend on where it was
// split.
func EscapePartial[S Symbol](dst, src []S, p EscapePolicy) ([]S, int, SequenceValidity) {
	c := codecFor[S]()
	end := c.partialTail(src)
	body := src[:end]
	if first := c.indexEscape(body, p); first < 0 {
		dst = append(dst, body...)
	} else {
		var f fault
		dst, f = appendEscaped(c, dst, body, p, first, false)
		switch f.kind {
		case noError:
		case EndOfData:
			return dst, f.pos, Incomplete
		default:
			return dst, f.pos, Invalid
		}
	}
	if end < len(src) {
		return dst, end, Incomplete
	}
	return dst, len(src), WellFormed
}

// appendEscaped escapes src onto dst, given the offset of the first unit
// needing escape. A truncated sequence at the end of src is reported as
// InvalidUTF8 if final is true, otherwise as EndOfData.
func appendEscaped[S Symbol](c codec[S], dst, src []S, p EscapePolicy, first int, final bool) ([]S, fault) {
	i, j := 0, first
	for {
		dst = append(dst, src[i:i+j]...)
		i += j
		if i >= len(src) {
			return dst, fault{}
		}
		r, n, v := c.decodeRune(src[i:])
		switch v {
		case Invalid:
			return dst, fault{InvalidUTF8, i}
		case Incomplete:
			if final {
				return dst, fault{InvalidUTF8, i}
			}
			return dst, fault{EndOfData, i}
		}
		if p.Needs(r) {
			dst = escape.AppendRune(dst, r, p)
		} else {
			dst = append(dst, src[i:i+n]...)
		}
		i += n

		if j = c.indexEscape(src[i:], p); j < 0 {
			j = len(src) - i
		}
	}
}

// EscapeString returns the escaped form of the UTF-8 string s under p,
// without enclosing quotation marks. The escaped text is staged in a pooled
// scratch buffer.
func EscapeString(s string, p EscapePolicy) (string, error) {
	c := utf8Codec{}
	src := unsafe.Slice(unsafe.StringData(s), len(s)) // read only
	first := c.indexEscape(src, p)
	if first < 0 {
		return s, nil
	}
	var stack [scratchStackSize]byte
	sb := getScratch(stack[:], MaxEscapedLength(len(s), first))
	defer sb.release()

	out, f := appendEscaped(c, sb.buf[:0], src, p, first, true)
	if !f.ok() {
		return "", f.err()
	}
	return string(out), nil
}
