// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"errors"
	"unsafe"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value under the default policy. The
// contents are escaped and double quotation marks are added. Bytes of src that
// are not valid UTF-8 are copied unchanged.
func Quote(src string) string {
	s, err := QuotePolicy(src, EscapeDefault)
	if err != nil {
		panic(err) // the default policy does not decode non-ASCII text
	}
	return s
}

// QuotePolicy encodes src as a JSON string value with escapes chosen by p.
// It reports an error if p must decode src and src is not valid UTF-8.
func QuotePolicy(src string, p EscapePolicy) (string, error) {
	c := utf8Codec{}
	b := unsafe.Slice(unsafe.StringData(src), len(src)) // read only
	first := c.indexEscape(b, p)
	if first < 0 {
		return `"` + src + `"`, nil
	}
	var stack [scratchStackSize]byte
	sb := getScratch(stack[:], MaxEscapedLength(len(src), first)+2)
	defer sb.release()

	buf := append(sb.buf[:0], '"')
	buf = mem.Append(buf, mem.S(src[:first]))
	buf, f := appendEscaped(c, buf, b[first:], p, 0, true)
	if !f.ok() {
		return "", f.shift(first).err()
	}
	return string(append(buf, '"')), nil
}

// Unquote decodes a JSON string value. Double quotation marks are removed, and
// escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error for any malformed escape, unpaired surrogate, or
// unescaped control character.
func Unquote(src string) (string, error) {
	m := mem.S(src)
	if m.Len() < 2 || !mem.HasPrefix(m, mem.S(`"`)) || !mem.HasSuffix(m, mem.S(`"`)) {
		return "", errors.New("missing quotations")
	}
	r := NewReaderString(src)
	s, err := r.ReadString()
	if err != nil {
		return "", err
	} else if r.Pos() != len(src) {
		return "", errors.New("extra text after string")
	}
	return s, nil
}

// MustUnquote is as Unquote, but panics if src is not a valid string value.
func MustUnquote(src string) string {
	s, err := Unquote(src)
	if err != nil {
		panic(err)
	}
	return s
}
