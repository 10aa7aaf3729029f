// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"errors"

	"github.com/creachadair/jcodec/b64"
)

// ReadBytes reads a string literal containing Base64 text and returns its
// decoding. Whitespace within the text is ignored. Malformed text is an error
// of kind InvalidBase64Character.
func (r *Reader[S]) ReadBytes() ([]byte, error) {
	var out []byte
	err := r.withDecoded(func(text []S, base int) error {
		var err error
		out, err = b64.Decode(text)
		if ce := (*b64.CorruptInputError)(nil); errors.As(err, &ce) {
			return syntaxErrorf(InvalidBase64Character, base+ce.Offset, "%v", ce)
		}
		return err
	})
	return out, err
}
