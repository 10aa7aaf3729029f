// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
)

// NewReaderJWCC constructs a Reader over JWCC text, JSON extended with line
// and block comments and trailing commas. A copy of src is converted to
// standard JSON before reading; comments and trailing commas are replaced by
// whitespace, so offsets reported by the reader are offsets in src.
func NewReaderJWCC(src []byte) (*Reader[byte], error) {
	std, err := hujson.Standardize(bytes.Clone(src))
	if err != nil {
		return nil, fmt.Errorf("standardize JWCC: %w", err)
	}
	return NewReader(std), nil
}
