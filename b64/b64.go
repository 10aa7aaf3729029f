// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package b64 implements the standard Base64 encoding with padding, as it is
// embedded in JSON string values. Decoding tolerates whitespace anywhere in
// the input and works over either UTF-8 bytes or UTF-16 code units.
package b64

import (
	"encoding/base64"
	"fmt"
)

// LineBreaks selects whether encoded output is broken into lines.
type LineBreaks byte

// Constants defining the valid LineBreaks values.
const (
	NoLineBreaks     LineBreaks = iota // a single line
	InsertLineBreaks                   // CRLF after every LineLength characters
)

// LineLength is the length of an encoded line under InsertLineBreaks.
const LineLength = 76

// lineBytes is the number of input bytes that encode to one full line.
const lineBytes = LineLength / 4 * 3

// A symbol is one of the supported code unit types.
type symbol interface{ byte | uint16 }

// EncodedLen returns the length of the encoding of n bytes.
func EncodedLen(n int, lb LineBreaks) int {
	m := base64.StdEncoding.EncodedLen(n)
	if lb == InsertLineBreaks && m > 0 {
		m += (m - 1) / LineLength * 2
	}
	return m
}

// AppendEncode appends the encoding of src to dst and returns the extended
// buffer. Under InsertLineBreaks the last line is not followed by a break.
func AppendEncode(dst, src []byte, lb LineBreaks) []byte {
	if lb == InsertLineBreaks {
		for len(src) > lineBytes {
			dst = base64.StdEncoding.AppendEncode(dst, src[:lineBytes])
			dst = append(dst, '\r', '\n')
			src = src[lineBytes:]
		}
	}
	return base64.StdEncoding.AppendEncode(dst, src)
}

// AppendEncodeUnits is as AppendEncode, but for a UTF-16 destination.
func AppendEncodeUnits(dst []uint16, src []byte, lb LineBreaks) []uint16 {
	var buf [LineLength + 2]byte
	for {
		n := min(len(src), lineBytes)
		line := base64.StdEncoding.AppendEncode(buf[:0], src[:n])
		src = src[n:]
		if lb == InsertLineBreaks && len(src) != 0 {
			line = append(line, '\r', '\n')
		}
		for _, c := range line {
			dst = append(dst, uint16(c))
		}
		if len(src) == 0 {
			return dst
		}
	}
}

// Encode returns the encoding of src.
func Encode(src []byte, lb LineBreaks) string {
	return string(AppendEncode(make([]byte, 0, EncodedLen(len(src), lb)), src, lb))
}

// CorruptInputError reports a symbol of Base64 text that is not in the
// alphabet, misplaced padding, or text whose length is not a whole number of
// quanta.
type CorruptInputError struct {
	Offset int  // offset of the offending symbol, or the length of the input if truncated
	Char   rune // the offending symbol, or -1 if the input is truncated
}

func (e *CorruptInputError) Error() string {
	if e.Char < 0 {
		return fmt.Sprintf("truncated base64 input at offset %d", e.Offset)
	}
	return fmt.Sprintf("illegal base64 character %q at offset %d", e.Char, e.Offset)
}

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	pad      = '='
	invalid  = 0xff
)

var decodeMap = func() (m [128]byte) {
	for i := range m {
		m[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	return
}()

func isSpace[S symbol](c S) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

// value returns the 6-bit value of c, or invalid.
func value[S symbol](c S) byte {
	if c >= 0x80 {
		return invalid
	}
	return decodeMap[int(c)]
}

// DecodedLen checks the shape of the Base64 text src and returns the exact
// length of its decoding. Whitespace is ignored. Padding must complete the
// final quantum and may only be followed by whitespace.
func DecodedLen[S symbol](src []S) (int, error) {
	var digits, pads int
	for i, c := range src {
		switch {
		case isSpace(c):
			continue
		case c == pad:
			if r := digits % 4; r < 2 || r+pads >= 4 {
				return 0, &CorruptInputError{Offset: i, Char: pad}
			}
			pads++
		case value(c) == invalid || pads > 0:
			return 0, &CorruptInputError{Offset: i, Char: rune(c)}
		default:
			digits++
		}
	}
	if (digits+pads)%4 != 0 {
		return 0, &CorruptInputError{Offset: len(src), Char: -1}
	}
	return (digits+pads)/4*3 - pads, nil
}

// Decode returns the decoding of the Base64 text src. The output is sized
// exactly by DecodedLen before it is written.
func Decode[S symbol](src []S) ([]byte, error) {
	n, err := DecodedLen(src)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, n)
	_, nw, st := TryDecode(src, dst, true)
	if st != Done || nw != n {
		panic(fmt.Sprintf("b64: decoded %d bytes with status %v, want %d", nw, st, n))
	}
	return dst, nil
}

// DecodeString returns the decoding of the Base64 text s.
func DecodeString(s string) ([]byte, error) { return Decode([]byte(s)) }

// Status is the outcome of a call to TryDecode.
type Status byte

// Constants defining the valid Status values.
const (
	Done                Status = iota // all input was decoded
	NeedMoreData                      // the input ends inside a quantum
	DestinationTooSmall               // the next quantum does not fit in the output
	InvalidData                       // the input is malformed
)

var statusStr = [...]string{
	Done:                "done",
	NeedMoreData:        "need more data",
	DestinationTooSmall: "destination too small",
	InvalidData:         "invalid data",
}

func (s Status) String() string {
	if int(s) >= len(statusStr) {
		return "unknown status"
	}
	return statusStr[s]
}

// TryDecode decodes as many whole quanta of src into dst as possible. It
// reports the number of symbols consumed, the number of bytes written, and
// why it stopped. It never reads beyond src or writes beyond dst.
//
// If final is false, src is a prefix of the input and a partial quantum at
// its end yields NeedMoreData; consumed is then the offset at which to resume
// with more input. If final is true, a partial quantum is InvalidData.
// For DestinationTooSmall, consumed is the start of the quantum that did not
// fit. For InvalidData, consumed is the offset of the offending symbol.
func TryDecode[S symbol](src []S, dst []byte, final bool) (consumed, written int, st Status) {
	i := 0
	for {
		var q [4]byte
		start, n, pads := i, 0, 0
		for n < 4 && i < len(src) {
			c := src[i]
			switch v := value(c); {
			case isSpace(c):
			case c == pad:
				if n < 2 {
					return i, written, InvalidData
				}
				pads++
				n++
			case v == invalid || pads > 0:
				return i, written, InvalidData
			default:
				q[n] = v
				n++
			}
			i++
		}
		switch {
		case n == 0:
			return len(src), written, Done
		case n < 4 && final:
			return len(src), written, InvalidData
		case n < 4:
			return start, written, NeedMoreData
		}

		out := 3 - pads
		if len(dst)-written < out {
			return start, written, DestinationTooSmall
		}
		w := uint(q[0])<<18 | uint(q[1])<<12 | uint(q[2])<<6 | uint(q[3])
		for k := range out {
			dst[written+k] = byte(w >> (16 - 8*k))
		}
		written += out

		if pads > 0 {
			for ; i < len(src); i++ {
				if !isSpace(src[i]) {
					return i, written, InvalidData
				}
			}
			return len(src), written, Done
		}
	}
}
