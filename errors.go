// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "fmt"

// ErrorKind classifies the fatal conditions reported by the reader and the
// escape and literal functions. An ErrorKind is itself an error, so callers
// may test for a kind with errors.Is:
//
//	if errors.Is(err, jcodec.InvalidEscape) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	noError ErrorKind = iota

	UnterminatedString     // input ended inside a string literal
	InvalidEscape          // unknown or malformed \-escape
	InvalidSurrogatePair   // unpaired or misordered UTF-16 surrogate escape
	InvalidNumberFormat    // malformed numeric literal
	NumericOverflow        // numeric literal out of range for its type
	InvalidDateTimeField   // malformed or out-of-range date/time field
	InvalidGuidPattern     // GUID text of the wrong length or shape
	InvalidBase64Character // non-alphabet character or bad padding in Base64 text
	UnexpectedToken        // a token other than the one required
	NestingTooDeep         // containers nested beyond the reader's limit
	EndOfData              // input ended where more was required
	InvalidCharacter       // unescaped control or otherwise disallowed character
	InvalidUTF8            // malformed UTF-8 in text being escaped
)

var kindStr = [...]string{
	noError:                "no error",
	UnterminatedString:     "unterminated string",
	InvalidEscape:          "invalid escape",
	InvalidSurrogatePair:   "invalid surrogate pair",
	InvalidNumberFormat:    "invalid number format",
	NumericOverflow:        "numeric overflow",
	InvalidDateTimeField:   "invalid date/time field",
	InvalidGuidPattern:     "invalid GUID pattern",
	InvalidBase64Character: "invalid Base64 character",
	UnexpectedToken:        "unexpected token",
	NestingTooDeep:         "nesting too deep",
	EndOfData:              "unexpected end of data",
	InvalidCharacter:       "invalid character",
	InvalidUTF8:            "invalid UTF-8",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return "unknown error"
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported for malformed input.
// It carries the kind of failure and the offset, in symbols, from the start
// of the input buffer at which it was detected.
type SyntaxError struct {
	Kind    ErrorKind
	Offset  int
	Message string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset)
}

// Unwrap supports error wrapping. It returns the Kind.
func (e *SyntaxError) Unwrap() error { return e.Kind }

// A fault is the allocation-free form of a failure reported by the internal
// scanning and decoding functions. The zero fault means success.
type fault struct {
	kind ErrorKind
	pos  int
}

func (f fault) ok() bool { return f.kind == noError }

// shift returns a copy of f with its offset moved by base.
func (f fault) shift(base int) fault { f.pos += base; return f }

// err converts f to a *SyntaxError, or nil if f is the zero fault.
func (f fault) err() error {
	if f.ok() {
		return nil
	}
	return &SyntaxError{Kind: f.kind, Offset: f.pos, Message: f.kind.String()}
}

func syntaxErrorf(kind ErrorKind, pos int, msg string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Offset: pos, Message: fmt.Sprintf(msg, args...)}
}
