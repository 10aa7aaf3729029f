// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"errors"
	"math"
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// ParseInteger parses num, which must consist of an optional "-" followed by
// decimal digits, as a signed integer of type T. Accumulation is checked for
// overflow; a value out of range for T is an error of kind NumericOverflow.
func ParseInteger[T constraints.Signed, S Symbol](num []S) (T, error) {
	v, end, f := parseSigned[T](num, 0)
	if f.ok() && end != len(num) {
		f = fault{InvalidNumberFormat, end}
	}
	return v, numberError(f, num)
}

// ParseUnsigned parses num, which must consist of decimal digits, as an
// unsigned integer of type T.
func ParseUnsigned[T constraints.Unsigned, S Symbol](num []S) (T, error) {
	v, end, f := parseUnsigned[T](num, 0)
	if f.ok() && end != len(num) {
		f = fault{InvalidNumberFormat, end}
	}
	return v, numberError(f, num)
}

// ParseFloat parses num as a JSON number and converts it to the nearest
// value of type T. The shape of num is checked against the JSON grammar
// before conversion; a magnitude too large for T is an error of kind
// NumericOverflow.
func ParseFloat[T constraints.Float, S Symbol](num []S) (T, error) {
	v, f := parseFloat[T](num)
	return v, numberError(f, num)
}

func numberError[S Symbol](f fault, num []S) error {
	switch f.kind {
	case noError:
		return nil
	case NumericOverflow:
		return syntaxErrorf(f.kind, f.pos, "number %q out of range", string(asASCII(num)))
	}
	return syntaxErrorf(f.kind, f.pos, "invalid number %q", string(asASCII(num)))
}

// bitSize returns the width of T in bits.
func bitSize[T constraints.Integer | constraints.Float]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

// parseSigned parses an optional "-" and a run of digits at buf[pos:]. It
// stops at the first non-digit and returns the offset of that symbol.
func parseSigned[T constraints.Signed, S Symbol](buf []S, pos int) (T, int, fault) {
	i := pos
	neg := i < len(buf) && buf[i] == '-'
	if neg {
		i++
	}
	limit := uint64(1)<<(bitSize[T]()-1) - 1
	if neg {
		limit++
	}
	mag, end, f := accumulate(buf, i, limit)
	if !f.ok() {
		if f.kind == NumericOverflow {
			f.pos = pos
		}
		return 0, end, f
	}
	if neg {
		return T(-int64(mag)), end, fault{}
	}
	return T(mag), end, fault{}
}

// parseUnsigned parses a run of digits at buf[pos:].
func parseUnsigned[T constraints.Unsigned, S Symbol](buf []S, pos int) (T, int, fault) {
	limit := ^uint64(0) >> (64 - bitSize[T]())
	mag, end, f := accumulate(buf, pos, limit)
	if !f.ok() {
		return 0, end, f
	}
	return T(mag), end, fault{}
}

// accumulate reads decimal digits starting at buf[pos] and returns their
// value, which must not exceed limit, and the offset of the first non-digit.
// At least one digit is required, and a leading zero may not be followed by
// further digits.
func accumulate[S Symbol](buf []S, pos int, limit uint64) (uint64, int, fault) {
	i := pos
	var v uint64
	for i < len(buf) && isDigit(buf[i]) {
		d := uint64(buf[i] - '0')
		if v > (limit-d)/10 {
			return 0, i, fault{NumericOverflow, pos}
		}
		v = v*10 + d
		i++
	}
	switch {
	case i == pos:
		if i >= len(buf) {
			return 0, i, fault{EndOfData, i}
		}
		return 0, i, fault{InvalidNumberFormat, i}
	case buf[pos] == '0' && i-pos > 1:
		return 0, i, fault{InvalidNumberFormat, pos}
	}
	return v, i, fault{}
}

// parseFloat checks the shape of num and converts it.
func parseFloat[T constraints.Float, S Symbol](num []S) (T, fault) {
	if len(num) == 0 {
		return 0, fault{EndOfData, 0}
	}
	if at, ok := checkNumber(num); !ok {
		return 0, fault{InvalidNumberFormat, at}
	}
	var stack [64]byte
	text := stack[:0]
	for _, c := range num {
		text = append(text, byte(c))
	}
	v, err := strconv.ParseFloat(string(text), bitSize[T]())
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, fault{InvalidNumberFormat, 0}
		} else if math.IsInf(v, 0) {
			return 0, fault{NumericOverflow, 0}
		}
		// Underflow to zero is not an error.
	}
	return T(v), fault{}
}

// asASCII returns the low bytes of num, for use in messages.
func asASCII[S Symbol](num []S) []byte {
	out := make([]byte, len(num))
	for i, c := range num {
		out[i] = byte(c)
	}
	return out
}

// readNumber reads a number token with parse, checks that it ends where the
// scanned run of number symbols ends, and advances past it.
func readNumber[T any, S Symbol](r *Reader[S], parse func([]S, int) (T, int, fault)) (T, error) {
	var zero T
	if r.PeekToken() != Number {
		return zero, r.unexpected("number")
	}
	start := r.pos
	end := scanNumber(r.buf, start)
	v, stop, f := parse(r.buf[:end], start)
	if f.ok() && stop != end {
		f = fault{InvalidNumberFormat, stop}
	} else if f.kind == EndOfData && end < len(r.buf) {
		f.kind = InvalidNumberFormat // e.g., "-" followed by a separator
	}
	if !f.ok() {
		return zero, numberError(f, r.buf[start:end])
	}
	r.pos = end
	return v, nil
}

// ReadInteger reads a number token as a signed integer of type T. The token
// must be an integer: a fraction or exponent is an error of kind
// InvalidNumberFormat.
func ReadInteger[T constraints.Signed, S Symbol](r *Reader[S]) (T, error) {
	return readNumber(r, parseSigned[T, S])
}

// ReadUnsigned reads a number token as an unsigned integer of type T.
func ReadUnsigned[T constraints.Unsigned, S Symbol](r *Reader[S]) (T, error) {
	return readNumber(r, parseUnsigned[T, S])
}

// ReadFloat reads a number token as a floating-point value of type T.
func ReadFloat[T constraints.Float, S Symbol](r *Reader[S]) (T, error) {
	return readNumber(r, func(buf []S, pos int) (T, int, fault) {
		v, f := parseFloat[T](buf[pos:])
		return v, len(buf), f.shift(pos)
	})
}

// ReadInt8 reads a number token as an int8.
func (r *Reader[S]) ReadInt8() (int8, error) { return ReadInteger[int8](r) }

// ReadInt16 reads a number token as an int16.
func (r *Reader[S]) ReadInt16() (int16, error) { return ReadInteger[int16](r) }

// ReadInt32 reads a number token as an int32.
func (r *Reader[S]) ReadInt32() (int32, error) { return ReadInteger[int32](r) }

// ReadInt64 reads a number token as an int64.
func (r *Reader[S]) ReadInt64() (int64, error) { return ReadInteger[int64](r) }

// ReadUint8 reads a number token as a uint8.
func (r *Reader[S]) ReadUint8() (uint8, error) { return ReadUnsigned[uint8](r) }

// ReadUint16 reads a number token as a uint16.
func (r *Reader[S]) ReadUint16() (uint16, error) { return ReadUnsigned[uint16](r) }

// ReadUint32 reads a number token as a uint32.
func (r *Reader[S]) ReadUint32() (uint32, error) { return ReadUnsigned[uint32](r) }

// ReadUint64 reads a number token as a uint64.
func (r *Reader[S]) ReadUint64() (uint64, error) { return ReadUnsigned[uint64](r) }

// ReadFloat32 reads a number token as a float32.
func (r *Reader[S]) ReadFloat32() (float32, error) { return ReadFloat[float32](r) }

// ReadFloat64 reads a number token as a float64.
func (r *Reader[S]) ReadFloat64() (float64, error) { return ReadFloat[float64](r) }
