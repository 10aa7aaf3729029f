// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "fmt"

// SkipValue skips the complete value at the current position, which must
// begin with a token of the given kind. The value is checked against the
// JSON grammar as it is skipped, and container nesting deeper than the
// reader's limit is an error of kind NestingTooDeep.
func (r *Reader[S]) SkipValue(kind TokenKind) error {
	if got := r.PeekToken(); got != kind {
		return r.unexpected(kind.String())
	}
	return r.skipValue()
}

// SkipNextSegment skips the next complete value, whatever its kind.
func (r *Reader[S]) SkipNextSegment() error {
	r.SkipWhitespace()
	return r.skipValue()
}

// ReadNextSegment skips the next complete value and returns its raw text,
// without surrounding whitespace. The result aliases the input buffer.
func (r *Reader[S]) ReadNextSegment() ([]S, error) {
	r.SkipWhitespace()
	start := r.pos
	if err := r.skipValue(); err != nil {
		return nil, err
	}
	return r.buf[start:r.pos], nil
}

// States of the skipper.
const (
	wantValue  = iota // a value is required
	wantMember        // an object member name is required
	afterValue        // a value is complete; a separator or close may follow
)

// skipValue skips one value without recursion. Open containers are tracked on
// an explicit stack of their closing symbols.
func (r *Reader[S]) skipValue() error {
	var stack [32]byte
	closers := stack[:0]

	state := wantValue
	for {
		switch state {
		case wantValue:
			switch r.PeekToken() {
			case BeginObject, BeginArray:
				if len(closers) >= r.maxDepth {
					return syntaxErrorf(NestingTooDeep, r.pos, "nesting depth exceeds %d", r.maxDepth)
				}
				open := r.buf[r.pos]
				r.pos++
				if open == '{' {
					if r.tryByte('}') {
						state = afterValue
						continue
					}
					closers = append(closers, '}')
					state = wantMember
					continue
				}
				if r.tryByte(']') {
					state = afterValue
					continue
				}
				closers = append(closers, ']')
				continue // wantValue

			case String:
				if err := r.skipString(); err != nil {
					return err
				}
			case Number:
				if err := r.skipNumber(); err != nil {
					return err
				}
			case True:
				if err := r.readLiteral("true"); err != nil {
					return err
				}
			case False:
				if err := r.readLiteral("false"); err != nil {
					return err
				}
			case Null:
				if err := r.readLiteral("null"); err != nil {
					return err
				}
			default:
				return r.unexpected("value")
			}
			state = afterValue

		case wantMember:
			if r.PeekToken() != String {
				return r.unexpected("member name")
			}
			if err := r.skipString(); err != nil {
				return err
			}
			if err := r.ReadNameSeparator(); err != nil {
				return err
			}
			state = wantValue

		case afterValue:
			if len(closers) == 0 {
				return nil
			}
			end := closers[len(closers)-1]
			if r.tryByte(end) {
				closers = closers[:len(closers)-1]
				continue
			}
			if !r.tryByte(',') {
				return r.unexpected(fmt.Sprintf(`"," or "%c"`, end))
			}
			if end == '}' {
				state = wantMember
			} else {
				state = wantValue
			}
		}
	}
}

// skipString skips a string literal, checking its escapes.
func (r *Reader[S]) skipString() error {
	start := r.pos
	end, _, f := scanString(r.c, r.buf, start)
	if !f.ok() {
		return r.stringError(f, start)
	}
	r.pos = end
	return nil
}

// skipNumber skips a number token, checking its shape.
func (r *Reader[S]) skipNumber() error {
	start := r.pos
	end := scanNumber(r.buf, start)
	if at, ok := checkNumber(r.buf[start:end]); !ok {
		return numberError(fault{InvalidNumberFormat, start + at}, r.buf[start:end])
	}
	r.pos = end
	return nil
}
