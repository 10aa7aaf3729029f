// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "fmt"

// An Anchor describes the token at which a Walk event occurs. An Anchor is
// only valid for the duration of the Handler call it is passed to.
type Anchor[S Symbol] struct {
	r    *Reader[S]
	kind TokenKind
	span Span
}

// Token returns the kind of the token at the anchor.
func (a Anchor[S]) Token() TokenKind { return a.kind }

// Span returns the location of the token in the input buffer.
func (a Anchor[S]) Span() Span { return a.span }

// Text returns a view of the raw text of the token. String tokens include
// their quotation marks and are still escaped.
func (a Anchor[S]) Text() []S { return a.r.buf[a.span.Pos:a.span.End] }

// Copy returns a copy of the raw text of the token.
func (a Anchor[S]) Copy() []S { return append([]S(nil), a.Text()...) }

// Unquote decodes the content of a String token.
func (a Anchor[S]) Unquote() (string, error) {
	if a.kind != String {
		return "", fmt.Errorf("anchor is %v, not a string", a.kind)
	}
	sub := &Reader[S]{buf: a.Text(), c: a.r.c, maxDepth: a.r.maxDepth, cache: a.r.cache}
	s, err := sub.ReadString()
	if se, ok := err.(*SyntaxError); ok {
		se.Offset += a.span.Pos
	}
	return s, err
}

// A Handler handles events from a Walk. If a method reports an error, the
// walk stops and that error is returned to the caller. Walk ensures objects
// and arrays are correctly balanced.
type Handler[S Symbol] interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor[S]) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor[S]) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor[S]) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor[S]) error

	// Begin a new object member, whose name is at loc. The name is still
	// quoted; use loc.Unquote to decode it.
	BeginMember(loc Anchor[S]) error

	// End the current object member. The anchor is the token that terminated
	// the member, either ValueSeparator or EndObject.
	EndMember(loc Anchor[S]) error

	// Report a string, number, or constant value at loc.
	Value(loc Anchor[S]) error
}

// Walk reads one complete value from r and delivers events to h for its
// structure. Tokens are checked as they are read, and nesting deeper than the
// limit of r is an error. Syntax errors have concrete type *SyntaxError;
// errors from h are returned as-is.
func Walk[S Symbol](r *Reader[S], h Handler[S]) (err error) {
	w := &walker[S]{r: r, h: h}
	defer w.recoverError(&err)
	w.walkValue()
	return nil
}

// WalkAll calls Walk for each value in r until the input is exhausted.
func WalkAll[S Symbol](r *Reader[S], h Handler[S]) error {
	for !r.AtEnd() {
		if err := Walk(r, h); err != nil {
			return err
		}
	}
	return nil
}

type walker[S Symbol] struct {
	r     *Reader[S]
	h     Handler[S]
	depth int
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

func (w *walker[S]) recoverError(errp *error) {
	if v := recover(); v != nil {
		switch err := v.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(v)
		}
	}
}

func (w *walker[S]) check(err error) {
	if err != nil {
		if se, ok := err.(*SyntaxError); ok {
			panic(se)
		}
		panic(handlerError{err})
	}
}

func (w *walker[S]) fail(err error) { panic(err.(*SyntaxError)) }

// anchor returns an anchor for the token of the given kind spanning
// buf[pos:end].
func (w *walker[S]) anchor(kind TokenKind, pos, end int) Anchor[S] {
	return Anchor[S]{r: w.r, kind: kind, span: Span{Pos: pos, End: end}}
}

// single consumes the one-symbol token of the given kind.
func (w *walker[S]) single(kind TokenKind) Anchor[S] {
	pos := w.r.pos
	w.r.pos++
	return w.anchor(kind, pos, pos+1)
}

func (w *walker[S]) walkValue() {
	r := w.r
	switch tok := r.PeekToken(); tok {
	case BeginObject:
		w.enter()
		w.check(w.h.BeginObject(w.single(BeginObject)))
		w.walkMembers()
		w.depth--
	case BeginArray:
		w.enter()
		w.check(w.h.BeginArray(w.single(BeginArray)))
		w.walkElements()
		w.depth--
	case String:
		pos := r.pos
		if err := r.skipString(); err != nil {
			w.fail(err)
		}
		w.check(w.h.Value(w.anchor(String, pos, r.pos)))
	case Number:
		pos := r.pos
		if err := r.skipNumber(); err != nil {
			w.fail(err)
		}
		w.check(w.h.Value(w.anchor(Number, pos, r.pos)))
	case True, False, Null:
		pos := r.pos
		if err := r.readLiteral(tok.String()); err != nil {
			w.fail(err)
		}
		w.check(w.h.Value(w.anchor(tok, pos, r.pos)))
	default:
		w.fail(r.unexpected("value"))
	}
}

func (w *walker[S]) enter() {
	if w.depth >= w.r.maxDepth {
		w.fail(syntaxErrorf(NestingTooDeep, w.r.pos, "nesting depth exceeds %d", w.r.maxDepth))
	}
	w.depth++
}

// walkMembers consumes zero or more name:value object members and the
// closing brace.
func (w *walker[S]) walkMembers() {
	r := w.r
	if r.PeekToken() == EndObject {
		w.check(w.h.EndObject(w.single(EndObject)))
		return
	}
	for {
		if r.PeekToken() != String {
			w.fail(r.unexpected("member name"))
		}
		pos := r.pos
		if err := r.skipString(); err != nil {
			w.fail(err)
		}
		w.check(w.h.BeginMember(w.anchor(String, pos, r.pos)))
		if err := r.ReadNameSeparator(); err != nil {
			w.fail(err)
		}
		w.walkValue()

		switch r.PeekToken() {
		case EndObject:
			end := w.single(EndObject)
			w.check(w.h.EndMember(end))
			w.check(w.h.EndObject(end))
			return
		case ValueSeparator:
			w.check(w.h.EndMember(w.single(ValueSeparator)))
		default:
			w.fail(r.unexpected(`"," or "}"`))
		}
	}
}

// walkElements consumes zero or more comma-separated array values and the
// closing bracket.
func (w *walker[S]) walkElements() {
	r := w.r
	if r.PeekToken() == EndArray {
		w.check(w.h.EndArray(w.single(EndArray)))
		return
	}
	for {
		w.walkValue()
		switch r.PeekToken() {
		case EndArray:
			w.check(w.h.EndArray(w.single(EndArray)))
			return
		case ValueSeparator:
			r.pos++
		default:
			w.fail(r.unexpected(`"," or "]"`))
		}
	}
}
