// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxDepth is the default limit on container nesting for a Reader.
const DefaultMaxDepth = 256

// A Reader is a cursor over a caller-owned buffer of JSON text. It reads one
// token or value at a time, moving forward only. The buffer is never
// modified, and slices returned by the Span methods alias it.
//
// A Reader is not safe for concurrent use. Each parse should use its own
// Reader; readers over different buffers may run in parallel and may share a
// Cache.
//
// Methods named Read* report failures as errors of concrete type
// *SyntaxError. Methods named Try* report failure by returning false and do
// not describe it. After any failure the position of the reader is
// unspecified, and the caller should abandon the parse.
type Reader[S Symbol] struct {
	buf      []S
	pos      int
	c        codec[S]
	maxDepth int
	cache    *Cache
}

// NewReader constructs a Reader positioned at the start of buf.
func NewReader[S Symbol](buf []S) *Reader[S] {
	return &Reader[S]{buf: buf, c: codecFor[S](), maxDepth: DefaultMaxDepth}
}

// NewReaderString constructs a Reader over a copy of the UTF-8 text of s.
func NewReaderString(s string) *Reader[byte] { return NewReader([]byte(s)) }

// SetMaxDepth sets the limit on container nesting accepted by the skip
// operations and by Walk. A value <= 0 restores DefaultMaxDepth.
func (r *Reader[S]) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	r.maxDepth = n
}

// UseCache configures r to look up decoded strings in c before decoding them.
// A nil c disables caching.
func (r *Reader[S]) UseCache(c *Cache) { r.cache = c }

// Pos returns the current offset of the reader, in symbols.
func (r *Reader[S]) Pos() int { return r.pos }

// Len returns the length of the input buffer, in symbols.
func (r *Reader[S]) Len() int { return len(r.buf) }

// AtEnd reports whether only whitespace remains in the input.
func (r *Reader[S]) AtEnd() bool {
	r.SkipWhitespace()
	return r.pos >= len(r.buf)
}

// SkipWhitespace advances past any insignificant whitespace (space, tab,
// carriage return, and line feed).
func (r *Reader[S]) SkipWhitespace() {
	for r.pos < len(r.buf) && isSpace(r.buf[r.pos]) {
		r.pos++
	}
}

// PeekToken skips whitespace and reports the kind of the next token without
// consuming it. It returns None at the end of the input or if the next symbol
// cannot begin a token.
func (r *Reader[S]) PeekToken() TokenKind {
	r.SkipWhitespace()
	if r.pos >= len(r.buf) {
		return None
	}
	return kindOf(r.buf[r.pos])
}

// tryByte skips whitespace and consumes ch if it is next.
func (r *Reader[S]) tryByte(ch byte) bool {
	r.SkipWhitespace()
	if r.pos < len(r.buf) && r.buf[r.pos] == S(ch) {
		r.pos++
		return true
	}
	return false
}

func (r *Reader[S]) readByte(ch byte) error {
	if r.tryByte(ch) {
		return nil
	}
	return r.unexpected(fmt.Sprintf("%q", string(ch)))
}

// unexpected reports that want was required at the current position.
func (r *Reader[S]) unexpected(want string) error {
	if r.pos >= len(r.buf) {
		return syntaxErrorf(EndOfData, r.pos, "expected %s, got end of input", want)
	}
	return syntaxErrorf(UnexpectedToken, r.pos, "expected %s, got %s", want, r.describe(r.pos))
}

// describe returns a human-readable label for the symbol at buf[pos].
func (r *Reader[S]) describe(pos int) string {
	if k := kindOf(r.buf[pos]); k != None {
		return k.String()
	}
	if c := r.buf[pos]; c < utf8.RuneSelf {
		return fmt.Sprintf("%q", rune(c))
	}
	return fmt.Sprintf("%U", rune(r.buf[pos]))
}

// TryReadBeginObject consumes "{" if it is the next token.
func (r *Reader[S]) TryReadBeginObject() bool { return r.tryByte('{') }

// ReadBeginObject consumes "{", or reports an error.
func (r *Reader[S]) ReadBeginObject() error { return r.readByte('{') }

// TryReadEndObject consumes "}" if it is the next token.
func (r *Reader[S]) TryReadEndObject() bool { return r.tryByte('}') }

// ReadEndObject consumes "}", or reports an error.
func (r *Reader[S]) ReadEndObject() error { return r.readByte('}') }

// TryReadBeginArray consumes "[" if it is the next token.
func (r *Reader[S]) TryReadBeginArray() bool { return r.tryByte('[') }

// ReadBeginArray consumes "[", or reports an error.
func (r *Reader[S]) ReadBeginArray() error { return r.readByte('[') }

// TryReadEndArray consumes "]" if it is the next token.
func (r *Reader[S]) TryReadEndArray() bool { return r.tryByte(']') }

// ReadEndArray consumes "]", or reports an error.
func (r *Reader[S]) ReadEndArray() error { return r.readByte(']') }

// ReadNameSeparator consumes ":", or reports an error.
func (r *Reader[S]) ReadNameSeparator() error { return r.readByte(':') }

// ReadValueSeparator consumes ",", or reports an error.
func (r *Reader[S]) ReadValueSeparator() error { return r.readByte(',') }

// ReadIsEndArrayOrValueSeparator supports the loop over array elements.
// It reports true and consumes "]" if the array ends here. Otherwise, if
// *count > 0 it consumes the "," that must separate the elements. It
// increments *count each time it reports false.
//
//	var n int
//	for !done {
//	   done, err = r.ReadIsEndArrayOrValueSeparator(&n)
//	   ... read the element ...
//	}
func (r *Reader[S]) ReadIsEndArrayOrValueSeparator(count *int) (bool, error) {
	return r.isEndOrSeparator(']', count)
}

// ReadIsEndObjectOrValueSeparator is the analogue of
// ReadIsEndArrayOrValueSeparator for the members of an object.
func (r *Reader[S]) ReadIsEndObjectOrValueSeparator(count *int) (bool, error) {
	return r.isEndOrSeparator('}', count)
}

func (r *Reader[S]) isEndOrSeparator(end byte, count *int) (bool, error) {
	if r.tryByte(end) {
		return true, nil
	}
	if *count > 0 {
		if !r.tryByte(',') {
			return false, r.unexpected(fmt.Sprintf(`"," or "%c"`, end))
		}
	}
	*count++
	return false, nil
}

// ReadBool reads the constant true or false.
func (r *Reader[S]) ReadBool() (bool, error) {
	switch r.PeekToken() {
	case True:
		return true, r.readLiteral("true")
	case False:
		return false, r.readLiteral("false")
	}
	return false, r.unexpected("true or false")
}

// ReadNull reads the constant null.
func (r *Reader[S]) ReadNull() error {
	if r.PeekToken() != Null {
		return r.unexpected("null")
	}
	return r.readLiteral("null")
}

// ReadIsNull consumes the constant null and reports true if it is next.
// Otherwise it consumes nothing and reports false.
func (r *Reader[S]) ReadIsNull() bool {
	if r.PeekToken() != Null || !scanLiteral(r.buf, r.pos, "null").ok() {
		return false
	}
	r.pos += len("null")
	return true
}

func (r *Reader[S]) readLiteral(lit string) error {
	if f := scanLiteral(r.buf, r.pos, lit); !f.ok() {
		if f.kind == EndOfData {
			return syntaxErrorf(EndOfData, f.pos, "incomplete constant %s", lit)
		}
		return syntaxErrorf(f.kind, f.pos, "invalid constant, want %s", lit)
	}
	r.pos += len(lit)
	return nil
}

// ReadStringSpan reads a string literal and returns its raw content, between
// the quotation marks and still escaped, along with its escaped count. The
// span aliases the input buffer. It is the decoded text only if escaped == 0;
// otherwise the caller must decode it, and len(span) - escaped is the exact
// decoded length.
func (r *Reader[S]) ReadStringSpan() (span []S, escaped int, err error) {
	if r.PeekToken() != String {
		return nil, 0, r.unexpected("string")
	}
	start := r.pos
	end, escaped, f := scanString(r.c, r.buf, start)
	if !f.ok() {
		return nil, 0, r.stringError(f, start)
	}
	r.pos = end
	return r.buf[start+1 : end-1], escaped, nil
}

func (r *Reader[S]) stringError(f fault, start int) error {
	switch f.kind {
	case UnterminatedString:
		return syntaxErrorf(f.kind, f.pos, "unterminated string starting at offset %d", start)
	case InvalidCharacter:
		return syntaxErrorf(f.kind, f.pos, "unescaped control %U in string", rune(r.buf[f.pos]))
	case InvalidEscape:
		return syntaxErrorf(f.kind, f.pos, "invalid escape sequence in string")
	case InvalidSurrogatePair:
		return syntaxErrorf(f.kind, f.pos, "invalid UTF-16 surrogate pair in string")
	}
	return f.err()
}

// ReadStringUnits reads a string literal and returns its decoded content as a
// newly allocated slice of exactly the decoded length.
func (r *Reader[S]) ReadStringUnits() ([]S, error) {
	span, escaped, err := r.ReadStringSpan()
	if err != nil {
		return nil, err
	}
	out := make([]S, len(span)-escaped)
	if escaped == 0 {
		copy(out, span)
		return out, nil
	}
	base := r.pos - len(span) - 1
	if f := decodeInto(r.c, out, span); !f.ok() {
		return nil, r.stringError(f.shift(base), base-1)
	}
	return out, nil
}

// ReadString reads a string literal and returns its decoded content.
// For UTF-16 input the content is converted to UTF-8.
func (r *Reader[S]) ReadString() (string, error) {
	span, escaped, err := r.ReadStringSpan()
	if err != nil {
		return "", err
	}
	if escaped == 0 {
		return r.c.string(span), nil
	}
	if r.cache != nil {
		if s, ok := cacheLookup(r.cache, r.c, span); ok {
			return s, nil
		}
	}
	s, err := r.decodeString(span, escaped)
	if err == nil && r.cache != nil {
		cacheStore(r.cache, r.c, span, s)
	}
	return s, err
}

// decodeString decodes the raw content of the string literal that ended at
// the current position, staging the decoded units in scratch space.
func (r *Reader[S]) decodeString(span []S, escaped int) (string, error) {
	var stack [scratchStackSize]S
	sb := getScratch(stack[:], len(span)-escaped)
	defer sb.release()

	base := r.pos - len(span) - 1
	if f := decodeInto(r.c, sb.buf, span); !f.ok() {
		return "", r.stringError(f.shift(base), base-1)
	}
	return r.c.string(sb.buf), nil
}

// withDecoded calls f with the decoded content of the string literal at the
// current position and the offset of its content. The decoded slice is only
// valid during the call.
func (r *Reader[S]) withDecoded(f func(text []S, base int) error) error {
	span, escaped, err := r.ReadStringSpan()
	if err != nil {
		return err
	}
	base := r.pos - len(span) - 1
	if escaped == 0 {
		return f(span, base)
	}
	var stack [scratchStackSize]S
	sb := getScratch(stack[:], len(span)-escaped)
	defer sb.release()
	if ft := decodeInto(r.c, sb.buf, span); !ft.ok() {
		return r.stringError(ft.shift(base), base-1)
	}
	return f(sb.buf, base)
}

// ReadPropertyName reads an object member name and the ":" that follows it.
func (r *Reader[S]) ReadPropertyName() (string, error) {
	name, err := r.ReadString()
	if err != nil {
		return "", err
	}
	return name, r.ReadNameSeparator()
}

// ReadPropertyNameSpan is the zero-copy form of ReadPropertyName. The result
// has the same meaning as for ReadStringSpan.
func (r *Reader[S]) ReadPropertyNameSpan() ([]S, int, error) {
	span, escaped, err := r.ReadStringSpan()
	if err != nil {
		return nil, 0, err
	}
	return span, escaped, r.ReadNameSeparator()
}

// ReadRune reads a string literal that must contain exactly one character.
func (r *Reader[S]) ReadRune() (rune, error) {
	r.SkipWhitespace()
	start := r.pos
	s, err := r.ReadString()
	if err != nil {
		return 0, err
	}
	c, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) {
		return 0, syntaxErrorf(InvalidCharacter, start, "want a single character, got %q", s)
	}
	return c, nil
}

// ReadNumberSpan reads the maximal run of number symbols and returns it. The
// shape of the run is not checked.
func (r *Reader[S]) ReadNumberSpan() ([]S, error) {
	if r.PeekToken() != Number {
		return nil, r.unexpected("number")
	}
	start := r.pos
	r.pos = scanNumber(r.buf, start)
	return r.buf[start:r.pos], nil
}
