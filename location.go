package jcodec

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the number of symbols covered by s.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // symbol offset of column in line, 0-based
}

// Locate returns the line and column of offset off in buf. Lines are ended
// by line feeds. An offset past the end of buf is clamped to the end.
func Locate[S Symbol](buf []S, off int) LineCol {
	off = max(0, min(off, len(buf)))
	lc := LineCol{Line: 1}
	start := 0
	for i, c := range buf[:off] {
		if c == '\n' {
			lc.Line++
			start = i + 1
		}
	}
	lc.Column = off - start
	return lc
}
