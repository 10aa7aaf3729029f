// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec_test

import (
	"testing"

	"github.com/creachadair/jcodec"
	"github.com/google/go-cmp/cmp"
)

func TestLocate(t *testing.T) {
	const input = "{\n  \"a\": 1,\n\n  \"b\": [true]\n}"
	tests := []struct {
		off  int
		want jcodec.LineCol
	}{
		{-5, jcodec.LineCol{Line: 1, Column: 0}},
		{0, jcodec.LineCol{Line: 1, Column: 0}},
		{1, jcodec.LineCol{Line: 1, Column: 1}},
		{2, jcodec.LineCol{Line: 2, Column: 0}},
		{4, jcodec.LineCol{Line: 2, Column: 2}},
		{12, jcodec.LineCol{Line: 3, Column: 0}},
		{13, jcodec.LineCol{Line: 4, Column: 0}},
		{21, jcodec.LineCol{Line: 4, Column: 8}},
		{len(input), jcodec.LineCol{Line: 5, Column: 1}},
		{len(input) + 10, jcodec.LineCol{Line: 5, Column: 1}},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, jcodec.Locate([]byte(input), test.off)); diff != "" {
			t.Errorf("Locate(%d) (-want, +got):\n%s", test.off, diff)
		}
		if diff := cmp.Diff(test.want, jcodec.Locate(units(input), test.off)); diff != "" {
			t.Errorf("Locate(%d) UTF-16 (-want, +got):\n%s", test.off, diff)
		}
	}
}

func TestLocate_error(t *testing.T) {
	const input = "[1,\n 2,\n x]"
	err := jcodec.NewReaderString(input).SkipNextSegment()
	se, ok := err.(*jcodec.SyntaxError)
	if !ok {
		t.Fatalf("SkipNextSegment: got %v, want *SyntaxError", err)
	}
	want := jcodec.LineCol{Line: 3, Column: 1}
	if got := jcodec.Locate([]byte(input), se.Offset); got != want {
		t.Errorf("Locate(%d): got %+v, want %+v", se.Offset, got, want)
	}
}

func TestSpan(t *testing.T) {
	if got := (jcodec.Span{Pos: 3, End: 10}).Len(); got != 7 {
		t.Errorf("Len: got %d, want 7", got)
	}
}
