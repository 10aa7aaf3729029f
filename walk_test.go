// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcodec_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/creachadair/jcodec"
	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value number <0>
Value number <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`"" "a b c" "a\tb" "a\u0020b"`, `
Value string <"">
Value string <"a b c">
Value string <"a\tb">
Value string <"a\u0020b">
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"a":15}`, `
BeginObject
BeginMember <"a">
Value number <15>
EndMember "}"
EndObject
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray
Value true <true>
EndArray
EndMember "}"
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},

		{` [ [], {}, [1] ] `, `
BeginArray
BeginArray
EndArray
BeginObject
EndObject
BeginArray
Value number <1>
EndArray
EndArray
.`},
	}

	for _, test := range tests {
		th := new(testHandler[byte])
		if err := jcodec.WalkAll(jcodec.NewReaderString(test.input), th); err != nil {
			t.Errorf("Walk failed: %v", err)
		}
		th.pr(".")
		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}

		// The same events should be reported for UTF-16 input.
		uh := new(testHandler[uint16])
		if err := jcodec.WalkAll(jcodec.NewReader(units(test.input)), uh); err != nil {
			t.Errorf("Walk UTF-16 failed: %v", err)
		}
		uh.pr(".")
		if diff := diffStrings(test.want, uh.output()); diff != "" {
			t.Errorf("Input: %#q (UTF-16)\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestWalkErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Various kinds of unbalanced object bits.
		{`{`, `BeginObject`,
			`expected member name, got end of input (offset 1)`},
		{`}`, ``, `expected value, got "}" (offset 0)`},
		{`{false:1}`, `BeginObject`,
			`expected member name, got false (offset 1)`},
		{`{"true":}`, `
BeginObject
BeginMember <"true">`,
			`expected value, got "}" (offset 8)`},
		{`{"true":1,`, `
BeginObject
BeginMember <"true">
Value number <1>
EndMember ","`,
			`expected member name, got end of input (offset 10)`},
		{`{"a" 1}`, `
BeginObject
BeginMember <"a">`,
			`expected ":", got number (offset 5)`},
		{`{"a":1 "b":2}`, `
BeginObject
BeginMember <"a">
Value number <1>`,
			`expected "," or "}", got string (offset 7)`},

		// Unbalanced array bits.
		{`[`, `BeginArray`,
			`expected value, got end of input (offset 1)`},
		{`]`, ``, `expected value, got "]" (offset 0)`},
		{`[15,`, `
BeginArray
Value number <15>`,
			`expected value, got end of input (offset 4)`},
		{`[15,]`, `
BeginArray
Value number <15>`,
			`expected value, got "]" (offset 4)`},
		{`[1 2]`, `
BeginArray
Value number <1>`,
			`expected "," or "]", got number (offset 3)`},

		// Invalid values.
		{`1 2.0 forthright`, `
Value number <1>
Value number <2.0>`,
			`invalid constant, want false (offset 6)`},
		{`[true, fals]`, `
BeginArray
Value true <true>`,
			`invalid constant, want false (offset 7)`},
		{`tru`, ``, `incomplete constant true (offset 3)`},
		{`01`, ``, `invalid number "01" (offset 1)`},
		{`"what did you`, ``,
			`unterminated string starting at offset 0 (offset 13)`},
		{`["a\qb"]`, `BeginArray`,
			`invalid escape sequence in string (offset 3)`},
		{`@`, ``, `expected value, got '@' (offset 0)`},
	}

	for _, test := range tests {
		th := new(testHandler[byte])
		err := jcodec.WalkAll(jcodec.NewReaderString(test.input), th)
		if err == nil {
			t.Errorf("Input: %#q: Walk did not report an error", test.input)
			continue
		}
		var se *jcodec.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Input: %#q: got error %[2]T (%[2]v), want *SyntaxError", test.input, err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestWalkOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject
BeginMember <"love">
Value true <true>
EndMember "}"
EndObject
---
BeginArray
EndArray
---
Value string <"ok">
---
.`
	th := new(testHandler[byte])

	r := jcodec.NewReaderString(input)
	for !r.AtEnd() {
		if err := jcodec.Walk(r, th); err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		th.pr("---")
	}
	th.pr(".")

	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

func TestWalkDepth(t *testing.T) {
	r := jcodec.NewReaderString(`[[[]]]`)
	r.SetMaxDepth(2)
	err := jcodec.Walk(r, new(testHandler[byte]))
	if !errors.Is(err, jcodec.NestingTooDeep) {
		t.Fatalf("Walk: got %v, want %v", err, jcodec.NestingTooDeep)
	}
	if got, want := err.Error(), "nesting depth exceeds 2 (offset 2)"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}

	deep := strings.Repeat("[", 300) + strings.Repeat("]", 300)
	if err := jcodec.Walk(jcodec.NewReaderString(deep), new(testHandler[byte])); !errors.Is(err, jcodec.NestingTooDeep) {
		t.Errorf("Walk default depth: got %v, want %v", err, jcodec.NestingTooDeep)
	}
}

type stopHandler struct {
	testHandler[byte]
	stopAt string
}

var errStop = errors.New("stop")

func (s *stopHandler) Value(loc jcodec.Anchor[byte]) error {
	if string(loc.Text()) == s.stopAt {
		return errStop
	}
	return s.testHandler.Value(loc)
}

func TestWalkHandlerError(t *testing.T) {
	h := &stopHandler{stopAt: "2"}
	err := jcodec.Walk(jcodec.NewReaderString(`[1, 2, 3]`), h)
	if err != errStop {
		t.Errorf("Walk: got error %v, want %v", err, errStop)
	}
	if diff := diffStrings("BeginArray\nValue number <1>", h.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

// nameHandler records the decoded member names of a walk.
type nameHandler struct {
	testHandler[byte]
	names []string
}

func (n *nameHandler) BeginMember(loc jcodec.Anchor[byte]) error {
	s, err := loc.Unquote()
	if err != nil {
		return err
	}
	n.names = append(n.names, s)
	return nil
}

func TestAnchor(t *testing.T) {
	t.Run("Unquote", func(t *testing.T) {
		h := new(nameHandler)
		input := `{"a\u0062c": 1, "d\"e": {"": []}}`
		if err := jcodec.Walk(jcodec.NewReaderString(input), h); err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		if diff := cmp.Diff([]string{"abc", `d"e`, ""}, h.names); diff != "" {
			t.Errorf("Names (-want, +got):\n%s", diff)
		}
	})

	t.Run("UnquoteError", func(t *testing.T) {
		// The scan accepts the escape shape; the decode rejects the lone surrogate.
		err := jcodec.Walk(jcodec.NewReaderString(`{"\ud800x": 1}`), new(nameHandler))
		var se *jcodec.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Walk: got %v, want *SyntaxError", err)
		}
		if se.Kind != jcodec.InvalidSurrogatePair || se.Offset != 2 {
			t.Errorf("Walk: got %v at %d, want %v at 2", se.Kind, se.Offset, jcodec.InvalidSurrogatePair)
		}
	})

	t.Run("Span", func(t *testing.T) {
		var got []jcodec.Span
		h := &spanHandler{spans: &got}
		if err := jcodec.Walk(jcodec.NewReaderString(` ["abc", 12.5 , null]`), h); err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		want := []jcodec.Span{{Pos: 2, End: 7}, {Pos: 9, End: 13}, {Pos: 16, End: 20}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Spans (-want, +got):\n%s", diff)
		}
	})
}

type spanHandler struct {
	testHandler[byte]
	spans *[]jcodec.Span
}

func (s *spanHandler) Value(loc jcodec.Anchor[byte]) error {
	*s.spans = append(*s.spans, loc.Span())
	if _, err := loc.Unquote(); (err == nil) != (loc.Token() == jcodec.String) {
		return fmt.Errorf("unquote %v: unexpected result %v", loc.Token(), err)
	}
	if cp := loc.Copy(); string(cp) != string(loc.Text()) || len(cp) != loc.Span().Len() {
		return fmt.Errorf("copy mismatch: %q", cp)
	}
	return nil
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// text renders symbols as a string for test output.
func text[S jcodec.Symbol](v []S) string {
	switch t := any(v).(type) {
	case []byte:
		return string(t)
	case []uint16:
		return string(utf16.Decode(t))
	}
	panic("unreachable")
}

type testHandler[S jcodec.Symbol] struct {
	buf bytes.Buffer
}

func (t *testHandler[S]) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler[S]) output() string { return t.buf.String() }

func (t *testHandler[S]) BeginObject(loc jcodec.Anchor[S]) error { t.pr("BeginObject"); return nil }
func (t *testHandler[S]) EndObject(loc jcodec.Anchor[S]) error   { t.pr("EndObject"); return nil }
func (t *testHandler[S]) BeginArray(loc jcodec.Anchor[S]) error  { t.pr("BeginArray"); return nil }
func (t *testHandler[S]) EndArray(loc jcodec.Anchor[S]) error    { t.pr("EndArray"); return nil }

func (t *testHandler[S]) BeginMember(loc jcodec.Anchor[S]) error {
	t.pr("BeginMember <%s>", text(loc.Text()))
	return nil
}

func (t *testHandler[S]) EndMember(loc jcodec.Anchor[S]) error {
	t.pr("EndMember %s", loc.Token())
	return nil
}

func (t *testHandler[S]) Value(loc jcodec.Anchor[S]) error {
	t.pr(`Value %s <%s>`, loc.Token(), text(loc.Text()))
	return nil
}
