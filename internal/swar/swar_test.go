// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package swar

import (
	"strings"
	"testing"
)

// naive is the reference implementation.
func naive(b []byte, high bool) int {
	for i, c := range b {
		if c == '"' || c == '\\' || c < ' ' || (high && c >= 0x80) {
			return i
		}
	}
	return -1
}

func withWide(t *testing.T, ok bool) {
	t.Helper()
	old := wide
	wide = ok
	t.Cleanup(func() { wide = old })
}

func TestIndex(t *testing.T) {
	plain := strings.Repeat("abcdefgh", 12) // 96 bytes, no targets
	targets := []byte{'"', '\\', 0, '\n', 0x1f, 0x80, 0xff, 0xc3}

	for _, isWide := range []bool{false, true} {
		withWide(t, isWide)
		for _, tc := range []string{"", "a", "abc", plain} {
			if got := IndexString([]byte(tc)); got != -1 {
				t.Errorf("IndexString(%q) [wide=%v]: got %d, want -1", tc, isWide, got)
			}
		}
		for pos := 0; pos < len(plain); pos++ {
			for _, c := range targets {
				buf := []byte(plain)
				buf[pos] = c
				for _, high := range []bool{false, true} {
					want := naive(buf, high)
					if got := index(buf, high); got != want {
						t.Errorf("index(%q at %d, high=%v) [wide=%v]: got %d, want %d",
							c, pos, high, isWide, got, want)
					}
				}
			}
		}
	}
}

func TestIndexMultiple(t *testing.T) {
	// Bytes that sort just above the targets must not produce matches, and a
	// later target must not hide an earlier one.
	buf := []byte("  !#[]^_  \x7f ok ' x\" y \\ z")
	for _, isWide := range []bool{false, true} {
		withWide(t, isWide)
		for i := range buf {
			if got, want := IndexString(buf[i:]), naive(buf[i:], false); got != want {
				t.Errorf("IndexString(%q) [wide=%v]: got %d, want %d", buf[i:], isWide, got, want)
			}
			if got, want := IndexStringOrHigh(buf[i:]), naive(buf[i:], true); got != want {
				t.Errorf("IndexStringOrHigh(%q) [wide=%v]: got %d, want %d", buf[i:], isWide, got, want)
			}
		}
	}
}
