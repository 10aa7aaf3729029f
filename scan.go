// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "github.com/creachadair/jcodec/internal/escape"

// scanString locates the end of the string literal whose opening quotation
// mark is at buf[start]. It returns the offset just past the closing
// quotation mark and the escaped count: the number of units by which the
// decoded content is shorter than the raw content between the quotes.
//
// Escapes are checked for shape as they are counted, but surrogate pairing is
// left to unescape. scanString never reads at or beyond len(buf).
func scanString[S Symbol](c codec[S], buf []S, start int) (end, escaped int, f fault) {
	i := start + 1
	for {
		j := c.indexString(buf[i:])
		if j < 0 {
			return 0, 0, fault{UnterminatedString, len(buf)}
		}
		i += j
		switch buf[i] {
		case '"':
			return i + 1, escaped, fault{}

		case '\\':
			if i+1 >= len(buf) {
				return 0, 0, fault{UnterminatedString, len(buf)}
			}
			e := buf[i+1]
			if e == 'u' {
				if i+6 > len(buf) {
					return 0, 0, fault{UnterminatedString, len(buf)}
				}
				v, ok := escape.ParseHex4(buf[i+2 : i+6])
				if !ok {
					return 0, 0, fault{InvalidEscape, i}
				}
				escaped += 6 - c.escapeSize(v)
				i += 6
			} else if e < 0x80 && escape.Unescape[int(e)] != 0 {
				escaped++
				i += 2
			} else {
				return 0, 0, fault{InvalidEscape, i}
			}

		default:
			return 0, 0, fault{InvalidCharacter, i} // unescaped control
		}
	}
}

// scanNumber returns the end of the maximal run of number symbols starting
// at buf[start]. The shape of the run is checked by the literal parsers.
func scanNumber[S Symbol](buf []S, start int) int {
	i := start
	for i < len(buf) && isNumberSymbol(buf[i]) {
		i++
	}
	return i
}

// checkNumber reports whether num has the shape of a JSON number:
//
//	-? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
//
// If not, it returns the offset in num of the first offending symbol.
func checkNumber[S Symbol](num []S) (int, bool) {
	i := 0
	if i < len(num) && num[i] == '-' {
		i++
	}
	switch {
	case i >= len(num) || !isDigit(num[i]):
		return i, false
	case num[i] == '0':
		i++
		if i < len(num) && isDigit(num[i]) {
			return i, false // extra leading zeroes
		}
	default:
		for i < len(num) && isDigit(num[i]) {
			i++
		}
	}
	if i < len(num) && num[i] == '.' {
		i++
		d := i
		for i < len(num) && isDigit(num[i]) {
			i++
		}
		if i == d {
			return i, false // no digits after decimal point
		}
	}
	if i < len(num) && (num[i] == 'e' || num[i] == 'E') {
		i++
		if i < len(num) && (num[i] == '+' || num[i] == '-') {
			i++
		}
		d := i
		for i < len(num) && isDigit(num[i]) {
			i++
		}
		if i == d {
			return i, false // missing exponent digits
		}
	}
	return i, i == len(num)
}

// scanLiteral checks that buf[pos:] begins with the ASCII text of lit and is
// not followed by another name character.
func scanLiteral[S Symbol](buf []S, pos int, lit string) fault {
	if len(buf)-pos < len(lit) {
		for i := 0; pos+i < len(buf); i++ {
			if buf[pos+i] != S(lit[i]) {
				return fault{UnexpectedToken, pos}
			}
		}
		return fault{EndOfData, len(buf)}
	}
	for i := 0; i < len(lit); i++ {
		if buf[pos+i] != S(lit[i]) {
			return fault{UnexpectedToken, pos}
		}
	}
	if end := pos + len(lit); end < len(buf) && isNameSymbol(buf[end]) {
		return fault{UnexpectedToken, pos}
	}
	return fault{}
}
