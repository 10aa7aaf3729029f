// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcodec

// TokenKind is the type of a lexical token in the JSON grammar.
type TokenKind byte

// Constants defining the valid TokenKind values.
const (
	None           TokenKind = iota // no token: end of input or unrecognized
	BeginObject                     // left brace "{"
	EndObject                       // right brace "}"
	BeginArray                      // left square bracket "["
	EndArray                        // right square bracket "]"
	String                          // quoted string
	Number                          // number
	True                            // constant: true
	False                           // constant: false
	Null                            // constant: null
	NameSeparator                   // colon ":"
	ValueSeparator                  // comma ","
)

var tokenStr = [...]string{
	None:           "none",
	BeginObject:    `"{"`,
	EndObject:      `"}"`,
	BeginArray:     `"["`,
	EndArray:       `"]"`,
	String:         "string",
	Number:         "number",
	True:           "true",
	False:          "false",
	Null:           "null",
	NameSeparator:  `":"`,
	ValueSeparator: `","`,
}

func (t TokenKind) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[None]
	}
	return tokenStr[v]
}

// tokenOf maps the first symbol of a token to its kind.
var tokenOf = [128]TokenKind{
	'{': BeginObject,
	'}': EndObject,
	'[': BeginArray,
	']': EndArray,
	'"': String,
	'-': Number,
	'0': Number, '1': Number, '2': Number, '3': Number, '4': Number,
	'5': Number, '6': Number, '7': Number, '8': Number, '9': Number,
	't': True,
	'f': False,
	'n': Null,
	':': NameSeparator,
	',': ValueSeparator,
}

func kindOf[S Symbol](c S) TokenKind {
	if c >= 0x80 {
		return None
	}
	return tokenOf[int(c)]
}

func isSpace[S Symbol](c S) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

// isNumberSymbol reports whether c may appear in a number token. The scanner
// accepts the maximal run of these and leaves validation to the parsers.
func isNumberSymbol[S Symbol](c S) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func isDigit[S Symbol](c S) bool { return c >= '0' && c <= '9' }

func isNameSymbol[S Symbol](c S) bool { return c >= 'a' && c <= 'z' }
