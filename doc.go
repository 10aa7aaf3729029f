// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jcodec implements a JSON tokenizer and escape engine that work
// directly on a caller-owned buffer of UTF-8 bytes or UTF-16 code units.
//
// # Reading
//
// The Reader type is a forward-only cursor over a buffer. Construct a reader
// for either symbol width and read tokens and values from it in the order the
// input is expected to contain them:
//
//	r := jcodec.NewReader(input) // []byte or []uint16
//	if err := r.ReadBeginObject(); err != nil {
//	   log.Fatalf("Read failed: %v", err)
//	}
//	var n int
//	for {
//	   done, err := r.ReadIsEndObjectOrValueSeparator(&n)
//	   if err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   } else if done {
//	      break
//	   }
//	   name, err := r.ReadPropertyName()
//	   ...
//	}
//
// Methods named Read* report failures as errors of concrete type
// *jcodec.SyntaxError, which carries an ErrorKind and the offset in the input
// at which the failure was detected. Methods named Try* report only whether
// they succeeded.
//
// Strings may be read with no copying: ReadStringSpan returns the raw content
// of a string along with its escaped count, the number of symbols by which the
// decoded text is shorter than the raw text. A span with escaped count zero
// is already decoded; otherwise the count gives the exact decoded length.
//
// # Escaping
//
// Escape, AppendEscaped, and EscapeString write the escaped form of text
// under an EscapePolicy. NeedsEscaping finds the first unit that requires
// escaping, so that clean text can be written as-is, and MaxEscapedLength
// bounds the size of the output.
//
// # Walking
//
// Walk reads one value from a Reader and calls methods on a Handler to
// report its structure:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//
// Each method is passed an Anchor giving the kind and location of the token.
// The Anchor passed to a handler method is only valid for the duration of that
// method call.
//
// # Literals
//
// The Parse* functions decode integers, floating-point values, ISO 8601 date
// and time values, and GUIDs from a slice of symbols; the corresponding Reader
// methods read them from string or number tokens. Base64 is handled by the
// b64 subpackage.
package jcodec
