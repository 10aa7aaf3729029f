// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import (
	"fmt"
	"time"
)

// ZoneKind records how a DateTime designates its time zone.
type ZoneKind byte

// Constants defining the valid ZoneKind values.
const (
	ZoneUnspecified ZoneKind = iota // no designator: local or unknown zone
	ZoneUTC                         // the designator "Z"
	ZoneOffset                      // a numeric designator, e.g. "+05:30"
)

func (z ZoneKind) String() string {
	switch z {
	case ZoneUnspecified:
		return "unspecified"
	case ZoneUTC:
		return "UTC"
	case ZoneOffset:
		return "offset"
	}
	return "unknown zone"
}

// TicksPerSecond is the resolution of DateTime.Ticks.
const TicksPerSecond = 10_000_000

// A DateTime is a calendar date and time of day as written in ISO 8601 text.
// Unlike a time.Time, it keeps the distinction between text with no zone
// designator and text explicitly in UTC.
type DateTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int

	// Ticks is the fraction of a second in units of 100ns, 0 to 9999999.
	Ticks int

	Zone ZoneKind

	// Offset is the zone offset east of UTC in minutes, if Zone is ZoneOffset.
	Offset int
}

// Time converts d to a time.Time. A DateTime with no zone designator is
// interpreted in loc, or in time.Local if loc == nil.
func (d DateTime) Time(loc *time.Location) time.Time {
	switch d.Zone {
	case ZoneUTC:
		loc = time.UTC
	case ZoneOffset:
		loc = time.FixedZone("", d.Offset*60)
	default:
		if loc == nil {
			loc = time.Local
		}
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, d.Ticks*100, loc)
}

// String renders d in the extended ISO 8601 form, with seven fraction digits
// if the fraction is nonzero.
func (d DateTime) String() string {
	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
	if d.Ticks != 0 {
		s += fmt.Sprintf(".%07d", d.Ticks)
	}
	switch d.Zone {
	case ZoneUTC:
		s += "Z"
	case ZoneOffset:
		off, sign := d.Offset, '+'
		if off < 0 {
			off, sign = -off, '-'
		}
		s += fmt.Sprintf("%c%02d:%02d", sign, off/60, off%60)
	}
	return s
}

// ParseDateTime parses text of the form
//
//	YYYY-MM-DD[Thh:mm[:ss[.fffffff]]][Z | ±hh[:]mm]
//
// Each field is range checked, and the day is checked against the length of
// the month including leap years. Failures are errors of kind
// InvalidDateTimeField whose offset is that of the offending field.
func ParseDateTime[S Symbol](text []S) (DateTime, error) {
	d, f := parseDateTime(text)
	if !f.ok() {
		return DateTime{}, dateError(f, text)
	}
	return d, nil
}

func dateError[S Symbol](f fault, text []S) error {
	return syntaxErrorf(f.kind, f.pos, "invalid date/time %q", codecFor[S]().string(text))
}

// A dateScanner consumes fixed-width fields from text. The first failure
// sticks; later calls are no-ops.
type dateScanner[S Symbol] struct {
	text []S
	pos  int
	f    fault
}

func (s *dateScanner[S]) fail(at int) {
	if s.f.ok() {
		s.f = fault{InvalidDateTimeField, at}
	}
}

// more reports whether any input remains.
func (s *dateScanner[S]) more() bool { return s.f.ok() && s.pos < len(s.text) }

// peek reports whether the next symbol is c.
func (s *dateScanner[S]) peek(c byte) bool { return s.more() && s.text[s.pos] == S(c) }

// expect consumes c or fails.
func (s *dateScanner[S]) expect(c byte) {
	if !s.peek(c) {
		s.fail(s.pos)
		return
	}
	s.pos++
}

// field consumes exactly n digits and checks the value is in [lo, hi].
func (s *dateScanner[S]) field(n, lo, hi int) int {
	if !s.f.ok() {
		return 0
	}
	start := s.pos
	if len(s.text)-start < n {
		s.fail(start)
		return 0
	}
	v := 0
	for _, c := range s.text[start : start+n] {
		if !isDigit(c) {
			s.fail(start)
			return 0
		}
		v = v*10 + int(c-'0')
	}
	if v < lo || v > hi {
		s.fail(start)
		return 0
	}
	s.pos += n
	return v
}

// maxFractionDigits is the number of fraction digits a tick count holds.
const maxFractionDigits = 7

func parseDateTime[S Symbol](text []S) (DateTime, fault) {
	s := &dateScanner[S]{text: text}
	var d DateTime

	d.Year = s.field(4, 1, 9999)
	s.expect('-')
	d.Month = s.field(2, 1, 12)
	s.expect('-')
	dayAt := s.pos
	d.Day = s.field(2, 1, 31)
	if s.f.ok() && d.Day > daysIn(d.Year, d.Month) {
		s.fail(dayAt)
	}

	if s.peek('T') {
		s.pos++
		d.Hour = s.field(2, 0, 23)
		s.expect(':')
		d.Minute = s.field(2, 0, 59)
		if s.peek(':') {
			s.pos++
			d.Second = s.field(2, 0, 59)
			if s.peek('.') {
				s.pos++
				d.Ticks = s.fraction()
			}
		}
	}

	switch {
	case s.peek('Z'):
		s.pos++
		d.Zone = ZoneUTC
	case s.peek('+') || s.peek('-'):
		neg := s.text[s.pos] == '-'
		s.pos++
		h := s.field(2, 0, 14)
		if s.peek(':') {
			s.pos++
		}
		m := s.field(2, 0, 59)
		d.Zone, d.Offset = ZoneOffset, h*60+m
		if neg {
			d.Offset = -d.Offset
		}
	}
	if s.more() {
		s.fail(s.pos) // trailing garbage
	}
	if !s.f.ok() {
		return DateTime{}, s.f
	}
	return d, fault{}
}

// fraction consumes 1 to 7 digits of a fractional second and scales them to
// ticks.
func (s *dateScanner[S]) fraction() int {
	start := s.pos
	v := 0
	for s.more() && isDigit(s.text[s.pos]) {
		if s.pos-start == maxFractionDigits {
			s.fail(s.pos)
			return 0
		}
		v = v*10 + int(s.text[s.pos]-'0')
		s.pos++
	}
	n := s.pos - start
	if n == 0 {
		s.fail(start)
		return 0
	}
	for ; n < maxFractionDigits; n++ {
		v *= 10
	}
	return v
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysIn(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthDays[month]
}

func isLeap(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

// ReadDateTime reads a string literal containing an ISO 8601 date and time.
// Error offsets refer to the decoded content of the string.
func (r *Reader[S]) ReadDateTime() (DateTime, error) {
	var d DateTime
	err := r.withDecoded(func(text []S, base int) error {
		var f fault
		if d, f = parseDateTime(text); !f.ok() {
			return dateError(f.shift(base), text)
		}
		return nil
	})
	return d, err
}
