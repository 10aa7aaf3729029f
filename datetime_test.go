// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec_test

import (
	"testing"
	"time"

	"github.com/creachadair/jcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  jcodec.DateTime
	}{
		{"1997-07-16T19:20:30.45Z", jcodec.DateTime{
			Year: 1997, Month: 7, Day: 16, Hour: 19, Minute: 20, Second: 30,
			Ticks: 4_500_000, Zone: jcodec.ZoneUTC,
		}},
		{"2024-02-29", jcodec.DateTime{Year: 2024, Month: 2, Day: 29}},
		{"2000-02-29T00:00", jcodec.DateTime{Year: 2000, Month: 2, Day: 29}},
		{"0001-01-01T00:00:00Z", jcodec.DateTime{Year: 1, Month: 1, Day: 1, Zone: jcodec.ZoneUTC}},
		{"9999-12-31T23:59:59.9999999", jcodec.DateTime{
			Year: 9999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Ticks: 9_999_999,
		}},
		{"2024-06-01T12:30+05:30", jcodec.DateTime{
			Year: 2024, Month: 6, Day: 1, Hour: 12, Minute: 30, Zone: jcodec.ZoneOffset, Offset: 330,
		}},
		{"2024-06-01T12:30:15-0800", jcodec.DateTime{
			Year: 2024, Month: 6, Day: 1, Hour: 12, Minute: 30, Second: 15,
			Zone: jcodec.ZoneOffset, Offset: -480,
		}},
		{"2024-06-01T12:30:15.1+00:00", jcodec.DateTime{
			Year: 2024, Month: 6, Day: 1, Hour: 12, Minute: 30, Second: 15,
			Ticks: 1_000_000, Zone: jcodec.ZoneOffset,
		}},
	}
	for _, test := range tests {
		got, err := jcodec.ParseDateTime([]byte(test.input))
		if assert.NoError(t, err, "input %q", test.input) {
			assert.Equal(t, test.want, got, "input %q", test.input)
		}

		got, err = jcodec.ParseDateTime(units(test.input))
		if assert.NoError(t, err, "input %q (UTF-16)", test.input) {
			assert.Equal(t, test.want, got, "input %q (UTF-16)", test.input)
		}
	}
}

func TestParseDateTime_errors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"", 0},
		{"1997", 4},
		{"97-07-16", 0},
		{"1997/07/16", 4},
		{"0000-01-01", 0},
		{"2024-00-01", 5},
		{"2024-13-01", 5},
		{"2024-01-32", 8},
		{"2024-04-31", 8},
		{"2023-02-29", 8},
		{"1900-02-29", 8},
		{"2024-01-01T", 11},
		{"2024-01-01T24:00", 11},
		{"2024-01-01T12", 13},
		{"2024-01-01T12:60", 14},
		{"2024-01-01T12:30:60", 17},
		{"2024-01-01T12:30:00.", 20},
		{"2024-01-01T12:30:00.12345678", 27},
		{"2024-01-01T12:30Q", 16},
		{"2024-01-01T12:30+5", 17},
		{"2024-01-01T12:30+15:00", 17},
		{"2024-01-01T12:30Z ", 17},
	}
	for _, test := range tests {
		_, err := jcodec.ParseDateTime([]byte(test.input))
		var se *jcodec.SyntaxError
		if assert.ErrorAs(t, err, &se, "input %q", test.input) {
			assert.Equal(t, jcodec.InvalidDateTimeField, se.Kind, "input %q", test.input)
			assert.Equal(t, test.offset, se.Offset, "input %q: %v", test.input, err)
		}
	}
}

func TestDateTime_Time(t *testing.T) {
	loc := time.FixedZone("test", 3600)

	d, err := jcodec.ParseDateTime([]byte("2024-06-01T12:30:15.25"))
	require.NoError(t, err)
	assert.Equal(t, jcodec.ZoneUnspecified, d.Zone)
	assert.True(t, d.Time(loc).Equal(time.Date(2024, 6, 1, 12, 30, 15, 250_000_000, loc)))
	assert.Equal(t, time.Local, d.Time(nil).Location())

	d, err = jcodec.ParseDateTime([]byte("2024-06-01T12:30:15Z"))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Time(loc).Location())

	d, err = jcodec.ParseDateTime([]byte("2024-06-01T12:30-02:30"))
	require.NoError(t, err)
	_, off := d.Time(nil).Zone()
	assert.Equal(t, -9000, off)
	assert.True(t, d.Time(nil).Equal(time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)))
}

func TestDateTime_String(t *testing.T) {
	for _, input := range []string{
		"1997-07-16T19:20:30.4500000Z",
		"2024-06-01T12:30:00",
		"2024-06-01T12:30:00.0000001-08:00",
		"2024-06-01T00:00:00+05:45",
	} {
		d, err := jcodec.ParseDateTime([]byte(input))
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, input, d.String())
	}
}

func TestReader_dateTime(t *testing.T) {
	r := jcodec.NewReaderString(`["1997-07-16T19:20:30.45Z", "1997\u002d07-16", "1997-02-30"]`)
	require.NoError(t, r.ReadBeginArray())

	d, err := r.ReadDateTime()
	require.NoError(t, err)
	assert.Equal(t, jcodec.ZoneUTC, d.Zone)
	assert.Equal(t, 4_500_000, d.Ticks)
	require.NoError(t, r.ReadValueSeparator())

	d, err = r.ReadDateTime()
	require.NoError(t, err)
	assert.Equal(t, jcodec.DateTime{Year: 1997, Month: 7, Day: 16}, d)
	require.NoError(t, r.ReadValueSeparator())

	_, err = r.ReadDateTime()
	var se *jcodec.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, jcodec.InvalidDateTimeField, se.Kind)
	assert.Equal(t, 56, se.Offset) // the day field of the third string

	u := jcodec.NewReader(units(`"2024-02-29T08:15Z"`))
	d, err = u.ReadDateTime()
	require.NoError(t, err)
	assert.Equal(t, jcodec.DateTime{Year: 2024, Month: 2, Day: 29, Hour: 8, Minute: 15, Zone: jcodec.ZoneUTC}, d)
}
