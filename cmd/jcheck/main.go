// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jcheck validates JSON files and reports token statistics.
//
// Usage:
//
//	jcheck [flags] file.json ...
//
// With no files, jcheck reads standard input.
package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jcodec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Input options
	utf16 := flag.Bool("utf16", false, "Treat input as UTF-16 (little-endian unless marked by a BOM)")
	jwcc := flag.Bool("jwcc", false, "Allow comments and trailing commas (UTF-8 only)")
	maxDepth := flag.Int("max-depth", jcodec.DefaultMaxDepth, "Maximum container nesting depth")

	// Performance options
	cacheSize := flag.Int("cache", 0, "Size of the unescape cache shared across files (0 to disable)")

	// Logging options
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	prettyLogs := flag.Bool("pretty", false, "Enable pretty logging output")

	flag.Parse()
	setupLogging(*logLevel, *prettyLogs)

	if *utf16 && *jwcc {
		log.Fatal().Msg("The -jwcc and -utf16 flags cannot be combined")
	}

	reg := prometheus.NewRegistry()
	var cache *jcodec.Cache
	if *cacheSize > 0 {
		var err error
		cache, err = jcodec.NewCache(*cacheSize, reg)
		if err != nil {
			log.Fatal().Err(err).Int("size", *cacheSize).Msg("Failed to create cache")
		}
	}

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	cfg := config{utf16: *utf16, jwcc: *jwcc, maxDepth: *maxDepth, cache: cache}

	var nerr int
	for _, path := range files {
		st, err := cfg.checkFile(path)
		if err != nil {
			nerr++
			log.Error().Err(err).Str("file", path).Msg("Invalid input")
			continue
		}
		log.Info().
			Str("file", path).
			Int("values", st.Values).
			Int("objects", st.Objects).
			Int("arrays", st.Arrays).
			Int("members", st.Members).
			Int("max_depth", st.MaxDepth).
			Msg("Valid input")
	}
	if cache != nil {
		logCacheMetrics(reg)
	}
	if nerr != 0 {
		os.Exit(1)
	}
}

type config struct {
	utf16    bool
	jwcc     bool
	maxDepth int
	cache    *jcodec.Cache
}

func (c config) checkFile(path string) (stats, error) {
	data, err := readInput(path)
	if err != nil {
		return stats{}, err
	}
	log.Debug().Str("file", path).Int("bytes", len(data)).Msg("Read input")

	switch {
	case c.utf16:
		units, err := decodeUTF16(data)
		if err != nil {
			return stats{}, err
		}
		return check(c, jcodec.NewReader(units), units)
	case c.jwcc:
		r, err := jcodec.NewReaderJWCC(data)
		if err != nil {
			return stats{}, err
		}
		return check(c, r, data)
	default:
		return check(c, jcodec.NewReader(data), data)
	}
}

// check walks every value in r and attaches a line and column to any syntax
// error.
func check[S jcodec.Symbol](c config, r *jcodec.Reader[S], buf []S) (stats, error) {
	r.SetMaxDepth(c.maxDepth)
	r.UseCache(c.cache)

	var h counter[S]
	err := jcodec.WalkAll(r, &h)
	var se *jcodec.SyntaxError
	if errors.As(err, &se) {
		lc := jcodec.Locate(buf, se.Offset)
		return h.stats, fmt.Errorf("line %d, column %d: %w", lc.Line, lc.Column, err)
	}
	return h.stats, err
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeUTF16 converts data to code units, honoring and removing a leading
// byte order mark.
func decodeUTF16(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, errors.New("odd number of bytes in UTF-16 input")
	}
	var order binary.ByteOrder = binary.LittleEndian
	if len(data) >= 2 {
		switch {
		case data[0] == 0xff && data[1] == 0xfe:
			data = data[2:]
		case data[0] == 0xfe && data[1] == 0xff:
			order, data = binary.BigEndian, data[2:]
		}
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = order.Uint16(data[2*i:])
	}
	return units, nil
}

func logCacheMetrics(reg *prometheus.Registry) {
	mfs, err := reg.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to gather cache metrics")
		return
	}
	ev := log.Debug()
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			ev = ev.Float64(mf.GetName(), m.GetCounter().GetValue())
		}
	}
	ev.Msg("Unescape cache")
}

func setupLogging(level string, pretty bool) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Configure output format
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
