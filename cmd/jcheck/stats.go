// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import "github.com/creachadair/jcodec"

type stats struct {
	Values   int // scalar values
	Objects  int
	Arrays   int
	Members  int
	MaxDepth int
}

// counter is a jcodec.Handler that gathers stats. It decodes every member
// name, which checks its escapes and exercises the cache.
type counter[S jcodec.Symbol] struct {
	stats
	depth int
}

func (c *counter[S]) push() {
	c.depth++
	c.MaxDepth = max(c.MaxDepth, c.depth)
}

func (c *counter[S]) BeginObject(jcodec.Anchor[S]) error { c.Objects++; c.push(); return nil }
func (c *counter[S]) EndObject(jcodec.Anchor[S]) error   { c.depth--; return nil }
func (c *counter[S]) BeginArray(jcodec.Anchor[S]) error  { c.Arrays++; c.push(); return nil }
func (c *counter[S]) EndArray(jcodec.Anchor[S]) error    { c.depth--; return nil }
func (c *counter[S]) EndMember(jcodec.Anchor[S]) error   { return nil }
func (c *counter[S]) Value(jcodec.Anchor[S]) error       { c.Values++; return nil }

func (c *counter[S]) BeginMember(loc jcodec.Anchor[S]) error {
	c.Members++
	_, err := loc.Unquote()
	return err
}
