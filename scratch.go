// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcodec

import "sync"

const (
	// scratchStackSize is the largest staging buffer, in units, that callers
	// take from an array on their own stack. Larger requests use the pool.
	scratchStackSize = 128

	// maxPooledSize bounds the capacity of buffers returned to the pool, so
	// that one very large string does not pin memory indefinitely.
	maxPooledSize = 1 << 16
)

var (
	bytePool = sync.Pool{New: func() any { b := make([]byte, 0, 1024); return &b }}
	unitPool = sync.Pool{New: func() any { u := make([]uint16, 0, 512); return &u }}
)

func poolFor[S Symbol]() *sync.Pool {
	var z S
	if _, ok := any(z).(byte); ok {
		return &bytePool
	}
	return &unitPool
}

// A scratchBuffer is a staging buffer for escaping or unescaping. Its release
// method must be called on every path out of the scope that acquired it,
// including error paths; the usual form is
//
//	var stack [scratchStackSize]S
//	sb := getScratch(stack[:], n)
//	defer sb.release()
type scratchBuffer[S Symbol] struct {
	buf    []S
	pooled *[]S // nil if buf is the caller's stack array
}

// getScratch returns a buffer of length n. It uses stack if it is large
// enough, and otherwise borrows from the pool for S.
func getScratch[S Symbol](stack []S, n int) scratchBuffer[S] {
	if n <= len(stack) {
		return scratchBuffer[S]{buf: stack[:n]}
	}
	p := poolFor[S]().Get().(*[]S)
	if cap(*p) < n {
		*p = make([]S, n)
	}
	return scratchBuffer[S]{buf: (*p)[:n], pooled: p}
}

// release clears the buffer, which may have held sensitive text, and returns
// it to its pool.
func (s scratchBuffer[S]) release() {
	clear(s.buf[:cap(s.buf)])
	if s.pooled != nil && cap(*s.pooled) <= maxPooledSize {
		poolFor[S]().Put(s.pooled)
	}
}
