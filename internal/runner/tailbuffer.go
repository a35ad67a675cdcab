// Copyright 2020 - 2022, Berk D. Demir and the runitor contributors
// SPDX-License-Identifier: 0BSD
package runner

import (
	"bytes"
	"io"
	"sync"
)

// DefaultTailSize is how many trailing bytes of command output are kept for
// the report ping body.
const DefaultTailSize = 10_000

// TailBuffer is an io.Writer keeping only the last Cap() bytes written to it,
// backed by a fixed size ring of bytes.
//
// It is safe for concurrent writes; a command's stdout and stderr are copied
// into it from separate goroutines.
type TailBuffer struct {
	mu  sync.Mutex
	buf []byte
	idx int
}

// NewTailBuffer allocates a TailBuffer and its backing array with the
// specified capacity.
func NewTailBuffer(cap int) *TailBuffer {
	return &TailBuffer{buf: make([]byte, 0, max(cap, 1))}
}

// Len returns the number of bytes held.
func (t *TailBuffer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.buf)
}

// Cap returns the capacity of the buffer.
func (t *TailBuffer) Cap() int {
	return cap(t.buf)
}

// Wrapped returns true if the buffer overwrote at least one byte.
func (t *TailBuffer) Wrapped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.wrapped()
}

func (t *TailBuffer) wrapped() bool {
	return len(t.buf) == cap(t.buf) && t.idx > 0
}

func (t *TailBuffer) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n = len(p)

	// Only the last cap bytes of p can be observed.
	if len(p) > cap(t.buf) {
		skip := len(p) - cap(t.buf)
		p = p[skip:]
		if len(t.buf) < cap(t.buf) {
			t.idx = len(t.buf)
		}
		t.idx = (t.idx + skip) % cap(t.buf)
		t.buf = t.buf[:cap(t.buf)]
	}

	// grow slice by write size, up to capacity.
	if len(t.buf) != cap(t.buf) {
		t.buf = t.buf[:min(t.idx+len(p), cap(t.buf))]
	}

	for len(p) > 0 {
		cn := copy(t.buf[t.idx:], p)
		p = p[cn:]
		t.idx = (t.idx + cn) % cap(t.buf)
	}

	return n, nil
}

// Bytes returns a copy of the held bytes, oldest first.
func (t *TailBuffer) Bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]byte, 0, len(t.buf))
	if t.wrapped() {
		out = append(out, t.buf[t.idx:]...)
		return append(out, t.buf[:t.idx]...)
	}

	return append(out, t.buf...)
}

// Reader returns a reader over a snapshot of the held bytes.
func (t *TailBuffer) Reader() io.Reader {
	return bytes.NewReader(t.Bytes())
}
