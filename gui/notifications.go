// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gui

import (
	"slices"
	"sync"
	"time"

	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
	"github.com/nfxdevelopment/graph-view-sub000/utils/sliceutils"
)

// Notification is a thread safe collection of transient [T], each shown for a fixed duration. Every change
// re-renders the whole collection into a single buffer and reports the [PaintUpdate] to the [GUI].
type Notification[T any] struct {
	m        *sync.Mutex
	entries  []entry[T]
	nextID   uint64
	limit    int
	drawFunc func(terminal.Size, []T) Draw
	lastSize terminal.Size
	g        GUI
	buffer   *bytes.SafeBuffer
}

type entry[T any] struct {
	id    uint64
	value T
	timer *time.Timer
}

// NewNotification builds a collection which renders into [buffer]. [drawable] is called with the live values
// oldest first, at most [limit] of them are kept, a new value evicts the oldest once the limit is reached. A
// limit of zero is unbounded.
func NewNotification[T any](
	g GUI,
	buffer *bytes.SafeBuffer,
	initial terminal.Size,
	limit int,
	drawable func(terminal.Size, []T) Draw,
) *Notification[T] {
	return &Notification[T]{
		m:        &sync.Mutex{},
		limit:    limit,
		drawFunc: drawable,
		lastSize: initial,
		g:        g,
		buffer:   buffer,
	}
}

// Push shows [value] for [timeout].
func (n *Notification[T]) Push(value T, timeout time.Duration) {
	n.m.Lock()
	defer n.m.Unlock()
	n.nextID++
	id := n.nextID
	if n.limit > 0 && len(n.entries) >= n.limit {
		n.entries[0].timer.Stop()
		n.entries = n.entries[1:]
	}
	n.entries = append(n.entries, entry[T]{
		id:    id,
		value: value,
		timer: time.AfterFunc(timeout, func() { n.expire(id) }),
	})
	n.g.Paint(n.render())
}

func (n *Notification[T]) expire(id uint64) {
	n.m.Lock()
	defer n.m.Unlock()
	before := len(n.entries)
	n.entries = slices.DeleteFunc(n.entries, func(e entry[T]) bool { return e.id == id })
	if len(n.entries) != before {
		n.g.Paint(n.render())
	}
}

// Resize re-renders the current values for the new terminal size.
func (n *Notification[T]) Resize(size terminal.Size) {
	n.m.Lock()
	defer n.m.Unlock()
	n.lastSize = size
	n.g.Paint(n.render())
}

// Clear removes every value immediately.
func (n *Notification[T]) Clear() {
	n.m.Lock()
	defer n.m.Unlock()
	for _, e := range n.entries {
		e.timer.Stop()
	}
	n.entries = nil
	n.g.Paint(n.render())
}

// Len is the number of values currently shown.
func (n *Notification[T]) Len() int {
	n.m.Lock()
	defer n.m.Unlock()
	return len(n.entries)
}

// render must be called with the lock held.
func (n *Notification[T]) render() PaintUpdate {
	hadContent := n.buffer.Len() != 0
	n.buffer.Reset()
	if len(n.entries) == 0 {
		if hadContent {
			return Invalidate
		}
		return None
	}
	values := sliceutils.Map(n.entries, func(e entry[T]) T { return e.value })
	n.drawFunc(n.lastSize, values).Draw(n.lastSize, n.buffer)
	if hadContent {
		// the new render may be smaller than what is on screen
		return Paint | Invalidate
	}
	return Paint
}
