// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gui

import (
	"strings"
	"sync"

	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
)

// PaintUpdate is a bit set of what a component did to its buffer.
type PaintUpdate int

const (
	None  PaintUpdate = 0
	Paint PaintUpdate = 1 << (iota - 1)
	Invalidate
)

func (p PaintUpdate) String() string {
	if p == None {
		return "None"
	}
	var parts []string
	for _, flag := range []struct {
		bit  PaintUpdate
		name string
	}{{Paint, "Paint"}, {Invalidate, "Invalidate"}} {
		if p&flag.bit != 0 {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, "|")
}

// counts are monotonic, one per kind of [PaintUpdate].
type counts struct {
	paints, invalidations uint64
}

func (c counts) add(update PaintUpdate) counts {
	if update&Paint != 0 {
		c.paints++
	}
	if update&Invalidate != 0 {
		c.invalidations++
	}
	return c
}

// State is the [GUI] used by the interactive shell. Paints and invalidations are counted, a token records
// the counts it saw so the frame loop can acknowledge exactly what it drew while new paints keep arriving.
type State struct {
	mu     sync.Mutex
	marked counts
	drawn  counts
}

var _ GUI = (*State)(nil)

func NewGUIState() *State {
	return &State{}
}

func (g *State) Paint(update PaintUpdate) {
	if update == None {
		return
	}
	g.mu.Lock()
	g.marked = g.marked.add(update)
	g.mu.Unlock()
}

// Drawn acknowledges everything [t] saw. Acknowledging an older token never undoes a newer one.
func (g *State) Drawn(t Token) {
	token, ok := t.(paintToken)
	check.Check(ok, "should only be called with a token from GetState")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.drawn.paints = max(g.drawn.paints, token.marked.paints)
	g.drawn.invalidations = max(g.drawn.invalidations, token.marked.invalidations)
}

func (g *State) GetState() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	return paintToken{marked: g.marked, drawn: g.drawn}
}

// paintToken is a snapshot of the counts, anything marked after the last acknowledgement is pending.
type paintToken struct {
	marked, drawn counts
}

var _ Token = paintToken{}

func (p paintToken) ShouldDraw() bool       { return p.marked.paints > p.drawn.paints }
func (p paintToken) ShouldInvalidate() bool { return p.marked.invalidations > p.drawn.invalidations }
