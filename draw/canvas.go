// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package draw

import (
	"io"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
)

// Layer orders what may overwrite a canvas cell, a higher layer replaces a lower one.
type Layer int

const (
	Empty Layer = iota
	MinorGrid
	MajorGrid
	Envelope
	Trace
	Marker
)

// Palette colours every run of cells on the same layer, layers without an entry are written plain.
type Palette map[Layer]func(string) string

type cell struct {
	glyph string
	layer Layer
}

// Canvas is a grid of single width glyphs, 0 indexed from the top left.
type Canvas struct {
	width, height int
	cells         []cell
}

func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	return &Canvas{width: width, height: height, cells: make([]cell, width*height)}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Set writes [glyph] at (x, y) when [layer] is at least the layer already there. Writes off the canvas are
// dropped, the return reports whether the glyph was stored.
func (c *Canvas) Set(x, y int, glyph string, layer Layer) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	existing := &c.cells[y*c.width+x]
	if layer < existing.layer {
		return false
	}
	existing.glyph = glyph
	existing.layer = layer
	return true
}

// At returns the glyph and layer at (x, y), off canvas cells read as [Empty].
func (c *Canvas) At(x, y int) (string, Layer) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return "", Empty
	}
	v := c.cells[y*c.width+x]
	return v.glyph, v.layer
}

// Row renders row [y] with [p], empty cells are spaces.
func (c *Canvas) Row(y int, p Palette) string {
	var b strings.Builder
	runStart := 0
	flush := func(end int) {
		if runStart == end {
			return
		}
		var run strings.Builder
		for x := runStart; x < end; x++ {
			g := c.cells[y*c.width+x].glyph
			if g == "" {
				g = " "
			}
			run.WriteString(g)
		}
		if style, ok := p[c.cells[y*c.width+runStart].layer]; ok && style != nil {
			b.WriteString(style(run.String()))
		} else {
			b.WriteString(run.String())
		}
		runStart = end
	}
	for x := 1; x < c.width; x++ {
		if c.cells[y*c.width+x].layer != c.cells[y*c.width+x-1].layer {
			flush(x)
		}
	}
	flush(c.width)
	return b.String()
}

// WriteTo positions the cursor at every row (terminal coordinates are 1 indexed) and writes the canvas.
func (c *Canvas) WriteTo(w io.Writer, originRow, originColumn int, p Palette) error {
	for y := range c.height {
		if _, err := io.WriteString(w, ansi.CursorPosition(originRow+y, originColumn)+c.Row(y, p)); err != nil {
			return err
		}
	}
	return nil
}

// String is the canvas without any styling, one line per row.
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y := range c.height {
		rows[y] = c.Row(y, nil)
	}
	return strings.Join(rows, "\n")
}
