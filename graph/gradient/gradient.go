// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package gradient picks the glyphs of a single line trace, one row value per column.
package gradient

import (
	"fmt"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/typography"
)

// Gap marks a column without a value, the line is broken either side of it.
const Gap = -1

// Stroke is one glyph of the line in canvas cells, rows grow downwards.
type Stroke struct {
	Column, Row int
	Glyph       Glyph
}

// Line joins consecutive column values. Each column gets the glyph leaving it towards the next column, a
// jump of more than one row is bridged with a vertical run in the leaving column so the line never breaks.
func Line(rows []int) []Stroke {
	at := func(column int) int {
		if column < 0 || column >= len(rows) {
			return Gap
		}
		return rows[column]
	}
	strokes := make([]Stroke, 0, len(rows))
	for column, row := range rows {
		next := at(column + 1)
		switch {
		case row == Gap:
		case next == Gap:
			// an end cap continues whatever slope arrives from the left
			glyph := Flat
			if prev := at(column - 1); prev != Gap {
				glyph = slope(prev, row)
			}
			strokes = append(strokes, Stroke{Column: column, Row: row, Glyph: glyph})
		default:
			strokes = append(strokes, Stroke{Column: column, Row: row, Glyph: slope(row, next)})
			strokes = append(strokes, bridge(column, row, next)...)
		}
	}
	return strokes
}

// bridge fills the rows strictly between [from] and [to] with a vertical run.
func bridge(column, from, to int) []Stroke {
	var run []Stroke
	for r := from + 1; r < to; r++ {
		run = append(run, Stroke{Column: column, Row: r, Glyph: Vertical})
	}
	for r := from - 1; r > to; r-- {
		run = append(run, Stroke{Column: column, Row: r, Glyph: Vertical})
	}
	return run
}

// slope is the glyph leaving [row] towards [next] one column to the right, a smaller row is higher up.
func slope(row, next int) Glyph {
	switch {
	case next < row:
		return Rising
	case next > row:
		return Falling
	default:
		return Flat
	}
}

// Glyph is a piece of a line.
type Glyph int

const (
	Blank Glyph = iota
	Rising
	Falling
	Flat
	Vertical
)

var glyphs = [...]string{
	Blank:    "",
	Rising:   "/",
	Falling:  `\`,
	Flat:     typography.Horizontal,
	Vertical: typography.Vertical,
}

// Draw is what the glyph prints as, [Blank] prints nothing.
func (g Glyph) Draw() string {
	if g < 0 || int(g) >= len(glyphs) {
		panic(fmt.Sprintf("unexpected glyph %d", g))
	}
	return glyphs[g]
}

func (g Glyph) String() string {
	if g == Blank {
		return "blank"
	}
	return g.Draw()
}
