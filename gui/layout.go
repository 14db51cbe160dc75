// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gui

import (
	"fmt"
	"strconv"
)

// Position anchors a component to an edge or the centre of the terminal on each axis, Padding then moves
// it inwards by whole cells.
type Position struct {
	Vertical   VerticalAlignment
	Horizontal HorizontalAlignment
	Padding    Padding
}

func (p Position) String() string {
	return fmt.Sprintf("{%s %s %s}", p.Vertical, p.Horizontal, p.Padding)
}

// Padding is in terminal cells.
type Padding struct {
	Top, Bottom, Left, Right int
}

func (p Padding) String() string {
	return fmt.Sprintf("T:%d B:%d L:%d R:%d", p.Top, p.Bottom, p.Left, p.Right)
}

type HorizontalAlignment int
type VerticalAlignment int

const (
	Left HorizontalAlignment = iota + 1
	Centre
	Right
)

const (
	Top VerticalAlignment = iota + 1
	Middle
	Bottom
)

var (
	horizontalNames = [...]string{Left: "Left", Centre: "Centre", Right: "Right"}
	verticalNames   = [...]string{Top: "Top", Middle: "Middle", Bottom: "Bottom"}
)

func (a HorizontalAlignment) String() string {
	if a >= Left && a <= Right {
		return horizontalNames[a]
	}
	return "HorizontalAlignment(" + strconv.Itoa(int(a)) + ")"
}

func (a VerticalAlignment) String() string {
	if a >= Top && a <= Bottom {
		return verticalNames[a]
	}
	return "VerticalAlignment(" + strconv.Itoa(int(a)) + ")"
}
