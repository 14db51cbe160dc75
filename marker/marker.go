// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package marker maps single points (cursors, peak markers) onto the drawable rectangle. Points outside the
// viewport are pinned to the nearest edge instead of being hidden.
package marker

import (
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

// Rect is the drawable area in screen units, Y grows downwards. The far edges are inclusive: a point at
// axis position 1 lands on X+Width.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

type Point struct {
	X, Y float64
}

// Position is a point in axis positions, both in [0, 1] when on the axis.
type Position struct {
	X, Y float64
}

// View is the effective viewport of each axis.
type View struct {
	X, Y zoom.State
}

// Pinned records which edges of the rectangle a point was clamped to.
type Pinned uint8

const (
	PinnedLeft Pinned = 1 << iota
	PinnedRight
	PinnedTop
	PinnedBottom
)

func (p Pinned) Any() bool { return p != 0 }

func (p Pinned) String() string {
	if p == 0 {
		return "none"
	}
	var b []string
	for _, edge := range []struct {
		flag Pinned
		name string
	}{{PinnedLeft, "left"}, {PinnedRight, "right"}, {PinnedTop, "top"}, {PinnedBottom, "bottom"}} {
		if p&edge.flag != 0 {
			b = append(b, edge.name)
		}
	}
	return strings.Join(b, "|")
}

// Project maps one axis position through [s] onto a screen extent starting at [origin]. The result is
// clamped into [origin, origin+extent], [below] and [above] report which side clamped it.
func Project(position float64, s zoom.State, origin, extent float64) (screen float64, below, above bool) {
	v := s.ToViewport(position)
	switch {
	case v < 0:
		return origin, true, false
	case v > 1:
		return origin + extent, false, true
	default:
		return origin + v*extent, false, false
	}
}

// ToScreen maps [p] into [r]. Position 1 on the Y axis is the top row.
func ToScreen(p Position, v View, r Rect) (Point, Pinned) {
	var pinned Pinned
	x, left, right := Project(p.X, v.X, r.X, r.Width)
	if left {
		pinned |= PinnedLeft
	}
	if right {
		pinned |= PinnedRight
	}
	y, bottom, top := Project(p.Y, v.Y, 0, r.Height)
	if bottom {
		pinned |= PinnedBottom
	}
	if top {
		pinned |= PinnedTop
	}
	return Point{X: x, Y: r.Y + r.Height - numeric.Clamp(y, 0, r.Height)}, pinned
}

// Marker is a labelled point in axis values.
type Marker struct {
	Label string
	X, Y  float64
}

// Position converts the marker's values into axis positions.
func (m Marker) Position(xAxis, yAxis axis.Parameters) Position {
	return Position{X: xAxis.ValueToPosition(m.X), Y: yAxis.ValueToPosition(m.Y)}
}

// Place is [ToScreen] for a marker in axis values.
func Place(m Marker, xAxis, yAxis axis.Parameters, v View, r Rect) (Point, Pinned) {
	return ToScreen(m.Position(xAxis, yAxis), v, r)
}
