// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package marker_test

import (
	"testing"

	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/marker"
	"github.com/nfxdevelopment/graph-view-sub000/utils/th"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

var (
	rect      = marker.Rect{X: 10, Y: 5, Width: 100, Height: 20}
	unityView = marker.View{X: zoom.Unity, Y: zoom.Unity}
)

func TestToScreen(t *testing.T) {
	t.Parallel()
	p, pinned := marker.ToScreen(marker.Position{X: 0.5, Y: 0.5}, unityView, rect)
	assert.Equal(t, marker.Point{X: 60, Y: 15}, p)
	assert.Check(t, !pinned.Any())

	p, _ = marker.ToScreen(marker.Position{X: 0, Y: 1}, unityView, rect)
	assert.Equal(t, marker.Point{X: 10, Y: 5}, p, "Y position 1 is the top row")
	p, _ = marker.ToScreen(marker.Position{X: 1, Y: 0}, unityView, rect)
	assert.Equal(t, marker.Point{X: 110, Y: 25}, p)
}

func TestZoomedView(t *testing.T) {
	t.Parallel()
	v := marker.View{X: zoom.State{Zoom: 0.5, Offset: 0.25}, Y: zoom.Unity}
	p, pinned := marker.ToScreen(marker.Position{X: 0.5, Y: 0}, v, rect)
	assert.Equal(t, marker.Point{X: 60, Y: 25}, p)
	assert.Check(t, !pinned.Any())
}

func TestOffScreenPinsToEdges(t *testing.T) {
	t.Parallel()
	v := marker.View{X: zoom.State{Zoom: 0.1, Offset: 0.5}, Y: zoom.State{Zoom: 0.5, Offset: 0}}
	p, pinned := marker.ToScreen(marker.Position{X: 0.1, Y: 0.9}, v, rect)
	assert.Equal(t, marker.Point{X: 10, Y: 5}, p)
	assert.Equal(t, marker.PinnedLeft|marker.PinnedTop, pinned)
	assert.Equal(t, "left|top", pinned.String())

	p, pinned = marker.ToScreen(marker.Position{X: 0.9, Y: -1}, v, rect)
	assert.Equal(t, marker.Point{X: 110, Y: 25}, p)
	assert.Equal(t, marker.PinnedRight|marker.PinnedBottom, pinned)
	assert.Equal(t, "none", marker.Pinned(0).String())
}

func TestPlace(t *testing.T) {
	t.Parallel()
	xAxis := axis.MustNew(20, 20_000, axis.Logarithmic)
	yAxis := axis.MustNew(0, 1, axis.Linear)
	p, pinned := marker.Place(marker.Marker{Label: "peak", X: 632.4555320336759, Y: 1}, xAxis, yAxis, unityView, rect)
	th.AssertFloatEqual(t, 60, p.X, 9)
	assert.Equal(t, 5.0, p.Y)
	assert.Check(t, !pinned.Any())
}

func TestAlwaysInsideRect_Property(t *testing.T) {
	t.Parallel()
	state := rapid.Custom(func(t *rapid.T) zoom.State {
		z := rapid.Float64Range(zoom.MinimumZoom, 1).Draw(t, "zoom")
		return zoom.State{Zoom: z, Offset: rapid.Float64Range(0, 1-z).Draw(t, "offset")}
	})
	rapid.Check(t, func(t *rapid.T) {
		pos := marker.Position{
			X: rapid.Float64Range(-10, 10).Draw(t, "x"),
			Y: rapid.Float64Range(-10, 10).Draw(t, "y"),
		}
		p, _ := marker.ToScreen(pos, marker.View{X: state.Draw(t, "x state"), Y: state.Draw(t, "y state")}, rect)
		if p.X < rect.X || p.X > rect.X+rect.Width || p.Y < rect.Y || p.Y > rect.Y+rect.Height {
			t.Fatalf("%+v mapped outside %+v: %+v", pos, rect, p)
		}
	})
}
