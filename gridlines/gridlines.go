// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package gridlines computes where grid lines sit on an axis under the current zoom, and maintains nested
// minor grid lines which exist only while there is enough room on the surface to show them.
package gridlines

import (
	"iter"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"
	"sync"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/observer"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

// OutOfRange is returned instead of a position for line indexes outside [0, count). Callers must check for
// it before using a result geometrically.
const OutOfRange = -math.MaxFloat64

// DefaultThreshold is the on-surface distance between two lines above which minor lines are added.
const DefaultThreshold = 500.0

// maxDepth bounds recursion well before float64 runs out of precision between two lines.
const maxDepth = 12

type Orientation int

const (
	X Orientation = 1
	Y Orientation = 2
)

func (o Orientation) String() string {
	switch o {
	case X:
		return "X"
	case Y:
		return "Y"
	default:
		return "Unknown Orientation: " + strconv.Itoa(int(o))
	}
}

// Config builds a root [GridLines].
type Config struct {
	Orientation Orientation
	// Axis is the root axis, every position a node returns is a position on this axis.
	Axis axis.Parameters
	// Count is the number of major lines including both ends, at least 2.
	Count int
	// Spacing defaults to [Even] for linear axes and [Geometric] for logarithmic ones.
	Spacing Spacing
	// Live is the user controlled zoom, required.
	Live *zoom.Display
	// Fixed is the baseline zoom set by the axis scale, nil means fully zoomed out.
	Fixed *zoom.Display
	// Threshold defaults to [DefaultThreshold].
	Threshold float64
	ShowMinor bool
}

// WithThreshold returns a copy of the config using [t] as the minor line density threshold.
func (c Config) WithThreshold(t float64) Config {
	c.Threshold = t
	return c
}

// GridLines is one node of the grid line tree. The root holds the major lines, each child holds the minor
// lines between two adjacent lines of its parent.
type GridLines struct {
	// mu is shared by the whole tree.
	mu *sync.Mutex

	orientation Orientation
	spacing     Spacing
	count       int
	lo, hi      float64
	root        axis.Parameters
	live, fixed *zoom.Display
	threshold   float64
	showMinor   *bool
	extent      *float64

	depth              int
	offsetWithinParent float64
	sizeWithinParent   float64

	children map[int]*GridLines
	subs     []observer.Subscription
	closed   bool
}

// New builds a root node and subscribes it to its zoom displays.
func New(cfg Config) (*GridLines, error) {
	if cfg.Count < 2 {
		return nil, errors.Wrapf(axis.ErrConfiguration, "grid lines need at least 2 lines, got %d", cfg.Count)
	}
	if cfg.Axis.IsZero() {
		return nil, errors.Wrap(axis.ErrConfiguration, "grid lines need an axis")
	}
	if cfg.Live == nil {
		return nil, errors.Wrap(axis.ErrConfiguration, "grid lines need a live zoom display")
	}
	if cfg.Fixed == nil {
		cfg.Fixed = zoom.New()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Spacing == nil {
		cfg.Spacing = Even{}
		if cfg.Axis.IsLog() {
			cfg.Spacing = Geometric{}
		}
	}
	showMinor := cfg.ShowMinor
	extent := 0.0
	g := &GridLines{
		mu:                 &sync.Mutex{},
		orientation:        cfg.Orientation,
		spacing:            cfg.Spacing,
		count:              cfg.Count,
		lo:                 cfg.Axis.Min(),
		hi:                 cfg.Axis.Max(),
		root:               cfg.Axis,
		live:               cfg.Live,
		fixed:              cfg.Fixed,
		threshold:          cfg.Threshold,
		showMinor:          &showMinor,
		extent:             &extent,
		offsetWithinParent: 0,
		sizeWithinParent:   1,
		children:           map[int]*GridLines{},
	}
	g.subscribe()
	return g, nil
}

func (g *GridLines) subscribe() {
	name := "gridlines " + g.orientation.String() + " depth " + strconv.Itoa(g.depth)
	onChange := func(zoom.State) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed {
			return
		}
		g.refreshLocked()
	}
	g.subs = []observer.Subscription{
		g.live.Subscribe(name, onChange),
		g.fixed.Subscribe(name+" (fixed)", onChange),
	}
}

// SurfaceResized records the drawable size and re-runs the density check over the whole tree.
func (g *GridLines) SurfaceResized(width, height int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.orientation {
	case X:
		*g.extent = float64(width)
	case Y:
		*g.extent = float64(height)
	}
	g.refreshTreeLocked()
}

// SetShowMinor enables or disables minor lines for the whole tree.
func (g *GridLines) SetShowMinor(show bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	*g.showMinor = show
	g.refreshTreeLocked()
}

func (g *GridLines) NumberOfLines() int { return g.count }

func (g *GridLines) Orientation() Orientation { return g.orientation }

func (g *GridLines) Depth() int { return g.depth }

// Range is the value range this node spans.
func (g *GridLines) Range() (lo, hi float64) { return g.lo, g.hi }

// Value returns the value of line i, or [OutOfRange].
func (g *GridLines) Value(i int) float64 {
	if i < 0 || i >= g.count {
		return OutOfRange
	}
	return g.spacing.Value(i, g.count, g.lo, g.hi)
}

// Intersect returns the position of line i on the root axis, or [OutOfRange].
func (g *GridLines) Intersect(i int) float64 {
	v := g.Value(i)
	if v == OutOfRange {
		return OutOfRange
	}
	return g.root.ValueToPosition(v)
}

// IntersectZoomCompensated returns the viewport position of line i under the effective zoom, values
// outside [0, 1] are off the current viewport. [OutOfRange] passes through.
func (g *GridLines) IntersectZoomCompensated(i int) float64 {
	return g.compensate(g.Intersect(i), g.effective())
}

func (g *GridLines) effective() zoom.State {
	return zoom.Compose(g.fixed.State(), g.live.State())
}

func (g *GridLines) compensate(position float64, eff zoom.State) float64 {
	if position == OutOfRange {
		return OutOfRange
	}
	return eff.ToViewport(position)
}

// Line is one drawable grid line.
type Line struct {
	// Depth is 0 for major lines.
	Depth int
	Index int
	Value float64
	// Position on the root axis.
	Position float64
	// Viewport position in [0, 1].
	Viewport float64
}

// Lines yields every line of the tree currently inside the viewport, parents before children. Child lines
// which coincide with a parent line are skipped.
func (g *GridLines) Lines() iter.Seq[Line] {
	g.mu.Lock()
	eff := g.effective()
	var collected []Line
	g.collectLocked(eff, &collected)
	g.mu.Unlock()
	return slices.Values(collected)
}

func (g *GridLines) collectLocked(eff zoom.State, into *[]Line) {
	first, last := 0, g.count-1
	if g.depth > 0 {
		first, last = 1, g.count-2
	}
	for i := first; i <= last; i++ {
		position := g.Intersect(i)
		v := g.compensate(position, eff)
		if v < 0 || v > 1 {
			continue
		}
		*into = append(*into, Line{Depth: g.depth, Index: i, Value: g.Value(i), Position: position, Viewport: v})
	}
	for _, slot := range slices.Sorted(maps.Keys(g.children)) {
		g.children[slot].collectLocked(eff, into)
	}
}

// NodeCount returns the number of nodes in the tree including this one.
func (g *GridLines) NodeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodeCountLocked()
}

func (g *GridLines) nodeCountLocked() int {
	n := 1
	for _, c := range g.children {
		n += c.nodeCountLocked()
	}
	return n
}

// Child returns the minor grid lines between line [slot] and [slot]+1, if they currently exist.
func (g *GridLines) Child(slot int) (*GridLines, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.children[slot]
	return c, ok
}

// DestroyMinor removes every child, detaching their listeners. They are rebuilt on the next density check.
func (g *GridLines) DestroyMinor() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closeChildrenLocked()
}

// Close detaches this node and all of its children from the zoom displays.
func (g *GridLines) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closeLocked()
}

func (g *GridLines) closeLocked() {
	if g.closed {
		return
	}
	g.closed = true
	for _, s := range g.subs {
		s.Unsubscribe()
	}
	g.subs = nil
	g.closeChildrenLocked()
}

func (g *GridLines) closeChildrenLocked() {
	for slot, c := range g.children {
		c.closeLocked()
		delete(g.children, slot)
	}
}

func (g *GridLines) refreshTreeLocked() {
	g.refreshLocked()
	for _, c := range g.children {
		c.refreshTreeLocked()
	}
}

// refreshLocked runs the density check over this node's slots, creating and destroying direct children.
// New children are refreshed recursively since they missed the notification which created them.
func (g *GridLines) refreshLocked() {
	eff := g.effective()
	for slot := range g.count - 1 {
		eligible := g.adequateSpaceForMinorLocked(slot, eff)
		child, present := g.children[slot]
		switch {
		case eligible && !present:
			if c := g.newChildLocked(slot); c != nil {
				g.children[slot] = c
				c.refreshTreeLocked()
			}
		case !eligible && present:
			child.closeLocked()
			delete(g.children, slot)
		}
	}
}

// adequateSpaceForMinorLocked reports whether the on-surface distance between lines [slot] and [slot]+1
// exceeds the threshold while the slot overlaps the viewport.
func (g *GridLines) adequateSpaceForMinorLocked(slot int, eff zoom.State) bool {
	if !*g.showMinor || g.depth >= maxDepth || *g.extent <= 0 {
		return false
	}
	a := g.compensate(g.Intersect(slot), eff)
	b := g.compensate(g.Intersect(slot+1), eff)
	if a == OutOfRange || b == OutOfRange {
		return false
	}
	spacing := math.Abs(b-a) * *g.extent
	lo, hi := min(a, b), max(a, b)
	overlapsViewport := hi >= 0 && lo <= 1
	return spacing > g.threshold && overlapsViewport
}

func (g *GridLines) newChildLocked(slot int) *GridLines {
	lo, hi := g.Value(slot), g.Value(slot+1)
	intervals := linearIntervals
	if g.root.IsLog() {
		intervals = roundSubdivisions(hi - lo)
	}
	if intervals == 0 {
		slog.Debug("no round subdivision for slot", "orientation", g.orientation, "lo", lo, "hi", hi)
		return nil
	}
	start := g.Intersect(slot)
	c := &GridLines{
		mu:                 g.mu,
		orientation:        g.orientation,
		spacing:            Even{},
		count:              intervals + 1,
		lo:                 lo,
		hi:                 hi,
		root:               g.root,
		live:               g.live,
		fixed:              g.fixed,
		threshold:          g.threshold,
		showMinor:          g.showMinor,
		extent:             g.extent,
		depth:              g.depth + 1,
		offsetWithinParent: start,
		sizeWithinParent:   g.Intersect(slot+1) - start,
		children:           map[int]*GridLines{},
	}
	c.subscribe()
	slog.Debug("created minor grid lines", "orientation", g.orientation, "depth", c.depth, "lo", lo, "hi", hi, "count", c.count)
	return c
}

// OffsetWithinParent and SizeWithinParent locate this node's slot on the root axis.
func (g *GridLines) OffsetWithinParent() float64 { return g.offsetWithinParent }
func (g *GridLines) SizeWithinParent() float64   { return g.sizeWithinParent }
