// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package zoom holds a viewport over a normalized axis: the fraction of the axis visible (the zoom level)
// and where the visible window starts (the offset).
package zoom

import (
	"math"
	"sync"

	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
	"github.com/nfxdevelopment/graph-view-sub000/utils/observer"
)

// MinimumZoom is the smallest zoom level accepted, a zero width viewport has no inverse mapping.
const MinimumZoom = 1e-9

var (
	ErrZeroZoom  = errors.New("zoom level must be positive")
	ErrReentrant = errors.New("zoom display mutated while notifying its listeners")
	ErrBounds    = errors.New("invalid zoom bounds")
)

// State is a snapshot of a viewport. The invariant 0 <= Offset and Offset+Zoom <= 1 holds for every State
// produced by a [Display].
type State struct {
	Zoom   float64
	Offset float64
}

// Unity is the fully zoomed out view.
var Unity = State{Zoom: 1, Offset: 0}

// FarSide is the axis position of the right (or top) edge of the viewport.
func (s State) FarSide() float64 { return s.Offset + s.Zoom }

// ToViewport maps an axis position into the viewport, results outside [0, 1] are off screen.
func (s State) ToViewport(position float64) float64 { return (position - s.Offset) / s.Zoom }

// FromViewport is the inverse of [State.ToViewport].
func (s State) FromViewport(v float64) float64 { return s.Offset + v*s.Zoom }

func (s State) Contains(position float64) bool {
	return position >= s.Offset && position <= s.FarSide()
}

// Compose applies a [live] viewport inside a [base] viewport, giving the effective window over the base's
// axis. A base of [Unity] returns [live] unchanged.
func Compose(base, live State) State {
	return State{
		Zoom:   live.Zoom * base.Zoom,
		Offset: base.Offset + live.Offset*base.Zoom,
	}
}

// Limits are the hard bounds of a bounded [Display].
type Limits struct {
	Lower, Upper     float64
	MinZoom, MaxZoom float64
}

var defaultLimits = Limits{Lower: 0, Upper: 1, MinZoom: MinimumZoom, MaxZoom: 1}

func (l Limits) validate() error {
	switch {
	case math.IsNaN(l.Lower) || math.IsNaN(l.Upper) || math.IsNaN(l.MinZoom) || math.IsNaN(l.MaxZoom):
		return errors.Wrap(ErrBounds, "NaN limit")
	case l.Lower < 0 || l.Upper > 1 || l.Upper-l.Lower < MinimumZoom:
		return errors.Wrapf(ErrBounds, "offset window [%g, %g] must be a non-empty range inside [0, 1]", l.Lower, l.Upper)
	case l.MinZoom < MinimumZoom || l.MaxZoom < l.MinZoom:
		return errors.Wrapf(ErrBounds, "zoom window [%g, %g] must be positive and ordered", l.MinZoom, l.MaxZoom)
	}
	return nil
}

func (l Limits) maxZoom() float64 { return min(l.MaxZoom, l.Upper-l.Lower) }
func (l Limits) minZoom() float64 { return min(l.MinZoom, l.maxZoom()) }

func (l Limits) clampOffset(offset, zoom float64) float64 {
	return numeric.Clamp(offset, l.Lower, l.Upper-zoom)
}

// Display is a live viewport shared by every visual element on one axis. Listeners are invoked synchronously
// after each successful mutation and must not mutate the same display, such calls return [ErrReentrant].
//
// A display has a single owner: only one goroutine mutates it. The reentrancy check cannot tell a listener
// apart from another goroutine, so a mutation from elsewhere while listeners are running also fails with
// [ErrReentrant]. Reads are safe from any goroutine.
type Display struct {
	m         *sync.Mutex
	state     State
	limits    Limits
	bounded   bool
	listeners *observer.Registry[State]
}

// New returns an unbounded display, fully zoomed out.
func New() *Display {
	return &Display{
		m:         &sync.Mutex{},
		state:     Unity,
		limits:    defaultLimits,
		listeners: observer.New[State](),
	}
}

// NewBounded returns a display which additionally clamps into [l], starting fully zoomed out over the
// allowed window.
func NewBounded(l Limits) (*Display, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	d := New()
	d.limits = l
	d.bounded = true
	d.state = State{Zoom: l.maxZoom(), Offset: l.Lower}
	return d, nil
}

func (d *Display) State() State {
	d.m.Lock()
	defer d.m.Unlock()
	return d.state
}

func (d *Display) Zoom() float64    { return d.State().Zoom }
func (d *Display) Offset() float64  { return d.State().Offset }
func (d *Display) FarSide() float64 { return d.State().FarSide() }

func (d *Display) Limits() Limits {
	d.m.Lock()
	defer d.m.Unlock()
	return d.limits
}

// SetZoom changes the zoom level, keeping the offset where possible. Levels below [MinimumZoom] (and NaN)
// are rejected with [ErrZeroZoom], levels above the maximum clamp to it and the offset is pulled back so the
// viewport stays on the axis.
func (d *Display) SetZoom(z float64) error {
	return d.mutate(func(s State, l Limits) (State, error) {
		zoom, err := clampZoom(z, l)
		if err != nil {
			return s, err
		}
		return State{Zoom: zoom, Offset: l.clampOffset(s.Offset, zoom)}, nil
	})
}

// SetOffset moves the start of the viewport, clamping so that offset+zoom stays on the axis.
func (d *Display) SetOffset(x float64) error {
	return d.mutate(func(s State, l Limits) (State, error) {
		if math.IsNaN(x) {
			return s, errors.Wrap(ErrBounds, "NaN offset")
		}
		return State{Zoom: s.Zoom, Offset: l.clampOffset(x, s.Zoom)}, nil
	})
}

// Set replaces both fields in one mutation (one notification), zoom is applied first.
func (d *Display) Set(next State) error {
	return d.mutate(func(s State, l Limits) (State, error) {
		return clampState(next, s, l)
	})
}

// SetBounds rescales the viewport to a fully zoomed view of [lo, hi]. On a bounded display [lo, hi] also
// become the new hard offset window.
func (d *Display) SetBounds(lo, hi float64) error {
	return d.mutate(func(s State, l Limits) (State, error) {
		next := l
		next.Lower, next.Upper = lo, hi
		next.MaxZoom = max(l.MaxZoom, hi-lo)
		next.MinZoom = min(l.MinZoom, hi-lo)
		if err := next.validate(); err != nil {
			return s, err
		}
		if d.bounded {
			d.limits = next
			return State{Zoom: next.maxZoom(), Offset: lo}, nil
		}
		return State{Zoom: hi - lo, Offset: lo}, nil
	})
}

// CopyFrom sets this display to [other]'s state, clamped into this display's limits.
func (d *Display) CopyFrom(other *Display) error {
	return d.Set(other.State())
}

// Pan shifts the viewport by [delta] viewport widths, positive moves towards the far side.
func (d *Display) Pan(delta float64) error {
	return d.mutate(func(s State, l Limits) (State, error) {
		if math.IsNaN(delta) {
			return s, errors.Wrap(ErrBounds, "NaN pan")
		}
		return State{Zoom: s.Zoom, Offset: l.clampOffset(s.Offset+delta*s.Zoom, s.Zoom)}, nil
	})
}

// ZoomAbout multiplies the zoom level by [factor] keeping the axis position under [anchor] (a viewport
// position in [0, 1]) fixed on screen. Factors below one zoom in. Unlike [Display.SetZoom] the result
// clamps to the minimum zoom, only a non-positive factor is rejected.
func (d *Display) ZoomAbout(anchor, factor float64) error {
	return d.mutate(func(s State, l Limits) (State, error) {
		if math.IsNaN(factor) || factor <= 0 {
			return s, errors.Wrapf(ErrZeroZoom, "zoom factor %g", factor)
		}
		anchor = numeric.Clamp(anchor, 0, 1)
		zoom := numeric.Clamp(s.Zoom*factor, l.minZoom(), l.maxZoom())
		pinned := s.FromViewport(anchor)
		return State{Zoom: zoom, Offset: l.clampOffset(pinned-anchor*zoom, zoom)}, nil
	})
}

// Reset zooms fully out over the allowed window.
func (d *Display) Reset() error {
	return d.mutate(func(_ State, l Limits) (State, error) {
		return State{Zoom: l.maxZoom(), Offset: l.Lower}, nil
	})
}

// Subscribe adds a listener invoked with the new state after every successful mutation.
func (d *Display) Subscribe(name string, fn func(State)) observer.Subscription {
	return d.listeners.Subscribe(name, fn)
}

func (d *Display) ListenerCount() int {
	return d.listeners.Count()
}

func (d *Display) Listeners() []string {
	return d.listeners.Listeners()
}

func (d *Display) mutate(f func(State, Limits) (State, error)) error {
	if d.listeners.Notifying() {
		return ErrReentrant
	}
	d.m.Lock()
	next, err := f(d.state, d.limits)
	if err != nil {
		d.m.Unlock()
		return err
	}
	d.state = next
	d.m.Unlock()
	d.listeners.Notify(next)
	return nil
}

func clampZoom(z float64, l Limits) (float64, error) {
	if math.IsNaN(z) || z < MinimumZoom {
		return 0, errors.Wrapf(ErrZeroZoom, "requested zoom %g", z)
	}
	return numeric.Clamp(z, l.minZoom(), l.maxZoom()), nil
}

func clampState(next, current State, l Limits) (State, error) {
	zoom, err := clampZoom(next.Zoom, l)
	if err != nil {
		return current, err
	}
	if math.IsNaN(next.Offset) {
		return current, errors.Wrap(ErrBounds, "NaN offset")
	}
	return State{Zoom: zoom, Offset: l.clampOffset(next.Offset, zoom)}, nil
}
