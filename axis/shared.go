// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package axis

import (
	"log/slog"

	"github.com/nfxdevelopment/graph-view-sub000/utils/atomic"
	"github.com/nfxdevelopment/graph-view-sub000/utils/observer"
)

// Change is sent to subscribers of a [Shared] axis after every [Shared.Set].
type Change struct {
	Previous Parameters
	Current  Parameters
	Version  uint64
}

type versioned struct {
	p       Parameters
	version uint64
}

// Shared is an axis referenced by many components (grid lines, signals, markers). Readers take a snapshot
// value, writers replace it and every replacement bumps the version and notifies subscribers, dependents
// compare [Shared.Version] with the version they last computed from.
type Shared struct {
	state   atomic.Of[versioned]
	changes *observer.Registry[Change]
}

func NewShared(p Parameters) *Shared {
	return &Shared{
		state:   atomic.Init(versioned{p: p, version: 1}),
		changes: observer.New[Change](),
	}
}

func (s *Shared) Get() Parameters {
	return s.state.Get().p
}

// Snapshot returns the current value along with its version.
func (s *Shared) Snapshot() (Parameters, uint64) {
	v := s.state.Get()
	return v.p, v.version
}

func (s *Shared) Version() uint64 {
	return s.state.Get().version
}

// Set replaces the axis and notifies subscribers synchronously.
func (s *Shared) Set(p Parameters) {
	var previous Parameters
	next := s.state.Update(func(v versioned) versioned {
		previous = v.p
		return versioned{p: p, version: v.version + 1}
	})
	slog.Debug("axis changed", "from", previous, "to", p, "version", next.version)
	s.changes.Notify(Change{Previous: previous, Current: p, Version: next.version})
}

func (s *Shared) Subscribe(name string, fn func(Change)) observer.Subscription {
	return s.changes.Subscribe(name, fn)
}

// Listeners names every current subscriber.
func (s *Shared) Listeners() []string {
	return s.changes.Listeners()
}
