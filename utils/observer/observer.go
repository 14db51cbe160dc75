// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package observer is a small typed publish/subscribe registry. Every subscription is named and returned as
// a handle so that the listener graph can be inspected and torn down explicitly.
package observer

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Registry holds the listeners for values of [T]. The zero value is not usable, see [New].
type Registry[T any] struct {
	m         *sync.Mutex
	listeners []*entry[T]
	nextID    uint64
	notifying atomic.Int32
}

type entry[T any] struct {
	id   uint64
	name string
	fn   func(T)
}

// Subscription is the handle returned from [Registry.Subscribe].
type Subscription interface {
	// Unsubscribe detaches the listener, it is safe to call more than once.
	Unsubscribe()
	Name() string
}

func New[T any]() *Registry[T] {
	return &Registry[T]{m: &sync.Mutex{}}
}

// Subscribe registers [fn] which will be invoked synchronously on every [Registry.Notify].
func (r *Registry[T]) Subscribe(name string, fn func(T)) Subscription {
	r.m.Lock()
	defer r.m.Unlock()
	r.nextID++
	e := &entry[T]{id: r.nextID, name: name, fn: fn}
	r.listeners = append(r.listeners, e)
	return &subscription[T]{registry: r, id: e.id, name: name}
}

// Notify calls every listener in subscription order. The listener list is snapshotted first so listeners
// may unsubscribe (themselves or others) while being notified.
func (r *Registry[T]) Notify(value T) {
	r.m.Lock()
	snapshot := slices.Clone(r.listeners)
	r.m.Unlock()

	r.notifying.Add(1)
	defer r.notifying.Add(-1)
	for _, l := range snapshot {
		if !r.stillSubscribed(l.id) {
			continue
		}
		l.fn(value)
	}
}

// Notifying reports whether a [Registry.Notify] is currently running listeners.
func (r *Registry[T]) Notifying() bool {
	return r.notifying.Load() > 0
}

func (r *Registry[T]) Count() int {
	r.m.Lock()
	defer r.m.Unlock()
	return len(r.listeners)
}

// Listeners returns the names of all current listeners in subscription order.
func (r *Registry[T]) Listeners() []string {
	r.m.Lock()
	defer r.m.Unlock()
	ret := make([]string, len(r.listeners))
	for i, l := range r.listeners {
		ret[i] = l.name
	}
	return ret
}

func (r *Registry[T]) stillSubscribed(id uint64) bool {
	r.m.Lock()
	defer r.m.Unlock()
	return slices.ContainsFunc(r.listeners, func(e *entry[T]) bool { return e.id == id })
}

func (r *Registry[T]) remove(id uint64) {
	r.m.Lock()
	defer r.m.Unlock()
	r.listeners = slices.DeleteFunc(r.listeners, func(e *entry[T]) bool { return e.id == id })
}

type subscription[T any] struct {
	registry *Registry[T]
	id       uint64
	name     string
	once     sync.Once
}

func (s *subscription[T]) Unsubscribe() {
	s.once.Do(func() { s.registry.remove(s.id) })
}

func (s *subscription[T]) Name() string { return s.name }
