// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package atomic shares a value between the frame loop and whatever controls it.
package atomic

import "sync"

// Of is a [T] guarded by a read/write mutex, copies of an Of share the same value. The zero value has no
// storage, create one with [Init].
type Of[T any] struct {
	*cell[T]
}

type cell[T any] struct {
	mu sync.RWMutex
	v  T
}

func Init[T any](v T) Of[T] {
	return Of[T]{cell: &cell[T]{v: v}}
}

func (a Of[T]) Get() T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.v
}

func (a Of[T]) Set(v T) {
	a.mu.Lock()
	a.v = v
	a.mu.Unlock()
}

// Update applies [f] to the stored value under the write lock, returning the new value.
func (a Of[T]) Update(f func(T) T) T {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v = f(a.v)
	return a.v
}
