// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package channels holds the generic plumbing between the producer, the frame loop and the GUI.
package channels

import (
	"context"
)

// Broadcast takes ownership of [in] and returns [n] channels, each receiving every value of [in] in order.
// A value is only read from [in] once every output took the previous one. All outputs are closed once [in]
// is closed or [ctx] is done.
func Broadcast[T any](ctx context.Context, in <-chan T, buffer, n int) []<-chan T {
	outs := make([]chan T, n)
	result := make([]<-chan T, n)
	for i := range outs {
		outs[i] = make(chan T, buffer)
		result[i] = outs[i]
	}
	go func() {
		defer func() {
			for _, out := range outs {
				close(out)
			}
		}()
		for {
			v, ok := receive(ctx, in)
			if !ok {
				return
			}
			for _, out := range outs {
				if !send(ctx, out, v) {
					return
				}
			}
		}
	}()
	return result
}

func receive[T any](ctx context.Context, c <-chan T) (T, bool) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false
	case v, ok := <-c:
		return v, ok
	}
}

func send[T any](ctx context.Context, c chan<- T, v T) bool {
	select {
	case <-ctx.Done():
		return false
	case c <- v:
		return true
	}
}

// Latest returns a channel which only ever holds the most recent value sent with the returned send function.
// Slow consumers skip stale values rather than blocking the sender.
func Latest[T any]() (<-chan T, func(T)) {
	c := make(chan T, 1)
	return c, func(v T) {
		for {
			select {
			case c <- v:
				return
			default:
				select {
				case <-c:
				default:
				}
			}
		}
	}
}
