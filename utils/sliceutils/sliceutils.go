// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package sliceutils holds the slice helpers the standard [slices] package leaves out.
package sliceutils

import "slices"

// Map applies [f] to every element, the result has the same length as [in].
func Map[IN, OUT any, S ~[]IN](in S, f func(IN) OUT) []OUT {
	if in == nil {
		return nil
	}
	out := make([]OUT, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// SplitN cuts [in] into consecutive pieces of [n] elements, the last piece holds the remainder. The pieces
// share the backing array of [in]. A non positive [n] returns [in] whole.
func SplitN[S ~[]T, T any](in S, n int) []S {
	if len(in) == 0 {
		return nil
	}
	if n <= 0 {
		return []S{in}
	}
	return slices.Collect(slices.Chunk(in, n))
}
