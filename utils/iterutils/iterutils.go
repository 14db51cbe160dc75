// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package iterutils

import "iter"

// Map lazily applies [f] to every value of [in], stopping [in] as soon as the consumer stops.
func Map[IN, OUT any](in iter.Seq[IN], f func(IN) OUT) iter.Seq[OUT] {
	return func(yield func(OUT) bool) {
		for v := range in {
			if !yield(f(v)) {
				return
			}
		}
	}
}
