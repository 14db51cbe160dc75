// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gridlines

import (
	"math"

	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
)

// Spacing decides the value of each line in a node, the node then expresses that value as a position on its
// root axis. Adding a new kind of spacing is a new implementation of this interface.
type Spacing interface {
	// Value returns the value of line i of [count] lines spanning [lo, hi], with line 0 at lo and line
	// count-1 at hi.
	Value(i, count int, lo, hi float64) float64
	String() string
}

// Even spaces values linearly.
type Even struct{}

func (Even) Value(i, count int, lo, hi float64) float64 {
	if i == count-1 {
		return hi
	}
	return lo + float64(i)*(hi-lo)/float64(count-1)
}

func (Even) String() string { return "Even" }

// Geometric spaces values by a constant ratio, on a decade aligned range with one line per decade this
// gives powers of ten.
type Geometric struct{}

func (Geometric) Value(i, count int, lo, hi float64) float64 {
	if i == count-1 {
		return hi
	}
	if lo <= 0 {
		return Even{}.Value(i, count, lo, hi)
	}
	v := lo * math.Pow(hi/lo, float64(i)/float64(count-1))
	// Snap to the nearest integer for decade ranges so labels read 1000 rather than 999.9999999999998.
	if r := math.Round(v); r != 0 && math.Abs(v-r) <= 1e-9*math.Abs(r) {
		return r
	}
	return v
}

func (Geometric) String() string { return "Geometric" }

const (
	// maxSubdivisionIterations bounds the round number search, hitting it means no subdivision.
	maxSubdivisionIterations = 64
	// maxMantissa stops the search accepting huge float mantissas which are only whole because float64 ran
	// out of fractional precision.
	maxMantissa = 1e6
	// linearIntervals is the number of intervals minor lines split a linear slot into.
	linearIntervals = 10
)

// roundSubdivisions returns how many equal intervals split [span] into whole-number steps of its leading
// digit, 0 means no subdivision. A span of 90 splits into 9 (steps of 10), 0.5 into 5 and 10 into 10.
func roundSubdivisions(span float64) int {
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}
	m := span
	for i := 0; ; i++ {
		if i >= maxSubdivisionIterations || m > maxMantissa {
			return 0
		}
		if !numeric.IsWhole(m) {
			m *= 10
			continue
		}
		m = math.Round(m)
		if m >= 10 && math.Mod(m, 10) == 0 {
			m /= 10
			continue
		}
		break
	}
	if m == 1 {
		return linearIntervals
	}
	mantissa := int64(m)
	for d := int64(9); d >= 2; d-- {
		if mantissa%d == 0 {
			return int(d)
		}
	}
	return 0
}
