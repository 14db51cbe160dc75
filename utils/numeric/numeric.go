// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package numeric

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Normalize maps [x] from the range [minimum, maximum] into [0, 1].
func Normalize(x, minimum, maximum float64) float64 {
	return NormalizeToRange(x, minimum, maximum, 0, 1)
}

// NormalizeToRange maps [x] from the range [minimum, maximum] into [newMin, newMax]. A zero width input range
// maps everything onto [newMin].
func NormalizeToRange(x, minimum, maximum, newMin, newMax float64) float64 {
	span := maximum - minimum
	if span == 0 {
		return newMin
	}
	return newMin + (x-minimum)/span*(newMax-newMin)
}

// Clamp returns [x] limited to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	return max(lo, min(x, hi))
}

func Abs[T Number](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Lerp linearly interpolates between [a] and [b], t=0 gives a, t=1 gives b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Mean returns the arithmetic mean of [xs], 0 when empty.
func Mean[T constraints.Float](xs []T) T {
	if len(xs) == 0 {
		return 0
	}
	var sum T
	for _, x := range xs {
		sum += x
	}
	return sum / T(len(xs))
}

// Exponent returns the base 10 exponent of [x], i.e. floor(log10(|x|)).
func Exponent(x float64) float64 {
	return math.Floor(math.Log10(math.Abs(x)))
}

// RoundToNearestSigFig rounds [x] to [sigFigs] significant figures.
func RoundToNearestSigFig(x float64, sigFigs int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	magnitude := math.Pow(10, float64(sigFigs)-1-Exponent(x))
	return math.Round(x*magnitude) / magnitude
}

// NextPowerOfTen returns the smallest power of ten which is >= [x], for x <= 0 it returns 1.
func NextPowerOfTen(x float64) float64 {
	if x <= 0 {
		return 1
	}
	p := math.Pow(10, math.Ceil(math.Log10(x)))
	// Floating point log10 of an exact power may land just above the integer.
	if lower := p / 10; lower >= x {
		return lower
	}
	return p
}

// PreviousPowerOfTen returns the largest power of ten which is <= [x], for x <= 0 it returns 1.
func PreviousPowerOfTen(x float64) float64 {
	if x <= 0 {
		return 1
	}
	p := math.Pow(10, math.Floor(math.Log10(x)))
	if higher := p * 10; higher <= x {
		return higher
	}
	return p
}

// IsWhole reports whether [x] has no fractional part within [epsilon] relative tolerance.
func IsWhole(x float64) bool {
	r := math.Round(x)
	return math.Abs(x-r) <= 1e-9*math.Max(1, math.Abs(x))
}

// ApproxEqual compares two floats with an absolute tolerance.
func ApproxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
