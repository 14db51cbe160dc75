// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package numeric_test

import (
	"fmt"
	"math"
	"testing"

	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
	"github.com/nfxdevelopment/graph-view-sub000/utils/th"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	type Case struct {
		Min, Max       float64
		NewMin, NewMax float64
		Inputs         []float64
		Expected       []float64
	}
	cases := []Case{
		{
			Min: 20, Max: 20_000, NewMin: 0, NewMax: 1,
			Inputs:   []float64{20, 10_010, 20_000},
			Expected: []float64{0, 0.5, 1},
		},
		{
			Min: -1, Max: 1, NewMin: 2, NewMax: 24,
			Inputs:   []float64{-1, 0, 1, 0.5},
			Expected: []float64{2, 13, 24, 18.5},
		},
		{
			Min: 5, Max: 5, NewMin: 3, NewMax: 4,
			Inputs:   []float64{5, 100},
			Expected: []float64{3, 3},
		},
	}
	for i, test := range cases {
		t.Run(fmt.Sprintf("%d:%f->%f|%+v", i, test.Min, test.Max, test.Inputs), func(t *testing.T) {
			t.Parallel()
			for i, input := range test.Inputs {
				actual := numeric.NormalizeToRange(input, test.Min, test.Max, test.NewMin, test.NewMax)
				th.AssertFloatEqual(t, test.Expected[i], actual, 6)
			}
		})
	}
}

func TestPowersOfTen(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, next, prev float64
	}{
		{in: 22050, next: 100_000, prev: 10_000},
		{in: 1000, next: 1000, prev: 1000},
		{in: 20, next: 100, prev: 10},
		{in: 0.5, next: 1, prev: 0.1},
		{in: 0, next: 1, prev: 1},
		{in: -3, next: 1, prev: 1},
	}
	for _, c := range cases {
		th.AssertFloatEqual(t, c.next, numeric.NextPowerOfTen(c.in), 9, "next %f", c.in)
		th.AssertFloatEqual(t, c.prev, numeric.PreviousPowerOfTen(c.in), 9, "prev %f", c.in)
	}
}

func TestRoundToNearestSigFig(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 632.5, numeric.RoundToNearestSigFig(632.4555, 4))
	assert.Equal(t, 0.00123, numeric.RoundToNearestSigFig(0.0012345, 3))
	assert.Equal(t, 0.0, numeric.RoundToNearestSigFig(0, 3))
}

func TestClamp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, numeric.Clamp(-4, 0, 10))
	assert.Equal(t, 10, numeric.Clamp(40, 0, 10))
	assert.Equal(t, 0.25, numeric.Clamp(0.25, 0.0, 1.0))
}

func TestExponent_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(1e-12, 1e12).Draw(t, "a")
		e := numeric.Exponent(a)
		if math.Pow(10, e) > a*(1+1e-9) || math.Pow(10, e+1) < a*(1-1e-9) {
			t.Fatalf("Exponent(%g) = %g is not the decade containing the input", a, e)
		}
	})
}

func TestNormalize_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		var (
			lo = rapid.Float64Range(-1e6, 1e6).Draw(t, "lo")
			hi = rapid.Float64Range(lo+1, lo+1e6).Draw(t, "hi")
			a  = rapid.Float64Range(lo, hi).Draw(t, "a")
		)
		normalized := numeric.Normalize(a, lo, hi)
		if normalized < -1e-9 || normalized > 1+1e-9 {
			t.Fatalf("Normalize() was not in [0, 1] range: %f", normalized)
		}
	})
}

func TestIsWhole(t *testing.T) {
	t.Parallel()
	assert.Check(t, numeric.IsWhole(90))
	assert.Check(t, numeric.IsWhole(0.1*30))
	assert.Check(t, !numeric.IsWhole(0.9))
}

func TestMean(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, numeric.Mean([]float64{}))
	assert.Equal(t, 2.5, numeric.Mean([]float64{1, 2, 3, 4}))
	assert.Equal(t, float32(1), numeric.Mean([]float32{1}))
}
