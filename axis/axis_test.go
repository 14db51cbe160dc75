// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package axis_test

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/th"
)

func TestGeometricMidpoint(t *testing.T) {
	t.Parallel()
	p := axis.MustNew(20, 20_000, axis.Logarithmic)
	mid := p.PositionToValue(0.5)
	th.AssertFloatEqual(t, math.Sqrt(20*20_000), mid, 9)
	th.AssertFloatEqual(t, 632.5, mid, 4)
	assert.Check(t, math.Abs(mid-10_010) > 1000, "must not be the arithmetic midpoint")

	lin := axis.MustNew(20, 20_000, axis.Linear)
	assert.Equal(t, 10_010.0, lin.PositionToValue(0.5))
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	t.Parallel()
	for _, c := range []struct{ lo, hi float64 }{
		{lo: 1, hi: 1},
		{lo: 10, hi: -10},
		{lo: math.NaN(), hi: 1},
		{lo: 0, hi: math.Inf(1)},
	} {
		_, err := axis.New(c.lo, c.hi, axis.Linear)
		assert.Check(t, errors.Is(err, axis.ErrConfiguration), "[%g, %g]", c.lo, c.hi)
	}
	p := axis.MustNew(0, 10, axis.Linear)
	_, err := p.WithRange(5, 5)
	assert.Check(t, errors.Is(err, axis.ErrConfiguration))
	assert.Equal(t, 10.0, p.Max(), "rejected mutation leaves the original untouched")
}

func TestLogFloorIsExactlyZero(t *testing.T) {
	t.Parallel()
	p := axis.MustNew(0, 1000, axis.Logarithmic)
	assert.Equal(t, 0.0, p.PositionToValue(0))
	assert.Check(t, !math.Signbit(p.PositionToValue(0)))
	assert.Equal(t, 0.0, p.ValueToPosition(0))
	assert.Equal(t, 0.0, p.ValueToPosition(-50), "non-positive values use the floor")
	th.AssertFloatEqual(t, 1.0/3, p.ValueToPosition(10), 9)
	th.AssertFloatEqual(t, 100, p.PositionToValue(2.0/3), 9)
}

func TestDegenerateLogFallsBackToLinear(t *testing.T) {
	t.Parallel()
	p := axis.MustNew(-5, 1, axis.Logarithmic)
	assert.Equal(t, -2.0, p.PositionToValue(0.5))
	assert.Equal(t, 0.5, p.ValueToPosition(-2))
}

func TestRoundTrip_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		var (
			scale = rapid.SampledFrom([]axis.Scale{axis.Linear, axis.Logarithmic}).Draw(t, "scale")
			lo    = rapid.Float64Range(-1e6, 1e6).Draw(t, "min")
			span  = rapid.Float64Range(1e-3, 1e7).Draw(t, "span")
			p     = rapid.Float64Range(0, 1).Draw(t, "p")
		)
		if scale == axis.Logarithmic && lo > 0 && lo < 1e-3 {
			// keeps hi/lo inside float64 range
			lo = 1e-3
		}
		params, err := axis.New(lo, lo+span, scale)
		if err != nil {
			t.Skip("range rounded to zero width")
		}
		back := params.ValueToPosition(params.PositionToValue(p))
		if math.Abs(back-p) > 1e-6 {
			t.Fatalf("%s: ValueToPosition(PositionToValue(%g)) = %g", params, p, back)
		}
	})
}

func TestValueRoundTrip_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		var (
			lo = rapid.Float64Range(1e-3, 1e4).Draw(t, "min")
			hi = rapid.Float64Range(lo*1.01, lo*1e4).Draw(t, "max")
			v  = rapid.Float64Range(lo, hi).Draw(t, "value")
		)
		params := axis.MustNew(lo, hi, axis.Logarithmic)
		back := params.PositionToValue(params.ValueToPosition(v))
		if math.Abs(back-v) > 1e-6*v {
			t.Fatalf("%s: PositionToValue(ValueToPosition(%g)) = %g", params, v, back)
		}
	})
}

func TestShared(t *testing.T) {
	t.Parallel()
	s := axis.NewShared(axis.MustNew(0, 10, axis.Linear))
	assert.Equal(t, uint64(1), s.Version())

	var got []axis.Change
	sub := s.Subscribe("recorder", func(c axis.Change) { got = append(got, c) })
	assert.DeepEqual(t, []string{"recorder"}, s.Listeners())

	next := axis.MustNew(10, 1000, axis.Logarithmic)
	s.Set(next)
	p, version := s.Snapshot()
	assert.Equal(t, next, p)
	assert.Equal(t, uint64(2), version)
	assert.Assert(t, is.Len(got, 1))
	assert.Equal(t, uint64(2), got[0].Version)
	assert.Equal(t, 10.0, got[0].Previous.Max())

	sub.Unsubscribe()
	s.Set(axis.MustNew(0, 1, axis.Linear))
	assert.Check(t, is.Len(got, 1))
	assert.Equal(t, uint64(3), s.Version())
}
