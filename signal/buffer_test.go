// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package signal_test

import (
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"gotest.tools/v3/assert"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/signal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/th"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

var unit = axis.MustNew(0, 1, axis.Linear)

func filled(n int, f func(i int) float64) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = f(i)
	}
	return ret
}

func newBuffer(t th.T, samples []float64, x axis.Parameters) *signal.Buffer {
	t.Helper()
	b, err := signal.New(len(samples), x)
	assert.NilError(t, err)
	assert.NilError(t, b.BufferUpdate(samples))
	return b
}

func TestConstantSignal_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		scales := rapid.SampledFrom([]axis.Scale{axis.Linear, axis.Logarithmic})
		var (
			v      = rapid.Float64Range(0, 1).Draw(t, "v")
			n      = rapid.IntRange(1, 2000).Draw(t, "n")
			outLen = rapid.IntRange(1, 500).Draw(t, "outLen")
			lo     = rapid.Float64Range(-100, 1000).Draw(t, "lo")
			hi     = rapid.Float64Range(lo+1, lo+1e5).Draw(t, "hi")
			xLow   = rapid.Float64Range(lo-1000, hi).Draw(t, "xLow")
			xHigh  = rapid.Float64Range(xLow+1e-3, hi+1000).Draw(t, "xHigh")
			source = axis.MustNew(lo, hi, scales.Draw(t, "source scale"))
			target = axis.MustNew(lo, hi, scales.Draw(t, "target scale"))
		)
		b := newBuffer(t, filled(n, func(int) float64 { return v }), source)

		line := b.ScaledBuffer(outLen, xLow, xHigh, target)
		mins, maxs := b.ScaledMinMaxBuffers(outLen, xLow, xHigh, target)
		if len(line) != outLen || len(mins) != outLen || len(maxs) != outLen {
			t.Fatalf("expected %d values, got %d, %d and %d", outLen, len(line), len(mins), len(maxs))
		}
		for i := range outLen {
			for _, got := range []float64{line[i], mins[i], maxs[i]} {
				if math.Abs(got-v) > 1e-9 {
					t.Fatalf("column %d decimated %g to %g", i, v, got)
				}
			}
		}
	})
}

func TestAlternatingEnvelope_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		n := 4 * rapid.IntRange(2, 1000).Draw(t, "n/4")
		b := newBuffer(t, filled(n, func(i int) float64 { return float64(i % 2) }), unit)
		mins, maxs := b.ScaledMinMaxBuffers(n/4, 0, 1, unit)
		for i := range mins {
			if mins[i] != 0 || maxs[i] != 1 {
				t.Fatalf("column %d of %d has envelope [%g, %g]", i, n/4, mins[i], maxs[i])
			}
		}
	})
}

func TestZoomedInInterpolates(t *testing.T) {
	t.Parallel()
	b := newBuffer(t, []float64{0, 1, 0}, unit)
	expected := []float64{0, 0.5, 1, 0.5, 0}
	assert.DeepEqual(t, expected, b.ScaledBuffer(5, 0, 1, unit), cmpopts.EquateApprox(0, 1e-12))
	mins, maxs := b.ScaledMinMaxBuffers(5, 0, 1, unit)
	assert.DeepEqual(t, expected, mins, cmpopts.EquateApprox(0, 1e-12))
	assert.DeepEqual(t, expected, maxs, cmpopts.EquateApprox(0, 1e-12))
}

func TestLogarithmicWindowOverLinearBins(t *testing.T) {
	t.Parallel()
	b := newBuffer(t, filled(101, func(i int) float64 { return float64(i) / 100 }), axis.MustNew(0, 100, axis.Linear))
	out := b.ScaledBuffer(1001, 1, 100, axis.MustNew(1, 100, axis.Logarithmic))
	assert.Equal(t, 1001, len(out))
	th.AssertFloatEqual(t, 0.01, out[0], 9)
	th.AssertFloatEqual(t, 0.1, out[500], 9)
	th.AssertFloatEqual(t, 1, out[1000], 9)
	assert.Check(t, slices.IsSorted(out))

	th.AssertFloatEqual(t, 0.1, b.ValueAtPosition(10), 12)
	th.AssertFloatEqual(t, 0.105, b.ValueAtPosition(10.5), 12)
	assert.Equal(t, 0.0, b.ValueAtPosition(-50), "off the axis reads the nearest end")
	assert.Equal(t, 1.0, b.ValueAtPosition(500))
}

func TestYZoomApplied(t *testing.T) {
	t.Parallel()
	b := newBuffer(t, []float64{0.5, 1, 0.5, 1}, unit)
	assert.NilError(t, b.YZoom().Set(zoom.State{Zoom: 0.5, Offset: 0.25}))
	mins, maxs := b.ScaledMinMaxBuffers(1, 0, 1, unit)
	assert.DeepEqual(t, []float64{0.5}, mins)
	assert.DeepEqual(t, []float64{1.5}, maxs)
	assert.Equal(t, 0.5, b.ValueAtPosition(0), "point lookups are raw samples")
}

func TestInvalidRequests(t *testing.T) {
	t.Parallel()
	b := newBuffer(t, []float64{0, 1}, unit)
	assert.Check(t, b.ScaledBuffer(0, 0, 1, unit) == nil)
	assert.Check(t, b.ScaledBuffer(10, 1, 1, unit) == nil)
	mins, maxs := b.ScaledMinMaxBuffers(10, 1, 0, unit)
	assert.Check(t, mins == nil && maxs == nil)
}

func TestSizeMismatchKeepsData(t *testing.T) {
	t.Parallel()
	b := newBuffer(t, []float64{0.1, 0.2, 0.3, 0.4}, unit)
	version := b.Version()
	err := b.BufferUpdate([]float64{1, 1, 1})
	assert.Check(t, errors.Is(err, signal.ErrSizeMismatch))
	assert.DeepEqual(t, []float64{0.1, 0.2, 0.3, 0.4}, b.Samples())
	assert.Equal(t, version, b.Version())
}

func TestBlockSizeChanged(t *testing.T) {
	t.Parallel()
	b := newBuffer(t, []float64{0.1, 0.2, 0.3, 0.4}, unit)
	assert.NilError(t, b.BlockSizeChanged(8))
	assert.DeepEqual(t, make([]float64, 8), b.Samples())
	assert.Check(t, errors.Is(b.BufferUpdate(make([]float64, 4)), signal.ErrSizeMismatch))

	for _, n := range []int{0, -4} {
		assert.Check(t, errors.Is(b.BlockSizeChanged(n), axis.ErrConfiguration))
		_, err := signal.New(n, unit)
		assert.Check(t, errors.Is(err, axis.ErrConfiguration))
	}
	assert.Equal(t, 8, b.Len())
	_, err := signal.New(4, axis.Parameters{})
	assert.Check(t, errors.Is(err, axis.ErrConfiguration))
}

func TestReadersNeverSeePartialWrites(t *testing.T) {
	t.Parallel()
	const n = 4096
	b := newBuffer(t, filled(n, func(int) float64 { return 0.25 }), unit)
	blocks := [][]float64{
		filled(n, func(int) float64 { return 0.25 }),
		filled(n, func(int) float64 { return 0.75 }),
	}
	th.TestWithTimeout(t, 10*time.Second, func() {
		done := make(chan struct{})
		wg := sync.WaitGroup{}
		wg.Go(func() {
			for i := 0; ; i++ {
				select {
				case <-done:
					return
				default:
					_ = b.BufferUpdate(blocks[i%2])
				}
			}
		})
		for range 500 {
			mins, maxs := b.ScaledMinMaxBuffers(64, 0, 1, unit)
			if mins[0] != slices.Min(mins) || maxs[0] != slices.Max(maxs) || mins[0] != maxs[0] {
				t.Errorf("frame mixed two buffer updates: %v %v", mins, maxs)
				break
			}
		}
		close(done)
		wg.Wait()
	})
}
