// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package signal holds a block of normalized samples written by a producer and read by the render loop,
// reducing it to screen sized arrays on demand.
package signal

import (
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

var ErrSizeMismatch = errors.New("buffer update does not match the block size")

// Buffer is the sample array of one signal. Samples are expected in [0, 1] and are laid out evenly along
// the buffer's X axis (in that axis's own scale). Writers replace the whole array under the write lock,
// readers copy it out under the read lock and decimate without holding any lock.
type Buffer struct {
	m       *sync.RWMutex
	samples []float64
	xAxis   axis.Parameters
	yZoom   *zoom.Display
	version uint64
}

// New allocates a zeroed buffer of [blockSize] samples spanning [xAxis].
func New(blockSize int, xAxis axis.Parameters) (*Buffer, error) {
	if blockSize <= 0 {
		return nil, errors.Wrapf(axis.ErrConfiguration, "block size must be positive, got %d", blockSize)
	}
	if xAxis.IsZero() {
		return nil, errors.Wrap(axis.ErrConfiguration, "signal buffer needs an X axis")
	}
	return &Buffer{
		m:       &sync.RWMutex{},
		samples: make([]float64, blockSize),
		xAxis:   xAxis,
		yZoom:   zoom.New(),
	}, nil
}

// BufferUpdate replaces the contents of the buffer. A different length is rejected with [ErrSizeMismatch]
// and the previous contents are kept.
func (b *Buffer) BufferUpdate(samples []float64) error {
	b.m.Lock()
	defer b.m.Unlock()
	if len(samples) != len(b.samples) {
		return errors.Wrapf(ErrSizeMismatch, "got %d samples, buffer holds %d", len(samples), len(b.samples))
	}
	copy(b.samples, samples)
	b.version++
	return nil
}

// BlockSizeChanged reallocates the buffer to [n] zeroed samples, the previous contents are lost.
func (b *Buffer) BlockSizeChanged(n int) error {
	if n <= 0 {
		return errors.Wrapf(axis.ErrConfiguration, "block size must be positive, got %d", n)
	}
	b.m.Lock()
	defer b.m.Unlock()
	slog.Debug("signal block size changed", "from", len(b.samples), "to", n)
	b.samples = make([]float64, n)
	b.version++
	return nil
}

func (b *Buffer) Len() int {
	b.m.RLock()
	defer b.m.RUnlock()
	return len(b.samples)
}

// Version increases on every successful write.
func (b *Buffer) Version() uint64 {
	b.m.RLock()
	defer b.m.RUnlock()
	return b.version
}

// Samples returns a copy of the current contents.
func (b *Buffer) Samples() []float64 {
	b.m.RLock()
	defer b.m.RUnlock()
	return slices.Clone(b.samples)
}

func (b *Buffer) XAxis() axis.Parameters {
	b.m.RLock()
	defer b.m.RUnlock()
	return b.xAxis
}

// SetXAxis changes the axis the samples are laid out on, the samples themselves are untouched.
func (b *Buffer) SetXAxis(p axis.Parameters) error {
	if p.IsZero() {
		return errors.Wrap(axis.ErrConfiguration, "signal buffer needs an X axis")
	}
	b.m.Lock()
	defer b.m.Unlock()
	b.xAxis = p
	return nil
}

// YZoom is this signal's own Y viewport, applied to every decimated value.
func (b *Buffer) YZoom() *zoom.Display { return b.yZoom }

// snapshot is everything a decimation needs, taken in one critical section.
type snapshot struct {
	samples []float64
	xAxis   axis.Parameters
	y       zoom.State
}

func (b *Buffer) snapshot() snapshot {
	y := b.yZoom.State()
	b.m.RLock()
	defer b.m.RUnlock()
	return snapshot{samples: slices.Clone(b.samples), xAxis: b.xAxis, y: y}
}

// ValueAtPosition returns the raw sample at [x], a value on the buffer's own X axis, interpolating
// between the two nearest samples. Values off the axis read the nearest end.
func (b *Buffer) ValueAtPosition(x float64) float64 {
	s := b.snapshot()
	return interpolate(s.samples, s.sourceIndex(x))
}

// ScaledBuffer reduces the buffer to [outLen] values covering [xLow, xHigh] laid out on [target]'s scale,
// one value per output column: zoomed in columns interpolate, zoomed out columns average their span. Every
// value has the Y zoom applied. An empty or inverted window returns nil.
func (b *Buffer) ScaledBuffer(outLen int, xLow, xHigh float64, target axis.Parameters) []float64 {
	s := b.snapshot()
	out, ok := s.decimate(outLen, xLow, xHigh, target, func(span []float64) (float64, float64) {
		mean := numeric.Mean(span)
		return mean, mean
	})
	if !ok {
		return nil
	}
	return out.mins
}

// ScaledMinMaxBuffers is [Buffer.ScaledBuffer] keeping the minimum and maximum of each zoomed out column,
// so that a renderer can fill the band between them.
func (b *Buffer) ScaledMinMaxBuffers(outLen int, xLow, xHigh float64, target axis.Parameters) (mins, maxs []float64) {
	s := b.snapshot()
	out, ok := s.decimate(outLen, xLow, xHigh, target, func(span []float64) (float64, float64) {
		return slices.Min(span), slices.Max(span)
	})
	if !ok {
		return nil, nil
	}
	return out.mins, out.maxs
}

type decimated struct {
	mins, maxs []float64
}

// decimate runs the column mapping shared by both outputs, [reduce] summarises spans of two or more samples.
func (s snapshot) decimate(
	outLen int,
	xLow, xHigh float64,
	target axis.Parameters,
	reduce func([]float64) (float64, float64),
) (decimated, bool) {
	if outLen <= 0 || len(s.samples) == 0 || target.IsZero() {
		return decimated{}, false
	}
	window, err := target.WithRange(xLow, xHigh)
	if err != nil {
		slog.Debug("skipping decimation of invalid window", "low", xLow, "high", xHigh, "err", err)
		return decimated{}, false
	}
	last := float64(len(s.samples) - 1)
	step, base := 1.0, 0.5
	if outLen > 1 {
		step, base = 1/float64(outLen-1), 0
	}
	// Neighbours of the first and last columns fall off the buffer, only the bounds are clamped.
	columnIndex := func(i int) float64 {
		return s.rawIndex(window.PositionToValue(base + float64(i)*step))
	}
	out := decimated{mins: make([]float64, outLen), maxs: make([]float64, outLen)}
	for i := range outLen {
		centre := columnIndex(i)
		lowBound := numeric.Clamp((columnIndex(i-1)+centre)/2, 0, last)
		highBound := numeric.Clamp((centre+columnIndex(i+1))/2, 0, last)
		lowBound, highBound = min(lowBound, highBound), max(lowBound, highBound)
		var lo, hi float64
		if highBound-lowBound < 2 {
			lo = interpolate(s.samples, centre)
			hi = lo
		} else {
			first := int(math.Round(lowBound))
			end := int(math.Round(highBound))
			lo, hi = reduce(s.samples[first : end+1])
		}
		out.mins[i] = s.y.ToViewport(lo)
		out.maxs[i] = s.y.ToViewport(hi)
	}
	return out, true
}

// sourceIndex maps a value on the buffer's X axis to a fractional sample index in [0, N-1].
func (s snapshot) sourceIndex(x float64) float64 {
	return numeric.Clamp(s.rawIndex(x), 0, float64(len(s.samples)-1))
}

func (s snapshot) rawIndex(x float64) float64 {
	idx := s.xAxis.ValueToPosition(x) * float64(len(s.samples)-1)
	if math.IsNaN(idx) {
		return 0
	}
	return idx
}

func interpolate(samples []float64, idx float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	idx = numeric.Clamp(idx, 0, float64(len(samples)-1))
	lower := int(math.Floor(idx))
	upper := min(lower+1, len(samples)-1)
	return numeric.Lerp(samples[lower], samples[upper], idx-float64(lower))
}
