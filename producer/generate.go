// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package producer

import (
	"math"
	"math/rand/v2"

	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
)

const (
	amplitude = 0.45
	// phaseDrift is how far a periodic waveform moves between blocks, in radians.
	phaseDrift = 0.15
	// peakWidth is the standard deviation of a spectral peak in decades.
	peakWidth  = 0.03
	noiseFloor = 0.04
	// peakSweep multiplies the spectral peak every block, the peak wraps back to a tenth of the configured
	// frequency after passing ten times it.
	peakSweep = 1.004
)

// generator holds the waveform state carried between blocks.
type generator struct {
	kind      Kind
	blockSize int
	frequency float64
	noise     float64
	rng       *rand.Rand

	phase float64
	peak  float64
}

func newGenerator(cfg Config, rng *rand.Rand) *generator {
	return &generator{
		kind:      cfg.Kind,
		blockSize: cfg.BlockSize,
		frequency: cfg.Frequency,
		noise:     cfg.Noise,
		rng:       rng,
		peak:      cfg.Frequency,
	}
}

func (g *generator) resize(n int) { g.blockSize = n }

// next returns a fresh block, every sample clamped into [0, 1].
func (g *generator) next() []float64 {
	out := make([]float64, g.blockSize)
	n := float64(g.blockSize)
	switch g.kind {
	case Sine:
		for i := range out {
			out[i] = 0.5 + amplitude*math.Sin(2*math.Pi*g.frequency*float64(i)/n+g.phase)
		}
	case Square:
		for i := range out {
			if math.Sin(2*math.Pi*g.frequency*float64(i)/n+g.phase) >= 0 {
				out[i] = 0.5 + amplitude
			} else {
				out[i] = 0.5 - amplitude
			}
		}
	case Chirp:
		// an exponential sweep from one cycle per block up to the configured frequency
		k := math.Max(g.frequency, 1+1e-9)
		for i := range out {
			x := float64(i) / n
			cycles := (math.Pow(k, x) - 1) / math.Log(k)
			out[i] = 0.5 + amplitude*math.Sin(2*math.Pi*cycles+g.phase)
		}
	case Noise:
		for i := range out {
			out[i] = g.rng.Float64()
		}
	case Spectrum:
		g.spectrum(out)
	}
	if g.noise > 0 {
		for i := range out {
			out[i] += g.noise * (g.rng.Float64() - 0.5)
		}
	}
	for i := range out {
		out[i] = numeric.Clamp(out[i], 0, 1)
	}
	g.phase = math.Mod(g.phase+phaseDrift, 2*math.Pi)
	return out
}

// spectrum fills linear bins from 0 Hz to [Nyquist] with a peak and two harmonics over a noise floor.
func (g *generator) spectrum(out []float64) {
	last := float64(len(out) - 1)
	harmonics := []struct{ multiple, gain float64 }{{1, 0.9}, {2, 0.5}, {3, 0.3}}
	for i := range out {
		hz := Nyquist * float64(i) / last
		v := noiseFloor * (1 + g.rng.Float64())
		if hz > 0 {
			for _, h := range harmonics {
				d := math.Log10(hz) - math.Log10(g.peak*h.multiple)
				v += h.gain * math.Exp(-d*d/(2*peakWidth*peakWidth))
			}
		}
		out[i] = v
	}
	g.peak *= peakSweep
	if g.peak > 10*g.frequency || g.peak*3 >= Nyquist {
		g.peak = g.frequency / 10
	}
}
