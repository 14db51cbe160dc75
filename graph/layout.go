// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package graph

import (
	"math"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

// Layout is the major grid of an axis chosen for a data range: the axis is widened to round numbers and
// the fixed zoom narrows the view back to the data.
type Layout struct {
	Params axis.Parameters
	// Count is the number of major lines.
	Count int
	Fixed zoom.State
}

// logFloorDecade replaces a non positive minimum on a logarithmic layout.
const logFloorDecade = 10.0

// LayoutFor picks the axis, major line count and fixed zoom showing exactly [lo, hi] on [scale].
func LayoutFor(lo, hi float64, scale axis.Scale) (Layout, error) {
	if !numeric.IsFinite(lo) || !numeric.IsFinite(hi) || hi <= lo {
		return Layout{}, errors.Wrapf(axis.ErrConfiguration, "no layout for the range [%g, %g]", lo, hi)
	}
	switch scale {
	case axis.Logarithmic:
		return logLayout(lo, hi)
	case axis.Linear:
		return linearLayout(lo, hi)
	default:
		return Layout{}, errors.Wrapf(axis.ErrConfiguration, "no layout for scale %s", scale)
	}
}

// logLayout places one major line on every decade boundary.
func logLayout(lo, hi float64) (Layout, error) {
	visibleLo := lo
	decadeLo := logFloorDecade
	if lo > 0 {
		decadeLo = numeric.PreviousPowerOfTen(lo)
	} else {
		visibleLo = decadeLo
	}
	decadeHi := numeric.NextPowerOfTen(hi)
	if decadeHi <= decadeLo {
		decadeHi = decadeLo * 10
	}
	if hi <= visibleLo {
		return Layout{}, errors.Wrapf(axis.ErrConfiguration,
			"no logarithmic layout for [%g, %g], the maximum is below the floor %g", lo, hi, visibleLo)
	}
	params, err := axis.New(decadeLo, decadeHi, axis.Logarithmic)
	if err != nil {
		return Layout{}, err
	}
	count := int(math.Round(math.Log10(decadeHi/decadeLo))) + 1
	return Layout{Params: params, Count: count, Fixed: fixedFor(params, visibleLo, hi)}, nil
}

// linearLayout searches k * 10^e for the smallest round divisor covering the maximum, one major line per
// 10^e.
func linearLayout(lo, hi float64) (Layout, error) {
	if hi <= 0 {
		params, err := axis.New(lo, hi, axis.Linear)
		if err != nil {
			return Layout{}, err
		}
		return Layout{Params: params, Count: 11, Fixed: zoom.Unity}, nil
	}
	unit := math.Pow(10, numeric.Exponent(hi))
	k := 10
	for candidate := 1; candidate <= 10; candidate++ {
		if hi/(float64(candidate)*unit) <= 1 {
			k = candidate
			break
		}
	}
	divisor := float64(k) * unit
	count := k + 1
	if k == 1 {
		count = 11
	}
	params, err := axis.New(lo, divisor, axis.Linear)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Params: params, Count: count, Fixed: fixedFor(params, lo, hi)}, nil
}

func fixedFor(params axis.Parameters, lo, hi float64) zoom.State {
	offset := numeric.Clamp(params.ValueToPosition(lo), 0, 1)
	far := numeric.Clamp(params.ValueToPosition(hi), offset, 1)
	if far-offset < zoom.MinimumZoom {
		return zoom.Unity
	}
	return zoom.State{Zoom: far - offset, Offset: offset}
}
