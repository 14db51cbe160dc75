// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package axis converts between a normalized axis position in [0, 1] and the real value it represents under
// a linear or logarithmic scale.
package axis

import (
	"math"
	"strconv"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
)

type Scale int

const (
	Linear      Scale = 1
	Logarithmic Scale = 2
)

func (s Scale) String() string {
	switch s {
	case Linear:
		return "Linear"
	case Logarithmic:
		return "Logarithmic"
	default:
		return "Unknown Scale: " + strconv.Itoa(int(s))
	}
}

// ParseScale accepts "linear", "log" or "logarithmic" in any case.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lin":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	default:
		return 0, errors.Wrapf(ErrConfiguration, "unknown scale %q, expected linear or log", s)
	}
}

// Other returns the opposite scale, used by the UI toggle.
func (s Scale) Other() Scale {
	if s == Logarithmic {
		return Linear
	}
	return Logarithmic
}

// ErrConfiguration is returned (wrapped) whenever a range or size is rejected at construction or mutation.
// The rejected value never replaces the last valid state.
var ErrConfiguration = errors.New("configuration error")

// LogFloor is substituted for non-positive values in logarithmic mode.
const LogFloor = 1.0

// Parameters is an immutable axis description, all mutation returns a new value.
type Parameters struct {
	minimum float64
	maximum float64
	scale   Scale
}

// New validates and builds [Parameters], [maximum] must be strictly greater than [minimum].
func New(minimum, maximum float64, scale Scale) (Parameters, error) {
	if !numeric.IsFinite(minimum) || !numeric.IsFinite(maximum) {
		return Parameters{}, errors.Wrapf(ErrConfiguration, "axis bounds must be finite, got [%g, %g]", minimum, maximum)
	}
	if maximum <= minimum {
		return Parameters{}, errors.Wrapf(ErrConfiguration, "axis maximum %g must be greater than minimum %g", maximum, minimum)
	}
	if scale != Linear && scale != Logarithmic {
		return Parameters{}, errors.Wrapf(ErrConfiguration, "unknown axis scale %d", scale)
	}
	return Parameters{minimum: minimum, maximum: maximum, scale: scale}, nil
}

// MustNew is [New] for static ranges known to be valid.
func MustNew(minimum, maximum float64, scale Scale) Parameters {
	return check.Must(New(minimum, maximum, scale))
}

func (p Parameters) Min() float64   { return p.minimum }
func (p Parameters) Max() float64   { return p.maximum }
func (p Parameters) Scale() Scale   { return p.scale }
func (p Parameters) Span() float64  { return p.maximum - p.minimum }
func (p Parameters) IsZero() bool   { return p.scale == 0 }
func (p Parameters) IsLog() bool    { return p.scale == Logarithmic }
func (p Parameters) String() string { return p.scale.String() + "[" + f(p.minimum) + ", " + f(p.maximum) + "]" }

// WithRange returns a copy over the new range, rejecting it like [New] does.
func (p Parameters) WithRange(minimum, maximum float64) (Parameters, error) {
	return New(minimum, maximum, p.scale)
}

func (p Parameters) WithScale(scale Scale) (Parameters, error) {
	return New(p.minimum, p.maximum, scale)
}

// PositionToValue maps an axis position to the real value. Logarithmic axes interpolate geometrically so
// 0.5 on [20, 20000] is ~632.5, if the log floor was substituted for the minimum the floor itself maps to
// exactly 0.
func (p Parameters) PositionToValue(position float64) float64 {
	lo, hi, substituted, ok := p.logBounds()
	if !ok {
		return p.minimum + position*p.Span()
	}
	v := lo * math.Exp2(position*math.Log2(hi/lo))
	if substituted && v == lo {
		return 0
	}
	return v
}

// ValueToPosition is the inverse of [Parameters.PositionToValue], values outside the axis map outside
// [0, 1]. Non-positive values on a logarithmic axis are treated as [LogFloor].
func (p Parameters) ValueToPosition(value float64) float64 {
	lo, hi, _, ok := p.logBounds()
	if !ok {
		return (value - p.minimum) / p.Span()
	}
	if value <= 0 {
		value = LogFloor
	}
	return math.Log2(value/lo) / math.Log2(hi/lo)
}

// logBounds returns the effective logarithmic bounds, ok is false when the axis is linear or the
// substituted range collapses (e.g. [-5, 1]), in which case callers use the linear mapping.
func (p Parameters) logBounds() (lo, hi float64, substituted, ok bool) {
	if p.scale != Logarithmic {
		return 0, 0, false, false
	}
	lo = p.minimum
	if lo <= 0 {
		lo = LogFloor
		substituted = true
	}
	hi = p.maximum
	if hi <= lo {
		return 0, 0, false, false
	}
	return lo, hi, substituted, true
}

func f(x float64) string { return strconv.FormatFloat(x, 'g', 6, 64) }
