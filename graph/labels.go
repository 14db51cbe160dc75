// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package graph

import (
	"math"
	"strconv"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
)

var siPrefixes = []struct {
	exponent int
	symbol   string
}{
	{12, "T"},
	{9, "G"},
	{6, "M"},
	{3, "k"},
	{0, ""},
	{-3, "m"},
	{-6, "µ"},
	{-9, "n"},
}

// FormatSI renders [v] to three significant figures with an SI prefix, e.g. 22050 is "22.1k".
func FormatSI(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case v == 0:
		return "0"
	}
	rounded := numeric.RoundToNearestSigFig(v, 3)
	exponent := int(numeric.Exponent(rounded))
	for _, p := range siPrefixes {
		if exponent >= p.exponent {
			scaled := rounded / math.Pow(10, float64(p.exponent))
			return trimZeros(strconv.FormatFloat(scaled, 'f', max(0, 2-(exponent-p.exponent)), 64)) + p.symbol
		}
	}
	return strconv.FormatFloat(rounded, 'g', 3, 64)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// FormatPercent renders a Y axis position in [0, 1] as a whole percentage.
func FormatPercent(p float64) string {
	return strconv.Itoa(int(math.Round(p*100))) + "%"
}
