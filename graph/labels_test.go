// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package graph_test

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nfxdevelopment/graph-view-sub000/graph"
)

func TestFormatSI(t *testing.T) {
	t.Parallel()
	for in, expected := range map[float64]string{
		0:           "0",
		1:           "1",
		1.5:         "1.5",
		100:         "100",
		1000:        "1k",
		22050:       "22.1k",
		-2000:       "-2k",
		1e6:         "1M",
		0.5:         "500m",
		2.5e-6:      "2.5µ",
		math.Inf(1): "∞",
		math.NaN():  "NaN",
	} {
		assert.Equal(t, expected, graph.FormatSI(in), "FormatSI(%g)", in)
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0%", graph.FormatPercent(0))
	assert.Equal(t, "25%", graph.FormatPercent(0.25))
	assert.Equal(t, "100%", graph.FormatPercent(1))
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	m, err := graph.ParseMode(" Envelope")
	assert.NilError(t, err)
	assert.Equal(t, graph.Envelope, m)
	m, err = graph.ParseMode("line")
	assert.NilError(t, err)
	assert.Equal(t, graph.Line, m)
	assert.Equal(t, graph.Envelope, m.Other())

	_, err = graph.ParseMode("dots")
	assert.ErrorContains(t, err, `unknown mode "dots"`)
}
