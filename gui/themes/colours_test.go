// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package themes_test

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
)

func TestParseHex(t *testing.T) {
	t.Parallel()
	for input, expected := range map[string]themes.RGB{
		"#1e750b": {R: 30, G: 117, B: 11},
		"#00FF00": {G: 255},
		"0000ff":  {B: 255},
	} {
		actual, err := themes.ParseHex(input)
		assert.NilError(t, err, input)
		assert.Equal(t, expected, actual, input)
	}

	for input, msg := range map[string]string{
		"#1e750b000": `colour "#1e750b000" should be 6 hex digits`,
		"###112233":  `colour "###112233" should be 6 hex digits`,
		"#GGGGGG":    `colour "#GGGGGG" is not hex caused by: encoding/hex: invalid byte: U+0047 'G'`,
		"":           `colour "" should be 6 hex digits`,
	} {
		_, err := themes.ParseHex(input)
		assert.Error(t, err, msg, input)
	}
}

func TestHexRoundTrips_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		c := themes.RGB{
			R: rapid.Uint8().Draw(rt, "r"),
			G: rapid.Uint8().Draw(rt, "g"),
			B: rapid.Uint8().Draw(rt, "b"),
		}
		parsed, err := themes.ParseHex(c.String())
		if err != nil || parsed != c {
			rt.Fatalf("%s parsed as %v, %v", c, parsed, err)
		}
	})
}

func TestParseColour(t *testing.T) {
	t.Parallel()
	for input, expected := range map[string]themes.Colour{
		"Cyan":         themes.Cyan,
		"dark-red":     themes.DarkRed,
		"LIGHT_GRAY":   themes.LightGray,
		"dark magenta": themes.DarkMagenta,
	} {
		actual, err := themes.ParseColour(input)
		assert.NilError(t, err, input)
		assert.Equal(t, expected, actual, input)
	}
	_, err := themes.ParseColour("CyanWithATypo")
	assert.Error(t, err, `unknown colour "CyanWithATypo"`)
	assert.Equal(t, "DarkBlue", themes.DarkBlue.String())
	assert.Equal(t, "Colour(12)", themes.Colour(12).String())
}

func TestParseBackground(t *testing.T) {
	t.Parallel()
	for input, dark := range map[string]bool{
		"Dark":     true,
		" light ":  false,
		"#FFFFFF":  false,
		"#1e750b":  true,
		" 000000 ": true,
	} {
		l, err := themes.ParseBackground(input)
		assert.NilError(t, err, input)
		assert.Check(t, is.Equal(dark, l.IsDark()), input)
		assert.Check(t, is.Equal(!dark, l.IsLight()), input)
	}
	_, err := themes.ParseBackground("purple")
	assert.ErrorContains(t, err, `background should be dark, light or a hex colour, got "purple"`)
}
