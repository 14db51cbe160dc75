// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package themes

import (
	"log/slog"
	"strconv"
	"strings"
)

// Role is a use of colour, a [Theme] maps every role to exactly one colour.
type Role int

const (
	// RolePrimary is the main font, maximum contrast against the terminal background.
	RolePrimary Role = iota
	// RoleSecondary is a softer version of the primary font, axis labels and line glyphs use it.
	RoleSecondary
	RoleHighlight
	RoleEmphasis
	RoleTitleHighlight
	RolePositive
	RoleNegative

	// RoleTrace colours the single line or the centre of a signal.
	RoleTrace
	// RoleEnvelope colours the min/max band behind a trace.
	RoleEnvelope
	RoleGrid
	RoleMinorGrid
	RoleMarker

	roleCount
)

var roleNames = [roleCount]string{
	RolePrimary:        "primary",
	RoleSecondary:      "secondary",
	RoleHighlight:      "highlight",
	RoleEmphasis:       "emphasis",
	RoleTitleHighlight: "title-highlight",
	RolePositive:       "positive",
	RoleNegative:       "negative",
	RoleTrace:          "trace",
	RoleEnvelope:       "envelope",
	RoleGrid:           "grid",
	RoleMinorGrid:      "minor-grid",
	RoleMarker:         "marker",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "Unknown Role: " + strconv.Itoa(int(r))
	}
	return roleNames[r]
}

// Roles lists every role in declaration order.
func Roles() []Role {
	r := make([]Role, roleCount)
	for i := range r {
		r[i] = Role(i)
	}
	return r
}

// Theme contains all the data needed to print colour outputs to the terminal. A theme is loaded once with
// [LoadTheme] at startup, afterwards the top level functions ([Primary], [Trace], ...) colour with it.
type Theme struct {
	colours [roleCount]paint
}

// Colour applies the colour of [r] to [s].
func (t Theme) Colour(r Role, s string) string { return t.colours[r].Do(s) }

// Styler returns [Theme.Colour] bound to [r].
func (t Theme) Styler(r Role) func(string) string {
	return t.colours[r].Do
}

func Primary(s string) string        { return globalTheme.Colour(RolePrimary, s) }
func Secondary(s string) string      { return globalTheme.Colour(RoleSecondary, s) }
func Highlight(s string) string      { return globalTheme.Colour(RoleHighlight, s) }
func Emphasis(s string) string       { return globalTheme.Colour(RoleEmphasis, s) }
func TitleHighlight(s string) string { return globalTheme.Colour(RoleTitleHighlight, s) }
func Positive(s string) string       { return globalTheme.Colour(RolePositive, s) }
func Negative(s string) string       { return globalTheme.Colour(RoleNegative, s) }

// LookupTheme will search through the built-in themes and return one if found, or false.
func LookupTheme(name string) (Theme, bool) {
	theme, ok := builtinsLookup[normalizeName(name)]
	return theme, ok
}

// GetDefault returns the theme which should used based on a given luminance value, to set this as the global
// theme use [LoadTheme].
func GetDefault(luminance Luminance) Theme {
	if luminance.IsDark() {
		return DarkTheme
	}
	return LightTheme
}

// GetLoaded returns the currently loaded theme
func GetLoaded() Theme {
	return globalTheme
}

// LoadTheme updates the global theme with this new theme [t].
func LoadTheme(t Theme) {
	slog.Info("loaded new theme", "theme", t)
	globalTheme = t
}

func (t Theme) String() string {
	parts := make([]string, roleCount)
	for r := range roleCount {
		parts[r] = r.String() + ": " + t.colours[r].String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

var globalTheme = DarkTheme
