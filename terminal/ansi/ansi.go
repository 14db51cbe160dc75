// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package ansi builds the escape sequences the plot is painted with. Only the subset of ECMA-48 a frame
// needs is here: absolute cursor placement, erasing the display and SGR colours.
//
// https://en.wikipedia.org/wiki/ANSI_escape_code
package ansi

import (
	"strconv"
	"strings"
)

const (
	// Control Sequence Introducer, the sequence runs until a final byte in 0x40 through 0x7E.
	CSI = "\033["

	// FormattingReset turns every SGR attribute off.
	FormattingReset = CSI + "0m"
	HideCursor      = CSI + "?25l"
	ShowCursor      = CSI + "?25h"
)

// ED is the parameter of Erase in Display.
type ED int

const (
	CursorToScreenEnd         ED = 0
	CursorToScreenBegin       ED = 1
	CursorScreen              ED = 2
	CursorScreenAndScrollBack ED = 3
)

var (
	// Clear erases the visible screen, the cursor doesn't move.
	Clear = EraseInDisplay(CursorScreen)
	Home  = CursorPosition(1, 1)
)

// CursorPosition moves to the 1 indexed [row] and [column], [row] is the plot's Y and [column] its X.
// Default parameters are elided, "CSI ;5H" is "CSI 1;5H" and "CSI 17H" is "CSI 17;1H". Nothing is emitted
// for a position wholly off screen.
func CursorPosition(row, column int) string {
	switch {
	case row <= 0 && column <= 0:
		return ""
	case row == 1 && column == 1:
		return CSI + "H"
	case row == 1:
		return CSI + ";" + itoa(column) + "H"
	case column == 1:
		return CSI + itoa(row) + "H"
	default:
		return CSI + itoa(row) + ";" + itoa(column) + "H"
	}
}

func EraseInDisplay(n ED) string { return CSI + itoa(int(n)) + "J" }

// Strip removes every CSI sequence from [s], leaving what a terminal would print.
func Strip(s string) string {
	if !strings.Contains(s, CSI) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		before, after, found := strings.Cut(s, CSI)
		b.WriteString(before)
		if !found {
			return b.String()
		}
		end := strings.IndexFunc(after, func(r rune) bool { return r >= 0x40 && r <= 0x7E })
		if end < 0 {
			return b.String()
		}
		s = after[end+1:]
	}
}

var itoa = strconv.Itoa

// sgr wraps [s] in the Select Graphic Rendition [params] and a reset.
func sgr(params, s string) string { return CSI + params + "m" + s + FormattingReset }

// 4-bit colours, the dark variants are the standard eight and the rest their bright counterparts.

func Black(s string) string       { return sgr("30", s) }
func DarkRed(s string) string     { return sgr("31", s) }
func DarkGreen(s string) string   { return sgr("32", s) }
func DarkYellow(s string) string  { return sgr("33", s) }
func DarkBlue(s string) string    { return sgr("34", s) }
func DarkMagenta(s string) string { return sgr("35", s) }
func DarkCyan(s string) string    { return sgr("36", s) }
func LightGray(s string) string   { return sgr("37", s) }
func Gray(s string) string        { return sgr("90", s) }
func Red(s string) string         { return sgr("91", s) }
func Green(s string) string       { return sgr("92", s) }
func Yellow(s string) string      { return sgr("93", s) }
func Blue(s string) string        { return sgr("94", s) }
func Magenta(s string) string     { return sgr("95", s) }
func Cyan(s string) string        { return sgr("96", s) }
func White(s string) string       { return sgr("97", s) }

// Colour is an 8-bit palette index, the palette itself is up to the terminal.
//
// https://en.wikipedia.org/wiki/ANSI_escape_code#8-bit
func Colour(s string, colour int) string { return sgr("38;5;"+itoa(colour), s) }

// TrueColour is a 24-bit colour, not every terminal supports it.
func TrueColour(s string, red, green, blue uint8) string {
	return sgr("38;2;"+itoa(int(red))+";"+itoa(int(green))+";"+itoa(int(blue)), s)
}
