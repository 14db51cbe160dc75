// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package themes

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

// Colour is one of the sixteen 4-bit foreground colours, its value is the SGR parameter selecting it so these
// are the most widely supported colours a theme can name.
//
// https://en.wikipedia.org/wiki/ANSI_escape_code#3-bit_and_4-bit
type Colour int

const (
	Black       Colour = 30
	DarkRed     Colour = 31
	DarkGreen   Colour = 32
	DarkYellow  Colour = 33
	DarkBlue    Colour = 34
	DarkMagenta Colour = 35
	DarkCyan    Colour = 36
	LightGray   Colour = 37

	Gray    Colour = 90
	Red     Colour = 91
	Green   Colour = 92
	Yellow  Colour = 93
	Blue    Colour = 94
	Magenta Colour = 95
	Cyan    Colour = 96
	White   Colour = 97
)

var colourNames = []struct {
	c    Colour
	name string
}{
	{Black, "Black"}, {DarkRed, "DarkRed"}, {DarkGreen, "DarkGreen"}, {DarkYellow, "DarkYellow"},
	{DarkBlue, "DarkBlue"}, {DarkMagenta, "DarkMagenta"}, {DarkCyan, "DarkCyan"}, {LightGray, "LightGray"},
	{Gray, "Gray"}, {Red, "Red"}, {Green, "Green"}, {Yellow, "Yellow"},
	{Blue, "Blue"}, {Magenta, "Magenta"}, {Cyan, "Cyan"}, {White, "White"},
}

func (c Colour) String() string {
	for _, n := range colourNames {
		if n.c == c {
			return n.name
		}
	}
	return "Colour(" + strconv.Itoa(int(c)) + ")"
}

// ParseColour finds a [Colour] by name, case, spaces, dashes and underscores are ignored so "dark-red" is
// [DarkRed].
func ParseColour(s string) (Colour, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	for _, n := range colourNames {
		if strings.EqualFold(n.name, key) {
			return n.c, nil
		}
	}
	return 0, errors.Errorf("unknown colour %q", s)
}

// Luminance of a terminal background, 0 is black and 1 is white.
type Luminance float64

const (
	Dark  Luminance = 0.0
	Light Luminance = 1.0
)

func (l Luminance) IsDark() bool  { return l < 0.5 }
func (l Luminance) IsLight() bool { return !l.IsDark() }

// ParseBackground reads the terminal background given on the command line, either the words "dark" or
// "light" or a CSS hex colour.
func ParseBackground(s string) (Luminance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	}
	c, err := parseHex(strings.TrimSpace(s))
	if err != nil {
		return Dark, errors.Wrapf(err, "background should be dark, light or a hex colour, got %q", s)
	}
	return c.luminance(), nil
}

// RGB is a 24-bit colour.
type RGB struct{ R, G, B uint8 }

// parseHex reads a CSS style "#rrggbb" colour, the '#' is optional.
func parseHex(s string) (RGB, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return RGB{}, errors.Errorf("colour %q should be 6 hex digits", s)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return RGB{}, errors.Wrapf(err, "colour %q is not hex", s)
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// luminance weighs the components as CCIR 601 does.
//
// https://en.wikipedia.org/wiki/Rec._601
func (c RGB) luminance() Luminance {
	const full = 255.0
	return Luminance((0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / full)
}

func (c RGB) String() string { return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B) }

// paint is a fully resolved colour: the SGR sequence which starts it and a name for logging. Colouring is a
// single concatenation since this is hit for every run of plot cells.
type paint struct {
	sgr  string
	name string
}

var noPaint = paint{name: "No Colour"}

func namedPaint(c Colour) paint {
	return paint{sgr: ansi.CSI + strconv.Itoa(int(c)) + "m", name: c.String()}
}

func palettePaint(index uint8) paint {
	return paint{sgr: ansi.CSI + "38;5;" + strconv.Itoa(int(index)) + "m", name: strconv.Itoa(int(index))}
}

func trueColourPaint(c RGB) paint {
	return paint{
		sgr:  fmt.Sprintf("%s38;2;%d;%d;%dm", ansi.CSI, c.R, c.G, c.B),
		name: c.String(),
	}
}

func (p paint) Do(s string) string {
	if p.sgr == "" {
		return s
	}
	return p.sgr + s + ansi.FormattingReset
}

func (p paint) String() string { return p.name }
