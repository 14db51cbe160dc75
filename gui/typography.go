// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gui

import (
	"strings"
	"unicode/utf8"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
)

// Typography is a single unbroken line of text, for multi line text use a [Box].
type Typography struct {
	// ToPrint may contain ANSI colour sequences, they take no space on screen.
	ToPrint   string
	Alignment HorizontalAlignment
}

// Text is a left aligned [Typography].
func Text(s string) Typography {
	return Typography{ToPrint: s, Alignment: Left}
}

// Len is the number of terminal cells the text occupies.
func (t Typography) Len() int {
	return VisibleWidth(t.ToPrint)
}

// VisibleWidth counts the runes of [s] which are printed, skipping CSI sequences. Every glyph is assumed to
// be one cell wide.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(ansi.Strip(s))
}

// Pad fills the text out to [width] cells according to its alignment, text which is too long is returned as
// is.
func (t Typography) Pad(width int) string {
	spare := width - t.Len()
	if spare <= 0 {
		return t.ToPrint
	}
	var left int
	switch t.Alignment {
	case Left:
	case Centre:
		left = spare / 2
	case Right:
		left = spare
	default:
		panic("unknown Alignment: " + t.Alignment.String())
	}
	return strings.Repeat(" ", left) + t.ToPrint + strings.Repeat(" ", spare-left)
}
