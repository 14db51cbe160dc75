// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gui

import (
	"strconv"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
)

// Box is a bordered panel of text lines anchored to one of the nine alignment points of the terminal.
type Box struct {
	// BoxText is the slice of text to show where each element represents a separate line
	BoxText []Typography
	// Title is embedded into the top border, it is dropped when the box has no border or is too narrow.
	Title         string
	Position      Position
	Style         Style
	Configuration BoxCfg
}

type Style int

const (
	RoundedCorners Style = 1
	SharpCorners   Style = 2
	NoBorder       Style = 3
)

var styleNames = [...]string{RoundedCorners: "RoundedCorners", SharpCorners: "SharpCorners", NoBorder: "NoBorder"}

func (s Style) String() string {
	if s < RoundedCorners || int(s) >= len(styleNames) {
		return "Unknown Style: " + strconv.Itoa(int(s))
	}
	return styleNames[s]
}

type BoxCfg struct {
	// DefaultWidth is the inner width of a box without any text.
	DefaultWidth int
}

// Draw writes the box to [buf], lines which do not fit in the terminal height are dropped.
func (b Box) Draw(size terminal.Size, buf *bytes.SafeBuffer) {
	l := b.layout(size)
	border := b.Style.border()
	inner := l.innerWidth
	row := l.row
	if border.present {
		_, _ = buf.WriteString(ansi.CursorPosition(row, l.column) + b.topBorder(border, inner))
		row++
	}
	for _, t := range b.BoxText[:l.lines] {
		_, _ = buf.WriteString(ansi.CursorPosition(row, l.column) + border.vertical + t.Pad(inner) + border.vertical)
		row++
	}
	if border.present {
		_, _ = buf.WriteString(ansi.CursorPosition(row, l.column) +
			border.bottomLeft + strings.Repeat(border.horizontal, inner) + border.bottomRight)
	}
}

func (b Box) topBorder(border border, inner int) string {
	title := ""
	if b.Title != "" && VisibleWidth(b.Title)+2 <= inner {
		title = " " + themes.TitleHighlight(b.Title) + " "
	}
	rest := inner - VisibleWidth(title)
	lead := min(1, rest)
	return border.topLeft + strings.Repeat(border.horizontal, lead) + title +
		strings.Repeat(border.horizontal, rest-lead) + border.topRight
}

// boxLayout is in 1 indexed terminal coordinates.
type boxLayout struct {
	row, column int
	innerWidth  int
	lines       int
}

func (b Box) layout(size terminal.Size) boxLayout {
	frame := b.Style.frameSize()
	lines := max(0, min(len(b.BoxText), size.Height-frame))
	inner := b.Configuration.DefaultWidth
	if len(b.BoxText) > 0 {
		inner = 0
		for _, t := range b.BoxText {
			inner = max(inner, t.Len())
		}
	}
	width, height := inner+frame, lines+frame

	p := b.Position
	l := boxLayout{innerWidth: inner, lines: lines}
	switch p.Horizontal {
	case Left:
		l.column = 1
	case Centre:
		l.column = (size.Width-width)/2 + 1
	case Right:
		l.column = size.Width - width + 1
	default:
		panic("unknown box alignment: " + p.Horizontal.String())
	}
	switch p.Vertical {
	case Top:
		l.row = 1
	case Middle:
		l.row = (size.Height-height)/2 + 1
	case Bottom:
		l.row = size.Height - height + 1
	default:
		panic("unknown box alignment: " + p.Vertical.String())
	}
	l.row = max(1, l.row+p.Padding.Top-p.Padding.Bottom)
	l.column = max(1, l.column+p.Padding.Left-p.Padding.Right)
	return l
}

type border struct {
	present                                        bool
	vertical, horizontal                           string
	topLeft, topRight, bottomLeft, bottomRight string
}

func (s Style) frameSize() int {
	if s.border().present {
		return 2
	}
	return 0
}

func (s Style) border() border {
	c := themes.Primary
	switch s {
	case RoundedCorners:
		return border{
			present: true, vertical: c("│"), horizontal: c("─"),
			topLeft: c("╭"), topRight: c("╮"), bottomLeft: c("╰"), bottomRight: c("╯"),
		}
	case SharpCorners:
		return border{
			present: true, vertical: c("│"), horizontal: c("─"),
			topLeft: c("┌"), topRight: c("┐"), bottomLeft: c("└"), bottomRight: c("┘"),
		}
	case NoBorder:
		return border{}
	default:
		panic("unknown box style: " + s.String())
	}
}
