// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package typography is the set of glyphs the plot draws with.
package typography

const (
	Block       = "█"
	LightBlock  = "░"
	MediumBlock = "▒"
	UpperHalf   = "▀"
	LowerHalf   = "▄"

	Vertical       = "│"
	Horizontal     = "─"
	DoubleVertical = "║"
	LightCross     = "┼"
	DottedVertical = "┊"
	DottedHorizon  = "┈"
	TopLine        = "‾"
	BottomLine     = "_"

	Bullet  = "•"
	Diamond = "◆"
	Square  = "■"

	LeftArrow  = "◀"
	RightArrow = "▶"
	UpArrow    = "▲"
	DownArrow  = "▼"

	UpperLeftQuadrantCircularArc  = "╭"
	UpperRightQuadrantCircularArc = "╮"
	LowerRightQuadrantCircularArc = "╯"
	LowerLeftQuadrantCircularArc  = "╰"
)
