// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package graph

import (
	"time"

	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/typography"
)

// spinner sits in the top right corner and shows the frame loop is alive while the plot is still. It turns a
// quarter every period since it started, clockwise.
type spinner struct {
	started time.Time
}

const spinnerPeriod = 225 * time.Millisecond

var spinnerArcs = [...]string{
	typography.UpperLeftQuadrantCircularArc,
	typography.UpperRightQuadrantCircularArc,
	typography.LowerRightQuadrantCircularArc,
	typography.LowerLeftQuadrantCircularArc,
}

func (s spinner) arc(now time.Time) string {
	turns := max(0, now.Sub(s.started)/spinnerPeriod)
	return spinnerArcs[int(turns)%len(spinnerArcs)]
}

func (s spinner) draw(size terminal.Size, now time.Time) string {
	return ansi.CursorPosition(1, max(1, size.Width-1)) + themes.Emphasis(s.arc(now))
}
