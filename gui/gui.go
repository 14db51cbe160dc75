// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package gui holds the overlays painted on top of the plot (help, the control panel, error toasts) and
// the bookkeeping which tells the frame loop when they need repainting.
package gui

import (
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
)

// GUI is the paint state shared between GUI components, which paint into their own buffers from any
// goroutine, and the frame loop, which copies those buffers to the terminal.
type GUI interface {
	// GetState returns a token describing what has changed since the last [GUI.Drawn].
	GetState() Token
	// Drawn is called by the frame loop with the token it acted on.
	Drawn(t Token)
	// Paint is called by components after writing to their buffer.
	Paint(update PaintUpdate)
}

type Token interface {
	// ShouldDraw is true when a component has new content to draw over the last frame.
	ShouldDraw() bool
	// ShouldInvalidate is true when a component has removed content so the whole frame must be redrawn.
	ShouldInvalidate() bool
}

// Draw is a component which renders itself for a terminal of the given size.
type Draw interface {
	Draw(size terminal.Size, b *bytes.SafeBuffer)
}

// NoGUI never asks for a repaint, for a graph without overlays.
func NoGUI() GUI { return idle{} }

type idle struct{}

func (idle) GetState() Token        { return idle{} }
func (idle) Drawn(Token)            {}
func (idle) Paint(PaintUpdate)      {}
func (idle) ShouldDraw() bool       { return false }
func (idle) ShouldInvalidate() bool { return false }

var (
	_ GUI   = idle{}
	_ Token = idle{}
	_ Draw  = Box{}
)
