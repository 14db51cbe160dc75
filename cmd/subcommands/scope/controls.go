// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package scope

import (
	"context"
	"strconv"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/draw"
	"github.com/nfxdevelopment/graph-view-sub000/graph"
	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
)

// showControls which should only be called once the paint buffer is initialised.
func (app *Application) showControls(
	ctx context.Context,
	initialValues controlState,
	terminalSizeUpdates <-chan terminal.Size,
) {
	buffer := app.drawBuffer.Get(draw.ControlIndex)
	c := initialValues
	size := app.term.GetSize()
	app.ui.Paint(c.render(size, buffer))
	for {
		select {
		case <-ctx.Done():
			return
		case newSize, ok := <-terminalSizeUpdates:
			if !ok {
				return
			}
			size = newSize
			app.ui.Paint(c.render(size, buffer))
		case c = <-app.controlUpdates:
			app.ui.Paint(c.render(size, buffer))
		}
	}
}

// controlState is what the control box shows, the presentation as last requested and the block size.
type controlState struct {
	graph.Presentation
	BlockSize int
}

func (c controlState) render(size terminal.Size, buf *bytes.SafeBuffer) gui.PaintUpdate {
	ret := gui.Paint
	if buf.Len() != 0 {
		// the new box may be narrower than the old one
		ret |= gui.Invalidate
	}
	buf.Reset()
	c.box().Draw(size, buf)
	return ret
}

func (c controlState) box() gui.Box {
	scale := "linear"
	if c.XAxisScale == axis.Logarithmic {
		scale = "log"
	}
	minor := "off"
	if c.ShowMinor {
		minor = "on"
	}
	line := func(name, value string) gui.Typography {
		return gui.Typography{ToPrint: themes.Secondary(name+" ") + themes.Highlight(value), Alignment: gui.Right}
	}
	return gui.Box{
		BoxText: []gui.Typography{
			line("x", scale),
			line("mode", c.Mode.String()),
			line("minor", minor),
			line("block", strconv.Itoa(c.BlockSize)),
		},
		Position: gui.Position{
			Vertical:   gui.Top,
			Horizontal: gui.Right,
			Padding:    gui.Padding{Top: 1, Right: 1},
		},
		Style: gui.NoBorder,
	}
}
