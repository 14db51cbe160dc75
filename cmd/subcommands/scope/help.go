// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package scope

import (
	"context"

	"github.com/nfxdevelopment/graph-view-sub000/draw"
	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
)

// help which should only be called once the paint buffer is initialised. Any key without its own binding
// toggles the box.
func (app *Application) help(
	ctx context.Context,
	startShowHelp bool,
	terminalSizeUpdates <-chan terminal.Size,
) {
	helpBuffer := app.drawBuffer.Get(draw.HelpIndex)
	h := help{showHelp: startShowHelp, errorKey: *app.config.testErrorListener}
	size := app.term.GetSize()
	app.ui.Paint(h.render(size, helpBuffer))
	for {
		select {
		case <-ctx.Done():
			return
		case newSize, ok := <-terminalSizeUpdates:
			if !ok {
				return
			}
			size = newSize
			app.ui.Paint(h.render(size, helpBuffer))
		case <-app.helpCh:
			h.showHelp = !h.showHelp
			app.ui.Paint(h.render(size, helpBuffer))
		}
	}
}

type help struct {
	showHelp bool
	errorKey bool
}

func (h help) render(size terminal.Size, buf *bytes.SafeBuffer) gui.PaintUpdate {
	ret := gui.None
	if buf.Len() != 0 {
		ret |= gui.Invalidate
	}
	buf.Reset()
	if h.showHelp {
		h.box().Draw(size, buf)
		return ret | gui.Paint
	}
	return ret
}

func (h help) box() gui.Box {
	key := func(keys, action string) gui.Typography {
		return gui.Text(themes.Primary("Press ") + themes.Positive(keys) + themes.Primary(" "+action))
	}
	text := []gui.Typography{
		{ToPrint: "", Alignment: gui.Centre},
		key("ctrl+c", "to exit."),
		key("+ -", "to zoom the X axis."),
		key("a d", "to pan left and right."),
		key("w s", "to zoom the Y axis."),
		key("l", "to switch between a log and linear X axis."),
		key("m", "to switch between envelope and line."),
		key("g", "to show or hide minor grid lines."),
		key("r", "to reset the zoom."),
		key("[ ]", "to halve or double the block size."),
	}
	if h.errorKey {
		text = append(text, key("e", "to generate a test error."))
	}
	text = append(text, gui.Text(themes.Primary("Any other key opens/closes this window.")))
	return gui.Box{
		BoxText: text,
		Title:   "Help",
		Position: gui.Position{
			Vertical:   gui.Middle,
			Horizontal: gui.Right,
			Padding:    gui.Padding{Right: 2},
		},
		Style: gui.SharpCorners,
	}
}
