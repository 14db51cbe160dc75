// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package scope

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nfxdevelopment/graph-view-sub000/draw"
	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/sliceutils"
)

const (
	toastTimeout = 20 * time.Second
	toastLimit   = 4
)

// toastNotifications which should only be called once the paint buffer is initialised.
func (app *Application) toastNotifications(ctx context.Context, terminalSizeUpdates <-chan terminal.Size) {
	store := gui.NewNotification(app.ui, app.drawBuffer.Get(draw.ToastIndex), app.term.GetSize(), toastLimit,
		makeToastBox)
	defer store.Clear()
	for {
		select {
		case <-ctx.Done():
			return
		case newSize, ok := <-terminalSizeUpdates:
			if !ok {
				return
			}
			store.Resize(newSize)
		case toShow := <-app.errorChannel:
			if toShow == nil {
				continue
			}
			slog.Info("New Error being shown", "err", toShow)
			store.Push(toShow.Error(), toastTimeout)
		}
	}
}

const toastTitle = "An Error Occurred"

func makeToastBox(size terminal.Size, errs []string) gui.Draw {
	maxSize := max(1, (size.Width*3)/4)
	var text []gui.Typography
	for _, err := range errs {
		for line := range strings.SplitSeq(err, "\n") {
			for _, split := range sliceutils.SplitN([]rune(line), maxSize) {
				text = append(text, gui.Typography{ToPrint: string(split), Alignment: gui.Centre})
			}
		}
	}
	return gui.Box{
		BoxText: text,
		Title:   toastTitle,
		Position: gui.Position{
			Vertical:   gui.Middle,
			Horizontal: gui.Centre,
		},
		Style: gui.RoundedCorners,
	}
}
