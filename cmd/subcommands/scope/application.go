// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package scope

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/nfxdevelopment/graph-view-sub000/draw"
	"github.com/nfxdevelopment/graph-view-sub000/graph"
	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/producer"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/channels"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

const (
	zoomStep  = 0.8
	panStep   = 0.1
	yZoomStep = 0.8
	// maxBlockSize bounds the block size keys, past this a frame spends most of its time decimating.
	maxBlockSize = 1 << 16
	minBlockSize = 2
)

type Application struct {
	ui         *gui.State
	g          *graph.Graph
	term       *terminal.Terminal
	producer   *producer.Producer
	config     *Config
	drawBuffer *draw.Buffer

	listeningChars map[rune]terminal.ConditionalListener
	fallbacks      []terminal.Listener

	errorChannel chan error
	controlPlane chan graph.Control
	// controlUpdates feeds the control box with the latest state changed by key presses.
	controlUpdates <-chan controlState
	pushControl    func(controlState)
	helpCh         chan rune

	// state is only read and written by the key listeners.
	state controlState
}

func (app *Application) Init(ctx context.Context, c *Config) error {
	app.config = c
	pcfg, err := c.producerConfig()
	if err != nil {
		return err
	}
	app.producer, err = producer.New(pcfg)
	if err != nil {
		return err
	}
	presentation, err := c.presentation(pcfg.Kind)
	if err != nil {
		return err
	}
	app.term, err = makeTerminal(*c.debuggingTermSize)
	if err != nil {
		return err
	}
	app.ui = gui.NewGUIState()
	app.drawBuffer = draw.NewPaintBuffer()
	app.listeningChars = map[rune]terminal.ConditionalListener{}
	app.errorChannel = make(chan error, 16)
	app.controlPlane = make(chan graph.Control)
	app.controlUpdates, app.pushControl = channels.Latest[controlState]()
	app.helpCh = make(chan rune)
	app.state = controlState{Presentation: presentation, BlockSize: app.producer.Config().BlockSize}

	app.g, err = graph.NewGraph(ctx, graph.GraphConfiguration{
		Gui:           app.ui,
		Input:         app.producer.CreateChannel(ctx, 1),
		Terminal:      app.term,
		DrawingBuffer: app.drawBuffer,
		ControlPlane:  app.controlPlane,
		Title:         "graph-view " + pcfg.Kind.String(),
		XRange:        app.producer.XAxis(),
		BlockSize:     app.producer.Config().BlockSize,
		PeakMarker:    *c.peak,
		Presentation:  presentation,
		FPS:           *c.fps,
		SetBlockSize:  app.producer.SetBlockSize,
		OnError:       app.showError,
		DebugStrict:   *c.DebugStrict,
	})
	return err
}

// Run blocks until the user quits or the graph fails.
func (app *Application) Run(ctx context.Context, cancelFunc context.CancelCauseFunc) error {
	initial := app.state
	app.registerKeys(ctx)
	app.addFallbackListener(func(r rune) error {
		select {
		case app.helpCh <- r:
		case <-ctx.Done():
		}
		return nil
	})
	_ = app.term.ClearScreen(terminal.UpdateSizeAndMoveHome)

	graphMain, cleanup, terminalSizeUpdates, err := app.g.Run(ctx, cancelFunc, app.listeners(), app.fallbacks)
	// Each goroutine needs to restore the terminal before a panic reaches the user.
	termRecover := func() {
		_ = app.term.ClearScreen(terminal.UpdateSize)
		if cleanup != nil {
			cleanup()
		}
		if err := recover(); err != nil {
			panic(err)
		}
	}
	defer termRecover()
	if err != nil {
		return err
	}
	defer cancelFunc(nil)
	terminalUpdates := channels.Broadcast(ctx, terminalSizeUpdates, 0, 3)
	go func() {
		defer termRecover()
		app.toastNotifications(ctx, terminalUpdates[0])
	}()
	go func() {
		defer termRecover()
		app.help(ctx, !*app.config.hideHelpOnStart, terminalUpdates[1])
	}()
	go func() {
		defer termRecover()
		app.showControls(ctx, initial, terminalUpdates[2])
	}()
	return graphMain()
}

// Finish prints the last frame and the statistics once the terminal is restored.
func (app *Application) Finish() {
	_ = app.term.ClearScreen(terminal.UpdateSize)
	_ = app.term.Print(app.g.LastFrame())
	_ = app.term.Print("\n\n# Summary\n" + app.g.Summarise() + "\n")
}

// showError queues [err] for a toast, it never blocks the caller.
func (app *Application) showError(err error) {
	select {
	case app.errorChannel <- err:
	default:
		slog.Warn("too many errors queued, dropping", "err", err)
	}
}

func (app *Application) registerKeys(ctx context.Context) {
	send := func(c graph.Control) {
		select {
		case app.controlPlane <- c:
		case <-ctx.Done():
			return
		}
		app.pushControl(app.state)
	}
	onKeys := func(action func() graph.Control, keys ...rune) {
		for _, r := range keys {
			app.addListener(r, func(rune) error {
				send(action())
				return nil
			})
		}
	}
	onKeys(func() graph.Control { return graph.Control{Zoom: graph.Changed(zoomStep)} }, '+', '=')
	onKeys(func() graph.Control { return graph.Control{Zoom: graph.Changed(1 / zoomStep)} }, '-', '_')
	onKeys(func() graph.Control { return graph.Control{Pan: graph.Changed(-panStep)} }, 'a')
	onKeys(func() graph.Control { return graph.Control{Pan: graph.Changed(panStep)} }, 'd')
	onKeys(func() graph.Control { return graph.Control{YZoom: graph.Changed(yZoomStep)} }, 'w')
	onKeys(func() graph.Control { return graph.Control{YZoom: graph.Changed(1 / yZoomStep)} }, 's')
	onKeys(func() graph.Control {
		app.state.XAxisScale = app.state.XAxisScale.Other()
		return graph.Control{XAxisScale: graph.Changed(app.state.XAxisScale)}
	}, 'l')
	onKeys(func() graph.Control {
		app.state.Mode = app.state.Mode.Other()
		return graph.Control{Mode: graph.Changed(app.state.Mode)}
	}, 'm')
	onKeys(func() graph.Control {
		app.state.ShowMinor = !app.state.ShowMinor
		return graph.Control{ShowMinor: graph.Changed(app.state.ShowMinor)}
	}, 'g')
	onKeys(func() graph.Control { return graph.Control{Reset: graph.Changed(true)} }, 'r')
	onKeys(func() graph.Control {
		app.state.BlockSize = max(minBlockSize, app.state.BlockSize/2)
		return graph.Control{BlockSize: graph.Changed(app.state.BlockSize)}
	}, '[')
	onKeys(func() graph.Control {
		app.state.BlockSize = min(maxBlockSize, app.state.BlockSize*2)
		return graph.Control{BlockSize: graph.Changed(app.state.BlockSize)}
	}, ']')
	if *app.config.testErrorListener {
		app.addListener('e', func(rune) error {
			app.showError(errors.New("Test Error"))
			return nil
		})
	}
}

func (app *Application) addListener(r rune, action func(rune) error) {
	if _, found := app.listeningChars[r]; found {
		panic(fmt.Sprintf("Adding more than one listener for '%v'", r))
	}
	app.listeningChars[r] = terminal.ConditionalListener{
		Listener: terminal.Listener{
			Action: action,
			Name:   "GUI Listener " + strconv.QuoteRune(r),
		},
		Applicable: func(in rune) bool {
			return in == r
		},
	}
}

func (app *Application) addFallbackListener(action func(rune) error) {
	app.fallbacks = append(app.fallbacks, terminal.Listener{
		Action: action,
		Name:   "GUI Fallback Listener",
	})
}

func (app *Application) listeners() []terminal.ConditionalListener {
	ret := make([]terminal.ConditionalListener, 0, len(app.listeningChars))
	return slices.AppendSeq(ret, maps.Values(app.listeningChars))
}

func makeTerminal(termSize string) (*terminal.Terminal, error) {
	if termSize != "" {
		return terminal.NewParsedFixedSizeTerminal(termSize)
	}
	return terminal.NewTerminal()
}
