// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package graph composes the axes, zoom displays, grid lines, signal buffers and markers into a plot and
// drives it on a terminal.
package graph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/draw"
	"github.com/nfxdevelopment/graph-view-sub000/gridlines"
	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/marker"
	"github.com/nfxdevelopment/graph-view-sub000/producer"
	"github.com/nfxdevelopment/graph-view-sub000/signal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/atomic"
	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/observer"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

const (
	DefaultFPS = 60.0
	// DefaultXThreshold and DefaultYThreshold are the minor grid densities in terminal cells.
	DefaultXThreshold = 24.0
	DefaultYThreshold = 8.0
	yAxisCount        = 5
)

type Graph struct {
	ui             gui.GUI
	Term           *terminal.Terminal
	input          <-chan producer.Event
	controlChannel <-chan Control
	drawingBuffer  *draw.Buffer

	// m guards the X grid which is replaced on a scale switch, and the plot size it was built for.
	m       *sync.Mutex
	layout  Layout
	xLines  *gridlines.GridLines
	surface terminal.Size

	xRange axis.Parameters
	xAxis  *axis.Shared
	xLive  *zoom.Display
	xFixed *zoom.Display
	yLines *gridlines.GridLines

	traces     []Trace
	markers    []marker.Marker
	peakMarker bool
	title      string

	presentation atomic.Of[Presentation]
	controls     atomic.Of[uint64]

	frameMutex *sync.Mutex
	lastFrame  Frame
	lastKey    frameKey
	spinner    spinner

	fps          float64
	xThreshold   float64
	setBlockSize func(int) error
	onError      func(error)
	stats        *stats
	subs         []observer.Subscription
	debugStrict  bool
}

// Trace is one signal drawn on the plot.
type Trace struct {
	Name   string
	Buffer *signal.Buffer
}

// Control is the signal type which changes the view or the presentation of the graph.
type Control struct {
	// Zoom multiplies the X zoom level about the centre of the view, below one zooms in.
	Zoom Change[float64]
	// Pan shifts the X view by a fraction of the visible width.
	Pan        Change[float64]
	XAxisScale Change[axis.Scale]
	Mode       Change[Mode]
	// YZoom multiplies the Y zoom level of the first trace about the centre of the view.
	YZoom     Change[float64]
	Reset     Change[bool]
	BlockSize Change[int]
	ShowMinor Change[bool]
}

type Change[T any] struct {
	Value     T
	DidChange bool
}

// Changed is shorthand for a [Change] which did change.
func Changed[T any](v T) Change[T] {
	return Change[T]{Value: v, DidChange: true}
}

func (c Control) String() string {
	var parts []string
	add := func(name string, did bool, v any) {
		if did {
			parts = append(parts, name+"="+fmt.Sprint(v))
		}
	}
	add("zoom", c.Zoom.DidChange, c.Zoom.Value)
	add("pan", c.Pan.DidChange, c.Pan.Value)
	add("x-scale", c.XAxisScale.DidChange, c.XAxisScale.Value)
	add("mode", c.Mode.DidChange, c.Mode.Value)
	add("y-zoom", c.YZoom.DidChange, c.YZoom.Value)
	add("reset", c.Reset.DidChange, c.Reset.Value)
	add("block-size", c.BlockSize.DidChange, c.BlockSize.Value)
	add("show-minor", c.ShowMinor.DidChange, c.ShowMinor.Value)
	return "{" + strings.Join(parts, " ") + "}"
}

// Mode is how a trace is drawn.
type Mode int

const (
	// Envelope fills the band between the minimum and maximum of every column behind the line.
	Envelope Mode = iota + 1
	Line
)

func (m Mode) String() string {
	switch m {
	case Envelope:
		return "envelope"
	case Line:
		return "line"
	default:
		return "Unknown Mode: " + strconv.Itoa(int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "envelope":
		return Envelope, nil
	case "line":
		return Line, nil
	default:
		return 0, errors.Wrapf(axis.ErrConfiguration, "unknown mode %q, expected envelope or line", s)
	}
}

// Other returns the mode a toggle switches to.
func (m Mode) Other() Mode {
	if m == Envelope {
		return Line
	}
	return Envelope
}

// Presentation is the part of the graph which only changes how it is drawn, never the data.
type Presentation struct {
	XAxisScale axis.Scale
	Mode       Mode
	ShowMinor  bool
}

type GraphConfiguration struct {
	// Gui is polled every frame, components painted since the last frame are written over the plot.
	Gui gui.GUI
	// Input feeds the first trace. Optional.
	Input <-chan producer.Event
	// Terminal is the underlying terminal the graph will draw to, the graph takes ownership of it.
	Terminal      *terminal.Terminal
	DrawingBuffer *draw.Buffer
	ControlPlane  <-chan Control
	Title         string
	// XRange is the range of data on the X axis, the drawn axis is widened to round numbers by [LayoutFor].
	XRange axis.Parameters
	// Traces default to a single zeroed trace of BlockSize samples over XRange.
	Traces     []Trace
	BlockSize  int
	Markers    []marker.Marker
	PeakMarker bool
	// Presentation defaults to the scale of XRange in envelope mode.
	Presentation Presentation
	FPS          float64
	XThreshold   float64
	YThreshold   float64
	// LinkYZoom makes every trace follow the Y zoom of the first.
	LinkYZoom bool
	// SetBlockSize forwards block size controls upstream, nil applies them to the first trace directly.
	SetBlockSize func(int) error
	// OnError is told about every runtime error, they are always logged.
	OnError     func(error)
	DebugStrict bool
}

// NewGraph builds a graph, the grid line listeners are detached when [ctx] ends (nil never detaches them,
// see [Graph.Close]).
func NewGraph(ctx context.Context, cfg GraphConfiguration) (*Graph, error) {
	if cfg.XRange.IsZero() {
		return nil, errors.Wrap(axis.ErrConfiguration, "graph needs an X range")
	}
	if cfg.Gui == nil {
		cfg.Gui = gui.NoGUI()
	}
	if cfg.DrawingBuffer == nil {
		cfg.DrawingBuffer = draw.NewPaintBuffer()
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.XThreshold <= 0 {
		cfg.XThreshold = DefaultXThreshold
	}
	if cfg.YThreshold <= 0 {
		cfg.YThreshold = DefaultYThreshold
	}
	if cfg.Presentation.XAxisScale == 0 {
		cfg.Presentation.XAxisScale = cfg.XRange.Scale()
	}
	if cfg.Presentation.Mode == 0 {
		cfg.Presentation.Mode = Envelope
	}
	if cfg.OnError == nil {
		cfg.OnError = func(error) {}
	}
	if len(cfg.Traces) == 0 {
		if cfg.BlockSize == 0 {
			cfg.BlockSize = producer.DefaultBlockSize
		}
		buffer, err := signal.New(cfg.BlockSize, cfg.XRange)
		if err != nil {
			return nil, err
		}
		cfg.Traces = []Trace{{Name: cfg.Title, Buffer: buffer}}
	}

	layout, err := LayoutFor(cfg.XRange.Min(), cfg.XRange.Max(), cfg.Presentation.XAxisScale)
	if err != nil {
		return nil, err
	}
	xLive, err := zoom.NewBounded(zoom.Limits{Lower: 0, Upper: 1, MinZoom: zoom.MinimumZoom, MaxZoom: 1})
	if err != nil {
		return nil, err
	}
	xFixed := zoom.New()
	if err := xFixed.Set(layout.Fixed); err != nil {
		return nil, err
	}
	xLines, err := gridlines.New(gridlines.Config{
		Orientation: gridlines.X,
		Axis:        layout.Params,
		Count:       layout.Count,
		Live:        xLive,
		Fixed:       xFixed,
		Threshold:   cfg.XThreshold,
		ShowMinor:   cfg.Presentation.ShowMinor,
	})
	if err != nil {
		return nil, err
	}
	yLines, err := gridlines.New(gridlines.Config{
		Orientation: gridlines.Y,
		Axis:        axis.MustNew(0, 1, axis.Linear),
		Count:       yAxisCount,
		Live:        cfg.Traces[0].Buffer.YZoom(),
		Threshold:   cfg.YThreshold,
		ShowMinor:   cfg.Presentation.ShowMinor,
	})
	if err != nil {
		xLines.Close()
		return nil, err
	}

	g := &Graph{
		ui:             cfg.Gui,
		Term:           cfg.Terminal,
		input:          cfg.Input,
		controlChannel: cfg.ControlPlane,
		drawingBuffer:  cfg.DrawingBuffer,
		m:              &sync.Mutex{},
		layout:         layout,
		xLines:         xLines,
		xRange:         cfg.XRange,
		xAxis:          axis.NewShared(layout.Params),
		xLive:          xLive,
		xFixed:         xFixed,
		yLines:         yLines,
		traces:         cfg.Traces,
		markers:        cfg.Markers,
		peakMarker:     cfg.PeakMarker,
		title:          cfg.Title,
		presentation:   atomic.Init(cfg.Presentation),
		controls:       atomic.Init[uint64](0),
		frameMutex:     &sync.Mutex{},
		spinner:        spinner{started: time.Now()},
		fps:            cfg.FPS,
		xThreshold:     cfg.XThreshold,
		setBlockSize:   cfg.SetBlockSize,
		onError:        cfg.OnError,
		stats:          newStats(),
		debugStrict:    cfg.DebugStrict,
	}
	g.subs = append(g.subs, g.xAxis.Subscribe("graph X grid", g.rebuildXGrid))
	if cfg.LinkYZoom {
		primary := cfg.Traces[0].Buffer.YZoom()
		for _, t := range cfg.Traces[1:] {
			follower := t.Buffer.YZoom()
			g.subs = append(g.subs, primary.Subscribe("linked Y zoom "+t.Name, func(s zoom.State) {
				g.report(errors.Wrapf(follower.Set(s), "while linking the Y zoom of %q", t.Name))
			}))
		}
	}
	if ctx != nil {
		context.AfterFunc(ctx, g.Close)
	}
	slog.Info("graph created", "x axis", layout.Params, "major lines", layout.Count, "fixed", layout.Fixed,
		"traces", len(cfg.Traces), "presentation", cfg.Presentation)
	return g, nil
}

// Run holds the thread and draws a new frame at the configured frame rate, it only returns a fatal error in
// which case it couldn't continue drawing. It will return [terminal.UserCancelled] if the user cancelled.
//
// Cancellation is only observed between frames so a frame is never left half drawn. The producer sink and
// the control handler run alongside the frame loop and are joined before the graph main function returns.
//
// Returns
//   - The graph main function
//   - the defer function which will restore the terminal to the correct state
//   - a channel containing all the terminal size updates
//   - an error if creating any of the above failed.
func (g *Graph) Run(
	ctx context.Context,
	stop context.CancelCauseFunc,
	listeners []terminal.ConditionalListener,
	fallbacks []terminal.Listener,
) (func() error, func(), <-chan terminal.Size, error) {
	cleanup, err := g.Term.StartRaw(ctx, stop, listeners, fallbacks)
	if err != nil {
		return nil, cleanup, nil, err
	}
	terminalUpdates := make(chan terminal.Size)
	graph := func() error {
		defer close(terminalUpdates)
		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error { return g.frameLoop(groupCtx, terminalUpdates) })
		if g.controlChannel != nil {
			group.Go(func() error { return g.handleControl(groupCtx) })
		}
		if g.input != nil {
			group.Go(func() error { return g.sink(groupCtx) })
		}
		slog.Info("running graph-view", "fps", g.fps)
		return group.Wait()
	}
	return graph, cleanup, terminalUpdates, nil
}

func (g *Graph) frameLoop(ctx context.Context, terminalUpdates chan<- terminal.Size) error {
	limiter := rate.NewLimiter(rate.Limit(g.fps), 1)
	size := g.Term.GetSize()
	for {
		if err := limiter.Wait(ctx); err != nil {
			return context.Cause(ctx)
		}
		if err := g.Term.UpdateSize(); err != nil {
			return err
		}
		if newSize := g.Term.GetSize(); newSize != size {
			size = newSize
			slog.Info("sending size update", "size", size)
			select {
			case terminalUpdates <- size:
			case <-ctx.Done():
				return context.Cause(ctx)
			}
		}
		toWrite := g.nextFrame(size, true)
		if err := toWrite(g.Term); err != nil {
			return err
		}
	}
}

// OneFrame doesn't run the graph but runs all the code to create and print a single frame to the terminal.
func (g *Graph) OneFrame() error {
	err := g.Term.ClearScreen(terminal.UpdateSizeAndMoveHome)
	if err != nil {
		return err
	}
	return g.nextFrame(g.Term.GetSize(), false)(g.Term)
}

// LastFrame returns the last frame painted, without any GUI components.
func (g *Graph) LastFrame() string {
	g.frameMutex.Lock()
	defer g.frameMutex.Unlock()
	var b strings.Builder
	err := g.lastFrame.Paint(&b)
	check.NoErr(err, "While painting frame to string buffer")
	return b.String()
}

// Summarise reports the frame and producer statistics, one "name: value" per line.
func (g *Graph) Summarise() string {
	s, err := g.stats.summary()
	if err != nil {
		g.report(err)
	}
	return s
}

// WriteMetrics writes the statistics in the Prometheus text exposition format.
func (g *Graph) WriteMetrics(w io.Writer) error {
	return g.stats.writeText(w)
}

// Presentation is the current presentation, as changed by controls.
func (g *Graph) Presentation() Presentation {
	return g.presentation.Get()
}

// BlockSize is the current length of the first trace.
func (g *Graph) BlockSize() int {
	return g.traces[0].Buffer.Len()
}

// XView is the effective X viewport, the fixed zoom of the scale composed with the user's zoom.
func (g *Graph) XView() zoom.State {
	return zoom.Compose(g.xFixed.State(), g.xLive.State())
}

// XAxis is the drawn X axis of the current scale.
func (g *Graph) XAxis() axis.Parameters {
	return g.xAxis.Get()
}

// GridNodes reports the number of grid line nodes for each orientation.
func (g *Graph) GridNodes() (x, y int) {
	g.m.Lock()
	xLines := g.xLines
	g.m.Unlock()
	return xLines.NodeCount(), g.yLines.NodeCount()
}

// SetXScale switches the X axis between linear and logarithmic. All minor grid lines are destroyed and the
// user's X zoom is reset, the new layout is installed through the shared axis.
func (g *Graph) SetXScale(scale axis.Scale) error {
	layout, err := LayoutFor(g.xRange.Min(), g.xRange.Max(), scale)
	if err != nil {
		return err
	}
	g.m.Lock()
	g.layout = layout
	g.m.Unlock()
	g.presentation.Update(func(p Presentation) Presentation {
		p.XAxisScale = scale
		return p
	})
	slog.Info("switching X axis scale", "scale", scale, "axis", layout.Params, "major lines", layout.Count)
	g.xAxis.Set(layout.Params)
	return nil
}

// rebuildXGrid replaces the X grid after an axis change.
func (g *Graph) rebuildXGrid(change axis.Change) {
	g.m.Lock()
	defer g.m.Unlock()
	g.checkf(change.Current == g.layout.Params, "axis change %s does not match the layout %s",
		change.Current, g.layout.Params)
	g.xLines.DestroyMinor()
	g.xLines.Close()
	err := errors.Join(g.xLive.Reset(), g.xFixed.Set(g.layout.Fixed))
	lines, newErr := gridlines.New(gridlines.Config{
		Orientation: gridlines.X,
		Axis:        g.layout.Params,
		Count:       g.layout.Count,
		Live:        g.xLive,
		Fixed:       g.xFixed,
		Threshold:   g.xThreshold,
		ShowMinor:   g.presentation.Get().ShowMinor,
	})
	if newErr != nil {
		g.report(errors.Join(err, newErr))
		return
	}
	g.report(err)
	lines.SurfaceResized(g.surface.Width, g.surface.Height)
	g.xLines = lines
}

// Close detaches every listener the graph added to its zoom displays and axes.
func (g *Graph) Close() {
	g.m.Lock()
	defer g.m.Unlock()
	for _, s := range g.subs {
		s.Unsubscribe()
	}
	g.subs = nil
	g.xLines.Close()
	g.yLines.Close()
}

func (g *Graph) sink(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-g.input:
			if !ok {
				slog.Info("producer finished")
				return nil
			}
			g.apply(e)
		}
	}
}

// apply feeds one producer event to the first trace.
func (g *Graph) apply(e producer.Event) {
	buffer := g.traces[0].Buffer
	if e.IsBlockSizeChange() {
		if err := buffer.BlockSizeChanged(e.BlockSize); err != nil {
			g.report(err)
			return
		}
		g.stats.blockSizeChanges.Inc()
		return
	}
	err := buffer.BufferUpdate(e.Samples)
	switch {
	case errors.Is(err, signal.ErrSizeMismatch):
		g.stats.sizeMismatches.Inc()
		g.report(err)
	case err != nil:
		g.report(err)
	default:
		g.stats.bufferUpdates.Inc()
	}
}

func (g *Graph) handleControl(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-g.controlChannel:
			if !ok {
				return nil
			}
			slog.Info("control received", "control", c)
			g.report(g.applyControl(c))
		}
	}
}

// applyControl is the only place the zoom displays are mutated while the graph runs.
func (g *Graph) applyControl(c Control) error {
	defer g.controls.Update(func(n uint64) uint64 { return n + 1 })
	primary := g.traces[0].Buffer
	var errs []error
	if c.Reset.DidChange && c.Reset.Value {
		errs = append(errs, g.xLive.Reset())
		for _, t := range g.traces {
			errs = append(errs, t.Buffer.YZoom().Reset())
		}
	}
	if c.Zoom.DidChange {
		errs = append(errs, g.xLive.ZoomAbout(0.5, c.Zoom.Value))
	}
	if c.Pan.DidChange {
		errs = append(errs, g.xLive.Pan(c.Pan.Value))
	}
	if c.YZoom.DidChange {
		errs = append(errs, primary.YZoom().ZoomAbout(0.5, c.YZoom.Value))
	}
	if c.XAxisScale.DidChange && c.XAxisScale.Value != g.presentation.Get().XAxisScale {
		errs = append(errs, g.SetXScale(c.XAxisScale.Value))
	}
	if c.Mode.DidChange {
		g.presentation.Update(func(p Presentation) Presentation {
			p.Mode = c.Mode.Value
			return p
		})
	}
	if c.ShowMinor.DidChange {
		g.presentation.Update(func(p Presentation) Presentation {
			p.ShowMinor = c.ShowMinor.Value
			return p
		})
		g.m.Lock()
		xLines := g.xLines
		g.m.Unlock()
		xLines.SetShowMinor(c.ShowMinor.Value)
		g.yLines.SetShowMinor(c.ShowMinor.Value)
	}
	if c.BlockSize.DidChange {
		if g.setBlockSize != nil {
			errs = append(errs, g.setBlockSize(c.BlockSize.Value))
		} else {
			errs = append(errs, primary.BlockSizeChanged(c.BlockSize.Value))
		}
	}
	return errors.Join(errs...)
}

// Apply runs a control synchronously, for callers which drive the graph without [Graph.Run].
func (g *Graph) Apply(c Control) error {
	return g.applyControl(c)
}

func (g *Graph) report(err error) {
	if err == nil {
		return
	}
	slog.Error("graph error", "err", err)
	g.onError(err)
}

func (g *Graph) checkf(shouldBeTrue bool, format string, a ...any) {
	if g.debugStrict {
		check.Checkf(shouldBeTrue, format, a...)
	} else if !shouldBeTrue {
		slog.Error("check failed: " + fmt.Sprintf(format, a...))
	}
}
