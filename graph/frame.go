// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package graph

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/draw"
	"github.com/nfxdevelopment/graph-view-sub000/graph/gradient"
	"github.com/nfxdevelopment/graph-view-sub000/gridlines"
	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/marker"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/typography"
	"github.com/nfxdevelopment/graph-view-sub000/utils/iterutils"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
	"github.com/nfxdevelopment/graph-view-sub000/zoom"
)

const (
	// yLabelWidth is the column reserved left of the plot, labels are right aligned in all but its last cell.
	yLabelWidth = 5
	// titleRows and xLabelRows frame the plot vertically.
	titleRows  = 1
	xLabelRows = 1
)

// Frame is the numeric result of one render cycle: every position is already a cell of the plot, nothing
// has been drawn yet. Plot cells are 0 indexed from the top left of the plot.
type Frame struct {
	Size terminal.Size
	// PlotRow and PlotColumn are the 1 indexed terminal coordinates of the plot's top left cell.
	PlotRow, PlotColumn   int
	PlotWidth, PlotHeight int
	Title                 string
	Presentation          Presentation
	XLines, YLines        []Mark
	Traces                []TraceFrame
	Markers               []MarkerCell
}

// Mark is one grid line, Cell is a plot column for X lines and a plot row for Y lines.
type Mark struct {
	Cell  int
	Depth int
	Label string
}

// TraceFrame holds one row per plot column, [gradient.Gap] where the column is out of view.
type TraceFrame struct {
	Name string
	Line []int
	// Upper and Lower bound the envelope band, nil in [Line] mode.
	Upper, Lower []int
}

type MarkerCell struct {
	Column, Row int
	Label       string
	Pinned      marker.Pinned
}

// IsEmpty is true when the terminal was too small to hold a plot.
func (f Frame) IsEmpty() bool { return f.PlotWidth == 0 || f.PlotHeight == 0 }

func plotSize(size terminal.Size) (width, height int) {
	width = size.Width - yLabelWidth
	height = size.Height - titleRows - xLabelRows
	if width < 2 || height < 2 {
		return 0, 0
	}
	return width, height
}

func column(v float64, width int) int {
	return int(math.Round(v * float64(width-1)))
}

// row inverts the viewport, 1 is the top row.
func row(v float64, height int) int {
	return int(math.Round((1 - v) * float64(height-1)))
}

// ComputeFrame asks every component for its numbers at [size]. A change of plot size is forwarded to the
// grid lines first so the density check runs against the new surface.
func (g *Graph) ComputeFrame(size terminal.Size) Frame {
	p := g.presentation.Get()
	f := Frame{
		Size:         size,
		PlotRow:      titleRows + 1,
		PlotColumn:   yLabelWidth + 1,
		Title:        g.titleFor(p),
		Presentation: p,
	}
	w, h := plotSize(size)
	if w == 0 {
		return f
	}
	f.PlotWidth, f.PlotHeight = w, h

	g.m.Lock()
	surface := terminal.Size{Height: h, Width: w}
	if g.surface != surface {
		g.surface = surface
		g.xLines.SurfaceResized(w, h)
		g.yLines.SurfaceResized(w, h)
	}
	xLines, layout := g.xLines, g.layout
	g.m.Unlock()

	xView := g.XView()
	yView := g.traces[0].Buffer.YZoom().State()
	f.XLines = marks(xLines, func(l gridlines.Line) int { return column(l.Viewport, w) }, FormatSI)
	f.YLines = marks(g.yLines, func(l gridlines.Line) int { return row(l.Viewport, h) }, FormatPercent)
	g.stats.gridNodes.WithLabelValues(gridlines.X.String()).Set(float64(xLines.NodeCount()))
	g.stats.gridNodes.WithLabelValues(gridlines.Y.String()).Set(float64(g.yLines.NodeCount()))

	xLow := layout.Params.PositionToValue(xView.Offset)
	xHigh := layout.Params.PositionToValue(xView.FarSide())
	for _, t := range g.traces {
		f.Traces = append(f.Traces, traceFrame(t, p.Mode, w, h, xLow, xHigh, layout.Params))
	}
	f.Markers = g.markerCells(layout.Params, marker.View{X: xView, Y: yView}, w, h)
	return f
}

func (g *Graph) titleFor(p Presentation) string {
	scale := "linear"
	if p.XAxisScale == axis.Logarithmic {
		scale = "log"
	}
	return g.title + " (" + scale + ", " + p.Mode.String() + ")"
}

func marks(lines *gridlines.GridLines, cell func(gridlines.Line) int, label func(float64) string) []Mark {
	return slices.Collect(iterutils.Map(lines.Lines(), func(l gridlines.Line) Mark {
		return Mark{Cell: cell(l), Depth: l.Depth, Label: label(l.Value)}
	}))
}

func traceFrame(t Trace, mode Mode, w, h int, xLow, xHigh float64, target axis.Parameters) TraceFrame {
	tf := TraceFrame{Name: t.Name}
	tf.Line = rows(t.Buffer.ScaledBuffer(w, xLow, xHigh, target), h)
	if mode != Envelope {
		return tf
	}
	mins, maxs := t.Buffer.ScaledMinMaxBuffers(w, xLow, xHigh, target)
	tf.Upper = make([]int, len(mins))
	tf.Lower = make([]int, len(mins))
	for i := range mins {
		lo, hi := mins[i], maxs[i]
		if hi < 0 || lo > 1 {
			tf.Upper[i], tf.Lower[i] = gradient.Gap, gradient.Gap
			continue
		}
		tf.Upper[i] = row(numeric.Clamp(hi, 0, 1), h)
		tf.Lower[i] = row(numeric.Clamp(lo, 0, 1), h)
	}
	return tf
}

func rows(values []float64, h int) []int {
	out := make([]int, len(values))
	for i, v := range values {
		if v < 0 || v > 1 || math.IsNaN(v) {
			out[i] = gradient.Gap
			continue
		}
		out[i] = row(v, h)
	}
	return out
}

// markerCells places the configured markers and the optional peak of the first trace.
func (g *Graph) markerCells(xAxis axis.Parameters, view marker.View, w, h int) []MarkerCell {
	all := slices.Clone(g.markers)
	if g.peakMarker {
		if m, ok := g.peak(); ok {
			all = append(all, m)
		}
	}
	yAxis := axis.MustNew(0, 1, axis.Linear)
	rect := marker.Rect{X: 0, Y: 0, Width: float64(w - 1), Height: float64(h - 1)}
	out := make([]MarkerCell, 0, len(all))
	for _, m := range all {
		p, pinned := marker.Place(m, xAxis, yAxis, view, rect)
		out = append(out, MarkerCell{
			Column: int(math.Round(p.X)),
			Row:    int(math.Round(p.Y)),
			Label:  m.Label,
			Pinned: pinned,
		})
	}
	return out
}

// peak is a marker on the largest sample of the first trace.
func (g *Graph) peak() (marker.Marker, bool) {
	buffer := g.traces[0].Buffer
	samples := buffer.Samples()
	if len(samples) < 2 {
		return marker.Marker{}, false
	}
	idx := slices.Index(samples, slices.Max(samples))
	x := buffer.XAxis().PositionToValue(float64(idx) / float64(len(samples)-1))
	return marker.Marker{Label: FormatSI(x), X: x, Y: buffer.ValueAtPosition(x)}, true
}

// Canvas rasterises the plot, later layers overwrite earlier ones.
func (f Frame) Canvas() *draw.Canvas {
	c := draw.NewCanvas(f.PlotWidth, f.PlotHeight)
	if f.IsEmpty() {
		return c
	}
	for _, m := range f.XLines {
		for y := range f.PlotHeight {
			c.Set(m.Cell, y, typography.DottedVertical, gridLayer(m.Depth))
		}
	}
	for _, m := range f.YLines {
		layer := gridLayer(m.Depth)
		for x := range f.PlotWidth {
			glyph := typography.DottedHorizon
			if existing, _ := c.At(x, m.Cell); existing == typography.DottedVertical {
				glyph = typography.LightCross
			}
			c.Set(x, m.Cell, glyph, layer)
		}
	}
	for _, t := range f.Traces {
		for x := range t.Upper {
			if t.Upper[x] == gradient.Gap {
				continue
			}
			for y := t.Upper[x]; y <= t.Lower[x]; y++ {
				c.Set(x, y, typography.LightBlock, draw.Envelope)
			}
		}
		for _, s := range gradient.Line(t.Line) {
			if glyph := s.Glyph.Draw(); glyph != "" {
				c.Set(s.Column, s.Row, glyph, draw.Trace)
			}
		}
	}
	for _, m := range f.Markers {
		c.Set(m.Column, m.Row, markerGlyph(m.Pinned), draw.Marker)
	}
	return c
}

func gridLayer(depth int) draw.Layer {
	if depth == 0 {
		return draw.MajorGrid
	}
	return draw.MinorGrid
}

func markerGlyph(p marker.Pinned) string {
	switch {
	case p&marker.PinnedLeft != 0:
		return typography.LeftArrow
	case p&marker.PinnedRight != 0:
		return typography.RightArrow
	case p&marker.PinnedTop != 0:
		return typography.UpArrow
	case p&marker.PinnedBottom != 0:
		return typography.DownArrow
	default:
		return typography.Diamond
	}
}

func palette() draw.Palette {
	t := themes.GetLoaded()
	return draw.Palette{
		draw.MinorGrid: t.Styler(themes.RoleMinorGrid),
		draw.MajorGrid: t.Styler(themes.RoleGrid),
		draw.Envelope:  t.Styler(themes.RoleEnvelope),
		draw.Trace:     t.Styler(themes.RoleTrace),
		draw.Marker:    t.Styler(themes.RoleMarker),
	}
}

// PaintTo writes the frame into the graph indexes of [b], the spinner is left alone.
func (f Frame) PaintTo(b *draw.Buffer) error {
	b.Reset(draw.TitleIndex, draw.YAxisIndex, draw.XAxisIndex, draw.PlotIndex, draw.MarkerIndex)
	f.paintTitle(b.Get(draw.TitleIndex))
	if f.IsEmpty() {
		return nil
	}
	f.paintYLabels(b.Get(draw.YAxisIndex))
	f.paintXLabels(b.Get(draw.XAxisIndex))
	if err := f.Canvas().WriteTo(b.Get(draw.PlotIndex), f.PlotRow, f.PlotColumn, palette()); err != nil {
		return err
	}
	f.paintMarkerLabels(b.Get(draw.MarkerIndex))
	return nil
}

// Paint clears the screen and writes the frame, without a spinner or any GUI components.
func (f Frame) Paint(w io.Writer) error {
	b := draw.NewPaintBuffer()
	if err := f.PaintTo(b); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ansi.Clear+ansi.Home); err != nil {
		return err
	}
	return b.WriteTo(w, draw.GraphIndexes)
}

type stringWriter interface {
	WriteString(string) (int, error)
}

func (f Frame) paintTitle(w stringWriter) {
	// the last cells of the row belong to the spinner
	room := f.Size.Width - 3
	if room <= 0 {
		return
	}
	_, _ = w.WriteString(ansi.Home + themes.TitleHighlight(truncate(f.Title, room)))
}

func (f Frame) paintYLabels(w stringWriter) {
	for _, m := range f.YLines {
		if m.Depth != 0 {
			continue
		}
		label := truncate(m.Label, yLabelWidth-1)
		pad := strings.Repeat(" ", yLabelWidth-1-gui.VisibleWidth(label))
		_, _ = w.WriteString(ansi.CursorPosition(f.PlotRow+m.Cell, 1) + pad + themes.Secondary(label))
	}
}

// paintXLabels centres labels under their lines, majors first, skipping any label which would touch one
// already placed.
func (f Frame) paintXLabels(w stringWriter) {
	ordered := slices.Clone(f.XLines)
	slices.SortStableFunc(ordered, func(a, b Mark) int { return a.Depth - b.Depth })
	type span struct{ from, to int }
	var taken []span
	for _, m := range ordered {
		width := gui.VisibleWidth(m.Label)
		if width == 0 || width > f.Size.Width {
			continue
		}
		start := f.PlotColumn + m.Cell - width/2
		start = numeric.Clamp(start, 1, f.Size.Width-width+1)
		s := span{from: start, to: start + width - 1}
		if slices.ContainsFunc(taken, func(o span) bool { return s.from <= o.to+1 && o.from <= s.to+1 }) {
			continue
		}
		taken = append(taken, s)
		style := themes.Secondary
		if m.Depth == 0 {
			style = themes.Primary
		}
		_, _ = w.WriteString(ansi.CursorPosition(f.Size.Height, start) + style(m.Label))
	}
}

// paintMarkerLabels writes each label beside its marker, on the left when the right would not fit.
func (f Frame) paintMarkerLabels(w stringWriter) {
	style := themes.GetLoaded().Styler(themes.RoleMarker)
	for _, m := range f.Markers {
		width := gui.VisibleWidth(m.Label)
		if width == 0 {
			continue
		}
		start := f.PlotColumn + m.Column + 2
		if start+width-1 > f.Size.Width {
			start = f.PlotColumn + m.Column - 1 - width
		}
		if start < 1 {
			continue
		}
		_, _ = w.WriteString(ansi.CursorPosition(f.PlotRow+m.Row, start) + style(m.Label))
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:max(width, 0)])
}

// frameKey is everything a frame is computed from, an unchanged key means the last frame is still valid.
type frameKey struct {
	size         terminal.Size
	presentation Presentation
	data         uint64
	controls     uint64
	axis         uint64
	x, y         zoom.State
}

func (g *Graph) keyFor(size terminal.Size) frameKey {
	k := frameKey{
		size:         size,
		presentation: g.presentation.Get(),
		controls:     g.controls.Get(),
		axis:         g.xAxis.Version(),
		x:            g.XView(),
		y:            g.traces[0].Buffer.YZoom().State(),
	}
	for _, t := range g.traces {
		k.data += t.Buffer.Version()
	}
	return k
}

// nextFrame returns the writes bringing the terminal up to date: nothing but the spinner when the key is
// unchanged, only GUI components when they are all that changed, otherwise the whole frame.
func (g *Graph) nextFrame(size terminal.Size, drawSpinner bool) func(io.Writer) error {
	start := time.Now()
	g.frameMutex.Lock()
	defer g.frameMutex.Unlock()
	spinnerBuffer := g.drawingBuffer.Get(draw.SpinnerIndex)
	spinnerBuffer.Reset()
	if drawSpinner {
		_, _ = spinnerBuffer.WriteString(g.spinner.draw(size, start))
	}
	key := g.keyFor(size)
	if key == g.lastKey {
		g.stats.unchangedFrames.Inc()
		if update := g.checkGUI(); update != nil {
			return update
		}
		return func(w io.Writer) error {
			_, err := spinnerBuffer.WriteTo(w)
			return err
		}
	}
	f := g.ComputeFrame(size)
	state := g.ui.GetState()
	if err := f.PaintTo(g.drawingBuffer); err != nil {
		return func(io.Writer) error { return err }
	}
	g.lastFrame = f
	g.lastKey = key
	g.stats.observeFrame(start)
	return func(w io.Writer) error {
		defer g.ui.Drawn(state)
		return painter(g.drawingBuffer, true, draw.PaintOrder)(w)
	}
}

func (g *Graph) checkGUI() func(io.Writer) error {
	state := g.ui.GetState()
	var paint func(io.Writer) error
	switch {
	case state.ShouldInvalidate():
		paint = painter(g.drawingBuffer, true, draw.PaintOrder)
	case state.ShouldDraw():
		paint = painter(g.drawingBuffer, false, draw.GUIIndexes)
	default:
		return nil
	}
	return func(w io.Writer) error {
		defer g.ui.Drawn(state)
		return paint(w)
	}
}

func painter(toDraw *draw.Buffer, clearFrame bool, indexes []draw.Index) func(io.Writer) error {
	return func(w io.Writer) error {
		if clearFrame {
			if _, err := io.WriteString(w, ansi.Clear); err != nil {
				return err
			}
		}
		return toDraw.WriteTo(w, indexes)
	}
}
