// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package drawframe paints a single frame of a synthetic signal to stdout, without a raw mode terminal.
package drawframe

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/graph"
	"github.com/nfxdevelopment/graph-view-sub000/producer"
	"github.com/nfxdevelopment/graph-view-sub000/signal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/application"
	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/exit"
)

type Config struct {
	*application.BuildInfo
	*application.SharedFlags
	*flag.FlagSet

	termSize  *string
	kind      *string
	blockSize *int
	blocks    *int
	frequency *float64
	noise     *float64
	seed      *uint64
	scale     *string
	mode      *string
	minor     *bool
	peak      *bool
	zoom      *float64
	pan       *float64
	metrics   *bool
}

func GetFlags(info *application.BuildInfo) *Config {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	ret := &Config{
		BuildInfo:   info,
		SharedFlags: application.NewSharedFlags(f),
		FlagSet:     f,

		termSize: f.String("size", "", "the frame size in the form \"<H>x<W>\" e.g. 20x80,"+
			" H and W must be positive integers (default the current terminal size)"),
		kind: f.String("kind", producer.Spectrum.String(),
			"the synthetic signal to draw, one of: "+strings.Join(producer.Kinds(), ", ")),
		blockSize: f.Int("block-size", producer.DefaultBlockSize, "the number of samples in every block"),
		blocks:    f.Int("blocks", 1, "how many blocks are produced before the frame is drawn"),
		frequency: f.Float64("frequency", 0,
			"cycles per block for time domain signals, the peak in Hz for the spectrum (default picked per kind)"),
		noise:   f.Float64("noise", 0.05, "amplitude of the noise added to every sample, between 0 and 1"),
		seed:    f.Uint64("seed", 1, "seeds the noise so frames can be repeated"),
		scale:   f.String("scale", "", "the X axis scale: linear or log (default log for the spectrum)"),
		mode:    f.String("mode", graph.Envelope.String(), "how the trace is drawn: envelope or line"),
		minor:   f.Bool("minor", true, "show minor grid lines where there is room for them"),
		peak:    f.Bool("peak", true, "mark the largest sample of the signal"),
		zoom:    f.Float64("zoom", 1, "zoom the X axis about the centre by this factor, below one zooms in"),
		pan:     f.Float64("pan", 0, "pan the X axis by this fraction of the visible width"),
		metrics: f.Bool("metrics", false, "print the frame statistics in the prometheus text format after the frame"),
	}
	f.Usage = func() {
		w := f.Output()
		fmt.Fprintf(w, "Usage of %s drawframe: draws one frame of a synthetic signal and exits\n"+
			"\t drawframe [options]\n\n"+
			"e.g. %s drawframe -size 20x80 -kind sine -mode line\n", os.Args[0], os.Args[0])
		f.PrintDefaults()
	}
	return ret
}

func RunDrawFrame(c *Config) {
	check.Check(c.Parsed(), "flags not parsed")
	defer c.Start(c.BuildInfo)()

	term, err := makeTerminal(*c.termSize)
	exit.OnErrorMsg(err, "failed to open terminal to draw")
	g, err := c.build(context.Background(), term)
	exit.OnErrorMsg(err, "failed to build the graph")
	defer g.Close()
	exit.OnErrorMsg(g.OneFrame(), "failed to draw the frame")
	fmt.Println()
	if *c.metrics {
		exit.OnErrorMsg(g.WriteMetrics(os.Stdout), "failed to write the statistics")
	}
}

// build produces the configured blocks into a trace and applies the view flags to a new graph.
func (c *Config) build(ctx context.Context, term *terminal.Terminal) (*graph.Graph, error) {
	kind, err := producer.ParseKind(*c.kind)
	if err != nil {
		return nil, err
	}
	p, err := producer.New(producer.Config{
		Kind:      kind,
		BlockSize: *c.blockSize,
		Frequency: *c.frequency,
		Noise:     *c.noise,
		Seed:      *c.seed,
	})
	if err != nil {
		return nil, err
	}
	buffer, err := signal.New(p.Config().BlockSize, p.XAxis())
	if err != nil {
		return nil, err
	}
	if err := feed(ctx, p, buffer, max(1, *c.blocks)); err != nil {
		return nil, err
	}

	scale := axis.Linear
	if kind == producer.Spectrum {
		scale = axis.Logarithmic
	}
	if *c.scale != "" {
		if scale, err = axis.ParseScale(*c.scale); err != nil {
			return nil, err
		}
	}
	mode, err := graph.ParseMode(*c.mode)
	if err != nil {
		return nil, err
	}
	g, err := graph.NewGraph(ctx, graph.GraphConfiguration{
		Terminal:     term,
		Title:        "graph-view " + kind.String(),
		XRange:       p.XAxis(),
		Traces:       []graph.Trace{{Name: kind.String(), Buffer: buffer}},
		PeakMarker:   *c.peak,
		Presentation: graph.Presentation{XAxisScale: scale, Mode: mode, ShowMinor: *c.minor},
		DebugStrict:  *c.DebugStrict,
	})
	if err != nil {
		return nil, err
	}
	var view graph.Control
	if *c.zoom != 1 {
		view.Zoom = graph.Changed(*c.zoom)
	}
	if *c.pan != 0 {
		view.Pan = graph.Changed(*c.pan)
	}
	if err := g.Apply(view); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// feed reads [blocks] blocks from an unpaced producer into [buffer].
func feed(ctx context.Context, p *producer.Producer, buffer *signal.Buffer, blocks int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := p.CreateChannel(ctx, 0)
	for blocks > 0 {
		e, ok := <-events
		if !ok {
			return errors.New("producer stopped early")
		}
		if e.IsBlockSizeChange() {
			if err := buffer.BlockSizeChanged(e.BlockSize); err != nil {
				return err
			}
			continue
		}
		if err := buffer.BufferUpdate(e.Samples); err != nil {
			return err
		}
		blocks--
	}
	return nil
}

func makeTerminal(termSize string) (*terminal.Terminal, error) {
	if termSize != "" {
		return terminal.NewParsedFixedSizeTerminal(termSize)
	}
	return terminal.NewTerminal()
}
