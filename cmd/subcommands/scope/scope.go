// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package scope is the interactive subcommand: a live plot of the synthetic producer in a raw mode terminal.
package scope

import (
	"context"
	"flag"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/graph"
	"github.com/nfxdevelopment/graph-view-sub000/producer"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/application"
	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/exit"
)

type Config struct {
	*application.BuildInfo
	*application.SharedFlags
	*flag.FlagSet

	kind      *string
	blockSize *int
	rate      *float64
	frequency *float64
	noise     *float64
	seed      *uint64

	scale     *string
	mode      *string
	showMinor *bool
	peak      *bool
	fps       *float64

	hideHelpOnStart   *bool
	debuggingTermSize *string
	testErrorListener *bool
}

func GetFlags(info *application.BuildInfo) *Config {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	ret := &Config{
		BuildInfo:   info,
		SharedFlags: application.NewSharedFlags(f),
		FlagSet:     f,

		kind: f.String("kind", producer.Spectrum.String(),
			"the synthetic signal to plot, one of: "+strings.Join(producer.Kinds(), ", ")),
		blockSize: f.Int("block-size", producer.DefaultBlockSize, "the number of samples in every block"),
		rate:      f.Float64("rate", producer.DefaultRate, "blocks produced per second, 0 represents no limit"),
		frequency: f.Float64("frequency", 0,
			"cycles per block for time domain signals, the peak in Hz for the spectrum (default picked per kind)"),
		noise: f.Float64("noise", 0.05, "amplitude of the noise added to every sample, between 0 and 1"),
		seed:  f.Uint64("seed", 1, "seeds the noise so runs can be repeated"),

		scale:     f.String("scale", "", "the X axis scale on start: linear or log (default log for the spectrum)"),
		mode:      f.String("mode", graph.Envelope.String(), "how traces are drawn on start: envelope or line"),
		showMinor: f.Bool("minor", true, "show minor grid lines where there is room for them"),
		peak:      f.Bool("peak", true, "mark the largest sample of the signal"),
		fps:       f.Float64("fps", graph.DefaultFPS, "the rate the plot is repainted at"),

		hideHelpOnStart: f.Bool("hide-help", false, "if this flag is used the help box will be hidden by default"),
		debuggingTermSize: f.String("debug-term-size", "",
			"switches the terminal to a fixed size in the form \"<H>x<W>\", e.g. 20x80"),
		testErrorListener: f.Bool("debug-error-creator", false,
			"binds the ["+ansi.Blue("e")+"] key to create errors for GUI verification"),
	}
	return ret
}

// producerConfig validates the producer flags.
func (c *Config) producerConfig() (producer.Config, error) {
	kind, err := producer.ParseKind(*c.kind)
	if err != nil {
		return producer.Config{}, err
	}
	return producer.Config{
		Kind:      kind,
		BlockSize: *c.blockSize,
		Rate:      *c.rate,
		Frequency: *c.frequency,
		Noise:     *c.noise,
		Seed:      *c.seed,
	}, nil
}

// presentation is the presentation on start, the spectrum defaults to a logarithmic X axis.
func (c *Config) presentation(kind producer.Kind) (graph.Presentation, error) {
	scale := axis.Linear
	if kind == producer.Spectrum {
		scale = axis.Logarithmic
	}
	var errs []error
	if *c.scale != "" {
		var err error
		scale, err = axis.ParseScale(*c.scale)
		errs = append(errs, err)
	}
	mode, err := graph.ParseMode(*c.mode)
	errs = append(errs, err)
	return graph.Presentation{XAxisScale: scale, Mode: mode, ShowMinor: *c.showMinor}, errors.Join(errs...)
}

func RunScope(c *Config) {
	check.Check(c.Parsed(), "flags not parsed")
	defer c.Start(c.BuildInfo)()

	ctx, cancelFunc := context.WithCancelCause(context.Background())
	defer cancelFunc(nil)
	app := &Application{}
	exit.OnErrorMsg(app.Init(ctx, c), "failed to start")
	err := app.Run(ctx, cancelFunc)
	if err != nil && !errors.Is(err, terminal.UserCancelled) {
		exit.OnError(err)
	}
	app.Finish()
}
