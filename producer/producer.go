// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package producer is a synthetic upstream source of sample blocks, standing in for an audio or measurement
// pipeline. Blocks are normalized into [0, 1] and arrive on a channel at a fixed rate.
package producer

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"golang.org/x/time/rate"

	"github.com/nfxdevelopment/graph-view-sub000/axis"
	"github.com/nfxdevelopment/graph-view-sub000/utils/channels"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

type Kind int

const (
	Sine Kind = iota + 1
	Square
	Chirp
	Noise
	// Spectrum is a peaked magnitude spectrum in linear frequency bins.
	Spectrum
)

var kindNames = map[Kind]string{
	Sine:     "sine",
	Square:   "square",
	Chirp:    "chirp",
	Noise:    "noise",
	Spectrum: "spectrum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists the names accepted by [ParseKind].
func Kinds() []string {
	return []string{Sine.String(), Square.String(), Chirp.String(), Noise.String(), Spectrum.String()}
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(axis.ErrConfiguration, "unknown producer kind %q, expected one of %s",
		s, strings.Join(Kinds(), ", "))
}

const (
	DefaultBlockSize = 1024
	DefaultRate      = 30.0
	// Nyquist is the top frequency bin of a [Spectrum] block in Hz.
	Nyquist = 22050.0
)

type Config struct {
	Kind Kind
	// BlockSize is the number of samples per block.
	BlockSize int
	// Rate is in blocks per second, zero is unpaced.
	Rate float64
	// Frequency is cycles per block for the time domain kinds and the peak in Hz for [Spectrum].
	Frequency float64
	// Noise is the amplitude of uniform noise added to every sample, in [0, 1].
	Noise float64
	Seed  uint64
}

// Event is either a block of samples or a block size change, never both. A size change is always sent
// before the first block of the new size.
type Event struct {
	Samples   []float64
	BlockSize int
}

func (e Event) IsBlockSizeChange() bool { return e.BlockSize > 0 }

type Producer struct {
	cfg     Config
	resize  <-chan int
	request func(int)
	gen     *generator
}

func New(cfg Config) (*Producer, error) {
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}
	if cfg.Frequency == 0 {
		cfg.Frequency = 3
		if cfg.Kind == Spectrum {
			cfg.Frequency = 440
		}
	}
	var errs []error
	if _, ok := kindNames[cfg.Kind]; !ok {
		errs = append(errs, errors.Errorf("unknown kind %d", cfg.Kind))
	}
	if cfg.BlockSize < 2 {
		errs = append(errs, errors.Errorf("block size must be at least 2, got %d", cfg.BlockSize))
	}
	if cfg.Rate < 0 {
		errs = append(errs, errors.Errorf("rate must not be negative, got %g", cfg.Rate))
	}
	if cfg.Frequency < 0 || (cfg.Kind == Spectrum && cfg.Frequency >= Nyquist) {
		errs = append(errs, errors.Errorf("frequency %g out of range", cfg.Frequency))
	}
	if cfg.Noise < 0 || cfg.Noise > 1 {
		errs = append(errs, errors.Errorf("noise must be within 0 and 1, got %g", cfg.Noise))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, errors.Wrap(axis.ErrConfiguration, err.Error())
	}
	resize, request := channels.Latest[int]()
	return &Producer{
		cfg:     cfg,
		resize:  resize,
		request: request,
		gen:     newGenerator(cfg, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))),
	}, nil
}

func (p *Producer) Config() Config { return p.cfg }

// XAxis is the axis the samples are laid out on: Hz for [Spectrum], milliseconds of one block otherwise.
func (p *Producer) XAxis() axis.Parameters {
	if p.cfg.Kind == Spectrum {
		return axis.MustNew(0, Nyquist, axis.Linear)
	}
	duration := 1000.0
	if p.cfg.Rate > 0 {
		duration /= p.cfg.Rate
	}
	return axis.MustNew(0, duration, axis.Linear)
}

// SetBlockSize schedules a size change, it is applied before the next block. Only the latest request is
// kept.
func (p *Producer) SetBlockSize(n int) error {
	if n < 2 {
		return errors.Wrapf(axis.ErrConfiguration, "block size must be at least 2, got %d", n)
	}
	p.request(n)
	return nil
}

// CreateChannel starts producing blocks on the returned channel at the configured rate (a rate of 0 means as
// fast as the consumer reads). The channel is closed when [ctx] ends.
func (p *Producer) CreateChannel(ctx context.Context, channelSize int) <-chan Event {
	limit := rate.Inf
	if p.cfg.Rate > 0 {
		limit = rate.Limit(p.cfg.Rate)
	}
	limiter := rate.NewLimiter(limit, 1)
	out := make(chan Event, channelSize)
	go func() {
		defer close(out)
		slog.Info("producer started", "kind", p.cfg.Kind, "block size", p.cfg.BlockSize, "rate", p.cfg.Rate)
		for {
			if err := limiter.Wait(ctx); err != nil {
				slog.Debug("producer stopping", "cause", context.Cause(ctx))
				return
			}
			select {
			case n := <-p.resize:
				if n != p.gen.blockSize {
					p.gen.resize(n)
					if !send(ctx, out, Event{BlockSize: n}) {
						return
					}
				}
			default:
			}
			if !send(ctx, out, Event{Samples: p.gen.next()}) {
				return
			}
		}
	}()
	return out
}

// CreateChannel builds a producer from [cfg] and starts it, see [Producer.CreateChannel].
func CreateChannel(ctx context.Context, cfg Config) (<-chan Event, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.CreateChannel(ctx, 1), nil
}

func send(ctx context.Context, out chan<- Event, e Event) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- e:
		return true
	}
}
