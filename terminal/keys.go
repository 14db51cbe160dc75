// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package terminal

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/term"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

type Listener struct {
	// Name identifies the listener when its action fails, it may be omitted.
	Name string
	// Action is invoked when the user types an applicable rune, an error stops the terminal.
	Action func(rune) error
}

type ConditionalListener struct {
	Listener
	// Applicable decides for which input runes this listener fires.
	Applicable func(rune) bool
}

// UserCancelled is the context cause when the user pressed ctrl+c during [Terminal.StartRaw].
var UserCancelled = errors.New("user cancelled")

const ctrlC = '\x03'

// StartRaw switches the terminal to raw mode and forwards key strokes to the listeners. Every applicable
// [ConditionalListener] runs for a rune and the [fallbacks] run only when none applied. Ctrl+C always calls
// [stop] with [UserCancelled], a failing listener or a failed read calls it with that error instead.
//
// The returned function restores the terminal and should be deferred so that a panic on another goroutine
// still leaves the user with a usable terminal:
//
//	term, _ := terminal.NewTerminal()
//	cleanup, _ := term.StartRaw(ctx, stop, nil, nil)
//	defer cleanup()
//	<-ctx.Done()
func (t *Terminal) StartRaw(
	ctx context.Context,
	stop context.CancelCauseFunc,
	listeners []ConditionalListener,
	fallbacks []Listener,
) (func(), error) {
	if t.rawFd >= 0 {
		old, err := term.MakeRaw(t.rawFd)
		if err != nil {
			return func() {}, errors.Wrap(err, "failed to set terminal to raw mode")
		}
		t.restoreRaw = func() { _ = term.Restore(t.rawFd, old) }
	}
	t.keys = keymap{
		conditional: slices.Clone(listeners),
		fallbacks:   slices.Clone(fallbacks),
	}
	_ = t.Print(ansi.HideCursor)

	input := make(chan []byte)
	go t.read(ctx, stop, input)
	go t.dispatch(ctx, stop, input)
	return t.restore, nil
}

// read forwards everything typed, it blocks in Read so it only notices [ctx] is done once the next read
// returns.
func (t *Terminal) read(ctx context.Context, stop context.CancelCauseFunc, input chan<- []byte) {
	defer close(input)
	buffer := make([]byte, 64)
	for {
		n, err := t.in.Read(buffer)
		if n > 0 {
			select {
			case input <- slices.Clone(buffer[:n]):
			case <-ctx.Done():
				return
			}
		}
		switch {
		case errors.Is(err, io.EOF):
			return
		case err != nil:
			stop(errors.Wrap(err, "failed reading keyboard input"))
			return
		}
	}
}

func (t *Terminal) dispatch(ctx context.Context, stop context.CancelCauseFunc, input <-chan []byte) {
	defer t.restore()
	for {
		select {
		case <-ctx.Done():
			return
		case typed, ok := <-input:
			if !ok {
				return
			}
			slog.Debug("got keyboard input", "received", string(typed))
			for _, r := range string(typed) {
				if r == ctrlC {
					stop(UserCancelled)
					return
				}
				if err := t.keys.handle(r); err != nil {
					stop(err)
					return
				}
			}
		}
	}
}

type keymap struct {
	conditional []ConditionalListener
	fallbacks   []Listener
}

func (k keymap) handle(r rune) error {
	handled := false
	for _, l := range k.conditional {
		if !l.Applicable(r) {
			continue
		}
		handled = true
		if err := l.Action(r); err != nil {
			return errors.Wrapf(err, "key %q failed in listener %q", r, l.Name)
		}
	}
	if handled {
		return nil
	}
	for _, l := range k.fallbacks {
		if err := l.Action(r); err != nil {
			return errors.Wrapf(err, "key %q failed in listener %q", r, l.Name)
		}
	}
	return nil
}
