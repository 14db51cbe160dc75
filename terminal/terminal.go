// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package terminal is the surface a graph is painted on: its size, raw mode and the key strokes typed into
// it.
package terminal

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/atomic"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

// Terminal models the terminal the plot is drawn to. Its zero value is not usable, construct it via:
//   - [NewTerminal]
//   - [NewFixedSizeTerminal]
//   - [NewParsedFixedSizeTerminal]
//   - [NewTestTerminal]
type Terminal struct {
	size atomic.Of[Size]
	// measure reads the current size, nil when the size is fixed.
	measure func() (Size, error)

	in  io.Reader
	out io.Writer
	// rawFd is switched to raw mode by [Terminal.StartRaw], negative when there is no real terminal.
	rawFd int

	keys        keymap
	restoreOnce sync.Once
	restoreRaw  func()
}

// NewTerminal creates a terminal bound to the process stdin/stdout. It verifies that raw mode is possible
// and reads the starting size.
func NewTerminal() (*Terminal, error) {
	var sized *os.File
	for _, f := range []*os.File{os.Stderr, os.Stdout} {
		if term.IsTerminal(int(f.Fd())) {
			sized = f
			break
		}
	}
	if sized == nil {
		return nil, errors.New("neither stdout nor stderr is a terminal, cannot get the terminal size")
	}
	size, err := measure(sized)
	if err != nil {
		return nil, err
	}
	if err := checkRaw(int(os.Stdin.Fd())); err != nil {
		return nil, err
	}
	return &Terminal{
		size:    atomic.Init(size),
		measure: func() (Size, error) { return measure(sized) },
		in:      os.Stdin,
		out:     os.Stdout,
		rawFd:   int(os.Stdin.Fd()),
	}, nil
}

// NewFixedSizeTerminal creates a terminal which never changes size and writes to [w]. It never enters raw
// mode so it works without a real terminal, e.g. the drawframe subcommand piping to a file.
func NewFixedSizeTerminal(s Size, w io.Writer) *Terminal {
	return &Terminal{
		size:  atomic.Init(s),
		in:    os.Stdin,
		out:   w,
		rawFd: -1,
	}
}

// NewParsedFixedSizeTerminal parses [size] with [ParseSize] and builds a fixed size terminal on stdout.
func NewParsedFixedSizeTerminal(size string) (*Terminal, error) {
	s, err := ParseSize(size)
	if err != nil {
		return nil, err
	}
	return NewFixedSizeTerminal(s, os.Stdout), nil
}

// NewTestTerminal builds a terminal with no real file interactions, key strokes are read from [in], frames
// are written to [out] and [Terminal.UpdateSize] calls [size]. The output can then be asserted on.
func NewTestTerminal(in io.Reader, out io.Writer, size func() Size) *Terminal {
	return &Terminal{
		size:    atomic.Init(size()),
		measure: func() (Size, error) { return size(), nil },
		in:      in,
		out:     out,
		rawFd:   -1,
	}
}

// GetSize returns the size most recently read by [Terminal.UpdateSize].
func (t *Terminal) GetSize() Size {
	return t.size.Get()
}

// UpdateSize measures the terminal again, a fixed size terminal never changes.
func (t *Terminal) UpdateSize() error {
	if t.measure == nil {
		return nil
	}
	s, err := t.measure()
	if err != nil {
		return err
	}
	t.size.Set(s)
	return nil
}

// ClearBehaviour is what [Terminal.ClearScreen] does besides clearing, the flags can be combined.
type ClearBehaviour int

const (
	// UpdateSize measures the terminal before clearing.
	UpdateSize ClearBehaviour = 1 << iota
	// MoveHome puts the cursor in the top left once the screen is clear.
	MoveHome

	UpdateSizeAndMoveHome = UpdateSize | MoveHome
)

// ClearScreen wipes the visible screen.
func (t *Terminal) ClearScreen(behaviour ClearBehaviour) error {
	if behaviour&UpdateSize != 0 {
		if err := t.UpdateSize(); err != nil {
			return errors.Wrap(err, "while clearing the screen")
		}
	}
	s := ansi.Clear
	if behaviour&MoveHome != 0 {
		s += ansi.Home
	}
	return errors.Wrap(t.Print(s), "while clearing the screen")
}

// Print will write the string [s] to the stdout controlled by the terminal.
func (t *Terminal) Print(s string) error {
	_, err := io.WriteString(t.out, s)
	return err
}

// Write implements [io.Writer] over the terminals stdout.
func (t *Terminal) Write(b []byte) (int, error) {
	return t.out.Write(b)
}

// restore leaves raw mode and shows the cursor again, only the first call does anything.
func (t *Terminal) restore() {
	t.restoreOnce.Do(func() {
		_ = t.Print(ansi.ShowCursor)
		if t.restoreRaw != nil {
			t.restoreRaw()
		}
	})
}

func checkRaw(fd int) error {
	old, err := term.MakeRaw(fd)
	if old != nil {
		err = errors.Join(err, term.Restore(fd, old))
	}
	return errors.Wrap(err, "failed to set terminal to raw mode")
}
