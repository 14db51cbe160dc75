// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// th stands for "test helper"
package th

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/env"
	"github.com/nfxdevelopment/graph-view-sub000/utils/numeric"
)

// T is satisfied by both [*testing.T] and [*rapid.T], so fixtures can be shared by example and property
// tests.
type T interface {
	rapid.TB
}

// TestWithTimeout fails the test if [test] has not returned after [timeout], unlike `go test -timeout` the
// rest of the package keeps running.
func TestWithTimeout(t T, timeout time.Duration, test func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		test()
	}()
	select {
	case <-time.After(timeout):
		t.Fatalf("test timed out after %s", timeout)
	case <-done:
	}
}

// AssertFloatEqual checks that the two floats are equal to [sigFigs] significant figures.
func AssertFloatEqual(t T, expected, actual float64, sigFigs int, msgAndArgs ...any) {
	t.Helper()
	assert.Check(t, is.Equal(
		numeric.RoundToNearestSigFig(expected, sigFigs),
		numeric.RoundToNearestSigFig(actual, sigFigs),
	), msgAndArgs...)
}

// AssertScreen compares two emulated screens row by row. With LOCAL_FRAME_DIFFS set the actual screen is
// printed whole so it can be pasted back into the test.
func AssertScreen(t T, expected, actual []string) {
	t.Helper()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("screen mismatch (-expected +actual):\n%s", diff)
		if env.LOCAL_FRAME_DIFFS() {
			fmt.Printf("%q\n", actual)
		}
	}
}

// MakeBuffer is a blank screen of [size].
func MakeBuffer(size terminal.Size) []string {
	out := make([]string, size.Height)
	for i := range out {
		out[i] = strings.Repeat(" ", size.Width)
	}
	return out
}

// TerminalWrapping decides what happens to text written below the last row.
type TerminalWrapping int

const (
	// Panic on any write outside the screen, suitable for graph tests.
	Panic TerminalWrapping = iota
	// WrapBuffer scrolls the screen up a row, as a terminal does when printing past the bottom.
	WrapBuffer
	// SilentlyDrop discards writes outside the screen and clamps the cursor onto it.
	SilentlyDrop
)

// EmulateTerminal applies [ansiText] to [buffer] (one string per row) as a terminal of [size] would and
// returns the resulting screen. Only the sequences graph-view emits are understood: cursor position and
// relative moves, erase in display, show/hide cursor and SGR, which is ignored since the screen has no
// colour. Anything else panics, the emulator is only for tests.
func EmulateTerminal(ansiText string, buffer []string, size terminal.Size, wrapping TerminalWrapping) []string {
	s := &screen{size: size, row: 1, column: 1, wrapping: wrapping, input: ansiText}
	s.cells = make([][]rune, len(buffer))
	for i, line := range buffer {
		s.cells[i] = []rune(line)
	}
	rest := ansiText
	for rest != "" {
		text, sequence, found := strings.Cut(rest, ansi.CSI)
		for _, r := range text {
			s.write(r)
		}
		if !found {
			break
		}
		final := strings.IndexFunc(sequence, func(r rune) bool { return r >= 0x40 && r <= 0x7E })
		if final < 0 {
			s.fail("unterminated control sequence %q", sequence)
		}
		s.consumed = len(ansiText) - len(sequence)
		s.control(sequence[:final], sequence[final])
		rest = sequence[final+1:]
	}
	out := make([]string, len(s.cells))
	for i, row := range s.cells {
		out[i] = string(row)
	}
	return out
}

// screen holds the emulated cursor, rows and columns are 1 indexed as in the escape sequences.
type screen struct {
	cells       [][]rune
	size        terminal.Size
	row, column int
	wrapping    TerminalWrapping
	// input and consumed give failures their context.
	input    string
	consumed int
}

func (s *screen) fail(format string, args ...any) {
	start := max(0, s.consumed-60)
	panic(fmt.Sprintf(format, args...) + fmt.Sprintf(" (cursor %d;%d, after %q)", s.row, s.column,
		s.input[start:s.consumed]))
}

func (s *screen) onScreen() bool {
	return s.row >= 1 && s.row <= s.size.Height && s.column >= 1 && s.column <= s.size.Width
}

func (s *screen) write(r rune) {
	if s.wrapping == WrapBuffer && s.row > s.size.Height {
		s.scroll()
	}
	if !s.onScreen() {
		if s.wrapping == SilentlyDrop {
			s.advance()
			return
		}
		s.fail("writing %q off screen", r)
	}
	s.cells[s.row-1][s.column-1] = r
	s.advance()
}

// advance moves right, wrapping to the start of the next row after the last column.
func (s *screen) advance() {
	s.column++
	if s.column > s.size.Width {
		s.column = 1
		s.row++
	}
}

func (s *screen) scroll() {
	copy(s.cells, s.cells[1:])
	s.cells[len(s.cells)-1] = []rune(strings.Repeat(" ", s.size.Width))
	s.row = s.size.Height
}

// moveTo places the cursor, Panic mode rejects positions a terminal would clamp.
func (s *screen) moveTo(row, column int) {
	if s.wrapping == SilentlyDrop {
		row = numeric.Clamp(row, 1, max(1, s.size.Height))
		column = numeric.Clamp(column, 1, max(1, s.size.Width))
	}
	if row < 1 || column < 1 {
		s.fail("cursor moved to %d;%d", row, column)
	}
	s.row, s.column = row, column
}

func (s *screen) control(params string, final byte) {
	if strings.HasPrefix(params, "?") {
		if params != "?25" || (final != 'l' && final != 'h') {
			s.fail("unsupported private sequence %q%c", params, final)
		}
		return
	}
	args := s.parseParams(params)
	arg := func(i int) int {
		if i < len(args) && args[i] > 0 {
			return args[i]
		}
		return 1
	}
	switch final {
	case 'm':
	case 'H':
		s.moveTo(arg(0), arg(1))
	case 'A':
		s.moveTo(s.row-arg(0), s.column)
	case 'B':
		s.moveTo(s.row+arg(0), s.column)
	case 'C':
		s.moveTo(s.row, s.column+arg(0))
	case 'D':
		s.moveTo(s.row, s.column-arg(0))
	case 'J':
		ed := ansi.CursorToScreenEnd
		if len(args) > 0 {
			ed = ansi.ED(args[0])
		}
		switch ed {
		case ansi.CursorScreen, ansi.CursorScreenAndScrollBack:
			for i := range s.cells {
				s.cells[i] = []rune(strings.Repeat(" ", s.size.Width))
			}
		case ansi.CursorToScreenEnd, ansi.CursorToScreenBegin:
			s.fail("partial erase in display %d", ed)
		default:
			s.fail("unknown erase in display %d", ed)
		}
	default:
		s.fail("unsupported control sequence %q%c", params, final)
	}
}

// parseParams splits "3;;5" into [3 0 5], an omitted parameter is 0 and means the default.
func (s *screen) parseParams(params string) []int {
	if params == "" {
		return nil
	}
	fields := strings.Split(params, ";")
	out := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			continue
		}
		n := 0
		for _, r := range f {
			if r < '0' || r > '9' {
				s.fail("malformed parameter %q", params)
			}
			n = n*10 + int(r-'0')
		}
		out[i] = n
	}
	return out
}
