// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package terminal_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

func TestParseSize(t *testing.T) {
	t.Parallel()
	s, err := terminal.ParseSize("20x80")
	assert.NilError(t, err)
	assert.Equal(t, terminal.Size{Height: 20, Width: 80}, s)
	assert.Equal(t, "W: 80 H: 20", s.String())
	for _, bad := range []string{"", "20", "20x", "x80", "0x80", "20x-1", "20x80x3", "ax b"} {
		_, err := terminal.ParseSize(bad)
		assert.ErrorContains(t, err, "as a terminal size", bad)
	}
}

func TestClearScreen(t *testing.T) {
	t.Parallel()
	out := bytes.NewSafeBuffer()
	size := terminal.Size{Height: 5, Width: 10}
	term := terminal.NewTestTerminal(strings.NewReader(""), out, func() terminal.Size { return size })
	size = terminal.Size{Height: 6, Width: 12}
	assert.NilError(t, term.ClearScreen(terminal.MoveHome))
	assert.Equal(t, ansi.Clear+ansi.Home, out.String())
	assert.Equal(t, terminal.Size{Height: 5, Width: 10}, term.GetSize())

	out.Reset()
	assert.NilError(t, term.ClearScreen(terminal.UpdateSize))
	assert.Equal(t, ansi.Clear, out.String())
	assert.Equal(t, size, term.GetSize())

	fixed := terminal.NewFixedSizeTerminal(terminal.Size{Height: 1, Width: 1}, io.Discard)
	assert.NilError(t, fixed.ClearScreen(terminal.UpdateSizeAndMoveHome))
	assert.Equal(t, terminal.Size{Height: 1, Width: 1}, fixed.GetSize())
}

// keys starts a test terminal reading [typed] and waits until it stops.
func keys(
	t *testing.T,
	typed string,
	listeners []terminal.ConditionalListener,
	fallbacks []terminal.Listener,
) (cause error, output string) {
	t.Helper()
	out := bytes.NewSafeBuffer()
	ctx, stop := context.WithCancelCause(t.Context())
	defer stop(nil)
	term := terminal.NewTestTerminal(strings.NewReader(typed), out, func() terminal.Size { return terminal.Size{} })
	cleanup, err := term.StartRaw(ctx, stop, listeners, fallbacks)
	assert.NilError(t, err)
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
	}
	cleanup()
	return context.Cause(ctx), out.String()
}

func TestListeners(t *testing.T) {
	t.Parallel()
	var heard, fell []rune
	digits := terminal.ConditionalListener{
		Listener:   terminal.Listener{Name: "digits", Action: func(r rune) error { heard = append(heard, r); return nil }},
		Applicable: func(r rune) bool { return r >= '0' && r <= '9' },
	}
	fallback := terminal.Listener{Name: "rest", Action: func(r rune) error { fell = append(fell, r); return nil }}

	cause, output := keys(t, "1a2b\x03zz", []terminal.ConditionalListener{digits}, []terminal.Listener{fallback})
	assert.Check(t, errors.Is(cause, terminal.UserCancelled))
	assert.Check(t, is.DeepEqual([]rune("12"), heard))
	assert.Check(t, is.DeepEqual([]rune("ab"), fell))
	assert.Check(t, strings.HasPrefix(output, ansi.HideCursor))
	assert.Check(t, strings.HasSuffix(output, ansi.ShowCursor))
}

func TestFailingListenerStops(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	failing := terminal.ConditionalListener{
		Listener:   terminal.Listener{Name: "fails", Action: func(rune) error { return boom }},
		Applicable: func(r rune) bool { return r == 'q' },
	}
	cause, _ := keys(t, "q", []terminal.ConditionalListener{failing}, nil)
	assert.Check(t, errors.Is(cause, boom))
	assert.ErrorContains(t, cause, `key 'q' failed in listener "fails"`)
}
