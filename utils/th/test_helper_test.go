// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package th_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/th"
)

func TestEmulateTerminal(t *testing.T) {
	t.Parallel()
	size := terminal.Size{Height: 3, Width: 4}
	text := ansi.HideCursor + "ab" + ansi.CursorPosition(2, 3) + ansi.Red("cd") + "e" +
		ansi.CursorPosition(3, 2) + ansi.Colour("x", 200) + ansi.CSI + "2D" + ansi.CSI + "1A" + "y"
	screen := th.EmulateTerminal(text, th.MakeBuffer(size), size, th.Panic)
	th.AssertScreen(t, []string{
		"ab  ",
		"y cd",
		"ex  ",
	}, screen)

	cleared := th.EmulateTerminal("zz"+ansi.Clear+ansi.Home+"q", th.MakeBuffer(size), size, th.Panic)
	th.AssertScreen(t, []string{"q   ", "    ", "    "}, cleared)
}

func TestEmulateTerminalBounds(t *testing.T) {
	t.Parallel()
	size := terminal.Size{Height: 2, Width: 2}
	assert.Assert(t, panics(func() {
		th.EmulateTerminal("abcde", th.MakeBuffer(size), size, th.Panic)
	}))
	th.AssertScreen(t, []string{"ab", "cd"}, th.EmulateTerminal("abcde", th.MakeBuffer(size), size, th.SilentlyDrop))
	th.AssertScreen(t, []string{"cd", "e "}, th.EmulateTerminal("abcde", th.MakeBuffer(size), size, th.WrapBuffer))
	assert.Assert(t, panics(func() {
		th.EmulateTerminal(ansi.CSI+"5K", th.MakeBuffer(size), size, th.Panic)
	}), "erase in line is not emulated")
}

func panics(f func()) (did bool) {
	defer func() { did = recover() != nil }()
	f()
	return false
}
