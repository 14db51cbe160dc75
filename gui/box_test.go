// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package gui_test

import (
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/gui"
	"github.com/nfxdevelopment/graph-view-sub000/terminal"
	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
	"github.com/nfxdevelopment/graph-view-sub000/utils/sliceutils"
	"github.com/nfxdevelopment/graph-view-sub000/utils/th"
)

func render(d gui.Draw, size terminal.Size) []string {
	b := bytes.NewSafeBuffer()
	d.Draw(size, b)
	return th.EmulateTerminal(b.String(), th.MakeBuffer(size), size, th.Panic)
}

func lines(align gui.HorizontalAlignment, text ...string) []gui.Typography {
	return sliceutils.Map(text, func(s string) gui.Typography {
		return gui.Typography{ToPrint: s, Alignment: align}
	})
}

func TestBox(t *testing.T) {
	t.Parallel()
	type testCase struct {
		name     string
		box      gui.Box
		size     terminal.Size
		expected []string
	}
	cases := []testCase{
		{
			name: "rounded top left",
			box: gui.Box{
				BoxText:  lines(gui.Centre, "ab", "abcd"),
				Position: gui.Position{Vertical: gui.Top, Horizontal: gui.Left},
				Style:    gui.RoundedCorners,
			},
			size: terminal.Size{Height: 5, Width: 10},
			expected: []string{
				"╭────╮    ",
				"│ ab │    ",
				"│abcd│    ",
				"╰────╯    ",
				"          ",
			},
		},
		{
			name: "titled bottom right",
			box: gui.Box{
				BoxText:  lines(gui.Left, "abcdef"),
				Title:    "hi",
				Position: gui.Position{Vertical: gui.Bottom, Horizontal: gui.Right},
				Style:    gui.SharpCorners,
			},
			size: terminal.Size{Height: 4, Width: 10},
			expected: []string{
				"          ",
				"  ┌─ hi ─┐",
				"  │abcdef│",
				"  └──────┘",
			},
		},
		{
			name: "title too wide is dropped",
			box: gui.Box{
				BoxText:  lines(gui.Left, "ab"),
				Title:    "title",
				Position: gui.Position{Vertical: gui.Top, Horizontal: gui.Left},
				Style:    gui.SharpCorners,
			},
			size: terminal.Size{Height: 3, Width: 4},
			expected: []string{
				"┌──┐",
				"│ab│",
				"└──┘",
			},
		},
		{
			name: "no border centred",
			box: gui.Box{
				BoxText:  lines(gui.Right, "x"),
				Position: gui.Position{Vertical: gui.Middle, Horizontal: gui.Centre},
				Style:    gui.NoBorder,
			},
			size: terminal.Size{Height: 3, Width: 5},
			expected: []string{
				"     ",
				"  x  ",
				"     ",
			},
		},
		{
			name: "padding",
			box: gui.Box{
				BoxText: lines(gui.Right, "a", "bb"),
				Position: gui.Position{
					Vertical: gui.Top, Horizontal: gui.Left,
					Padding: gui.Padding{Top: 1, Left: 2},
				},
				Style: gui.NoBorder,
			},
			size: terminal.Size{Height: 4, Width: 6},
			expected: []string{
				"      ",
				"   a  ",
				"  bb  ",
				"      ",
			},
		},
		{
			name: "lines beyond the terminal are dropped",
			box: gui.Box{
				BoxText:  lines(gui.Left, "1", "2", "3", "4"),
				Position: gui.Position{Vertical: gui.Top, Horizontal: gui.Left},
				Style:    gui.RoundedCorners,
			},
			size: terminal.Size{Height: 4, Width: 4},
			expected: []string{
				"╭─╮ ",
				"│1│ ",
				"│2│ ",
				"╰─╯ ",
			},
		},
		{
			name: "empty box uses the default width",
			box: gui.Box{
				Position:      gui.Position{Vertical: gui.Top, Horizontal: gui.Left},
				Style:         gui.SharpCorners,
				Configuration: gui.BoxCfg{DefaultWidth: 2},
			},
			size: terminal.Size{Height: 3, Width: 4},
			expected: []string{
				"┌──┐",
				"└──┘",
				"    ",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.DeepEqual(t, tc.expected, render(tc.box, tc.size))
		})
	}
}

// A box never writes above or left of the terminal, whatever its padding or size.
func TestBoxStaysOnScreen_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		size := terminal.Size{
			Height: rapid.IntRange(3, 20).Draw(rt, "height"),
			Width:  rapid.IntRange(3, 40).Draw(rt, "width"),
		}
		text := rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,8}`), 1, 6).Draw(rt, "text")
		box := gui.Box{
			BoxText: lines(gui.Centre, text...),
			Position: gui.Position{
				Vertical:   rapid.SampledFrom([]gui.VerticalAlignment{gui.Top, gui.Middle, gui.Bottom}).Draw(rt, "v"),
				Horizontal: rapid.SampledFrom([]gui.HorizontalAlignment{gui.Left, gui.Centre, gui.Right}).Draw(rt, "h"),
				Padding: gui.Padding{
					Top:    rapid.IntRange(0, 5).Draw(rt, "top"),
					Bottom: rapid.IntRange(0, 5).Draw(rt, "bottom"),
					Left:   rapid.IntRange(0, 5).Draw(rt, "left"),
					Right:  rapid.IntRange(0, 5).Draw(rt, "right"),
				},
			},
			Style: rapid.SampledFrom([]gui.Style{gui.RoundedCorners, gui.SharpCorners, gui.NoBorder}).Draw(rt, "style"),
		}
		b := bytes.NewSafeBuffer()
		box.Draw(size, b)
		// the emulator checks the cursor never reaches row or column 0
		th.EmulateTerminal(b.String(), th.MakeBuffer(size), size, th.SilentlyDrop)
	})
}

func TestVisibleWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, gui.VisibleWidth("abc"))
	assert.Equal(t, 2, gui.VisibleWidth("\033[97m◆•\033[0m"))
	assert.Equal(t, 0, gui.VisibleWidth(""))
}

func TestPad(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab   ", gui.Text("ab").Pad(5))
	assert.Equal(t, " ab  ", gui.Typography{ToPrint: "ab", Alignment: gui.Centre}.Pad(5))
	assert.Equal(t, "   ab", gui.Typography{ToPrint: "ab", Alignment: gui.Right}.Pad(5))
	assert.Equal(t, "abcdef", gui.Typography{ToPrint: "abcdef", Alignment: gui.Right}.Pad(5))
	coloured := "\033[91mab\033[0m"
	assert.Equal(t, "  "+coloured, gui.Typography{ToPrint: coloured, Alignment: gui.Right}.Pad(4))
	assert.Equal(t, "SharpCorners", gui.SharpCorners.String())
	assert.Equal(t, "Unknown Style: 0", gui.Style(0).String())
}

type recordingGUI struct {
	m       sync.Mutex
	updates []gui.PaintUpdate
}

func (r *recordingGUI) GetState() gui.Token { return gui.NoGUI().GetState() }
func (r *recordingGUI) Drawn(gui.Token)     {}
func (r *recordingGUI) Paint(u gui.PaintUpdate) {
	r.m.Lock()
	defer r.m.Unlock()
	r.updates = append(r.updates, u)
}

func (r *recordingGUI) snapshot() []gui.PaintUpdate {
	r.m.Lock()
	defer r.m.Unlock()
	return append([]gui.PaintUpdate(nil), r.updates...)
}

func toastBox(_ terminal.Size, values []string) gui.Draw {
	return gui.Box{
		BoxText:  lines(gui.Left, values...),
		Position: gui.Position{Vertical: gui.Top, Horizontal: gui.Left},
		Style:    gui.NoBorder,
	}
}

func TestNotification(t *testing.T) {
	t.Parallel()
	g := &recordingGUI{}
	buffer := bytes.NewSafeBuffer()
	size := terminal.Size{Height: 3, Width: 4}
	n := gui.NewNotification(g, buffer, size, 2, toastBox)

	n.Push("a", time.Hour)
	n.Push("b", time.Hour)
	n.Push("c", time.Hour)
	assert.Equal(t, 2, n.Len())
	assert.DeepEqual(t, []string{"b   ", "c   ", "    "},
		th.EmulateTerminal(buffer.String(), th.MakeBuffer(size), size, th.Panic))

	n.Clear()
	assert.Equal(t, 0, buffer.Len())
	assert.DeepEqual(t, []gui.PaintUpdate{
		gui.Paint,
		gui.Paint | gui.Invalidate,
		gui.Paint | gui.Invalidate,
		gui.Invalidate,
	}, g.snapshot())
}

func TestNotificationExpires(t *testing.T) {
	t.Parallel()
	g := &recordingGUI{}
	buffer := bytes.NewSafeBuffer()
	n := gui.NewNotification(g, buffer, terminal.Size{Height: 3, Width: 4}, 0, toastBox)
	n.Push("a", time.Millisecond)
	th.TestWithTimeout(t, 5*time.Second, func() {
		for n.Len() != 0 {
			time.Sleep(time.Millisecond)
		}
	})
	assert.Check(t, is.Equal(0, buffer.Len()))
	updates := g.snapshot()
	assert.Check(t, is.Equal(gui.Invalidate, updates[len(updates)-1]))
}
