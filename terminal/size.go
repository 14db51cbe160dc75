// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package terminal

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

// Size is the drawing surface of the plot measured in character cells.
type Size struct {
	Height int // rows, the "y" extent of the plot surface
	Width  int // columns, the "x" extent of the plot surface
}

func (s Size) String() string {
	return "W: " + strconv.Itoa(s.Width) + " H: " + strconv.Itoa(s.Height)
}

// ParseSize reads a size written "<H>x<W>", e.g. "20x80" is 20 rows of 80 columns.
func ParseSize(s string) (Size, error) {
	h, w, found := strings.Cut(strings.TrimSpace(s), "x")
	height, hErr := strconv.Atoi(h)
	width, wErr := strconv.Atoi(w)
	if !found || hErr != nil || wErr != nil || height <= 0 || width <= 0 {
		return Size{}, errors.Errorf("cannot parse %q as a terminal size,"+
			" it should be in the form \"<H>x<W>\" where H and W are positive integers", s)
	}
	return Size{Height: height, Width: width}, nil
}

// measure errors if the file isn't a terminal, which is always the case under go test.
func measure(f *os.File) (Size, error) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return Size{}, errors.Wrap(err, "failed to get terminal size")
	}
	return Size{Height: h, Width: w}, nil
}
