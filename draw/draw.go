// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package draw holds the layered output of one frame. Each [Index] is an independent buffer of ANSI text,
// painting a frame writes the buffers to the terminal in [PaintOrder].
package draw

import (
	"io"
	"strconv"

	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
)

type Index int

const (
	TitleIndex Index = iota
	YAxisIndex
	XAxisIndex
	PlotIndex
	MarkerIndex
	SpinnerIndex

	ControlIndex
	ToastIndex
	HelpIndex

	indexCount
)

func (i Index) String() string {
	switch i {
	case TitleIndex:
		return "Title"
	case YAxisIndex:
		return "YAxis"
	case XAxisIndex:
		return "XAxis"
	case PlotIndex:
		return "Plot"
	case MarkerIndex:
		return "Marker"
	case SpinnerIndex:
		return "Spinner"
	case ControlIndex:
		return "Control"
	case ToastIndex:
		return "Toast"
	case HelpIndex:
		return "Help"
	default:
		return "Unknown Index: " + strconv.Itoa(int(i))
	}
}

var (
	// GraphIndexes are written by the frame computation.
	GraphIndexes = []Index{TitleIndex, YAxisIndex, XAxisIndex, PlotIndex, MarkerIndex, SpinnerIndex}
	// GUIIndexes are written by GUI components, outside of the frame loop.
	GUIIndexes = []Index{ControlIndex, ToastIndex, HelpIndex}
	PaintOrder = append(append([]Index{}, GraphIndexes...), GUIIndexes...)
)

// Buffer is the set of paint buffers for every [Index], each is individually thread safe.
type Buffer struct {
	buffers [indexCount]*bytes.SafeBuffer
}

func NewPaintBuffer() *Buffer {
	b := &Buffer{}
	for i := range b.buffers {
		b.buffers[i] = bytes.NewSafeBuffer()
	}
	return b
}

func (b *Buffer) Get(i Index) *bytes.SafeBuffer {
	return b.buffers[i]
}

// Reset empties the given buffers.
func (b *Buffer) Reset(indexes ...Index) {
	for _, i := range indexes {
		b.buffers[i].Reset()
	}
}

// WriteTo writes the buffers named by [indexes] to [w], in order.
func (b *Buffer) WriteTo(w io.Writer, indexes []Index) error {
	for _, i := range indexes {
		if _, err := b.buffers[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}
