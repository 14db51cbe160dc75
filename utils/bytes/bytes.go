// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package bytes

import (
	"bytes"
	"io"
	"sync"
)

// SafeBuffer is a [bytes.Buffer] guarded by a mutex, GUI components paint into these from their own
// goroutines while the frame loop copies them out.
type SafeBuffer struct {
	m *sync.Mutex
	b *bytes.Buffer
}

func NewSafeBuffer() *SafeBuffer {
	return &SafeBuffer{m: &sync.Mutex{}, b: &bytes.Buffer{}}
}

func (s *SafeBuffer) Write(p []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.b.Write(p)
}

func (s *SafeBuffer) WriteString(str string) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.b.WriteString(str)
}

func (s *SafeBuffer) Reset() {
	s.m.Lock()
	defer s.m.Unlock()
	s.b.Reset()
}

func (s *SafeBuffer) Len() int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.b.Len()
}

func (s *SafeBuffer) String() string {
	s.m.Lock()
	defer s.m.Unlock()
	return s.b.String()
}

// WriteTo copies the current contents to [w] without draining the buffer, so a painted component stays
// painted until it is explicitly reset.
func (s *SafeBuffer) WriteTo(w io.Writer) (int64, error) {
	s.m.Lock()
	defer s.m.Unlock()
	n, err := w.Write(s.b.Bytes())
	return int64(n), err
}
