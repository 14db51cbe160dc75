// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package bytes_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/nfxdevelopment/graph-view-sub000/utils/bytes"
	"gotest.tools/v3/assert"
)

func TestSafeBufferWriteToKeepsContents(t *testing.T) {
	t.Parallel()
	b := bytes.NewSafeBuffer()
	_, _ = b.WriteString("paint")
	var first, second strings.Builder
	_, err := b.WriteTo(&first)
	assert.NilError(t, err)
	_, err = b.WriteTo(&second)
	assert.NilError(t, err)
	assert.Equal(t, "paint", first.String())
	assert.Equal(t, "paint", second.String())
	b.Reset()
	assert.Equal(t, 0, b.Len())
}

func TestSafeBufferConcurrentWrites(t *testing.T) {
	t.Parallel()
	b := bytes.NewSafeBuffer()
	wg := sync.WaitGroup{}
	for range 8 {
		wg.Go(func() {
			for range 100 {
				_, _ = b.WriteString("x")
			}
		})
	}
	wg.Wait()
	assert.Equal(t, 800, b.Len())
}
