// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package channels_test

import (
	"context"
	"testing"

	"github.com/nfxdevelopment/graph-view-sub000/utils/channels"
	"gotest.tools/v3/assert"
)

func TestBroadcast(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	in := make(chan int)
	outs := channels.Broadcast(ctx, in, 2, 3)
	in <- 1
	in <- 2
	for _, out := range outs {
		assert.Equal(t, 1, <-out)
		assert.Equal(t, 2, <-out)
	}
	close(in)
	for _, out := range outs {
		_, ok := <-out
		assert.Equal(t, false, ok)
	}
}

func TestLatestDropsStaleValues(t *testing.T) {
	t.Parallel()
	c, send := channels.Latest[int]()
	send(1)
	send(2)
	send(3)
	assert.Equal(t, 3, <-c)
	select {
	case v := <-c:
		t.Fatalf("unexpected value %d", v)
	default:
	}
}
