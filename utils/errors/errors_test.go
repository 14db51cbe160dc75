// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package errors_test

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

var errSentinel = errors.New("sentinel")

func TestWrap(t *testing.T) {
	t.Parallel()
	assert.NilError(t, errors.Wrap(nil, "nothing"))
	assert.NilError(t, errors.Wrapf(nil, "nothing %d", 1))

	err := errors.Wrapf(errors.Wrap(errSentinel, "inner"), "outer %d", 2)
	assert.Error(t, err, "outer 2 caused by: inner caused by: sentinel")
	assert.ErrorIs(t, err, errSentinel)
	assert.Equal(t, "outer 2\n\tinner\n\tsentinel", fmt.Sprintf("%+v", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
}

func TestErrorfWraps(t *testing.T) {
	t.Parallel()
	err := errors.Errorf("block %d: %w", 3, errSentinel)
	assert.ErrorIs(t, err, errSentinel)
	assert.Error(t, err, "block 3: sentinel")
}
