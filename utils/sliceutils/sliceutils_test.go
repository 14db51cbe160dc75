// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package sliceutils_test

import (
	"slices"
	"strconv"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"pgregory.net/rapid"

	"github.com/nfxdevelopment/graph-view-sub000/utils/sliceutils"
)

func TestMap(t *testing.T) {
	t.Parallel()
	assert.DeepEqual(t, []string{"1", "22", "333"}, sliceutils.Map([]int{1, 22, 333}, strconv.Itoa))
	assert.Check(t, is.Nil(sliceutils.Map([]int(nil), strconv.Itoa)))
}

func TestSplitN(t *testing.T) {
	t.Parallel()
	for name, tc := range map[string]struct {
		in       string
		n        int
		expected []string
	}{
		"exact":        {in: "abcdef", n: 3, expected: []string{"abc", "def"}},
		"remainder":    {in: "abcdefg", n: 3, expected: []string{"abc", "def", "g"}},
		"larger":       {in: "ab", n: 10, expected: []string{"ab"}},
		"wide runes":   {in: "┈┈┊┊◆", n: 2, expected: []string{"┈┈", "┊┊", "◆"}},
		"empty":        {in: "", n: 4, expected: nil},
		"non positive": {in: "abc", n: 0, expected: []string{"abc"}},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := sliceutils.Map(sliceutils.SplitN([]rune(tc.in), tc.n), func(r []rune) string { return string(r) })
			assert.DeepEqual(t, tc.expected, got)
		})
	}
}

func TestSplitNRejoins_Property(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOf(rapid.Int()).Draw(rt, "in")
		n := rapid.IntRange(1, 20).Draw(rt, "n")
		pieces := sliceutils.SplitN(in, n)
		for i, p := range pieces {
			if len(p) > n || len(p) == 0 || (i < len(pieces)-1 && len(p) != n) {
				rt.Fatalf("piece %d has length %d with n=%d", i, len(p), n)
			}
		}
		if joined := slices.Concat(pieces...); !slices.Equal(in, joined) {
			rt.Fatalf("rejoined %v, expected %v", joined, in)
		}
	})
}
