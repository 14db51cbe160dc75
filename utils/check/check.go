// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package check asserts invariants which only a programming error can break. A failed check panics with a
// [Failure], there is nothing to recover.
package check

import "fmt"

// Failure is the panic value of every failed check.
type Failure string

func (f Failure) Error() string { return "check failed: " + string(f) }

// Check panics when [ok] is false, e.g.
//
//	check.Check(len(samples) == blockSize, "sample buffer resized outside BlockSizeChanged")
func Check(ok bool, msg string) {
	if !ok {
		panic(Failure(msg))
	}
}

// Checkf is [Check] with a printf style message, only formatted on failure.
func Checkf(ok bool, format string, a ...any) {
	if !ok {
		panic(Failure(fmt.Sprintf(format, a...)))
	}
}

// NoErr panics when [err] is not nil.
func NoErr(err error, msg string) {
	if err != nil {
		panic(Failure(msg + ": " + err.Error()))
	}
}

// Must unwraps a (value, error) pair which cannot fail given correct inputs, e.g. parsing a constant.
func Must[T any](v T, err error) T {
	NoErr(err, "Must")
	return v
}
