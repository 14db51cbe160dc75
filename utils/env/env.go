// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package env is every environment variable graph-view reads, each function is named after its variable.
//
//nolint:staticcheck
package env

import (
	"os"
	"strconv"
)

// LOCAL_FRAME_DIFFS makes the frame tests print the emulated screen on failure, set it to any true value
// strconv.ParseBool understands.
func LOCAL_FRAME_DIFFS() bool {
	on, err := strconv.ParseBool(os.Getenv("LOCAL_FRAME_DIFFS"))
	return err == nil && on
}

// NO_COLOR follows https://no-color.org, any non-empty value disables colour output.
func NO_COLOR() bool {
	v, ok := os.LookupEnv("NO_COLOR")
	return ok && v != ""
}
