// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package exit ends the process from setup code which has no caller to return an error to.
package exit

import (
	"fmt"
	"log/slog"
	"os"
)

const failureCode = 2

// OnError exits with the error printed to stderr when [err] is not nil.
func OnError(err error) {
	if err != nil {
		fail(err, "")
	}
}

// OnErrorMsg is [OnError] with [msg] printed before the error.
func OnErrorMsg(err error, msg string) {
	if err != nil {
		fail(err, msg)
	}
}

func fail(err error, msg string) {
	slog.Error("exiting", "code", failureCode, "msg", msg, "err", err)
	if msg != "" {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(failureCode)
}

func Success() {
	os.Exit(0)
}

// Silent fails without a message, for when the user was already shown why.
func Silent() {
	os.Exit(1)
}
