// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package application

import (
	"io"
	"log/slog"
	"os"

	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
)

// InitLogging installs the default slog logger. The terminal owns stdout so logs only go to [file], without
// one everything is discarded.
func InitLogging(file string, level slog.Level, info *BuildInfo) (toDefer func()) {
	if file == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})))
		return func() {}
	}
	f, err := os.Create(file)
	check.NoErr(err, "could not create log file")
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})).With(info.logAttrs()...)
	slog.SetDefault(logger)
	slog.Debug("logging started", "file", file, "level", level)
	return func() {
		slog.Debug("logging finished, closing", "file", file)
		check.NoErr(f.Close(), "failed to close log file")
	}
}
