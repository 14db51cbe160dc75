// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package application

import (
	"flag"
	"log/slog"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
	"github.com/nfxdevelopment/graph-view-sub000/utils/exit"
)

// SharedFlags are registered on every subcommand's flag set.
type SharedFlags struct {
	LogFile     *string
	LogLevel    *slog.Level
	CPUProfile  *string
	MemProfile  *string
	DebugStrict *bool
	Theme       *string
	Background  *string
}

func NewSharedFlags(f *flag.FlagSet) *SharedFlags {
	s := &SharedFlags{
		LogFile:    f.String("log-file", "", "write logs to `file`, logging is off otherwise"),
		LogLevel:   new(slog.Level),
		CPUProfile: f.String("cpuprofile", "", "write cpu profile (and a trace alongside it) to `file`"),
		MemProfile: f.String("memprofile", "", "write memory profile to `file`"),
		DebugStrict: f.Bool("debug-strict", false,
			"panic on failed internal checks instead of logging them"),
		Theme: f.String("theme", "",
			"the name of a builtin theme ("+strings.Join(themes.BuiltinNames(), ", ")+") or a path to a theme json file"),
		Background: f.String("background", "dark",
			"the terminal background: dark, light or a hex colour, picks the default theme"),
	}
	f.TextVar(s.LogLevel, "log-level", slog.LevelDebug, "the lowest level written to the -log-file: debug, info, warn or error")
	return s
}

// Start runs the shared start up, the returned function must be deferred to flush profiles and logs.
func (s *SharedFlags) Start(info *BuildInfo) (toDefer func()) {
	closeLogs := InitLogging(*s.LogFile, *s.LogLevel, info)
	var p profiles
	exit.OnErrorMsg(errors.Join(p.startCPU(*s.CPUProfile), p.startHeap(*s.MemProfile)), "failed to start profiling")
	exit.OnErrorMsg(LoadTheme(*s.Theme, *s.Background), "failed to load theme")
	return func() {
		check.NoErr(p.stop(), "failed to write profiles")
		closeLogs()
	}
}

// FlagParseError exits the program for a flag error, asking for help is not an error.
func FlagParseError(err error) {
	if errors.Is(err, flag.ErrHelp) {
		exit.Silent()
	}
	exit.OnErrorMsg(err, "failed to parse flags")
}
