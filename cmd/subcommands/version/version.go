// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

// Package version prints what graph-view was built from.
package version

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/application"
)

type Config struct {
	*application.BuildInfo
	*flag.FlagSet

	short *bool
}

func GetFlags(info *application.BuildInfo) *Config {
	f := flag.NewFlagSet("", flag.ContinueOnError)
	return &Config{
		BuildInfo: info,
		FlagSet:   f,
		short:     f.Bool("short", false, "only print the first line, without colour"),
	}
}

func RunVersion(c *Config) {
	c.write(os.Stdout)
}

// write prints the build info, the first line highlighted and the details dimmed. Without build info from
// the linker the module version the go tool embedded is used instead.
func (c *Config) write(w io.Writer) {
	text := c.BuildInfo.String()
	if c.BuildInfo == nil {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			text = "graph-view " + bi.Main.Version + "\n\tgo version: " + bi.GoVersion
		}
	}
	header, details, _ := strings.Cut(text, "\n")
	if *c.short {
		fmt.Fprintln(w, header)
		return
	}
	fmt.Fprintln(w, ansi.Cyan(header))
	if details != "" {
		fmt.Fprintln(w, ansi.Gray(details))
	}
}
