// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2024-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package main

import (
	"fmt"
	"os"

	"github.com/nfxdevelopment/graph-view-sub000/cmd/subcommands/drawframe"
	"github.com/nfxdevelopment/graph-view-sub000/cmd/subcommands/scope"
	"github.com/nfxdevelopment/graph-view-sub000/cmd/subcommands/version"
	"github.com/nfxdevelopment/graph-view-sub000/terminal/ansi"
	"github.com/nfxdevelopment/graph-view-sub000/utils/application"
	"github.com/nfxdevelopment/graph-view-sub000/utils/exit"
)

// Set at build time through -ldflags "-X main.COMMIT=...".
//
//nolint:staticcheck
var (
	COMMIT     string
	GO_VERSION string
	BRANCH     string
	TIMESTAMP  string
	TAG        string
)

var programName = ansi.Green("graph-view")

const (
	scopeString     = "scope"
	drawframeString = "drawframe"
	versionString   = "version"
)

type subcommand struct {
	subcommandName string
	description    string
}

var commandsUsage = []subcommand{
	{
		subcommandName: ansi.Red(scopeString),
		description: programName + " " + ansi.Red(scopeString) +
			" [options]\n    the default, a live zoomable plot of a synthetic signal.",
	},
	{
		subcommandName: ansi.Red(drawframeString),
		description: programName + " " + ansi.Red(drawframeString) +
			" -size HxW [options]\n    will draw a single frame of a synthetic signal to stdout.",
	},
	{
		subcommandName: ansi.Red(versionString),
		description:    programName + " " + ansi.Red(versionString) + " will print the build info.",
	},
}

var mainDescription = programName + " can be run with no arguments to start the live plot." +
	" To exit simply kill the program via the normal control-c."

func main() {
	info := application.MakeBuildInfo(COMMIT, GO_VERSION, BRANCH, TIMESTAMP, TAG)
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case drawframeString:
			df := drawframe.GetFlags(info)
			application.FlagParseError(df.Parse(args[1:]))
			drawframe.RunDrawFrame(df)
			exit.Success()
		case versionString:
			v := version.GetFlags(info)
			application.FlagParseError(v.Parse(args[1:]))
			version.RunVersion(v)
			exit.Success()
		case scopeString:
			args = args[1:]
		default:
			// fallthrough to the default subcommand
		}
	}
	s := scope.GetFlags(info)
	s.Usage = func() {
		fmt.Fprint(s.Output(), "  "+mainDescription+"\n\n")
		for _, cmd := range commandsUsage {
			fmt.Fprint(s.Output(), "  "+cmd.subcommandName+"\n")
			fmt.Fprint(s.Output(), "      "+cmd.description+"\n")
		}
		fmt.Fprintf(s.Output(), "call any of the above subcommands with --help for extra details on those commands.\n")
		fmt.Fprint(s.Output(), "\n"+programName+" arguments:\n")
		s.PrintDefaults()
	}
	application.FlagParseError(s.Parse(args))
	scope.RunScope(s)
	exit.Success()
}
