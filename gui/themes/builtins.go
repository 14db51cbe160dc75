// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package themes

import (
	"cmp"
	"embed"
	"slices"
	"strings"

	"github.com/nfxdevelopment/graph-view-sub000/terminal/typography"
	"github.com/nfxdevelopment/graph-view-sub000/utils/check"
	"github.com/nfxdevelopment/graph-view-sub000/utils/sliceutils"
)

//go:embed builtins/*.json
var builtinFiles embed.FS

var (
	DarkTheme     = builtin("dark", "d")
	LightTheme    = builtin("light", "l")
	PhosphorTheme = builtin("phosphor", "p", "green")
	NoTheme       = builtin("no-theme", "notheme", "no")
)

type namedTheme struct {
	name  string
	theme Theme
}

var (
	builtins       []namedTheme
	builtinsLookup = map[string]Theme{}
)

// builtin loads an embedded theme, it can be found by its file name or any of the [aliases].
func builtin(file string, aliases ...string) Theme {
	data := check.Must(builtinFiles.ReadFile("builtins/" + file + ".json"))
	tf := check.Must(decodeThemeFile(data))
	theme := check.Must(tf.theme())
	builtins = append(builtins, namedTheme{name: tf.Name, theme: theme})
	for _, name := range append([]string{tf.Name}, aliases...) {
		builtinsLookup[normalizeName(name)] = theme
	}
	return theme
}

func normalizeName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func sortedBuiltins() []namedTheme {
	return slices.SortedFunc(slices.Values(builtins), func(a, b namedTheme) int { return cmp.Compare(a.name, b.name) })
}

// BuiltinNames lists the name of every builtin theme, sorted.
func BuiltinNames() []string {
	return sliceutils.Map(sortedBuiltins(), func(n namedTheme) string { return n.name })
}

// DescribeBuiltins gives one line per builtin theme showing a swatch of every role.
func DescribeBuiltins() []string {
	return sliceutils.Map(sortedBuiltins(), func(n namedTheme) string {
		var b strings.Builder
		b.WriteString("\t- " + n.theme.Colour(RoleTitleHighlight, n.name) + " |")
		for _, r := range Roles() {
			b.WriteString(" " + r.String() + ":" + n.theme.Colour(r, typography.Block))
		}
		return b.String()
	})
}
