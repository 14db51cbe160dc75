// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package application_test

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/utils/application"
)

func TestBuildInfoString(t *testing.T) {
	t.Parallel()
	var dev *application.BuildInfo
	assert.Equal(t, "graph-view: development build (no build info)", dev.String())
	assert.Check(t, application.MakeBuildInfo("", "", "", "", "") == nil)
	info := application.MakeBuildInfo("abc", "go1.25.0", "main", "today", "v0.1.0")
	assert.Equal(t, "graph-view v0.1.0\n"+
		"\tcommit:     abc\n"+
		"\tbranch:     main\n"+
		"\tgo version: go1.25.0\n"+
		"\tbuilt:      today", info.String())
}

func TestSharedFlags(t *testing.T) {
	t.Parallel()
	f := flag.NewFlagSet("", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	s := application.NewSharedFlags(f)
	assert.NilError(t, f.Parse(nil))
	assert.Equal(t, slog.LevelDebug, *s.LogLevel)
	assert.Equal(t, "dark", *s.Background)

	f = flag.NewFlagSet("", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	s = application.NewSharedFlags(f)
	assert.NilError(t, f.Parse([]string{"-log-level", "warn", "-theme", "phosphor", "-debug-strict"}))
	assert.Equal(t, slog.LevelWarn, *s.LogLevel)
	assert.Equal(t, "phosphor", *s.Theme)
	assert.Check(t, *s.DebugStrict)

	f = flag.NewFlagSet("", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	application.NewSharedFlags(f)
	assert.ErrorContains(t, f.Parse([]string{"-log-level", "loud"}), "log-level")
}

// Not parallel, NO_COLOR is process wide.
func TestResolveTheme(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	same := func(expected themes.Theme, name, background string) {
		t.Helper()
		actual, err := application.ResolveTheme(name, background)
		assert.NilError(t, err)
		assert.Equal(t, expected.String(), actual.String())
	}
	same(themes.DarkTheme, "", "dark")
	same(themes.LightTheme, "", "#FFFFFF")
	same(themes.PhosphorTheme, "green", "not even a colour")

	_, err := application.ResolveTheme("", "purple")
	assert.ErrorContains(t, err, "background should be dark, light or a hex colour")

	path := filepath.Join(t.TempDir(), "mine.json")
	mine := `{"name": "mine", "colours": {` + strings.Join([]string{
		`"primary": "Red"`, `"secondary": ""`, `"highlight": ""`, `"emphasis": ""`, `"title-highlight": ""`,
		`"positive": ""`, `"negative": ""`, `"trace": ""`, `"envelope": ""`, `"grid": ""`, `"minor-grid": ""`,
		`"marker": ""`,
	}, ", ") + `}}`
	assert.NilError(t, os.WriteFile(path, []byte(mine), 0o600))
	theme, err := application.ResolveTheme(path, "dark")
	assert.NilError(t, err)
	assert.Check(t, strings.HasPrefix(theme.String(), "{primary: Red secondary: No Colour"))

	_, err = application.ResolveTheme(filepath.Join(t.TempDir(), "missing.json"), "dark")
	assert.ErrorContains(t, err, "is not a builtin theme and could not be read")

	t.Setenv("NO_COLOR", "1")
	same(themes.NoTheme, "", "dark")
	same(themes.LightTheme, "light", "dark")
}
