// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package application

import (
	"os"

	"github.com/nfxdevelopment/graph-view-sub000/gui/themes"
	"github.com/nfxdevelopment/graph-view-sub000/utils/env"
	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

// LoadTheme installs the theme [ResolveTheme] picks.
func LoadTheme(name, background string) error {
	theme, err := ResolveTheme(name, background)
	if err != nil {
		return err
	}
	themes.LoadTheme(theme)
	return nil
}

// ResolveTheme looks [name] up as a builtin and then as a path to a theme file. Without a name NO_COLOR
// picks the colourless theme, otherwise [background] picks between dark and light.
func ResolveTheme(name, background string) (themes.Theme, error) {
	if name != "" {
		if theme, ok := themes.LookupTheme(name); ok {
			return theme, nil
		}
		return loadThemeFile(name)
	}
	if env.NO_COLOR() {
		return themes.NoTheme, nil
	}
	luminance, err := themes.ParseBackground(background)
	if err != nil {
		return themes.Theme{}, err
	}
	return themes.GetDefault(luminance), nil
}

func loadThemeFile(path string) (themes.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return themes.Theme{}, errors.Wrapf(err, "%q is not a builtin theme and could not be read", path)
	}
	theme, err := themes.ParseThemeFromJSON(data)
	if err != nil {
		return themes.Theme{}, errors.Wrapf(err, "failed to load theme from %q", path)
	}
	return theme, nil
}
