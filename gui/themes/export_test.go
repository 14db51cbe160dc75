// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package themes

var ParseHex = parseHex

// DecodeColour decodes a single role's colour as it appears in a theme file.
func DecodeColour(data []byte) (style func(string) string, name string, err error) {
	var cs colourSpec
	if err := cs.UnmarshalJSON(data); err != nil {
		return nil, "", err
	}
	return cs.paint.Do, cs.paint.String(), nil
}
