// Use of this source code is governed by a GPL-2 license that can be found in the LICENSE file.
//
// Copyright 2025-2026 Lexer747
//
// SPDX-License-Identifier: GPL-2.0-only

package themes

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/nfxdevelopment/graph-view-sub000/utils/errors"
)

const themeFormatVersion = "2"

// ParseThemeFromJSON takes bytes (from a file) and returns a theme if one could be parsed or error.
func ParseThemeFromJSON(data []byte) (Theme, error) {
	tf, err := decodeThemeFile(data)
	if err != nil {
		return Theme{}, err
	}
	return tf.theme()
}

// themeFile is how themes are stored on disk, see the files in builtins/ for examples.
type themeFile struct {
	Name string `json:"name"`
	// Version is only checked, it exists in case the format ever needs to change.
	Version string `json:"version"`
	// Colours is keyed by [Role.String], every role must be present exactly once.
	Colours map[string]colourSpec `json:"colours"`
}

func decodeThemeFile(data []byte) (themeFile, error) {
	var tf themeFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tf); err != nil {
		return themeFile{}, errors.Wrap(err, "failed to parse theme")
	}
	if tf.Version != "" && tf.Version != themeFormatVersion {
		return themeFile{}, errors.Errorf("theme %q has version %q, only %q is understood",
			tf.Name, tf.Version, themeFormatVersion)
	}
	return tf, nil
}

func (tf themeFile) theme() (Theme, error) {
	var errs []error
	t := Theme{}
	for r := range roleCount {
		spec, ok := tf.Colours[r.String()]
		if !ok {
			errs = append(errs, errors.Errorf("missing colour for %q", r.String()))
			continue
		}
		t.colours[r] = spec.paint
	}
	for name := range tf.Colours {
		if !slices.Contains(roleNames[:], name) {
			errs = append(errs, errors.Errorf("unknown colour role %q", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Theme{}, errors.Wrapf(err, "theme %q has bad colours", tf.Name)
	}
	return t, nil
}

// colourSpec is the colour of one role, terminals support 4-bit, 8-bit and 24-bit colour and a theme can
// mix them freely:
//
//	""                                    no colour
//	"Cyan"                                a 4-bit colour, see [ParseColour]
//	{"8-bit": 120}                        an index into the terminal's palette
//	{"24-bit": "#7CFF4F"}                 true colour
//	{"24-bit": {"r": 182, "g": 255, "b": 110}}
type colourSpec struct {
	paint paint
}

func (cs *colourSpec) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name == "" {
			cs.paint = noPaint
			return nil
		}
		c, err := ParseColour(name)
		if err != nil {
			return err
		}
		cs.paint = namedPaint(c)
		return nil
	}

	var depths map[string]json.RawMessage
	if err := json.Unmarshal(data, &depths); err != nil {
		return errors.Errorf("colour should be a name or an object, got %s", data)
	}
	if len(depths) != 1 {
		return errors.Errorf("colour should have exactly one of \"8-bit\" or \"24-bit\", got %s", data)
	}
	for depth, raw := range depths {
		var err error
		switch depth {
		case "8-bit":
			cs.paint, err = decodePalette(raw)
		case "24-bit":
			cs.paint, err = decodeTrueColour(raw)
		default:
			return errors.Errorf("unknown colour depth %q", depth)
		}
		if err != nil {
			return errors.Wrapf(err, "%s colour", depth)
		}
	}
	return nil
}

func decodePalette(raw json.RawMessage) (paint, error) {
	var index int
	if err := json.Unmarshal(raw, &index); err != nil {
		return paint{}, err
	}
	b, err := component("index", index)
	if err != nil {
		return paint{}, err
	}
	return palettePaint(b), nil
}

func decodeTrueColour(raw json.RawMessage) (paint, error) {
	var hex string
	if err := json.Unmarshal(raw, &hex); err == nil {
		c, err := parseHex(hex)
		if err != nil {
			return paint{}, err
		}
		return trueColourPaint(c), nil
	}
	var parts struct {
		R *int `json:"r"`
		G *int `json:"g"`
		B *int `json:"b"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return paint{}, err
	}
	r, rErr := required("r", parts.R)
	g, gErr := required("g", parts.G)
	b, bErr := required("b", parts.B)
	if err := errors.Join(rErr, gErr, bErr); err != nil {
		return paint{}, err
	}
	return trueColourPaint(RGB{R: r, G: g, B: b}), nil
}

func required(name string, v *int) (uint8, error) {
	if v == nil {
		return 0, errors.Errorf("missing %q component", name)
	}
	return component(name, *v)
}

func component(name string, v int) (uint8, error) {
	if v < 0 || v > 255 {
		return 0, errors.Errorf("%s %d out of range, should be within 0 and 255", name, v)
	}
	return uint8(v), nil
}
