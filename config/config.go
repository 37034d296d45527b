// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads editor settings from TOML files.
//
// A settings file only needs the keys it changes; everything else keeps
// the value from [Default]:
//
//	[brush]
//	size = 14
//	flow = 0.8
//
//	[fill]
//	batch = 250
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/paint/surface"
)

// ErrInvalidSettings is returned when settings fail validation.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings configures an editor.
type Settings struct {
	Brush  Brush  `toml:"brush"`
	Eraser Eraser `toml:"eraser"`
	Fill   Fill   `toml:"fill"`
	Pen    Pen    `toml:"pen"`

	// Color is the initial paint colour as "#rgb", "#rgba", "#rrggbb" or
	// "#rrggbbaa".
	Color string `toml:"color"`

	// Background is the canvas colour the eraser previews with.
	Background string `toml:"background"`
}

// Brush holds brush tool settings.
type Brush struct {
	Size    float64 `toml:"size"`
	Flow    float64 `toml:"flow"`
	Spacing float64 `toml:"spacing"`
}

// Eraser holds eraser tool settings.
type Eraser struct {
	Size float64 `toml:"size"`
}

// Fill holds bucket fill settings.
type Fill struct {
	// Batch is the number of scanlines filled per frame.
	Batch int `toml:"batch"`
}

// Pen holds pointer input settings.
type Pen struct {
	// PressureSensitive scales stroke width with pointer pressure. When
	// false every sample uses full pressure.
	PressureSensitive bool `toml:"pressure_sensitive"`

	// TiltAmount widens strokes on the side the pen is tilted towards.
	TiltAmount float64 `toml:"tilt_amount"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Brush:      Brush{Size: 10, Flow: 1, Spacing: 1},
		Eraser:     Eraser{Size: 30},
		Fill:       Fill{Batch: 100},
		Pen:        Pen{PressureSensitive: true, TiltAmount: 0.3},
		Color:      "#000000",
		Background: "#ffffff",
	}
}

// Parse decodes TOML settings on top of Default and validates them.
// Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			keys := make([]string, 0, len(serr.Errors))
			for i := range serr.Errors {
				keys = append(keys, strings.Join(serr.Errors[i].Key(), "."))
			}
			return Settings{}, fmt.Errorf("config: unknown keys %s: %w", strings.Join(keys, ", "), err)
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Settings{}, fmt.Errorf("config: line %d, column %d: %w", row, col, err)
		}
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses a settings file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Settings{}, fmt.Errorf("config: read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as TOML.
func (s Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("config: write settings: %w", err)
	}
	return nil
}

// Validate checks value ranges and colours.
func (s Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
		}
	}

	check(s.Brush.Size > 0, "brush.size %v must be positive", s.Brush.Size)
	check(s.Brush.Flow > 0 && s.Brush.Flow <= 1, "brush.flow %v must be in (0, 1]", s.Brush.Flow)
	check(s.Brush.Spacing > 0, "brush.spacing %v must be positive", s.Brush.Spacing)
	check(s.Eraser.Size > 0, "eraser.size %v must be positive", s.Eraser.Size)
	check(s.Fill.Batch > 0, "fill.batch %d must be positive", s.Fill.Batch)
	check(s.Pen.TiltAmount >= 0, "pen.tilt_amount %v must not be negative", s.Pen.TiltAmount)
	_, err := surface.ParseHex(s.Color)
	check(err == nil, "color %q is not a hex colour", s.Color)
	_, err = surface.ParseHex(s.Background)
	check(err == nil, "background %q is not a hex colour", s.Background)

	return errors.Join(errs...)
}

// PaintColor returns the parsed paint colour, or opaque black if invalid.
func (s Settings) PaintColor() surface.Color {
	return surface.Hex(s.Color)
}

// BackgroundColor returns the parsed background colour, or opaque black if
// invalid.
func (s Settings) BackgroundColor() surface.Color {
	return surface.Hex(s.Background)
}
