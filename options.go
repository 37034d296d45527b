// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paint

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/paint/config"
	"github.com/gogpu/paint/fill"
)

// Option configures an Editor during creation.
//
// Example:
//
//	ed, err := paint.New(800, 600,
//	    paint.WithSettings(settings),
//	    paint.WithWindow(window),
//	)
type Option func(*editorOptions)

type editorOptions struct {
	settings config.Settings
	window   gpucontext.WindowProvider
	platform gpucontext.PlatformProvider
	driver   fill.FrameDriver
	logger   *slog.Logger
}

func defaultOptions() editorOptions {
	return editorOptions{
		settings: config.Default(),
		logger:   Logger(),
	}
}

// WithSettings sets the tool and input settings.
func WithSettings(s config.Settings) Option {
	return func(o *editorOptions) {
		o.settings = s
	}
}

// WithWindow connects the editor to a window. The editor requests a
// redraw whenever the document changes or a fill needs another frame.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *editorOptions) {
		o.window = w
	}
}

// WithPlatform lets the editor change the cursor shape.
func WithPlatform(p gpucontext.PlatformProvider) Option {
	return func(o *editorOptions) {
		o.platform = p
	}
}

// WithFrameDriver replaces the editor's own frame queue. Fills then
// advance whenever the driver runs its callbacks instead of on
// Editor.Frame.
func WithFrameDriver(d fill.FrameDriver) Option {
	return func(o *editorOptions) {
		o.driver = d
	}
}

// WithLogger sets the editor's logger. Without it the editor uses the
// package logger at creation time.
func WithLogger(l *slog.Logger) Option {
	return func(o *editorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
