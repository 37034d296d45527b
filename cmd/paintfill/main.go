// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command paintfill flood-fills an image from a seed pixel.
//
// Usage:
//
//	paintfill -in photo.png -x 120 -y 80 -color '#ff8800' -out filled.png
//
// Without -in a blank canvas of -width×-height in the background colour is
// filled instead.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/config"
	"github.com/gogpu/paint/fill"
	"github.com/gogpu/paint/surface"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "paintfill:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("paintfill", flag.ContinueOnError)
	var (
		in      = fs.String("in", "", "input image (png, jpeg, gif, bmp, tiff, webp)")
		out     = fs.String("out", "filled.png", "output image (png, jpeg, bmp, tiff)")
		width   = fs.Int("width", 256, "canvas width without -in")
		height  = fs.Int("height", 256, "canvas height without -in")
		x       = fs.Float64("x", 0, "seed x")
		y       = fs.Float64("y", 0, "seed y")
		hex     = fs.String("color", "", "fill colour, overrides the config")
		alpha   = fs.Float64("alpha", 1, "fill opacity in [0, 1]")
		batch   = fs.Int("batch", 0, "rows filled per frame, overrides the config")
		cfgPath = fs.String("config", "", "TOML settings file")
		label   = fs.String("label", "", "text drawn in the top-left corner")
		verbose = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	paint.SetLogger(logger)

	settings := config.Default()
	if *cfgPath != "" {
		s, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		settings = s
	}
	if *batch > 0 {
		settings.Fill.Batch = *batch
	}
	if *hex != "" {
		settings.Color = *hex
	}
	if *alpha < 0 || *alpha > 1 {
		return fmt.Errorf("alpha %v outside [0, 1]", *alpha)
	}

	src, err := source(*in, *width, *height, settings.BackgroundColor())
	if err != nil {
		return err
	}

	ed, err := paint.New(src.Width(), src.Height(), paint.WithSettings(settings))
	if err != nil {
		return err
	}
	layer := ed.CurrentLayer()
	if err := layer.Pixmap().CopyFrom(src); err != nil {
		return err
	}
	layer.MarkDirty()

	ed.SetTool(paint.ToolFill)
	ed.SetColor(settings.PaintColor().WithAlpha(*alpha))

	var painted int
	ed.Bucket().OnCommit = func(st fill.Stats) { painted = st.Painted }

	press := gpucontext.PointerEvent{
		Type:        gpucontext.PointerDown,
		PointerID:   1,
		X:           *x,
		Y:           *y,
		Pressure:    1,
		PointerType: gpucontext.PointerTypePen,
		IsPrimary:   true,
		Button:      gpucontext.ButtonLeft,
	}
	ed.HandlePointer(press)
	press.Type = gpucontext.PointerUp
	ed.HandlePointer(press)

	frames := 0
	for ed.Busy() {
		ed.Frame()
		frames++
	}
	if painted == 0 {
		return errors.New("nothing filled: seed outside the image")
	}

	if *label != "" {
		layer.DrawLabel(4, 4, *label, surface.Black)
	}

	dst := surface.NewPixmap(src.Width(), src.Height())
	ed.Render(dst)
	if err := dst.Save(*out); err != nil {
		return err
	}
	logger.Info("paintfill: saved",
		slog.String("path", *out),
		slog.Int("painted", painted),
		slog.Int("frames", frames))
	return nil
}

// source loads path, or returns a blank canvas filled with bg.
func source(path string, w, h int, bg surface.Color) (*surface.Pixmap, error) {
	if path != "" {
		return surface.Load(path)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	pm := surface.NewPixmap(w, h)
	pm.Fill(bg)
	return pm, nil
}
