// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucanvas presents a paint editor's document in a gogpu window.
//
// The data flow is:
//
//	layer.Tree (composite) -> Pixmap over backdrop (CPU) -> GPU Texture -> Window
//
// # Usage
//
//	ed, _ := paint.New(800, 600, paint.WithWindow(app))
//	canvas, _ := gpucanvas.New(ed, gpucanvas.WithBackdrop(gputypes.Color{R: 1, G: 1, B: 1, A: 1}))
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    ed.Frame()
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// The texture is created on the first RenderTo. Later frames upload only
// the tiles the editor damaged, through gpucontext.TextureRegionUpdater
// when the texture supports it.
//
// Canvas is NOT safe for concurrent use.
package gpucanvas
