// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package paint is the core of a layered raster paint editor.
//
// # Overview
//
// An [Editor] owns a layer document, the painting tools and the paint
// colour. Hosts feed it pointer events from gpucontext and present the
// composited document however they like; integration/gpucanvas draws it
// through a gpucontext.TextureDrawer.
//
// # Quick Start
//
//	ed, err := paint.New(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed.SetTool(paint.ToolFill)
//	ed.SetColor(surface.Hex("#3366ff"))
//
//	// From the window's pointer stream:
//	ed.Attach(pointerSource)
//
//	// From the draw callback, once per frame:
//	ed.Frame()
//	ed.Render(pixmap)
//
// # Tools
//
// The brush stamps round dabs along the pointer path, the eraser removes
// paint, and the fill tool floods similar colours from the pointer
// position. Fills run a batch of scanlines per frame (see package fill)
// so large areas never block the host loop: [Editor.Frame] advances them.
//
// # Coordinates
//
// Pointer coordinates are canvas pixels; the editor applies no view
// transform.
package paint
