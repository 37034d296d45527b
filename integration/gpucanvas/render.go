// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
)

// ErrInvalidRenderer is returned when the drawer has no texture creator.
var ErrInvalidRenderer = errors.New("gpucanvas: drawer must provide a gpucontext.TextureCreator")

// RenderTo draws the canvas at (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition updates the texture and draws it with its top-left
// corner at (x, y).
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if _, err := c.Update(); err != nil {
		return err
	}
	if err := c.upload(dc); err != nil {
		return err
	}
	return dc.DrawTexture(c.texture, x, y)
}

func (c *Canvas) upload(dc gpucontext.TextureDrawer) error {
	if c.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(c.frame.Width(), c.frame.Height(), c.frame.Premultiplied())
		if err != nil {
			return fmt.Errorf("gpucanvas: NewTextureFromRGBA failed: %w", err)
		}
		// Pixels are uploaded premultiplied.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		c.texture = tex
		c.pending = c.pending[:0]

		// Creation waits for the GPU, so the old texture is no longer in use.
		c.destroy(c.oldTexture)
		c.oldTexture = nil

		c.logger.Debug("gpucanvas: texture created",
			slog.Int("width", c.frame.Width()), slog.Int("height", c.frame.Height()))
		return nil
	}
	if len(c.pending) == 0 {
		return nil
	}

	if ru, ok := c.texture.(gpucontext.TextureRegionUpdater); ok {
		for _, r := range c.pending {
			if err := ru.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c.frame.PremultipliedRect(r)); err != nil {
				return fmt.Errorf("gpucanvas: texture region update failed: %w", err)
			}
		}
		c.logger.Debug("gpucanvas: regions uploaded", slog.Int("regions", len(c.pending)))
	} else if u, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := u.UpdateData(c.frame.Premultiplied()); err != nil {
			return fmt.Errorf("gpucanvas: texture update failed: %w", err)
		}
	} else {
		c.logger.Warn("gpucanvas: texture cannot be updated, recreating")
		c.retire(c.texture)
		c.texture = nil
		return c.upload(dc)
	}
	c.pending = c.pending[:0]
	return nil
}
