// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelFace is the fixed bitmap face used for canvas labels.
var labelFace font.Face = basicfont.Face7x13

// DrawText draws text with its top-left corner at (x, y) in colour c.
// The glyphs are composited with source-over.
func (p *Pixmap) DrawText(x, y int, text string, c Color) {
	m := labelFace.Metrics()
	d := &font.Drawer{
		Dst:  p,
		Src:  image.NewUniform(c.NRGBA()),
		Face: labelFace,
		Dot:  fixed.P(x, y+m.Ascent.Ceil()),
	}
	d.DrawString(text)
}

// MeasureText returns the pixel size DrawText would cover for text.
func MeasureText(text string) (width, height int) {
	m := labelFace.Metrics()
	return font.MeasureString(labelFace, text).Ceil(), m.Height.Ceil()
}
