// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/paint/internal/blend"
)

// ErrInvalidDimensions is returned when width or height is not positive.
var ErrInvalidDimensions = errors.New("surface: invalid dimensions")

// ErrSizeMismatch is returned when two pixmaps must share dimensions but do not.
var ErrSizeMismatch = errors.New("surface: size mismatch")

// BlendMode specifies how a source colour is combined with a pixel.
type BlendMode uint8

const (
	// BlendSourceOver is the default Porter-Duff source-over mode.
	BlendSourceOver BlendMode = iota

	// BlendDestinationOut erases destination alpha by the source alpha.
	BlendDestinationOut

	// BlendMultiply multiplies source and destination colors.
	BlendMultiply

	// BlendScreen is the inverse of multiply.
	BlendScreen

	// BlendHue keeps the backdrop saturation and luminosity.
	BlendHue

	// BlendSaturation keeps the backdrop hue and luminosity.
	BlendSaturation

	// BlendColor keeps the backdrop luminosity.
	BlendColor

	// BlendLuminosity keeps the backdrop hue and saturation.
	BlendLuminosity
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	return m.op().String()
}

func (m BlendMode) op() blend.Mode {
	switch m {
	case BlendDestinationOut:
		return blend.ModeDestinationOut
	case BlendMultiply:
		return blend.ModeMultiply
	case BlendScreen:
		return blend.ModeScreen
	case BlendHue:
		return blend.ModeHue
	case BlendSaturation:
		return blend.ModeSaturation
	case BlendColor:
		return blend.ModeColor
	case BlendLuminosity:
		return blend.ModeLuminosity
	default:
		return blend.ModeSourceOver
	}
}

// Pixmap represents a rectangular pixel buffer.
//
// Pixmap is not safe for concurrent use.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // straight RGBA, 4 bytes per pixel
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (straight RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// InBounds reports whether (x, y) addresses a pixel of p.
func (p *Pixmap) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// NRGBAAt returns the color of a single pixel.
// Out-of-bounds coordinates return transparent black.
func (p *Pixmap) NRGBAAt(x, y int) color.NRGBA {
	if !p.InBounds(x, y) {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetNRGBA replaces a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetNRGBA(x, y int, c color.NRGBA) {
	if !p.InBounds(x, y) {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// BlendNRGBA composites c over the pixel at (x, y) with the given coverage,
// using source-over. The effective source alpha is c.A/255 * coverage.
// Out-of-bounds writes are ignored.
func (p *Pixmap) BlendNRGBA(x, y int, c color.NRGBA, coverage float64) {
	p.BlendPixel(x, y, c, coverage, BlendSourceOver)
}

// BlendPixel composites c onto the pixel at (x, y) using mode.
func (p *Pixmap) BlendPixel(x, y int, c color.NRGBA, coverage float64, mode BlendMode) {
	if !p.InBounds(x, y) {
		return
	}
	p.SetNRGBA(x, y, blend.Get(mode.op())(p.NRGBAAt(x, y), c, coverage))
}

// Clear makes every pixel transparent.
func (p *Pixmap) Clear() {
	clear(p.data)
}

// Fill sets every pixel to c.
func (p *Pixmap) Fill(c Color) {
	p.FillRect(p.Bounds(), c)
}

// FillRect sets the pixels inside r to c.
func (p *Pixmap) FillRect(r image.Rectangle, c Color) {
	n := c.NRGBA()
	r = r.Intersect(p.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.data[(y*p.width+r.Min.X)*4 : (y*p.width+r.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = n.R
			row[i+1] = n.G
			row[i+2] = n.B
			row[i+3] = n.A
		}
	}
}

// Clone returns a deep copy of p.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(c.data, p.data)
	return c
}

// CopyFrom replaces the contents of p with those of src.
func (p *Pixmap) CopyFrom(src *Pixmap) error {
	if src.width != p.width || src.height != p.height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, src.width, src.height, p.width, p.height)
	}
	copy(p.data, src.data)
	return nil
}

// Equal reports whether p and o have the same size and pixels.
func (p *Pixmap) Equal(o *Pixmap) bool {
	if p.width != o.width || p.height != o.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// DrawPixmap composites src onto p with its top-left corner at (dx, dy),
// scaling every source pixel's alpha by opacity.
func (p *Pixmap) DrawPixmap(src *Pixmap, dx, dy int, opacity float64, mode BlendMode) {
	p.drawPixmap(src, dx, dy, p.Bounds(), opacity, mode)
}

// DrawPixmapRect is DrawPixmap at (0, 0) restricted to the destination
// pixels inside clip.
func (p *Pixmap) DrawPixmapRect(src *Pixmap, clip image.Rectangle, opacity float64, mode BlendMode) {
	p.drawPixmap(src, 0, 0, clip.Intersect(p.Bounds()), opacity, mode)
}

func (p *Pixmap) drawPixmap(src *Pixmap, dx, dy int, clip image.Rectangle, opacity float64, mode BlendMode) {
	if opacity <= 0 {
		return
	}
	clip = clip.Intersect(src.Bounds().Add(image.Pt(dx, dy)))
	fn := blend.Get(mode.op())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			s := src.NRGBAAt(x-dx, y-dy)
			if s.A == 0 {
				continue
			}
			p.SetNRGBA(x, y, fn(p.NRGBAAt(x, y), s, opacity))
		}
	}
}

// ClearRect makes the pixels inside r transparent.
func (p *Pixmap) ClearRect(r image.Rectangle) {
	r = r.Intersect(p.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := (y*p.width + r.Min.X) * 4
		clear(p.data[i : i+r.Dx()*4])
	}
}

// Resize changes the dimensions of p, keeping the existing content anchored
// at the top-left. Pixels outside the old bounds become transparent.
func (p *Pixmap) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == p.width && height == p.height {
		return nil
	}

	data := make([]uint8, width*height*4)
	rowBytes := min(width, p.width) * 4
	for y := 0; y < min(height, p.height); y++ {
		copy(data[y*width*4:y*width*4+rowBytes], p.data[y*p.width*4:])
	}

	p.width = width
	p.height = height
	p.data = data
	return nil
}

// Resample returns a copy of p scaled to width×height with Catmull-Rom
// interpolation.
func (p *Pixmap) Resample(width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), p.ToImage(), p.Bounds(), xdraw.Src, nil)
	return FromNRGBAImage(dst), nil
}

// Premultiplied returns the pixels as premultiplied RGBA, the layout GPU
// textures expect.
func (p *Pixmap) Premultiplied() []byte {
	return p.PremultipliedRect(p.Bounds())
}

// PremultipliedRect returns the pixels inside r as densely packed
// premultiplied RGBA rows.
func (p *Pixmap) PremultipliedRect(r image.Rectangle) []byte {
	r = r.Intersect(p.Bounds())
	out := make([]byte, 0, r.Dx()*r.Dy()*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.data[(y*p.width+r.Min.X)*4 : (y*p.width+r.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			a := uint32(row[i+3])
			out = append(out,
				uint8((uint32(row[i+0])*a+127)/255),
				uint8((uint32(row[i+1])*a+127)/255),
				uint8((uint32(row[i+2])*a+127)/255),
				uint8(a))
		}
	}
	return out
}

// ToImage converts the pixmap to an image.NRGBA. The pixel data is copied.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	if n, ok := img.(*image.NRGBA); ok {
		return FromNRGBAImage(n)
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return FromNRGBAImage(n)
}

// FromNRGBAImage creates a pixmap from an NRGBA image, honouring its stride
// and bounds.
func FromNRGBAImage(img *image.NRGBA) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())
	for y := 0; y < pm.height; y++ {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pm.data[y*pm.width*4:(y+1)*pm.width*4], img.Pix[row:row+pm.width*4])
	}
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetNRGBA(x, y, color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// Ensure Pixmap implements draw.Image.
var _ draw.Image = (*Pixmap)(nil)
