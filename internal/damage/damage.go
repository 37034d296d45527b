// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package damage tracks which tiles of a raster changed since it was last
// composited.
package damage

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// TileSize is the edge length of a tracked tile in pixels.
const TileSize = 64

// Region is a tile damage bitmap for a width×height raster.
//
// One bit per tile, packed into uint64 words. All methods are safe for
// concurrent use, so a presenter may take damage while a fill marks it.
type Region struct {
	// words[i] bit b is tile index i*64+b = ty*tilesX + tx.
	words []atomic.Uint64

	width, height  int
	tilesX, tilesY int
}

// New creates an undamaged region covering a width×height raster.
// It returns nil for empty rasters.
func New(width, height int) *Region {
	if width <= 0 || height <= 0 {
		return nil
	}
	tx := (width + TileSize - 1) / TileSize
	ty := (height + TileSize - 1) / TileSize
	return &Region{
		words:  make([]atomic.Uint64, (tx*ty+63)/64),
		width:  width,
		height: height,
		tilesX: tx,
		tilesY: ty,
	}
}

// Bounds returns the raster rectangle covered by r.
func (r *Region) Bounds() image.Rectangle {
	if r == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, r.width, r.height)
}

func (r *Region) mark(tx, ty int) {
	idx := ty*r.tilesX + tx
	r.words[idx>>6].Or(1 << (idx & 63))
}

// MarkPixel damages the tile containing (x, y).
// Coordinates outside the raster are ignored.
func (r *Region) MarkPixel(x, y int) {
	if r == nil || x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.mark(x/TileSize, y/TileSize)
}

// MarkRect damages every tile intersecting rect.
func (r *Region) MarkRect(rect image.Rectangle) {
	if r == nil {
		return
	}
	rect = rect.Intersect(r.Bounds())
	if rect.Empty() {
		return
	}
	for ty := rect.Min.Y / TileSize; ty <= (rect.Max.Y-1)/TileSize; ty++ {
		for tx := rect.Min.X / TileSize; tx <= (rect.Max.X-1)/TileSize; tx++ {
			r.mark(tx, ty)
		}
	}
}

// MarkAll damages the whole raster.
func (r *Region) MarkAll() {
	if r == nil {
		return
	}
	total := r.tilesX * r.tilesY
	full := total / 64
	for i := 0; i < full; i++ {
		r.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		r.words[full].Store(uint64(1)<<rem - 1)
	}
}

// Clear marks every tile clean.
func (r *Region) Clear() {
	if r == nil {
		return
	}
	for i := range r.words {
		r.words[i].Store(0)
	}
}

// IsEmpty reports whether no tile is damaged.
func (r *Region) IsEmpty() bool {
	if r == nil {
		return true
	}
	for i := range r.words {
		if r.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of damaged tiles.
func (r *Region) Count() int {
	if r == nil {
		return 0
	}
	n := 0
	for i := range r.words {
		n += bits.OnesCount64(r.words[i].Load())
	}
	return n
}

// Merge adds the damage of o to r. Regions of different sizes damage all
// of r.
func (r *Region) Merge(o *Region) {
	if r == nil || o == nil {
		return
	}
	if o.tilesX != r.tilesX || o.tilesY != r.tilesY {
		if !o.IsEmpty() {
			r.MarkAll()
		}
		return
	}
	for i := range r.words {
		if w := o.words[i].Load(); w != 0 {
			r.words[i].Or(w)
		}
	}
}

// Take clears r and returns the damaged tiles as pixel rectangles clipped
// to the raster, in row-major order.
func (r *Region) Take() []image.Rectangle {
	if r == nil {
		return nil
	}
	var rects []image.Rectangle
	total := r.tilesX * r.tilesY
	bounds := r.Bounds()

	for wi := range r.words {
		word := r.words[wi].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &^= 1 << b

			idx := wi*64 + b
			if idx >= total {
				break
			}
			tx, ty := idx%r.tilesX, idx/r.tilesX
			rect := image.Rect(tx*TileSize, ty*TileSize, (tx+1)*TileSize, (ty+1)*TileSize)
			rects = append(rects, rect.Intersect(bounds))
		}
	}
	return rects
}
