// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the pixel buffers the editor paints into.
//
// A [Pixmap] stores straight (non-premultiplied) RGBA with 8 bits per
// channel, origin at the top-left, rows packed without padding. It is the
// PixelBuffer collaborator of the fill engine: reads go through
// [Pixmap.NRGBAAt] and writes through [Pixmap.BlendNRGBA], which composites
// with source-over rather than replacing the destination.
//
// Pixmap also implements [image/draw.Image], so any code that draws into a
// standard image (text drawers, scalers) can target it directly.
//
// # Colors
//
// [Color] is the float representation used by tools and settings, with every
// component in [0, 1]. Conversion to 8-bit truncates, matching how the
// editor has always turned a picker value into a paint colour.
//
// # Image files
//
// [Load] and [Decode] understand PNG, JPEG, GIF, BMP, TIFF and WebP.
// [Pixmap.Save] and [Pixmap.Encode] write PNG, JPEG, BMP and TIFF.
package surface
