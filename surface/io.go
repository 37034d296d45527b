// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("surface: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("surface: empty data")
)

// Format identifies an encodable image file format.
type Format string

// Encodable formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// FormatFromPath picks an encodable format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load loads an image file into a new pixmap, detecting the format from
// the content.
func Load(path string) (*Pixmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("surface: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// DecodeBytes decodes an image from a byte slice.
func DecodeBytes(data []byte) (*Pixmap, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*Pixmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("surface: decode: %w", err)
	}
	return FromImage(img), nil
}

// Save writes the pixmap to path in the format implied by its extension.
func (p *Pixmap) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path)) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("surface: create file: %w", err)
	}

	if err := p.Encode(f, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes the pixmap to w in the given format.
func (p *Pixmap) Encode(w io.Writer, format Format) error {
	img := p.ToImage()

	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("surface: encode %s: %w", format, err)
	}
	return nil
}
