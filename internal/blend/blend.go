// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blend provides straight-alpha compositing for 8-bit NRGBA pixels.
//
// Every operator takes the destination pixel, the source colour and a
// coverage value in [0, 1]. The source colour's own alpha is multiplied by
// the coverage before compositing, so a brush dab or a flood-fill mix amount
// can be passed straight through without building an intermediate colour.
package blend

import "image/color"

// Mode represents a blending mode.
type Mode uint8

const (
	// ModeSourceOver is the default alpha blending mode.
	ModeSourceOver Mode = iota
	// ModeDestinationOut removes destination alpha where the source is opaque.
	ModeDestinationOut
	// ModeMultiply multiplies source and backdrop colours.
	ModeMultiply
	// ModeScreen is the inverse of multiply.
	ModeScreen
	// ModeHue takes the source hue with the backdrop saturation and luminosity.
	ModeHue
	// ModeSaturation takes the source saturation.
	ModeSaturation
	// ModeColor takes the source hue and saturation with the backdrop luminosity.
	ModeColor
	// ModeLuminosity takes the source luminosity.
	ModeLuminosity
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSourceOver:
		return "source-over"
	case ModeDestinationOut:
		return "destination-out"
	case ModeMultiply:
		return "multiply"
	case ModeScreen:
		return "screen"
	case ModeHue:
		return "hue"
	case ModeSaturation:
		return "saturation"
	case ModeColor:
		return "color"
	case ModeLuminosity:
		return "luminosity"
	default:
		return "unknown"
	}
}

// Func composites src at the given coverage onto dst and returns the result.
type Func func(dst, src color.NRGBA, coverage float64) color.NRGBA

// Get returns the compositing function for mode.
// Unknown modes fall back to source-over.
func Get(mode Mode) Func {
	switch mode {
	case ModeDestinationOut:
		return DestinationOut
	case ModeMultiply:
		return Multiply
	case ModeScreen:
		return Screen
	case ModeHue:
		return Hue
	case ModeSaturation:
		return Saturation
	case ModeColor:
		return Color
	case ModeLuminosity:
		return Luminosity
	default:
		return SourceOver
	}
}

// SourceOver composites src over dst.
//
// Formula (straight alpha):
//
//	Ao = As + Ad*(1-As)
//	Co = (Cs*As + Cd*Ad*(1-As)) / Ao
func SourceOver(dst, src color.NRGBA, coverage float64) color.NRGBA {
	srcA := unit(src.A) * clamp01(coverage)
	if srcA <= 0 {
		return dst
	}
	dstA := unit(dst.A)
	invSrcA := 1 - srcA

	outA := srcA + dstA*invSrcA
	if outA <= 0 {
		return color.NRGBA{}
	}

	mix := func(s, d uint8) uint8 {
		return to8((float64(s)*srcA + float64(d)*dstA*invSrcA) / outA)
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: to8(outA * 255),
	}
}

// DestinationOut keeps the destination where the source is transparent.
// Source colour channels are ignored.
func DestinationOut(dst, src color.NRGBA, coverage float64) color.NRGBA {
	srcA := unit(src.A) * clamp01(coverage)
	if srcA <= 0 {
		return dst
	}
	a := to8(float64(dst.A) * (1 - srcA))
	if a == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{R: dst.R, G: dst.G, B: dst.B, A: a}
}

// Multiply composites src onto dst with B(cb, cs) = cb*cs.
func Multiply(dst, src color.NRGBA, coverage float64) color.NRGBA {
	return separable(dst, src, coverage, func(cb, cs float64) float64 {
		return cb * cs
	})
}

// Screen composites src onto dst with B(cb, cs) = cb + cs - cb*cs.
func Screen(dst, src color.NRGBA, coverage float64) color.NRGBA {
	return separable(dst, src, coverage, func(cb, cs float64) float64 {
		return cb + cs - cb*cs
	})
}

// separable applies the W3C general formula for separable blend modes:
//
//	Cs' = (1-Ab)*Cs + Ab*B(Cb, Cs)
//	Co  = (As*Cs' + Ab*Cb*(1-As)) / Ao
func separable(dst, src color.NRGBA, coverage float64, b func(cb, cs float64) float64) color.NRGBA {
	srcA := unit(src.A) * clamp01(coverage)
	if srcA <= 0 {
		return dst
	}
	dstA := unit(dst.A)
	invSrcA := 1 - srcA

	outA := srcA + dstA*invSrcA
	if outA <= 0 {
		return color.NRGBA{}
	}

	mix := func(s, d uint8) uint8 {
		cs, cb := unit(s), unit(d)
		blended := (1-dstA)*cs + dstA*b(cb, cs)
		return to8((srcA*blended + dstA*cb*invSrcA) / outA * 255)
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: to8(outA * 255),
	}
}
