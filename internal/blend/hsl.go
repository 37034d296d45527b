// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

import "image/color"

// Non-separable blend modes (Hue, Saturation, Color, Luminosity) per W3C
// Compositing and Blending Level 1, section 8. They operate on the whole
// RGB triplet rather than on individual channels.

type rgb struct{ r, g, b float64 }

func toRGB(c color.NRGBA) rgb {
	return rgb{unit(c.R), unit(c.G), unit(c.B)}
}

// lum returns the luminance with BT.601 coefficients.
func lum(c rgb) float64 {
	return 0.30*c.r + 0.59*c.g + 0.11*c.b
}

// sat returns max - min of the components.
func sat(c rgb) float64 {
	return max(c.r, c.g, c.b) - min(c.r, c.g, c.b)
}

// clipColor pulls out-of-range components towards the luminance.
func clipColor(c rgb) rgb {
	l := lum(c)
	n := min(c.r, c.g, c.b)
	x := max(c.r, c.g, c.b)
	if n < 0 {
		c = rgb{l + (c.r-l)*l/(l-n), l + (c.g-l)*l/(l-n), l + (c.b-l)*l/(l-n)}
	}
	if x > 1 {
		c = rgb{l + (c.r-l)*(1-l)/(x-l), l + (c.g-l)*(1-l)/(x-l), l + (c.b-l)*(1-l)/(x-l)}
	}
	return c
}

func setLum(c rgb, l float64) rgb {
	d := l - lum(c)
	return clipColor(rgb{c.r + d, c.g + d, c.b + d})
}

func setSat(c rgb, s float64) rgb {
	lo, mid, hi := sortRGB(&c.r, &c.g, &c.b)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return c
}

// sortRGB returns pointers to r, g, b ordered by value.
func sortRGB(r, g, b *float64) (lo, mid, hi *float64) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// Hue composites with B(Cb, Cs) = SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb)).
func Hue(dst, src color.NRGBA, coverage float64) color.NRGBA {
	return nonSeparable(dst, src, coverage, func(cb, cs rgb) rgb {
		return setLum(setSat(cs, sat(cb)), lum(cb))
	})
}

// Saturation composites with B(Cb, Cs) = SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb)).
func Saturation(dst, src color.NRGBA, coverage float64) color.NRGBA {
	return nonSeparable(dst, src, coverage, func(cb, cs rgb) rgb {
		return setLum(setSat(cb, sat(cs)), lum(cb))
	})
}

// Color composites with B(Cb, Cs) = SetLum(Cs, Lum(Cb)).
func Color(dst, src color.NRGBA, coverage float64) color.NRGBA {
	return nonSeparable(dst, src, coverage, func(cb, cs rgb) rgb {
		return setLum(cs, lum(cb))
	})
}

// Luminosity composites with B(Cb, Cs) = SetLum(Cb, Lum(Cs)).
func Luminosity(dst, src color.NRGBA, coverage float64) color.NRGBA {
	return nonSeparable(dst, src, coverage, func(cb, cs rgb) rgb {
		return setLum(cb, lum(cs))
	})
}

// nonSeparable is separable with a blend function over the whole triplet.
func nonSeparable(dst, src color.NRGBA, coverage float64, b func(cb, cs rgb) rgb) color.NRGBA {
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

	cs, cb := toRGB(src), toRGB(dst)
	bl := b(cb, cs)
	mix := func(s, d, blended float64) uint8 {
		v := (1-dstA)*s + dstA*blended
		return to8((srcA*v + dstA*d*invSrcA) / outA * 255)
	}
	return color.NRGBA{
		R: mix(cs.r, cb.r, bl.r),
		G: mix(cs.g, cb.g, bl.g),
		B: mix(cs.b, cb.b, bl.b),
		A: to8(outA * 255),
	}
}
