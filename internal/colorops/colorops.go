// Package colorops implements the pure per-pixel color transforms: the
// variant-indexed multiplicative tint and the classic sepia matrix. All
// functions mutate the given RGBA8 buffer in place and never touch alpha;
// callers that need the original pixels must copy first.
package colorops

import "math"

// tintFactors are the four multiplicative RGB triples, selected by
// variant index mod 4: warm red, cool blue, green, and yellow.
var tintFactors = [4][3]float64{
	{1.2, 0.8, 0.8},
	{0.8, 0.8, 1.2},
	{0.8, 1.2, 0.8},
	{1.1, 1.1, 0.7},
}

// TintFactors returns the RGB multipliers used for the given variant index.
func TintFactors(variantIndex int) (r, g, b float64) {
	f := tintFactors[mod4(variantIndex)]
	return f[0], f[1], f[2]
}

// ApplyColorTint multiplies each pixel's channels by the variant-indexed
// factor triple, clamping to 255. Deterministic for a given index.
func ApplyColorTint(pix []uint8, variantIndex int) {
	f := tintFactors[mod4(variantIndex)]
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = clamp8(float64(pix[i+0]) * f[0])
		pix[i+1] = clamp8(float64(pix[i+1]) * f[1])
		pix[i+2] = clamp8(float64(pix[i+2]) * f[2])
	}
}

// ApplySepia applies the luminance-preserving sepia matrix:
//
//	R' = 0.393R + 0.769G + 0.189B
//	G' = 0.349R + 0.686G + 0.168B
//	B' = 0.272R + 0.534G + 0.131B
//
// each clamped to 255. Not idempotent: a second application desaturates
// further.
func ApplySepia(pix []uint8) {
	for i := 0; i+3 < len(pix); i += 4 {
		r := float64(pix[i+0])
		g := float64(pix[i+1])
		b := float64(pix[i+2])
		pix[i+0] = clamp8(0.393*r + 0.769*g + 0.189*b)
		pix[i+1] = clamp8(0.349*r + 0.686*g + 0.168*b)
		pix[i+2] = clamp8(0.272*r + 0.534*g + 0.131*b)
	}
}

// mod4 maps any (possibly negative) index onto [0, 3].
func mod4(i int) int {
	m := i % 4
	if m < 0 {
		m += 4
	}
	return m
}

// clamp8 rounds and saturates a channel value; overflow never wraps.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
