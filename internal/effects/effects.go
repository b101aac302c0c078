// Package effects implements the compositing overlays layered onto each
// variant: brightness and darkness washes, the cheap multi-sample blur,
// the vignette and light-ray gradients, and the random tint that serves
// as a default when no keyword-driven effect applies.
package effects

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/promptbrush/promptbrush/internal/colorops"
	"github.com/promptbrush/promptbrush/internal/surface"
)

// Kind identifies one of the variant-indexed default effects.
type Kind int

const (
	KindVignette Kind = iota
	KindLightRays
	KindSepia
	KindRandomTint
)

// String names the effect for logging.
func (k Kind) String() string {
	switch k {
	case KindVignette:
		return "vignette"
	case KindLightRays:
		return "light-rays"
	case KindSepia:
		return "sepia"
	default:
		return "random-tint"
	}
}

// DefaultEffect maps a variant index onto the always-applied effect:
// vignette, light rays, and sepia for indices 0–2 (mod 4), random tint
// otherwise.
func DefaultEffect(variantIndex int) Kind {
	switch m := variantIndex % 4; m {
	case 0:
		return KindVignette
	case 1:
		return KindLightRays
	case 2:
		return KindSepia
	default:
		return KindRandomTint
	}
}

// washAlpha is the shared opacity ramp for the brightness and darkness
// washes: 0.10 for variant 0, stepping up 0.05 per index.
func washAlpha(variantIndex int) float64 {
	return 0.1 + 0.05*float64(variantIndex)
}

// BrightnessWash screen-blends a white fill over the surface.
func BrightnessWash(s *surface.Surface, variantIndex int) {
	s.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255}, washAlpha(variantIndex), surface.BlendScreen)
}

// DarknessWash multiply-blends a black fill over the surface.
func DarknessWash(s *surface.Surface, variantIndex int) {
	s.Fill(color.RGBA{A: 255}, washAlpha(variantIndex), surface.BlendMultiply)
}

// CheapBlur redraws the surface onto itself at offsets of 1, 2 and 3
// pixels along each axis at 30% opacity. Approximates a box blur; each
// pass accumulates onto the previous one.
func CheapBlur(s *surface.Surface) {
	for _, off := range []int{1, 2, 3} {
		s.DrawSelfOffset(off, 0, 0.3)
		s.DrawSelfOffset(-off, 0, 0.3)
		s.DrawSelfOffset(0, off, 0.3)
		s.DrawSelfOffset(0, -off, 0.3)
	}
}

// Vignette darkens toward the edges: a radial gradient from a transparent
// center to 30% black at radius max(width, height)/2, alpha-composited.
func Vignette(s *surface.Surface) {
	w, h := float64(s.Width()), float64(s.Height())
	r := w
	if h > r {
		r = h
	}
	g := &surface.RadialGradient{
		CX: w / 2, CY: h / 2, Radius: r / 2,
		Stops: []surface.Stop{
			{Offset: 0, Color: color.RGBA{}},
			{Offset: 1, Color: color.RGBA{A: 77}}, // 30% black
		},
	}
	s.FillPattern(g, surface.BlendSourceOver)
}

// LightRays screen-blends a diagonal gradient that peaks at 10% white
// halfway along the surface diagonal.
func LightRays(s *surface.Surface) {
	w, h := float64(s.Width()), float64(s.Height())
	g := &surface.LinearGradient{
		X0: 0, Y0: 0, X1: w, Y1: h,
		Stops: []surface.Stop{
			{Offset: 0, Color: color.RGBA{}},
			{Offset: 0.5, Color: color.RGBA{R: 255, G: 255, B: 255, A: 26}}, // 10% white
			{Offset: 1, Color: color.RGBA{}},
		},
	}
	s.FillPattern(g, surface.BlendScreen)
}

// RandomTint overlay-blends a random fully-saturated color at 10% alpha.
// The hue comes from the injected RNG so tests can pin it; this effect is
// documented as non-deterministic in normal use.
func RandomTint(s *surface.Surface, rng *rand.Rand) {
	c := colorful.Hsv(rng.Float64()*360, 0.8, 0.9)
	r, g, b := c.RGB255()
	s.Fill(color.RGBA{R: r, G: g, B: b, A: 255}, 0.1, surface.BlendOverlay)
}

// ApplyDefault runs the variant-indexed default effect on the surface.
func ApplyDefault(s *surface.Surface, variantIndex int, rng *rand.Rand) {
	switch DefaultEffect(variantIndex) {
	case KindVignette:
		Vignette(s)
	case KindLightRays:
		LightRays(s)
	case KindSepia:
		colorops.ApplySepia(s.Pix())
	default:
		RandomTint(s, rng)
	}
}
