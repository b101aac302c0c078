package surface

import (
	"image/color"
	"math"
)

// Pattern yields a color for a point on the surface. Gradients implement
// Pattern; the sampled alpha channel is treated as per-pixel opacity by
// FillPattern.
type Pattern interface {
	ColorAt(x, y float64) color.RGBA
}

// Stop is one color stop of a gradient, at an offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// LinearGradient interpolates color stops along the segment (x0,y0)-(x1,y1).
// Points beyond the segment clamp to the nearest end stop.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// ColorAt projects (x, y) onto the gradient axis and samples the stops.
func (g *LinearGradient) ColorAt(x, y float64) color.RGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return sampleStops(g.Stops, 0)
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / lenSq
	return sampleStops(g.Stops, t)
}

// RadialGradient interpolates color stops from a center point out to Radius.
type RadialGradient struct {
	CX, CY float64
	Radius float64
	Stops  []Stop
}

// ColorAt samples the stops by distance from the center over the radius.
func (g *RadialGradient) ColorAt(x, y float64) color.RGBA {
	if g.Radius <= 0 {
		return sampleStops(g.Stops, 0)
	}
	d := math.Hypot(x-g.CX, y-g.CY)
	return sampleStops(g.Stops, d/g.Radius)
}

// sampleStops interpolates between the two stops surrounding t.
// t clamps to [0, 1]; stops must be ordered by offset.
func sampleStops(stops []Stop, t float64) color.RGBA {
	if len(stops) == 0 {
		return color.RGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t > stops[i].Offset {
			continue
		}
		lo, hi := stops[i-1], stops[i]
		span := hi.Offset - lo.Offset
		if span == 0 {
			return hi.Color
		}
		f := (t - lo.Offset) / span
		return color.RGBA{
			R: lerp8(lo.Color.R, hi.Color.R, f),
			G: lerp8(lo.Color.G, hi.Color.G, f),
			B: lerp8(lo.Color.B, hi.Color.B, f),
			A: lerp8(lo.Color.A, hi.Color.A, f),
		}
	}
	return last.Color
}

func lerp8(a, b uint8, f float64) uint8 {
	return clamp8(float64(a) + (float64(b)-float64(a))*f)
}
