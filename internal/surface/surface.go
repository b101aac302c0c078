// Package surface provides the drawable pixel canvas the compositing and
// text layers render onto. A Surface wraps an RGBA raster and offers
// blend-mode fills, gradient composites, and offset self-draws: the
// primitive operations every variant effect is built from.
package surface

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is an addressable 2D RGBA canvas.
//
// All drawing operations mutate the surface in place. Callers that need to
// preserve the current pixels must Clone first; the pipeline's copy
// discipline guarantees each variant draws on its own surface.
type Surface struct {
	img *image.RGBA
}

// New creates a blank (transparent black) surface of the given size.
func New(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies src into a fresh surface. The source image is never
// retained, so later draws cannot reach back into it.
func FromImage(src image.Image) *Surface {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Surface{img: img}
}

// Clone returns an independent deep copy of the surface.
func (s *Surface) Clone() *Surface {
	dup := image.NewRGBA(s.img.Rect)
	copy(dup.Pix, s.img.Pix)
	return &Surface{img: dup}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// RGBA exposes the backing raster for encoding and text drawing.
func (s *Surface) RGBA() *image.RGBA { return s.img }

// Pix exposes the raw RGBA8 row-major pixel buffer for per-pixel transforms.
func (s *Surface) Pix() []uint8 { return s.img.Pix }

// Fill composites a solid color over the whole surface using the given
// blend mode at the given opacity. Alpha of the destination is preserved.
func (s *Surface) Fill(c color.RGBA, opacity float64, mode BlendMode) {
	pix := s.img.Pix
	sr, sg, sb := float64(c.R), float64(c.G), float64(c.B)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = blendChannel(float64(pix[i+0]), sr, opacity, mode)
		pix[i+1] = blendChannel(float64(pix[i+1]), sg, opacity, mode)
		pix[i+2] = blendChannel(float64(pix[i+2]), sb, opacity, mode)
	}
}

// FillPattern composites a pattern (typically a gradient) over the whole
// surface. Each pixel samples the pattern once; the sampled alpha acts as
// the per-pixel opacity under the given blend mode.
func (s *Surface) FillPattern(p Pattern, mode BlendMode) {
	w, h := s.Width(), s.Height()
	pix := s.img.Pix
	for y := 0; y < h; y++ {
		row := y * s.img.Stride
		for x := 0; x < w; x++ {
			c := p.ColorAt(float64(x), float64(y))
			if c.A == 0 {
				continue
			}
			opacity := float64(c.A) / 255
			i := row + x*4
			pix[i+0] = blendChannel(float64(pix[i+0]), float64(c.R), opacity, mode)
			pix[i+1] = blendChannel(float64(pix[i+1]), float64(c.G), opacity, mode)
			pix[i+2] = blendChannel(float64(pix[i+2]), float64(c.B), opacity, mode)
		}
	}
}

// DrawSelfOffset redraws the surface's current content onto itself shifted
// by (dx, dy) at the given opacity. Each call sees the result of earlier
// calls, matching a canvas drawn onto itself in sequence.
func (s *Surface) DrawSelfOffset(dx, dy int, opacity float64) {
	snap := image.NewRGBA(s.img.Rect)
	copy(snap.Pix, s.img.Pix)

	w, h := s.Width(), s.Height()
	pix := s.img.Pix
	for y := 0; y < h; y++ {
		sy := y - dy
		if sy < 0 || sy >= h {
			continue
		}
		for x := 0; x < w; x++ {
			sx := x - dx
			if sx < 0 || sx >= w {
				continue
			}
			di := y*s.img.Stride + x*4
			si := sy*snap.Stride + sx*4
			pix[di+0] = blendChannel(float64(pix[di+0]), float64(snap.Pix[si+0]), opacity, BlendSourceOver)
			pix[di+1] = blendChannel(float64(pix[di+1]), float64(snap.Pix[si+1]), opacity, BlendSourceOver)
			pix[di+2] = blendChannel(float64(pix[di+2]), float64(snap.Pix[si+2]), opacity, BlendSourceOver)
		}
	}
}

// FillRect composites a solid color over a rectangle, clipped to the surface.
func (s *Surface) FillRect(r image.Rectangle, c color.RGBA, opacity float64, mode BlendMode) {
	r = r.Intersect(s.img.Rect)
	pix := s.img.Pix
	sr, sg, sb := float64(c.R), float64(c.G), float64(c.B)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := y*s.img.Stride + x*4
			pix[i+0] = blendChannel(float64(pix[i+0]), sr, opacity, mode)
			pix[i+1] = blendChannel(float64(pix[i+1]), sg, opacity, mode)
			pix[i+2] = blendChannel(float64(pix[i+2]), sb, opacity, mode)
		}
	}
}
