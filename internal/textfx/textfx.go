// Package textfx renders styled title text onto a surface. Four styles are
// supported (plain, metallic, balloon, matrix), each built from the same
// pass sequence: shadow layer(s), outline/decoration, fill. Glyphs come
// from the embedded Go Bold face, sized at 8% of the surface's shorter
// dimension and centered horizontally on the anchor.
package textfx

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/promptbrush/promptbrush/internal/surface"
)

// FontSizeFraction is the title size relative to min(width, height).
const FontSizeFraction = 0.08

// Style selects the title rendering treatment.
type Style int

const (
	// StyleNone means no explicit style was requested; rendering falls
	// back to StylePlain when a title is present.
	StyleNone Style = iota
	StylePlain
	StyleMetallic
	StyleBalloon
	StyleMatrix
)

// ParseStyle maps a user-supplied style name onto a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StyleNone, nil
	case "plain":
		return StylePlain, nil
	case "metallic":
		return StyleMetallic, nil
	case "balloon":
		return StyleBalloon, nil
	case "matrix":
		return StyleMatrix, nil
	default:
		return StyleNone, fmt.Errorf("unknown text style %q (want none, plain, metallic, balloon, or matrix)", s)
	}
}

// String names the style for logging and flag help.
func (st Style) String() string {
	switch st {
	case StylePlain:
		return "plain"
	case StyleMetallic:
		return "metallic"
	case StyleBalloon:
		return "balloon"
	case StyleMatrix:
		return "matrix"
	default:
		return "none"
	}
}

var (
	fontOnce  sync.Once
	titleFont *opentype.Font
	fontErr   error
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		titleFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return titleFont, fontErr
}

// plainPalette is the deterministic 4-color fill palette for StylePlain,
// keyed by variant index mod 4.
var plainPalette = [4]color.NRGBA{
	{R: 255, G: 215, B: 0, A: 255},  // gold
	{R: 220, G: 60, B: 80, A: 255},  // crimson
	{R: 60, G: 180, B: 200, A: 255}, // turquoise
	{R: 240, G: 140, B: 40, A: 255}, // orange
}

// balloonPalette is the 5-color palette StyleBalloon picks from at random
// on every render. Documented non-determinism.
var balloonPalette = [5]color.NRGBA{
	{R: 255, G: 105, B: 180, A: 255}, // pink
	{R: 110, G: 190, B: 255, A: 255}, // sky blue
	{R: 255, G: 220, B: 70, A: 255},  // yellow
	{R: 140, G: 230, B: 90, A: 255},  // lime
	{R: 185, G: 120, B: 235, A: 255}, // purple
}

// RenderTitle draws text centered horizontally on (anchorX, anchorY) with
// the given style. StyleNone renders as StylePlain. The RNG feeds the
// balloon palette pick and the matrix noise scatter.
func RenderTitle(s *surface.Surface, text string, style Style, anchorX, anchorY int, variantIndex int, rng *rand.Rand) error {
	if text == "" {
		return fmt.Errorf("title text is empty")
	}

	size := FontSizeFraction * float64(min(s.Width(), s.Height()))
	f, err := loadFont()
	if err != nil {
		return fmt.Errorf("parse title font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create title face: %w", err)
	}
	defer face.Close()

	r := renderer{
		dst:  s.RGBA(),
		face: face,
		text: text,
		x:    anchorX,
		y:    anchorY,
		size: int(size),
	}

	switch style {
	case StyleMetallic:
		r.metallic()
	case StyleBalloon:
		r.balloon(rng)
	case StyleMatrix:
		r.matrix(rng)
	default:
		r.plain(variantIndex)
	}
	return nil
}

// renderer holds the shared pass state for one title render.
type renderer struct {
	dst  *image.RGBA
	face font.Face
	text string
	x, y int
	size int
}

// pass draws one copy of the text at an offset from the anchor, centered
// horizontally.
func (r *renderer) pass(dx, dy int, col color.Color) {
	d := font.Drawer{
		Dst:  r.dst,
		Src:  image.NewUniform(col),
		Face: r.face,
	}
	width := d.MeasureString(r.text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(r.x+dx) - width/2,
		Y: fixed.I(r.y + dy),
	}
	d.DrawString(r.text)
}

// outline draws the text at the 8 surrounding offsets of the given radius.
// Drawn before the fill so the fill sits on top, leaving a rim: the glyph
// stroke emulation used instead of a path stroker.
func (r *renderer) outline(radius int, col color.Color) {
	for dy := -radius; dy <= radius; dy += radius {
		for dx := -radius; dx <= radius; dx += radius {
			if dx == 0 && dy == 0 {
				continue
			}
			r.pass(dx, dy, col)
		}
	}
}

// plain: 2px drop shadow at 50% black, white 2px outline, then the
// variant-keyed palette fill.
func (r *renderer) plain(variantIndex int) {
	r.pass(2, 2, color.NRGBA{A: 128})
	r.outline(2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	r.pass(0, 0, plainPalette[((variantIndex%4)+4)%4])
}

// metallic: 8 receding shadow layers, a 1px white highlight, then a
// vertical silver-to-dark gradient fill masked through the glyphs.
func (r *renderer) metallic() {
	for k := 1; k <= 8; k++ {
		alpha := 0.3 * float64(9-k) / 9 // ~0.27 down to ~0.03
		r.pass(k, k, color.NRGBA{A: uint8(alpha * 255)})
	}
	r.pass(-1, -1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	grad := &surface.LinearGradient{
		X0: 0, Y0: float64(r.y - r.size), X1: 0, Y1: float64(r.y),
		Stops: []surface.Stop{
			{Offset: 0, Color: color.RGBA{R: 192, G: 192, B: 192, A: 255}},
			{Offset: 0.35, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
			{Offset: 0.7, Color: color.RGBA{R: 128, G: 128, B: 128, A: 255}},
			{Offset: 1, Color: color.RGBA{R: 64, G: 64, B: 64, A: 255}},
		},
	}
	r.gradientFill(grad)
}

// gradientFill renders the glyphs onto a scratch layer and composites each
// covered pixel with the gradient color, using glyph coverage as alpha.
func (r *renderer) gradientFill(grad surface.Pattern) {
	scratch := image.NewRGBA(r.dst.Rect)
	d := font.Drawer{
		Dst:  scratch,
		Src:  image.NewUniform(color.White),
		Face: r.face,
	}
	width := d.MeasureString(r.text)
	d.Dot = fixed.Point26_6{X: fixed.I(r.x) - width/2, Y: fixed.I(r.y)}
	d.DrawString(r.text)

	b := scratch.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := scratch.PixOffset(x, y)
			a := scratch.Pix[i+3]
			if a == 0 {
				continue
			}
			c := grad.ColorAt(float64(x), float64(y))
			draw.Draw(r.dst, image.Rect(x, y, x+1, y+1),
				image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}),
				image.Point{}, draw.Over)
		}
	}
}

// balloon: 3px shadow at 30% black, 3px dark-gray outline, and a fill
// chosen at random from the 5-color balloon palette.
func (r *renderer) balloon(rng *rand.Rand) {
	r.pass(3, 3, color.NRGBA{A: 77})
	r.outline(3, color.NRGBA{R: 64, G: 64, B: 64, A: 255})
	r.pass(0, 0, balloonPalette[rng.Intn(len(balloonPalette))])
}

// matrix: a soft green glow approximated by low-alpha offset passes, a
// pure green fill, then 20 random 2×2 green noise pixels scattered within
// one font-size of the anchor.
func (r *renderer) matrix(rng *rand.Rand) {
	glow := color.NRGBA{G: 255, A: 38}
	for _, radius := range []int{2, 4} {
		for dy := -radius; dy <= radius; dy += radius {
			for dx := -radius; dx <= radius; dx += radius {
				if dx == 0 && dy == 0 {
					continue
				}
				r.pass(dx, dy, glow)
			}
		}
	}
	r.pass(0, 0, color.NRGBA{G: 255, A: 255})

	green := image.NewUniform(color.NRGBA{G: 255, A: 255})
	for i := 0; i < 20; i++ {
		nx := r.x + rng.Intn(2*r.size+1) - r.size
		ny := r.y + rng.Intn(2*r.size+1) - r.size
		draw.Draw(r.dst, image.Rect(nx, ny, nx+2, ny+2).Intersect(r.dst.Rect),
			green, image.Point{}, draw.Over)
	}
}
