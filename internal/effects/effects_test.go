package effects

import (
	"math/rand"
	"testing"

	"github.com/promptbrush/promptbrush/internal/surface"
)

func graySurface(w, h int, level uint8) *surface.Surface {
	s := surface.New(w, h)
	pix := s.Pix()
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = level
		pix[i+1] = level
		pix[i+2] = level
		pix[i+3] = 255
	}
	return s
}

func TestDefaultEffectSelection(t *testing.T) {
	tests := []struct {
		index int
		want  Kind
	}{
		{0, KindVignette},
		{1, KindLightRays},
		{2, KindSepia},
		{3, KindRandomTint},
		{4, KindVignette},
		{5, KindLightRays},
		{7, KindRandomTint},
	}
	for _, tt := range tests {
		if got := DefaultEffect(tt.index); got != tt.want {
			t.Errorf("DefaultEffect(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestBrightnessWashAlphaRamp(t *testing.T) {
	tests := []struct {
		index int
		want  uint8
	}{
		{0, 116}, // 100 + 155·0.10
		{1, 123}, // 100 + 155·0.15
		{2, 131}, // 100 + 155·0.20
		{3, 139}, // 100 + 155·0.25
	}
	for _, tt := range tests {
		s := graySurface(2, 2, 100)
		BrightnessWash(s, tt.index)
		if got := s.Pix()[0]; got != tt.want {
			t.Errorf("BrightnessWash index %d: R = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestDarknessWashAlphaRamp(t *testing.T) {
	tests := []struct {
		index int
		want  uint8
	}{
		{0, 90}, // 100·0.90
		{2, 80}, // 100·0.80
	}
	for _, tt := range tests {
		s := graySurface(2, 2, 100)
		DarknessWash(s, tt.index)
		if got := s.Pix()[0]; got != tt.want {
			t.Errorf("DarknessWash index %d: R = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestVignetteDarkensEdgesNotCenter(t *testing.T) {
	s := graySurface(101, 101, 100)
	Vignette(s)

	center := s.RGBA().RGBAAt(50, 50)
	if center.R != 100 {
		t.Errorf("center R = %d, want 100 (vignette is transparent at center)", center.R)
	}
	corner := s.RGBA().RGBAAt(0, 0)
	if corner.R >= 100 {
		t.Errorf("corner R = %d, want < 100 (30%% black at the edge)", corner.R)
	}
}

func TestLightRaysBrightensDiagonal(t *testing.T) {
	s := graySurface(100, 100, 100)
	LightRays(s)

	mid := s.RGBA().RGBAAt(50, 50)
	if mid.R <= 100 {
		t.Errorf("diagonal midpoint R = %d, want > 100", mid.R)
	}
	origin := s.RGBA().RGBAAt(0, 0)
	if origin.R != 100 {
		t.Errorf("origin R = %d, want 100 (gradient is transparent at the ends)", origin.R)
	}
}

func TestCheapBlurSoftensEdge(t *testing.T) {
	// Left half black, right half white; the boundary should end up
	// somewhere in between after the multi-sample redraw.
	s := surface.New(10, 10)
	pix := s.Pix()
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			i := (y*10 + x) * 4
			v := uint8(0)
			if x >= 5 {
				v = 255
			}
			pix[i+0], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 255
		}
	}

	CheapBlur(s)

	edge := s.RGBA().RGBAAt(4, 5)
	if edge.R == 0 || edge.R == 255 {
		t.Errorf("boundary pixel R = %d, want an intermediate value", edge.R)
	}
}

func TestRandomTintSeededDeterminism(t *testing.T) {
	a := graySurface(8, 8, 100)
	b := graySurface(8, 8, 100)
	RandomTint(a, rand.New(rand.NewSource(42)))
	RandomTint(b, rand.New(rand.NewSource(42)))

	ap, bp := a.Pix(), b.Pix()
	for i := range ap {
		if ap[i] != bp[i] {
			t.Fatalf("same seed diverged at byte %d: %d vs %d", i, ap[i], bp[i])
		}
	}
}

func TestRandomTintChangesPixels(t *testing.T) {
	s := graySurface(8, 8, 100)
	RandomTint(s, rand.New(rand.NewSource(1)))

	pix := s.Pix()
	changed := false
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 100 || pix[i+1] != 100 || pix[i+2] != 100 {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("random tint left the surface untouched")
	}
}

func TestApplyDefaultSepia(t *testing.T) {
	s := graySurface(2, 2, 100)
	ApplyDefault(s, 2, rand.New(rand.NewSource(1)))

	// Gray 100 through the sepia matrix: (135, 120, 94).
	pix := s.Pix()
	if pix[0] != 135 || pix[1] != 120 || pix[2] != 94 {
		t.Errorf("sepia default = (%d,%d,%d), want (135,120,94)", pix[0], pix[1], pix[2])
	}
}

func TestApplyDefaultDeterministicForFixedEffects(t *testing.T) {
	for _, idx := range []int{0, 1, 2} {
		a := graySurface(20, 20, 100)
		b := graySurface(20, 20, 100)
		ApplyDefault(a, idx, rand.New(rand.NewSource(1)))
		ApplyDefault(b, idx, rand.New(rand.NewSource(2)))

		ap, bp := a.Pix(), b.Pix()
		for i := range ap {
			if ap[i] != bp[i] {
				t.Fatalf("default effect %d depends on the RNG at byte %d", idx, i)
			}
		}
	}
}
