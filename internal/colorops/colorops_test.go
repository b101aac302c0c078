package colorops

import "testing"

// pixel builds a single-pixel RGBA buffer.
func pixel(r, g, b, a uint8) []uint8 {
	return []uint8{r, g, b, a}
}

func TestApplySepiaKnownPixel(t *testing.T) {
	// R' = 0.393·200 + 0.769·100 + 0.189·50 = 164.95 → 165
	// G' = 0.349·200 + 0.686·100 + 0.168·50 = 146.80 → 147
	// B' = 0.272·200 + 0.534·100 + 0.131·50 = 114.35 → 114
	pix := pixel(200, 100, 50, 255)
	ApplySepia(pix)

	want := pixel(165, 147, 114, 255)
	for i := range want {
		if pix[i] != want[i] {
			t.Errorf("channel %d = %d, want %d", i, pix[i], want[i])
		}
	}
}

func TestApplySepiaClampsToWhiteCeiling(t *testing.T) {
	// Pure white overflows every channel: R' would be 1.351·255 ≈ 344.
	pix := pixel(255, 255, 255, 255)
	ApplySepia(pix)

	if pix[0] != 255 {
		t.Errorf("R = %d, want clamped 255", pix[0])
	}
	// G' = 1.203·255 ≈ 307 → clamped
	if pix[1] != 255 {
		t.Errorf("G = %d, want clamped 255", pix[1])
	}
	// B' = 0.937·255 ≈ 239, under the ceiling, must not clamp
	if pix[2] != 239 {
		t.Errorf("B = %d, want 239", pix[2])
	}
}

func TestApplySepiaNotIdempotent(t *testing.T) {
	once := pixel(200, 100, 50, 255)
	twice := pixel(200, 100, 50, 255)
	ApplySepia(once)
	ApplySepia(twice)
	ApplySepia(twice)

	same := true
	for i := 0; i < 3; i++ {
		if once[i] != twice[i] {
			same = false
		}
	}
	if same {
		t.Error("applying sepia twice produced the same pixel as once; expected further desaturation")
	}
}

func TestApplySepiaPreservesAlpha(t *testing.T) {
	pix := pixel(10, 20, 30, 77)
	ApplySepia(pix)
	if pix[3] != 77 {
		t.Errorf("alpha = %d, want 77 (untouched)", pix[3])
	}
}

func TestApplyColorTintFactorTable(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantR   uint8
		wantG   uint8
		wantB   uint8
	}{
		{name: "index 0 warm red", index: 0, wantR: 120, wantG: 80, wantB: 80},
		{name: "index 1 cool blue", index: 1, wantR: 80, wantG: 80, wantB: 120},
		{name: "index 2 green", index: 2, wantR: 80, wantG: 120, wantB: 80},
		{name: "index 3 yellow", index: 3, wantR: 110, wantG: 110, wantB: 70},
		{name: "index 4 wraps to 0", index: 4, wantR: 120, wantG: 80, wantB: 80},
		{name: "index 7 wraps to 3", index: 7, wantR: 110, wantG: 110, wantB: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := pixel(100, 100, 100, 255)
			ApplyColorTint(pix, tt.index)
			if pix[0] != tt.wantR || pix[1] != tt.wantG || pix[2] != tt.wantB {
				t.Errorf("tint(%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.index, pix[0], pix[1], pix[2], tt.wantR, tt.wantG, tt.wantB)
			}
			if pix[3] != 255 {
				t.Errorf("alpha = %d, want 255 (untouched)", pix[3])
			}
		})
	}
}

func TestApplyColorTintClamps(t *testing.T) {
	pix := pixel(250, 250, 250, 255)
	ApplyColorTint(pix, 0) // R factor 1.2 → 300, must saturate
	if pix[0] != 255 {
		t.Errorf("R = %d, want clamped 255", pix[0])
	}
	if pix[1] != 200 || pix[2] != 200 {
		t.Errorf("G,B = %d,%d, want 200,200", pix[1], pix[2])
	}
}

func TestApplyColorTintDeterministic(t *testing.T) {
	a := pixel(37, 142, 209, 255)
	b := pixel(37, 142, 209, 255)
	ApplyColorTint(a, 2)
	ApplyColorTint(b, 2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated tint runs diverged at channel %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestTintFactors(t *testing.T) {
	r, g, b := TintFactors(1)
	if r != 0.8 || g != 0.8 || b != 1.2 {
		t.Errorf("TintFactors(1) = (%v,%v,%v), want (0.8,0.8,1.2)", r, g, b)
	}
}
