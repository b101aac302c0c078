// Package compose orchestrates a single variant: it scans the enhanced
// prompt for effect triggers, applies the matching transforms in fixed
// order, overlays optional title text, layers the variant-indexed default
// effect, and encodes the result. All trigger matching is case-insensitive
// substring search, a best-effort heuristic carried over for
// compatibility, not semantic analysis of the prompt.
package compose

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/promptbrush/promptbrush/internal/colorops"
	"github.com/promptbrush/promptbrush/internal/effects"
	"github.com/promptbrush/promptbrush/internal/raster"
	"github.com/promptbrush/promptbrush/internal/surface"
	"github.com/promptbrush/promptbrush/internal/textfx"
)

// Options carries the per-request settings the composer honors beyond the
// prompt text itself.
type Options struct {
	// Title, when non-empty, is overlaid onto every variant.
	Title string
	// Style selects the title treatment; StyleNone falls back to plain.
	Style textfx.Style
}

// Trigger keyword groups, matched independently against the lowercased
// prompt. All matching groups fire; they are not mutually exclusive.
var (
	tintWords   = []string{"color", "blue", "red"}
	brightWords = []string{"bright", "light"}
	darkWords   = []string{"dark", "shadow"}
	blurWords   = []string{"blur", "soft"}
)

func hasAny(prompt string, words []string) bool {
	for _, w := range words {
		if strings.Contains(prompt, w) {
			return true
		}
	}
	return false
}

// Variant composes one output image on the given surface and encodes it.
// The surface must be a fresh copy of the source; it is consumed by the
// call. A panic in any drawing step is converted into an error so the
// driver can substitute a fallback without losing the batch.
func Variant(s *surface.Surface, enhancedPrompt string, opts Options, variantIndex int, rng *rand.Rand) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("variant %d composition panicked: %v", variantIndex, r)
		}
	}()

	prompt := strings.ToLower(enhancedPrompt)

	if hasAny(prompt, tintWords) {
		colorops.ApplyColorTint(s.Pix(), variantIndex)
	}
	if hasAny(prompt, brightWords) {
		effects.BrightnessWash(s, variantIndex)
	}
	if hasAny(prompt, darkWords) {
		effects.DarknessWash(s, variantIndex)
	}
	if hasAny(prompt, blurWords) {
		effects.CheapBlur(s)
	}

	if opts.Title != "" {
		size := int(textfx.FontSizeFraction * float64(min(s.Width(), s.Height())))
		anchorX := s.Width() / 2
		anchorY := s.Height() - size
		if err := textfx.RenderTitle(s, opts.Title, opts.Style, anchorX, anchorY, variantIndex, rng); err != nil {
			return nil, fmt.Errorf("variant %d title render: %w", variantIndex, err)
		}
	}

	effects.ApplyDefault(s, variantIndex, rng)

	log.Debug().
		Int("variant", variantIndex).
		Str("default_effect", effects.DefaultEffect(variantIndex).String()).
		Bool("tint", hasAny(prompt, tintWords)).
		Bool("brighten", hasAny(prompt, brightWords)).
		Bool("darken", hasAny(prompt, darkWords)).
		Bool("blur", hasAny(prompt, blurWords)).
		Bool("title", opts.Title != "").
		Msg("Variant composed")

	return raster.EncodeJPEG(s.RGBA())
}

// Fallback produces the degraded substitute for a failed variant: the
// variant-indexed default effect applied directly to an unmodified copy.
// It keeps the result-count contract intact when Variant errors out.
func Fallback(s *surface.Surface, variantIndex int, rng *rand.Rand) ([]byte, error) {
	effects.ApplyDefault(s, variantIndex, rng)
	return raster.EncodeJPEG(s.RGBA())
}
