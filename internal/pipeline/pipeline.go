// Package pipeline drives one edit request end to end: decode the source
// once, obtain an enhanced prompt from the analysis collaborator (or fall
// back to the raw instruction), then compose the requested variants
// strictly in index order. The propagation policy downstream of a
// successful decode is degrade-don't-abort: enhancement failures and
// per-variant render failures produce substitutes, never missing results.
package pipeline

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/promptbrush/promptbrush/internal/compose"
	"github.com/promptbrush/promptbrush/internal/raster"
	"github.com/promptbrush/promptbrush/internal/surface"
)

// Enhancer is the external text-analysis collaborator. It receives the
// decoded source and the raw instruction and returns a richer description
// of the requested edit. At most one attempt is made per request; any
// error degrades to the verbatim instruction.
type Enhancer interface {
	Enhance(ctx context.Context, src *raster.SourceImage, instruction string) (string, error)
}

// state tracks where a run is in its lifecycle. Purely observational:
// transitions are logged, never branched on externally.
type state int

const (
	stateIdle state = iota
	stateDecoding
	stateAwaitingEnhancement
	stateComposing
	stateDone
	stateErrored
)

func (s state) String() string {
	switch s {
	case stateDecoding:
		return "decoding"
	case stateAwaitingEnhancement:
		return "awaiting-enhancement"
	case stateComposing:
		return "composing"
	case stateDone:
		return "done"
	case stateErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Driver runs edit requests. One Driver serves one edit session; it is not
// safe for overlapping runs and rejects them with ErrBusy.
type Driver struct {
	enhancer Enhancer
	rng      *rand.Rand
	busy     bool

	// composeVariant is swappable so failure handling can be exercised
	// without a surface that actually breaks mid-draw.
	composeVariant func(s *surface.Surface, prompt string, opts compose.Options, idx int, rng *rand.Rand) ([]byte, error)
}

// Option configures a Driver.
type Option func(*Driver)

// WithSeed pins the driver's randomness source, making the random-tint
// default effect and balloon text color reproducible.
func WithSeed(seed int64) Option {
	return func(d *Driver) { d.rng = rand.New(rand.NewSource(seed)) }
}

// NewDriver creates a driver. A nil enhancer runs fully offline: the raw
// instruction is used verbatim as the enhanced prompt.
func NewDriver(enhancer Enhancer, opts ...Option) *Driver {
	d := &Driver{
		enhancer:       enhancer,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		composeVariant: compose.Variant,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes one edit request against the given encoded image bytes and
// returns exactly req.VariantCount results in index order. Single-threaded
// by design: pixel work is sequential, and the only suspension point is
// the enhancement call.
func (d *Driver) Run(ctx context.Context, imageData []byte, req EditRequest) ([]VariantResult, error) {
	if d.busy {
		return nil, ErrBusy
	}
	d.busy = true
	defer func() { d.busy = false }()

	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	start := time.Now()

	if err := req.Validate(); err != nil {
		logger.Error().Err(err).Str("state", stateErrored.String()).Msg("Edit request rejected")
		return nil, err
	}
	if len(imageData) == 0 {
		err := &InputError{Reason: "no image selected"}
		logger.Error().Err(err).Str("state", stateErrored.String()).Msg("Edit request rejected")
		return nil, err
	}

	logger.Info().
		Str("state", stateDecoding.String()).
		Int("image_bytes", len(imageData)).
		Int("variants", req.VariantCount).
		Msg("Edit request started")

	src, err := raster.Decode(imageData)
	if err != nil {
		logger.Error().Err(err).Str("state", stateErrored.String()).Msg("Source image decode failed")
		return nil, &FatalError{Err: err}
	}

	logger.Info().Str("state", stateAwaitingEnhancement.String()).Msg("Requesting prompt enhancement")
	prompt := d.enhancePrompt(ctx, logger, src, req.Instruction)

	opts := compose.Options{Title: req.Title, Style: req.Style}
	results := make([]VariantResult, 0, req.VariantCount)

	for i := 0; i < req.VariantCount; i++ {
		logger.Debug().Str("state", stateComposing.String()).Int("variant", i).Msg("Composing variant")

		data, err := d.composeVariant(src.NewSurface(), prompt, opts, i, d.rng)
		if err != nil {
			// Degrade, don't abort: substitute the minimal variant so
			// the count contract holds.
			logger.Warn().Err(err).Int("variant", i).Msg("Variant composition failed, substituting fallback")
			data, err = compose.Fallback(src.NewSurface(), i, d.rng)
			if err != nil {
				logger.Error().Err(err).Int("variant", i).Str("state", stateErrored.String()).
					Msg("Fallback variant failed")
				return nil, &FatalError{Err: err}
			}
		}

		results = append(results, VariantResult{
			Data:       data,
			MIME:       raster.OutputMIME,
			Index:      i,
			PromptEcho: prompt,
		})
	}

	logger.Info().
		Str("state", stateDone.String()).
		Int("results", len(results)).
		Dur("duration", time.Since(start)).
		Msg("Edit request complete")

	return results, nil
}

// enhancePrompt performs the single enhancement attempt. Unreachability of
// the collaborator degrades quality, not availability: every failure path
// returns the raw instruction.
func (d *Driver) enhancePrompt(ctx context.Context, logger zerolog.Logger, src *raster.SourceImage, instruction string) string {
	if d.enhancer == nil {
		logger.Debug().Msg("No enhancer configured, using instruction verbatim")
		return instruction
	}

	enhanced, err := d.enhancer.Enhance(ctx, src, instruction)
	if err != nil {
		logger.Warn().Err(err).Msg("Prompt enhancement unavailable, using instruction verbatim")
		return instruction
	}
	if enhanced == "" {
		logger.Warn().Msg("Prompt enhancement returned empty text, using instruction verbatim")
		return instruction
	}

	logger.Debug().Int("enhanced_length", len(enhanced)).Msg("Prompt enhancement received")
	return enhanced
}
