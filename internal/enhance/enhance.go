// Package enhance implements the text-analysis collaborator: a single
// Gemini call that rewrites the user's instruction into a richer
// description of the requested edit. The response is advisory free text:
// the composer only re-scans it with the same keyword matcher it applies
// to raw instructions, so a failed or weak enhancement costs quality, not
// availability.
package enhance

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/dominantcolor"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/promptbrush/promptbrush/internal/auth"
	"github.com/promptbrush/promptbrush/internal/raster"
)

// DefaultModelName is the Gemini model used for prompt enhancement.
// Can be overridden via the GEMINI_MODEL environment variable.
const DefaultModelName = "gemini-2.5-flash"

// systemInstruction steers the model toward restating concrete edit
// vocabulary, since the downstream matcher works on plain substrings.
const systemInstruction = `You are an assistant for a photo editing tool.
Given a photo and an editing instruction, rewrite the instruction as a
single richer paragraph describing the desired edit. Restate the concrete
visual qualities involved (color names, brightness, darkness, shadows,
blur, softness) in plain words. Do not describe edits the user did not
ask for. Respond with the rewritten instruction only, no preamble.`

// GetModelName resolves the model from GEMINI_MODEL or the default.
func GetModelName() string {
	if env := os.Getenv("GEMINI_MODEL"); env != "" {
		return env
	}
	return DefaultModelName
}

// Client wraps a Gemini client for enhancement calls.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates an enhancement client against the Gemini API. An
// empty model resolves through GetModelName.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = GetModelName()
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Validate makes a minimal API call to confirm the key works before the
// user waits on a real edit request.
func (c *Client) Validate(ctx context.Context) error {
	return auth.ValidateAPIKey(ctx, c.client, c.model)
}

// Enhance sends the (downscaled) source image and instruction to Gemini
// and returns the enhanced descriptive text. One attempt only; retries
// and recovery are the driver's concern, and its recovery is simply the
// verbatim instruction.
func (c *Client) Enhance(ctx context.Context, src *raster.SourceImage, instruction string) (string, error) {
	data, mime, err := src.ForUpload()
	if err != nil {
		return "", fmt.Errorf("failed to prepare image for analysis: %w", err)
	}

	prompt := buildPrompt(src, instruction)

	log.Info().
		Str("model", c.model).
		Int("image_bytes", len(data)).
		Int("instruction_length", len(instruction)).
		Msg("Sending image to Gemini for prompt enhancement")

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mime, Data: data}},
			{Text: prompt},
		},
	}}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("enhancement call failed: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("received empty response from Gemini API")
	}

	text := strings.TrimSpace(resp.Text())
	log.Info().
		Int("response_length", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Prompt enhancement complete")

	return text, nil
}

// buildPrompt assembles the user prompt: instruction first, then locally
// computed context: the image's dominant color and any EXIF worth
// mentioning. The context gives the model concrete vocabulary to restate.
func buildPrompt(src *raster.SourceImage, instruction string) string {
	var sb strings.Builder
	sb.WriteString("Editing instruction: ")
	sb.WriteString(instruction)
	sb.WriteString("\n")

	dom := dominantcolor.Find(src.NewSurface().RGBA())
	sb.WriteString(fmt.Sprintf("Dominant color of the photo: %s\n", dominantcolor.Hex(dom)))

	if meta, err := raster.ExtractMetadata(src.Bytes()); err == nil {
		if extra := meta.PromptContext(); extra != "" {
			sb.WriteString(extra)
		}
	}

	return sb.String()
}
