package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/promptbrush/promptbrush/internal/archive"
	"github.com/promptbrush/promptbrush/internal/auth"
	"github.com/promptbrush/promptbrush/internal/enhance"
	"github.com/promptbrush/promptbrush/internal/logging"
	"github.com/promptbrush/promptbrush/internal/pipeline"
	"github.com/promptbrush/promptbrush/internal/textfx"
)

// CLI flags
var (
	imageFlag    string
	promptFlag   string
	titleFlag    string
	styleFlag    string
	variantsFlag int
	outFlag      string
	zipFlag      bool
	offlineFlag  bool
	seedFlag     int64
	modelFlag    string
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "promptbrush",
	Short: "Prompt-driven local image variants",
	Long: `Promptbrush takes a photo and a natural-language editing instruction and
produces up to four styled variants using local filters: color tints, light
and dark washes, blur, sepia, vignettes, light rays, and optional title text.

The instruction is first sent to Gemini alongside the photo to obtain a
richer description of the requested edit; the description drives which local
filters apply. If the API is unreachable the instruction is used as-is; the
variants are always produced locally.

Examples:
  promptbrush -i photo.jpg -p "add warm red tones"
  promptbrush -i photo.jpg -p "bright and soft" -t "Summer '25" -s balloon -n 4
  promptbrush -i photo.jpg -p "darker, moodier" --zip -o ./out
  promptbrush -p "make it blue" --offline  # no API call; opens a file picker`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Source image (jpg, png, gif, webp); opens a file picker when omitted")
	rootCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Editing instruction (required)")
	rootCmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Optional title text overlaid on every variant")
	rootCmd.Flags().StringVarP(&styleFlag, "style", "s", "none", "Title style: none, plain, metallic, balloon, matrix")
	rootCmd.Flags().IntVarP(&variantsFlag, "variants", "n", 2, fmt.Sprintf("Number of variants to produce [1, %d]", pipeline.MaxVariantCount))
	rootCmd.Flags().StringVarP(&outFlag, "out", "o", ".", "Output directory")
	rootCmd.Flags().BoolVar(&zipFlag, "zip", false, "Bundle all variants into a single zip instead of separate files")
	rootCmd.Flags().BoolVar(&offlineFlag, "offline", false, "Skip the Gemini enhancement call entirely")
	rootCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Seed for the randomized effects (0 = time-based)")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", enhance.DefaultModelName, "Gemini model for prompt enhancement (overrides GEMINI_MODEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	ctx := context.Background()

	style, err := textfx.ParseStyle(styleFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid style flag")
	}

	imagePath := imageFlag
	if imagePath == "" {
		imagePath = pickImage()
	}
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", imagePath).Msg("Failed to read source image")
	}

	var enhancer pipeline.Enhancer
	if offlineFlag {
		log.Info().Msg("Offline mode: instruction will be used verbatim")
	} else {
		// The flag wins only when given explicitly; otherwise GEMINI_MODEL
		// (or the built-in default) decides.
		model := enhance.GetModelName()
		if cmd.Flags().Changed("model") {
			model = modelFlag
		}
		enhancer = initEnhancer(ctx, model)
	}

	var opts []pipeline.Option
	if seedFlag != 0 {
		opts = append(opts, pipeline.WithSeed(seedFlag))
	}
	driver := pipeline.NewDriver(enhancer, opts...)

	results, err := driver.Run(ctx, imageData, pipeline.EditRequest{
		Instruction:  promptFlag,
		Title:        titleFlag,
		Style:        style,
		VariantCount: variantsFlag,
	})
	if err != nil {
		var inputErr *pipeline.InputError
		if errors.As(err, &inputErr) {
			log.Fatal().Err(err).Msg("Request rejected")
		}
		log.Fatal().Err(err).Msg("Edit request failed")
	}

	if err := saveResults(results); err != nil {
		log.Fatal().Err(err).Msg("Failed to save results")
	}
}

// pickImage opens a native file picker when --image was not given.
func pickImage() string {
	selected, err := zenity.SelectFile(
		zenity.Title("Select an image to edit"),
		zenity.FileFilters{
			{
				Name:     "Images",
				Patterns: []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp"},
			},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			log.Fatal().Msg("No image selected")
		}
		log.Fatal().Err(err).Msg("File picker failed")
	}
	return selected
}

// initEnhancer builds the Gemini enhancement client. Failures here are
// fatal only because they are configuration problems (missing key);
// runtime API failures later degrade instead.
func initEnhancer(ctx context.Context, model string) pipeline.Enhancer {
	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to retrieve API key (use --offline to skip the API)")
	}

	client, err := enhance.NewClient(ctx, apiKey, model)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	if err := client.Validate(ctx); err != nil {
		log.Fatal().Err(err).Msg("API key validation failed (use --offline to skip the API)")
	}
	return client
}

// saveResults writes the variants either as individual JPEGs or as one
// zstd-compressed zip bundle.
func saveResults(results []pipeline.VariantResult) error {
	if err := os.MkdirAll(outFlag, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if zipFlag {
		data, err := archive.BundleVariants(results)
		if err != nil {
			return err
		}
		path := filepath.Join(outFlag, "variants.zip")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Info().Str("path", path).Int("variants", len(results)).Msg("Variant bundle written")
		return nil
	}

	for _, res := range results {
		path := filepath.Join(outFlag, fmt.Sprintf("variant-%02d.jpg", res.Index))
		if err := os.WriteFile(path, res.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Info().Str("path", path).Int("bytes", len(res.Data)).Msg("Variant written")
	}
	return nil
}
