package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krasnoperov/transcribe/internal/artwork"
)

var coverCmd = &cobra.Command{
	Use:   "cover [summary_file]",
	Short: "Generate cover art from a summary using AI",
	Long: `Generate a square cover image from a markdown or plain-text summary.

The summary is turned into an image prompt and the generated image is written
as a PNG next to the summary.

Examples:
  transcribe cover interview.md
  transcribe cover talk.md --style "flat vector, muted colors"
  transcribe cover notes.md --provider gemini -o cover.png`,
	Args: cobra.ExactArgs(1),
	RunE: runCover,
}

func init() {
	rootCmd.AddCommand(coverCmd)

	coverCmd.Flags().
		String("provider", "", "Artwork provider (openai, gemini)")
	coverCmd.Flags().
		StringP("api-key", "k", "", "API key (or set the provider's env var)")
	coverCmd.Flags().
		String("model", "", "Model to use for image generation (provider-specific default)")
	coverCmd.Flags().
		String("style", "", "Art direction appended to the image prompt")
}

func runCover(cmd *cobra.Command, args []string) error {
	summaryPath := args[0]
	ctx := context.Background()

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	style, _ := cmd.Flags().GetString("style")
	outputPath, _ := cmd.Flags().GetString("output")

	if providerStr == "" {
		providerStr = cfg.Artwork.Provider
	}
	if model == "" {
		model = cfg.Artwork.Model
	}
	if style == "" {
		style = cfg.Artwork.Style
	}

	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(providerStr))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(providerStr),
		)
	}

	description, err := os.ReadFile(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to read summary: %w", err)
	}
	if strings.TrimSpace(string(description)) == "" {
		return fmt.Errorf("summary file is empty: %s", summaryPath)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(summaryPath, filepath.Ext(summaryPath))
		outputPath = baseName + ".png"
	}

	logger.Infow("Generating cover art",
		"input", summaryPath,
		"output", outputPath,
		"provider", providerStr,
	)

	opts := artwork.Options{
		Model: model,
		Style: style,
	}

	generator, err := artwork.Factory(
		ctx,
		artwork.Provider(providerStr),
		apiKey,
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	image, err := generator.Generate(ctx, string(description))
	if err != nil {
		return fmt.Errorf("image generation failed: %w", err)
	}

	if err := os.WriteFile(outputPath, image, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Cover generated successfully: %s\n", absOutput)
	fmt.Printf("  Size: %d bytes\n", len(image))

	return nil
}
