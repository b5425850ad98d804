package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krasnoperov/transcribe/internal/summarize"
	"github.com/krasnoperov/transcribe/internal/vtt"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [vtt_file]",
	Short: "Summarize a WebVTT transcript using AI",
	Long: `Summarize an existing WebVTT transcript into markdown.

The summary opens with a short description of the recording followed by the
main points in order. Speaker names from the transcript are kept.

Examples:
  transcribe summarize interview.vtt
  transcribe summarize talk.vtt --provider openai -o notes.md
  transcribe summarize meeting.vtt -l Russian`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().
		String("provider", "", "Summary provider (anthropic, openai, gemini)")
	summarizeCmd.Flags().
		StringP("api-key", "k", "", "API key (or set the provider's env var)")
	summarizeCmd.Flags().
		String("model", "", "Model to use for summarization (provider-specific default)")
	summarizeCmd.Flags().
		String("prompt", "", "Extra instructions for the summary")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	transcriptPath := args[0]
	ctx := context.Background()

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if providerStr == "" {
		providerStr = cfg.Summary.Provider
	}
	if model == "" {
		model = cfg.Summary.Model
	}
	if prompt == "" {
		prompt = cfg.Summary.Prompt
	}
	if language == "" {
		language = cfg.Summary.Language
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

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	cues, err := vtt.ParseDocument(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse transcript: %w", err)
	}
	if len(cues) == 0 {
		return fmt.Errorf("transcript contains no cues")
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(
			transcriptPath,
			filepath.Ext(transcriptPath),
		)
		outputPath = baseName + ".md"
	}

	logger.Infow("Summarizing transcript",
		"input", transcriptPath,
		"output", outputPath,
		"provider", providerStr,
		"cues", len(cues),
	)

	opts := summarize.Options{
		Language: language,
		Model:    model,
		Prompt:   prompt,
	}

	summarizer, err := summarize.Factory(
		ctx,
		summarize.Provider(providerStr),
		apiKey,
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	summary, err := summarizer.Summarize(ctx, cues)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(summary+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Summary written successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(cues))

	return nil
}
