package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/krasnoperov/transcribe/internal/chunk"
	"github.com/krasnoperov/transcribe/internal/media"
	"github.com/krasnoperov/transcribe/internal/summarize"
	"github.com/krasnoperov/transcribe/internal/transcribe"
	"github.com/krasnoperov/transcribe/internal/vtt"
)

var runCmd = &cobra.Command{
	Use:   "run [media_file]",
	Short: "Transcribe an audio or video file into a WebVTT transcript",
	Long: `Transcribe the specified audio or video file into a WebVTT transcript.

The command accepts both audio files (mp3, wav, aac, etc.) and video files
(mp4, mkv, etc.). For video files, audio is automatically extracted first.

Long recordings are split into equal chunks and transcribed in parallel, then
the partial transcripts are shifted back onto the recording's timeline and
merged into one document.

Examples:
  transcribe run interview.mp4
  transcribe run podcast.mp3 --provider elevenlabs
  transcribe run lecture.mp4 --chunk-duration 600 --concurrency 5
  transcribe run meeting.mp3 --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().
		String("provider", "", "Transcription provider (openai, gemini, elevenlabs)")
	runCmd.Flags().
		StringP("api-key", "k", "", "API key (or set the provider's env var)")
	runCmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific default)")
	runCmd.Flags().
		IntP("chunk-duration", "d", 0, "Chunk duration in seconds for splitting audio")
	runCmd.Flags().
		Int("concurrency", 0, "Number of parallel transcription workers")
	runCmd.Flags().
		String("transcript-language", "", "Output language for the transcript (e.g., 'english', or 'native')")
	runCmd.Flags().
		String("prompt", "", "Extra context for the transcription model (names, jargon)")
	runCmd.Flags().
		Bool("summary", false, "Also write a markdown summary next to the transcript")
	runCmd.Flags().
		Bool("keep-audio", false, "Keep the prepared audio file next to the transcript")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	chunkDuration, _ := cmd.Flags().GetInt("chunk-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	transcriptLang, _ := cmd.Flags().GetString("transcript-language")
	prompt, _ := cmd.Flags().GetString("prompt")
	withSummary, _ := cmd.Flags().GetBool("summary")
	keepAudio, _ := cmd.Flags().GetBool("keep-audio")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if providerStr == "" {
		providerStr = cfg.Transcribe.Provider
	}
	if model == "" {
		model = cfg.Transcribe.Model
	}
	if chunkDuration <= 0 {
		chunkDuration = cfg.Transcribe.ChunkDuration
	}
	if concurrency <= 0 {
		concurrency = cfg.Transcribe.Concurrency
	}
	if transcriptLang == "" {
		transcriptLang = cfg.Transcribe.TranscriptLanguage
	}
	if prompt == "" {
		prompt = cfg.Transcribe.Prompt
	}
	if language == "" {
		language = cfg.Transcribe.Language
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

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = baseName + ".vtt"
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"output", outputPath,
		"provider", providerStr,
		"chunk_duration", chunkDuration,
		"concurrency", concurrency,
	)

	tempDir, err := os.MkdirTemp("", "transcribe-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	extractOpts := media.ExtractOptions{
		Format:     cfg.Audio.Codec,
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
		Bitrate:    cfg.Audio.Bitrate,
	}

	if media.IsVideoFile(mediaPath) {
		logger.Infow("Extracting audio from video")
	} else {
		logger.Infow("Compressing audio for transcription")
	}
	audioPath := filepath.Join(tempDir, "audio."+extractOpts.Format)
	if err := media.ExtractAudio(ctx, mediaPath, audioPath, extractOpts); err != nil {
		return fmt.Errorf("failed to prepare audio: %w", err)
	}

	duration, err := media.ProbeDuration(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("failed to get audio duration: %w", err)
	}

	logger.Infow("Audio prepared",
		"duration", vtt.FormatTimestamp(duration),
	)

	spans := chunk.Plan(duration, float64(chunkDuration))
	if len(spans) == 0 {
		return fmt.Errorf("audio appears to be empty: %s", audioPath)
	}

	var chunks []media.Chunk
	if len(spans) == 1 {
		// short recording, transcribe the prepared audio as-is
		chunks = []media.Chunk{{Path: audioPath, Index: 0, Span: spans[0]}}
	} else {
		logger.Infow("Splitting audio into chunks",
			"count", len(spans),
		)
		chunkDir := filepath.Join(tempDir, "chunks")
		chunks, err = media.CutChunks(ctx, audioPath, spans, chunkDir, concurrency)
		if err != nil {
			return fmt.Errorf("failed to split audio: %w", err)
		}
	}

	transcribeOpts := transcribe.Options{
		Language:           language,
		TranscriptLanguage: transcriptLang,
		Model:              model,
		Prompt:             prompt,
		RequestTimeout:     time.Duration(cfg.Transcribe.RequestTimeout) * time.Second,
		MaxAttempts:        cfg.Transcribe.MaxAttempts,
	}

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(providerStr),
		apiKey,
		transcribeOpts,
	)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"chunks", len(chunks),
		"concurrency", concurrency,
	)

	result, err := transcribe.TranscribeChunks(ctx, transcriber, chunks, concurrency)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	if len(chunks) > 1 {
		// chunk files are not needed once transcription is done
		_ = media.Cleanup(chunks)
	}

	logger.Infow("Transcription complete",
		"cues", len(result.Cues),
	)

	if err := os.WriteFile(
		outputPath,
		[]byte(vtt.SerializeDocument(result.Cues)),
		0o644,
	); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	if keepAudio {
		kept := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) +
			"." + extractOpts.Format
		if err := copyFile(audioPath, kept); err != nil {
			return fmt.Errorf("failed to keep audio: %w", err)
		}
		logger.Infow("Kept prepared audio", "path", kept)
	}

	var summaryPath string
	if withSummary {
		summaryPath, err = writeSummary(ctx, outputPath, result.Cues)
		if err != nil {
			return fmt.Errorf("summarization failed: %w", err)
		}
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Transcript generated successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(result.Cues))
	fmt.Printf("  Duration: %s\n", vtt.FormatTimestamp(result.Duration))
	if result.Language != "" {
		fmt.Printf("  Language: %s\n", result.Language)
	}
	if summaryPath != "" {
		fmt.Printf("  Summary: %s\n", summaryPath)
	}

	return nil
}

// writeSummary summarizes the cues and writes markdown next to the transcript.
func writeSummary(
	ctx context.Context,
	transcriptPath string,
	cues []vtt.Cue,
) (string, error) {
	provider := cfg.Summary.Provider

	apiKey := os.Getenv(apiKeyEnvVar(provider))
	if apiKey == "" {
		return "", fmt.Errorf(
			"API key is required: set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	opts := summarize.Options{
		Language: cfg.Summary.Language,
		Model:    cfg.Summary.Model,
		Prompt:   cfg.Summary.Prompt,
	}

	summarizer, err := summarize.Factory(
		ctx,
		summarize.Provider(provider),
		apiKey,
		opts,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create summarizer: %w", err)
	}

	logger.Infow("Summarizing transcript",
		"provider", provider,
	)

	summary, err := summarizer.Summarize(ctx, cues)
	if err != nil {
		return "", err
	}

	summaryPath := strings.TrimSuffix(
		transcriptPath,
		filepath.Ext(transcriptPath),
	) + ".md"
	if err := os.WriteFile(summaryPath, []byte(summary+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}

	return summaryPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	closeErr := out.Close()
	if err != nil {
		return err
	}
	return closeErr
}
