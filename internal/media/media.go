package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/sync/errgroup"

	"github.com/krasnoperov/transcribe/internal/chunk"
)

// Chunk is one sliced piece of the source audio on disk, together with the
// span it covers on the recording's timeline.
type Chunk struct {
	Path  string
	Index int
	Span  chunk.Span
}

// settings for audio extraction and compression
type ExtractOptions struct {
	Format     string // output format (mp3, aac, wav, flac)
	SampleRate int    // sample rate in Hz
	Channels   int    // 1 = mono, 2 = stereo
	Bitrate    string // bitrate for lossy formats (e.g. "64k")
}

// JSON output from ffprobe
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration reports the length of a media file in seconds.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbeDuration(out.Bytes())
}

func parseProbeDuration(raw []byte) (float64, error) {
	var probe probeOutput
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w",
			probe.Format.Duration, err)
	}
	return seconds, nil
}

// ExtractAudio pulls the audio track out of any media file, resampling and
// transcoding it per opts. Audio-only inputs just get transcoded.
func ExtractAudio(
	ctx context.Context,
	inputPath, outputPath string,
	opts ExtractOptions,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"vn": "",              // no video
		"ar": opts.SampleRate, // sample rate
		"ac": opts.Channels,   // channels
		"y":  "",              // overwrite output
	}

	switch opts.Format {
	case "aac":
		kwargs["acodec"] = "aac"
	case "wav":
		kwargs["acodec"] = "pcm_s16le"
	case "flac":
		kwargs["acodec"] = "flac"
	default:
		kwargs["acodec"] = "libmp3lame"
	}
	if opts.Bitrate != "" && opts.Format != "wav" && opts.Format != "flac" {
		kwargs["b:a"] = opts.Bitrate
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}

	return nil
}

// CutChunks slices the audio file into one stream-copied piece per span.
// Slicing runs in parallel up to concurrency workers; the returned chunks
// are in span order regardless of which worker finished first.
func CutChunks(
	ctx context.Context,
	audioPath string,
	spans []chunk.Span,
	outputDir string,
	concurrency int,
) ([]Chunk, error) {
	if len(spans) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(audioPath)
	baseName := strings.TrimSuffix(filepath.Base(audioPath), ext)

	chunks := make([]Chunk, len(spans))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, span := range spans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			chunkPath := filepath.Join(
				outputDir,
				fmt.Sprintf("%s_chunk_%03d%s", baseName, i, ext),
			)

			kwargs := ffmpeg.KwArgs{
				"ss": span.Offset,
				"t":  span.Duration,
				"y":  "",
				"c":  "copy", // stream copy for speed
			}

			err := ffmpeg.Input(audioPath).
				Output(chunkPath, kwargs).
				OverWriteOutput().
				SetFfmpegPath(ffmpegPath).
				Run()
			if err != nil {
				return fmt.Errorf("failed to cut chunk %d: %w", i, err)
			}

			chunks[i] = Chunk{Path: chunkPath, Index: i, Span: span}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Cleanup removes chunk files, keeping the last error if several fail.
func Cleanup(chunks []Chunk) error {
	var lastErr error
	for _, c := range chunks {
		if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
			lastErr = err
		}
	}
	return lastErr
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm",
		".m4v", ".mpeg", ".mpg", ".3gp":
		return true
	}
	return false
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".aac", ".flac", ".ogg", ".m4a", ".wma", ".aiff":
		return true
	}
	return false
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
