package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [vtt_files...]",
	Short: "Merge partial WebVTT transcripts into one document",
	Long: `Merge partial WebVTT transcripts into a single document ordered by
start time.

Each fragment can carry an offset that shifts its cues onto the full
recording's timeline before merging. Offsets are given in seconds or
as timestamps, comma-separated, one per input file.

Examples:
  transcribe merge part1.vtt part2.vtt -o full.vtt
  transcribe merge part1.vtt part2.vtt --offsets 0,1200
  transcribe merge a.vtt b.vtt c.vtt --offsets 0,20:00,40:00`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().
		String("offsets", "", "Comma-separated offset per input file (seconds or timestamps)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	offsetsStr, _ := cmd.Flags().GetString("offsets")
	outputPath, _ := cmd.Flags().GetString("output")

	offsets, err := parseOffsets(offsetsStr, len(args))
	if err != nil {
		return err
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		outputPath = baseName + ".merged.vtt"
	}

	logger.Infow("Merging transcripts",
		"fragments", len(args),
		"output", outputPath,
	)

	fragments := make([]vtt.Fragment, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fragments[i] = vtt.Fragment{
			Text:   string(data),
			Offset: offsets[i],
		}
	}

	merged, err := vtt.MergeDocuments(fragments)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(merged), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	cues, err := vtt.ParseDocument(merged)
	if err != nil {
		return fmt.Errorf("failed to parse merged document: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Transcripts merged successfully: %s\n", absOutput)
	fmt.Printf("  Fragments: %d\n", len(args))
	fmt.Printf("  Cues: %d\n", len(cues))

	return nil
}

// parseOffsets expands the comma-separated flag into one offset per file.
// An empty flag means every fragment already sits on the full timeline.
func parseOffsets(offsetsStr string, count int) ([]float64, error) {
	offsets := make([]float64, count)
	if strings.TrimSpace(offsetsStr) == "" {
		return offsets, nil
	}

	parts := strings.Split(offsetsStr, ",")
	if len(parts) != count {
		return nil, fmt.Errorf(
			"got %d offsets for %d files",
			len(parts),
			count,
		)
	}

	for i, part := range parts {
		offset, err := vtt.ParseTimestamp(part)
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q: %w", part, err)
		}
		offsets[i] = offset
	}

	return offsets, nil
}
