package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

// interface for transcript summarization
type Summarizer interface {
	Summarize(ctx context.Context, cues []vtt.Cue) (string, error)
}

// summarization service provider
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

type Options struct {
	Language string // output language for the summary
	Model    string
	Prompt   string
}

// creates Summarizer based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Summarizer, error) {
	switch provider {
	case ProviderAnthropic:
		return NewAnthropicSummarizer(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAISummarizer(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiSummarizer(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported summary provider: %s", provider)
	}
}

// FormatTranscript renders cues as stamped transcript lines for the prompt.
func FormatTranscript(cues []vtt.Cue) string {
	var sb strings.Builder

	for _, c := range cues {
		sb.WriteString("[")
		sb.WriteString(vtt.FormatTimestamp(c.Start))
		sb.WriteString("] ")
		if c.Speaker != "" {
			sb.WriteString(c.Speaker)
			sb.WriteString(": ")
		}
		sb.WriteString(c.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildPrompt creates the summarization prompt for LLM providers
func BuildPrompt(opts Options, transcript string) string {
	var sb strings.Builder

	sb.WriteString("Summarize the following transcript of a recording.\n\n")

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString(
		"1. Start with one short paragraph saying what the recording is about.\n",
	)
	sb.WriteString(
		"2. Follow with a bulleted list of the main points, in the order they come up.\n",
	)
	sb.WriteString("3. Name the speakers where the transcript names them.\n")
	sb.WriteString("4. Do not invent content that is not in the transcript.\n")
	if opts.Language != "" {
		sb.WriteString(
			fmt.Sprintf("5. Write the summary in %s.\n", opts.Language),
		)
	}
	sb.WriteString("\n")

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt),
		)
	}

	sb.WriteString("Transcript:\n")
	sb.WriteString(transcript)

	sb.WriteString("\nOutput the summary as plain markdown only:")

	return sb.String()
}

// cleanResponse unwraps a summary the model returned as one fenced block,
// leaving any fences inside the summary alone.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
