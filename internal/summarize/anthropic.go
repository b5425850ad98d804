package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

// implements Summarizer using Anthropic Claude
type AnthropicSummarizer struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

const summaryMaxTokens = 4096

func NewAnthropicSummarizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*AnthropicSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeSonnet4_5
	}

	return &AnthropicSummarizer{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (s *AnthropicSummarizer) Summarize(
	ctx context.Context,
	cues []vtt.Cue,
) (string, error) {
	if len(cues) == 0 {
		return "", fmt.Errorf("no cues to summarize")
	}

	prompt := BuildPrompt(s.options, FormatTranscript(cues))

	message, err := s.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     s.model,
			MaxTokens: summaryMaxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(prompt),
				),
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("no text in Anthropic response")
	}

	return cleanResponse(responseText), nil
}

func (s *AnthropicSummarizer) Close() error {
	return nil
}
