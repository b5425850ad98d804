package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

// implements Summarizer using Google Gemini
type GeminiSummarizer struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiSummarizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiSummarizer{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (s *GeminiSummarizer) Summarize(
	ctx context.Context,
	cues []vtt.Cue,
) (string, error) {
	if len(cues) == 0 {
		return "", fmt.Errorf("no cues to summarize")
	}

	prompt := BuildPrompt(s.options, FormatTranscript(cues))

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				responseText += part.Text
			}
		}
		if responseText != "" {
			break
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("no text in Gemini response")
	}

	return cleanResponse(responseText), nil
}

func (s *GeminiSummarizer) Close() error {
	return nil
}
