package artwork

import (
	"context"
	"fmt"
	"strings"
)

// interface for cover image generation
type Generator interface {
	Generate(ctx context.Context, description string) ([]byte, error)
}

// image generation service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

type Options struct {
	Model string
	Style string // extra art direction appended to the prompt
}

// creates Generator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Generator, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIGenerator(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiGenerator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported artwork provider: %s", provider)
	}
}

// long descriptions get cut before prompting; image APIs cap prompt length
const maxDescriptionLen = 2000

// BuildPrompt turns an episode description into an image prompt.
func BuildPrompt(opts Options, description string) string {
	description = strings.TrimSpace(description)
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen] + "..."
	}

	var sb strings.Builder

	sb.WriteString(
		"Design a square cover illustration for a recording about the following:\n\n",
	)
	sb.WriteString(description)
	sb.WriteString("\n\nNo text or lettering on the image.")

	if opts.Style != "" {
		sb.WriteString(" Art direction: ")
		sb.WriteString(opts.Style)
	}

	return sb.String()
}
