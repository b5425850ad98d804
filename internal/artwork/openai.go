package artwork

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Generator using OpenAI image generation
type OpenAIGenerator struct {
	client  openai.Client
	model   openai.ImageModel
	options Options
}

func NewOpenAIGenerator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := openai.ImageModel(opts.Model)
	if opts.Model == "" {
		model = openai.ImageModelDallE3
	}

	return &OpenAIGenerator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (g *OpenAIGenerator) Generate(
	ctx context.Context,
	description string,
) ([]byte, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required")
	}

	resp, err := g.client.Images.Generate(
		ctx,
		openai.ImageGenerateParams{
			Prompt:         BuildPrompt(g.options, description),
			Model:          g.model,
			ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
			Size:           openai.ImageGenerateParamsSize1024x1024,
			N:              openai.Int(1),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	b64 := resp.Data[0].B64JSON
	if b64 == "" {
		return nil, fmt.Errorf("no image data in OpenAI response")
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	return raw, nil
}

func (g *OpenAIGenerator) Close() error {
	return nil
}
