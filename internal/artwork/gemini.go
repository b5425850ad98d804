package artwork

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// implements Generator using Google Imagen
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiGenerator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiGenerator, error) {
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
		model = "imagen-3.0-generate-002"
	}

	return &GeminiGenerator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (g *GeminiGenerator) Generate(
	ctx context.Context,
	description string,
) ([]byte, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required")
	}

	resp, err := g.client.Models.GenerateImages(
		ctx,
		g.model,
		BuildPrompt(g.options, description),
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	image := resp.GeneratedImages[0].Image
	if image == nil || len(image.ImageBytes) == 0 {
		return nil, fmt.Errorf("no image data in Gemini response")
	}

	return image.ImageBytes, nil
}

func (g *GeminiGenerator) Close() error {
	return nil
}
