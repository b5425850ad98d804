package transcribe

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/krasnoperov/transcribe/internal/media"
	"github.com/krasnoperov/transcribe/internal/vtt"
)

// implements Transcriber interface using Google Gemini
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiTranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiTranscriber, error) {
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

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file
func (t *GeminiTranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	var cues []vtt.Cue

	err := withRetry(ctx, t.options, func(ctx context.Context) error {
		uploadedFile, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
		if err != nil {
			return fmt.Errorf("failed to upload audio file: %w", err)
		}
		defer func() {
			_, _ = t.client.Files.Delete(ctx, uploadedFile.Name, nil)
		}()

		parts := []*genai.Part{
			genai.NewPartFromText(t.buildTranscriptionPrompt()),
			genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
		}
		contents := []*genai.Content{
			genai.NewContentFromParts(parts, genai.RoleUser),
		}

		result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}

		text := responseText(result)
		if text == "" {
			return fmt.Errorf("no text in Gemini response")
		}

		cues = MarkedTextToCues(stripFences(text))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(cues) == 0 {
		return nil, fmt.Errorf("transcript contained no cues")
	}

	duration, _ := media.ProbeDuration(ctx, audioPath)

	return &Result{
		Cues:     cues,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

// creates the prompt asking for a stamped plain-text transcript
func (t *GeminiTranscriber) buildTranscriptionPrompt() string {
	var sb strings.Builder

	sb.WriteString("Transcribe this audio. ")
	sb.WriteString("Write one line per sentence or phrase in the form [HH:MM:SS] Speaker Name: text, ")
	sb.WriteString("where the timestamp marks the moment the line starts. ")
	sb.WriteString("If you cannot tell who is speaking, leave out the speaker name and its colon. ")

	if t.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.Language))
	}

	if t.options.TranscriptLanguage != "" && t.options.TranscriptLanguage != "native" {
		sb.WriteString(fmt.Sprintf("Write the transcript in %s. ", t.options.TranscriptLanguage))
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY transcript lines, no markdown or commentary.")

	return sb.String()
}

// Close releases the Gemini client.
func (t *GeminiTranscriber) Close() error {
	// the genai client has no Close in the current SDK
	return nil
}

// collects the text parts of a generation response
func responseText(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

var fenceRegex = regexp.MustCompile("```[a-z]*\\s*")

// removes the markdown fences models sometimes wrap output in
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
