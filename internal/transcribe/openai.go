package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/samber/lo"

	"github.com/krasnoperov/transcribe/internal/media"
	"github.com/krasnoperov/transcribe/internal/vtt"
)

// implements Transcriber interface using OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// segment from OpenAI Whisper verbose_json response
type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// word token from verbose_json when word granularity was requested
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Words    []whisperWord    `json:"words"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	duration, _ := media.ProbeDuration(ctx, audioPath)

	if t.shouldUseTranslation() {
		return t.transcribeWithTranslation(ctx, audioPath, duration)
	}

	return t.transcribeWithTimestamps(ctx, audioPath, duration)
}

func (t *OpenAITranscriber) shouldUseTranslation() bool {
	lang := strings.ToLower(strings.TrimSpace(t.options.TranscriptLanguage))
	return lang == "english" || lang == "en"
}

func (t *OpenAITranscriber) transcribeWithTranslation(
	ctx context.Context,
	audioPath string,
	duration float64,
) (*Result, error) {
	var rawJSON, text string

	err := withRetry(ctx, t.options, func(ctx context.Context) error {
		// the request body is consumed per attempt, so reopen the file
		file, err := os.Open(audioPath)
		if err != nil {
			return fmt.Errorf("failed to open audio file: %w", err)
		}
		defer file.Close()

		params := openai.AudioTranslationNewParams{
			File:           file,
			Model:          openai.AudioModel(t.model),
			ResponseFormat: openai.AudioTranslationNewParamsResponseFormatVerboseJSON,
		}
		if t.options.Prompt != "" {
			params.Prompt = openai.String(t.options.Prompt)
		}

		resp, err := t.client.Audio.Translations.New(ctx, params)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}
		rawJSON = resp.RawJSON()
		text = resp.Text
		return nil
	})
	if err != nil {
		return nil, err
	}

	cues, _, err := t.parseVerboseResponse(rawJSON, duration)
	if err != nil {
		fallback := strings.TrimSpace(text)
		if fallback == "" {
			return nil, err
		}
		cues = []vtt.Cue{{Start: 0, End: duration, Text: fallback}}
	}

	return &Result{
		Cues:     cues,
		Language: "en",
		Duration: duration,
	}, nil
}

func (t *OpenAITranscriber) transcribeWithTimestamps(
	ctx context.Context,
	audioPath string,
	duration float64,
) (*Result, error) {
	var rawJSON, text string

	err := withRetry(ctx, t.options, func(ctx context.Context) error {
		file, err := os.Open(audioPath)
		if err != nil {
			return fmt.Errorf("failed to open audio file: %w", err)
		}
		defer file.Close()

		params := openai.AudioTranscriptionNewParams{
			File:                   file,
			Model:                  openai.AudioModel(t.model),
			ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
			TimestampGranularities: []string{"segment", "word"},
		}
		if t.options.Language != "" {
			params.Language = openai.String(t.options.Language)
		}
		if t.options.Prompt != "" {
			params.Prompt = openai.String(t.options.Prompt)
		}

		resp, err := t.client.Audio.Transcriptions.New(ctx, params)
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}
		rawJSON = resp.RawJSON()
		text = resp.Text
		return nil
	})
	if err != nil {
		return nil, err
	}

	cues, language, err := t.parseVerboseResponse(rawJSON, duration)
	if err != nil {
		fallback := strings.TrimSpace(text)
		if fallback == "" {
			return nil, err
		}
		cues = []vtt.Cue{{Start: 0, End: duration, Text: fallback}}
	}
	if language == "" {
		language = t.options.Language
	}

	return &Result{
		Cues:     cues,
		Language: language,
		Duration: duration,
	}, nil
}

// parseVerboseResponse turns a verbose_json payload into cues, preferring
// segment granularity, then word tokens, then the whole text as one cue.
func (t *OpenAITranscriber) parseVerboseResponse(
	rawJSON string,
	fallbackDuration float64,
) ([]vtt.Cue, string, error) {
	if rawJSON == "" {
		return nil, "", fmt.Errorf("empty response")
	}

	var resp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, "", fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	segments := lo.Map(resp.Segments, func(s whisperSegment, _ int) Segment {
		return Segment{Start: s.Start, End: s.End, Text: s.Text}
	})
	if cues := SegmentsToCues(segments); len(cues) > 0 {
		return cues, resp.Language, nil
	}

	words := lo.Map(resp.Words, func(w whisperWord, _ int) Word {
		return Word{Word: w.Word, Start: w.Start, End: w.End}
	})
	if cues := WordsToCues(words); len(cues) > 0 {
		return cues, resp.Language, nil
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, "", fmt.Errorf("no segments, words or text in response")
	}

	duration := resp.Duration
	if duration <= 0 {
		duration = fallbackDuration
	}
	return []vtt.Cue{{Start: 0, End: duration, Text: text}}, resp.Language, nil
}

func (t *OpenAITranscriber) Close() error {
	return nil
}
