package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/krasnoperov/transcribe/internal/media"
	"github.com/krasnoperov/transcribe/internal/vtt"
)

const elevenLabsEndpoint = "https://api.elevenlabs.io/v1/speech-to-text"

// implements Transcriber interface using the ElevenLabs speech-to-text API.
// The API has no Go SDK, so requests go over plain HTTP.
type ElevenLabsTranscriber struct {
	httpClient *http.Client
	apiKey     string
	model      string
	options    Options
}

// API failure with the status kept so the retry layer can classify it
type elevenLabsError struct {
	status int
	body   string
}

func (e *elevenLabsError) Error() string {
	return fmt.Sprintf("elevenlabs API error (status %d): %s", e.status, e.body)
}

// word token from the speech-to-text response; diarization fills speaker_id
type scribeWord struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Type      string  `json:"type"`
	SpeakerID string  `json:"speaker_id"`
}

type scribeResponse struct {
	LanguageCode string       `json:"language_code"`
	Text         string       `json:"text"`
	Words        []scribeWord `json:"words"`
}

func NewElevenLabsTranscriber(
	apiKey string,
	opts Options,
) (*ElevenLabsTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = "scribe_v1"
	}

	return &ElevenLabsTranscriber{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		model:      model,
		options:    opts,
	}, nil
}

// transcribes single audio file
func (t *ElevenLabsTranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	var resp scribeResponse
	err := withRetry(ctx, t.options, func(ctx context.Context) error {
		return t.request(ctx, audioPath, &resp)
	})
	if err != nil {
		return nil, err
	}

	duration, _ := media.ProbeDuration(ctx, audioPath)

	cues := scribeCues(resp)
	if len(cues) == 0 {
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, fmt.Errorf("empty transcription response")
		}
		cues = []vtt.Cue{{Start: 0, End: duration, Text: text}}
	}

	return &Result{
		Cues:     cues,
		Language: resp.LanguageCode,
		Duration: duration,
	}, nil
}

// scribeCues normalizes the diarized word stream into cues. Spacing tokens
// carry no text and are skipped; the speaker label rides along unchanged.
func scribeCues(resp scribeResponse) []vtt.Cue {
	words := lo.FilterMap(resp.Words, func(w scribeWord, _ int) (Word, bool) {
		if w.Type == "spacing" {
			return Word{}, false
		}
		return Word{
			Word:    w.Text,
			Start:   w.Start,
			End:     w.End,
			Speaker: w.SpeakerID,
		}, true
	})
	return WordsToCues(words)
}

// request uploads the audio and decodes the response. The multipart body is
// rebuilt on every attempt since a consumed reader cannot be resent.
func (t *ElevenLabsTranscriber) request(
	ctx context.Context,
	audioPath string,
	out *scribeResponse,
) error {
	file, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	_ = writer.WriteField("model_id", t.model)
	_ = writer.WriteField("diarize", "true")
	if t.options.Language != "" {
		_ = writer.WriteField("language_code", t.options.Language)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		elevenLabsEndpoint,
		&body,
	)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("xi-api-key", t.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &elevenLabsError{
			status: resp.StatusCode,
			body:   truncateString(strings.TrimSpace(string(payload)), 200),
		}
	}

	var decoded scribeResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	*out = decoded
	return nil
}

func (t *ElevenLabsTranscriber) Close() error {
	return nil
}
