package transcribe

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/krasnoperov/transcribe/internal/media"
	"github.com/krasnoperov/transcribe/internal/vtt"
)

// transcription result
type Result struct {
	Cues     []vtt.Cue
	Language string
	Duration float64 // seconds
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderGemini     Provider = "gemini"
	ProviderElevenLabs Provider = "elevenlabs"
)

// transcription options
type Options struct {
	Language           string // source language of the audio
	TranscriptLanguage string // output language for the transcript (default: "native")
	Model              string
	Prompt             string

	RequestTimeout time.Duration // per-attempt deadline, zero means none
	MaxAttempts    int           // attempts per request, zero means default
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderElevenLabs:
		return NewElevenLabsTranscriber(apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// TranscribeChunk transcribes one chunk and moves its cues onto the
// recording's global timeline.
func TranscribeChunk(
	ctx context.Context,
	t Transcriber,
	c media.Chunk,
) (*Result, error) {
	result, err := t.Transcribe(ctx, c.Path)
	if err != nil {
		return nil, err
	}
	result.Cues = vtt.Shift(result.Cues, c.Span.Offset)
	return result, nil
}

// holds the outcome of transcribing one chunk
type chunkResult struct {
	index    int
	cues     []vtt.Cue
	language string
	err      error
}

// TranscribeChunks fans the chunks out over a bounded worker pool. The first
// failure cancels the remaining work. Completion order does not matter: cues
// are reassembled by chunk index and merged into start order at the end.
func TranscribeChunks(
	ctx context.Context,
	t Transcriber,
	chunks []media.Chunk,
	concurrency int,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan media.Chunk)
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case c, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					result, err := TranscribeChunk(ctx, t, c)
					if err != nil {
						cancel()
						resultChan <- chunkResult{index: c.Index, err: err}
						continue
					}
					resultChan <- chunkResult{
						index:    c.Index,
						cues:     result.Cues,
						language: result.Language,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for _, c := range chunks {
			select {
			case <-ctx.Done():
				return
			case workChan <- c:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	var firstErr error
	for result := range resultChan {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf(
					"chunk %d failed: %w",
					result.index,
					result.err,
				)
			}
			continue
		}
		results = append(results, result)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	// sort by index to maintain order
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	var language string
	sequences := make([][]vtt.Cue, 0, len(results))
	for _, r := range results {
		sequences = append(sequences, r.cues)
		if language == "" {
			language = r.language
		}
	}

	last := chunks[len(chunks)-1].Span
	return &Result{
		Cues:     vtt.MergeCues(sequences...),
		Language: language,
		Duration: last.Offset + last.Duration,
	}, nil
}
