package summarize

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/krasnoperov/transcribe/internal/vtt"
)

func TestFactoryReturnsAnthropicSummarizer(t *testing.T) {
	ctx := context.Background()
	summarizer, err := Factory(ctx, ProviderAnthropic, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := summarizer.(*AnthropicSummarizer); !ok {
		t.Errorf("expected *AnthropicSummarizer, got %T", summarizer)
	}
}

func TestFactoryReturnsOpenAISummarizer(t *testing.T) {
	ctx := context.Background()
	summarizer, err := Factory(ctx, ProviderOpenAI, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := summarizer.(*OpenAISummarizer); !ok {
		t.Errorf("expected *OpenAISummarizer, got %T", summarizer)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	_, err := Factory(ctx, Provider("unknown"), "fake-key", Options{})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	_, err := Factory(ctx, ProviderAnthropic, "", Options{})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestFormatTranscript(t *testing.T) {
	cues := []vtt.Cue{
		{Start: 0, End: 4, Speaker: "Alice", Text: "Welcome back."},
		{Start: 4, End: 9, Text: "Unattributed line."},
		{Start: 65.5, End: 70, Speaker: "Bob", Text: "Thanks for having me."},
	}

	got := FormatTranscript(cues)

	want := "[00:00:00.000] Alice: Welcome back.\n" +
		"[00:00:04.000] Unattributed line.\n" +
		"[00:01:05.500] Bob: Thanks for having me.\n"
	if got != want {
		t.Errorf("FormatTranscript() = %q, want %q", got, want)
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		Language: "Russian",
		Prompt:   "Focus on the product decisions.",
	}

	prompt := BuildPrompt(opts, "[00:00:00.000] Alice: Hello\n")

	if !strings.Contains(prompt, "Write the summary in Russian") {
		t.Error("prompt should carry the summary language")
	}
	if !strings.Contains(prompt, "Focus on the product decisions.") {
		t.Error("prompt should carry the additional instructions")
	}
	if !strings.Contains(prompt, "Alice: Hello") {
		t.Error("prompt should contain the transcript")
	}
	if !strings.Contains(prompt, "plain markdown") {
		t.Error("prompt should request markdown output")
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(Options{}, "transcript body\n")

	if strings.Contains(prompt, "Write the summary in") {
		t.Error("prompt should not name a language when none is set")
	}
	if strings.Contains(prompt, "Additional instructions") {
		t.Error("prompt should not carry an empty instruction block")
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain markdown",
			input: "# Summary\n\n- point one\n",
			want:  "# Summary\n\n- point one",
		},
		{
			name:  "fenced markdown",
			input: "```markdown\n# Summary\n\n- point one\n```",
			want:  "# Summary\n\n- point one",
		},
		{
			name:  "bare fence",
			input: "```\n# Summary\n```",
			want:  "# Summary",
		},
		{
			name:  "inner fences survive",
			input: "# Summary\n\n```\nquoted command\n```\n",
			want:  "# Summary\n\n```\nquoted command\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanResponse(tt.input); got != tt.want {
				t.Errorf("cleanResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Integration test: only runs if ANTHROPIC_API_KEY is set
func TestAnthropicSummarizerIntegration(t *testing.T) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		t.Skip("ANTHROPIC_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	summarizer, err := NewAnthropicSummarizer(ctx, apiKey, Options{})
	if err != nil {
		t.Fatalf("NewAnthropicSummarizer error: %v", err)
	}

	cues := []vtt.Cue{
		{Start: 0, End: 5, Speaker: "Host", Text: "Today we talk about subtitle tooling."},
		{Start: 5, End: 12, Speaker: "Guest", Text: "It is mostly about timestamps and merging."},
	}

	summary, err := summarizer.Summarize(ctx, cues)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if summary == "" {
		t.Error("expected a non-empty summary")
	}
}
