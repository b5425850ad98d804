package cli

import "testing"

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "OPENAI_API_KEY"},
		{"OpenAI", "OPENAI_API_KEY"},
		{"gemini", "GEMINI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"elevenlabs", "ELEVENLABS_API_KEY"},
		{"", "API_KEY"},
		{"whisperx", "API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if got := apiKeyEnvVar(tt.provider); got != tt.want {
				t.Errorf("apiKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}
