package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Transcribe.Provider != "openai" {
		t.Errorf("transcribe provider = %q, want openai", c.Transcribe.Provider)
	}
	if c.Transcribe.ChunkDuration != 1200 {
		t.Errorf("chunk duration = %d, want 1200", c.Transcribe.ChunkDuration)
	}
	if c.Summary.Provider != "anthropic" {
		t.Errorf("summary provider = %q, want anthropic", c.Summary.Provider)
	}
	if c.Audio.Codec != "mp3" || c.Audio.SampleRate != 16000 {
		t.Errorf("audio defaults = %+v", c.Audio)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcribe.yaml")
	content := `
transcribe:
  provider: gemini
  model: gemini-2.5-pro
  chunk_duration: 600
summary:
  language: Russian
audio:
  codec: wav
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if c.Transcribe.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", c.Transcribe.Provider)
	}
	if c.Transcribe.Model != "gemini-2.5-pro" {
		t.Errorf("model = %q", c.Transcribe.Model)
	}
	if c.Transcribe.ChunkDuration != 600 {
		t.Errorf("chunk duration = %d, want 600", c.Transcribe.ChunkDuration)
	}
	if c.Summary.Language != "Russian" {
		t.Errorf("summary language = %q", c.Summary.Language)
	}
	if c.Audio.Codec != "wav" {
		t.Errorf("audio codec = %q, want wav", c.Audio.Codec)
	}

	// Untouched keys keep their defaults.
	if c.Transcribe.Concurrency != 3 {
		t.Errorf("concurrency = %d, want default 3", c.Transcribe.Concurrency)
	}
	if c.Summary.Provider != "anthropic" {
		t.Errorf("summary provider = %q, want default anthropic", c.Summary.Provider)
	}
	if c.Audio.Bitrate != "64k" {
		t.Errorf("bitrate = %q, want default 64k", c.Audio.Bitrate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("transcribe: [not: a map"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}
