package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the file-based settings. Anything not present in the file
// keeps its default, and API keys stay in the environment.
type Config struct {
	Transcribe struct {
		Provider           string `yaml:"provider"`
		Model              string `yaml:"model"`
		Language           string `yaml:"language"`
		TranscriptLanguage string `yaml:"transcript_language"`
		Prompt             string `yaml:"prompt"`
		Concurrency        int    `yaml:"concurrency"`
		ChunkDuration      int    `yaml:"chunk_duration"` // seconds per chunk
		RequestTimeout     int    `yaml:"request_timeout"` // seconds per attempt
		MaxAttempts        int    `yaml:"max_attempts"`
	} `yaml:"transcribe"`

	Summary struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		Language string `yaml:"language"`
		Prompt   string `yaml:"prompt"`
	} `yaml:"summary"`

	Artwork struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		Style    string `yaml:"style"`
	} `yaml:"artwork"`

	Audio struct {
		Codec      string `yaml:"codec"`
		SampleRate int    `yaml:"sample_rate"`
		Channels   int    `yaml:"channels"`
		Bitrate    string `yaml:"bitrate"`
	} `yaml:"audio"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	var c Config

	c.Transcribe.Provider = "openai"
	c.Transcribe.Concurrency = 3
	c.Transcribe.ChunkDuration = 1200
	c.Transcribe.MaxAttempts = 4

	c.Summary.Provider = "anthropic"

	c.Artwork.Provider = "openai"

	c.Audio.Codec = "mp3"
	c.Audio.SampleRate = 16000
	c.Audio.Channels = 1
	c.Audio.Bitrate = "64k"

	return c
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}

	return c, nil
}
