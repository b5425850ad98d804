package cli

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/krasnoperov/transcribe/internal/config"
	"github.com/krasnoperov/transcribe/internal/logging"
)

var (
	verbose bool
	cfgFile string
	cfg     config.Config
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "AI-powered transcription toolkit for audio and video",
	Long: `Transcribe turns audio and video recordings into WebVTT transcripts.

Long recordings are split into chunks and transcribed in parallel, then the
partial transcripts are merged back onto one timeline. Finished transcripts
can be summarized and turned into cover art.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		// pick up API keys from a .env file when present
		_ = godotenv.Load()

		cfg = config.Default()
		if cfgFile != "" {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language of the recording (e.g., en, es, fr)")
}

// apiKeyEnvVar names the environment variable holding the key for a provider.
func apiKeyEnvVar(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "OPENAI_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "elevenlabs":
		return "ELEVENLABS_API_KEY"
	default:
		return "API_KEY"
	}
}
