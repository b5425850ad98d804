package media

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

type binaryPaths struct {
	ffmpeg  string
	ffprobe string
}

var (
	resolveOnce sync.Once
	resolved    binaryPaths
	resolveErr  error
)

// FFmpegPath locates the ffmpeg binary, preferring the TRANSCRIBE_FFMPEG_PATH
// override before searching the system PATH. Resolution runs once per process.
func FFmpegPath() (string, error) {
	paths, err := ensureBinaries()
	if err != nil {
		return "", err
	}
	return paths.ffmpeg, nil
}

// FFprobePath locates the ffprobe binary the same way.
func FFprobePath() (string, error) {
	paths, err := ensureBinaries()
	if err != nil {
		return "", err
	}
	return paths.ffprobe, nil
}

func ensureBinaries() (binaryPaths, error) {
	resolveOnce.Do(func() {
		resolved, resolveErr = resolveBinaries()
	})
	return resolved, resolveErr
}

func resolveBinaries() (binaryPaths, error) {
	paths := binaryPaths{
		ffmpeg:  os.Getenv("TRANSCRIBE_FFMPEG_PATH"),
		ffprobe: os.Getenv("TRANSCRIBE_FFPROBE_PATH"),
	}

	if paths.ffmpeg == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			paths.ffmpeg = found
		}
	}
	if paths.ffprobe == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			paths.ffprobe = found
		}
	}

	if paths.ffmpeg == "" || paths.ffprobe == "" {
		return binaryPaths{}, errors.New(
			"ffmpeg/ffprobe not found: install them or set " +
				"TRANSCRIBE_FFMPEG_PATH and TRANSCRIBE_FFPROBE_PATH",
		)
	}
	return paths, nil
}
