package main

import (
	"os"

	"github.com/krasnoperov/transcribe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
