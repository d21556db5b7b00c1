package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oakmoss/kiln/internal/capture"
	"github.com/oakmoss/kiln/internal/config"
	"github.com/oakmoss/kiln/internal/logging"
)

func main() {
	// Optional .env; absence is fine.
	godotenv.Load()

	cfg := config.Load()
	logging.Init(cfg.Manifest.Output == "stdout", logging.ParseLevel(cfg.LogLevel))

	pins, err := capture.Run(cfg)
	if err != nil {
		log.Fatalf("capture: %v", err)
	}

	if cfg.Manifest.Output == "file" {
		fmt.Printf("pinned %d packages -> %s\n", len(pins), cfg.Manifest.Path)
	}
}
