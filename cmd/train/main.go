package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oakmoss/kiln/internal/config"
	"github.com/oakmoss/kiln/internal/logging"
	"github.com/oakmoss/kiln/internal/trainer"
)

func main() {
	// Optional .env; absence is fine.
	godotenv.Load()

	cfg := config.Load()
	logging.Init(false, logging.ParseLevel(cfg.LogLevel))

	report, err := trainer.Run(cfg)
	if err != nil {
		log.Fatalf("train: %v", err)
	}

	fmt.Printf("trained %d trees (seed %d, accuracy %.3f) -> %s\n",
		report.Trees, report.Seed, report.Accuracy, report.ArtifactPath)
}
