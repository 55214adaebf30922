package main

import (
	"log"

	"github.com/TusharS004/AI-Fitness-Tracker/internal/app"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
