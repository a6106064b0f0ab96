package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kroyahq/kroya/internal/auth/app"
)

func main() {
	// Load .env if present; real deployments inject env directly.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
