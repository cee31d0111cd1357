package main

import (
	"log"

	"github.com/icami12/ControlCash/internal/bot"
	"github.com/icami12/ControlCash/internal/config"
	"github.com/icami12/ControlCash/internal/inference"
	"github.com/icami12/ControlCash/internal/ocr"
	"github.com/icami12/ControlCash/internal/repository"
	"github.com/icami12/ControlCash/internal/service"
	"github.com/icami12/ControlCash/internal/throttle"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}

	th := throttle.New(repo, cfg.MaxStrikes, cfg.LockDuration)
	modelo := inference.NewClient(cfg.GeminiAPIKey)
	svc := service.NewProcessor(repo, modelo, th, cfg.ConfidenceThreshold)

	b, err := bot.NewBot(cfg.TelegramToken, svc, ocr.NewClient(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
