package main

import (
	"context"

	"github.com/icami12/ControlCash/internal/bot"
	"github.com/icami12/ControlCash/internal/config"
	"github.com/icami12/ControlCash/internal/inference"
	"github.com/icami12/ControlCash/internal/ocr"
	"github.com/icami12/ControlCash/internal/repository"
	"github.com/icami12/ControlCash/internal/service"
	"github.com/icami12/ControlCash/internal/throttle"
)

// Request es la estructura del request entrante desde el API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response es la estructura de respuesta para el API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	th := throttle.New(repo, cfg.MaxStrikes, cfg.LockDuration)
	modelo := inference.NewClient(cfg.GeminiAPIKey)
	svc := service.NewProcessor(repo, modelo, th, cfg.ConfidenceThreshold)

	b, err := bot.NewBot(cfg.TelegramToken, svc, ocr.NewClient(cfg.GeminiAPIKey))
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Punto de entrada para pruebas locales
}
