package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL   string
	SupabaseKey   string
	TelegramToken string
	GeminiAPIKey  string

	// Política anti-abuso y de confianza. Valores por defecto: 2 strikes,
	// 15 minutos de bloqueo, umbral de confianza 0.7.
	MaxStrikes          int
	LockDuration        time.Duration
	ConfidenceThreshold float64
}

func LoadConfig() (*Config, error) {
	// El .env es opcional en producción (las variables pueden venir del entorno)
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:         os.Getenv("SUPABASE_URL"),
		SupabaseKey:         os.Getenv("SUPABASE_KEY"),
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		MaxStrikes:          envInt("MAX_STRIKES", 2),
		LockDuration:        time.Duration(envInt("LOCK_MINUTES", 15)) * time.Minute,
		ConfidenceThreshold: envFloat("CONFIDENCE_THRESHOLD", 0.7),
	}

	return cfg, nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
