package main

import (
	"errors"
	"os"

	"kb-portal/pkg/config/env"
)

type AppConfig struct {
	DatabaseURL string
}

func LoadAppConfig() (*AppConfig, error) {
	env.LoadDotEnv("cmd/kb_api/.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return &AppConfig{
		DatabaseURL: dbURL,
	}, nil
}
