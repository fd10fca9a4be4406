package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/replyradar/replyradar/internal/logger"
	"github.com/replyradar/replyradar/internal/tracing"
)

type Config struct {
	AppConfig         *AppConfig
	Logger            *logger.Config
	Tracing           *tracing.JaegerConfig
	DatabaseConfig    *DatabaseConfig
	GoogleOAuthConfig *GoogleOAuthConfig
	ClassifierConfig  *ClassifierConfig
	SpamFilterConfig  *SpamFilterConfig
	SyncConfig        *SyncConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:         &AppConfig{},
		Logger:            &logger.Config{},
		Tracing:           &tracing.JaegerConfig{},
		DatabaseConfig:    &DatabaseConfig{},
		GoogleOAuthConfig: &GoogleOAuthConfig{},
		ClassifierConfig:  &ClassifierConfig{},
		SpamFilterConfig:  &SpamFilterConfig{},
		SyncConfig:        &SyncConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading replyradar config: %v", err)
	}

	return config, nil
}
