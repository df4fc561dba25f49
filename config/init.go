package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/internal/tracing"
)

type Config struct {
	AppConfig    *AppConfig
	AIConfig     *AIConfig
	RouterConfig *RouterConfig
	Logger       *logger.Config
	Tracing      *tracing.JaegerConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:    &AppConfig{},
		AIConfig:     &AIConfig{},
		RouterConfig: &RouterConfig{},
		Logger:       &logger.Config{},
		Tracing:      &tracing.JaegerConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, err
	}

	// Some secret managers paste keys with stray spaces.
	config.AppConfig.APIKey = strings.ReplaceAll(config.AppConfig.APIKey, " ", "")

	return config, nil
}
