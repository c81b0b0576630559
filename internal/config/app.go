package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = newAppConfig()
	})
	return appConfig
}

func newAppConfig() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
		log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
	}
	return &AppConfig{
		Name:    getEnvOrDefault("APP_NAME", "interview-coach"),
		Env:     env,
		Port:    getEnvOrDefault("APP_PORT", ":8080"),
		BaseURL: os.Getenv("APP_URL"),
	}
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
