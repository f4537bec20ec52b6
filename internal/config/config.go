package config

import (
	"path"
	"strings"

	"github.com/handora-games/session-api/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"

	OpenAIAPIKeyEnv  = "OPENAI_API_KEY"
	OpenAIModelEnv   = "OPENAI_MODEL"
	OpenAIBaseURLEnv = "OPENAI_BASE_URL"

	CorsAllowedOriginsEnv = "CORS_ALLOWED_ORIGINS"

	defaultOpenAIModel   = "gpt-4o-mini"
	defaultAllowedOrigin = "http://localhost:3000"
)

type OpenAIConfiguration struct {
	APIKey string
	Model  string

	// BaseURL overrides the provider endpoint. Used by local
	// gateways and tests - empty means the public API.
	BaseURL string
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	AllowedOrigins []string

	OpenAI OpenAIConfiguration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)

	rootPath := env.MustGetString(RootPathEnv)
	migrationsPath := path.Join(rootPath, "db", "migrations")

	origins := strings.Split(
		env.GetStringOrDefault(CorsAllowedOriginsEnv, defaultAllowedOrigin),
		",",
	)
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
		AllowedOrigins: origins,
		OpenAI: OpenAIConfiguration{
			APIKey:  env.MustGetString(OpenAIAPIKeyEnv),
			Model:   env.GetStringOrDefault(OpenAIModelEnv, defaultOpenAIModel),
			BaseURL: env.GetStringOrDefault(OpenAIBaseURLEnv, ""),
		},
	}, nil
}
