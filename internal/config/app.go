package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"github.com/mentorhub/contextd/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CONTEXTD_RUNTIME_PATH" envDefault:".contextd"`

	// Transport Flags
	EnableHTTP bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableMCP  bool `env:"ENABLE_MCP" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "contextd.db")
}
