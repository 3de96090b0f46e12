package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type HTTPConfig struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8085"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	cfg := &HTTPConfig{}
	if err := env.Parse(cfg); err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return cfg
}
