package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// ContextConfig tunes the context window builder. Defaults match the
// platform production values.
type ContextConfig struct {
	TokenBudget    int           `env:"CONTEXT_TOKEN_BUDGET" envDefault:"1500"`
	FooterMargin   int           `env:"CONTEXT_FOOTER_MARGIN" envDefault:"100"`
	MaxRecords     int           `env:"CONTEXT_MAX_RECORDS" envDefault:"100"`
	CacheTTL       time.Duration `env:"CONTEXT_CACHE_TTL" envDefault:"5m"`
	CharsPerToken  int           `env:"CONTEXT_CHARS_PER_TOKEN" envDefault:"4"`
	ExactTokenizer bool          `env:"CONTEXT_EXACT_TOKENIZER" envDefault:"false"`
}

func NewContextConfig(ctx context.Context) *ContextConfig {
	cfg := &ContextConfig{}
	if err := env.Parse(cfg); err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("failed to parse Context config")
	}
	return cfg
}
