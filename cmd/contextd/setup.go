package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/mentorhub/contextd/internal/cache"
	"github.com/mentorhub/contextd/internal/config"
	"github.com/mentorhub/contextd/internal/service/bizcontext"
	"github.com/mentorhub/contextd/internal/service/memory"
	"github.com/mentorhub/contextd/internal/service/relevance"
	"github.com/mentorhub/contextd/internal/storage/sqlite"
	"github.com/mentorhub/contextd/internal/transport/httpapi"
	"github.com/mentorhub/contextd/internal/transport/mcpsrv"
	"github.com/mentorhub/contextd/pkg/log"
	"github.com/mentorhub/contextd/pkg/srv"
	"github.com/mentorhub/contextd/pkg/tokens"
)

// components are the wired core services, shared between the long-running
// transports and the one-off CLI commands.
type components struct {
	builder  *bizcontext.Builder
	scorer   *relevance.Scorer
	memories *memory.Manager

	cleanup []srv.Service
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Core components
	comp := newComponents(ctx, appCfg)
	services = append(services, comp.cleanup...)

	// 3. Transports
	if appCfg.EnableHTTP {
		httpCfg := config.NewHTTPConfig(ctx)
		services = append(services, httpapi.NewServer(ctx, httpCfg.Addr, comp.builder, comp.scorer, comp.memories))
	}
	if appCfg.EnableMCP {
		services = append(services, mcpsrv.NewServer(ctx, comp.builder, comp.scorer))
	}

	if len(services) == len(comp.cleanup) {
		logger.Warn().Msg("no transports enabled, set ENABLE_HTTP or ENABLE_MCP")
	}

	return services
}

func newComponents(ctx context.Context, appCfg *config.AppConfig) *components {
	logger := log.FromCtx(ctx)
	ctxCfg := config.NewContextConfig(ctx)

	// Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	repo := sqlite.NewMemoriesRepo(db)

	// Token estimator: heuristic by default, exact tokenizer on demand.
	var estimator tokens.Estimator = tokens.NewHeuristic(ctxCfg.CharsPerToken)
	if ctxCfg.ExactTokenizer {
		estimator = tokens.Tiktoken{}
	}

	builder := bizcontext.NewBuilder(repo, cache.NewTTLCache(ctxCfg.CacheTTL), estimator, bizcontext.DefaultLabels())
	builder.TokenBudget = ctxCfg.TokenBudget
	builder.FooterMargin = ctxCfg.FooterMargin
	builder.MaxRecords = ctxCfg.MaxRecords

	return &components{
		builder:  builder,
		scorer:   relevance.NewScorer(relevance.DefaultTables()),
		memories: memory.NewManager(repo, builder),
		cleanup:  []srv.Service{srv.NewCleanup(db.Close)},
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
