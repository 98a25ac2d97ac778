// @title         TruthLens API
// @version       1.0.0
// @description   Article credibility scoring with background source enrichment

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truthlens/internal/platform/cache"
	"truthlens/internal/platform/config"
	"truthlens/internal/platform/logger"
	phttp "truthlens/internal/platform/net/http"
	"truthlens/internal/platform/store"

	"truthlens/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()

	redisURL := root.MayString("REDIS_URL", "")
	backend := cache.BackendNone
	if redisURL != "" {
		backend = cache.BackendRedis
	}
	backend = root.MayEnum("CACHE_BACKEND", backend, cache.BackendRedis, cache.BackendMemory, cache.BackendNone)

	pgURL := pgCfg.MayString("DBURL", "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// postgres backs the report store; redis here is only for readiness
	st, err := store.Open(ctx, store.Config{
		AppName: "truthlens-api",
		PG: store.PGConfig{
			Enabled:     pgURL != "",
			URL:         pgURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		RDS: store.RedisConfig{
			Enabled: backend == cache.BackendRedis,
			URL:     redisURL,
		},
	}, store.WithLogger(*l))
	if err != nil {
		// the api still serves without its backends
		l.Error().Err(err).Msg("store.Open failed, continuing without postgres and redis")
		st = &store.Store{}
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	cf, err := cache.NewFactory(cache.Config{Backend: backend, RedisURL: redisURL})
	if err != nil {
		l.Panic().Err(err).Msg("cache config invalid")
	}
	l.Info().Str("backend", cf.Backend()).Msg("result cache configured")

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Cache:          cf,
			Logger:         l,
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			AnalyzeRPS:     apiCfg.MayFloat64("ANALYZE_RPS", 0),
			AnalyzeBurst:   apiCfg.MayInt("ANALYZE_BURST", 10),
		},
	)
	defer func() {
		for _, c := range mounted.Closers {
			_ = c.Close()
		}
	}()

	workerDone := make(chan error, 1)
	go func() { workerDone <- mounted.Worker.Run(ctx) }()

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	// run
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		stop()
	}

	// queued enrichment drains before exit
	if err := <-workerDone; err != nil {
		l.Error().Err(err).Msg("enrichment worker stopped")
	}
}
