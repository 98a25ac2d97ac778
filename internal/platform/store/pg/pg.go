// Package pg owns the pgx pool and the optional sql trace log
package pg

import (
	"context"
	"strings"
	"time"

	"truthlens/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	// AppName is reported to the server as application_name
	AppName string
	// SlowMs marks a traced query slow; negative disables the mark
	SlowMs int
}

// QueryEvent is one finished statement
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives every statement run through the store adapters
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// PG is the pool plus its tracing knobs
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds the pool; tracer may be nil
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close releases the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// Trace reports a statement to the tracer, stamping it slow past SlowMs
func (p *PG) Trace(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if p == nil || p.Tracer == nil {
		return
	}
	el := time.Since(start)
	p.Tracer.OnQuery(ctx, QueryEvent{
		SQL:     sql,
		Args:    args,
		Elapsed: el,
		Err:     err,
		Slow:    p.SlowMs >= 0 && el >= time.Duration(p.SlowMs)*time.Millisecond,
	})
}

// LogTracer writes statements through root regardless of the process level
func LogTracer(root logger.Logger) QueryTracer {
	return logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (l logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := l.log.Info()
	if ev.Slow {
		evt = l.log.Warn()
	}
	evt.Dur("elapsed", ev.Elapsed).
		Bool("slow", ev.Slow).
		Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}
