package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/trivia-loader/internal/adapter/postgres"
	"github.com/heartmarshall/trivia-loader/internal/adapter/postgres/trivia"
	"github.com/heartmarshall/trivia-loader/internal/adapter/sqlite"
	"github.com/heartmarshall/trivia-loader/internal/app/loader"
	"github.com/heartmarshall/trivia-loader/internal/config"
)

// Compile-time interface assertions.
var (
	_ loader.Sink = (*trivia.Repo)(nil)
	_ loader.Sink = (*sqlite.Store)(nil)
)

// LoadOptions are per-invocation overrides taken from the command line.
type LoadOptions struct {
	// Season loads exactly this season number when > 0.
	Season int
	// File overrides the season file path; requires Season.
	File string
}

// OpenSink connects to the database selected by cfg.Driver and returns the
// sink together with a function that releases the connection.
func OpenSink(ctx context.Context, cfg config.DatabaseConfig) (loader.Sink, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return trivia.New(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// RunLoad opens the sink (unless dry-running), optionally purges, and loads
// either the requested season or every discovered one.
func RunLoad(ctx context.Context, log *slog.Logger, db config.DatabaseConfig, cfg loader.Config, opts LoadOptions) ([]loader.Result, error) {
	if opts.File != "" && opts.Season <= 0 {
		return nil, fmt.Errorf("a season number is required with an explicit file")
	}

	log.Info("starting load",
		slog.String("version", BuildVersion()),
		slog.String("database", db.Redacted()),
		slog.String("data_dir", cfg.DataDir),
		slog.Bool("dry_run", cfg.DryRun),
	)

	var sink loader.Sink
	if !cfg.DryRun {
		s, closeSink, err := OpenSink(ctx, db)
		if err != nil {
			return nil, err
		}
		defer closeSink()
		sink = s
	}

	l := loader.New(log, sink, cfg)

	if cfg.Purge {
		if err := l.Purge(ctx); err != nil {
			return nil, err
		}
	}

	if opts.Season <= 0 {
		return l.LoadSeasons(ctx)
	}

	path := opts.File
	if path == "" {
		path = cfg.SeasonPath(opts.Season)
	}
	res, err := l.LoadSeason(ctx, opts.Season, path)
	if err != nil {
		return nil, err
	}
	return []loader.Result{res}, nil
}

// RunPurge empties every table of the configured database.
func RunPurge(ctx context.Context, log *slog.Logger, db config.DatabaseConfig, cfg loader.Config) error {
	var sink loader.Sink
	if !cfg.DryRun {
		s, closeSink, err := OpenSink(ctx, db)
		if err != nil {
			return err
		}
		defer closeSink()
		sink = s
	}
	return loader.New(log, sink, cfg).Purge(ctx)
}
