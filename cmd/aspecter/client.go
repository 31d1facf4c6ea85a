package aspecter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/thaumlab/aspecter"
	"github.com/thaumlab/aspecter/pkg/config"
	aspecterLogger "github.com/thaumlab/aspecter/pkg/logger"
	"github.com/thaumlab/aspecter/pkg/store"
	"github.com/thaumlab/aspecter/pkg/telemetry"
)

// newLogger builds the colored logger at the configured level, with the
// configured error sink (Parquet files or a SQLite table) behind it.
// The returned flush func releases the sink and must run before exit so
// buffered records are not lost.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler = aspecterLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	flush := func() {}

	switch cfg.Telemetry.Sink {
	case "sqlite":
		if cfg.Telemetry.SQLitePath == "" {
			break
		}
		db, err := sql.Open("sqlite", cfg.Telemetry.SQLitePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error tracking disabled: %v\n", err)
			break
		}
		sqlHandler, err := telemetry.NewSQLHandler(handler, db)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error tracking disabled: %v\n", err)
			db.Close()
			break
		}
		handler = sqlHandler
		flush = func() { db.Close() }
	default:
		if cfg.Telemetry.ParquetPath == "" {
			break
		}
		parquetHandler, err := telemetry.NewParquetHandler(handler, cfg.Telemetry.ParquetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error tracking disabled: %v\n", err)
			break
		}
		handler = parquetHandler
		flush = func() { parquetHandler.Close() }
	}

	return slog.New(handler), flush
}

// openStore opens the configured store backend.
func openStore(ctx context.Context, cfg *config.Config) (store.MutableStore, error) {
	if cfg.Database.URI == "" && cfg.Database.Driver != string(store.ProviderMemory) {
		return nil, fmt.Errorf("database URI is required")
	}
	return store.Open(ctx, store.Options{
		Driver:   cfg.Database.Driver,
		URI:      cfg.Database.URI,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
}

// newLoadedClient wires config, store and logger into a loaded client.
// The caller must run the returned cleanup, which closes the client and
// flushes any buffered telemetry.
func newLoadedClient(ctx context.Context) (*aspecter.Client, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, flush := newLogger(cfg)

	st, err := openStore(ctx, cfg)
	if err != nil {
		flush()
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	client, err := aspecter.New(st, cfg, logger)
	if err != nil {
		st.Close()
		flush()
		return nil, nil, nil, err
	}
	if err := client.Load(ctx); err != nil {
		client.Close()
		flush()
		return nil, nil, nil, err
	}
	cleanup := func() {
		client.Close()
		flush()
	}
	return client, cfg, cleanup, nil
}
