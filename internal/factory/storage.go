package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/familylane/memory-lane/internal/config"
	storepkg "github.com/familylane/memory-lane/internal/store"
	storepg "github.com/familylane/memory-lane/internal/store/postgres"
	storesqlite "github.com/familylane/memory-lane/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver.
// Postgres connection attempts are retried until the bootstrap timeout.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store opened")
		return st, nil

	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("MEMORY_LANE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		bootCtx, cancel := context.WithTimeout(ctx, cfg.BootstrapTimeout())
		defer cancel()

		db, err := storepg.Open(bootCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.EnsureSchema(bootCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("store opened")
		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
