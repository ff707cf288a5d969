package router

import (
	"context"
	"database/sql"
	"fmt"

	mem "found-pets/internal/adapters/storage/memory"
	pg "found-pets/internal/adapters/storage/postgres"
	lite "found-pets/internal/adapters/storage/sqlite"
	"found-pets/internal/domain/pets"
	"found-pets/internal/platform/config"
	"found-pets/internal/platform/logger"
)

// Store es el repo elegido más su cierre. El dueño del handle es quien llama (main).
type Store struct {
	Repo  pets.Repository
	Kind  config.StoreKind
	close func() error
}

func (s Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore elige backend según config: Postgres (DB_DSN), sqlite (SQLITE_PATH) o memoria.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (Store, error) {
	kind := cfg.Store()

	var (
		db  *sql.DB
		err error
	)
	switch kind {
	case config.StorePostgres:
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return Store{}, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return Store{}, fmt.Errorf("ensure schema: %w", err)
		}
		log.Info("pet store configured", map[string]any{"store": kind})
		return Store{Repo: pg.NewPetsRepo(db), Kind: kind, close: db.Close}, nil

	case config.StoreSQLite:
		db, err = lite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return Store{}, err
		}
		log.Info("pet store configured", map[string]any{"store": kind, "path": cfg.SQLitePath})
		return Store{Repo: lite.NewPetsRepo(db), Kind: kind, close: db.Close}, nil

	default:
		log.Warn("no DB_DSN or SQLITE_PATH set, using in-memory pet store", nil)
		return Store{Repo: mem.NewPetRepo(), Kind: config.StoreMemory}, nil
	}
}

// Migrate crea la tabla en el backend configurado. En memoria no hace nada.
func Migrate(ctx context.Context, cfg config.Config) error {
	switch cfg.Store() {
	case config.StorePostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		return pg.EnsureSchema(ctx, db)
	case config.StoreSQLite:
		// Open ya aplica el schema
		db, err := lite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		return db.Close()
	default:
		return nil
	}
}
