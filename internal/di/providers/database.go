package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/litnotes/litnotes/internal/config"
	"github.com/litnotes/litnotes/internal/store"
	"github.com/litnotes/litnotes/internal/store/redis"
	"github.com/litnotes/litnotes/internal/store/sqlite"
)

// sqliteFile is the database file name inside the data path.
const sqliteFile = "litnotes.db"

// StoreHandle wraps the persistence backend with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the configured persistence backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	s, err := OpenStore(ctx, cfg.Storage, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Storage initialized", "backend", cfg.Storage.Backend)

	return &StoreHandle{Store: s}, nil
}

// OpenStore opens the backend selected by cfg.Backend.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		path := filepath.Join(cfg.DataPath, "db")
		s, err := store.OpenBadger(store.BadgerOptions{Path: path, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("open badger at %s: %w", path, err)
		}
		return s, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataPath, 0o750); err != nil {
			return nil, fmt.Errorf("create data path: %w", err)
		}
		path := filepath.Join(cfg.DataPath, sqliteFile)
		s, err := sqlite.Open(path, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
		}
		return s, nil

	case config.BackendRedis:
		s, err := redis.Open(ctx, redis.Options{
			Addr:   cfg.RedisAddr,
			Prefix: cfg.RedisPrefix,
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis at %s: %w", cfg.RedisAddr, err)
		}
		return s, nil

	case config.BackendMemory:
		return store.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
