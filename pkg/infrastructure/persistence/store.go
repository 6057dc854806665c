// Package persistence selects the configured state backend and keeps it in step with
// the workspace
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/config"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
	"github.com/vsinha/prodtrack/pkg/infrastructure/persistence/file"
	"github.com/vsinha/prodtrack/pkg/infrastructure/persistence/postgres"
	"github.com/vsinha/prodtrack/pkg/infrastructure/persistence/redisstore"
)

// Open returns the StateStore named by cfg.Storage.Driver
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.StateStore, error) {
	var (
		store repositories.StateStore
		err   error
	)

	switch cfg.Storage.Driver {
	case "memory":
		store = NopStore{}
	case "file":
		var fs *file.Store
		if fs, err = file.NewStore(cfg.Storage.Dir); err == nil {
			store = fs
		}
	case "redis":
		var rs *redisstore.Store
		rs, err = redisstore.Open(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}, cfg.Redis.KeyPrefix)
		if err == nil {
			store = rs
		}
	case "postgres":
		var ps *postgres.Store
		ps, err = postgres.Open(ctx, cfg.Database.DSN(), postgres.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err == nil {
			store = ps
		}
	default:
		err = fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("state store opened", zap.String("driver", cfg.Storage.Driver))
	return store, nil
}

// LoadOrSeed reads the saved state. An empty store is filled with the seed dataset,
// which is returned with seeded set.
func LoadOrSeed(ctx context.Context, store repositories.StateStore, logger *zap.Logger) (snapshot *entities.Snapshot, seeded bool, err error) {
	snapshot, err = store.Load(ctx)
	if err == nil {
		return snapshot, false, nil
	}
	if !errors.Is(err, repositories.ErrNoState) {
		return nil, false, fmt.Errorf("failed to load state: %w", err)
	}

	snapshot = Seed()
	if err := SaveAll(ctx, store, snapshot); err != nil {
		return nil, false, err
	}
	logger.Info("empty store, seeded built-in dataset",
		zap.Int("components", len(snapshot.Components)),
		zap.Int("categories", len(snapshot.Categories)))
	return snapshot, true, nil
}

// SaveAll writes every aggregate of snapshot
func SaveAll(ctx context.Context, store repositories.StateStore, snapshot *entities.Snapshot) error {
	if err := store.SaveStatuses(ctx, snapshot.Statuses); err != nil {
		return err
	}
	if err := store.SaveComponents(ctx, snapshot.Components); err != nil {
		return err
	}
	if err := store.SaveCategories(ctx, snapshot.Categories); err != nil {
		return err
	}
	return store.SaveSubassemblies(ctx, snapshot.Subassemblies)
}

// NopStore keeps nothing. Every load reports ErrNoState.
type NopStore struct{}

var _ repositories.StateStore = NopStore{}

func (NopStore) Load(context.Context) (*entities.Snapshot, error) {
	return nil, repositories.ErrNoState
}

func (NopStore) SaveComponents(context.Context, []entities.Component) error { return nil }

func (NopStore) SaveCategories(context.Context, []entities.Category) error { return nil }

func (NopStore) SaveSubassemblies(context.Context, map[entities.CategoryID][]entities.Subassembly) error {
	return nil
}

func (NopStore) SaveStatuses(context.Context, []entities.StatusDef) error { return nil }

func (NopStore) Close() error { return nil }
