package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/application/services/bom"
	"github.com/vsinha/prodtrack/pkg/application/services/workspace"
	"github.com/vsinha/prodtrack/pkg/config"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
	"github.com/vsinha/prodtrack/pkg/infrastructure/logging"
	"github.com/vsinha/prodtrack/pkg/infrastructure/persistence"
)

// session is a loaded workspace whose changes are mirrored to the configured store
type session struct {
	logger *zap.Logger
	store  repositories.StateStore
	events *events.InMemoryEventStore
	ws     *workspace.Workspace
}

func openSession(ctx context.Context, cfg *config.Config) (*session, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	store, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	snapshot, seeded, err := persistence.LoadOrSeed(ctx, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	eventStore := events.NewInMemoryEventStore(logger, cfg.Planning.ChangeLogSize)
	ws := workspace.New(eventStore, logger, workspace.Options{
		ProductionCycleDays: cfg.Planning.ProductionCycleDays,
		Resolver:            bom.Config{CacheEntries: cfg.Planning.CacheEntries},
	})
	if err := ws.Load(snapshot); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	mirror := persistence.NewMirror(store, logger, cfg.Storage.WriteTimeout)
	if err := mirror.Attach(eventStore); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to attach mirror: %w", err)
	}

	logger.Debug("workspace loaded",
		zap.Bool("seeded", seeded),
		zap.Int("components", len(snapshot.Components)),
		zap.Int("categories", len(snapshot.Categories)))

	return &session{logger: logger, store: store, events: eventStore, ws: ws}, nil
}

func (s *session) Close() error {
	_ = s.logger.Sync()
	return s.store.Close()
}
