package persistence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/prodtrack/pkg/domain/repositories"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
)

// Mirror writes every workspace change event to a StateStore. It runs after the
// workspace lock is released; a failed write is returned to the event store, which
// logs it. The in-memory state stays authoritative either way.
type Mirror struct {
	store   repositories.StateStore
	logger  *zap.Logger
	timeout time.Duration
}

var _ events.EventHandler = (*Mirror)(nil)

func NewMirror(store repositories.StateStore, logger *zap.Logger, timeout time.Duration) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Mirror{store: store, logger: logger, timeout: timeout}
}

// Attach subscribes the mirror to every workspace event
func (m *Mirror) Attach(store events.EventStore) error {
	return store.Subscribe(events.AllEventTypes, m)
}

func (m *Mirror) CanHandle(eventType string) bool {
	for _, t := range events.AllEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

func (m *Mirror) Handle(event events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	start := time.Now()
	var err error
	switch payload := event.Data().(type) {
	case events.ComponentsChanged:
		err = m.store.SaveComponents(ctx, payload.Components)
	case events.CategoriesChanged:
		err = m.store.SaveCategories(ctx, payload.Categories)
	case events.SubassembliesChanged:
		err = m.store.SaveSubassemblies(ctx, payload.Partitions)
	case events.StatusesChanged:
		err = m.store.SaveStatuses(ctx, payload.Statuses)
	default:
		return fmt.Errorf("unexpected payload %T for %s", payload, event.Type())
	}
	if err != nil {
		return fmt.Errorf("failed to mirror %s: %w", event.Type(), err)
	}

	m.logger.Debug("state mirrored",
		zap.String("type", event.Type()),
		zap.Int("position", event.Position()),
		zap.Duration("took", time.Since(start)))
	return nil
}
