// Package redisstore keeps each workspace aggregate as one JSON value in redis
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

const (
	componentsKey    = "components"
	categoriesKey    = "categories"
	subassembliesKey = "subassemblies"
	statusesKey      = "statuses"
)

type Store struct {
	client *redis.Client
	prefix string
}

var _ repositories.StateStore = (*Store)(nil)

// NewStore wraps an existing client. Keys are "<prefix>:<aggregate>".
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Open connects to redis and checks the connection
func Open(ctx context.Context, opts *redis.Options, prefix string) (*Store, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return NewStore(client, prefix), nil
}

func (s *Store) key(aggregate string) string {
	if s.prefix == "" {
		return aggregate
	}
	return s.prefix + ":" + aggregate
}

// Load fetches all aggregates in one round trip
func (s *Store) Load(ctx context.Context) (*entities.Snapshot, error) {
	keys := []string{
		s.key(componentsKey),
		s.key(categoriesKey),
		s.key(subassembliesKey),
		s.key(statusesKey),
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	snapshot := &entities.Snapshot{}
	targets := []interface{}{
		&snapshot.Components,
		&snapshot.Categories,
		&snapshot.Subassemblies,
		&snapshot.Statuses,
	}

	found := 0
	for i, value := range values {
		if value == nil {
			continue
		}
		raw, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T at %s", value, keys[i])
		}
		if err := json.Unmarshal([]byte(raw), targets[i]); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", keys[i], err)
		}
		found++
	}
	if found == 0 {
		return nil, repositories.ErrNoState
	}
	if snapshot.Subassemblies == nil {
		snapshot.Subassemblies = make(map[entities.CategoryID][]entities.Subassembly)
	}
	return snapshot, nil
}

func (s *Store) SaveComponents(ctx context.Context, components []entities.Component) error {
	return s.save(ctx, componentsKey, components)
}

func (s *Store) SaveCategories(ctx context.Context, categories []entities.Category) error {
	return s.save(ctx, categoriesKey, categories)
}

func (s *Store) SaveSubassemblies(ctx context.Context, partitions map[entities.CategoryID][]entities.Subassembly) error {
	return s.save(ctx, subassembliesKey, partitions)
}

func (s *Store) SaveStatuses(ctx context.Context, statuses []entities.StatusDef) error {
	return s.save(ctx, statusesKey, statuses)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) save(ctx context.Context, aggregate string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", aggregate, err)
	}
	if err := s.client.Set(ctx, s.key(aggregate), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", aggregate, err)
	}
	return nil
}
