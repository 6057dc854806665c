// Package postgres mirrors the workspace into postgres tables through gorm
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

const batchSize = 200

// PoolConfig sizes the connection pool
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Store struct {
	db *gorm.DB
}

var _ repositories.StateStore = (*Store)(nil)

// NewStore wraps an open connection. Call Migrate before first use.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects with dsn, sizes the pool and migrates the schema
func Open(ctx context.Context, dsn string, pool PoolConfig) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	store := NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// Migrate creates or updates the four tables
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&componentModel{},
		&categoryModel{},
		&subassemblyModel{},
		&statusModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Load reads every table in stored order
func (s *Store) Load(ctx context.Context) (*entities.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var components []componentModel
	if err := db.Order("seq").Find(&components).Error; err != nil {
		return nil, fmt.Errorf("failed to load components: %w", err)
	}
	var categories []categoryModel
	if err := db.Order("seq").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	var nodes []subassemblyModel
	if err := db.Order("seq").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("failed to load subassemblies: %w", err)
	}
	var statuses []statusModel
	if err := db.Order("seq").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}

	if len(components)+len(categories)+len(nodes)+len(statuses) == 0 {
		return nil, repositories.ErrNoState
	}

	snapshot := &entities.Snapshot{
		Components:    make([]entities.Component, 0, len(components)),
		Categories:    make([]entities.Category, 0, len(categories)),
		Subassemblies: make(map[entities.CategoryID][]entities.Subassembly),
		Statuses:      make([]entities.StatusDef, 0, len(statuses)),
	}
	for _, m := range components {
		snapshot.Components = append(snapshot.Components, m.entity())
	}
	for _, m := range categories {
		snapshot.Categories = append(snapshot.Categories, entities.Category{ID: entities.CategoryID(m.ID), Name: m.Name})
		snapshot.Subassemblies[entities.CategoryID(m.ID)] = []entities.Subassembly{}
	}
	for _, m := range nodes {
		node, err := m.entity()
		if err != nil {
			return nil, err
		}
		snapshot.Subassemblies[node.Category] = append(snapshot.Subassemblies[node.Category], node)
	}
	for _, m := range statuses {
		snapshot.Statuses = append(snapshot.Statuses, entities.StatusDef{
			ID:       entities.StatusID(m.ID),
			Name:     m.Name,
			Color:    m.Color,
			Terminal: m.Terminal,
		})
	}
	return snapshot, nil
}

func (s *Store) SaveComponents(ctx context.Context, components []entities.Component) error {
	rows := make([]componentModel, 0, len(components))
	for i, c := range components {
		rows = append(rows, toComponentModel(i, c))
	}
	return replaceAll(ctx, s.db, "components", rows)
}

func (s *Store) SaveCategories(ctx context.Context, categories []entities.Category) error {
	rows := make([]categoryModel, 0, len(categories))
	for i, c := range categories {
		rows = append(rows, categoryModel{ID: string(c.ID), Seq: i, Name: c.Name})
	}
	return replaceAll(ctx, s.db, "categories", rows)
}

// SaveSubassemblies stores the partitions in sorted category order. Node order
// within a partition is kept.
func (s *Store) SaveSubassemblies(ctx context.Context, partitions map[entities.CategoryID][]entities.Subassembly) error {
	rows := make([]subassemblyModel, 0)
	for _, category := range sortedCategories(partitions) {
		for _, node := range partitions[category] {
			row, err := toSubassemblyModel(len(rows), category, node)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
	}
	return replaceAll(ctx, s.db, "subassemblies", rows)
}

func (s *Store) SaveStatuses(ctx context.Context, statuses []entities.StatusDef) error {
	rows := make([]statusModel, 0, len(statuses))
	for i, st := range statuses {
		rows = append(rows, statusModel{ID: string(st.ID), Seq: i, Name: st.Name, Color: st.Color, Terminal: st.Terminal})
	}
	return replaceAll(ctx, s.db, "statuses", rows)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// replaceAll swaps a table's content in one transaction
func replaceAll[T any](ctx context.Context, db *gorm.DB, name string, rows []T) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model T
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
