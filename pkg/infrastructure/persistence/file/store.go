// Package file stores the workspace as yaml files, one per aggregate, in a directory
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

const (
	componentsFile    = "components.yaml"
	categoriesFile    = "categories.yaml"
	subassembliesFile = "subassemblies.yaml"
	statusesFile      = "statuses.yaml"
)

// Store keeps one yaml document per aggregate. Writes go to a temp file that is
// renamed over the previous document, so a crash never leaves a torn file.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ repositories.StateStore = (*Store)(nil)

// subassemblyDocument preserves category order, which a yaml map would lose
type subassemblyDocument struct {
	Partitions []partition `yaml:"partitions"`
}

type partition struct {
	Category      entities.CategoryID    `yaml:"category"`
	Subassemblies []entities.Subassembly `yaml:"subassemblies"`
}

// NewStore creates dir when missing
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the storage directory
func (s *Store) Dir() string {
	return s.dir
}

// Load reads every document. ErrNoState is returned when none exists yet; a missing
// document next to existing ones loads as empty.
func (s *Store) Load(ctx context.Context) (*entities.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := &entities.Snapshot{Subassemblies: make(map[entities.CategoryID][]entities.Subassembly)}
	var doc subassemblyDocument

	found := 0
	for _, target := range []struct {
		name string
		out  interface{}
	}{
		{componentsFile, &snapshot.Components},
		{categoriesFile, &snapshot.Categories},
		{subassembliesFile, &doc},
		{statusesFile, &snapshot.Statuses},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := s.read(target.name, target.out)
		if err != nil {
			return nil, err
		}
		if ok {
			found++
		}
	}
	if found == 0 {
		return nil, repositories.ErrNoState
	}

	for _, p := range doc.Partitions {
		snapshot.Subassemblies[p.Category] = p.Subassemblies
	}
	return snapshot, nil
}

func (s *Store) SaveComponents(ctx context.Context, components []entities.Component) error {
	return s.write(ctx, componentsFile, components)
}

func (s *Store) SaveCategories(ctx context.Context, categories []entities.Category) error {
	return s.write(ctx, categoriesFile, categories)
}

// SaveSubassemblies writes partitions sorted by category id
func (s *Store) SaveSubassemblies(ctx context.Context, partitions map[entities.CategoryID][]entities.Subassembly) error {
	return s.write(ctx, subassembliesFile, toDocument(partitions))
}

func (s *Store) SaveStatuses(ctx context.Context, statuses []entities.StatusDef) error {
	return s.write(ctx, statusesFile, statuses)
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) read(name string, out interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, name string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
