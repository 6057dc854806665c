package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
)

func TestStore_EmptyDirectoryHasNoState(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "data"))
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.True(t, errors.Is(err, repositories.ErrNoState))
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	components := []entities.Component{
		{ID: "comp-4", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28, UnitCost: decimal.RequireFromString("35.50")},
	}
	partitions := map[entities.CategoryID][]entities.Subassembly{
		"control": {{ID: "control-unit-1", Name: "Control unit", Category: "control", TargetQuantity: 10,
			Components: []entities.ComponentRequirement{{ComponentID: "comp-4", RequiredQuantity: 1}}}},
		"cart": {{ID: "cart-1", Name: "Cart", Category: "cart", TargetQuantity: 10,
			Children: []entities.NodeID{"control-unit-1"}, Comments: []string{"paint it red"}}},
		"empty": nil,
	}

	require.NoError(t, store.SaveComponents(ctx, components))
	require.NoError(t, store.SaveSubassemblies(ctx, partitions))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snapshot.Components, 1)
	assert.Equal(t, "Motor 24V", snapshot.Components[0].Name)
	assert.True(t, decimal.RequireFromString("35.5").Equal(snapshot.Components[0].UnitCost))
	assert.Empty(t, snapshot.Categories, "categories were never saved")

	require.Len(t, snapshot.Subassemblies, 3)
	assert.Equal(t, []entities.NodeID{"control-unit-1"}, snapshot.Subassemblies["cart"][0].Children)
	assert.Equal(t, []string{"paint it red"}, snapshot.Subassemblies["cart"][0].Comments)
	assert.Empty(t, snapshot.Subassemblies["empty"])
}

func TestStore_SaveReplacesDocument(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveCategories(ctx, []entities.Category{{ID: "cart", Name: "Cart"}, {ID: "boat", Name: "Boat"}}))
	require.NoError(t, store.SaveCategories(ctx, []entities.Category{{ID: "boat", Name: "Boat"}}))

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Category{{ID: "boat", Name: "Boat"}}, snapshot.Categories)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, categoriesFile, entries[0].Name())
}

func TestStore_CorruptDocument(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), statusesFile), []byte("{not: [yaml"), 0o600))

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse statuses.yaml")
}

func TestStore_CancelledContext(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = store.SaveStatuses(ctx, entities.DefaultStatuses())
	assert.True(t, errors.Is(err, context.Canceled))
}
