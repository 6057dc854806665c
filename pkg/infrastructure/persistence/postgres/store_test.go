package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/domain/repositories"
	testhelpers "github.com/vsinha/prodtrack/pkg/infrastructure/testing"
)

func TestSubassemblyModel_JSONColumns(t *testing.T) {
	node := entities.Subassembly{
		ID:             "cart-1",
		Name:           "Cart",
		TargetQuantity: 10,
		Children:       []entities.NodeID{"control-unit-1"},
		Components:     []entities.ComponentRequirement{{ComponentID: "comp-7", RequiredQuantity: 4}},
		Position:       entities.Position{X: 120, Y: 40},
	}

	row, err := toSubassemblyModel(3, "cart", node)
	require.NoError(t, err)
	assert.Equal(t, 3, row.Seq)
	assert.JSONEq(t, `["control-unit-1"]`, string(row.Children))
	assert.JSONEq(t, `[{"component_id":"comp-7","required_quantity":4}]`, string(row.Components))
	assert.JSONEq(t, `[]`, string(row.Comments), "nil slices are stored as empty arrays")

	back, err := row.entity()
	require.NoError(t, err)
	assert.Equal(t, entities.CategoryID("cart"), back.Category)
	assert.Equal(t, node.Children, back.Children)
	assert.Equal(t, node.Components, back.Components)
	assert.Equal(t, node.Position, back.Position)
}

func TestSubassemblyModel_CorruptColumn(t *testing.T) {
	row := subassemblyModel{ID: "x", Children: []byte(`{"oops"`)}
	_, err := row.entity()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subassembly x children")
}

func TestComponentModel_KeepsCost(t *testing.T) {
	c := entities.Component{ID: "comp-4", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28, UnitCost: decimal.RequireFromString("35.25")}
	assert.Equal(t, c, toComponentModel(0, c).entity())
}

func TestStore_Integration(t *testing.T) {
	dsn := testhelpers.EnvOrSkip(t, "PRODTRACK_TEST_POSTGRES_DSN")
	ctx := context.Background()

	store, err := Open(ctx, dsn, PoolConfig{MaxOpenConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.SaveComponents(ctx, nil)
		_ = store.SaveCategories(ctx, nil)
		_ = store.SaveSubassemblies(ctx, nil)
		_ = store.SaveStatuses(ctx, nil)
		store.Close()
	})

	require.NoError(t, store.SaveComponents(ctx, nil))
	require.NoError(t, store.SaveCategories(ctx, nil))
	require.NoError(t, store.SaveSubassemblies(ctx, nil))
	require.NoError(t, store.SaveStatuses(ctx, nil))
	_, err = store.Load(ctx)
	require.True(t, errors.Is(err, repositories.ErrNoState))

	snapshot := testhelpers.BuildCartSnapshot()
	require.NoError(t, store.SaveComponents(ctx, snapshot.Components))
	require.NoError(t, store.SaveCategories(ctx, snapshot.Categories))
	require.NoError(t, store.SaveSubassemblies(ctx, snapshot.Subassemblies))
	require.NoError(t, store.SaveStatuses(ctx, snapshot.Statuses))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Categories, loaded.Categories)
	assert.Equal(t, snapshot.Statuses, loaded.Statuses)
	require.Len(t, loaded.Subassemblies["control"], 1)
	assert.Equal(t, snapshot.Subassemblies["control"][0].Components, loaded.Subassemblies["control"][0].Components)
	require.Len(t, loaded.Components, 2)
	assert.True(t, snapshot.Components[0].UnitCost.Equal(loaded.Components[0].UnitCost))
}
