package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	graph     *memory.SubassemblyRepository
	inventory *memory.ComponentRepository
	engine    *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	inventory := memory.NewComponentRepository(3)
	require.NoError(t, inventory.Replace([]entities.Component{
		{ID: "comp-4", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28},
		{ID: "comp-5", Name: "Wheel", Stock: 40, LeadTimeDays: 7},
		{ID: "comp-6", Name: "Frame", Stock: 3, LeadTimeDays: 14},
	}))

	graph := memory.NewSubassemblyRepository(4)
	require.NoError(t, graph.Replace(map[entities.CategoryID][]entities.Subassembly{
		"cart": {
			{ID: "cart-1", Name: "Cart", TargetQuantity: 10, Status: "in_progress", Children: []entities.NodeID{"control-unit-1", "ghost"}},
			{ID: "frame-1", Name: "Frame", Quantity: 5, TargetQuantity: 5, Status: "planned"},
		},
		"control": {
			{
				ID: "control-unit-1", Name: "Control unit SA-10000111", Quantity: 1, TargetQuantity: 10, Status: "completed",
				Components: []entities.ComponentRequirement{
					{ComponentID: "comp-4", RequiredQuantity: 1},
					{ComponentID: "comp-404", RequiredQuantity: 2},
				},
			},
		},
	}, []entities.CategoryID{"cart", "control"}))

	return &fixture{
		graph:     graph,
		inventory: inventory,
		engine:    NewEngine(graph, inventory, memory.NewStatusRepository(), nil),
	}
}

func TestEngine_FindNodeByFuzzyName(t *testing.T) {
	f := newFixture(t)

	match := f.engine.FindNodeByFuzzyName("contro")
	require.True(t, match.Found)
	assert.Equal(t, "Control unit SA-10000111", match.Node.Name)

	match = f.engine.FindNodeByFuzzyName("CONTROL UNIT")
	require.True(t, match.Found)
	assert.Equal(t, entities.NodeID("control-unit-1"), match.Node.ID)

	match = f.engine.FindNodeByFuzzyName("zzz")
	assert.False(t, match.Found)
	assert.Nil(t, match.Node)
	assert.Equal(t, []string{"Cart", "Frame", "Control unit SA-10000111"}, match.Suggestions)

	match = f.engine.FindNodeByFuzzyName("   ")
	assert.False(t, match.Found)
}

func TestEngine_FindComponentByFuzzyName(t *testing.T) {
	f := newFixture(t)

	match := f.engine.FindComponentByFuzzyName("motor")
	require.True(t, match.Found)
	assert.Equal(t, entities.ComponentID("comp-4"), match.Component.ID)

	match = f.engine.FindComponentByFuzzyName("bolt")
	assert.False(t, match.Found)
	assert.Len(t, match.Suggestions, 3)
}

func TestEngine_RequirementsOf(t *testing.T) {
	f := newFixture(t)

	views, err := f.engine.RequirementsOf("control-unit-1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, dto.RequirementView{
		ComponentID: "comp-4", Name: "Motor 24V", RequiredQuantity: 1, Stock: 12, LeadTimeDays: 28, Known: true,
	}, views[0])
	assert.False(t, views[1].Known)
	assert.Equal(t, "comp-404", views[1].Name)

	_, err = f.engine.RequirementsOf("nope")
	assert.True(t, entities.IsNotFound(err))
}

func TestEngine_Describe(t *testing.T) {
	f := newFixture(t)

	composition := f.engine.Describe("cart")
	require.True(t, composition.Match.Found)
	assert.Equal(t, []string{"Control unit SA-10000111"}, composition.Children)
	assert.Empty(t, composition.Requirements)

	composition = f.engine.Describe("zzz")
	assert.False(t, composition.Match.Found)
	assert.NotEmpty(t, composition.Match.Suggestions)
}

func TestEngine_Roots(t *testing.T) {
	f := newFixture(t)

	roots := f.engine.Roots("")
	require.Len(t, roots, 2)
	assert.Equal(t, entities.NodeID("cart-1"), roots[0].ID)
	assert.Equal(t, entities.NodeID("frame-1"), roots[1].ID)

	assert.Empty(t, f.engine.Roots("control"))

	_, err := f.graph.Connect("cart-1", "frame-1")
	require.NoError(t, err)
	assert.Len(t, f.engine.Roots(""), 1)
}

func TestEngine_ResolveName(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		input    string
		expected dto.NameRef
	}{
		{name: "component", input: "motor 24v", expected: dto.NameRef{Kind: dto.NameKindComponent, ID: "comp-4"}},
		{name: "subassembly", input: "Cart", expected: dto.NameRef{Kind: dto.NameKindSubassembly, ID: "cart-1"}},
		{name: "collision prefers component", input: "frame", expected: dto.NameRef{Kind: dto.NameKindComponent, ID: "comp-6"}},
		{name: "unknown", input: "Gearbox", expected: dto.NameRef{Kind: dto.NameKindNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.engine.ResolveName(tt.input))
		})
	}
}

func TestEngine_BulkApplyQuantities(t *testing.T) {
	f := newFixture(t)

	result := f.engine.BulkApplyQuantities([]dto.QuantityUpdate{
		{Name: "Motor 24V", Quantity: 30},
		{Name: "control unit sa-10000111", Quantity: 8},
		{Name: "Frame", Quantity: 9},
		{Name: "Gearbox", Quantity: 1},
		{Name: "Wheel", Quantity: -4},
	})

	assert.Equal(t, 3, result.Updated)
	assert.Equal(t, 1, result.NotFound)
	assert.Equal(t, 1, result.Invalid)
	assert.Equal(t, []string{"Gearbox"}, result.NotFoundNames)
	assert.True(t, result.ComponentsTouched)
	assert.True(t, result.SubassembliesTouched)

	motor, err := f.inventory.Get("comp-4")
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(30), motor.Stock)

	unit, _ := f.graph.Lookup("control-unit-1")
	assert.Equal(t, entities.Quantity(8), unit.Quantity)

	frameComponent, _ := f.inventory.Get("comp-6")
	frameNode, _ := f.graph.Lookup("frame-1")
	assert.Equal(t, entities.Quantity(9), frameComponent.Stock)
	assert.Equal(t, entities.Quantity(5), frameNode.Quantity)

	wheel, _ := f.inventory.Get("comp-5")
	assert.Equal(t, entities.Quantity(40), wheel.Stock)
}

func TestEngine_Issues(t *testing.T) {
	f := newFixture(t)

	issues := f.engine.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, entities.NodeID("cart-1"), issues[0].ID)
}
