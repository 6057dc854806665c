package bom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	graph     *memory.SubassemblyRepository
	inventory *memory.ComponentRepository
	resolver  *Resolver
}

func newFixture(t *testing.T, components []entities.Component, nodes ...entities.Subassembly) *fixture {
	t.Helper()

	inventory := memory.NewComponentRepository(len(components))
	require.NoError(t, inventory.Replace(components))

	partitions := make(map[entities.CategoryID][]entities.Subassembly)
	var order []entities.CategoryID
	for _, n := range nodes {
		if _, ok := partitions[n.Category]; !ok {
			order = append(order, n.Category)
		}
		partitions[n.Category] = append(partitions[n.Category], n)
	}
	graph := memory.NewSubassemblyRepository(len(nodes))
	require.NoError(t, graph.Replace(partitions, order))

	return &fixture{
		graph:     graph,
		inventory: inventory,
		resolver:  NewResolver(graph, inventory, nil, DefaultConfig()),
	}
}

func sub(id entities.NodeID, category entities.CategoryID, children ...entities.NodeID) entities.Subassembly {
	return entities.Subassembly{
		ID:             id,
		Name:           string(id),
		Category:       category,
		TargetQuantity: 1,
		Children:       children,
	}
}

func requires(n entities.Subassembly, reqs ...entities.ComponentRequirement) entities.Subassembly {
	n.Components = reqs
	return n
}

func req(id entities.ComponentID, qty entities.Quantity) entities.ComponentRequirement {
	return entities.ComponentRequirement{ComponentID: id, RequiredQuantity: qty}
}

func root(id entities.NodeID, qty entities.Quantity) []entities.PlanTarget {
	return []entities.PlanTarget{{RootID: id, Quantity: qty}}
}

func planIDs(items []entities.PlanItem) []entities.NodeID {
	ids := make([]entities.NodeID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.NodeID)
	}
	return ids
}

func cartFixture(t *testing.T) *fixture {
	cart := sub("cart-1", "cart", "control-unit-1")
	cart.Name = "Cart"
	cart.TargetQuantity = 10
	unit := requires(sub("control-unit-1", "control"), req("comp-4", 1))
	unit.Name = "Control unit SA-10000111"

	return newFixture(t,
		[]entities.Component{
			{ID: "comp-4", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28, UnitCost: decimal.RequireFromString("2.50")},
		},
		cart, unit,
	)
}

func TestResolver_CartScenario(t *testing.T) {
	tests := []struct {
		name             string
		quantity         entities.Quantity
		expectedDemand   entities.Quantity
		expectedShort    entities.Quantity
		expectedUrgency  entities.Urgency
		expectedDeadline *int
		expectedCost     string
	}{
		{
			name:            "stock covers demand",
			quantity:        10,
			expectedDemand:  10,
			expectedShort:   0,
			expectedUrgency: entities.InStock,
			expectedCost:    "0",
		},
		{
			name:             "stock short by eight",
			quantity:         20,
			expectedDemand:   20,
			expectedShort:    8,
			expectedUrgency:  entities.Urgent,
			expectedDeadline: intPtr(2),
			expectedCost:     "20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cartFixture(t)

			result, err := f.resolver.Resolve(root("cart-1", tt.quantity))
			require.NoError(t, err)
			require.True(t, result.Found)

			assert.Equal(t, []entities.NodeID{"cart-1", "control-unit-1"}, planIDs(result.Plan))
			assert.Equal(t, map[string]entities.Quantity{"Motor 24V": tt.expectedDemand}, result.Demand)

			report, err := f.resolver.Shortfalls(result, 30)
			require.NoError(t, err)
			require.Len(t, report.Rows, 1)

			row := report.Rows[0]
			assert.Equal(t, tt.expectedShort, row.Shortfall)
			assert.Equal(t, tt.expectedUrgency, row.Urgency)
			assert.Equal(t, tt.expectedDeadline, row.OrderDeadline)
			assert.True(t, decimal.RequireFromString(tt.expectedCost).Equal(row.OrderCost),
				"expected order cost %s, got %s", tt.expectedCost, row.OrderCost)
		})
	}
}

func TestResolver_VisitOnce(t *testing.T) {
	f := newFixture(t,
		[]entities.Component{{ID: "bolt", Name: "Bolt", Stock: 0}},
		sub("A", "line", "B", "C"),
		sub("B", "line", "D"),
		sub("C", "line", "D"),
		requires(sub("D", "line"), req("bolt", 2)),
	)

	result, err := f.resolver.Resolve(root("A", 3))
	require.NoError(t, err)

	assert.Equal(t, []entities.NodeID{"A", "B", "C", "D"}, planIDs(result.Plan))
	assert.Equal(t, entities.Quantity(6), result.Demand["Bolt"])
}

func TestResolver_CycleTerminates(t *testing.T) {
	f := newFixture(t,
		[]entities.Component{{ID: "pin", Name: "Pin"}},
		requires(sub("A", "line", "B"), req("pin", 1)),
		requires(sub("B", "line", "A"), req("pin", 1)),
	)

	result, err := f.resolver.Resolve(root("A", 4))
	require.NoError(t, err)

	assert.Equal(t, []entities.NodeID{"A", "B"}, planIDs(result.Plan))
	assert.Equal(t, entities.Quantity(8), result.Demand["Pin"])
}

func TestResolver_FlatMultiplier(t *testing.T) {
	top := sub("A", "line", "B")
	middle := sub("B", "line", "C")
	middle.Quantity = 7
	middle.TargetQuantity = 2
	f := newFixture(t,
		[]entities.Component{{ID: "c", Name: "Component C"}},
		top, middle,
		requires(sub("C", "line"), req("c", 3)),
	)

	result, err := f.resolver.Resolve(root("A", 5))
	require.NoError(t, err)

	// intermediate quantities do not compound
	assert.Equal(t, entities.Quantity(15), result.Demand["Component C"])
	for _, item := range result.Plan {
		assert.Equal(t, entities.Quantity(5), item.TargetQuantity, "node %s", item.NodeID)
	}
}

func TestResolver_FirstDiscoveredQuantityWins(t *testing.T) {
	f := newFixture(t,
		[]entities.Component{{ID: "gear", Name: "Gear"}},
		sub("R1", "line", "S"),
		sub("R2", "line", "S"),
		requires(sub("S", "line"), req("gear", 1)),
	)

	result, err := f.resolver.Resolve([]entities.PlanTarget{
		{RootID: "R1", Quantity: 2},
		{RootID: "R2", Quantity: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, []entities.NodeID{"R1", "R2", "S"}, planIDs(result.Plan))
	assert.Equal(t, entities.Quantity(2), result.Plan[2].TargetQuantity)
	assert.Equal(t, entities.Quantity(2), result.Demand["Gear"])
}

func TestResolver_DanglingReferences(t *testing.T) {
	f := newFixture(t,
		[]entities.Component{{ID: "known", Name: "Known"}},
		requires(sub("A", "line", "ghost"), req("known", 1), req("missing", 4)),
	)

	result, err := f.resolver.Resolve(root("A", 2))
	require.NoError(t, err)
	require.True(t, result.Found)

	assert.Equal(t, []entities.NodeID{"A"}, planIDs(result.Plan))
	assert.Equal(t, map[string]entities.Quantity{"Known": 2}, result.Demand)
	assert.Equal(t, []entities.ComponentID{"missing"}, result.UnknownComponents)
}

func TestResolver_NotFoundListsRoots(t *testing.T) {
	f := cartFixture(t)

	result, err := f.resolver.Resolve(root("trolley-9", 1))
	require.NoError(t, err)

	assert.False(t, result.Found)
	assert.Equal(t, []string{"trolley-9"}, result.Missing)
	assert.Equal(t, []string{"Cart"}, result.AvailableRoots)
	assert.Empty(t, result.Plan)

	result, err = f.resolver.Resolve([]entities.PlanTarget{{CategoryID: "boats", Quantity: 1}})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Equal(t, []string{"boats"}, result.Missing)
}

func TestResolver_CategoryTarget(t *testing.T) {
	f := newFixture(t,
		[]entities.Component{{ID: "wheel", Name: "Wheel"}},
		requires(sub("cart-1", "cart"), req("wheel", 4)),
		requires(sub("cart-2", "cart"), req("wheel", 3)),
		requires(sub("boat-1", "boat"), req("wheel", 100)),
	)

	result, err := f.resolver.Resolve([]entities.PlanTarget{{CategoryID: "cart", Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, []entities.NodeID{"cart-1", "cart-2"}, planIDs(result.Plan))
	assert.Equal(t, entities.Quantity(14), result.Demand["Wheel"])
}

func TestResolver_Idempotent(t *testing.T) {
	f := cartFixture(t)

	first, err := f.resolver.Resolve(root("cart-1", 10))
	require.NoError(t, err)
	first.Demand["Motor 24V"] = 999
	first.Plan[0].Children[0] = "tampered"

	second, err := f.resolver.Resolve(root("cart-1", 10))
	require.NoError(t, err)

	assert.Equal(t, entities.Quantity(10), second.Demand["Motor 24V"])
	assert.Equal(t, entities.NodeID("control-unit-1"), second.Plan[0].Children[0])
	assert.Equal(t, 1, f.resolver.CacheSize())
}

func TestResolver_CacheFollowsMutations(t *testing.T) {
	f := cartFixture(t)

	before, err := f.resolver.Resolve(root("cart-1", 10))
	require.NoError(t, err)
	require.Equal(t, entities.Quantity(10), before.Demand["Motor 24V"])

	_, err = f.graph.SetRequirement("control-unit-1", "comp-4", 3)
	require.NoError(t, err)

	after, err := f.resolver.Resolve(root("cart-1", 10))
	require.NoError(t, err)
	assert.Equal(t, entities.Quantity(30), after.Demand["Motor 24V"])
}

func TestResolver_CacheIsBounded(t *testing.T) {
	f := cartFixture(t)
	f.resolver = NewResolver(f.graph, f.inventory, nil, Config{CacheEntries: 2})

	for qty := entities.Quantity(1); qty <= 5; qty++ {
		_, err := f.resolver.Resolve(root("cart-1", qty))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, f.resolver.CacheSize())

	f.resolver.ClearCache()
	assert.Equal(t, 0, f.resolver.CacheSize())
}

func TestResolver_ShortfallMonotonic(t *testing.T) {
	f := cartFixture(t)

	var lastRequired, lastShort entities.Quantity
	for qty := entities.Quantity(1); qty <= 40; qty++ {
		result, err := f.resolver.Resolve(root("cart-1", qty))
		require.NoError(t, err)
		report, err := f.resolver.Shortfalls(result, 30)
		require.NoError(t, err)

		row := report.Rows[0]
		assert.GreaterOrEqual(t, row.Required, lastRequired)
		assert.GreaterOrEqual(t, row.Shortfall, lastShort)
		lastRequired, lastShort = row.Required, row.Shortfall
	}
}

func TestResolver_Validate(t *testing.T) {
	f := cartFixture(t)

	tests := []struct {
		name        string
		targets     []entities.PlanTarget
		expectedErr string
	}{
		{
			name:        "no targets",
			targets:     nil,
			expectedErr: "targets: at least one target is required",
		},
		{
			name:        "zero quantity",
			targets:     root("cart-1", 0),
			expectedErr: "quantity: target quantity must be at least 1, got 0",
		},
		{
			name:        "root and category",
			targets:     []entities.PlanTarget{{RootID: "cart-1", CategoryID: "cart", Quantity: 1}},
			expectedErr: "targets: target needs exactly one of root id or category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.resolver.Resolve(tt.targets)
			require.Error(t, err)
			assert.Equal(t, tt.expectedErr, err.Error())
			assert.True(t, entities.IsValidation(err))
		})
	}
}

func TestShortfalls_RejectsNegativeCycle(t *testing.T) {
	f := cartFixture(t)
	result, err := f.resolver.Resolve(root("cart-1", 1))
	require.NoError(t, err)

	_, err = f.resolver.Shortfalls(result, -1)
	require.Error(t, err)
	assert.Equal(t, "production_cycle_days: production cycle cannot be negative, got -1", err.Error())
}

func TestShortfalls_SortedByDeadline(t *testing.T) {
	f := newFixture(t,
		[]entities.Component{
			{ID: "plenty", Name: "Plenty", Stock: 100, LeadTimeDays: 1},
			{ID: "slow", Name: "Slow", LeadTimeDays: 40},
			{ID: "relaxed", Name: "Relaxed", LeadTimeDays: 5},
			{ID: "tight", Name: "Tight", LeadTimeDays: 27},
		},
		requires(sub("A", "line"), req("plenty", 1), req("relaxed", 1), req("slow", 1), req("tight", 1)),
	)

	report, err := f.resolver.Plan(root("A", 1), 30)
	require.NoError(t, err)
	require.NotNil(t, report.Shortfall)

	var names []string
	var urgencies []entities.Urgency
	for _, row := range report.Shortfall.Rows {
		names = append(names, row.Name)
		urgencies = append(urgencies, row.Urgency)
	}
	assert.Equal(t, []string{"Slow", "Tight", "Relaxed", "Plenty"}, names)
	assert.Equal(t, []entities.Urgency{entities.Critical, entities.Urgent, entities.SafeToOrder, entities.InStock}, urgencies)
	assert.Equal(t, 3, report.Shortfall.ShortCount)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name             string
		shortfall        entities.Quantity
		cycle            int
		lead             int
		expectedUrgency  entities.Urgency
		expectedDeadline *int
	}{
		{name: "nothing short", shortfall: 0, cycle: 30, lead: 40, expectedUrgency: entities.InStock},
		{name: "deadline zero", shortfall: 1, cycle: 10, lead: 10, expectedUrgency: entities.Urgent, expectedDeadline: intPtr(0)},
		{name: "deadline five", shortfall: 1, cycle: 15, lead: 10, expectedUrgency: entities.Urgent, expectedDeadline: intPtr(5)},
		{name: "deadline six", shortfall: 1, cycle: 16, lead: 10, expectedUrgency: entities.SafeToOrder, expectedDeadline: intPtr(6)},
		{name: "already late", shortfall: 1, cycle: 9, lead: 10, expectedUrgency: entities.Critical, expectedDeadline: intPtr(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urgency, deadline := Classify(tt.shortfall, tt.cycle, tt.lead)
			assert.Equal(t, tt.expectedUrgency, urgency)
			assert.Equal(t, tt.expectedDeadline, deadline)
		})
	}
}

func intPtr(v int) *int {
	return &v
}
