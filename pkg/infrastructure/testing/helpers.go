package testing

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// Skipper is the part of *testing.T the env helpers need
type Skipper interface {
	Helper()
	Skipf(format string, args ...interface{})
}

// projectRoot walks up from this file to the directory holding go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadEnv merges the project .env into the environment, keeping existing variables
func LoadEnv() {
	if root := projectRoot(); root != "" {
		_ = godotenv.Load(filepath.Join(root, ".env"))
	}
}

// EnvOrSkip returns the variable or skips the test when it is unset.
// Integration tests against redis or postgres use it to stay opt-in.
func EnvOrSkip(t Skipper, key string) string {
	t.Helper()
	LoadEnv()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set, skipping integration test", key)
	}
	return value
}

// BuildCartSnapshot builds the cart scenario: cart-1 needs one control-unit-1, which
// needs one Motor 24V. Stock covers ten carts; twenty leave a shortfall of eight.
func BuildCartSnapshot() *entities.Snapshot {
	return &entities.Snapshot{
		Components: []entities.Component{
			{ID: "comp-4", Name: "Motor 24V", Stock: 12, LeadTimeDays: 28, UnitCost: decimal.RequireFromString("35")},
			{ID: "comp-7", Name: "Wheel", Stock: 100, LeadTimeDays: 3, UnitCost: decimal.RequireFromString("4.20")},
		},
		Categories: []entities.Category{
			{ID: "cart", Name: "Cart"},
			{ID: "control", Name: "Control"},
		},
		Subassemblies: map[entities.CategoryID][]entities.Subassembly{
			"cart": {
				{
					ID: "cart-1", Name: "Cart", Category: "cart", TargetQuantity: 10, Status: "in_progress",
					Children:   []entities.NodeID{"control-unit-1"},
					Components: []entities.ComponentRequirement{{ComponentID: "comp-7", RequiredQuantity: 4}},
				},
			},
			"control": {
				{
					ID: "control-unit-1", Name: "Control unit SA-10000111", Category: "control", TargetQuantity: 10, Status: "planned",
					Components: []entities.ComponentRequirement{{ComponentID: "comp-4", RequiredQuantity: 1}},
				},
			},
		},
		Statuses: entities.DefaultStatuses(),
	}
}
