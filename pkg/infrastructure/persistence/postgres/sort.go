package postgres

import (
	"sort"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func sortedCategories(partitions map[entities.CategoryID][]entities.Subassembly) []entities.CategoryID {
	keys := make([]entities.CategoryID, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
