package file

import (
	"sort"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func toDocument(partitions map[entities.CategoryID][]entities.Subassembly) subassemblyDocument {
	keys := make([]entities.CategoryID, 0, len(partitions))
	for key := range partitions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	doc := subassemblyDocument{Partitions: make([]partition, 0, len(keys))}
	for _, key := range keys {
		nodes := partitions[key]
		if nodes == nil {
			nodes = []entities.Subassembly{}
		}
		doc.Partitions = append(doc.Partitions, partition{Category: key, Subassemblies: nodes})
	}
	return doc
}
