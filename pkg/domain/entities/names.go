package entities

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldName normalizes a display name for case-insensitive comparison.
// Surrounding whitespace is ignored, spreadsheet cells often carry it.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two display names match case-insensitively
func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// NameContains reports whether name contains query case-insensitively
func NameContains(name, query string) bool {
	return strings.Contains(FoldName(name), FoldName(query))
}
