package types

import "strings"

// DefaultCategories is the built-in category set returned when the backing
// collection is unreachable or empty. It mirrors the seed data shipped with
// the first deployment.
func DefaultCategories() []string {
	return []string{"旅行", "グルメ", "家", "日常"}
}

// TrimCategory normalizes a category name for comparison: surrounding
// whitespace is removed, case is preserved.
func TrimCategory(name string) string {
	return strings.TrimSpace(name)
}

// DedupeCategories collapses duplicate names after trimming, preserving
// first occurrence order and dropping empty entries.
func DedupeCategories(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = TrimCategory(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
