package actionitems

import (
	"strings"
	"unicode/utf8"
)

// DedupKey is the lowercased first limit runes of the trimmed task.
func DedupKey(task string, limit int) string {
	task = strings.TrimSpace(task)
	if utf8.RuneCountInString(task) > limit {
		task = string([]rune(task)[:limit])
	}
	return strings.ToLower(task)
}

// Dedup keeps the first item for every key, preserving order.
func Dedup[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
