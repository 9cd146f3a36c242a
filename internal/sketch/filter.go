package sketch

import (
	"slices"
	"strings"
)

// FilterSort returns the records accepted by keep, ordered by cmp. The sort
// is stable so equal keys keep their dataset order. A nil cmp keeps dataset
// order. records is never modified.
func FilterSort[T any](records []T, keep func(T) bool, cmp func(a, b T) int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// ContainsFold reports whether any field contains query, ignoring case. An
// empty query matches everything.
func ContainsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
