// Package suggest derives the recall list shown next to the shopping list.
package suggest

import (
	"sort"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Visible returns the suggestions not already on the shopping list,
// compared case-insensitively and sorted ascending. When set is empty the
// caller's seed is used in its place; the seed is a display fallback and is
// never written back to the set.
func Visible(set, current, seed []string) []string {
	if len(set) == 0 {
		set = seed
	}

	listed := make(map[string]bool, len(current))
	for _, c := range current {
		listed[types.Normalize(c)] = true
	}

	seen := make(map[string]bool, len(set))
	out := make([]string, 0, len(set))
	for _, s := range set {
		n := types.Normalize(s)
		if n == "" || listed[n] || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
