package store

import "github.com/lineupiq/context-api/internal/namematch"

// resolveIndex finds the first roster name matching the requested player,
// or -1.
func resolveIndex(player string, names []string) int {
	ref, ok := namematch.BestMatch(player, names)
	if !ok {
		return -1
	}
	for i, n := range names {
		if n == ref {
			return i
		}
	}
	return -1
}
