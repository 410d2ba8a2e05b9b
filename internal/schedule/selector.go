package schedule

import "math/rand/v2"

// selectTopics samples min(n, len(pool)) topics uniformly at random without
// replacement. An empty pool yields an empty selection, not an error.
func selectTopics(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}

	perm := rand.Perm(len(pool))
	selected := make([]string, n)
	for i := 0; i < n; i++ {
		selected[i] = pool[perm[i]]
	}
	return selected
}
