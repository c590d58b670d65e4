package wardrobe

import "math/rand"

// InitSession picks the questions for one play-through: a uniformly random
// permutation of pool truncated to count items. The pool itself is left
// untouched. A count below one is treated as one.
func InitSession(rng *rand.Rand, pool []*Item, count int) []*Item {
	if len(pool) == 0 {
		return []*Item{}
	}

	shuffled := make([]*Item, len(pool))
	copy(shuffled, pool)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled[:min(max(count, 1), len(shuffled))]
}
