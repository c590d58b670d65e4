package wardrobe

import "math/rand"

// BuildOptions returns the correct label together with up to two distractors
// drawn from labels, in random order. Every entry of labels equal to correct is
// excluded from the distractors.
func BuildOptions(rng *rand.Rand, correct string, labels []string) []string {
	others := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != correct {
			others = append(others, label)
		}
	}

	shuffle(rng, others)

	opts := append([]string{correct}, others[:min(2, len(others))]...)
	shuffle(rng, opts)

	return opts
}

func shuffle(rng *rand.Rand, labels []string) {
	rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})
}
