package algorithms

import (
	"math/rand/v2"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

// swap is a transposition of the images at two distinct key positions.
type swap struct {
	i, j int
}

func drawSwap(rng *rand.Rand) swap {
	i := rng.IntN(framework.AlphabetSize)
	j := i
	for j == i {
		j = rng.IntN(framework.AlphabetSize)
	}
	return swap{i: i, j: j}
}

func drawSwaps(rng *rand.Rand, n int) []swap {
	swaps := make([]swap, n)
	for s := range swaps {
		swaps[s] = drawSwap(rng)
	}
	return swaps
}

func applySwaps(key framework.Key, swaps []swap) framework.Key {
	for _, s := range swaps {
		key = key.Swap(s.i, s.j)
	}
	return key
}

// Mutate returns a copy of key with n random swaps applied. Swaps that undo
// each other still count towards n.
func Mutate(key framework.Key, n int, rng *rand.Rand) framework.Key {
	return applySwaps(key, drawSwaps(rng, n))
}
