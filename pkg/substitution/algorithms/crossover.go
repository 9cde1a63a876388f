package algorithms

import (
	"math/rand/v2"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

const (
	// Cut points are kept away from both ends of the alphabet so a child is
	// never a plain copy of one parent.
	minCutPoint = 7
	maxCutPoint = 20
)

// Recombine draws one cut point in [7, 20] and returns the two children of
// p1 and p2, the second one built with the parent roles swapped.
func Recombine(p1, p2 framework.Key, rng *rand.Rand) (framework.Key, framework.Key) {
	cut := minCutPoint + rng.IntN(maxCutPoint-minCutPoint+1)
	return Crossover(p1, p2, cut), Crossover(p2, p1, cut)
}

// Crossover performs single point crossover followed by a repair step, so
// the child is always a permutation. cut must be in [0, 26].
//
// Letters before cut take p1's image. Each later letter takes p2's image if
// it is still free, else p1's image if that is free, else it is deferred.
// Deferred letters then receive the images nobody has used yet, taken from
// the end of p2's image order. Every letter either claims a distinct image
// or is deferred, so the free images always number exactly as many as the
// deferred letters.
func Crossover(p1, p2 framework.Key, cut int) framework.Key {
	var (
		child framework.Key
		used  [framework.AlphabetSize]bool
	)
	for i := 0; i < cut; i++ {
		child[i] = p1[i]
		used[p1[i]] = true
	}

	var deferred []int
	for i := cut; i < framework.AlphabetSize; i++ {
		switch {
		case !used[p2[i]]:
			child[i] = p2[i]
		case !used[p1[i]]:
			child[i] = p1[i]
		default:
			deferred = append(deferred, i)
			continue
		}
		used[child[i]] = true
	}
	if len(deferred) == 0 {
		return child
	}

	free := make([]uint8, 0, len(deferred))
	for _, v := range p2 {
		if !used[v] {
			free = append(free, v)
		}
	}
	for _, i := range deferred {
		last := len(free) - 1
		child[i] = free[last]
		free = free[:last]
	}
	return child
}
