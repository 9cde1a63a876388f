package algorithms

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

func TestCrossoverAlwaysBijective(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))
	for trial := 0; trial < 2000; trial++ {
		p1, p2 := framework.NewRandomKey(rng), framework.NewRandomKey(rng)
		for cut := minCutPoint; cut <= maxCutPoint; cut++ {
			child := Crossover(p1, p2, cut)
			require.NoError(t, child.Validate(), "p1=%s p2=%s cut=%d", p1, p2, cut)

			// The prefix always comes from the first parent.
			assert.Equal(t, p1[:cut], child[:cut])
		}
	}
}

func TestCrossoverEdgeCuts(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 8))
	p1, p2 := framework.NewRandomKey(rng), framework.NewRandomKey(rng)

	assert.Equal(t, p1, Crossover(p1, p2, framework.AlphabetSize))
	// With nothing copied from p1 every image of p2 is free.
	assert.Equal(t, p2, Crossover(p1, p2, 0))
	assert.Equal(t, p1, Crossover(p1, p1, 13))
}

func TestCrossoverRepair(t *testing.T) {
	// p2 is p1 rotated by one letter. Z's image under both parents is taken
	// by the prefix, so Z is deferred and gets the only free image, K.
	p1 := framework.IdentityKey()
	var p2 framework.Key
	for i := range p2 {
		p2[i] = uint8((i + 1) % framework.AlphabetSize)
	}

	child := Crossover(p1, p2, 10)
	require.NoError(t, child.Validate())

	want := "ABCDEFGHIJLMNOPQRSTUVWXYZK"
	if diff := cmp.Diff(want, child.String()); diff != "" {
		t.Errorf("unexpected child (-want +got):\n%s", diff)
	}
}

func TestRecombine(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 3))
	for trial := 0; trial < 500; trial++ {
		p1, p2 := framework.NewRandomKey(rng), framework.NewRandomKey(rng)
		c1, c2 := Recombine(p1, p2, rng)
		require.True(t, c1.IsBijection())
		require.True(t, c2.IsBijection())
		// The cut point is at least minCutPoint, so each child keeps its
		// first parent's prefix.
		assert.Equal(t, p1[:minCutPoint], c1[:minCutPoint])
		assert.Equal(t, p2[:minCutPoint], c2[:minCutPoint])
	}
}

func TestMutateKeepsBijection(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	for _, n := range []int{0, 1, 2, 7, 100} {
		key := framework.NewRandomKey(rng)
		mutated := Mutate(key, n, rng)
		require.NoError(t, mutated.Validate())
		if n == 0 {
			assert.Equal(t, key, mutated)
		}
	}
}

func TestMutateSingleSwap(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	for trial := 0; trial < 200; trial++ {
		key := framework.NewRandomKey(rng)
		mutated := Mutate(key, 1, rng)
		diff := 0
		for i := range key {
			if key[i] != mutated[i] {
				diff++
			}
		}
		assert.Equal(t, 2, diff, "a single swap changes exactly two positions")
	}
}

func TestMutateReplayInReverseRestoresKey(t *testing.T) {
	key := framework.NewRandomKey(rand.New(rand.NewPCG(1, 1)))

	swaps := drawSwaps(rand.New(rand.NewPCG(42, 42)), heavyMutations)
	mutated := Mutate(key, heavyMutations, rand.New(rand.NewPCG(42, 42)))
	assert.Equal(t, applySwaps(key, swaps), mutated)

	for _, s := range swaps {
		assert.NotEqual(t, s.i, s.j)
	}

	reversed := slices.Clone(swaps)
	slices.Reverse(reversed)
	assert.Equal(t, key, applySwaps(mutated, reversed))
}
