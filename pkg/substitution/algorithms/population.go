package algorithms

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"k8s.io/client-go/util/workqueue"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

const (
	lightMutations    = 1
	moderateMutations = 2
	heavyMutations    = 7
)

// ValidatePopulationSize checks that size splits into five equal groups
// whose elite group can be paired off for crossover.
func ValidatePopulationSize(size int) error {
	if size <= 0 || size%10 != 0 {
		return fmt.Errorf("%w, got %d", framework.ErrInvalidPopulationSize, size)
	}
	return nil
}

// Population is a fixed-size pool of candidate keys. It owns the breeding
// operators and draws all randomness from its own generator.
type Population struct {
	candidates []framework.Candidate
	rng        *rand.Rand
}

// NewPopulation creates size random keys.
func NewPopulation(size int, rng *rand.Rand) (*Population, error) {
	if err := ValidatePopulationSize(size); err != nil {
		return nil, err
	}
	candidates := make([]framework.Candidate, size)
	for i := range candidates {
		candidates[i] = framework.Candidate{Key: framework.NewRandomKey(rng)}
	}
	return &Population{candidates: candidates, rng: rng}, nil
}

func (p *Population) Len() int {
	return len(p.candidates)
}

// At returns the i-th candidate in the current order.
func (p *Population) At(i int) framework.Candidate {
	return p.candidates[i]
}

// Candidates returns a copy of the current candidates.
func (p *Population) Candidates() []framework.Candidate {
	return slices.Clone(p.candidates)
}

// SortByScore orders the population best first; ties keep their order.
func (p *Population) SortByScore() {
	framework.SortByScore(p.candidates)
}

// Evaluate scores every candidate with fn using up to workers goroutines.
// fn must not share mutable state between calls. Scores land in the slot of
// their candidate, so the order is the same as with a sequential pass.
func (p *Population) Evaluate(ctx context.Context, fn framework.FitnessFunc, workers int) error {
	if workers <= 1 {
		for i := range p.candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.candidates[i].Score = fn(p.candidates[i].Key)
		}
		return nil
	}
	workqueue.ParallelizeUntil(ctx, workers, len(p.candidates), func(i int) {
		p.candidates[i].Score = fn(p.candidates[i].Key)
	})
	return ctx.Err()
}

// GenerateNewGeneration replaces the population with, in order: the top
// fifth unchanged, those elites with 1 and 2 swaps, the crossover children
// of adjacent elite pairs, and the elites with 7 swaps. All scores are reset.
func (p *Population) GenerateNewGeneration() {
	p.SortByScore()

	eliteCount := len(p.candidates) / 5
	elites := make([]framework.Key, eliteCount)
	for i := range elites {
		elites[i] = p.candidates[i].Key
	}

	light := make([]framework.Key, eliteCount)
	moderate := make([]framework.Key, eliteCount)
	heavy := make([]framework.Key, eliteCount)
	for i, e := range elites {
		light[i] = Mutate(e, lightMutations, p.rng)
		moderate[i] = Mutate(e, moderateMutations, p.rng)
		heavy[i] = Mutate(e, heavyMutations, p.rng)
	}

	offspring := make([]framework.Key, eliteCount)
	for i := 0; i+1 < eliteCount; i += 2 {
		offspring[i], offspring[i+1] = Recombine(elites[i], elites[i+1], p.rng)
	}

	next := make([]framework.Candidate, 0, len(p.candidates))
	for _, group := range [][]framework.Key{elites, light, moderate, offspring, heavy} {
		for _, k := range group {
			next = append(next, framework.Candidate{Key: k})
		}
	}
	p.candidates = next
}
