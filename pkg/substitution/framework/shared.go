package framework

import (
	"cmp"
	"slices"
)

// SortByScore orders candidates by descending score. The sort is stable:
// candidates with equal scores keep their previous relative order, which
// keeps seeded runs reproducible.
func SortByScore(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// Scores returns the scores of candidates in order.
func Scores(candidates []Candidate) []float64 {
	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = candidates[i].Score
	}
	return scores
}

// Best returns the highest scoring candidate, preferring the earliest on ties.
func Best(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}
