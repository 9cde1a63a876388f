package fitness

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

const (
	Name = "WordMatch"
)

// WordMatch scores a key by the share of the decoded tokens that also occur
// in a reference corpus. Both texts are split on whitespace only; punctuation
// handling is up to the caller (see the text package).
type WordMatch struct {
	ciphertext string
	vocabulary sets.Set[string]
}

var _ framework.Problem = &WordMatch{}

// NewWordMatch prepares the corpus vocabulary for ciphertext. A ciphertext
// without tokens or without letters cannot be scored and is rejected here.
func NewWordMatch(ciphertext, corpus string) (*WordMatch, error) {
	if len(strings.Fields(ciphertext)) == 0 {
		return nil, fmt.Errorf("ciphertext: %w", framework.ErrEmptyText)
	}
	if framework.CountLetters(ciphertext) == 0 {
		return nil, fmt.Errorf("ciphertext: %w", framework.ErrNoLetters)
	}
	return &WordMatch{
		ciphertext: ciphertext,
		vocabulary: sets.New(strings.Fields(corpus)...),
	}, nil
}

func (w *WordMatch) Name() string {
	return Name
}

func (w *WordMatch) Ciphertext() string {
	return w.ciphertext
}

// VocabularySize is the number of distinct corpus tokens.
func (w *WordMatch) VocabularySize() int {
	return w.vocabulary.Len()
}

// Score returns |set(decoded tokens) ∩ vocabulary| / len(decoded tokens).
// Distinct tokens are counted in the numerator, every token in the
// denominator, so the result is in [0, 1].
func (w *WordMatch) Score(decoded string) float64 {
	tokens := strings.Fields(decoded)
	if len(tokens) == 0 {
		return 0
	}
	shared := sets.New(tokens...).Intersection(w.vocabulary).Len()
	return float64(shared) / float64(len(tokens))
}

// Evaluate decodes the ciphertext with key and scores the result.
func (w *WordMatch) Evaluate(key framework.Key) float64 {
	return w.Score(key.Decode(w.ciphertext))
}

// Fitness exposes Evaluate as a framework.FitnessFunc.
func (w *WordMatch) Fitness() framework.FitnessFunc {
	return w.Evaluate
}
