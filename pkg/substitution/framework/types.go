package framework

import "errors"

var (
	// ErrNotBijective is returned when a Key is not a permutation of the alphabet.
	ErrNotBijective = errors.New("key is not a bijection over the alphabet")
	// ErrEmptyText is returned when a ciphertext has no whitespace-delimited tokens.
	ErrEmptyText = errors.New("text contains no tokens")
	// ErrNoLetters is returned when a ciphertext contains no alphabetic characters.
	ErrNoLetters = errors.New("text contains no letters")
	// ErrInvalidPopulationSize is returned for population sizes that cannot be
	// split into five equal groups with pairable elites.
	ErrInvalidPopulationSize = errors.New("population size must be a positive multiple of 10")
)

// Candidate represents one key in the population together with its fitness.
type Candidate struct {
	Key Key
	// Score is in [0, 1]. It is zero until the candidate is evaluated and is
	// reset whenever the candidate is carried into a new generation.
	Score float64
}

// GenerationStats summarizes one scored generation.
type GenerationStats struct {
	Generation int
	BestScore  float64
	MeanScore  float64
	StdDev     float64
	// RecordScore is the best score seen in any generation so far.
	RecordScore float64
	// Stagnation counts generations since RecordScore last improved.
	Stagnation int
}

// FitnessFunc scores a key. Implementations must be pure functions of the key
// so they can be called concurrently.
type FitnessFunc func(Key) float64

// Problem describes the contract a decoding problem needs to implement.
type Problem interface {
	Name() string

	// Ciphertext is the tokenization-ready text to decode.
	Ciphertext() string
	Fitness() FitnessFunc
}

// Algorithm describes the contract that a search algorithm needs to implement.
type Algorithm interface {
	Name() string
}
