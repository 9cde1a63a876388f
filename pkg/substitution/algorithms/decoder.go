package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/fitness"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
)

const (
	Name = "GeneticDecoder"

	DefaultPopulationSize  = 320
	DefaultStagnationLimit = 52
	DefaultMaxGenerations  = 800
)

// Phase is the state of a search.
type Phase string

const (
	PhaseRunning Phase = "Running"
	// PhaseConverged means the best score stopped improving for StagnationLimit generations.
	PhaseConverged Phase = "Converged"
	// PhaseExhausted means the generation cap was reached.
	PhaseExhausted Phase = "Exhausted"
	// PhaseInterrupted means the context was cancelled between generations.
	PhaseInterrupted Phase = "Interrupted"
)

// ProgressFunc is called once per scored generation.
type ProgressFunc func(framework.GenerationStats)

// Result is the outcome of a search.
type Result struct {
	Key       framework.Key
	Score     float64
	Plaintext string
	Phase     Phase
	// Generations is the number of generations that were scored.
	Generations int
	History     []framework.GenerationStats

	Evaluations int64
	CacheHits   int64
}

// GeneticDecoder searches for the substitution key of a Problem.
type GeneticDecoder struct {
	PopSize         int
	StagnationLimit int
	MaxGenerations  int
	// Parallelism is the number of goroutines scoring a generation.
	Parallelism int
	// CacheSize bounds the fitness cache; 0 disables caching.
	CacheSize int

	problem  framework.Problem
	rng      *rand.Rand
	progress ProgressFunc
}

var _ framework.Algorithm = &GeneticDecoder{}

// NewGeneticDecoder creates a decoder with the default parameters. All
// randomness is drawn from rng.
func NewGeneticDecoder(problem framework.Problem, rng *rand.Rand) *GeneticDecoder {
	return &GeneticDecoder{
		PopSize:         DefaultPopulationSize,
		StagnationLimit: DefaultStagnationLimit,
		MaxGenerations:  DefaultMaxGenerations,
		Parallelism:     1,
		problem:         problem,
		rng:             rng,
	}
}

func (d *GeneticDecoder) Name() string {
	return Name
}

// OnGeneration registers fn to receive per-generation statistics.
func (d *GeneticDecoder) OnGeneration(fn ProgressFunc) {
	d.progress = fn
}

// Validate checks the parameters before a run.
func (d *GeneticDecoder) Validate() error {
	var errs []error
	if d.problem == nil {
		errs = append(errs, errors.New("problem is required"))
	}
	if d.rng == nil {
		errs = append(errs, errors.New("random generator is required"))
	}
	if err := ValidatePopulationSize(d.PopSize); err != nil {
		errs = append(errs, err)
	}
	if d.StagnationLimit <= 0 {
		errs = append(errs, fmt.Errorf("stagnation limit must be positive, got %d", d.StagnationLimit))
	}
	if d.MaxGenerations < 0 {
		errs = append(errs, fmt.Errorf("max generations must not be negative, got %d", d.MaxGenerations))
	}
	return errors.Join(errs...)
}

// Run evolves the population until the best score stagnates or the
// generation cap is hit, and decodes the ciphertext with the best key seen.
// If ctx is cancelled after the first generation the best-so-far result is
// returned together with the context error.
func (d *GeneticDecoder) Run(ctx context.Context) (*Result, error) {
	logger := klog.FromContext(ctx)
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s parameters: %w", d.Name(), err)
	}

	pop, err := NewPopulation(d.PopSize, d.rng)
	if err != nil {
		return nil, err
	}

	fn := d.problem.Fitness()
	var cache *fitness.Cache
	if d.CacheSize > 0 {
		cache = fitness.NewCache(fn, d.CacheSize)
		fn = cache.Fitness()
	}

	logger.V(2).Info("Starting search", "algorithm", d.Name(), "problem", d.problem.Name(),
		"populationSize", d.PopSize, "stagnationLimit", d.StagnationLimit, "maxGenerations", d.MaxGenerations)

	var (
		best       framework.Candidate
		stagnation int
		history    = make([]framework.GenerationStats, 0, min(d.MaxGenerations+1, 1024))
		phase      = PhaseRunning
	)
	for generation := 0; phase == PhaseRunning; generation++ {
		if err := pop.Evaluate(ctx, fn, d.Parallelism); err != nil {
			if generation == 0 {
				return nil, err
			}
			logger.V(2).Info("Search interrupted", "generation", generation, "bestScore", best.Score)
			return d.result(best, PhaseInterrupted, history, cache), err
		}
		pop.SortByScore()

		top := pop.At(0)
		if generation == 0 || top.Score > best.Score {
			best = top
			stagnation = 0
		} else {
			stagnation++
		}

		scores := framework.Scores(pop.candidates)
		mean, std := stat.MeanStdDev(scores, nil)
		stats := framework.GenerationStats{
			Generation:  generation,
			BestScore:   top.Score,
			MeanScore:   mean,
			StdDev:      std,
			RecordScore: best.Score,
			Stagnation:  stagnation,
		}
		history = append(history, stats)
		if d.progress != nil {
			d.progress(stats)
		}
		logger.V(4).Info("Scored generation", "generation", generation, "bestScore", top.Score,
			"meanScore", mean, "remaining", d.StagnationLimit-stagnation)

		switch {
		case generation >= d.MaxGenerations:
			phase = PhaseExhausted
		case stagnation >= d.StagnationLimit:
			phase = PhaseConverged
		default:
			pop.GenerateNewGeneration()
			logger.V(5).Info("Generated next generation", "generation", generation+1)
		}
	}

	res := d.result(best, phase, history, cache)
	logger.V(2).Info("Search finished", "phase", res.Phase, "generations", res.Generations, "bestScore", res.Score)
	return res, nil
}

func (d *GeneticDecoder) result(best framework.Candidate, phase Phase, history []framework.GenerationStats, cache *fitness.Cache) *Result {
	res := &Result{
		Key:         best.Key,
		Score:       best.Score,
		Plaintext:   best.Key.Decode(d.problem.Ciphertext()),
		Phase:       phase,
		Generations: len(history),
		History:     history,
		Evaluations: int64(len(history)) * int64(d.PopSize),
	}
	if cache != nil {
		hits, misses := cache.Stats()
		res.CacheHits = hits
		res.Evaluations = misses
	}
	return res
}
