package app

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/substitution-decoder/apis/decoder/v1alpha1"
	"github.com/mihai-snyk/substitution-decoder/cmd/decoder/app/options"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/algorithms"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/benchmarks"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/fitness"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/framework"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/sink"
	"github.com/mihai-snyk/substitution-decoder/pkg/substitution/text"
)

// NewDecoderCommand creates the root command with the decode and benchmark subcommands.
func NewDecoderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decoder",
		Short: "Break monoalphabetic substitution ciphers with a genetic algorithm",
		Long: `The decoder searches for the substitution key under which the encoded
text shares the most words with a reference corpus. Candidate keys are bred
by elitism, swap mutation and a permutation-preserving crossover until the
best score stops improving or the generation budget is spent.`,
		SilenceUsage: true,
	}
	logs.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newDecodeCommand(), newBenchmarkCommand())
	return cmd
}

func newDecodeCommand() *cobra.Command {
	opts := options.NewOptions()
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode an encoded text file using a reference corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.Context(), cmd.OutOrStdout(), cmd.Flags(), opts)
		},
		Args: cobra.NoArgs,
	}
	addFlagSets(cmd, opts.Flags(), "input", "output", "search")
	return cmd
}

func newBenchmarkCommand() *cobra.Command {
	opts := options.NewOptions()
	opts.OutputFile = ""
	var name string
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run the decoder against a built-in known-plaintext problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd.Context(), cmd.OutOrStdout(), cmd.Flags(), opts, name)
		},
		Args: cobra.NoArgs,
	}
	fss := opts.Flags()
	fss.FlagSet("benchmark").StringVar(&name, "name", "ladder", "Benchmark to run: ladder or quickbrownfox.")
	addFlagSets(cmd, fss, "benchmark", "output", "search")
	return cmd
}

func addFlagSets(cmd *cobra.Command, fss cliflag.NamedFlagSets, names ...string) {
	for _, name := range names {
		cmd.Flags().AddFlagSet(fss.FlagSet(name))
	}
}

func runDecode(ctx context.Context, w io.Writer, fs *pflag.FlagSet, opts *options.Options) error {
	logger := klog.FromContext(ctx).WithName("decoder")
	ctx = klog.NewContext(ctx, logger)

	if err := opts.ValidateInputs(); err != nil {
		return err
	}
	cfg, err := opts.Config(fs)
	if err != nil {
		return err
	}

	encoded, err := os.ReadFile(opts.EncodedFile)
	if err != nil {
		return fmt.Errorf("reading encoded text: %w", err)
	}
	corpus, err := os.ReadFile(opts.CorpusFile)
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}
	logger.V(2).Info("Loaded inputs", "encoded", humanize.Bytes(uint64(len(encoded))), "corpus", humanize.Bytes(uint64(len(corpus))))

	ciphertext, reference := string(encoded), string(corpus)
	if opts.Normalize {
		ciphertext, reference = text.Pad(ciphertext), text.Pad(reference)
	}
	problem, err := fitness.NewWordMatch(ciphertext, reference)
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	spec := v1alpha1.DecodeReportSpec{
		Configuration:    *cfg,
		EncodedFile:      opts.EncodedFile,
		CorpusFile:       opts.CorpusFile,
		CiphertextTokens: len(strings.Fields(ciphertext)),
		VocabularySize:   problem.VocabularySize(),
	}
	res, err := search(ctx, w, cfg, problem, spec, opts)
	if res == nil {
		return err
	}

	fmt.Fprintln(w, sink.FormatKey(res.Key))
	fmt.Fprintln(w, res.Plaintext)
	return err
}

func runBenchmark(ctx context.Context, w io.Writer, fs *pflag.FlagSet, opts *options.Options, name string) error {
	logger := klog.FromContext(ctx).WithName("benchmark")
	ctx = klog.NewContext(ctx, logger)

	cfg, err := opts.Config(fs)
	if err != nil {
		return err
	}

	var problem *benchmarks.KnownPlaintext
	switch strings.ToLower(name) {
	case "ladder":
		problem, err = benchmarks.Ladder()
	case "quickbrownfox":
		problem, err = benchmarks.QuickBrownFox()
	default:
		return fmt.Errorf("unknown benchmark %q", name)
	}
	if err != nil {
		return err
	}

	spec := v1alpha1.DecodeReportSpec{
		Configuration:    *cfg,
		CiphertextTokens: len(strings.Fields(problem.Ciphertext())),
		VocabularySize:   problem.VocabularySize(),
	}
	res, err := search(ctx, w, cfg, problem, spec, opts)
	if res == nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s after %d generations, score %.3f, key accuracy %.1f%%\n",
		problem.Name(), res.Phase, res.Generations, res.Score, 100*problem.Accuracy(res.Key))
	fmt.Fprintf(w, "expected: %s\nrecovered: %s\n", problem.Plaintext(), res.Plaintext)
	return err
}

// search runs the decoder on problem and persists the outputs. A persistence
// failure is logged but does not fail the run. The returned error is non-nil
// when the search was interrupted; the result is still usable then.
func search(ctx context.Context, w io.Writer, cfg *v1alpha1.DecoderConfiguration, problem framework.Problem, spec v1alpha1.DecodeReportSpec, opts *options.Options) (*algorithms.Result, error) {
	logger := klog.FromContext(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := algorithms.NewGeneticDecoder(problem, newRand(logger, cfg.Seed))
	d.PopSize = int(*cfg.PopulationSize)
	d.StagnationLimit = int(*cfg.StagnationLimit)
	d.MaxGenerations = int(*cfg.MaxGenerations)
	d.Parallelism = int(*cfg.Parallelism)
	d.CacheSize = int(*cfg.CacheSize)

	if opts.Progress {
		bar := newProgressBar(w, d.MaxGenerations+1, d.StagnationLimit)
		d.OnGeneration(bar.update)
		defer bar.finish()
	}

	started := time.Now()
	res, err := d.Run(ctx)
	if res == nil {
		return nil, err
	}
	if err != nil {
		logger.Info("Search interrupted, keeping the best key so far", "generations", res.Generations, "err", err)
	}
	finished := time.Now()

	if opts.Normalize {
		res.Plaintext = text.Unpad(res.Plaintext)
	}

	logger.Info("Search finished", "phase", res.Phase, "generations", res.Generations,
		"bestScore", res.Score, "evaluations", humanize.Comma(res.Evaluations),
		"cacheHits", humanize.Comma(res.CacheHits), "duration", finished.Sub(started).Round(time.Millisecond))

	out := sink.Outputs{
		PlaintextPath: opts.OutputFile,
		KeyPath:       opts.KeyFile,
		ReportPath:    opts.ReportFile,
		PlotPath:      opts.PlotFile,
		PlotTitle:     problem.Name(),
	}
	report := sink.NewReport(spec, res, started, finished)
	if perr := sink.Persist(ctx, out, res.Plaintext, res, report); perr != nil {
		logger.Error(perr, "Some results could not be written")
	}
	return res, err
}

func newRand(logger logr.Logger, seed *uint64) *rand.Rand {
	s := rand.Uint64()
	if seed != nil {
		s = *seed
	}
	logger.V(2).Info("Seeding random generator", "seed", s)
	return rand.New(rand.NewPCG(s, s))
}
