package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/substitution-decoder/apis/decoder/v1alpha1"
	"github.com/mihai-snyk/substitution-decoder/apis/decoder/validation"
)

// Options has all the params needed to run a decoder.
type Options struct {
	// ConfigFile is the location of a DecoderConfiguration file. Flags that
	// are set explicitly take precedence over its values.
	ConfigFile string

	EncodedFile string
	CorpusFile  string

	OutputFile string
	KeyFile    string
	ReportFile string
	PlotFile   string

	// Normalize pads punctuation before scoring and removes the padding from
	// the decoded text.
	Normalize bool
	Progress  bool

	PopulationSize  int32
	StagnationLimit int32
	MaxGenerations  int32
	Parallelism     int32
	CacheSize       int32
	Seed            uint64
}

// NewOptions returns options with the default values.
func NewOptions() *Options {
	return &Options{
		OutputFile:      "decoded_text.txt",
		Normalize:       true,
		PopulationSize:  v1alpha1.DefaultPopulationSize,
		StagnationLimit: v1alpha1.DefaultStagnationLimit,
		MaxGenerations:  v1alpha1.DefaultMaxGenerations,
		Parallelism:     v1alpha1.DefaultParallelism,
		CacheSize:       v1alpha1.DefaultCacheSize,
	}
}

// Flags returns the flags of the decoder grouped by concern.
func (o *Options) Flags() cliflag.NamedFlagSets {
	var fss cliflag.NamedFlagSets

	fs := fss.FlagSet("input")
	fs.StringVar(&o.EncodedFile, "encoded", o.EncodedFile, "File with the encoded text.")
	fs.StringVar(&o.CorpusFile, "corpus", o.CorpusFile, "File with the reference corpus.")
	fs.BoolVar(&o.Normalize, "normalize", o.Normalize, "Separate punctuation from words before scoring.")

	fs = fss.FlagSet("output")
	fs.StringVar(&o.OutputFile, "output", o.OutputFile, "File the decoded text is written to. Empty disables it.")
	fs.StringVar(&o.KeyFile, "key-output", o.KeyFile, "File the recovered key is written to.")
	fs.StringVar(&o.ReportFile, "report", o.ReportFile, "File a YAML DecodeReport is written to.")
	fs.StringVar(&o.PlotFile, "plot", o.PlotFile, "File an HTML convergence chart is written to.")
	fs.BoolVar(&o.Progress, "progress", o.Progress, "Show a progress bar while searching.")

	fs = fss.FlagSet("search")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a DecoderConfiguration file.")
	fs.Int32Var(&o.PopulationSize, "population-size", o.PopulationSize, "Candidate keys per generation, a multiple of 10.")
	fs.Int32Var(&o.StagnationLimit, "stagnation-limit", o.StagnationLimit, "Generations without improvement before the search stops.")
	fs.Int32Var(&o.MaxGenerations, "max-generations", o.MaxGenerations, "Maximum number of generations.")
	fs.Int32Var(&o.Parallelism, "parallelism", o.Parallelism, "Workers scoring each generation.")
	fs.Int32Var(&o.CacheSize, "cache-size", o.CacheSize, "Maximum memoized fitness scores, 0 disables the cache.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Random seed. When not set a random seed is drawn and logged.")

	return fss
}

// ValidateInputs checks the options a decode run needs on top of the search configuration.
func (o *Options) ValidateInputs() error {
	var errs []error
	if o.EncodedFile == "" {
		errs = append(errs, errors.New("--encoded is required"))
	}
	if o.CorpusFile == "" {
		errs = append(errs, errors.New("--corpus is required"))
	}
	return errors.Join(errs...)
}

// Config builds the effective configuration: the config file if any, then
// every search flag that was set on fs, then defaults. The result is validated.
func (o *Options) Config(fs *pflag.FlagSet) (*v1alpha1.DecoderConfiguration, error) {
	cfg := &v1alpha1.DecoderConfiguration{}
	if o.ConfigFile != "" {
		loaded, err := LoadConfigFile(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if fs.Changed("population-size") {
		cfg.PopulationSize = ptr.To(o.PopulationSize)
	}
	if fs.Changed("stagnation-limit") {
		cfg.StagnationLimit = ptr.To(o.StagnationLimit)
	}
	if fs.Changed("max-generations") {
		cfg.MaxGenerations = ptr.To(o.MaxGenerations)
	}
	if fs.Changed("parallelism") {
		cfg.Parallelism = ptr.To(o.Parallelism)
	}
	if fs.Changed("cache-size") {
		cfg.CacheSize = ptr.To(o.CacheSize)
	}
	if fs.Changed("seed") {
		cfg.Seed = ptr.To(o.Seed)
	}

	v1alpha1.SetDefaults_DecoderConfiguration(cfg)
	if err := validation.ValidateDecoderConfiguration(cfg).ToAggregate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a DecoderConfiguration from YAML. Unknown fields are rejected.
func LoadConfigFile(path string) (*v1alpha1.DecoderConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := &v1alpha1.DecoderConfiguration{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return cfg, nil
}
