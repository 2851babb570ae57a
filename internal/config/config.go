package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Campaign    Campaign    `yaml:"campaign"`
	Search      Search      `yaml:"search"`
	Equivalence Equivalence `yaml:"equivalence"`
	Problems    Problems    `yaml:"problems"`
	Results     Results     `yaml:"results"`
}

// Campaign identifies the run group recorded on every result row.
type Campaign struct {
	Algorithm string `yaml:"algorithm"`
	DataGroup string `yaml:"data_group"`
	Trials    int    `yaml:"trials"`
}

// Search mirrors the budget of the external search whose artifacts are being
// analyzed. A run counts as finished once its cumulative rewarded evaluations
// reach MaxEvaluations, within FinishTolerance evaluations. The tolerance
// defaults to one batch width; the exact margin is a campaign choice, so it
// stays configurable rather than being pinned to the budget.
type Search struct {
	MaxEvaluations  int `yaml:"max_evaluations"`
	BatchSize       int `yaml:"batch_size"`
	FinishTolerance int `yaml:"finish_tolerance"`
	// RelaunchTemplate is the command written to the unfinished-jobs file
	// for every run that did not finish, with verbs for the equation id,
	// trial id and noise level.
	RelaunchTemplate string `yaml:"relaunch_template"`
}

// Equivalence controls the symbolic equivalence checker.
type Equivalence struct {
	// RewardThreshold is the reward below which candidates are skipped
	// without invoking the checker.
	RewardThreshold float64 `yaml:"reward_threshold"`
	// TimeoutSeconds bounds one symbolic comparison.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// ProbePoints is the number of random variable assignments used to
	// decide zero/constant when structural simplification is inconclusive.
	ProbePoints int `yaml:"probe_points"`
}

type Problems struct {
	// Catalog optionally points at a yaml problem catalog; empty means the
	// built-in benchmark set.
	Catalog string `yaml:"catalog"`
	// Excluded lists equation filenames left out of the analyzed set.
	Excluded []string `yaml:"excluded"`
	// TestSamples is the number of noiseless held-out samples per metric.
	TestSamples int `yaml:"test_samples"`
	// Seed drives the deterministic test-sample generator.
	Seed int64 `yaml:"seed"`
}

type Results struct {
	DetailedFile  string `yaml:"detailed_file"`
	SummaryFile   string `yaml:"summary_file"`
	EssentialFile string `yaml:"essential_file"`
	StatsFile     string `yaml:"stats_file"`
	JobFile       string `yaml:"job_file"`
}

// Load reads a campaign config, falling back to defaults when path does not
// exist. An unreadable or invalid file is still an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the campaign configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	validate(&cfg)
	return cfg
}

func validate(cfg *Config) error {
	if cfg.Campaign.Algorithm == "" {
		cfg.Campaign.Algorithm = "PhySO"
	}
	if cfg.Campaign.DataGroup == "" {
		cfg.Campaign.DataGroup = "Feynman"
	}
	if cfg.Campaign.Trials == 0 {
		cfg.Campaign.Trials = 5
	}
	if cfg.Campaign.Trials < 1 {
		return fmt.Errorf("campaign.trials must be at least 1")
	}
	if cfg.Search.MaxEvaluations == 0 {
		cfg.Search.MaxEvaluations = 1_000_000
	}
	if cfg.Search.MaxEvaluations < 1 {
		return fmt.Errorf("search.max_evaluations must be positive")
	}
	if cfg.Search.BatchSize == 0 {
		cfg.Search.BatchSize = 10_000
	}
	if cfg.Search.BatchSize < 1 {
		return fmt.Errorf("search.batch_size must be positive")
	}
	if cfg.Search.FinishTolerance == 0 {
		cfg.Search.FinishTolerance = cfg.Search.BatchSize
	}
	if cfg.Search.RelaunchTemplate == "" {
		cfg.Search.RelaunchTemplate = "python feynman_run.py -i %d -t %d -n %f"
	}
	if cfg.Equivalence.RewardThreshold == 0 {
		cfg.Equivalence.RewardThreshold = 0.6
	}
	if cfg.Equivalence.RewardThreshold < 0 || cfg.Equivalence.RewardThreshold > 1 {
		return fmt.Errorf("equivalence.reward_threshold must be in [0,1]")
	}
	if cfg.Equivalence.TimeoutSeconds == 0 {
		cfg.Equivalence.TimeoutSeconds = 20
	}
	if cfg.Equivalence.TimeoutSeconds < 1 {
		return fmt.Errorf("equivalence.timeout_seconds must be positive")
	}
	if cfg.Equivalence.ProbePoints == 0 {
		cfg.Equivalence.ProbePoints = 64
	}
	if cfg.Problems.TestSamples == 0 {
		cfg.Problems.TestSamples = 10_000
	}
	if cfg.Problems.TestSamples < 1 {
		return fmt.Errorf("problems.test_samples must be positive")
	}
	if cfg.Problems.Seed == 0 {
		cfg.Problems.Seed = 1
	}
	if cfg.Results.DetailedFile == "" {
		cfg.Results.DetailedFile = "results_detailed.csv"
	}
	if cfg.Results.SummaryFile == "" {
		cfg.Results.SummaryFile = "results_summary.csv"
	}
	if cfg.Results.EssentialFile == "" {
		cfg.Results.EssentialFile = "results_summary_essential.csv"
	}
	if cfg.Results.StatsFile == "" {
		cfg.Results.StatsFile = "results_stats.txt"
	}
	if cfg.Results.JobFile == "" {
		cfg.Results.JobFile = "jobfile_unfinished"
	}
	return nil
}
