package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fableg/symbench/internal/config"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbench.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Campaign.Algorithm != "PhySO" {
		t.Errorf("default algorithm = %q, want PhySO", cfg.Campaign.Algorithm)
	}
	if cfg.Equivalence.RewardThreshold != 0.6 {
		t.Errorf("default reward threshold = %v, want 0.6", cfg.Equivalence.RewardThreshold)
	}
	if cfg.Equivalence.TimeoutSeconds != 20 {
		t.Errorf("default timeout = %d, want 20", cfg.Equivalence.TimeoutSeconds)
	}
	if cfg.Search.FinishTolerance != cfg.Search.BatchSize {
		t.Errorf("default finish tolerance = %d, want one batch width (%d)",
			cfg.Search.FinishTolerance, cfg.Search.BatchSize)
	}
	if cfg.Results.DetailedFile != "results_detailed.csv" {
		t.Errorf("default detailed file = %q", cfg.Results.DetailedFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
campaign:
  algorithm: MySearch
  trials: 3
search:
  max_evaluations: 500000
  batch_size: 1000
equivalence:
  reward_threshold: 0.8
  timeout_seconds: 5
problems:
  test_samples: 100
  excluded: ["I.12.1"]
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Campaign.Algorithm != "MySearch" {
		t.Errorf("algorithm = %q", cfg.Campaign.Algorithm)
	}
	if cfg.Campaign.Trials != 3 {
		t.Errorf("trials = %d, want 3", cfg.Campaign.Trials)
	}
	if cfg.Equivalence.RewardThreshold != 0.8 {
		t.Errorf("reward threshold = %v, want 0.8", cfg.Equivalence.RewardThreshold)
	}
	if cfg.Search.FinishTolerance != 1000 {
		t.Errorf("finish tolerance = %d, want the batch size 1000", cfg.Search.FinishTolerance)
	}
	if len(cfg.Problems.Excluded) != 1 {
		t.Errorf("excluded = %v", cfg.Problems.Excluded)
	}
	// Untouched sections keep their defaults.
	if cfg.Results.JobFile != "jobfile_unfinished" {
		t.Errorf("job file = %q", cfg.Results.JobFile)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "campaign: [not a map")
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative trials", "campaign:\n  trials: -1"},
		{"threshold above one", "equivalence:\n  reward_threshold: 1.5"},
		{"negative budget", "search:\n  max_evaluations: -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.data)
			if _, err := config.Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
