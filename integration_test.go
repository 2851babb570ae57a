//go:build integration

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fableg/symbench/cmd"
)

// createFixtureResults lays out a results folder the way a finished search
// campaign would: one run folder per (equation, trial) with Pareto-front
// and curves artifacts.
func createFixtureResults(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(folder, name, data string) {
		path := filepath.Join(dir, folder)
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(path, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Equation 0 of the built-in catalog: exp(-theta**2/2)/sqrt(2*pi).
	write("FR_0_0_0.0", "SR_curves_pareto.csv",
		"expression,reward,k0\nexp(-theta**2/2)/sqrt(2*pi),0.99,1.0\n")
	write("FR_0_0_0.0", "SR_curves_data.csv",
		"epoch,n_rewarded\n0,500000\n1,500000\n")
	return dir
}

func TestAnalyzeIntegration(t *testing.T) {
	if os.Getenv("SYMBENCH_INTEGRATION_TESTS") == "" {
		t.Skip("set SYMBENCH_INTEGRATION_TESTS=1 to run integration tests")
	}

	results := createFixtureResults(t)

	root := cmd.NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"analyze", "--config", filepath.Join(results, "none.yaml"), "-n", "0.0", "-p", results})
	if err := root.Execute(); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	detailed := filepath.Join(results, "results_detailed.csv")
	if _, err := os.Stat(detailed); err != nil {
		t.Errorf("detailed table not written: %v", err)
	}
	stats, err := os.ReadFile(filepath.Join(results, "results_stats.txt"))
	if err != nil {
		t.Fatalf("stats report not written: %v", err)
	}
	if !bytes.Contains(stats, []byte("Total recovery rate")) {
		t.Errorf("stats report incomplete: %s", stats)
	}
}
