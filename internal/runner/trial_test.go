package runner_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/fableg/symbench/internal/runner"
)

var testVars = map[string]bool{"x": true, "y": true}

func writeRunFolder(t *testing.T, resultsPath, name, pareto, curves string) string {
	t.Helper()
	dir := filepath.Join(resultsPath, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if pareto != "" {
		if err := os.WriteFile(filepath.Join(dir, runner.ParetoFile), []byte(pareto), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if curves != "" {
		if err := os.WriteFile(filepath.Join(dir, runner.CurvesFile), []byte(curves), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFindRunFolder(t *testing.T) {
	results := t.TempDir()
	writeRunFolder(t, results, "FR_3_0_0.001", "", "")

	folder, noise, found := runner.FindRunFolder(results, "FR_3_0")
	if !found {
		t.Fatal("expected to find run folder")
	}
	if filepath.Base(folder) != "FR_3_0_0.001" {
		t.Errorf("folder = %s", folder)
	}
	if noise != 0.001 {
		t.Errorf("noise = %v, want 0.001", noise)
	}
}

func TestFindRunFolderNotFound(t *testing.T) {
	folder, noise, found := runner.FindRunFolder(t.TempDir(), "FR_9_9")
	if found || folder != "" {
		t.Errorf("found = %v, folder = %q, want not found", found, folder)
	}
	if !math.IsNaN(noise) {
		t.Errorf("noise = %v, want NaN sentinel", noise)
	}
}

func TestFindRunFolderAmbiguousTakesFirst(t *testing.T) {
	results := t.TempDir()
	writeRunFolder(t, results, "FR_1_0_0.1", "", "")
	writeRunFolder(t, results, "FR_1_0_0.0", "", "")

	folder, _, found := runner.FindRunFolder(results, "FR_1_0")
	if !found {
		t.Fatal("expected a match")
	}
	if filepath.Base(folder) != "FR_1_0_0.0" {
		t.Errorf("folder = %s, want first match in lexical order", folder)
	}
}

func TestFindRunFolderDoesNotMatchLongerTrialID(t *testing.T) {
	results := t.TempDir()
	writeRunFolder(t, results, "FR_1_11_0.0", "", "")

	if _, _, found := runner.FindRunFolder(results, "FR_1_1"); found {
		t.Error("trial 1 prefix must not match trial 11's folder")
	}

	writeRunFolder(t, results, "FR_1_1_0.0", "", "")
	folder, _, found := runner.FindRunFolder(results, "FR_1_1")
	if !found || filepath.Base(folder) != "FR_1_1_0.0" {
		t.Errorf("folder = %s (found=%v), want FR_1_1_0.0", folder, found)
	}
}

func TestLoadRunDataMissingFolder(t *testing.T) {
	data := runner.LoadRunData(t.TempDir(), "FR_0_0", testVars, zap.NewNop())
	if data.Front != nil || data.Curves != nil {
		t.Errorf("missing folder should yield nil artifacts, got %+v", data)
	}
	if !math.IsNaN(data.Noise) {
		t.Errorf("noise = %v, want NaN sentinel", data.Noise)
	}
	if data.FrontCorrupt {
		t.Error("a missing front is not a corrupt front")
	}
}

func TestLoadRunDataPartialArtifacts(t *testing.T) {
	results := t.TempDir()
	writeRunFolder(t, results, "FR_0_0_0.0", "expression,reward,k0\nk0*x*y,0.9,1.0\n", "")

	data := runner.LoadRunData(results, "FR_0_0", testVars, zap.NewNop())
	if data.Front == nil {
		t.Fatal("expected the front to load")
	}
	if data.Curves != nil {
		t.Error("missing curves file should yield nil curves")
	}
}

func TestLoadRunDataCorruptFront(t *testing.T) {
	results := t.TempDir()
	writeRunFolder(t, results, "FR_0_0_0.0",
		"expression,reward\nthis is ) not parseable,0.9\n",
		"epoch,n_rewarded\n0,10\n")

	data := runner.LoadRunData(results, "FR_0_0", testVars, zap.NewNop())
	if data.Front != nil {
		t.Error("corrupt front should yield nil")
	}
	if !data.FrontCorrupt {
		t.Error("an existing unparseable front must be flagged corrupt")
	}
	if data.Curves == nil {
		t.Error("the healthy curves artifact must still load")
	}
}
