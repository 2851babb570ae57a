package front

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testVars = map[string]bool{"x": true, "y": true}

func TestParseFront(t *testing.T) {
	csv := strings.Join([]string{
		"expression,reward,k0,k1",
		"k0*x,0.5,2.0,0.0",
		"k0*x + k1*y,0.9,2.0,3.0",
		"k0*x + k1*y + sin(x),0.95,2.0,3.0",
	}, "\n")

	f, err := ParseFront(strings.NewReader(csv), testVars)
	if err != nil {
		t.Fatalf("ParseFront: %v", err)
	}
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}
	if f.Candidates[0].Reward != 0.5 {
		t.Errorf("reward[0] = %v, want 0.5", f.Candidates[0].Reward)
	}

	// Constants must be substituted: k0*x at x=5 with k0=2 is 10.
	val, ok := f.Candidates[0].Expr.Eval(map[string]float64{"x": 5})
	if !ok || val != 10 {
		t.Errorf("candidate 0 at x=5: got %v (%v), want 10", val, ok)
	}

	// Order is preserved from the artifact: the most complex row is last.
	best := f.Best()
	if best == nil || best.Reward != 0.95 {
		t.Fatalf("Best = %+v, want the last row", best)
	}
}

func TestParseFrontNaNConstantDefaultsToOne(t *testing.T) {
	csv := "expression,reward,k0\nk0*x,0.8,NaN\n"
	f, err := ParseFront(strings.NewReader(csv), testVars)
	if err != nil {
		t.Fatalf("ParseFront: %v", err)
	}
	val, ok := f.Candidates[0].Expr.Eval(map[string]float64{"x": 7})
	if !ok || val != 7 {
		t.Errorf("NaN constant should substitute as 1.0: got %v (%v), want 7", val, ok)
	}
}

func TestParseFrontNumericLiteralExpression(t *testing.T) {
	// Fronts occasionally collapse to a bare numeric literal.
	csv := "expression,reward,k0\n3.5,0.1,1.0\n"
	f, err := ParseFront(strings.NewReader(csv), testVars)
	if err != nil {
		t.Fatalf("ParseFront: %v", err)
	}
	val, ok := f.Candidates[0].Expr.Eval(nil)
	if !ok || val != 3.5 {
		t.Errorf("literal front row: got %v (%v), want 3.5", val, ok)
	}
}

func TestParseFrontMalformed(t *testing.T) {
	tests := []string{
		"reward,k0\n0.5,1.0\n",           // no expression column
		"expression,reward\nx +,0.5\n",   // unparseable expression
		"expression,reward\nx,notanum\n", // bad reward
	}
	for _, csv := range tests {
		if _, err := ParseFront(strings.NewReader(csv), testVars); err == nil {
			t.Errorf("ParseFront(%q): expected error", csv)
		}
	}
}

func TestLoadFrontMissingFile(t *testing.T) {
	if _, err := LoadFront(filepath.Join(t.TempDir(), "nope.csv"), testVars); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCurves(t *testing.T) {
	csv := "epoch,n_rewarded\n0,100\n1,250\n2,300\n"
	c, err := ParseCurves(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCurves: %v", err)
	}
	if got := c.LastEpoch(); got != 2 {
		t.Errorf("LastEpoch = %d, want 2", got)
	}
	if got := c.TotalRewarded(); got != 650 {
		t.Errorf("TotalRewarded = %d, want 650", got)
	}
}

func TestCurvesNotStartedSentinel(t *testing.T) {
	csv := "epoch,n_rewarded\n-1,0\n"
	c, err := ParseCurves(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCurves: %v", err)
	}
	if got := c.LastEpoch(); got != -1 {
		t.Errorf("LastEpoch = %d, want -1", got)
	}
}

func TestCurvesNilSafety(t *testing.T) {
	var c *Curves
	if got := c.LastEpoch(); got != -1 {
		t.Errorf("nil LastEpoch = %d, want -1", got)
	}
	if got := c.TotalRewarded(); got != 0 {
		t.Errorf("nil TotalRewarded = %d, want 0", got)
	}
}

func TestLoadCurvesFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SR_curves_data.csv")
	if err := os.WriteFile(path, []byte("epoch,n_rewarded\n0,42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCurves(path)
	if err != nil {
		t.Fatalf("LoadCurves: %v", err)
	}
	if c.TotalRewarded() != 42 {
		t.Errorf("TotalRewarded = %d, want 42", c.TotalRewarded())
	}
}

func TestFrontNilSafety(t *testing.T) {
	var f *Front
	if f.Len() != 0 {
		t.Error("nil front should have zero length")
	}
	if f.Best() != nil {
		t.Error("nil front should have no best candidate")
	}
}
