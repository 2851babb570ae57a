package equiv

import (
	"context"
	"testing"
	"time"

	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/symexpr"
)

var checkVars = []problem.Variable{
	{Name: "x", Low: 1, High: 5},
	{Name: "y", Low: 1, High: 5},
}

func varNames(vars []problem.Variable) map[string]bool {
	names := make(map[string]bool, len(vars))
	for _, v := range vars {
		names[v.Name] = true
	}
	return names
}

func parse(t *testing.T, src string) symexpr.Node {
	t.Helper()
	node, err := symexpr.Parse(src, varNames(checkVars), nil)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return node
}

func newChecker() *Checker {
	return &Checker{Timeout: 20 * time.Second, ProbePoints: 64, Seed: 1}
}

func TestCheckIdenticalExpression(t *testing.T) {
	target := parse(t, "x*y + sin(x)")
	trial := parse(t, "x*y + sin(x)")

	equivalent, rep := newChecker().Check(target, trial, checkVars)
	if !equivalent {
		t.Fatal("identical expressions must be equivalent")
	}
	if rep.ErrorIsZero != True {
		t.Errorf("ErrorIsZero = %v, want True", rep.ErrorIsZero)
	}
	if !rep.SymbolicSolution {
		t.Error("SymbolicSolution must be true")
	}
	if rep.Exception != TagNone {
		t.Errorf("Exception = %q, want none", rep.Exception)
	}
}

func TestCheckDecisionRules(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		trial      string
		equivalent bool
	}{
		{"rearranged", "x + y", "y + x", true},
		{"additive offset", "x*y", "x*y + 3", true},
		{"multiplicative scale", "x*y", "2.5*x*y", true},
		{"different function", "x*y", "x + y", false},
		{"different shape", "sin(x)", "x*y", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rep := newChecker().Check(parse(t, tt.target), parse(t, tt.trial), checkVars)
			if got != tt.equivalent {
				t.Errorf("Check(%s, %s) = %v, want %v (report %+v)", tt.target, tt.trial, got, tt.equivalent, rep)
			}
		})
	}
}

func TestCheckReportAlwaysPopulated(t *testing.T) {
	_, rep := newChecker().Check(parse(t, "x"), parse(t, "y"), checkVars)
	if rep.SymbolicError == "" || rep.SymbolicFraction == "" {
		t.Errorf("negative report must still carry symbolic fields: %+v", rep)
	}
	if rep.ErrorIsZero == Undetermined {
		t.Error("a completed check must decide ErrorIsZero")
	}
}

func TestCheckTimeout(t *testing.T) {
	c := &Checker{Timeout: time.Nanosecond, ProbePoints: 4, Seed: 1}
	start := time.Now()
	equivalent, rep := c.Check(parse(t, "x"), parse(t, "x"), checkVars)
	if equivalent {
		t.Error("timed-out check must report non-equivalence")
	}
	if rep.Exception != TagTimeout {
		t.Errorf("Exception = %q, want %q", rep.Exception, TagTimeout)
	}
	if rep.ErrorIsZero != Undetermined {
		t.Errorf("timed-out sub-flags must stay undetermined, got %v", rep.ErrorIsZero)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("check blocked for %s past its bound", elapsed)
	}
}

func TestRunBoundedNeverReturns(t *testing.T) {
	done := make(chan struct{})
	start := time.Now()
	_, _, err, timedOut := runBounded(50*time.Millisecond, func(ctx context.Context) (bool, Report, error) {
		<-done // never closed: a simplification that hangs
		return true, Report{}, nil
	})
	close(done)
	if !timedOut {
		t.Fatalf("expected timeout, got err=%v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("caller blocked for %s past the bound", elapsed)
	}
}

func TestRunBoundedPanicSurfacesAsError(t *testing.T) {
	_, _, err, timedOut := runBounded(time.Second, func(ctx context.Context) (bool, Report, error) {
		panic("algebra blew up")
	})
	if timedOut {
		t.Fatal("panic must not masquerade as timeout")
	}
	if err == nil {
		t.Fatal("expected error from panicking unit")
	}
}
