package equiv

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/symexpr"
)

const probeTol = 1e-8

// Checker decides symbolic equivalence between a ground truth and a trial
// expression, SRBench style: the two are equivalent if their symbolic
// difference simplifies to zero, or to a nonzero constant (additive offset),
// or if their symbolic ratio simplifies to a constant (multiplicative scale).
type Checker struct {
	// Timeout is the hard wall-clock bound on one comparison.
	Timeout time.Duration
	// ProbePoints is the number of random variable assignments used when
	// structural simplification alone cannot settle zero/constant.
	ProbePoints int
	// Seed makes numeric probing reproducible across runs.
	Seed int64
}

// Check assesses trial against target over the given variable domains.
// It never propagates failure: a timeout yields (false, tag=Timeout), any
// other simplification failure yields (false, tag=<description>). The
// returned report is always structurally complete.
func (c *Checker) Check(target, trial symexpr.Node, vars []problem.Variable) (bool, Report) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	equivalent, report, err, timedOut := runBounded(timeout, func(ctx context.Context) (bool, Report, error) {
		return c.compare(ctx, target, trial, vars)
	})
	if timedOut {
		return false, Negative(TagTimeout)
	}
	if err != nil {
		return false, Negative(err.Error())
	}
	return equivalent, report
}

func (c *Checker) compare(ctx context.Context, target, trial symexpr.Node, vars []problem.Variable) (bool, Report, error) {
	diff, err := symexpr.Simplify(ctx, &symexpr.Binary{Op: symexpr.OpSub, Left: target.Clone(), Right: trial.Clone()})
	if err != nil {
		return false, Report{}, err
	}
	ratio, err := symexpr.Simplify(ctx, &symexpr.Binary{Op: symexpr.OpDiv, Left: target.Clone(), Right: trial.Clone()})
	if err != nil {
		return false, Report{}, err
	}

	errIsZero := symexpr.IsZero(diff)
	errIsConst := symexpr.IsConstant(diff)
	fracIsConst := symexpr.IsConstant(ratio)

	// Structural simplification misses rearrangements a full CAS would
	// catch; a deterministic numeric probe over the variable domains
	// settles the remaining cases.
	if !errIsZero || !errIsConst || !fracIsConst {
		probeDiff := c.probe(ctx, diff, vars)
		probeRatio := c.probe(ctx, ratio, vars)
		errIsZero = errIsZero || probeDiff.isZero
		errIsConst = errIsConst || probeDiff.isConstant
		fracIsConst = fracIsConst || probeRatio.isConstant
	}
	if err := ctx.Err(); err != nil {
		return false, Report{}, err
	}

	report := Report{
		SymbolicError:      diff.String(),
		SymbolicFraction:   ratio.String(),
		ErrorIsZero:        FlagOf(errIsZero),
		ErrorIsConstant:    FlagOf(errIsConst),
		FractionIsConstant: FlagOf(fracIsConst),
		Exception:          TagNone,
	}
	report.SymbolicSolution = errIsZero || errIsConst || fracIsConst
	return report.SymbolicSolution, report, nil
}

type probeResult struct {
	isZero     bool
	isConstant bool
}

// probe evaluates node at random points drawn from the variable domains and
// classifies it as zero or constant when every valid evaluation agrees.
// Too few valid points (pervasive domain failures) leaves both undecided.
func (c *Checker) probe(ctx context.Context, node symexpr.Node, vars []problem.Variable) probeResult {
	points := c.ProbePoints
	if points <= 0 {
		points = 64
	}
	rng := rand.New(rand.NewSource(c.Seed + 1))

	var values []float64
	for i := 0; i < points; i++ {
		if ctx.Err() != nil {
			return probeResult{}
		}
		x := make(map[string]float64, len(vars))
		for _, v := range vars {
			x[v.Name] = v.Low + rng.Float64()*(v.High-v.Low)
		}
		val, ok := node.Eval(x)
		if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		values = append(values, val)
	}
	if len(values) < points/2 {
		return probeResult{}
	}

	minV, maxV := values[0], values[0]
	var maxAbs float64
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	scale := math.Max(1, maxAbs)
	constant := (maxV - minV) <= probeTol*scale
	zero := constant && maxAbs <= probeTol*scale
	return probeResult{isZero: zero, isConstant: constant}
}
