// Package problem defines the benchmark problems runs are graded against:
// ground-truth formulas, their variable domains and deterministic noiseless
// test-sample generation.
package problem

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/fableg/symbench/internal/symexpr"
)

// Variable is one input variable of a ground-truth formula, with the domain
// samples are drawn from.
type Variable struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Problem is one benchmark equation. Immutable once built.
type Problem struct {
	ID        int
	Name      string // SRBench-compatible dataset name
	Filename  string // equation filename, used by exclusion lists
	Formula   string
	Variables []Variable

	tree symexpr.Node
}

// New parses the ground-truth formula and returns the assembled problem.
func New(id int, name, filename, formula string, vars []Variable) (*Problem, error) {
	p := &Problem{ID: id, Name: name, Filename: filename, Formula: formula, Variables: vars}
	tree, err := symexpr.Parse(formula, p.VarNames(), nil)
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", name, err)
	}
	p.tree = tree
	return p, nil
}

// Tree returns the parsed ground-truth expression.
func (p *Problem) Tree() symexpr.Node {
	return p.tree
}

// VarNames returns the variable-symbol table as a membership set, the form
// the expression parser consumes.
func (p *Problem) VarNames() map[string]bool {
	names := make(map[string]bool, len(p.Variables))
	for _, v := range p.Variables {
		names[v.Name] = true
	}
	return names
}

// TrueModel returns the ground truth as a simplified string, the form stored
// on result rows.
func (p *Problem) TrueModel() string {
	simplified, err := symexpr.Simplify(context.Background(), p.tree)
	if err != nil || simplified == nil {
		return p.tree.String()
	}
	return simplified.String()
}

// Sample is one noiseless test point: variable assignment and target value.
type Sample struct {
	X map[string]float64
	Y float64
}

// GenerateSamples draws n noiseless test samples uniformly from the variable
// domains, deterministically for a given seed. Points where the ground truth
// fails to evaluate (domain edges) are redrawn.
func (p *Problem) GenerateSamples(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed + int64(p.ID)))
	samples := make([]Sample, 0, n)
	for attempts := 0; len(samples) < n && attempts < 10*n; attempts++ {
		x := make(map[string]float64, len(p.Variables))
		for _, v := range p.Variables {
			x[v.Name] = v.Low + rng.Float64()*(v.High-v.Low)
		}
		y, ok := p.tree.Eval(x)
		if !ok || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		samples = append(samples, Sample{X: x, Y: y})
	}
	return samples
}

// Evaluate runs a candidate expression over the sample inputs, producing one
// prediction per sample. Evaluation failures yield NaN so metric code can
// apply its worst-case sentinels.
func (p *Problem) Evaluate(candidate symexpr.Node, samples []Sample) []float64 {
	preds := make([]float64, len(samples))
	for i, s := range samples {
		v, ok := candidate.Eval(s.X)
		if !ok {
			preds[i] = math.NaN()
			continue
		}
		preds[i] = v
	}
	return preds
}
