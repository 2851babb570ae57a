// Package record defines the per-run result row and the pure reduction of
// many rows into per-problem aggregates.
package record

import "github.com/fableg/symbench/internal/equiv"

// RunRecord is the outcome of one (problem, trial) run. Created once per
// run and never mutated afterwards.
type RunRecord struct {
	// Identity key fields.
	Algorithm   string
	DataGroup   string
	Dataset     string
	EqID        int
	Trial       int // random seed of the trial
	TargetNoise float64
	TrueModel   string

	// Run status.
	Evaluations int
	Started     bool
	Finished    bool

	// Symbolic results.
	SymbolicModel        string
	ModelSize            float64
	SimplifiedModel      string
	SimplifiedComplexity float64

	// Equivalence assessment.
	Equivalence equiv.Report

	// Held-out numeric metrics.
	MSETest    float64
	MAETest    float64
	R2Test     float64
	R2ZeroTest float64
}

// Key is the aggregation group key: identity minus the trial seed.
type Key struct {
	Algorithm   string
	DataGroup   string
	Dataset     string
	EqID        int
	TargetNoise float64
	TrueModel   string
}

// GroupKey returns the record's aggregation key.
func (r *RunRecord) GroupKey() Key {
	return Key{
		Algorithm:   r.Algorithm,
		DataGroup:   r.DataGroup,
		Dataset:     r.Dataset,
		EqID:        r.EqID,
		TargetNoise: r.TargetNoise,
		TrueModel:   r.TrueModel,
	}
}
