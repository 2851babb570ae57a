package record

import (
	"sort"

	"github.com/fableg/symbench/internal/stats"
)

// AggregatedRecord reduces the runs of one group key with the fixed
// per-field schema: counts and flags sum to totals, sizes and the solution
// boolean average (the latter becoming the recovery fraction), numeric
// metrics take the outlier-robust median. Free-text fields, the trial seed
// and the exception tag are dropped.
type AggregatedRecord struct {
	Key

	Runs        int
	Evaluations int
	Started     int
	Finished    int

	ModelSize            float64
	SimplifiedComplexity float64

	ErrorIsZero        float64
	ErrorIsConstant    float64
	FractionIsConstant float64
	SymbolicSolution   float64 // recovery fraction in [0,1]

	MSETest    float64
	MAETest    float64
	R2Test     float64
	R2ZeroTest float64
}

// Aggregate reduces a run-record collection into one aggregate per group
// key, sorted by equation id (then dataset for stability). It is a pure
// function of its input: identical collections produce identical output, so
// checkpoint rewrites stay byte-identical.
func Aggregate(records []RunRecord) []AggregatedRecord {
	groups := make(map[Key][]int)
	var order []Key
	for i := range records {
		key := records[i].GroupKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].EqID != order[j].EqID {
			return order[i].EqID < order[j].EqID
		}
		return order[i].Dataset < order[j].Dataset
	})

	aggregates := make([]AggregatedRecord, 0, len(order))
	for _, key := range order {
		idx := groups[key]
		agg := AggregatedRecord{Key: key, Runs: len(idx)}
		n := float64(len(idx))

		var mse, mae, r2, r2zero []float64
		for _, i := range idx {
			r := &records[i]
			agg.Evaluations += r.Evaluations
			if r.Started {
				agg.Started++
			}
			if r.Finished {
				agg.Finished++
			}
			agg.ModelSize += r.ModelSize / n
			agg.SimplifiedComplexity += r.SimplifiedComplexity / n
			agg.ErrorIsZero += r.Equivalence.ErrorIsZero.AsFloat()
			agg.ErrorIsConstant += r.Equivalence.ErrorIsConstant.AsFloat()
			agg.FractionIsConstant += r.Equivalence.FractionIsConstant.AsFloat()
			if r.Equivalence.SymbolicSolution {
				agg.SymbolicSolution += 1 / n
			}
			mse = append(mse, r.MSETest)
			mae = append(mae, r.MAETest)
			r2 = append(r2, r.R2Test)
			r2zero = append(r2zero, r.R2ZeroTest)
		}
		agg.MSETest = stats.Median(mse)
		agg.MAETest = stats.Median(mae)
		agg.R2Test = stats.Median(r2)
		agg.R2ZeroTest = stats.Median(r2zero)
		aggregates = append(aggregates, agg)
	}
	return aggregates
}

// EssentialRecord is the projection kept in the essential summary table.
type EssentialRecord struct {
	EqID             int
	Evaluations      int
	Started          int
	Finished         int
	SymbolicSolution float64
	R2Test           float64
	R2ZeroTest       float64
}

// Essential projects aggregates onto the columns of the essential table.
func Essential(aggregates []AggregatedRecord) []EssentialRecord {
	out := make([]EssentialRecord, len(aggregates))
	for i, a := range aggregates {
		out[i] = EssentialRecord{
			EqID:             a.EqID,
			Evaluations:      a.Evaluations,
			Started:          a.Started,
			Finished:         a.Finished,
			SymbolicSolution: a.SymbolicSolution,
			R2Test:           a.R2Test,
			R2ZeroTest:       a.R2ZeroTest,
		}
	}
	return out
}
