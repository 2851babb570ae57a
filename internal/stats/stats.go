// Package stats computes the summary statistics reported at the end of a
// campaign: sample means, medians and Student-t confidence intervals.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a two-sided confidence interval around a sample mean.
type Interval struct {
	Low  float64
	High float64
}

// Degenerate reports whether the interval carries no information (undefined
// bounds from a sample too small to estimate spread).
func (iv Interval) Degenerate() bool {
	return math.IsNaN(iv.Low) || math.IsNaN(iv.High)
}

// Mean returns the arithmetic mean, NaN for an empty sample.
func Mean(sample []float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}
	return stat.Mean(sample, nil)
}

// Median returns the sample median, interpolating the midpoint of the two
// middle elements for even-sized samples. NaN for an empty sample.
func Median(sample []float64) float64 {
	n := len(sample)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// ConfidenceInterval returns the two-sided confidence interval for the mean
// of sample at the given level (e.g. 0.95), using the t-distribution with
// n-1 degrees of freedom and the standard error of the mean.
//
// Degenerate samples never raise: n < 2 yields NaN bounds, zero variance
// collapses the interval to a point.
func ConfidenceInterval(sample []float64, level float64) Interval {
	n := len(sample)
	if n < 2 {
		return Interval{Low: math.NaN(), High: math.NaN()}
	}
	mean := stat.Mean(sample, nil)
	sd := stat.StdDev(sample, nil)
	if sd == 0 {
		return Interval{Low: mean, High: mean}
	}
	se := sd / math.Sqrt(float64(n))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	q := t.Quantile(0.5 + level/2)
	return Interval{Low: mean - q*se, High: mean + q*se}
}
