// Package metrics implements the held-out numeric accuracy metrics used to
// grade the best candidate of each run against noiseless test samples.
package metrics

import "math"

// MSE returns the mean squared error between target and prediction.
func MSE(target, pred []float64) float64 {
	if len(target) == 0 || len(target) != len(pred) {
		return math.NaN()
	}
	var sum float64
	for i := range target {
		d := target[i] - pred[i]
		sum += d * d
	}
	return sum / float64(len(target))
}

// MAE returns the mean absolute error between target and prediction.
func MAE(target, pred []float64) float64 {
	if len(target) == 0 || len(target) != len(pred) {
		return math.NaN()
	}
	var sum float64
	for i := range target {
		sum += math.Abs(target[i] - pred[i])
	}
	return sum / float64(len(target))
}

// R2 returns the coefficient of determination with the sample mean as
// baseline.
func R2(target, pred []float64) float64 {
	if len(target) == 0 || len(target) != len(pred) {
		return math.NaN()
	}
	var mean float64
	for _, y := range target {
		mean += y
	}
	mean /= float64(len(target))

	var ssRes, ssTot float64
	for i := range target {
		d := target[i] - pred[i]
		ssRes += d * d
		m := target[i] - mean
		ssTot += m * m
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}

// R2Zero returns the zero-anchored coefficient of determination, i.e. R2
// with zero as the baseline predictor instead of the sample mean.
func R2Zero(target, pred []float64) float64 {
	if len(target) == 0 || len(target) != len(pred) {
		return math.NaN()
	}
	var ssRes, ssTot float64
	for i := range target {
		d := target[i] - pred[i]
		ssRes += d * d
		ssTot += target[i] * target[i]
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}

// ClampError maps a NaN error-kind metric (MSE, MAE) to +Inf.
func ClampError(v float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// ClampScore maps a NaN score-kind metric (R2, R2Zero) to 0.
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
