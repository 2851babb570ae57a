package metrics

import (
	"math"
	"testing"
)

func TestMetricsKnownValues(t *testing.T) {
	target := []float64{1, 2, 3, 4}
	pred := []float64{1, 2, 3, 4}

	if got := MSE(target, pred); got != 0 {
		t.Errorf("MSE perfect = %v, want 0", got)
	}
	if got := MAE(target, pred); got != 0 {
		t.Errorf("MAE perfect = %v, want 0", got)
	}
	if got := R2(target, pred); got != 1 {
		t.Errorf("R2 perfect = %v, want 1", got)
	}
	if got := R2Zero(target, pred); got != 1 {
		t.Errorf("R2Zero perfect = %v, want 1", got)
	}

	off := []float64{2, 3, 4, 5}
	if got := MSE(target, off); got != 1 {
		t.Errorf("MSE offset = %v, want 1", got)
	}
	if got := MAE(target, off); got != 1 {
		t.Errorf("MAE offset = %v, want 1", got)
	}
	// ssRes=4, ssTot=5 around the mean 2.5.
	if got := R2(target, off); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("R2 offset = %v, want 0.2", got)
	}
	// ssRes=4, ssTot=30 around zero.
	if got := R2Zero(target, off); math.Abs(got-(1-4.0/30.0)) > 1e-12 {
		t.Errorf("R2Zero offset = %v", got)
	}
}

func TestMetricsDegenerateInput(t *testing.T) {
	if got := MSE(nil, nil); !math.IsNaN(got) {
		t.Errorf("MSE(empty) = %v, want NaN", got)
	}
	if got := MAE([]float64{1}, []float64{1, 2}); !math.IsNaN(got) {
		t.Errorf("MAE(mismatched) = %v, want NaN", got)
	}
	// Constant target has zero variance, R2 is undefined.
	if got := R2([]float64{2, 2, 2}, []float64{2, 2, 2}); !math.IsNaN(got) {
		t.Errorf("R2(constant target) = %v, want NaN", got)
	}
}

func TestClampSentinels(t *testing.T) {
	if got := ClampError(math.NaN()); !math.IsInf(got, 1) {
		t.Errorf("ClampError(NaN) = %v, want +Inf", got)
	}
	if got := ClampError(2.5); got != 2.5 {
		t.Errorf("ClampError(2.5) = %v", got)
	}
	if got := ClampScore(math.NaN()); got != 0 {
		t.Errorf("ClampScore(NaN) = %v, want 0", got)
	}
	if got := ClampScore(0.9); got != 0.9 {
		t.Errorf("ClampScore(0.9) = %v", got)
	}
}
