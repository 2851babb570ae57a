package equiv

import (
	"github.com/fableg/symbench/internal/front"
	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/symexpr"
)

// CandidateChecker decides equivalence between a ground truth and one
// candidate expression. *Checker is the production implementation.
type CandidateChecker interface {
	Check(target, trial symexpr.Node, vars []problem.Variable) (bool, Report)
}

// Selector walks a Pareto front from the most complex candidate down,
// applying the equivalence checker with short-circuiting and cost-saving
// skips.
type Selector struct {
	Checker CandidateChecker
	// RewardThreshold: candidates at or below it are recorded as negative
	// without invoking the checker, since equivalence testing of poor fits
	// is uninformative.
	RewardThreshold float64
	// Warnf receives non-fatal diagnostics, e.g. when reward ordering and
	// symbolic matching disagree. Nil suppresses them.
	Warnf func(format string, args ...any)
}

// Assess checks whether at least one candidate of the front is symbolically
// equivalent to the target. It walks candidates from most complex to least,
// stops at the first positive verdict, and otherwise returns the last
// verdict computed. A nil front bypasses the checker entirely and yields the
// canonical NoFrontFile report.
func (s *Selector) Assess(f *front.Front, target symexpr.Node, vars []problem.Variable) (bool, Report) {
	if f == nil || f.Len() == 0 {
		return false, Negative(TagNoFrontFile)
	}

	last := Negative(TagNone)
	examined := 0
	for i := f.Len() - 1; i >= 0; i-- {
		cand := f.Candidates[i]

		if cand.Reward <= s.RewardThreshold {
			last = Negative(TagLowReward)
			examined++
			continue
		}

		equivalent, report := s.Checker.Check(target, cand.Expr, vars)
		examined++
		last = report
		if equivalent {
			if examined > 1 && s.Warnf != nil {
				s.Warnf("equivalent candidate was not the most accurate on the front (position %d of walk)", examined)
			}
			return true, report
		}
	}
	return false, last
}
