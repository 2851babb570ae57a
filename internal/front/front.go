// Package front loads the artifacts an external search job leaves behind:
// the Pareto-front csv of candidate expressions and the training-curve csv.
// Both may be absent or half-written while jobs are still running, so every
// loader degrades to an error the caller converts to a sentinel.
package front

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/fableg/symbench/internal/symexpr"
)

// Candidate is one Pareto-front row: a symbolic formula with all free
// constants substituted by their fitted values, leaving only problem
// variables free, plus its reward score.
type Candidate struct {
	Expr   symexpr.Node
	Reward float64
	Source string
}

// Front is an ordered candidate sequence, index increasing with model
// complexity. Order is preserved from the artifact, never re-sorted; the
// most complex candidate is last.
type Front struct {
	Candidates []Candidate
}

// Best returns the most complex candidate, nil for an empty front.
func (f *Front) Best() *Candidate {
	if f == nil || len(f.Candidates) == 0 {
		return nil
	}
	return &f.Candidates[len(f.Candidates)-1]
}

// Len returns the number of candidates.
func (f *Front) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Candidates)
}

// LoadFront reads a Pareto-front csv and reconstructs its candidates against
// the given variable-symbol table.
func LoadFront(path string, vars map[string]bool) (*Front, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pareto front: %w", err)
	}
	defer file.Close()
	return ParseFront(file, vars)
}

// ParseFront parses Pareto-front csv data. The header must carry an
// "expression" and a "reward" column; every column after "reward" is treated
// as a free-constant column. Free-constant cells that are not a number are
// replaced with the neutral value 1.0. The expression cell is coerced to a
// string before parsing, since fronts occasionally collapse to a bare
// numeric literal.
func ParseFront(r io.Reader, vars map[string]bool) (*Front, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading pareto front header: %w", err)
	}
	exprCol, rewardCol := -1, -1
	for i, name := range header {
		switch name {
		case "expression":
			exprCol = i
		case "reward":
			rewardCol = i
		}
	}
	if exprCol < 0 || rewardCol < 0 {
		return nil, fmt.Errorf("pareto front header missing expression/reward columns")
	}

	front := &Front{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading pareto front row %d: %w", row, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("pareto front row %d: %d cells, header has %d", row, len(record), len(header))
		}

		consts := make(map[string]float64)
		for i := rewardCol + 1; i < len(header); i++ {
			val, err := strconv.ParseFloat(record[i], 64)
			if err != nil || math.IsNaN(val) {
				val = 1.0
			}
			consts[header[i]] = val
		}

		reward, err := strconv.ParseFloat(record[rewardCol], 64)
		if err != nil {
			return nil, fmt.Errorf("pareto front row %d: bad reward %q: %w", row, record[rewardCol], err)
		}

		expr, err := symexpr.Parse(record[exprCol], vars, consts)
		if err != nil {
			return nil, fmt.Errorf("pareto front row %d: %w", row, err)
		}
		front.Candidates = append(front.Candidates, Candidate{
			Expr:   expr,
			Reward: reward,
			Source: record[exprCol],
		})
	}
	return front, nil
}

// Curves is the training-curve artifact: per-epoch rewarded-evaluation
// counts. An epoch of -1 marks a job that never started.
type Curves struct {
	Epochs    []int
	NRewarded []int
}

// LoadCurves reads a curves csv with "epoch" and "n_rewarded" columns.
func LoadCurves(path string) (*Curves, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening curves data: %w", err)
	}
	defer file.Close()
	return ParseCurves(file)
}

// ParseCurves parses curves csv data.
func ParseCurves(r io.Reader) (*Curves, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading curves header: %w", err)
	}
	epochCol, rewardedCol := -1, -1
	for i, name := range header {
		switch name {
		case "epoch":
			epochCol = i
		case "n_rewarded":
			rewardedCol = i
		}
	}
	if epochCol < 0 || rewardedCol < 0 {
		return nil, fmt.Errorf("curves header missing epoch/n_rewarded columns")
	}

	curves := &Curves{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading curves row %d: %w", row, err)
		}
		epoch, err := strconv.Atoi(record[epochCol])
		if err != nil {
			return nil, fmt.Errorf("curves row %d: bad epoch %q: %w", row, record[epochCol], err)
		}
		rewarded, err := strconv.Atoi(record[rewardedCol])
		if err != nil {
			return nil, fmt.Errorf("curves row %d: bad n_rewarded %q: %w", row, record[rewardedCol], err)
		}
		curves.Epochs = append(curves.Epochs, epoch)
		curves.NRewarded = append(curves.NRewarded, rewarded)
	}
	return curves, nil
}

// LastEpoch returns the final recorded epoch index, -1 when no rows exist.
func (c *Curves) LastEpoch() int {
	if c == nil || len(c.Epochs) == 0 {
		return -1
	}
	return c.Epochs[len(c.Epochs)-1]
}

// TotalRewarded returns the cumulative rewarded-evaluation count.
func (c *Curves) TotalRewarded() int {
	if c == nil {
		return 0
	}
	var total int
	for _, n := range c.NRewarded {
		total += n
	}
	return total
}
