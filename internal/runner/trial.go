// Package runner drives the analysis of one benchmarking campaign: it walks
// every (problem, trial) pair sequentially, locates the artifacts the
// external search jobs left behind, assesses symbolic equivalence and
// numeric accuracy, and checkpoints the output tables after each problem.
package runner

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fableg/symbench/internal/equiv"
	"github.com/fableg/symbench/internal/front"
	"github.com/fableg/symbench/internal/metrics"
	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/record"
	"github.com/fableg/symbench/internal/symexpr"
)

// Artifact filenames the external search writes into each run folder.
const (
	ParetoFile = "SR_curves_pareto.csv"
	CurvesFile = "SR_curves_data.csv"
)

// FindRunFolder locates the run folder under resultsPath whose name starts
// with prefix followed by a separator. Folder names end with the noise level
// applied during the search, so the separator keeps e.g. FR_1_1 from matching
// trial eleven's FR_1_11_* folder; with several matches the first in lexical
// order wins. Returns the folder path, the noise level decoded from the
// folder-name suffix (NaN when absent or unreadable) and whether a folder was
// found at all.
func FindRunFolder(resultsPath, prefix string) (string, float64, bool) {
	entries, err := os.ReadDir(resultsPath)
	if err != nil {
		return "", math.NaN(), false
	}
	var matches []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), prefix+"_") {
			matches = append(matches, e.Name())
		}
	}
	if len(matches) == 0 {
		return "", math.NaN(), false
	}
	sort.Strings(matches)
	name := matches[0]

	noise := math.NaN()
	if i := strings.LastIndex(name, "_"); i >= 0 {
		if v, err := strconv.ParseFloat(name[i+1:], 64); err == nil {
			noise = v
		}
	}
	return filepath.Join(resultsPath, name), noise, true
}

// RunData is what could be recovered from one run folder. Either artifact
// may be nil: search jobs write them concurrently with this analysis, so
// absent or half-written files are expected, not errors.
type RunData struct {
	Front  *front.Front
	Curves *front.Curves
	// Noise is the level decoded from the folder name, NaN when the folder
	// was not found.
	Noise float64
	// FrontCorrupt marks a front file that exists but could not be parsed,
	// as opposed to one that is missing entirely.
	FrontCorrupt bool
}

// LoadRunData safely loads the Pareto-front and curves artifacts of the run
// folder matching prefix. A missing folder yields (nil, nil, NaN) without
// error; a corrupt artifact yields nil for that artifact only.
func LoadRunData(resultsPath, prefix string, vars map[string]bool, log *zap.Logger) RunData {
	folder, noise, found := FindRunFolder(resultsPath, prefix)
	if !found {
		log.Warn("unable to find run folder", zap.String("prefix", prefix))
		return RunData{Noise: math.NaN()}
	}

	data := RunData{Noise: noise}

	paretoPath := filepath.Join(folder, ParetoFile)
	f, err := front.LoadFront(paretoPath, vars)
	if err != nil {
		log.Warn("unable to load pareto front", zap.String("path", paretoPath), zap.Error(err))
		if _, statErr := os.Stat(paretoPath); statErr == nil {
			data.FrontCorrupt = true
		}
	} else {
		data.Front = f
	}

	curvesPath := filepath.Join(folder, CurvesFile)
	c, err := front.LoadCurves(curvesPath)
	if err != nil {
		log.Warn("unable to load curves data", zap.String("path", curvesPath), zap.Error(err))
	} else {
		data.Curves = c
	}
	return data
}

// runTrial builds the result record of one (problem, trial) run. The only
// error it can return is the internal invariant violation of a front that
// loaded cleanly yet holds no candidates; every external-data failure is
// converted to sentinels on the record instead.
func (c *Campaign) runTrial(p *problem.Problem, trial int) (record.RunRecord, error) {
	prefix := fmt.Sprintf("FR_%d_%d", p.ID, trial)
	data := LoadRunData(c.ResultsPath, prefix, p.VarNames(), c.Log)

	rec := record.RunRecord{
		Algorithm: c.Cfg.Campaign.Algorithm,
		DataGroup: c.Cfg.Campaign.DataGroup,
		Dataset:   p.Name,
		EqID:      p.ID,
		Trial:     trial,
		// The folder name encodes a noise level too, but the campaign
		// argument is authoritative so all rows stay consistent.
		TargetNoise: c.Noise,
		TrueModel:   p.TrueModel(),
	}

	// Run status, from the curves artifact. No curves means the job never
	// started.
	if data.Curves != nil {
		rec.Evaluations = data.Curves.TotalRewarded()
		rec.Started = data.Curves.LastEpoch() >= 0
		rec.Finished = rec.Evaluations >= c.Cfg.Search.MaxEvaluations-c.Cfg.Search.FinishTolerance-1
	}

	// Symbolic results, from the most complex front candidate.
	if data.Front != nil {
		best := data.Front.Best()
		if best == nil {
			return rec, fmt.Errorf("pareto front %s loaded but no expressions extracted", prefix)
		}
		rec.SymbolicModel = best.Expr.String()
		rec.ModelSize = float64(symexpr.Complexity(best.Expr))
		if simplified, err := symexpr.Simplify(context.Background(), best.Expr); err == nil {
			rec.SimplifiedModel = simplified.String()
			rec.SimplifiedComplexity = float64(symexpr.Complexity(simplified))
		}
	}

	// Equivalence assessment. A corrupt front file is recorded as a parse
	// failure; the selector handles the missing-front case itself.
	if data.FrontCorrupt {
		rec.Equivalence = equiv.Negative(equiv.TagParseError)
	} else {
		_, rec.Equivalence = c.Selector.Assess(data.Front, p.Tree(), p.Variables)
	}

	// Held-out numeric metrics on fresh noiseless samples. Without a front
	// the worst-case sentinels apply directly.
	rec.MSETest = math.Inf(1)
	rec.MAETest = math.Inf(1)
	if data.Front != nil {
		samples := p.GenerateSamples(c.Cfg.Problems.TestSamples, c.Cfg.Problems.Seed)
		target := make([]float64, len(samples))
		for i, s := range samples {
			target[i] = s.Y
		}
		preds := p.Evaluate(data.Front.Best().Expr, samples)
		rec.MSETest = metrics.ClampError(metrics.MSE(target, preds))
		rec.MAETest = metrics.ClampError(metrics.MAE(target, preds))
		rec.R2Test = metrics.ClampScore(metrics.R2(target, preds))
		rec.R2ZeroTest = metrics.ClampScore(metrics.R2Zero(target, preds))
	}
	return rec, nil
}
