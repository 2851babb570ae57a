// Package report persists the campaign's output tables and the final
// statistics summary. Every table is rewritten whole at each checkpoint:
// files are staged and renamed so an interrupted batch always leaves the
// last checkpoint's outputs readable.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/fableg/symbench/internal/config"
	"github.com/fableg/symbench/internal/record"
	"github.com/fableg/symbench/internal/stats"
)

// Writer persists campaign outputs into one results directory.
type Writer struct {
	Dir   string
	Files config.Results
}

var detailedHeader = []string{
	"algorithm", "data_group", "dataset", "eq_nb", "random_state", "target_noise", "true_model",
	"n_evaluations", "started", "finished",
	"symbolic_model", "model_size", "simplified_symbolic_model", "simplified_complexity",
	"symbolic_error", "symbolic_fraction",
	"symbolic_error_is_zero", "symbolic_error_is_constant", "symbolic_fraction_is_constant",
	"exception", "symbolic_solution",
	"mse_test", "mae_test", "r2_test", "r2_zero_test",
}

// WriteDetailed rewrites the detailed table with every run record so far.
func (w *Writer) WriteDetailed(records []record.RunRecord) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(detailedHeader); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		row := []string{
			r.Algorithm,
			r.DataGroup,
			r.Dataset,
			strconv.Itoa(r.EqID),
			strconv.Itoa(r.Trial),
			formatFloat(r.TargetNoise),
			r.TrueModel,
			strconv.Itoa(r.Evaluations),
			strconv.FormatBool(r.Started),
			strconv.FormatBool(r.Finished),
			r.SymbolicModel,
			formatFloat(r.ModelSize),
			r.SimplifiedModel,
			formatFloat(r.SimplifiedComplexity),
			r.Equivalence.SymbolicError,
			r.Equivalence.SymbolicFraction,
			r.Equivalence.ErrorIsZero.String(),
			r.Equivalence.ErrorIsConstant.String(),
			r.Equivalence.FractionIsConstant.String(),
			r.Equivalence.Exception,
			strconv.FormatBool(r.Equivalence.SymbolicSolution),
			formatFloat(r.MSETest),
			formatFloat(r.MAETest),
			formatFloat(r.R2Test),
			formatFloat(r.R2ZeroTest),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return w.stage(w.Files.DetailedFile, buf.Bytes())
}

var summaryHeader = []string{
	"eq_nb", "algorithm", "data_group", "dataset", "target_noise", "true_model",
	"n_runs", "n_evaluations", "started", "finished",
	"model_size", "simplified_complexity",
	"symbolic_error_is_zero", "symbolic_error_is_constant", "symbolic_fraction_is_constant",
	"symbolic_solution",
	"mse_test", "mae_test", "r2_test", "r2_zero_test",
}

// WriteSummary rewrites the grouped summary table, indexed by equation id.
func (w *Writer) WriteSummary(aggregates []record.AggregatedRecord) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, a := range aggregates {
		row := []string{
			strconv.Itoa(a.EqID),
			a.Algorithm,
			a.DataGroup,
			a.Dataset,
			formatFloat(a.TargetNoise),
			a.TrueModel,
			strconv.Itoa(a.Runs),
			strconv.Itoa(a.Evaluations),
			strconv.Itoa(a.Started),
			strconv.Itoa(a.Finished),
			formatFloat(a.ModelSize),
			formatFloat(a.SimplifiedComplexity),
			formatFloat(a.ErrorIsZero),
			formatFloat(a.ErrorIsConstant),
			formatFloat(a.FractionIsConstant),
			formatFloat(a.SymbolicSolution),
			formatFloat(a.MSETest),
			formatFloat(a.MAETest),
			formatFloat(a.R2Test),
			formatFloat(a.R2ZeroTest),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return w.stage(w.Files.SummaryFile, buf.Bytes())
}

var essentialHeader = []string{
	"eq_nb", "n_evaluations", "started", "finished", "symbolic_solution", "r2_test", "r2_zero_test",
}

// WriteEssential rewrites the essential projection of the summary.
func (w *Writer) WriteEssential(essentials []record.EssentialRecord) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(essentialHeader); err != nil {
		return err
	}
	for _, e := range essentials {
		row := []string{
			strconv.Itoa(e.EqID),
			strconv.Itoa(e.Evaluations),
			strconv.Itoa(e.Started),
			strconv.Itoa(e.Finished),
			formatFloat(e.SymbolicSolution),
			formatFloat(e.R2Test),
			formatFloat(e.R2ZeroTest),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return w.stage(w.Files.EssentialFile, buf.Bytes())
}

// WriteJobFile rewrites the unfinished-jobs list, one re-launch command per
// line.
func (w *Writer) WriteJobFile(commands []string) error {
	var buf bytes.Buffer
	for _, cmd := range commands {
		buf.WriteString(cmd)
		buf.WriteByte('\n')
	}
	return w.stage(w.Files.JobFile, buf.Bytes())
}

// Summary collects the end-of-batch statistics written to the text report.
type Summary struct {
	Runs          int
	RecoveryRate  float64
	RecoveryCI    stats.Interval
	R2            float64
	R2CI          stats.Interval
	FracEvals     float64
	FracStarted   float64
	TotalStarted  int
	FracFinished  float64
	TotalFinished int
	Elapsed       time.Duration
}

// Summarize computes the end-of-batch statistics. Recovery-rate and R2
// samples are the per-problem aggregates, not the raw runs, matching how
// the confidence intervals are quoted; fractions are relative to the total
// run count and the full evaluation budget.
func Summarize(records []record.RunRecord, aggregates []record.AggregatedRecord, maxEvaluations int, elapsed time.Duration) Summary {
	s := Summary{Runs: len(records), Elapsed: elapsed}

	recovery := make([]float64, 0, len(aggregates))
	r2 := make([]float64, 0, len(aggregates))
	var evaluations int
	for _, a := range aggregates {
		recovery = append(recovery, a.SymbolicSolution)
		r2 = append(r2, a.R2ZeroTest)
		evaluations += a.Evaluations
		s.TotalStarted += a.Started
		s.TotalFinished += a.Finished
	}
	s.RecoveryRate = stats.Mean(recovery)
	s.RecoveryCI = stats.ConfidenceInterval(recovery, 0.95)
	s.R2 = stats.Mean(r2)
	s.R2CI = stats.ConfidenceInterval(r2, 0.95)

	if s.Runs > 0 {
		s.FracStarted = float64(s.TotalStarted) / float64(s.Runs)
		s.FracFinished = float64(s.TotalFinished) / float64(s.Runs)
		if maxEvaluations > 0 {
			s.FracEvals = float64(evaluations) / float64(s.Runs*maxEvaluations)
		}
	}
	return s
}

// WriteStats writes the plain-text statistics report.
func (w *Writer) WriteStats(s Summary) error {
	return w.stage(w.Files.StatsFile, []byte(FormatSummary(s)))
}

// FormatSummary renders the statistics block in the text-report layout.
func FormatSummary(s Summary) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Total recovery rate    = %f %%\n", 100*s.RecoveryRate)
	fmt.Fprintf(&buf, "Recovery rate 95%% CI   = %f %% - %f %%\n", 100*s.RecoveryCI.Low, 100*s.RecoveryCI.High)
	fmt.Fprintf(&buf, "Total R2 coef          = %f\n", s.R2)
	fmt.Fprintf(&buf, "R2 coef 95%% CI         = %f - %f\n", s.R2CI.Low, s.R2CI.High)
	fmt.Fprintf(&buf, "Frac of evals allowed  = %f %%\n", 100*s.FracEvals)
	fmt.Fprintf(&buf, "Frac of runs started   = %f %% (-> %d)\n", 100*s.FracStarted, s.TotalStarted)
	fmt.Fprintf(&buf, "Frac of runs finished  = %f %% (-> %d)\n", 100*s.FracFinished, s.TotalFinished)
	fmt.Fprintf(&buf, "\n-> Results analysis time = %.2f s\n", s.Elapsed.Seconds())
	return buf.String()
}

// RenderEssential prints the essential table for terminal consumption.
func RenderEssential(out io.Writer, essentials []record.EssentialRecord) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"EQ", "EVALS", "STARTED", "FINISHED", "RECOVERY", "R2", "R2 ZERO"})
	for _, e := range essentials {
		table.Append([]string{
			strconv.Itoa(e.EqID),
			strconv.Itoa(e.Evaluations),
			strconv.Itoa(e.Started),
			strconv.Itoa(e.Finished),
			strconv.FormatFloat(e.SymbolicSolution, 'f', 2, 64),
			strconv.FormatFloat(e.R2Test, 'f', 4, 64),
			strconv.FormatFloat(e.R2ZeroTest, 'f', 4, 64),
		})
	}
	table.Render()
}

// stage writes data to a temp file in the results directory and renames it
// into place, so readers and crashes only ever observe complete tables.
func (w *Writer) stage(name string, data []byte) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}
	target := filepath.Join(w.Dir, name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("staging %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
