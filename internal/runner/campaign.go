package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fableg/symbench/internal/config"
	"github.com/fableg/symbench/internal/equiv"
	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/record"
	"github.com/fableg/symbench/internal/report"
)

// Campaign analyzes the run artifacts of one benchmarking campaign. Runs
// are processed strictly sequentially; the only mutable state is the
// growing record list, and every table is rewritten whole after each
// problem so an interrupted analysis leaves valid outputs behind.
type Campaign struct {
	Cfg         *config.Config
	Catalog     *problem.Catalog
	ResultsPath string
	// Noise is the campaign noise level recorded on every result row.
	Noise    float64
	Selector *equiv.Selector
	Writer   *report.Writer
	Log      *zap.Logger
	// Out receives progress lines. Nil discards them.
	Out io.Writer
}

// Run processes every (problem, trial) pair and returns the end-of-batch
// summary. It stops early only on context cancellation or an internal
// invariant violation; external-data failures never abort the batch.
func (c *Campaign) Run(ctx context.Context) (report.Summary, error) {
	start := time.Now()
	var records []record.RunRecord
	var unfinished []string

	for _, p := range c.Catalog.Problems {
		c.printf("\nProblem #%d (%s)\n", p.ID, p.Name)
		if c.Catalog.Excluded(p) {
			c.printf("-> excluded\n")
			continue
		}
		for trial := 0; trial < c.Cfg.Campaign.Trials; trial++ {
			if err := ctx.Err(); err != nil {
				return report.Summary{}, err
			}
			rec, err := c.runTrial(p, trial)
			if err != nil {
				return report.Summary{}, err
			}
			records = append(records, rec)
			c.printf("-> trial %d: symbolic_solution=%v r2=%.4f\n", trial, rec.Equivalence.SymbolicSolution, rec.R2Test)

			// The jobfile is rewritten after every run, not only at
			// batch end, so a partially analyzed campaign can already
			// be relaunched.
			if !rec.Finished {
				cmd := fmt.Sprintf(c.Cfg.Search.RelaunchTemplate, p.ID, trial, c.Noise)
				unfinished = append(unfinished, cmd)
				if err := c.Writer.WriteJobFile(unfinished); err != nil {
					return report.Summary{}, fmt.Errorf("writing jobfile: %w", err)
				}
			}
		}
		if err := c.checkpoint(records); err != nil {
			return report.Summary{}, err
		}
	}

	aggregates := record.Aggregate(records)
	summary := report.Summarize(records, aggregates, c.Cfg.Search.MaxEvaluations, time.Since(start))
	if err := c.Writer.WriteStats(summary); err != nil {
		return report.Summary{}, fmt.Errorf("writing stats: %w", err)
	}
	return summary, nil
}

// checkpoint recomputes every aggregate from scratch and rewrites the three
// output tables. Aggregation is a pure function of the record list, so
// checkpoints over identical records produce byte-identical files.
func (c *Campaign) checkpoint(records []record.RunRecord) error {
	aggregates := record.Aggregate(records)
	if err := c.Writer.WriteDetailed(records); err != nil {
		return fmt.Errorf("writing detailed table: %w", err)
	}
	if err := c.Writer.WriteSummary(aggregates); err != nil {
		return fmt.Errorf("writing summary table: %w", err)
	}
	if err := c.Writer.WriteEssential(record.Essential(aggregates)); err != nil {
		return fmt.Errorf("writing essential table: %w", err)
	}
	return nil
}

func (c *Campaign) printf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}
