package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fableg/symbench/internal/config"
	"github.com/fableg/symbench/internal/record"
	"github.com/fableg/symbench/internal/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [results-dir]",
		Short: "Regenerate summary tables and statistics from a stored detailed table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			start := time.Now()
			records, err := report.ReadDetailed(filepath.Join(dir, cfg.Results.DetailedFile))
			if err != nil {
				return err
			}
			aggregates := record.Aggregate(records)
			essentials := record.Essential(aggregates)

			writer := &report.Writer{Dir: dir, Files: cfg.Results}
			if err := writer.WriteSummary(aggregates); err != nil {
				return err
			}
			if err := writer.WriteEssential(essentials); err != nil {
				return err
			}
			summary := report.Summarize(records, aggregates, cfg.Search.MaxEvaluations, time.Since(start))
			if err := writer.WriteStats(summary); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Essential summary")
			report.RenderEssential(out, essentials)
			fmt.Fprintln(out)
			printHeader(out, "Campaign statistics")
			fmt.Fprint(out, report.FormatSummary(summary))
			return nil
		},
	}
}
