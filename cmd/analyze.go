package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fableg/symbench/internal/config"
	"github.com/fableg/symbench/internal/equiv"
	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/report"
	"github.com/fableg/symbench/internal/runner"
)

var (
	flagNoise float64
	flagPath  string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a results folder (works on ongoing campaigns) and produce result tables",
		Long: "Walk every (problem, trial) pair of the campaign, assess symbolic equivalence " +
			"and numeric accuracy of the run artifacts found in the results folder, and rewrite " +
			"the detailed, summary and essential tables plus the unfinished-jobs file after each problem.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			catalog, err := problem.Load(cfg.Problems.Catalog, cfg.Problems.Excluded)
			if err != nil {
				return err
			}

			campaign := &runner.Campaign{
				Cfg:         cfg,
				Catalog:     catalog,
				ResultsPath: flagPath,
				Noise:       flagNoise,
				Selector:    newSelector(cfg),
				Writer:      &report.Writer{Dir: flagPath, Files: cfg.Results},
				Log:         logger,
				Out:         cmd.OutOrStdout(),
			}

			summary, err := campaign.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			printHeader(out, "Campaign statistics")
			fmt.Fprint(out, report.FormatSummary(summary))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&flagNoise, "noise", "n", 0, "noise level to encode in result rows")
	cmd.MarkFlagRequired("noise")
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to the results folder")
	return cmd
}

// newSelector assembles the front selector and its checker from campaign
// config, routing its non-fatal diagnostics through the logger.
func newSelector(cfg *config.Config) *equiv.Selector {
	return &equiv.Selector{
		Checker: &equiv.Checker{
			Timeout:     time.Duration(cfg.Equivalence.TimeoutSeconds) * time.Second,
			ProbePoints: cfg.Equivalence.ProbePoints,
			Seed:        cfg.Problems.Seed,
		},
		RewardThreshold: cfg.Equivalence.RewardThreshold,
		Warnf: func(format string, args ...any) {
			logger.Sugar().Warnf(format, args...)
		},
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

// printHeader writes a section header, styled only when out is a terminal.
func printHeader(out io.Writer, text string) {
	if isTerminal(out) {
		fmt.Fprintln(out, headerStyle.Render(text))
		return
	}
	fmt.Fprintln(out, text)
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
