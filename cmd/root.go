package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "symbench",
		Short: "Symbolic-recovery analysis of symbolic regression benchmark runs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "symbench.yaml", "campaign config file path")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newProblemsCmd())
	return root
}
