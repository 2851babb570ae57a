package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fableg/symbench/internal/config"
	"github.com/fableg/symbench/internal/problem"
)

func newProblemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the benchmark problems of the campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			catalog, err := problem.Load(cfg.Problems.Catalog, cfg.Problems.Excluded)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Problems:")
			for _, p := range catalog.Problems {
				vars := make([]string, len(p.Variables))
				for i, v := range p.Variables {
					vars[i] = v.Name
				}
				note := ""
				if catalog.Excluded(p) {
					note = " (excluded)"
				}
				fmt.Fprintf(out, "  - #%d %s: %s [%s]%s\n", p.ID, p.Name, p.Formula, strings.Join(vars, ", "), note)
			}
			return nil
		},
	}
}
