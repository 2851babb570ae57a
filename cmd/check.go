package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fableg/symbench/internal/config"
	"github.com/fableg/symbench/internal/problem"
	"github.com/fableg/symbench/internal/symexpr"
)

var flagVars []string

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <target> <trial>",
		Short: "Run a one-off symbolic equivalence check between two expressions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			vars, err := parseVarSpecs(flagVars)
			if err != nil {
				return err
			}
			names := make(map[string]bool, len(vars))
			for _, v := range vars {
				names[v.Name] = true
			}

			target, err := symexpr.Parse(args[0], names, nil)
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}
			trial, err := symexpr.Parse(args[1], names, nil)
			if err != nil {
				return fmt.Errorf("trial: %w", err)
			}

			start := time.Now()
			equivalent, rep := newSelector(cfg).Checker.Check(target, trial, vars)
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			printHeader(out, "Equivalence report")
			fmt.Fprintf(out, "symbolic_error                = %s\n", rep.SymbolicError)
			fmt.Fprintf(out, "symbolic_fraction             = %s\n", rep.SymbolicFraction)
			fmt.Fprintf(out, "symbolic_error_is_zero        = %s\n", rep.ErrorIsZero)
			fmt.Fprintf(out, "symbolic_error_is_constant    = %s\n", rep.ErrorIsConstant)
			fmt.Fprintf(out, "symbolic_fraction_is_constant = %s\n", rep.FractionIsConstant)
			fmt.Fprintf(out, "exception                     = %s\n", rep.Exception)
			fmt.Fprintf(out, "symbolic_solution             = %v\n", equivalent)
			fmt.Fprintf(out, "\n-> checked in %s\n", elapsed.Truncate(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&flagVars, "var", []string{"x"},
		"free variable, as name or name=low:high (repeatable)")
	return cmd
}

// parseVarSpecs converts --var flags into variable domains. A bare name gets
// the default [1,5] probing domain.
func parseVarSpecs(specs []string) ([]problem.Variable, error) {
	vars := make([]problem.Variable, 0, len(specs))
	for _, spec := range specs {
		v := problem.Variable{Low: 1, High: 5}
		name, domain, found := strings.Cut(spec, "=")
		v.Name = name
		if found {
			low, high, ok := strings.Cut(domain, ":")
			if !ok {
				return nil, fmt.Errorf("variable %q: domain must be low:high", spec)
			}
			var err error
			if v.Low, err = strconv.ParseFloat(low, 64); err != nil {
				return nil, fmt.Errorf("variable %q: bad lower bound: %w", spec, err)
			}
			if v.High, err = strconv.ParseFloat(high, 64); err != nil {
				return nil, fmt.Errorf("variable %q: bad upper bound: %w", spec, err)
			}
		}
		if v.Name == "" {
			return nil, fmt.Errorf("variable %q: name is required", spec)
		}
		vars = append(vars, v)
	}
	return vars, nil
}
