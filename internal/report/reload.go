package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fableg/symbench/internal/equiv"
	"github.com/fableg/symbench/internal/record"
)

// ReadDetailed loads a previously written detailed table back into run
// records, so summaries and statistics can be regenerated without re-running
// the analysis.
func ReadDetailed(path string) ([]record.RunRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening detailed table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading detailed header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range detailedHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("detailed table missing column %q", name)
		}
	}

	var records []record.RunRecord
	for row := 1; ; row++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading detailed row %d: %w", row, err)
		}
		get := func(name string) string { return cells[col[name]] }

		r := record.RunRecord{
			Algorithm:       get("algorithm"),
			DataGroup:       get("data_group"),
			Dataset:         get("dataset"),
			TrueModel:       get("true_model"),
			SymbolicModel:   get("symbolic_model"),
			SimplifiedModel: get("simplified_symbolic_model"),
			Equivalence: equiv.Report{
				SymbolicError:      get("symbolic_error"),
				SymbolicFraction:   get("symbolic_fraction"),
				ErrorIsZero:        parseFlag(get("symbolic_error_is_zero")),
				ErrorIsConstant:    parseFlag(get("symbolic_error_is_constant")),
				FractionIsConstant: parseFlag(get("symbolic_fraction_is_constant")),
				Exception:          get("exception"),
			},
		}
		if r.EqID, err = strconv.Atoi(get("eq_nb")); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad eq_nb: %w", row, err)
		}
		if r.Trial, err = strconv.Atoi(get("random_state")); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad random_state: %w", row, err)
		}
		if r.Evaluations, err = strconv.Atoi(get("n_evaluations")); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad n_evaluations: %w", row, err)
		}
		if r.TargetNoise, err = strconv.ParseFloat(get("target_noise"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad target_noise: %w", row, err)
		}
		if r.ModelSize, err = strconv.ParseFloat(get("model_size"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad model_size: %w", row, err)
		}
		if r.SimplifiedComplexity, err = strconv.ParseFloat(get("simplified_complexity"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad simplified_complexity: %w", row, err)
		}
		if r.MSETest, err = strconv.ParseFloat(get("mse_test"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad mse_test: %w", row, err)
		}
		if r.MAETest, err = strconv.ParseFloat(get("mae_test"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad mae_test: %w", row, err)
		}
		if r.R2Test, err = strconv.ParseFloat(get("r2_test"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad r2_test: %w", row, err)
		}
		if r.R2ZeroTest, err = strconv.ParseFloat(get("r2_zero_test"), 64); err != nil {
			return nil, fmt.Errorf("detailed row %d: bad r2_zero_test: %w", row, err)
		}
		r.Started = get("started") == "true"
		r.Finished = get("finished") == "true"
		r.Equivalence.SymbolicSolution = get("symbolic_solution") == "true"
		records = append(records, r)
	}
	return records, nil
}

func parseFlag(s string) equiv.Flag {
	switch s {
	case "True":
		return equiv.True
	case "False":
		return equiv.False
	default:
		return equiv.Undetermined
	}
}
