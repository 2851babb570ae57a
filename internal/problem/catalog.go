package problem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered problem set of a campaign.
type Catalog struct {
	Problems []*Problem
	excluded map[string]bool
}

type catalogFile struct {
	Problems []catalogEntry `yaml:"problems"`
}

type catalogEntry struct {
	ID        int        `yaml:"id"`
	Name      string     `yaml:"name"`
	Filename  string     `yaml:"filename"`
	Formula   string     `yaml:"formula"`
	Variables []Variable `yaml:"variables"`
}

// Load reads a yaml problem catalog. An empty path yields the built-in
// benchmark set.
func Load(path string, excluded []string) (*Catalog, error) {
	entries := builtin
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
		if len(file.Problems) == 0 {
			return nil, fmt.Errorf("catalog %s: no problems defined", path)
		}
		entries = file.Problems
	}

	cat := &Catalog{excluded: make(map[string]bool, len(excluded))}
	for _, name := range excluded {
		cat.excluded[name] = true
	}
	for _, e := range entries {
		if e.Formula == "" {
			return nil, fmt.Errorf("catalog problem %d (%s): formula is required", e.ID, e.Name)
		}
		if len(e.Variables) == 0 {
			return nil, fmt.Errorf("catalog problem %d (%s): variables are required", e.ID, e.Name)
		}
		p, err := New(e.ID, e.Name, e.Filename, e.Formula, e.Variables)
		if err != nil {
			return nil, err
		}
		cat.Problems = append(cat.Problems, p)
	}
	return cat, nil
}

// Excluded reports whether a problem sits on the campaign exclusion list and
// should be skipped entirely.
func (c *Catalog) Excluded(p *Problem) bool {
	return c.excluded[p.Filename]
}

// builtin is a compact Feynman-style benchmark set with SRBench-compatible
// dataset names. Campaigns targeting the full set supply a catalog file.
var builtin = []catalogEntry{
	{
		ID: 0, Name: "feynman_I_6_2a", Filename: "I.6.2a",
		Formula:   "exp(-theta**2/2)/sqrt(2*pi)",
		Variables: []Variable{{Name: "theta", Low: 1, High: 3}},
	},
	{
		ID: 1, Name: "feynman_I_12_1", Filename: "I.12.1",
		Formula:   "mu*Nn",
		Variables: []Variable{{Name: "mu", Low: 1, High: 5}, {Name: "Nn", Low: 1, High: 5}},
	},
	{
		ID: 2, Name: "feynman_I_12_2", Filename: "I.12.2",
		Formula: "q1*q2/(4*pi*epsilon*r**2)",
		Variables: []Variable{
			{Name: "q1", Low: 1, High: 5}, {Name: "q2", Low: 1, High: 5},
			{Name: "epsilon", Low: 1, High: 5}, {Name: "r", Low: 1, High: 5},
		},
	},
	{
		ID: 3, Name: "feynman_I_25_13", Filename: "I.25.13",
		Formula:   "q/C",
		Variables: []Variable{{Name: "q", Low: 1, High: 5}, {Name: "C", Low: 1, High: 5}},
	},
	{
		ID: 4, Name: "feynman_I_29_4", Filename: "I.29.4",
		Formula:   "omega/c",
		Variables: []Variable{{Name: "omega", Low: 1, High: 10}, {Name: "c", Low: 1, High: 10}},
	},
	{
		ID: 5, Name: "feynman_I_34_27", Filename: "I.34.27",
		Formula:   "(h/(2*pi))*omega",
		Variables: []Variable{{Name: "h", Low: 1, High: 5}, {Name: "omega", Low: 1, High: 5}},
	},
	{
		ID: 6, Name: "feynman_I_39_1", Filename: "I.39.1",
		Formula:   "3/2*pr*V",
		Variables: []Variable{{Name: "pr", Low: 1, High: 5}, {Name: "V", Low: 1, High: 5}},
	},
	{
		ID: 7, Name: "feynman_II_3_24", Filename: "II.3.24",
		Formula:   "Pwr/(4*pi*r**2)",
		Variables: []Variable{{Name: "Pwr", Low: 1, High: 5}, {Name: "r", Low: 1, High: 5}},
	},
	{
		ID: 8, Name: "feynman_I_14_3", Filename: "I.14.3",
		Formula: "m*g*z",
		Variables: []Variable{
			{Name: "m", Low: 1, High: 5}, {Name: "g", Low: 1, High: 5}, {Name: "z", Low: 1, High: 5},
		},
	},
	{
		ID: 9, Name: "feynman_II_8_31", Filename: "II.8.31",
		Formula:   "epsilon*Ef**2/2",
		Variables: []Variable{{Name: "epsilon", Low: 1, High: 5}, {Name: "Ef", Low: 1, High: 5}},
	},
}
