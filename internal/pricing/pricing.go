package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table maps judge model names to a flat USD rate per category evaluation.
// The rates are coarse projections for budgeting, never an execution gate.
type Table struct {
	Models map[string]float64 `yaml:"models"`
}

// Default covers the judge models the benchmark is normally run with.
func Default() *Table {
	return &Table{Models: map[string]float64{
		"gpt-4-vision-preview": 0.85,
		"gpt-4o":               0.30,
	}}
}

func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing file: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing pricing file: %w", err)
	}
	return &t, nil
}

// Estimate projects the judge spend for evaluating n categories with model.
// Unknown models estimate at zero.
func (t *Table) Estimate(model string, n int) float64 {
	if t.Models == nil {
		return 0
	}
	return t.Models[model] * float64(n)
}
