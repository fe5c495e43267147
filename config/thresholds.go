package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Thresholds are the cut-offs the decision rule compares the yield metrics
// against. The cash-on-cash threshold only feeds the displayed delta; it
// does not take part in classification.
type Thresholds struct {
	GrossYieldPercent float64 `yaml:"gross_yield_percent" json:"gross_yield_percent"`
	NetYieldPercent   float64 `yaml:"net_yield_percent" json:"net_yield_percent"`
	CashOnCashPercent float64 `yaml:"cash_on_cash_percent" json:"cash_on_cash_percent"`
}

// DefaultThresholds returns the standard cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GrossYieldPercent: 6,
		NetYieldPercent:   5,
		CashOnCashPercent: 9,
	}
}

// LoadThresholds reads an optional YAML override file. A missing file is
// not an error — the defaults apply; an unreadable or malformed file is.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("thresholds: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("thresholds: parse %q: %w", path, err)
	}
	return t, nil
}
