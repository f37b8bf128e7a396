package underwriting

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the underwriting thresholds. Start from DefaultRules; the zero
// value declines everyone.
type Rules struct {
	MinCreditScore int     `yaml:"min_credit_score"`
	MaxDTIPercent  float64 `yaml:"max_dti_percent"`
}

// DefaultRules returns the launch thresholds: decline below a 600 credit
// score, decline above a 45% debt-to-income ratio.
func DefaultRules() Rules {
	return Rules{MinCreditScore: 600, MaxDTIPercent: 45}
}

// LoadRules reads a YAML rules file. Fields omitted from the file keep their
// defaults.
func LoadRules(path string) (Rules, error) {
	// #nosec G304 -- path is operator-provided rules path.
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, err
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, err
	}
	return rules, rules.Validate()
}

func (r Rules) Validate() error {
	if r.MinCreditScore < 300 || r.MinCreditScore > 850 {
		return fmt.Errorf("min_credit_score must be within 300-850, got %d", r.MinCreditScore)
	}
	if r.MaxDTIPercent <= 0 || r.MaxDTIPercent > 100 {
		return fmt.Errorf("max_dti_percent must be within (0, 100], got %v", r.MaxDTIPercent)
	}
	return nil
}
