package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
)

// ParseFile reads and validates one rule-set YAML file. It never touches any
// cache; the repository owns caching and publication.
func ParseFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set file: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Infof("Loaded rule set %s (%s/%s, effective %s..%s): %d routes, %d grounds, %d blockers",
		rs.Version, rs.Jurisdiction, rs.Product, rs.EffectiveFrom, rs.EffectiveTo,
		len(rs.Routes), len(rs.Grounds), len(rs.Blockers))
	return rs, nil
}

// Parse unmarshals and validates rule-set YAML. Validation is strict: a rule
// set that fails any structural check is rejected outright rather than
// loaded with the bad entries skipped.
func Parse(data []byte) (*RuleSet, error) {
	rs := &RuleSet{}
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("failed to parse rule set YAML: %w", err)
	}
	if err := Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}
