// Package engerrors defines the engine's error taxonomy.
//
// The engine distinguishes three failure classes: malformed rule data
// (ConfigurationError), evaluations that cannot proceed without a specific
// additional fact (IncompleteInputError), and requests for a jurisdiction or
// product no rule set covers (UnsupportedJurisdictionError). Everything else
// the engine can say about a case (ineligible grounds, blocked routes,
// violated notice floors) is ordinary decision content, not an error.
package engerrors

import (
	"fmt"
	"time"
)

// ConfigurationError reports malformed rule or condition data. It is a
// deployment defect: the rule file passed structural validation it should
// not have, or a condition references a field path the fact model does not
// know. It is never raised for missing case facts.
type ConfigurationError struct {
	RuleSet string // rule set version, when known
	Detail  string
}

func (e *ConfigurationError) Error() string {
	if e.RuleSet != "" {
		return fmt.Sprintf("configuration error in rule set %s: %s", e.RuleSet, e.Detail)
	}
	return fmt.Sprintf("configuration error: %s", e.Detail)
}

// Configf builds a ConfigurationError with a formatted detail message.
func Configf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}

// IncompleteInputError reports that a specific computation cannot proceed
// until the caller supplies the fact at FieldPath. It is recoverable: the
// caller collects the missing answer and re-invokes.
type IncompleteInputError struct {
	FieldPath string
	Detail    string
}

func (e *IncompleteInputError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("incomplete input: %s (missing fact %q)", e.Detail, e.FieldPath)
	}
	return fmt.Sprintf("incomplete input: missing fact %q", e.FieldPath)
}

// Incompletef builds an IncompleteInputError for the given field path.
func Incompletef(fieldPath, format string, args ...interface{}) *IncompleteInputError {
	return &IncompleteInputError{FieldPath: fieldPath, Detail: fmt.Sprintf(format, args...)}
}

// UnsupportedJurisdictionError reports that no rule set is active for the
// requested (jurisdiction, product) pair at the as-of date. Distinct from a
// rule set that evaluates to "nothing available", which is a normal blocked
// decision.
type UnsupportedJurisdictionError struct {
	Jurisdiction string
	Product      string
	AsOf         time.Time
}

func (e *UnsupportedJurisdictionError) Error() string {
	return fmt.Sprintf("no active rule set for jurisdiction %q, product %q as of %s",
		e.Jurisdiction, e.Product, e.AsOf.Format("2006-01-02"))
}
