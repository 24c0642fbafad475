// Package eval evaluates single declarative conditions against a case-fact
// record with three-valued logic.
//
// The third value is the point: a condition over a fact nobody has answered
// yet is Indeterminate, never silently false. Only the is_known and
// is_unknown operators treat the unknown marker as meaningful input.
package eval

import (
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

// Outcome is the three-valued result of a condition evaluation.
type Outcome int

const (
	// Indeterminate means the fact the condition needs has not been
	// answered; the condition can become True or False once it is.
	Indeterminate Outcome = iota
	True
	False
)

func (o Outcome) String() string {
	switch o {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "indeterminate"
	}
}

func outcome(b bool) Outcome {
	if b {
		return True
	}
	return False
}

// Evaluate applies one condition to the fact record. It returns an error
// only for malformed conditions (unknown field path, operator/value type
// mismatch); those are ConfigurationError values, a deployment defect rather
// than a property of the case. Well-formed conditions never error.
func Evaluate(c rules.Condition, f *facts.CaseFacts) (Outcome, error) {
	v, err := f.Resolve(c.Field)
	if err != nil {
		return Indeterminate, engerrors.Configf("condition on %q: %v", c.Field, err)
	}

	// Knownness operators are definite regardless of the fact's state.
	switch c.Operator {
	case rules.OpIsKnown:
		return outcome(v.IsKnown()), nil
	case rules.OpIsUnknown:
		return outcome(!v.IsKnown()), nil
	}

	if !v.IsKnown() {
		return Indeterminate, nil
	}

	switch c.Operator {
	case rules.OpIsTrue, rules.OpIsFalse:
		if v.Kind != facts.KindBool {
			return Indeterminate, engerrors.Configf("operator %s on %q: fact is %s, not bool", c.Operator, c.Field, v.Kind)
		}
		return outcome(v.Bool == (c.Operator == rules.OpIsTrue)), nil

	case rules.OpEquals:
		eq, err := valueEquals(v, c.Value)
		if err != nil {
			return Indeterminate, engerrors.Configf("operator equals on %q: %v", c.Field, err)
		}
		return outcome(eq), nil

	case rules.OpNotEquals:
		eq, err := valueEquals(v, c.Value)
		if err != nil {
			return Indeterminate, engerrors.Configf("operator not_equals on %q: %v", c.Field, err)
		}
		return outcome(!eq), nil

	case rules.OpGTE:
		cmp, err := valueCompare(v, c.Value)
		if err != nil {
			return Indeterminate, engerrors.Configf("operator gte on %q: %v", c.Field, err)
		}
		return outcome(cmp >= 0), nil

	case rules.OpLT:
		cmp, err := valueCompare(v, c.Value)
		if err != nil {
			return Indeterminate, engerrors.Configf("operator lt on %q: %v", c.Field, err)
		}
		return outcome(cmp < 0), nil

	case rules.OpOneOf:
		list, ok := c.Value.([]interface{})
		if !ok {
			return Indeterminate, engerrors.Configf("operator one_of on %q: value is not a list", c.Field)
		}
		for _, member := range list {
			eq, err := valueEquals(v, member)
			if err != nil {
				return Indeterminate, engerrors.Configf("operator one_of on %q: %v", c.Field, err)
			}
			if eq {
				return True, nil
			}
		}
		return False, nil

	default:
		return Indeterminate, engerrors.Configf("unsupported operator %q on %q", c.Operator, c.Field)
	}
}

// All evaluates a condition set with AND semantics and reports, alongside
// the combined outcome, the field paths whose unknown facts made it
// Indeterminate. A single False wins over any number of Indeterminates.
func All(conditions []rules.Condition, f *facts.CaseFacts) (Outcome, []string, error) {
	combined := True
	var unresolved []string
	for _, c := range conditions {
		o, err := Evaluate(c, f)
		if err != nil {
			return Indeterminate, nil, err
		}
		switch o {
		case False:
			return False, nil, nil
		case Indeterminate:
			combined = Indeterminate
			unresolved = append(unresolved, c.Field)
		}
	}
	return combined, unresolved, nil
}
