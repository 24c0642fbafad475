package eval

import (
	"fmt"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
)

// valueEquals compares a known fact value with a condition threshold. A
// threshold whose type cannot be reconciled with the fact's kind is a
// configuration defect, reported as an error.
func valueEquals(v facts.Value, raw interface{}) (bool, error) {
	switch v.Kind {
	case facts.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return false, typeMismatch(v, raw)
		}
		return v.Bool == b, nil
	case facts.KindNumber:
		n, ok := asNumber(raw)
		if !ok {
			return false, typeMismatch(v, raw)
		}
		return v.Number == n, nil
	case facts.KindString:
		s, ok := raw.(string)
		if !ok {
			return false, typeMismatch(v, raw)
		}
		return v.Str == s, nil
	case facts.KindDate:
		d, err := asDate(raw)
		if err != nil {
			return false, err
		}
		return v.Date.Equal(d), nil
	}
	return false, fmt.Errorf("fact kind %s is not comparable", v.Kind)
}

// valueCompare orders a known fact value against a threshold: -1, 0, or 1.
// Only numbers and dates are orderable.
func valueCompare(v facts.Value, raw interface{}) (int, error) {
	switch v.Kind {
	case facts.KindNumber:
		n, ok := asNumber(raw)
		if !ok {
			return 0, typeMismatch(v, raw)
		}
		switch {
		case v.Number < n:
			return -1, nil
		case v.Number > n:
			return 1, nil
		}
		return 0, nil
	case facts.KindDate:
		d, err := asDate(raw)
		if err != nil {
			return 0, err
		}
		switch {
		case v.Date.Before(d):
			return -1, nil
		case v.Date.After(d):
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("fact kind %s is not orderable", v.Kind)
}

// asNumber accepts the numeric representations the YAML and JSON decoders
// produce.
func asNumber(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func asDate(raw interface{}) (dates.Date, error) {
	s, ok := raw.(string)
	if !ok {
		return dates.Date{}, fmt.Errorf("date threshold must be a %q string, got %T", dates.Layout, raw)
	}
	return dates.Parse(s)
}

func typeMismatch(v facts.Value, raw interface{}) error {
	return fmt.Errorf("fact is %s but threshold is %T", v.Kind, raw)
}
