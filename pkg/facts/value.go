package facts

import (
	"fmt"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
)

// Kind classifies a resolved fact value.
type Kind int

const (
	// KindUnknown marks a fact that has not been answered yet. It is a
	// first-class value, never an error.
	KindUnknown Kind = iota
	KindBool
	KindNumber
	KindString
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value is a resolved fact leaf. Exactly one of the typed fields is
// meaningful, selected by Kind; a KindUnknown Value carries nothing.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Date   dates.Date
}

// Unknown is the explicit unknown marker.
var Unknown = Value{Kind: KindUnknown}

// IsKnown reports whether the fact has been answered.
func (v Value) IsKnown() bool { return v.Kind != KindUnknown }

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindNumber:
		return fmt.Sprintf("%g", v.Number)
	case KindString:
		return v.Str
	case KindDate:
		return v.Date.String()
	default:
		return "<unknown>"
	}
}

func boolValue(p *bool) Value {
	if p == nil {
		return Unknown
	}
	return Value{Kind: KindBool, Bool: *p}
}

func numberValue(p *float64) Value {
	if p == nil {
		return Unknown
	}
	return Value{Kind: KindNumber, Number: *p}
}

func stringValue(p *string) Value {
	if p == nil {
		return Unknown
	}
	return Value{Kind: KindString, Str: *p}
}

func dateValue(p *dates.Date) Value {
	if p == nil || p.IsZero() {
		return Unknown
	}
	return Value{Kind: KindDate, Date: *p}
}
