package facts

import (
	"fmt"
	"sort"
)

// resolvers maps every addressable field path to its accessor. Rule
// conditions may only reference paths in this table; anything else is a
// configuration defect, not a missing fact.
var resolvers = map[string]func(*CaseFacts) Value{
	"parties.landlord_name": func(f *CaseFacts) Value { return stringValue(f.Parties.LandlordName) },
	"parties.tenant_name":   func(f *CaseFacts) Value { return stringValue(f.Parties.TenantName) },

	"property.address":  func(f *CaseFacts) Value { return stringValue(f.Property.Address) },
	"property.postcode": func(f *CaseFacts) Value { return stringValue(f.Property.Postcode) },

	"tenancy.start_date":          func(f *CaseFacts) Value { return dateValue(f.Tenancy.StartDate) },
	"tenancy.original_start_date": func(f *CaseFacts) Value { return dateValue(f.Tenancy.OriginalStartDate) },
	"tenancy.fixed_term_end":      func(f *CaseFacts) Value { return dateValue(f.Tenancy.FixedTermEnd) },
	"tenancy.rent_amount":         func(f *CaseFacts) Value { return numberValue(f.Tenancy.RentAmount) },
	"tenancy.rent_period":         func(f *CaseFacts) Value { return stringValue(f.Tenancy.RentPeriod) },

	"arrears.months_outstanding": func(f *CaseFacts) Value { return numberValue(f.Arrears.MonthsOutstanding) },
	"arrears.total_amount":       func(f *CaseFacts) Value { return numberValue(f.Arrears.TotalAmount) },
	"arrears.continuous":         func(f *CaseFacts) Value { return boolValue(f.Arrears.Continuous) },
	"arrears.pre_action_contact": func(f *CaseFacts) Value { return boolValue(f.Arrears.PreActionContact) },

	"breach.type":     func(f *CaseFacts) Value { return stringValue(f.Breach.Type) },
	"breach.material": func(f *CaseFacts) Value { return boolValue(f.Breach.Material) },

	"antisocial.incident_count":     func(f *CaseFacts) Value { return numberValue(f.Antisocial.IncidentCount) },
	"antisocial.last_incident_date": func(f *CaseFacts) Value { return dateValue(f.Antisocial.LastIncidentDate) },
	"antisocial.evidenced":          func(f *CaseFacts) Value { return boolValue(f.Antisocial.Evidenced) },

	"compliance.deposit_protected":       func(f *CaseFacts) Value { return boolValue(f.Compliance.DepositProtected) },
	"compliance.deposit_info_served":     func(f *CaseFacts) Value { return boolValue(f.Compliance.DepositInfoServed) },
	"compliance.gas_certificate_date":    func(f *CaseFacts) Value { return dateValue(f.Compliance.GasCertificateDate) },
	"compliance.gas_certificate_current": func(f *CaseFacts) Value { return boolValue(f.Compliance.GasCertificateCurrent) },
	"compliance.epc_served":              func(f *CaseFacts) Value { return boolValue(f.Compliance.EPCServed) },
	"compliance.how_to_rent_served":      func(f *CaseFacts) Value { return boolValue(f.Compliance.HowToRentServed) },
	"compliance.licence_required":        func(f *CaseFacts) Value { return boolValue(f.Compliance.LicenceRequired) },
	"compliance.licence_held":            func(f *CaseFacts) Value { return boolValue(f.Compliance.LicenceHeld) },
}

// Resolve looks up the fact at the given field path. An unrecognized path is
// an error (the condition referencing it is malformed); an unanswered fact
// at a valid path is the Unknown value, not an error.
func (f *CaseFacts) Resolve(path string) (Value, error) {
	fn, ok := resolvers[path]
	if !ok {
		return Unknown, fmt.Errorf("unknown fact path %q", path)
	}
	return fn(f), nil
}

// ValidPath reports whether path addresses a known fact leaf.
func ValidPath(path string) bool {
	_, ok := resolvers[path]
	return ok
}

// Paths returns every addressable field path, sorted. Used by rule-set
// validation and by diagnostics.
func Paths() []string {
	out := make([]string, 0, len(resolvers))
	for p := range resolvers {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
