// Package facts models the normalized case-fact record the engine evaluates.
//
// Every leaf field is optional: a nil pointer is the explicit "unknown"
// marker, distinct from any answered value. A boolean answered false is a
// known fact; a boolean never asked is unknown. The two must never collapse
// into one another anywhere downstream.
package facts

import (
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
)

// CaseFacts is everything known about a case at evaluation time. The engine
// makes no assumption about how completely it has been filled in; partial
// records are the normal input during a question flow.
type CaseFacts struct {
	Parties    Parties    `yaml:"parties" json:"parties"`
	Property   Property   `yaml:"property" json:"property"`
	Tenancy    Tenancy    `yaml:"tenancy" json:"tenancy"`
	Arrears    Arrears    `yaml:"arrears" json:"arrears"`
	Breach     Breach     `yaml:"breach" json:"breach"`
	Antisocial Antisocial `yaml:"antisocial" json:"antisocial"`
	Compliance Compliance `yaml:"compliance" json:"compliance"`
}

// Parties identifies landlord and tenant.
type Parties struct {
	LandlordName *string `yaml:"landlord_name" json:"landlord_name,omitempty"`
	TenantName   *string `yaml:"tenant_name" json:"tenant_name,omitempty"`
}

// Property identifies the let property.
type Property struct {
	Address  *string `yaml:"address" json:"address,omitempty"`
	Postcode *string `yaml:"postcode" json:"postcode,omitempty"`
}

// Tenancy holds the tenancy terms. OriginalStartDate is the start of the
// first tenancy of the same property where the current one is a replacement
// or renewal; earliest-service floors run from it when set.
type Tenancy struct {
	StartDate         *dates.Date `yaml:"start_date" json:"start_date,omitempty"`
	OriginalStartDate *dates.Date `yaml:"original_start_date" json:"original_start_date,omitempty"`
	FixedTermEnd      *dates.Date `yaml:"fixed_term_end" json:"fixed_term_end,omitempty"`
	RentAmount        *float64    `yaml:"rent_amount" json:"rent_amount,omitempty"`
	RentPeriod        *string     `yaml:"rent_period" json:"rent_period,omitempty"`
}

// Arrears holds the rent-arrears sub-record.
type Arrears struct {
	MonthsOutstanding *float64 `yaml:"months_outstanding" json:"months_outstanding,omitempty"`
	TotalAmount       *float64 `yaml:"total_amount" json:"total_amount,omitempty"`
	Continuous        *bool    `yaml:"continuous" json:"continuous,omitempty"`
	PreActionContact  *bool    `yaml:"pre_action_contact" json:"pre_action_contact,omitempty"`
}

// Breach holds the breach-of-terms sub-record.
type Breach struct {
	Type     *string `yaml:"type" json:"type,omitempty"`
	Material *bool   `yaml:"material" json:"material,omitempty"`
}

// Antisocial holds the antisocial-behaviour sub-record.
type Antisocial struct {
	IncidentCount    *float64    `yaml:"incident_count" json:"incident_count,omitempty"`
	LastIncidentDate *dates.Date `yaml:"last_incident_date" json:"last_incident_date,omitempty"`
	Evidenced        *bool       `yaml:"evidenced" json:"evidenced,omitempty"`
}

// Compliance holds the statutory-compliance sub-record. These facts feed
// route blockers rather than grounds.
type Compliance struct {
	DepositProtected      *bool       `yaml:"deposit_protected" json:"deposit_protected,omitempty"`
	DepositInfoServed     *bool       `yaml:"deposit_info_served" json:"deposit_info_served,omitempty"`
	GasCertificateDate    *dates.Date `yaml:"gas_certificate_date" json:"gas_certificate_date,omitempty"`
	GasCertificateCurrent *bool       `yaml:"gas_certificate_current" json:"gas_certificate_current,omitempty"`
	EPCServed             *bool       `yaml:"epc_served" json:"epc_served,omitempty"`
	HowToRentServed       *bool       `yaml:"how_to_rent_served" json:"how_to_rent_served,omitempty"`
	LicenceRequired       *bool       `yaml:"licence_required" json:"licence_required,omitempty"`
	LicenceHeld           *bool       `yaml:"licence_held" json:"licence_held,omitempty"`
}

// Rent period enumeration values used by rule conditions and notice-period
// selectors.
const (
	RentWeekly      = "weekly"
	RentFortnightly = "fortnightly"
	RentFourWeekly  = "four_weekly"
	RentMonthly     = "monthly"
	RentQuarterly   = "quarterly"
	RentAnnually    = "annually"
)
