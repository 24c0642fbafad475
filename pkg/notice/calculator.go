// Package notice computes minimum notice lengths and the resulting service,
// expiry, and court dates under calendar and deemed-service arithmetic.
//
// A computed result that violates a floor or cutoff is not an error: "this
// service date doesn't work" is valid, expected output, carried as
// violation entries on the result. Errors are reserved for inputs the
// computation genuinely cannot proceed without.
package notice

import (
	"fmt"
	"time"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

// Method is how the notice is served.
type Method string

const (
	MethodHand       Method = "hand"
	MethodPost       Method = "post"
	MethodElectronic Method = "electronic"
	MethodDX         Method = "dx" // document exchange
)

// Defaults applied when the rule set's service section leaves a field
// unset.
const (
	defaultPostalOffsetDays = 2
	defaultSameDayCutoff    = "16:30"
)

// ServiceEvent describes a planned or actual act of service.
type ServiceEvent struct {
	Method    Method     `json:"method"`
	Date      dates.Date `json:"date"`
	TimeOfDay string     `json:"time_of_day,omitempty"` // "15:04"; empty = before the cutoff
	// ElectronicConsent records whether the tenant agreed in advance to
	// electronic service. nil = not yet answered.
	ElectronicConsent *bool `json:"electronic_consent,omitempty"`
}

// Violation is a floor or cutoff the computed dates break. Shaped like a
// blocker result so the aggregator can merge the two streams.
type Violation struct {
	Code        string         `json:"code"`
	Severity    rules.Severity `json:"severity"`
	Description string         `json:"description"`
	Limit       dates.Date     `json:"limit"`
}

// Violation codes.
const (
	ViolationEarliestService   = "earliest_service_floor"
	ViolationRegimeCutoff      = "regime_cutoff"
	ViolationCourtWindow       = "court_window_closed"
	ViolationElectronicConsent = "electronic_consent_refused"
)

// Result carries every computed date for one route/ground.
type Result struct {
	Route      string `json:"route"`
	GroundCode string `json:"ground_code,omitempty"`

	MinNotice           rules.NoticePeriod `json:"min_notice"`
	EarliestServiceDate dates.Date         `json:"earliest_service_date,omitempty"`
	DeemedServiceDate   dates.Date         `json:"deemed_service_date"`
	ExpiryDate          dates.Date         `json:"expiry_date"`
	EarliestCourtDate   dates.Date         `json:"earliest_court_date"`
	LastCourtDate       dates.Date         `json:"last_court_date,omitempty"`
	RegimeCutoff        dates.Date         `json:"regime_cutoff,omitempty"`

	Violations []Violation `json:"violations,omitempty"`
}

// Compute resolves deemed service, the minimum notice length, and the
// resulting expiry and court dates for one route. ground may be nil for
// routes whose notice length is declared entirely at route level.
//
// Missing service method, date, or electronic-service consent are
// IncompleteInputError: the caller must supply the fact and re-invoke.
func Compute(rs *rules.RuleSet, routeID string, ground *rules.GroundRule, f *facts.CaseFacts, ev ServiceEvent, cal dates.BusinessCalendar) (*Result, error) {
	route := rs.Route(routeID)
	if route == nil {
		return nil, engerrors.Configf("route %q is not declared in rule set %s", routeID, rs.Version)
	}
	if ev.Method == "" {
		return nil, engerrors.Incompletef("service.method", "service method is required")
	}
	if ev.Date.IsZero() {
		return nil, engerrors.Incompletef("service.date", "service date is required")
	}

	res := &Result{
		Route:        routeID,
		RegimeCutoff: route.RegimeCutoff,
	}
	if ground != nil {
		res.GroundCode = ground.Code
	}

	deemed, err := deemedService(rs, ev, cal)
	if err != nil {
		return nil, err
	}
	if violation := consentViolation(ev); violation != nil {
		res.Violations = append(res.Violations, *violation)
	}
	res.DeemedServiceDate = deemed

	minNotice, err := resolveMinNotice(route, ground, f)
	if err != nil {
		return nil, err
	}
	res.MinNotice = minNotice
	res.ExpiryDate = addNotice(deemed, minNotice)
	res.EarliestCourtDate = res.ExpiryDate

	if route.EarliestServiceMonths > 0 {
		floor, err := earliestServiceFloor(route, f)
		if err != nil {
			return nil, err
		}
		res.EarliestServiceDate = floor
		if ev.Date.Before(floor) {
			res.Violations = append(res.Violations, Violation{
				Code:     ViolationEarliestService,
				Severity: rules.SeverityBlocking,
				Description: fmt.Sprintf("notice cannot be served before %s (%d months from tenancy start)",
					floor, route.EarliestServiceMonths),
				Limit: floor,
			})
		}
	}

	if !route.RegimeCutoff.IsZero() && ev.Date.After(route.RegimeCutoff) {
		res.Violations = append(res.Violations, Violation{
			Code:        ViolationRegimeCutoff,
			Severity:    rules.SeverityBlocking,
			Description: fmt.Sprintf("this notice type cannot be served after %s", route.RegimeCutoff),
			Limit:       route.RegimeCutoff,
		})
	}

	res.LastCourtDate = lastCourtDate(route, deemed)
	if !res.LastCourtDate.IsZero() && res.LastCourtDate.Before(res.EarliestCourtDate) {
		res.Violations = append(res.Violations, Violation{
			Code:     ViolationCourtWindow,
			Severity: rules.SeverityBlocking,
			Description: fmt.Sprintf("the notice expires %s, after the last date proceedings may be issued (%s)",
				res.ExpiryDate, res.LastCourtDate),
			Limit: res.LastCourtDate,
		})
	}

	return res, nil
}

// deemedService resolves the date the notice is legally treated as
// received. Postal and document-exchange service take the configured
// business-day offset; hand and electronic service before the same-day
// cutoff are deemed same-day, otherwise next business day.
func deemedService(rs *rules.RuleSet, ev ServiceEvent, cal dates.BusinessCalendar) (dates.Date, error) {
	switch ev.Method {
	case MethodPost, MethodDX:
		offset := rs.Service.PostalOffsetBusinessDays
		if offset == 0 {
			offset = defaultPostalOffsetDays
		}
		return dates.AddBusinessDays(ev.Date, offset, rs.Region, cal), nil

	case MethodHand, MethodElectronic:
		if ev.Method == MethodElectronic && ev.ElectronicConsent == nil {
			return dates.Date{}, engerrors.Incompletef("service.electronic_consent",
				"electronic service requires the tenant's prior consent to be recorded")
		}
		after, err := afterCutoff(rs, ev)
		if err != nil {
			return dates.Date{}, err
		}
		if after {
			return dates.NextBusinessDay(ev.Date.AddDays(1), rs.Region, cal), nil
		}
		return ev.Date, nil

	default:
		return dates.Date{}, engerrors.Configf("unsupported service method %q", ev.Method)
	}
}

// consentViolation reports recorded refusal of electronic service. Refusal
// is known case data, so it is a blocking violation on the result rather
// than an error.
func consentViolation(ev ServiceEvent) *Violation {
	if ev.Method != MethodElectronic || ev.ElectronicConsent == nil || *ev.ElectronicConsent {
		return nil
	}
	return &Violation{
		Code:        ViolationElectronicConsent,
		Severity:    rules.SeverityBlocking,
		Description: "the tenant has not consented to electronic service; the notice is not validly served by this method",
	}
}

func afterCutoff(rs *rules.RuleSet, ev ServiceEvent) (bool, error) {
	if ev.TimeOfDay == "" {
		return false, nil
	}
	served, err := time.Parse("15:04", ev.TimeOfDay)
	if err != nil {
		return false, engerrors.Configf("service time %q is not a valid HH:MM time", ev.TimeOfDay)
	}
	cutoffStr := rs.Service.SameDayCutoff
	if cutoffStr == "" {
		cutoffStr = defaultSameDayCutoff
	}
	cutoff, err := time.Parse("15:04", cutoffStr)
	if err != nil {
		return false, engerrors.Configf("same-day cutoff %q is not a valid HH:MM time", cutoffStr)
	}
	return served.After(cutoff), nil
}

// resolveMinNotice picks the governing minimum notice length: the ground's
// spec (fixed, or selected by the tenancy's rent period), floored by any
// route-level minimum. "Longer" is decided by projected expiry, so mixed
// day/month periods compare correctly.
func resolveMinNotice(route *rules.RouteSpec, ground *rules.GroundRule, f *facts.CaseFacts) (rules.NoticePeriod, error) {
	var period rules.NoticePeriod

	if ground != nil {
		if len(ground.Notice.ByRentPeriod) > 0 {
			if f.Tenancy.RentPeriod == nil {
				return rules.NoticePeriod{}, engerrors.Incompletef("tenancy.rent_period",
					"ground %s selects its notice period by rent period", ground.Code)
			}
			p, ok := ground.Notice.ByRentPeriod[*f.Tenancy.RentPeriod]
			if !ok {
				return rules.NoticePeriod{}, engerrors.Configf("ground %s has no notice period for rent period %q",
					ground.Code, *f.Tenancy.RentPeriod)
			}
			period = p
		} else {
			period = ground.Notice.NoticePeriod
		}
	}

	if !route.MinNotice.IsZero() && longer(route.MinNotice, period) {
		period = route.MinNotice
	}
	if period.IsZero() {
		return rules.NoticePeriod{}, engerrors.Configf("route %q resolves to an empty notice period", route.ID)
	}
	return period, nil
}

// longer reports whether a yields a later expiry than b from a common
// reference date.
func longer(a, b rules.NoticePeriod) bool {
	ref := dates.New(2000, time.January, 1)
	return addNotice(ref, a).After(addNotice(ref, b))
}

func addNotice(from dates.Date, p rules.NoticePeriod) dates.Date {
	out := from
	if p.Months > 0 {
		out = dates.AddMonthsClamped(out, p.Months)
	}
	if p.Days > 0 {
		out = out.AddDays(p.Days)
	}
	return out
}

// earliestServiceFloor computes the first date the notice may be served:
// the configured number of months from tenancy start, or from the original
// tenancy's start for replacement and renewal tenancies.
func earliestServiceFloor(route *rules.RouteSpec, f *facts.CaseFacts) (dates.Date, error) {
	start := f.Tenancy.OriginalStartDate
	if start == nil {
		start = f.Tenancy.StartDate
	}
	if start == nil || start.IsZero() {
		return dates.Date{}, engerrors.Incompletef("tenancy.start_date",
			"route %s forbids service in the first %d months of the tenancy", route.ID, route.EarliestServiceMonths)
	}
	return dates.AddMonthsClamped(*start, route.EarliestServiceMonths), nil
}

// lastCourtDate is the lesser of (deemed service + the route's proceedings
// window) and the route's hard final court date, whichever is set.
func lastCourtDate(route *rules.RouteSpec, deemed dates.Date) dates.Date {
	var fromWindow dates.Date
	if route.ProceedingsWindowMonths > 0 {
		fromWindow = dates.AddMonthsClamped(deemed, route.ProceedingsWindowMonths)
	}
	switch {
	case fromWindow.IsZero():
		return route.LastCourtDate
	case route.LastCourtDate.IsZero():
		return fromWindow
	default:
		return fromWindow.Min(route.LastCourtDate)
	}
}
