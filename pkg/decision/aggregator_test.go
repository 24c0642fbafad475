package decision_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/decision"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/facts"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/notice"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/repository"
)

const englandRuleSet = `
version: england-ast-test.1
jurisdiction: england
product: assured_shorthold_tenancy
region: england-and-wales
effective_from: 2025-10-01
audit:
  source: "Housing Act 1988, ss 8 and 21"
  reviewer: "T. Reviewer"
  reviewed: 2025-09-01
service:
  postal_offset_business_days: 2
  same_day_cutoff: "16:30"
routes:
  - id: section_8
    title: "Section 8 notice seeking possession"
    proceedings_window_months: 12
  - id: section_21
    title: "Section 21 no-fault notice"
    min_notice: { months: 2 }
    earliest_service_months: 4
    regime_cutoff: 2026-05-01
    proceedings_window_months: 6
    last_court_date: 2026-10-31
grounds:
  - code: "8"
    route: section_8
    title: "Serious rent arrears"
    classification: mandatory
    priority: 100
    notice: { days: 14 }
    conditions:
      - { field: arrears.months_outstanding, operator: gte, value: 2 }
    requires:
      - { field: arrears.continuous, operator: is_true }
  - code: "10"
    route: section_8
    title: "Some rent lawfully due is unpaid"
    classification: discretionary
    priority: 60
    notice: { days: 14 }
    conditions:
      - { field: arrears.months_outstanding, operator: gte, value: 0.5 }
blockers:
  - route: section_8
    severity: warning
    description: "Unprotected deposit may reduce the arrears claim"
    condition: { field: compliance.deposit_protected, operator: is_false }
  - route: section_21
    severity: blocking
    description: "Tenancy deposit is not protected in an authorised scheme"
    remediation: "Protect the deposit or return it in full before serving notice"
    condition: { field: compliance.deposit_protected, operator: is_false }
  - route: section_21
    severity: blocking
    description: "No current gas safety certificate has been given to the tenant"
    condition: { field: compliance.gas_certificate_current, operator: is_false }
  - route: section_21
    severity: warning
    description: "How to Rent guide not served"
    condition: { field: compliance.how_to_rent_served, operator: is_false }
`

type weekdayCalendar struct{}

func (weekdayCalendar) IsBusinessDay(d dates.Date, _ string) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
func datePtr(s string) *dates.Date {
	d := dates.MustParse(s)
	return &d
}

// answeredCase is a fully answered arrears case with compliant paperwork.
func answeredCase() *facts.CaseFacts {
	f := &facts.CaseFacts{}
	f.Tenancy.StartDate = datePtr("2024-06-01")
	f.Tenancy.RentPeriod = stringPtr(facts.RentMonthly)
	f.Arrears.MonthsOutstanding = floatPtr(3)
	f.Arrears.Continuous = boolPtr(true)
	f.Compliance.DepositProtected = boolPtr(true)
	f.Compliance.GasCertificateCurrent = boolPtr(true)
	f.Compliance.HowToRentServed = boolPtr(true)
	return f
}

func postalService() *notice.ServiceEvent {
	return &notice.ServiceEvent{Method: notice.MethodPost, Date: dates.MustParse("2026-04-20")}
}

var _ = Describe("Aggregator", func() {
	var (
		agg *decision.Aggregator
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "england.yaml"), []byte(englandRuleSet), 0o644)).To(Succeed())
		repo, err := repository.Open(dir)
		Expect(err).NotTo(HaveOccurred())
		agg = decision.New(repo, weekdayCalendar{})
	})

	routeByID := func(rec *decision.Record, id string) *decision.RouteDecision {
		for i := range rec.Routes {
			if rec.Routes[i].Route == id {
				return &rec.Routes[i]
			}
		}
		Fail("route " + id + " not in record")
		return nil
	}

	Context("with a fully answered compliant case", func() {
		It("produces a complete decision with both routes available", func() {
			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        answeredCase(),
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Status).To(Equal(decision.StatusComplete))
			Expect(rec.UnresolvedFacts).To(BeEmpty())
			Expect(rec.RuleSetVersion).To(Equal("england-ast-test.1"))
			Expect(rec.ID).NotTo(BeEmpty())

			s8 := routeByID(rec, "section_8")
			Expect(s8.Status).To(Equal(decision.RouteAvailable))
			Expect(s8.Grounds.Eligible).To(HaveLen(2))
			Expect(s8.Grounds.Eligible[0].Code).To(Equal("8"), "mandatory ground ranks first")

			s21 := routeByID(rec, "section_21")
			Expect(s21.Status).To(Equal(decision.RouteAvailable))
			Expect(s21.Grounds.Eligible).To(BeEmpty(), "no-fault route needs no ground")
		})

		It("computes notice dates per route from the top eligible ground", func() {
			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        answeredCase(),
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())

			// Posted Monday 2026-04-20, deemed served Wednesday, plus the
			// ground-8 fourteen days.
			s8 := routeByID(rec, "section_8")
			Expect(s8.Notice).NotTo(BeNil())
			Expect(s8.Notice.GroundCode).To(Equal("8"))
			Expect(s8.Notice.DeemedServiceDate.String()).To(Equal("2026-04-22"))
			Expect(s8.Notice.ExpiryDate.String()).To(Equal("2026-05-06"))

			// The no-fault route runs on its two-month route minimum.
			s21 := routeByID(rec, "section_21")
			Expect(s21.Notice).NotTo(BeNil())
			Expect(s21.Notice.GroundCode).To(BeEmpty())
			Expect(s21.Notice.ExpiryDate.String()).To(Equal("2026-06-22"))
			Expect(s21.Notice.Violations).To(BeEmpty())
		})
	})

	Context("with the deposit question unanswered", func() {
		It("stays incomplete and names the missing fact", func() {
			f := answeredCase()
			f.Compliance.DepositProtected = nil

			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        answeredCase(),
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(decision.StatusComplete))

			rec, err = agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        f,
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Status).To(Equal(decision.StatusIncomplete))
			Expect(rec.UnresolvedFacts).To(ContainElement("compliance.deposit_protected"))

			// Nothing is disqualified on missing data.
			for _, rd := range rec.Routes {
				Expect(rd.Status).NotTo(Equal(decision.RouteBlocked))
			}
		})
	})

	Context("with the arrears questions unanswered and a service event", func() {
		It("leaves the fault route pending without computing its dates", func() {
			f := answeredCase()
			f.Arrears.MonthsOutstanding = nil
			f.Arrears.Continuous = nil
			// Block the no-fault route so the pending grounds decide the case.
			f.Compliance.DepositProtected = boolPtr(false)

			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        f,
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Status).To(Equal(decision.StatusIncomplete))
			Expect(rec.UnresolvedFacts).To(ContainElement("arrears.months_outstanding"))

			s8 := routeByID(rec, "section_8")
			Expect(s8.Status).To(Equal(decision.RoutePending))
			Expect(s8.Grounds.Eligible).To(BeEmpty())
			Expect(s8.Grounds.Pending).NotTo(BeEmpty())
			Expect(s8.Notice).To(BeNil(), "no ground is settled to take a notice period from")
		})
	})

	Context("with an unprotected deposit", func() {
		It("blocks the no-fault route and leaves the arrears route usable", func() {
			f := answeredCase()
			f.Compliance.DepositProtected = boolPtr(false)

			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        f,
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(routeByID(rec, "section_21").Status).To(Equal(decision.RouteBlocked))
			Expect(routeByID(rec, "section_8").Status).To(Equal(decision.RouteAvailable))
			Expect(rec.Status).To(Equal(decision.StatusComplete), "one settled route is enough")

			s21 := routeByID(rec, "section_21")
			var descriptions []string
			for _, b := range s21.Blockers {
				descriptions = append(descriptions, b.Description)
			}
			Expect(descriptions).To(ContainElement(ContainSubstring("deposit is not protected")))
		})
	})

	Context("when electronic service was refused", func() {
		It("blocks every route on the consent violation", func() {
			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        answeredCase(),
				Service: &notice.ServiceEvent{
					Method:            notice.MethodElectronic,
					Date:              dates.MustParse("2026-04-20"),
					ElectronicConsent: boolPtr(false),
				},
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Status).To(Equal(decision.StatusBlocked))
			for _, rd := range rec.Routes {
				Expect(rd.Status).To(Equal(decision.RouteBlocked))
			}
		})
	})

	Context("without a service event", func() {
		It("classifies routes and grounds but computes no dates", func() {
			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				AsOf:         dates.MustParse("2026-04-20"),
				Facts:        answeredCase(),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(rec.Status).To(Equal(decision.StatusComplete))
			for _, rd := range rec.Routes {
				Expect(rd.Notice).To(BeNil())
			}
		})
	})

	Context("error taxonomy", func() {
		It("rejects an unsupported jurisdiction", func() {
			_, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "narnia",
				Product:      "assured_shorthold_tenancy",
				AsOf:         dates.MustParse("2026-04-20"),
				Facts:        answeredCase(),
			})
			var unsupported *engerrors.UnsupportedJurisdictionError
			Expect(errors.As(err, &unsupported)).To(BeTrue())
			Expect(unsupported.Jurisdiction).To(Equal("narnia"))
		})

		It("rejects a missing fact record", func() {
			_, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
			})
			var incomplete *engerrors.IncompleteInputError
			Expect(errors.As(err, &incomplete)).To(BeTrue())
			Expect(incomplete.FieldPath).To(Equal("facts"))
		})

		It("propagates the missing consent fact from the notice computation", func() {
			_, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        answeredCase(),
				Service: &notice.ServiceEvent{
					Method: notice.MethodElectronic,
					Date:   dates.MustParse("2026-04-20"),
				},
			})
			var incomplete *engerrors.IncompleteInputError
			Expect(errors.As(err, &incomplete)).To(BeTrue())
			Expect(incomplete.FieldPath).To(Equal("service.electronic_consent"))
		})
	})

	Context("as-of defaulting", func() {
		It("falls back to the service date when as-of is absent", func() {
			rec, err := agg.Evaluate(ctx, decision.Request{
				Jurisdiction: "england",
				Product:      "assured_shorthold_tenancy",
				Facts:        answeredCase(),
				Service:      postalService(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.RuleSetVersion).To(Equal("england-ast-test.1"))
		})
	})
})
