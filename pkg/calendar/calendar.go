// Package calendar resolves business days and public holidays per region.
//
// Lookups never block: IsBusinessDay consults an in-memory holiday table,
// seeded from a bundled static fallback and optionally refreshed from a
// remote source. Refreshes are memoized per region with a bounded interval;
// when the source is unavailable the stale table stays in service, because
// a stale-but-present calendar beats a failed evaluation.
package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/metrics"
)

// RegionEnglandWales is the region key for the bundled England & Wales bank
// holiday table.
const RegionEnglandWales = "england-and-wales"

// Resolver answers business-day questions. The zero-dependency contract the
// rest of the engine consumes.
type Resolver interface {
	IsBusinessDay(d dates.Date, region string) bool
}

// Source supplies a region's public holidays from an external reference,
// for example the GOV.UK bank-holidays feed. Implementations may block; the
// service bounds them with the caller's context.
type Source interface {
	Holidays(ctx context.Context, region string) ([]dates.Date, error)
}

type regionTable struct {
	holidays  map[string]bool // keyed by dates.Layout strings
	fetchedAt time.Time       // zero for the static fallback
}

// Service is the production Resolver: static fallback tables plus an
// optional remote source memoized per region.
type Service struct {
	source     Source
	refreshTTL time.Duration

	mu      sync.RWMutex
	regions map[string]*regionTable
}

// Option configures a Service.
type Option func(*Service)

// WithSource attaches a remote holiday source refreshed at most once per
// ttl per region.
func WithSource(src Source, ttl time.Duration) Option {
	return func(s *Service) {
		s.source = src
		s.refreshTTL = ttl
	}
}

// NewService builds a Service seeded with the bundled fallback tables.
func NewService(opts ...Option) *Service {
	s := &Service{
		refreshTTL: 24 * time.Hour,
		regions:    make(map[string]*regionTable),
	}
	for region, days := range fallbackHolidays {
		table := make(map[string]bool, len(days))
		for _, d := range days {
			table[d] = true
		}
		s.regions[region] = &regionTable{holidays: table}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsBusinessDay reports whether d is a business day in region: not a
// weekend and not in the region's holiday table. An unconfigured region
// falls back to weekends only.
func (s *Service) IsBusinessDay(d dates.Date, region string) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	s.mu.RLock()
	table := s.regions[region]
	s.mu.RUnlock()

	if table == nil {
		return true
	}
	return !table.holidays[d.String()]
}

// Refresh fetches the region's holidays from the remote source and swaps in
// a fully built replacement table. It is memoized: a fetch newer than the
// configured interval is skipped. A failed fetch leaves the existing table
// in place and is reported to the caller, who may ignore it.
func (s *Service) Refresh(ctx context.Context, region string) error {
	if s.source == nil {
		return nil
	}

	s.mu.RLock()
	table := s.regions[region]
	s.mu.RUnlock()
	if table != nil && !table.fetchedAt.IsZero() && time.Since(table.fetchedAt) < s.refreshTTL {
		return nil
	}

	days, err := s.source.Holidays(ctx, region)
	if err != nil {
		metrics.RecordCalendarRefresh("stale")
		logging.Warnf("Calendar refresh for %s failed, keeping existing table: %v", region, err)
		return fmt.Errorf("calendar refresh for %s: %w", region, err)
	}

	next := &regionTable{
		holidays:  make(map[string]bool, len(days)),
		fetchedAt: time.Now(),
	}
	for _, d := range days {
		next.holidays[d.String()] = true
	}

	s.mu.Lock()
	s.regions[region] = next
	s.mu.Unlock()

	metrics.RecordCalendarRefresh("ok")
	logging.Infof("Calendar for %s refreshed: %d holidays", region, len(days))
	return nil
}
