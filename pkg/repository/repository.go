// Package repository loads versioned rule sets from a directory and selects
// the one active for a (jurisdiction, product, as-of date) triple.
//
// Reads are lock-free against reloads: the whole index is rebuilt and
// validated before being published in one pointer swap, so a concurrent
// evaluator never observes a partially loaded set of rules.
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/engerrors"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/metrics"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/rules"
)

type index struct {
	// sets keys are jurisdiction + "/" + product; versions are sorted by
	// effective_from ascending with non-overlapping windows.
	sets map[string][]*rules.RuleSet
}

// Repository holds the published rule-set index. The zero value is not
// usable; construct with Open.
type Repository struct {
	dir string
	idx atomic.Pointer[index]
}

// Open loads every rule-set file under dir and publishes the index. It
// fails on the first malformed file or overlapping effective window.
func Open(dir string) (*Repository, error) {
	r := &Repository{dir: dir}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rebuilds the index from disk and swaps it in atomically. On any
// failure the previously published index stays in service untouched.
func (r *Repository) Reload() error {
	next, err := buildIndex(r.dir)
	if err != nil {
		return err
	}
	r.idx.Store(next)

	total := 0
	for _, versions := range next.sets {
		total += len(versions)
	}
	logging.Infof("Rule repository published: %d rule sets across %d jurisdiction/product pairs", total, len(next.sets))
	return nil
}

// Get returns the rule set active for the given jurisdiction, product, and
// as-of date. A pair or date no rule set covers is an
// UnsupportedJurisdictionError, distinct from a rule set that offers
// nothing.
func (r *Repository) Get(jurisdiction, product string, asOf dates.Date) (*rules.RuleSet, error) {
	idx := r.idx.Load()
	for _, rs := range idx.sets[key(jurisdiction, product)] {
		if rs.ActiveAt(asOf) {
			metrics.RecordRulesetLookup("hit")
			return rs, nil
		}
	}
	metrics.RecordRulesetLookup("miss")
	return nil, &engerrors.UnsupportedJurisdictionError{
		Jurisdiction: jurisdiction,
		Product:      product,
		AsOf:         asOf.Time(),
	}
}

// All returns every loaded rule set, ordered by jurisdiction, product, and
// effective window. Used by the listing API and CLI.
func (r *Repository) All() []*rules.RuleSet {
	idx := r.idx.Load()
	keys := make([]string, 0, len(idx.sets))
	for k := range idx.sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []*rules.RuleSet
	for _, k := range keys {
		out = append(out, idx.sets[k]...)
	}
	return out
}

func key(jurisdiction, product string) string {
	return jurisdiction + "/" + product
}

func buildIndex(dir string) (*index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rule directory: %w", err)
	}

	next := &index{sets: make(map[string][]*rules.RuleSet)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := strings.ToLower(filepath.Ext(name)); ext != ".yaml" && ext != ".yml" {
			continue
		}
		rs, err := rules.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		k := key(rs.Jurisdiction, rs.Product)
		next.sets[k] = append(next.sets[k], rs)
	}

	for k, versions := range next.sets {
		sort.Slice(versions, func(i, j int) bool {
			return versions[i].EffectiveFrom.Before(versions[j].EffectiveFrom)
		})
		if err := checkWindows(k, versions); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// checkWindows enforces the single-active-version invariant: effective
// windows for one jurisdiction/product must not overlap, and at most one
// version may be open-ended.
func checkWindows(key string, versions []*rules.RuleSet) error {
	for i := 1; i < len(versions); i++ {
		prev, cur := versions[i-1], versions[i]
		if prev.EffectiveTo.IsZero() {
			return engerrors.Configf("rule sets for %s: %s is open-ended but %s starts later", key, prev.Version, cur.Version)
		}
		if !cur.EffectiveFrom.After(prev.EffectiveTo) {
			return engerrors.Configf("rule sets for %s: effective windows of %s and %s overlap", key, prev.Version, cur.Version)
		}
	}
	return nil
}
