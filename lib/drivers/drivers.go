// Package drivers resolves loose driver identifiers (ids, codes,
// permanent numbers, name fragments) against a roster of known
// drivers.
package drivers

import (
	"strings"

	"f1stats-backend/lib/model"

	"github.com/antzucaro/matchr"
)

// Set is an immutable roster that identifiers resolve against.
type Set struct {
	records []model.DriverRecord
}

// NewSet copies records into a roster. Order matters: when two records
// match an identifier equally well, the earlier one wins.
func NewSet(records []model.DriverRecord) *Set {
	copied := make([]model.DriverRecord, len(records))
	copy(copied, records)
	return &Set{records: copied}
}

// Len reports the roster size.
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns the roster in its original order.
func (s *Set) Records() []model.DriverRecord {
	out := make([]model.DriverRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Resolve maps an identifier to a canonical driver record. Matching is
// tried in order of specificity: exact id, exact code, exact permanent
// number, then case-insensitive substring of the full name. When a name
// fragment matches several drivers, the one whose full name is closest
// to the query by Jaro-Winkler similarity wins.
func (s *Set) Resolve(identifier string) (model.DriverRecord, error) {
	query := strings.TrimSpace(identifier)
	if query == "" {
		return model.DriverRecord{}, &model.DriverNotFoundError{Identifier: identifier}
	}

	for _, rec := range s.records {
		if strings.EqualFold(rec.ID, query) {
			return rec, nil
		}
	}
	for _, rec := range s.records {
		if rec.Code != "" && strings.EqualFold(rec.Code, query) {
			return rec, nil
		}
	}
	for _, rec := range s.records {
		if rec.PermanentNumber != "" && rec.PermanentNumber == query {
			return rec, nil
		}
	}

	lowered := strings.ToLower(query)
	var (
		best      model.DriverRecord
		bestScore = -1.0
	)
	for _, rec := range s.records {
		name := rec.FullName()
		if !strings.Contains(strings.ToLower(name), lowered) {
			continue
		}
		score := matchr.JaroWinkler(lowered, strings.ToLower(name), true)
		// Strict inequality keeps the earliest record on ties.
		if score > bestScore {
			best = rec
			bestScore = score
		}
	}
	if bestScore >= 0 {
		return best, nil
	}

	return model.DriverRecord{}, &model.DriverNotFoundError{Identifier: identifier}
}
