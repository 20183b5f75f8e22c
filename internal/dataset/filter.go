package dataset

import (
	"time"

	"childcare-insights-go/internal/types"
)

// Filter narrows a record set by inclusive response-date range and city
// membership. A zero-value bound means unbounded on that side and an
// empty city list means no city filtering, so the zero Filter passes
// everything through.
type Filter struct {
	From   time.Time
	To     time.Time
	Cities []string
}

// Apply returns a fresh slice with the records matching f, preserving
// order. The base slice is never mutated, so repeated filter changes
// are idempotent and order-independent.
func Apply(records []types.SurveyRecord, f Filter) []types.SurveyRecord {
	var cities map[string]struct{}
	if len(f.Cities) > 0 {
		cities = make(map[string]struct{}, len(f.Cities))
		for _, c := range f.Cities {
			cities[c] = struct{}{}
		}
	}

	out := make([]types.SurveyRecord, 0, len(records))
	for _, r := range records {
		d := dateOnly(r.ResponseDate)
		if !f.From.IsZero() && d.Before(dateOnly(f.From)) {
			continue
		}
		if !f.To.IsZero() && d.After(dateOnly(f.To)) {
			continue
		}
		if cities != nil {
			if _, ok := cities[r.City]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// dateOnly truncates a timestamp to date precision; range bounds have
// date-only semantics.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
