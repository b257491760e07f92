package report

import (
	"time"

	"github.com/de-tools/report-hub/pkg/pipeline"
)

// InWindow keeps the records inside the inclusive [from, to] window before
// classification runs, so buckets never see out-of-range contributions. The
// "to" bound covers its whole calendar day; inverted bounds are swapped.
func InWindow[T any](records []T, dateOf func(T) time.Time, from, to time.Time) []T {
	if from.IsZero() && to.IsZero() {
		return records
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		from, to = to, from
	}
	if !to.IsZero() {
		to = pipeline.EndOfDay(to)
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		ts := dateOf(r)
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
