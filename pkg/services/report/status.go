package report

import (
	"strings"

	"github.com/de-tools/report-hub/pkg/models/domain"
)

// ParseBillingStatus normalizes the raw billing flag. The backend has been
// seen sending single letters, words and numerics for the same state.
// Anything unrecognized counts as success so that a missing flag does not
// silently drop revenue.
func ParseBillingStatus(raw string) domain.BillingStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "c", "cancel", "cancelled", "canceled", "void", "rejected":
		return domain.BillingCancelled
	case "h", "hold", "on hold", "on-hold", "on_hold", "pending":
		return domain.BillingHold
	default:
		return domain.BillingSuccess
	}
}

// Countable keeps only the records allowed to contribute to aggregates.
// Held and cancelled transactions are removed before any bucketing, so they
// can never leak into totals, KPIs or exports.
func Countable[T any](records []T, statusOf func(T) domain.BillingStatus) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if statusOf(r).Countable() {
			out = append(out, r)
		}
	}
	return out
}
