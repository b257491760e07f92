package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID     int
	Name   string
	Kind   string
	Amount float64
	At     time.Time
}

func entrySpec() Spec[entry] {
	return Spec[entry]{
		DateOf: func(e entry) time.Time { return e.At },
		SearchFields: func(e entry) []string {
			return []string{e.Name, e.Kind, fmt.Sprintf("%.2f", e.Amount)}
		},
		Categories: map[string]func(entry) string{
			"kind": func(e entry) string { return e.Kind },
		},
		Comparators: map[string]func(a, b entry) int{
			"name":   Strings(func(e entry) string { return e.Name }),
			"amount": Numbers(func(e entry) float64 { return e.Amount }),
			"date":   Times(func(e entry) time.Time { return e.At }),
		},
		DefaultSort: "date",
	}
}

func day(d int, hour int) time.Time {
	return time.Date(2024, 3, d, hour, 0, 0, 0, time.UTC)
}

func fixture() []entry {
	return []entry{
		{ID: 1, Name: "Haircut", Kind: "service", Amount: 300, At: day(1, 10)},
		{ID: 2, Name: "Shampoo", Kind: "product", Amount: 120, At: day(1, 12)},
		{ID: 3, Name: "Facial", Kind: "service", Amount: 800, At: day(2, 9)},
		{ID: 4, Name: "Conditioner", Kind: "product", Amount: 150, At: day(2, 23)},
		{ID: 5, Name: "Massage", Kind: "service", Amount: 1200, At: day(3, 11)},
	}
}

func TestRun_Idempotent(t *testing.T) {
	q := domain.ReportQuery{
		From:     day(1, 0),
		To:       day(3, 0),
		SortKey:  "amount",
		Page:     1,
		PageSize: 2,
	}
	first := Run(fixture(), entrySpec(), q)
	second := Run(fixture(), entrySpec(), q)
	assert.Equal(t, first, second)
}

func TestRun_DateRangeInclusive(t *testing.T) {
	spec := entrySpec()
	records := []entry{
		{ID: 1, At: time.Date(2024, 3, 2, 23, 59, 59, 999e6, time.UTC)},
		{ID: 2, At: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
	}

	q := domain.ReportQuery{From: day(1, 0), To: day(2, 0)}
	result := Run(records, spec, q)
	require.Len(t, result.Filtered, 1)
	assert.Equal(t, 1, result.Filtered[0].ID)
}

func TestRun_SwapsInvertedBounds(t *testing.T) {
	q := domain.ReportQuery{From: day(3, 0), To: day(1, 0)}
	result := Run(fixture(), entrySpec(), q)
	assert.Len(t, result.Filtered, 5)
}

func TestRun_CategoricalFilter(t *testing.T) {
	all := Run(fixture(), entrySpec(), domain.ReportQuery{})
	services := Run(fixture(), entrySpec(), domain.ReportQuery{
		Filters: map[string]string{"kind": "service"},
	})

	// Adding a filter can only shrink the result.
	assert.LessOrEqual(t, len(services.Filtered), len(all.Filtered))
	assert.Len(t, services.Filtered, 3)

	unset := Run(fixture(), entrySpec(), domain.ReportQuery{
		Filters: map[string]string{"kind": "all"},
	})
	assert.Len(t, unset.Filtered, 5)
}

func TestRun_Search(t *testing.T) {
	result := Run(fixture(), entrySpec(), domain.ReportQuery{Search: "haIR"})
	require.Len(t, result.Filtered, 1)
	assert.Equal(t, "Haircut", result.Filtered[0].Name)

	// Search matches stringified amounts too.
	result = Run(fixture(), entrySpec(), domain.ReportQuery{Search: "1200"})
	require.Len(t, result.Filtered, 1)
	assert.Equal(t, "Massage", result.Filtered[0].Name)
}

func TestRun_SortDirections(t *testing.T) {
	asc := Run(fixture(), entrySpec(), domain.ReportQuery{SortKey: "amount"})
	assert.Equal(t, 120.0, asc.Filtered[0].Amount)

	desc := Run(fixture(), entrySpec(), domain.ReportQuery{
		SortKey:   "amount",
		Direction: domain.SortDesc,
	})
	assert.Equal(t, 1200.0, desc.Filtered[0].Amount)
}

func TestRun_StableSortPreservesTies(t *testing.T) {
	records := []entry{
		{ID: 1, Amount: 100},
		{ID: 2, Amount: 100},
		{ID: 3, Amount: 100},
	}
	result := Run(records, entrySpec(), domain.ReportQuery{SortKey: "amount"})
	assert.Equal(t, []int{1, 2, 3}, []int{result.Filtered[0].ID, result.Filtered[1].ID, result.Filtered[2].ID})
}

func TestRun_PaginationPartition(t *testing.T) {
	records := make([]entry, 23)
	for i := range records {
		records[i] = entry{ID: i + 1, At: day(1, 1)}
	}

	seen := map[int]bool{}
	total := 0
	for page := 1; ; page++ {
		result := Run(records, entrySpec(), domain.ReportQuery{Page: page, PageSize: 5})
		for _, r := range result.Page {
			assert.False(t, seen[r.ID], "record %d emitted twice", r.ID)
			seen[r.ID] = true
		}
		total += len(result.Page)
		if page >= result.Meta.TotalPages {
			break
		}
	}
	assert.Equal(t, len(records), total)
}

func TestRun_PageClamping(t *testing.T) {
	result := Run(fixture(), entrySpec(), domain.ReportQuery{Page: 99, PageSize: 2})
	assert.Equal(t, 3, result.Meta.Index)
	assert.Equal(t, 3, result.Meta.TotalPages)
	assert.Len(t, result.Page, 1)

	empty := Run(nil, entrySpec(), domain.ReportQuery{Page: 5, PageSize: 10})
	assert.Equal(t, 1, empty.Meta.Index)
	assert.Equal(t, 1, empty.Meta.TotalPages)
	assert.Empty(t, empty.Page)
}

func TestRun_FilteredSetIgnoresPagination(t *testing.T) {
	result := Run(fixture(), entrySpec(), domain.ReportQuery{Page: 2, PageSize: 2})
	assert.Len(t, result.Page, 2)
	assert.Len(t, result.Filtered, 5)
}

func TestEndOfDay(t *testing.T) {
	ts := EndOfDay(time.Date(2024, 3, 2, 4, 15, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 999e6, time.UTC), ts)
}
