package pipeline

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Spec wires one record type into the pipeline: how to read its date, which
// string projections the free-text search scans, the categorical projections
// filters match against, and the comparator per sortable key. All projections
// are pure; the pipeline never mutates its input slice.
type Spec[T any] struct {
	DateOf       func(T) time.Time
	SearchFields func(T) []string
	Categories   map[string]func(T) string
	Comparators  map[string]func(a, b T) int
	DefaultSort  string
}

// Result carries both the page slice the view renders and the full filtered
// set. Summary KPIs and exports always read Filtered, never Page.
type Result[T any] struct {
	Filtered []T
	Page     []T
	Meta     domain.PageMeta
}

// Run applies, in order: date-range filter, categorical filters, free-text
// search, stable sort, pagination. Re-running with the same inputs yields an
// identical result.
func Run[T any](records []T, spec Spec[T], q domain.ReportQuery) Result[T] {
	filtered := filterByDate(records, spec, q.From, q.To)
	filtered = filterByCategories(filtered, spec, q.Filters)
	filtered = filterBySearch(filtered, spec, q.Search)
	filtered = sortRecords(filtered, spec, q)

	page, meta := paginate(filtered, q.Page, q.PageSize)
	return Result[T]{Filtered: filtered, Page: page, Meta: meta}
}

// EndOfDay normalizes a "to" bound to 23:59:59.999 of its calendar day so
// full-day inclusion works regardless of the stored time component.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999e6, t.Location())
}

func filterByDate[T any](records []T, spec Spec[T], from, to time.Time) []T {
	if spec.DateOf == nil || (from.IsZero() && to.IsZero()) {
		return records
	}

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		from, to = to, from
	}
	if !to.IsZero() {
		to = EndOfDay(to)
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		ts := spec.DateOf(r)
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

func filterByCategories[T any](records []T, spec Spec[T], filters map[string]string) []T {
	out := records
	for key, want := range filters {
		if want == "" || strings.EqualFold(want, "all") {
			continue
		}
		project, ok := spec.Categories[key]
		if !ok {
			continue
		}
		kept := make([]T, 0, len(out))
		for _, r := range out {
			if strings.EqualFold(project(r), want) {
				kept = append(kept, r)
			}
		}
		out = kept
	}
	return out
}

func filterBySearch[T any](records []T, spec Spec[T], search string) []T {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" || spec.SearchFields == nil {
		return records
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, field := range spec.SearchFields(r) {
			if strings.Contains(strings.ToLower(field), search) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func sortRecords[T any](records []T, spec Spec[T], q domain.ReportQuery) []T {
	key := q.SortKey
	if key == "" {
		key = spec.DefaultSort
	}
	cmp, ok := spec.Comparators[key]
	if !ok {
		return records
	}

	dir := 1
	if q.Direction == domain.SortDesc {
		dir = -1
	}

	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j])*dir < 0
	})
	return out
}

func paginate[T any](records []T, page, size int) ([]T, domain.PageMeta) {
	total := len(records)
	if size <= 0 {
		return records, domain.PageMeta{Index: 1, Size: total, TotalPages: 1, TotalRows: total}
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return records[start:end], domain.PageMeta{
		Index:      page,
		Size:       size,
		TotalPages: totalPages,
		TotalRows:  total,
	}
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und, collate.Loose)
)

// Strings returns a locale-aware comparator over a string projection.
func Strings[T any](project func(T) string) func(a, b T) int {
	return func(a, b T) int {
		collatorMu.Lock()
		defer collatorMu.Unlock()
		return collator.CompareString(project(a), project(b))
	}
}

// Numbers compares a float projection.
func Numbers[T any](project func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		va, vb := project(a), project(b)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	}
}

// Amounts compares a decimal projection.
func Amounts[T any](project func(T) decimal.Decimal) func(a, b T) int {
	return func(a, b T) int {
		return project(a).Cmp(project(b))
	}
}

// Times compares a time projection by timestamp.
func Times[T any](project func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		ta, tb := project(a), project(b)
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}
}
