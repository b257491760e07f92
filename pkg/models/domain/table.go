package domain

// Column is one export/table column: header text, the row key it reads,
// and a rendering width hint. Export column sets are explicit and independent
// of whatever the screen shows.
type Column struct {
	Header string
	Key    string
	Width  int
}

// Row is a flat, column-keyed projection of one normalized or aggregated
// record. Values are already display-shaped (strings, numbers).
type Row map[string]any

// Summary holds the KPI values a report's summary cards show. Always computed
// over the filtered, unpaginated set.
type Summary map[string]any

// ReportInfo describes a registered report to API consumers.
type ReportInfo struct {
	Name        string
	Title       string
	Description string
	SortKeys    []string
	FilterKeys  []string
}

// ReportPage is one rendered page of a report: the current page slice plus
// the summary computed over the whole filtered set.
type ReportPage struct {
	Report  string
	Period  TimePeriod
	Columns []Column
	Rows    []Row
	Summary Summary
	Page    PageMeta
}

// ReportExport is the full filtered dataset, flattened for an Excel/PDF
// delegate. Never paginated.
type ReportExport struct {
	Report  string
	Period  TimePeriod
	Columns []Column
	Rows    []Row
	Summary Summary
}
