package domain

import "time"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ReportQuery carries the full view state of one report request: date
// window, categorical filters, free-text search, sort and page selection.
// Each report view owns exactly one of these; nothing is shared across pages.
type ReportQuery struct {
	From      time.Time
	To        time.Time
	Search    string
	Filters   map[string]string // categorical key -> selected value; ""/"all" means unset
	SortKey   string
	Direction SortDirection
	Page      int // 1-based, clamped by the pipeline
	PageSize  int
}

// PageMeta describes the page slice that was actually emitted after clamping.
type PageMeta struct {
	Index      int
	Size       int
	TotalPages int
	TotalRows  int
}
