package report

import (
	"context"

	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/de-tools/report-hub/pkg/store/client"
)

// Controller runs one report end to end: fetch the raw window from the
// backend, normalize and aggregate it, then apply the query's filter, sort
// and page state.
type Controller interface {
	// Describe returns the report's name, title and supported
	// sort/filter keys.
	Describe() domain.ReportInfo
	// Run returns the page slice the view renders plus summary KPIs
	// computed over the whole filtered set.
	Run(ctx context.Context, q domain.ReportQuery) (*domain.ReportPage, error)
	// Export returns the full filtered dataset for an Excel/PDF delegate.
	// Pagination never applies here.
	Export(ctx context.Context, q domain.ReportQuery) (*domain.ReportExport, error)
}

// Dependencies is everything a controller factory may need. The connection
// profile is injected here instead of being read from ambient session state.
type Dependencies struct {
	Fetcher client.Fetcher
	Profile domain.ConnectionProfile
}
