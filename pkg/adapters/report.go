package adapters

import (
	"github.com/de-tools/report-hub/pkg/export"
	"github.com/de-tools/report-hub/pkg/models/api"
	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/shopspring/decimal"
)

func MapTimePeriodDomainToApi(p domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{Start: p.Start, End: p.End, Days: p.Days}
}

func MapColumnsDomainToApi(columns []domain.Column) []api.Column {
	out := make([]api.Column, 0, len(columns))
	for _, c := range columns {
		out = append(out, api.Column{Header: c.Header, Key: c.Key, Width: c.Width})
	}
	return out
}

func MapReportInfoDomainToApi(info domain.ReportInfo) api.ReportInfo {
	return api.ReportInfo{
		Name:        info.Name,
		Title:       info.Title,
		Description: info.Description,
		SortKeys:    info.SortKeys,
		FilterKeys:  info.FilterKeys,
	}
}

func MapReportPageDomainToApi(page *domain.ReportPage) api.ReportPage {
	rows := make([]map[string]any, 0, len(page.Rows))
	for _, row := range page.Rows {
		rows = append(rows, map[string]any(row))
	}

	return api.ReportPage{
		Report:  page.Report,
		Period:  MapTimePeriodDomainToApi(page.Period),
		Columns: MapColumnsDomainToApi(page.Columns),
		Rows:    rows,
		Summary: map[string]any(page.Summary),
		Page: api.PageMeta{
			Index:      page.Page.Index,
			Size:       page.Page.Size,
			TotalPages: page.Page.TotalPages,
			TotalRows:  page.Page.TotalRows,
		},
	}
}

// MapReportExportDomainToApi flattens the export rows into a sheet via the
// export column spec, ready for an Excel/PDF delegate.
func MapReportExportDomainToApi(exp *domain.ReportExport) api.ReportExport {
	return api.ReportExport{
		Report:  exp.Report,
		Period:  MapTimePeriodDomainToApi(exp.Period),
		Columns: MapColumnsDomainToApi(exp.Columns),
		Sheet:   export.Sheet(exp.Columns, exp.Rows),
		Summary: map[string]any(exp.Summary),
	}
}

// MapInvoiceRequestApiToExport parses the wire money strings leniently;
// malformed values degrade to zero the same way ingestion does.
func MapInvoiceRequestApiToExport(req api.InvoiceRequest, currency string) export.InvoiceRequest {
	items := make([]export.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, export.InvoiceItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: lenientDecimal(item.UnitPrice),
			Discount:  lenientDecimal(item.Discount),
		})
	}
	return export.InvoiceRequest{
		Kind:         req.Kind,
		Number:       req.Number,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		GSTIN:        req.GSTIN,
		Currency:     currency,
		Items:        items,
	}
}

func lenientDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
