package stockout

import (
	"context"
	"strings"
	"time"

	"github.com/de-tools/report-hub/pkg/ingest"
	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/de-tools/report-hub/pkg/pipeline"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/store/client"
	"github.com/de-tools/report-hub/pkg/store/snapshot"
	"github.com/shopspring/decimal"
)

const reportName = "stock-out"

var fieldTable = ingest.FieldTable{
	"id":               {"id", "stock_out_id", "stockout_id"},
	"reference_number": {"reference_number", "ref_no", "reference", "voucher_no"},
	"entry_date":       {"entry_date", "date", "created_at", "stock_out_date"},
	"reason_type":      {"reason_type", "reason", "out_type", "type"},
	"item_count":       {"item_count", "items", "no_of_items"},
	"total_qty":        {"total_qty", "quantity", "qty"},
	"total_value":      {"total_value", "amount", "grand_total", "total_amount"},
	"status":           {"status", "billstatus", "bill_status"},
	"notes":            {"notes", "remarks", "description"},
}

// ParseReason folds the backend's free-form reason strings into the fixed
// reason types the report filters on.
func ParseReason(raw string) domain.StockOutReason {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "consumption", "internal use", "internal_use", "used":
		return domain.ReasonConsumption
	case "damage", "damaged", "broken":
		return domain.ReasonDamage
	case "expiry", "expired":
		return domain.ReasonExpiry
	case "transfer", "branch transfer", "branch_transfer":
		return domain.ReasonTransfer
	case "adjustment", "stock adjustment", "stock_adjustment":
		return domain.ReasonAdjustment
	default:
		return domain.ReasonOther
	}
}

type controller struct {
	fetcher  client.Fetcher
	snapshot *snapshot.Holder[domain.StockOutRecord]
}

func ControllerFactory(deps report.Dependencies) (report.Controller, error) {
	return &controller{
		fetcher:  deps.Fetcher,
		snapshot: snapshot.NewHolder[domain.StockOutRecord](),
	}, nil
}

func (c *controller) Describe() domain.ReportInfo {
	return domain.ReportInfo{
		Name:        reportName,
		Title:       "Stock Out",
		Description: "Stock-out entries with per-reason totals",
		SortKeys:    []string{"date", "reference", "reason", "items", "quantity", "value"},
		FilterKeys:  []string{"reason"},
	}
}

func (c *controller) Run(ctx context.Context, q domain.ReportQuery) (*domain.ReportPage, error) {
	entries, err := c.load(ctx, q)
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(entries, entrySpec(), q)
	return &domain.ReportPage{
		Report:  reportName,
		Period:  domain.NewTimePeriod(q.From, q.To),
		Columns: screenColumns,
		Rows:    rows(result.Page),
		Summary: summarize(result.Filtered),
		Page:    result.Meta,
	}, nil
}

func (c *controller) Export(ctx context.Context, q domain.ReportQuery) (*domain.ReportExport, error) {
	entries, err := c.load(ctx, q)
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(entries, entrySpec(), q)
	return &domain.ReportExport{
		Report:  reportName,
		Period:  domain.NewTimePeriod(q.From, q.To),
		Columns: exportColumns,
		Rows:    rows(result.Filtered),
		Summary: summarize(result.Filtered),
	}, nil
}

func (c *controller) load(ctx context.Context, q domain.ReportQuery) ([]domain.StockOutRecord, error) {
	token := c.snapshot.Begin()

	payload, err := c.fetcher.FetchReport(ctx, reportName, q.From, q.To)
	if err != nil {
		return nil, err
	}

	records := normalize(ingest.Records(payload, "stock_out", "stockout_list", "data"))
	c.snapshot.Apply(token, records)

	current, _, _ := c.snapshot.Current()

	// Held and cancelled entries are excluded outright, not just hidden:
	// they must never reach totals, KPIs or exports.
	entries := report.Countable(current, func(r domain.StockOutRecord) domain.BillingStatus {
		return r.Status
	})
	return entries, nil
}

func normalize(raws []map[string]any) []domain.StockOutRecord {
	records := make([]domain.StockOutRecord, 0, len(raws))
	for _, raw := range raws {
		r := ingest.NewResolver(raw, fieldTable)

		id := r.String("id")
		reference := r.String("reference_number")
		if id == "" && reference == "" {
			continue
		}
		entryTime, ok := r.Time("entry_date")
		if !ok {
			continue
		}

		records = append(records, domain.StockOutRecord{
			ID:              id,
			ReferenceNumber: reference,
			EntryTime:       entryTime,
			ReasonType:      ParseReason(r.String("reason_type")),
			ItemCount:       r.Int("item_count"),
			TotalQty:        r.Float("total_qty"),
			TotalValue:      r.Amount("total_value"),
			Status:          report.ParseBillingStatus(r.String("status")),
			Notes:           r.String("notes"),
		})
	}
	return records
}

func entrySpec() pipeline.Spec[domain.StockOutRecord] {
	return pipeline.Spec[domain.StockOutRecord]{
		DateOf: func(r domain.StockOutRecord) time.Time { return r.EntryTime },
		SearchFields: func(r domain.StockOutRecord) []string {
			return []string{
				r.ReferenceNumber,
				r.EntryTime.Format("2006-01-02"),
				string(r.ReasonType),
				r.Notes,
				r.TotalValue.StringFixed(2),
			}
		},
		Categories: map[string]func(domain.StockOutRecord) string{
			"reason": func(r domain.StockOutRecord) string { return string(r.ReasonType) },
		},
		Comparators: map[string]func(a, b domain.StockOutRecord) int{
			"date":      pipeline.Times(func(r domain.StockOutRecord) time.Time { return r.EntryTime }),
			"reference": pipeline.Strings(func(r domain.StockOutRecord) string { return r.ReferenceNumber }),
			"reason":    pipeline.Strings(func(r domain.StockOutRecord) string { return string(r.ReasonType) }),
			"items":     pipeline.Numbers(func(r domain.StockOutRecord) float64 { return float64(r.ItemCount) }),
			"quantity":  pipeline.Numbers(func(r domain.StockOutRecord) float64 { return r.TotalQty }),
			"value":     pipeline.Amounts(func(r domain.StockOutRecord) decimal.Decimal { return r.TotalValue }),
		},
		DefaultSort: "date",
	}
}

var screenColumns = []domain.Column{
	{Header: "Date", Key: "date", Width: 12},
	{Header: "Reference", Key: "reference", Width: 16},
	{Header: "Reason", Key: "reason", Width: 14},
	{Header: "Items", Key: "items", Width: 8},
	{Header: "Qty", Key: "quantity", Width: 10},
	{Header: "Value", Key: "value", Width: 14},
}

var exportColumns = []domain.Column{
	{Header: "Entry Date", Key: "date", Width: 14},
	{Header: "Reference Number", Key: "reference", Width: 20},
	{Header: "Reason Type", Key: "reason", Width: 16},
	{Header: "Item Count", Key: "items", Width: 12},
	{Header: "Total Quantity", Key: "quantity", Width: 14},
	{Header: "Total Value", Key: "value", Width: 16},
	{Header: "Notes", Key: "notes", Width: 30},
}

func rows(entries []domain.StockOutRecord) []domain.Row {
	out := make([]domain.Row, 0, len(entries))
	for _, r := range entries {
		out = append(out, domain.Row{
			"date":      r.EntryTime.Format("2006-01-02"),
			"reference": r.ReferenceNumber,
			"reason":    string(r.ReasonType),
			"items":     r.ItemCount,
			"quantity":  r.TotalQty,
			"value":     r.TotalValue.StringFixed(2),
			"notes":     r.Notes,
		})
	}
	return out
}

func summarize(entries []domain.StockOutRecord) domain.Summary {
	var qty float64
	value := decimal.Zero
	byReason := make(map[domain.StockOutReason]*domain.ReasonTotal)
	var order []domain.StockOutReason

	for _, r := range entries {
		qty += r.TotalQty
		value = value.Add(r.TotalValue)

		total, ok := byReason[r.ReasonType]
		if !ok {
			total = &domain.ReasonTotal{Reason: r.ReasonType}
			byReason[r.ReasonType] = total
			order = append(order, r.ReasonType)
		}
		total.Entries++
		total.TotalQty += r.TotalQty
		total.TotalValue = total.TotalValue.Add(r.TotalValue)
	}

	reasons := make([]domain.Row, 0, len(order))
	for _, reason := range order {
		total := byReason[reason]
		reasons = append(reasons, domain.Row{
			"reason":   string(total.Reason),
			"entries":  total.Entries,
			"quantity": total.TotalQty,
			"value":    total.TotalValue.StringFixed(2),
		})
	}

	return domain.Summary{
		"total_entries":  len(entries),
		"total_quantity": qty,
		"total_value":    value.StringFixed(2),
		"by_reason":      reasons,
	}
}
