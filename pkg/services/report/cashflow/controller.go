package cashflow

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

const reportName = "cash-flow"

var fieldTable = ingest.FieldTable{
	"entry_date":   {"entry_date", "date", "transaction_date", "created_at"},
	"direction":    {"direction", "flow_type", "transaction_type", "type"},
	"payment_mode": {"payment_mode", "payment_type", "pay_mode", "mode"},
	"amount":       {"amount", "grand_total", "total_amount", "bill_amount"},
	"description":  {"description", "narration", "remarks", "notes"},
	"status":       {"status", "billstatus", "bill_status"},
}

// ParseDirection maps the backend's assorted in/out markers onto the two
// cash directions. Unknown markers count as inflow.
func ParseDirection(raw string) domain.CashDirection {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "out", "debit", "payment", "expense", "paid":
		return domain.CashOut
	default:
		return domain.CashIn
	}
}

type controller struct {
	fetcher  client.Fetcher
	snapshot *snapshot.Holder[domain.CashFlowRecord]
}

func ControllerFactory(deps report.Dependencies) (report.Controller, error) {
	return &controller{
		fetcher:  deps.Fetcher,
		snapshot: snapshot.NewHolder[domain.CashFlowRecord](),
	}, nil
}

func (c *controller) Describe() domain.ReportInfo {
	return domain.ReportInfo{
		Name:        reportName,
		Title:       "Cash Flow",
		Description: "Daily cash movement per payment mode",
		SortKeys:    []string{"date", "mode", "in", "out", "net"},
		FilterKeys:  []string{"mode"},
	}
}

func (c *controller) Run(ctx context.Context, q domain.ReportQuery) (*domain.ReportPage, error) {
	days, err := c.aggregate(ctx, q)
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(days, daySpec(), q)
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
	days, err := c.aggregate(ctx, q)
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(days, daySpec(), q)
	return &domain.ReportExport{
		Report:  reportName,
		Period:  domain.NewTimePeriod(q.From, q.To),
		Columns: exportColumns,
		Rows:    rows(result.Filtered),
		Summary: summarize(result.Filtered),
	}, nil
}

func (c *controller) aggregate(ctx context.Context, q domain.ReportQuery) ([]domain.CashFlowDay, error) {
	token := c.snapshot.Begin()

	payload, err := c.fetcher.FetchReport(ctx, reportName, q.From, q.To)
	if err != nil {
		return nil, err
	}

	records := normalize(ingest.Records(payload, "data", "cash_flow", "transactions"))
	c.snapshot.Apply(token, records)

	current, _, _ := c.snapshot.Current()

	entries := report.Countable(current, func(r domain.CashFlowRecord) domain.BillingStatus {
		return r.Status
	})
	entries = report.InWindow(entries, func(r domain.CashFlowRecord) time.Time {
		return r.EntryTime
	}, q.From, q.To)

	buckets := make(map[string]*domain.CashFlowDay)
	var order []string

	for _, e := range entries {
		day := e.EntryTime.Format("2006-01-02")
		key := day + "|" + e.PaymentMode
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.CashFlowDay{Date: day, PaymentMode: e.PaymentMode}
			buckets[key] = bucket
			order = append(order, key)
		}

		bucket.Entries++
		if e.Direction == domain.CashOut {
			bucket.Out = bucket.Out.Add(e.Amount)
		} else {
			bucket.In = bucket.In.Add(e.Amount)
		}
		bucket.Net = bucket.In.Sub(bucket.Out)
	}

	days := make([]domain.CashFlowDay, 0, len(order))
	for _, key := range order {
		days = append(days, *buckets[key])
	}
	return days, nil
}

func normalize(raws []map[string]any) []domain.CashFlowRecord {
	records := make([]domain.CashFlowRecord, 0, len(raws))
	for _, raw := range raws {
		r := ingest.NewResolver(raw, fieldTable)

		entryTime, ok := r.Time("entry_date")
		if !ok {
			continue
		}

		mode := r.String("payment_mode")
		if mode == "" {
			mode = "cash"
		}

		records = append(records, domain.CashFlowRecord{
			EntryTime:   entryTime,
			Direction:   ParseDirection(r.String("direction")),
			PaymentMode: strings.ToLower(mode),
			Amount:      r.Amount("amount"),
			Description: r.String("description"),
			Status:      report.ParseBillingStatus(r.String("status")),
		})
	}
	return records
}

func daySpec() pipeline.Spec[domain.CashFlowDay] {
	return pipeline.Spec[domain.CashFlowDay]{
		DateOf: func(d domain.CashFlowDay) time.Time {
			t, _ := time.Parse("2006-01-02", d.Date)
			return t
		},
		SearchFields: func(d domain.CashFlowDay) []string {
			return []string{d.Date, d.PaymentMode, d.Net.StringFixed(2)}
		},
		Categories: map[string]func(domain.CashFlowDay) string{
			"mode": func(d domain.CashFlowDay) string { return d.PaymentMode },
		},
		Comparators: map[string]func(a, b domain.CashFlowDay) int{
			"date": pipeline.Strings(func(d domain.CashFlowDay) string { return d.Date }),
			"mode": pipeline.Strings(func(d domain.CashFlowDay) string { return d.PaymentMode }),
			"in":   pipeline.Amounts(func(d domain.CashFlowDay) decimal.Decimal { return d.In }),
			"out":  pipeline.Amounts(func(d domain.CashFlowDay) decimal.Decimal { return d.Out }),
			"net":  pipeline.Amounts(func(d domain.CashFlowDay) decimal.Decimal { return d.Net }),
		},
		DefaultSort: "date",
	}
}

var screenColumns = []domain.Column{
	{Header: "Date", Key: "date", Width: 12},
	{Header: "Mode", Key: "mode", Width: 10},
	{Header: "In", Key: "in", Width: 14},
	{Header: "Out", Key: "out", Width: 14},
	{Header: "Net", Key: "net", Width: 14},
}

var exportColumns = []domain.Column{
	{Header: "Date", Key: "date", Width: 14},
	{Header: "Payment Mode", Key: "mode", Width: 14},
	{Header: "Entries", Key: "entries", Width: 10},
	{Header: "Cash In", Key: "in", Width: 16},
	{Header: "Cash Out", Key: "out", Width: 16},
	{Header: "Net", Key: "net", Width: 16},
}

func rows(days []domain.CashFlowDay) []domain.Row {
	out := make([]domain.Row, 0, len(days))
	for _, d := range days {
		out = append(out, domain.Row{
			"date":    d.Date,
			"mode":    d.PaymentMode,
			"entries": d.Entries,
			"in":      d.In.StringFixed(2),
			"out":     d.Out.StringFixed(2),
			"net":     d.Net.StringFixed(2),
		})
	}
	return out
}

func summarize(days []domain.CashFlowDay) domain.Summary {
	in, out := decimal.Zero, decimal.Zero
	entries := 0
	for _, d := range days {
		in = in.Add(d.In)
		out = out.Add(d.Out)
		entries += d.Entries
	}
	return domain.Summary{
		"total_entries": entries,
		"total_in":      in.StringFixed(2),
		"total_out":     out.StringFixed(2),
		"total_net":     in.Sub(out).StringFixed(2),
	}
}
