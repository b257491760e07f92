package customervisit

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/report-hub/pkg/ingest"
	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/de-tools/report-hub/pkg/pipeline"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/store/client"
	"github.com/de-tools/report-hub/pkg/store/snapshot"
	"github.com/shopspring/decimal"
)

const reportName = "customer-visit"

// fieldTable records every raw key the backend has been seen using for each
// semantic field, in resolution priority order.
var fieldTable = ingest.FieldTable{
	"visit_date":          {"visit_date", "bill_date", "date", "created_at"},
	"customer_id":         {"customer_id", "cust_id", "customerid", "id"},
	"customer_name":       {"customer_name", "cust_name", "name"},
	"phone":               {"phone", "mobile", "mobile_no", "contact"},
	"gstin":               {"gstin", "gst_no", "gst_number"},
	"visit_count":         {"visit_count", "visits", "no_of_visits"},
	"status":              {"billstatus", "bill_status", "status"},
	"taxable_amount":      {"taxable_amount", "taxable_amt", "taxable"},
	"tax_amount":          {"tax_amount", "tax_amt", "gst_amount"},
	"discount_amount":     {"discount_amount", "discount_amt", "discount"},
	"membership_discount": {"membership_discount", "member_discount"},
	"grand_total":         {"amount", "grand_total", "total_amount", "bill_amount"},
	"unit_price":          {"unit_price", "price", "rate"},
	"quantity":            {"quantity", "qty"},
}

type controller struct {
	fetcher  client.Fetcher
	snapshot *snapshot.Holder[domain.CustomerVisitRecord]
}

func ControllerFactory(deps report.Dependencies) (report.Controller, error) {
	return &controller{
		fetcher:  deps.Fetcher,
		snapshot: snapshot.NewHolder[domain.CustomerVisitRecord](),
	}, nil
}

func (c *controller) Describe() domain.ReportInfo {
	return domain.ReportInfo{
		Name:        reportName,
		Title:       "Customer Visits",
		Description: "Daily new vs repeat customer counts and revenue",
		SortKeys:    []string{"date", "new", "repeat", "visits", "revenue"},
		FilterKeys:  nil,
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

// aggregate fetches the window, normalizes it and folds it into per-day
// buckets with window-relative new/repeat classification.
func (c *controller) aggregate(ctx context.Context, q domain.ReportQuery) ([]domain.VisitDay, error) {
	token := c.snapshot.Begin()

	payload, err := c.fetcher.FetchReport(ctx, reportName, q.From, q.To)
	if err != nil {
		return nil, err
	}

	records := normalize(ingest.Records(payload, "data", "visits", "customer_visits"))
	c.snapshot.Apply(token, records)

	current, _, _ := c.snapshot.Current()

	visits := report.Countable(current, func(r domain.CustomerVisitRecord) domain.BillingStatus {
		return r.Status
	})
	visits = report.InWindow(visits, func(r domain.CustomerVisitRecord) time.Time {
		return r.VisitTime
	}, q.From, q.To)

	// Classification depends on chronological pass order.
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].VisitTime.Before(visits[j].VisitTime)
	})

	classifier := report.NewVisitClassifier()
	buckets := make(map[string]*domain.VisitDay)
	var order []string

	for _, v := range visits {
		day := v.VisitTime.Format("2006-01-02")
		bucket, ok := buckets[day]
		if !ok {
			bucket = &domain.VisitDay{Date: day}
			buckets[day] = bucket
			order = append(order, day)
		}

		if classifier.Classify(v.CustomerKey, v.VisitCount) {
			bucket.NewCustomers++
		} else {
			bucket.RepeatCustomers++
		}
		bucket.TotalVisits++
		bucket.Revenue = bucket.Revenue.Add(v.Revenue)
	}

	days := make([]domain.VisitDay, 0, len(order))
	for _, day := range order {
		days = append(days, *buckets[day])
	}
	return days, nil
}

func normalize(raws []map[string]any) []domain.CustomerVisitRecord {
	records := make([]domain.CustomerVisitRecord, 0, len(raws))
	for _, raw := range raws {
		r := ingest.NewResolver(raw, fieldTable)

		visitTime, ok := r.Time("visit_date")
		if !ok {
			continue
		}

		id := r.String("customer_id")
		phone := r.String("phone")

		records = append(records, domain.CustomerVisitRecord{
			VisitTime:    visitTime,
			CustomerKey:  report.CustomerKey(id, phone),
			CustomerName: r.String("customer_name"),
			Phone:        phone,
			GSTIN:        r.String("gstin"),
			VisitCount:   r.Int("visit_count"),
			Status:       report.ParseBillingStatus(r.String("status")),
			Revenue: report.LineRevenue(report.RevenueInputs{
				Taxable:            r.Amount("taxable_amount"),
				Tax:                r.Amount("tax_amount"),
				Discount:           r.Amount("discount_amount"),
				MembershipDiscount: r.Amount("membership_discount"),
				GrandTotal:         r.Amount("grand_total"),
				UnitPrice:          r.Amount("unit_price"),
				Quantity:           r.Float("quantity"),
			}),
		})
	}
	return records
}

func daySpec() pipeline.Spec[domain.VisitDay] {
	return pipeline.Spec[domain.VisitDay]{
		DateOf: func(d domain.VisitDay) time.Time {
			t, _ := time.Parse("2006-01-02", d.Date)
			return t
		},
		SearchFields: func(d domain.VisitDay) []string {
			return []string{d.Date, d.Revenue.StringFixed(2)}
		},
		Comparators: map[string]func(a, b domain.VisitDay) int{
			"date":    pipeline.Strings(func(d domain.VisitDay) string { return d.Date }),
			"new":     pipeline.Numbers(func(d domain.VisitDay) float64 { return float64(d.NewCustomers) }),
			"repeat":  pipeline.Numbers(func(d domain.VisitDay) float64 { return float64(d.RepeatCustomers) }),
			"visits":  pipeline.Numbers(func(d domain.VisitDay) float64 { return float64(d.TotalVisits) }),
			"revenue": pipeline.Amounts(func(d domain.VisitDay) decimal.Decimal { return d.Revenue }),
		},
		DefaultSort: "date",
	}
}

var screenColumns = []domain.Column{
	{Header: "Date", Key: "date", Width: 12},
	{Header: "New", Key: "new", Width: 8},
	{Header: "Repeat", Key: "repeat", Width: 8},
	{Header: "Visits", Key: "visits", Width: 8},
	{Header: "Revenue", Key: "revenue", Width: 14},
}

var exportColumns = []domain.Column{
	{Header: "Date", Key: "date", Width: 15},
	{Header: "New Customers", Key: "new", Width: 15},
	{Header: "Repeat Customers", Key: "repeat", Width: 18},
	{Header: "Total Visits", Key: "visits", Width: 15},
	{Header: "Revenue", Key: "revenue", Width: 18},
	{Header: "Average Bill", Key: "average_bill", Width: 18},
}

func rows(days []domain.VisitDay) []domain.Row {
	out := make([]domain.Row, 0, len(days))
	for _, d := range days {
		average := decimal.Zero
		if d.TotalVisits > 0 {
			average = d.Revenue.Div(decimal.NewFromInt(int64(d.TotalVisits))).Round(2)
		}
		out = append(out, domain.Row{
			"date":         d.Date,
			"new":          d.NewCustomers,
			"repeat":       d.RepeatCustomers,
			"visits":       d.TotalVisits,
			"revenue":      d.Revenue.StringFixed(2),
			"average_bill": average.StringFixed(2),
		})
	}
	return out
}

func summarize(days []domain.VisitDay) domain.Summary {
	var visits, newCustomers, repeats int
	revenue := decimal.Zero
	for _, d := range days {
		visits += d.TotalVisits
		newCustomers += d.NewCustomers
		repeats += d.RepeatCustomers
		revenue = revenue.Add(d.Revenue)
	}
	return domain.Summary{
		"total_visits":     visits,
		"new_customers":    newCustomers,
		"repeat_customers": repeats,
		"total_revenue":    revenue.StringFixed(2),
	}
}
