package servicesales

import (
	"context"
	"time"

	"github.com/de-tools/report-hub/pkg/ingest"
	"github.com/de-tools/report-hub/pkg/models/domain"
	"github.com/de-tools/report-hub/pkg/pipeline"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/de-tools/report-hub/pkg/store/client"
	"github.com/de-tools/report-hub/pkg/store/snapshot"
	"github.com/shopspring/decimal"
)

const reportName = "service-sales"

var fieldTable = ingest.FieldTable{
	"service_id":          {"service_id", "serviceid", "item_id", "id"},
	"service_name":        {"service_name", "servicename", "item_name", "name"},
	"category":            {"category", "category_name", "service_category"},
	"sale_date":           {"sale_date", "bill_date", "date", "created_at"},
	"quantity":            {"quantity", "qty", "count"},
	"unit_price":          {"unit_price", "price", "rate"},
	"taxable_amount":      {"taxable_amount", "taxable_amt", "taxable"},
	"tax_amount":          {"tax_amount", "tax_amt", "gst_amount"},
	"discount_amount":     {"discount_amount", "discount_amt", "discount"},
	"membership_discount": {"membership_discount", "member_discount"},
	"grand_total":         {"amount", "grand_total", "total_amount", "bill_amount"},
	"payment_mode":        {"payment_mode", "payment_type", "pay_mode"},
	"status":              {"billstatus", "bill_status", "status"},
}

type controller struct {
	fetcher  client.Fetcher
	snapshot *snapshot.Holder[domain.ServiceSaleRecord]
}

func ControllerFactory(deps report.Dependencies) (report.Controller, error) {
	return &controller{
		fetcher:  deps.Fetcher,
		snapshot: snapshot.NewHolder[domain.ServiceSaleRecord](),
	}, nil
}

func (c *controller) Describe() domain.ReportInfo {
	return domain.ReportInfo{
		Name:        reportName,
		Title:       "Service Sales",
		Description: "Sales, quantity and revenue per service",
		SortKeys:    []string{"name", "category", "sales", "quantity", "gross", "discount", "net"},
		FilterKeys:  []string{"category"},
	}
}

func (c *controller) Run(ctx context.Context, q domain.ReportQuery) (*domain.ReportPage, error) {
	totals, err := c.aggregate(ctx, q)
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(totals, totalSpec(), q)
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
	totals, err := c.aggregate(ctx, q)
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(totals, totalSpec(), q)
	return &domain.ReportExport{
		Report:  reportName,
		Period:  domain.NewTimePeriod(q.From, q.To),
		Columns: exportColumns,
		Rows:    rows(result.Filtered),
		Summary: summarize(result.Filtered),
	}, nil
}

func (c *controller) aggregate(ctx context.Context, q domain.ReportQuery) ([]domain.ServiceTotal, error) {
	token := c.snapshot.Begin()

	payload, err := c.fetcher.FetchReport(ctx, reportName, q.From, q.To)
	if err != nil {
		return nil, err
	}

	records := normalize(ingest.Records(payload, "data", "sales", "service_sales"))
	c.snapshot.Apply(token, records)

	current, _, _ := c.snapshot.Current()

	sales := report.Countable(current, func(r domain.ServiceSaleRecord) domain.BillingStatus {
		return r.Status
	})
	sales = report.InWindow(sales, func(r domain.ServiceSaleRecord) time.Time {
		return r.SaleTime
	}, q.From, q.To)

	buckets := make(map[string]*domain.ServiceTotal)
	var order []string

	for _, s := range sales {
		key := s.ServiceID + "|" + s.ServiceName
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.ServiceTotal{
				ServiceID:   s.ServiceID,
				ServiceName: s.ServiceName,
				Category:    s.Category,
			}
			buckets[key] = bucket
			order = append(order, key)
		}

		bucket.Sales++
		bucket.Quantity += s.Quantity
		bucket.Gross = bucket.Gross.Add(s.Gross)
		bucket.Discount = bucket.Discount.Add(s.Discount)
		bucket.Net = bucket.Net.Add(s.Net)
	}

	totals := make([]domain.ServiceTotal, 0, len(order))
	for _, key := range order {
		totals = append(totals, *buckets[key])
	}
	return totals, nil
}

func normalize(raws []map[string]any) []domain.ServiceSaleRecord {
	records := make([]domain.ServiceSaleRecord, 0, len(raws))
	for _, raw := range raws {
		r := ingest.NewResolver(raw, fieldTable)

		name := r.String("service_name")
		if name == "" {
			// Identity is mandatory for a sales line.
			continue
		}
		saleTime, ok := r.Time("sale_date")
		if !ok {
			continue
		}

		qty := r.Float("quantity")
		if qty == 0 {
			qty = 1
		}
		unitPrice := r.Amount("unit_price")
		taxable := r.Amount("taxable_amount")

		gross := taxable
		if gross.IsZero() {
			gross = unitPrice.Mul(decimal.NewFromFloat(qty))
		}

		records = append(records, domain.ServiceSaleRecord{
			ServiceID:   r.String("service_id"),
			ServiceName: name,
			Category:    r.String("category"),
			SaleTime:    saleTime,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			Gross:       gross,
			Discount:    r.Amount("discount_amount"),
			Tax:         r.Amount("tax_amount"),
			Net: report.LineRevenue(report.RevenueInputs{
				Taxable:            taxable,
				Tax:                r.Amount("tax_amount"),
				Discount:           r.Amount("discount_amount"),
				MembershipDiscount: r.Amount("membership_discount"),
				GrandTotal:         r.Amount("grand_total"),
				UnitPrice:          unitPrice,
				Quantity:           qty,
			}),
			Status:      report.ParseBillingStatus(r.String("status")),
			PaymentMode: r.String("payment_mode"),
		})
	}
	return records
}

func totalSpec() pipeline.Spec[domain.ServiceTotal] {
	return pipeline.Spec[domain.ServiceTotal]{
		SearchFields: func(t domain.ServiceTotal) []string {
			return []string{t.ServiceName, t.Category, t.ServiceID, t.Net.StringFixed(2)}
		},
		Categories: map[string]func(domain.ServiceTotal) string{
			"category": func(t domain.ServiceTotal) string { return t.Category },
		},
		Comparators: map[string]func(a, b domain.ServiceTotal) int{
			"name":     pipeline.Strings(func(t domain.ServiceTotal) string { return t.ServiceName }),
			"category": pipeline.Strings(func(t domain.ServiceTotal) string { return t.Category }),
			"sales":    pipeline.Numbers(func(t domain.ServiceTotal) float64 { return float64(t.Sales) }),
			"quantity": pipeline.Numbers(func(t domain.ServiceTotal) float64 { return t.Quantity }),
			"gross":    pipeline.Amounts(func(t domain.ServiceTotal) decimal.Decimal { return t.Gross }),
			"discount": pipeline.Amounts(func(t domain.ServiceTotal) decimal.Decimal { return t.Discount }),
			"net":      pipeline.Amounts(func(t domain.ServiceTotal) decimal.Decimal { return t.Net }),
		},
		DefaultSort: "name",
	}
}

var screenColumns = []domain.Column{
	{Header: "Service", Key: "name", Width: 24},
	{Header: "Category", Key: "category", Width: 16},
	{Header: "Sales", Key: "sales", Width: 8},
	{Header: "Qty", Key: "quantity", Width: 8},
	{Header: "Net", Key: "net", Width: 14},
}

var exportColumns = []domain.Column{
	{Header: "Service ID", Key: "id", Width: 12},
	{Header: "Service", Key: "name", Width: 28},
	{Header: "Category", Key: "category", Width: 18},
	{Header: "Sales Count", Key: "sales", Width: 12},
	{Header: "Quantity", Key: "quantity", Width: 12},
	{Header: "Gross", Key: "gross", Width: 16},
	{Header: "Discount", Key: "discount", Width: 16},
	{Header: "Net Revenue", Key: "net", Width: 16},
}

func rows(totals []domain.ServiceTotal) []domain.Row {
	out := make([]domain.Row, 0, len(totals))
	for _, t := range totals {
		out = append(out, domain.Row{
			"id":       t.ServiceID,
			"name":     t.ServiceName,
			"category": t.Category,
			"sales":    t.Sales,
			"quantity": t.Quantity,
			"gross":    t.Gross.StringFixed(2),
			"discount": t.Discount.StringFixed(2),
			"net":      t.Net.StringFixed(2),
		})
	}
	return out
}

func summarize(totals []domain.ServiceTotal) domain.Summary {
	var sales int
	var quantity float64
	gross, discount, net := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range totals {
		sales += t.Sales
		quantity += t.Quantity
		gross = gross.Add(t.Gross)
		discount = discount.Add(t.Discount)
		net = net.Add(t.Net)
	}
	return domain.Summary{
		"total_sales":    sales,
		"total_quantity": quantity,
		"total_gross":    gross.StringFixed(2),
		"total_discount": discount.StringFixed(2),
		"total_net":      net.StringFixed(2),
	}
}
