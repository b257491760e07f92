package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/de-tools/report-hub/pkg/ingest"
	"github.com/de-tools/report-hub/pkg/services/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field is one labelled value inside a document section.
type Field struct {
	Label string
	Value string
}

// Section is an ordered group of fields (customer block, bill block...).
type Section struct {
	Title  string
	Fields []Field
}

// LineItem is one priced line of an invoice or quotation.
type LineItem struct {
	Name      string
	Quantity  float64
	UnitPrice decimal.Decimal
	Tax       decimal.Decimal
	Amount    decimal.Decimal
}

// Document is the structured model behind printable invoices and
// quotations. Rendering is a separate concern; nothing here knows HTML.
type Document struct {
	ID       string
	Kind     string // "invoice" or "quotation"
	Number   string
	Title    string
	Issued   time.Time
	Currency string
	Sections []Section
	Lines    []LineItem
	Total    decimal.Decimal
}

// PriceEntry is what the inventory lookup knows about one item.
type PriceEntry struct {
	Name       string
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
}

// PriceList resolves items by case-insensitive name match.
type PriceList struct {
	entries map[string]PriceEntry
}

var priceFieldTable = ingest.FieldTable{
	"name":        {"item_name", "name", "product_name"},
	"unit_price":  {"unit_price", "price", "rate", "selling_price"},
	"tax_percent": {"tax_percent", "gst_percent", "tax_rate"},
	"cgst":        {"cgst_rate", "cgst"},
	"sgst":        {"sgst_rate", "sgst"},
	"igst":        {"igst_rate", "igst"},
	"vat":         {"vat_rate", "vat"},
}

// NewPriceList builds the lookup from a raw inventory payload. Items without
// a name are dropped; a later duplicate name overrides an earlier one, the
// way the backend's own inventory screen resolves clashes.
func NewPriceList(payload any) *PriceList {
	entries := make(map[string]PriceEntry)
	for _, raw := range ingest.Records(payload, "inventory", "items", "products", "data") {
		r := ingest.NewResolver(raw, priceFieldTable)
		name := r.String("name")
		if name == "" {
			continue
		}
		entries[strings.ToLower(name)] = PriceEntry{
			Name:       name,
			UnitPrice:  r.Amount("unit_price"),
			TaxPercent: r.Percent("tax_percent", "cgst", "sgst", "igst", "vat"),
		}
	}
	return &PriceList{entries: entries}
}

func (p *PriceList) Lookup(name string) (PriceEntry, bool) {
	entry, ok := p.entries[strings.ToLower(strings.TrimSpace(name))]
	return entry, ok
}

// InvoiceItem is one requested line before pricing.
type InvoiceItem struct {
	Name      string
	Quantity  float64
	UnitPrice decimal.Decimal // optional override; inventory price otherwise
	Discount  decimal.Decimal
}

// InvoiceRequest carries everything needed to build a printable document.
type InvoiceRequest struct {
	Kind         string
	Number       string
	CustomerName string
	Phone        string
	GSTIN        string
	Currency     string
	Items        []InvoiceItem
}

// BuildInvoice prices each requested line against the inventory lookup and
// derives per-line tax and amount with the same fallback rules the revenue
// aggregation uses. Lines whose item cannot be priced at all still appear,
// with a zero amount, so the printed document matches what was asked for.
func BuildInvoice(req InvoiceRequest, prices *PriceList) Document {
	kind := req.Kind
	if kind == "" {
		kind = "invoice"
	}

	doc := Document{
		ID:       uuid.NewString(),
		Kind:     kind,
		Number:   req.Number,
		Title:    strings.ToUpper(kind[:1]) + kind[1:],
		Issued:   time.Now(),
		Currency: req.Currency,
		Sections: []Section{
			{
				Title: "Customer",
				Fields: []Field{
					{Label: "Name", Value: req.CustomerName},
					{Label: "Phone", Value: req.Phone},
					{Label: "GSTIN", Value: req.GSTIN},
				},
			},
		},
	}

	for _, item := range req.Items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}

		unitPrice := item.UnitPrice
		taxPercent := decimal.Zero
		if entry, ok := prices.Lookup(item.Name); ok {
			if unitPrice.IsZero() {
				unitPrice = entry.UnitPrice
			}
			taxPercent = entry.TaxPercent
		}

		taxable := unitPrice.Mul(decimal.NewFromFloat(qty))
		tax := taxable.Mul(taxPercent).Div(decimal.NewFromInt(100)).Round(2)

		amount := report.LineRevenue(report.RevenueInputs{
			Taxable:   taxable,
			Tax:       tax,
			Discount:  item.Discount,
			UnitPrice: unitPrice,
			Quantity:  qty,
		})

		doc.Lines = append(doc.Lines, LineItem{
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Tax:       tax,
			Amount:    amount,
		})
		doc.Total = doc.Total.Add(amount)
	}

	return doc
}

// Render writes the document as a self-contained printable HTML page.
func (d Document) Render(w io.Writer) error {
	if err := documentTemplate.Execute(w, d); err != nil {
		return fmt.Errorf("failed to render %s %s: %w", d.Kind, d.Number, err)
	}
	return nil
}
