package ingest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts covers the formats the backend has been observed emitting.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// Resolver reads semantic fields off one raw record through a FieldTable.
// Every accessor degrades on bad input: zero value for amounts and counts,
// empty string for text, zero time for dates. Nothing here returns an error.
type Resolver struct {
	raw   map[string]any
	table FieldTable
}

func NewResolver(raw map[string]any, table FieldTable) Resolver {
	return Resolver{raw: raw, table: table}
}

func (r Resolver) String(field string) string {
	value, ok := r.table.Lookup(r.raw, field)
	if !ok {
		return ""
	}
	return stringify(value)
}

// Amount resolves a monetary field, degrading to zero on parse failure or a
// non-finite value.
func (r Resolver) Amount(field string) decimal.Decimal {
	f, ok := r.float(field)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (r Resolver) Float(field string) float64 {
	f, ok := r.float(field)
	if !ok {
		return 0
	}
	return f
}

func (r Resolver) Int(field string) int {
	f, ok := r.float(field)
	if !ok {
		return 0
	}
	return int(f)
}

// Time resolves a date field. The second return is false when no candidate
// key parses; callers exclude such records from aggregation.
func (r Resolver) Time(field string) (time.Time, bool) {
	value, ok := r.table.Lookup(r.raw, field)
	if !ok {
		return time.Time{}, false
	}

	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		// Epoch seconds show up on a couple of legacy endpoints.
		if f, ok := toFloat(value); ok && f > 0 {
			return time.Unix(int64(f), 0).UTC(), true
		}
		return time.Time{}, false
	}
}

// Percent resolves a tax/percentage field. When no single percentage key is
// present it is computed by summing the component rate fields (central,
// state, integrated, VAT) instead.
func (r Resolver) Percent(field string, components ...string) decimal.Decimal {
	if f, ok := r.float(field); ok {
		return decimal.NewFromFloat(f)
	}

	total := decimal.Zero
	found := false
	for _, component := range components {
		if f, ok := r.float(component); ok {
			total = total.Add(decimal.NewFromFloat(f))
			found = true
		}
	}
	if !found {
		return decimal.Zero
	}
	return total
}

func (r Resolver) float(field string) (float64, bool) {
	value, ok := r.table.Lookup(r.raw, field)
	if !ok {
		return 0, false
	}
	return toFloat(value)
}

func toFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
