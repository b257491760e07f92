package api

import "time"

type TimePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

type Column struct {
	Header string `json:"header"`
	Key    string `json:"key"`
	Width  int    `json:"width"`
}

type PageMeta struct {
	Index      int `json:"index"`
	Size       int `json:"size"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
}

type ReportInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SortKeys    []string `json:"sort_keys"`
	FilterKeys  []string `json:"filter_keys"`
}

type ReportPage struct {
	Report  string           `json:"report"`
	Period  TimePeriod       `json:"period"`
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Summary map[string]any   `json:"summary"`
	Page    PageMeta         `json:"page"`
}

type ReportExport struct {
	Report  string         `json:"report"`
	Period  TimePeriod     `json:"period"`
	Columns []Column       `json:"columns"`
	Sheet   [][]any        `json:"sheet"`
	Summary map[string]any `json:"summary"`
}

type InvoiceItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice string  `json:"unit_price,omitempty"`
	Discount  string  `json:"discount,omitempty"`
}

type InvoiceRequest struct {
	Kind         string        `json:"kind"`
	Number       string        `json:"number"`
	CustomerName string        `json:"customer_name"`
	Phone        string        `json:"phone"`
	GSTIN        string        `json:"gstin"`
	Items        []InvoiceItem `json:"items"`
}

type Error struct {
	Error string `json:"error"`
}
