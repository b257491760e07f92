package export

import "github.com/de-tools/report-hub/pkg/models/domain"

// Sheet flattens an export dataset into a header row followed by one value
// row per record, in column-spec order. Excel/PDF writers consume this
// directly; cells missing from a row come through as empty strings so the
// grid stays rectangular.
func Sheet(columns []domain.Column, rows []domain.Row) [][]any {
	out := make([][]any, 0, len(rows)+1)

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	out = append(out, header)

	for _, row := range rows {
		cells := make([]any, len(columns))
		for i, col := range columns {
			if value, ok := row[col.Key]; ok {
				cells[i] = value
			} else {
				cells[i] = ""
			}
		}
		out = append(out, cells)
	}
	return out
}
