package ingest

// FieldTable is the per-record-type alias table: canonical field name to the
// ordered list of raw keys the backend has been seen using for it. Kept as
// pure data so each report's table can be reviewed and tested on its own.
type FieldTable map[string][]string

// Lookup returns the first candidate key present on the raw record with a
// non-nil, non-empty value. Candidates are checked case-sensitively in table
// order.
func (t FieldTable) Lookup(raw map[string]any, field string) (any, bool) {
	for _, key := range t[field] {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		if s, isStr := value.(string); isStr && s == "" {
			continue
		}
		return value, true
	}
	return nil, false
}
