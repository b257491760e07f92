package ingest

import (
	"sort"
	"strings"
)

// Records locates the record array inside an arbitrarily shaped backend
// payload. Lookup order: the payload itself, payload[primaryKey], each alias
// in order, then any key whose lowercased name contains primaryKey as a
// substring. When a candidate key holds an object instead of an array the
// ladder re-runs one level down, so `{"data": {"stock_out": [...]}}` resolves
// too. A miss yields an empty slice, never an error.
func Records(payload any, primaryKey string, aliases ...string) []map[string]any {
	if arr, ok := payload.([]any); ok {
		return asRecords(arr)
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}

	var nested []map[string]any

	if arr, ok := obj[primaryKey].([]any); ok {
		return asRecords(arr)
	}
	if inner, ok := obj[primaryKey].(map[string]any); ok {
		nested = append(nested, inner)
	}

	for _, alias := range aliases {
		if arr, ok := obj[alias].([]any); ok {
			return asRecords(arr)
		}
		if inner, ok := obj[alias].(map[string]any); ok {
			nested = append(nested, inner)
		}
	}

	marker := strings.ToLower(primaryKey)
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !strings.Contains(strings.ToLower(key), marker) {
			continue
		}
		if arr, ok := obj[key].([]any); ok {
			return asRecords(arr)
		}
	}

	for _, inner := range nested {
		if records := Records(inner, primaryKey, aliases...); len(records) > 0 {
			return records
		}
	}

	return nil
}

// asRecords keeps only the object entries; scalar garbage in the array is
// dropped rather than failing the whole payload.
func asRecords(arr []any) []map[string]any {
	records := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}
