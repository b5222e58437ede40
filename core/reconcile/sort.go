package reconcile

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"okta-import/core/directory"
)

// SortKey names a record field usable for ordering.
type SortKey string

const (
	SortByID           SortKey = "id"
	SortByName         SortKey = "name"
	SortByInternalName SortKey = "internal_name"
	SortBySubtype      SortKey = "subtype"
)

// KeyFunc extracts the comparable value of a record. Missing values are "".
type KeyFunc func(rec directory.Record) string

var commonSortKeys = map[SortKey]KeyFunc{
	SortByID:           func(rec directory.Record) string { return rec.ID },
	SortByName:         func(rec directory.Record) string { return rec.DisplayName },
	SortByInternalName: func(rec directory.Record) string { return rec.InternalName },
	SortBySubtype:      func(rec directory.Record) string { return rec.Subtype },
}

// AttributeKey returns a KeyFunc reading a record attribute.
func AttributeKey(name string) KeyFunc {
	return func(rec directory.Record) string {
		return rec.Attributes[name]
	}
}

// ResolveSortKey finds the extractor for key among the common keys and the
// adapter's own keys.
func ResolveSortKey(adapter Adapter, key SortKey) (KeyFunc, error) {
	if fn, ok := adapter.SortKeys()[key]; ok {
		return fn, nil
	}
	if fn, ok := commonSortKeys[key]; ok {
		return fn, nil
	}

	var supported []string
	for k := range commonSortKeys {
		supported = append(supported, string(k))
	}
	for k := range adapter.SortKeys() {
		supported = append(supported, string(k))
	}
	slices.Sort(supported)

	return nil, &ConfigurationError{
		Field:  "import.sort_by",
		Reason: fmt.Sprintf("unknown sort key %q for %s (supported: %s)", key, adapter.Kind(), strings.Join(supported, ", ")),
	}
}

// SortRecords orders records in place by the extracted value, compared case
// insensitively. Equal values keep their provider order.
func SortRecords(records []directory.Record, key KeyFunc) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(key(records[i])) < strings.ToLower(key(records[j]))
	})
}
