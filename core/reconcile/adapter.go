package reconcile

import (
	"context"

	"okta-import/core/directory"
)

// Adapter defines the interface for kind-specific reconciliation logic.
// Each adapter implements how to list, map and filter the records of one kind
// (e.g., users, groups, applications).
type Adapter interface {
	// Kind returns the kind handled by this adapter.
	Kind() Kind

	// List issues the first listing request for this kind.
	List(ctx context.Context, client directory.Client) ([]directory.Record, directory.Cursor, error)

	// MapType maps a provider subtype to the primary Terraform resource type.
	// Unknown subtypes return ok=false.
	MapType(subtype string) (resourceType string, ok bool)

	// Secondary returns the derived resource types implied by a record of the
	// given primary type. They share the record id and name.
	Secondary(primaryType string) []string

	// Excluded reports platform-owned records that must never be imported.
	Excluded(rec directory.Record) bool

	// SortKeys returns the extra sort keys this kind supports, on top of the
	// common ones.
	SortKeys() map[SortKey]KeyFunc
}
