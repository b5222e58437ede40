package reconcile

import (
	"fmt"
	"strings"
)

// Kind is one reconciled resource category.
type Kind string

const (
	// KindUsers covers directory users.
	KindUsers Kind = "users"
	// KindGroups covers directory groups.
	KindGroups Kind = "groups"
	// KindApplications covers applications and their group assignments.
	KindApplications Kind = "applications"
)

// AllKinds lists every kind in processing order.
var AllKinds = []Kind{KindUsers, KindGroups, KindApplications}

var kindAliases = map[string]Kind{
	"users":        KindUsers,
	"groups":       KindGroups,
	"applications": KindApplications,
	"apps":         KindApplications,
}

// ParseKinds parses a comma separated kind list. An empty list selects every
// kind. Duplicates are dropped, order is preserved.
func ParseKinds(raw string) ([]Kind, error) {
	if strings.TrimSpace(raw) == "" {
		return append([]Kind(nil), AllKinds...), nil
	}

	var (
		kinds   []Kind
		invalid []string
		seen    = make(map[Kind]struct{})
	)
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		kind, ok := kindAliases[name]
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}

	if len(invalid) > 0 {
		return nil, &ConfigurationError{
			Field:  "type",
			Reason: fmt.Sprintf("unsupported resource types: %s (supported: users, groups, applications)", strings.Join(invalid, ", ")),
		}
	}
	if len(kinds) == 0 {
		return append([]Kind(nil), AllKinds...), nil
	}
	return kinds, nil
}

// Key is the identity of a directive.
type Key struct {
	Type string
	ID   string
}

// Directive is one import statement: Terraform address plus provider id.
type Directive struct {
	// Type is the Terraform resource type (e.g. "okta_group").
	Type string `json:"type"`

	// ID is the provider id passed to the import block.
	ID string `json:"id"`

	// Name is the sanitized resource name.
	Name string `json:"name"`
}

// Key returns the identity of the directive.
func (d Directive) Key() Key {
	return Key{Type: d.Type, ID: d.ID}
}

// Address returns the Terraform address "type.name".
func (d Directive) Address() string {
	return d.Type + "." + d.Name
}

// Index answers whether a resource is already tracked.
type Index interface {
	Contains(resourceType, resourceID string) bool
}

// ImportPlan is the reconciliation outcome of one kind.
type ImportPlan struct {
	// Kind is the reconciled kind.
	Kind Kind `json:"kind"`

	// Directives holds the surviving directives in emission order.
	Directives []Directive `json:"directives"`

	// Warnings holds record-level diagnostics.
	Warnings []MappingWarning `json:"warnings"`

	// PageErr is set when a later page failed and the plan is partial.
	PageErr *FetchError `json:"-"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for an import plan.
type PlanSummary struct {
	// Fetched is the number of records received from the provider.
	Fetched int `json:"fetched"`

	// Pages is the number of pages received.
	Pages int `json:"pages"`

	// Truncated is true when pagination stopped early.
	Truncated bool `json:"truncated"`

	// Emitted counts directives in the plan.
	Emitted int `json:"emitted"`

	// AlreadyTracked counts candidates present in the state index.
	AlreadyTracked int `json:"already_tracked"`

	// Unmapped counts records skipped with a warning.
	Unmapped int `json:"unmapped"`

	// Excluded counts platform-owned records skipped silently.
	Excluded int `json:"excluded"`

	// Duplicates counts candidates dropped because their identity was already emitted.
	Duplicates int `json:"duplicates"`
}
