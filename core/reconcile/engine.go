package reconcile

import (
	"okta-import/core/directory"
	"okta-import/core/naming"
)

type emptyIndex struct{}

func (emptyIndex) Contains(string, string) bool { return false }

// Reconcile maps, sanitizes and filters records into an import plan.
// It is pure: no I/O, no logging. Records are processed in the given order and
// each record emits its primary directive before its secondary ones.
func Reconcile(adapter Adapter, records []directory.Record, index Index) *ImportPlan {
	if index == nil {
		index = emptyIndex{}
	}

	kind := adapter.Kind()
	plan := &ImportPlan{
		Kind:       kind,
		Directives: []Directive{},
		Warnings:   []MappingWarning{},
	}
	plan.Summary.Fetched = len(records)

	seen := make(map[Key]struct{}, len(records))

	for _, rec := range records {
		// Platform-owned records are expected; skip without a warning.
		if adapter.Excluded(rec) {
			plan.Summary.Excluded++
			continue
		}

		if rec.ID == "" {
			plan.Summary.Unmapped++
			plan.Warnings = append(plan.Warnings, MappingWarning{
				Kind:    kind,
				Name:    rec.DisplayName,
				Subtype: rec.Subtype,
				Reason:  "record has no id",
			})
			continue
		}

		primary, ok := adapter.MapType(rec.Subtype)
		if !ok {
			plan.Summary.Unmapped++
			plan.Warnings = append(plan.Warnings, MappingWarning{
				Kind:     kind,
				RecordID: rec.ID,
				Name:     rec.DisplayName,
				Subtype:  rec.Subtype,
				Reason:   "unknown subtype " + quoteOrEmpty(rec.Subtype),
			})
			continue
		}

		name := naming.Sanitize(rec.DisplayName)
		types := append([]string{primary}, adapter.Secondary(primary)...)

		for _, resourceType := range types {
			d := Directive{Type: resourceType, ID: rec.ID, Name: name}

			if index.Contains(d.Type, d.ID) {
				plan.Summary.AlreadyTracked++
				continue
			}
			if _, dup := seen[d.Key()]; dup {
				plan.Summary.Duplicates++
				continue
			}

			seen[d.Key()] = struct{}{}
			plan.Directives = append(plan.Directives, d)
		}
	}

	plan.Summary.Emitted = len(plan.Directives)
	return plan
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return `"` + s + `"`
}
