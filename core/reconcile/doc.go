// Package reconcile turns directory listings into Terraform import directives.
//
// For every resource kind the engine fetches all records, maps each record to a
// Terraform resource type, sanitizes its display name and drops everything the
// state index already tracks. What survives is an ImportPlan: an ordered,
// deduplicated list of directives ready for rendering.
//
// # Architecture
//
// 1. Adapter: kind-specific knowledge (how to list, how to map subtypes, which
//    records are platform owned, which derived resources a record implies).
//
// 2. Engine: Reconcile is pure; Run adds the paginated fetch, optional sorting
//    and logging around it.
//
// 3. Cache: TTL cache with stampede protection used by the preview API.
//
// # Guarantees
//
//   - No two directives of a plan share (type, id).
//   - No directive is emitted for a (type, id) present in the index.
//   - A record that cannot be mapped is skipped with a MappingWarning; it never
//     aborts the batch.
//   - A first page failure fails the kind with a FetchError; a later page
//     failure truncates the plan but still returns it.
//
// # Usage Example
//
//	plan, err := reconcile.Run(ctx, okta.GroupsAdapter{Filter: filter}, client, index, reconcile.Options{Logger: l})
//	if err != nil {
//	    return err
//	}
//	body := importblock.Render(plan.Directives)
package reconcile
