// Package naming turns arbitrary display names into Terraform resource identifiers.
//
// Sanitize is total: every input produces a name matching ^[a-z][a-z0-9_]*$.
// Names are cosmetic labels; two different resources may sanitize to the same
// name, identity is always carried by the resource type and id.
package naming
