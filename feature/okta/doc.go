// Package okta connects the reconciliation engine to an Okta organisation.
//
// # Components
//
//   - Client: directory.Client backed by the Okta management SDK. SDK models are
//     copied into directory.Records inside the client.
//   - Adapters: one reconcile.Adapter per kind, holding the Terraform type
//     mapping of the okta/okta provider.
//   - Mapping: sign-on mode table and the built-in application denylist.
//
// # Resource types
//
//   - users:        okta_user
//   - groups:       okta_group (OKTA_GROUP only)
//   - applications: okta_app_<mode> plus okta_app_group_assignments
package okta
