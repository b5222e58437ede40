// Package directory defines the identity-provider client consumed by the
// reconciliation engine.
//
// Provider SDK objects never leave the client implementation: every listing
// returns Records, plain copies holding the id, display name, subtype and
// internal name the engine needs.
//
// The client is a process scoped resource. Use acquires it, runs a function and
// always closes it, including when the function fails or the context is
// cancelled.
package directory
