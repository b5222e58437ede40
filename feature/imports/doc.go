// Package imports implements the import generation feature.
//
// It runs the core/reconcile engine for every requested kind against one
// directory client and persists the rendered import blocks through a sink.
//
// # Components
//
//   - Service: fans the kinds out concurrently, writes artifacts and records history.
//   - Handler: exposes a read-only preview of the import blocks of one kind.
//   - Feature: registers the handler with the loader.
//
// # HTTP Endpoints
//
//   - GET /imports/:kind : Rendered import blocks for users, groups or applications.
//     `?format=json` returns the plan with warnings and counts instead.
package imports
