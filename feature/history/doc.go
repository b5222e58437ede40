// Package history stores one row per reconciled kind in the import_runs table.
//
// Recording is optional: a nil database disables it and write failures are
// logged as warnings without failing the run.
package history
