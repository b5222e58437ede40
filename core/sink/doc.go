// Package sink persists rendered import artifacts, one per kind.
//
// Writes have overwrite semantics (last write wins) and are atomic: a reader
// never observes a half written artifact. FileSink writes
// <dir>/<kind>/<file name> through a temp file and rename; ObjectSink uploads
// <prefix>/<environment>/<kind>/<file name> to an S3 compatible bucket, where a
// single PUT is already atomic.
package sink
