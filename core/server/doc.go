// Package server holds the configuration of the preview HTTP server.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting the import
// routes and the lifetime of cached previews.
package server
