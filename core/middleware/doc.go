// Package middleware groups the HTTP middleware of the preview server.
//
// # Components
//
//   - auth: API key validation (X-API-Key header) protecting the import routes.
//   - rayid: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the fiber locals and the X-Ray-ID response header.
package middleware
