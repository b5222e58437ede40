// Package config loads the application configuration.
//
// Values come from environment variables, optionally loaded from a .env file,
// mapped onto nested keys (OKTA_ORG_NAME -> okta.org_name). Defaults are
// declared with `default` struct tags on each section.
//
// # Sections
//
//   - okta: organisation, credentials fallback, scopes, paging and retries.
//   - import: sort key, credentials file, history.
//   - sink: file or s3 output.
//   - terraform: binary, state export, snapshot file.
//   - server, storage, log, database.
package config
