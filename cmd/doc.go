// Package cmd holds the cobra commands of okta-import.
//
//   - generate <directory>: write import blocks for untracked resources.
//   - serve <directory>: HTTP preview of the import blocks.
//   - terraform [args]: run terraform with the subdirectory configuration consolidated.
//   - history <directory>: list recorded runs.
package cmd
