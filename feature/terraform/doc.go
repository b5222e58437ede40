// Package terraform wraps the terraform binary for environment directories
// whose configuration is split across subdirectories.
//
// Before running terraform the wrapper concatenates every .tf file found in
// the subdirectories (e.g. groups/import.tf) into _consolidated.tf at the
// environment root, so terraform sees them as one module. The file is removed
// when terraform exits, whatever the outcome.
package terraform
