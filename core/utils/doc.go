// Package utils provides common helpers shared by the importer packages.
// It includes loose type conversion for decoded JSON values and an atomic
// file writer used by every component that persists artifacts.
package utils
