// Package catalog persists the list of tracked software entries.
//
// The on-disk form is a YAML document validated against an embedded JSON
// Schema on every load. Writes go to a temporary file that is renamed over
// the catalog, so a crash never leaves a half-written file behind.
package catalog
