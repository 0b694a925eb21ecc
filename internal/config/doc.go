// Package config manages user-level settings stored at ~/.vercheck/config.yaml.
// It provides functions to load, read, and write keys such as the catalog
// location and the HTTP timeout used when fetching latest versions.
package config
