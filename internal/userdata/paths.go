package userdata

import (
	"os"
	"path/filepath"

	"github.com/vercheck-labs/vercheck/internal/branding"
	"github.com/vercheck-labs/vercheck/internal/config"
)

// File name constants for the userdata convention.
const (
	CatalogFile = "catalog.yaml"
	CacheFile   = "checks.json"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Root returns the vercheck home directory.
func Root() string {
	return config.Dir()
}

// CatalogPath returns the catalog file location. It checks the
// VERCHECK_CATALOG environment variable first, then the "catalog" config
// key, then falls back to ~/.vercheck/catalog.yaml.
func CatalogPath() string {
	if v := os.Getenv(branding.EnvVar("CATALOG")); v != "" {
		return v
	}
	if v := config.Get(config.KeyCatalog); v != "" {
		return v
	}
	return filepath.Join(Root(), CatalogFile)
}

// CachePath returns the path to the check results cache.
func CachePath() string {
	return filepath.Join(Root(), CacheFile)
}
