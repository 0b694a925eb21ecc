package cache

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/vercheck-labs/vercheck/internal/userdata"
)

// Check is the last known result for one entry. Error holds the failure
// text when resolution did not succeed.
type Check struct {
	Installed string    `json:"installed,omitempty"`
	Latest    string    `json:"latest,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Cache is the in-memory form of checks.json, keyed by entry name.
type Cache struct {
	path    string
	entries map[string]Check
}

// Load reads the cache at path. A missing file yields an empty cache.
func Load(path string) (*Cache, error) {
	c := &Cache{path: path, entries: map[string]Check{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading check cache: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing check cache: %w", err)
	}
	if c.entries == nil {
		c.entries = map[string]Check{}
	}
	return c, nil
}

// Get returns the entry for name.
func (c *Cache) Get(name string) (Check, bool) {
	check, ok := c.entries[name]
	return check, ok
}

// Put records a result for name.
func (c *Cache) Put(name string, check Check) {
	c.entries[name] = check
}

// Delete forgets name.
func (c *Cache) Delete(name string) {
	delete(c.entries, name)
}

// Rename moves the result stored under from to to. It is a no-op when
// nothing is stored under from.
func (c *Cache) Rename(from, to string) {
	if from == to {
		return
	}
	if check, ok := c.entries[from]; ok {
		delete(c.entries, from)
		c.entries[to] = check
	}
}

// Names returns the cached entry names, sorted.
func (c *Cache) Names() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// Save writes the cache back to its file.
func (c *Cache) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling check cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, userdata.FilePermNormal); err != nil {
		return fmt.Errorf("writing check cache: %w", err)
	}
	return nil
}
