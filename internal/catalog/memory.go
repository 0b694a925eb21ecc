package catalog

import (
	"slices"
	"sync"

	"github.com/vercheck-labs/vercheck/internal/software"
)

// MemoryStore keeps the catalog in memory.
type MemoryStore struct {
	mu       sync.Mutex
	list     []software.Software
	replaced int
}

// NewMemoryStore returns a store seeded with list.
func NewMemoryStore(list ...software.Software) *MemoryStore {
	return &MemoryStore{list: slices.Clone(list)}
}

func (m *MemoryStore) List() ([]software.Software, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.list), nil
}

func (m *MemoryStore) Replace(list []software.Software) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = slices.Clone(list)
	m.replaced++
	return nil
}

// Replaced reports how many times Replace has been called.
func (m *MemoryStore) Replaced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaced
}
