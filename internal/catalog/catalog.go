package catalog

import (
	"slices"

	"github.com/vercheck-labs/vercheck/internal/software"
)

// Store is the persistence boundary for the catalog.
type Store interface {
	// List returns every entry in stored order. A missing or empty store
	// reads as an empty list.
	List() ([]software.Software, error)
	// Replace overwrites the stored entries with list.
	Replace(list []software.Software) error
}

// IndexOf returns the position of the entry called name, or -1.
func IndexOf(list []software.Software, name string) int {
	return slices.IndexFunc(list, func(s software.Software) bool {
		return s.Name == name
	})
}

// NameInUse reports whether an entry other than except is called name.
func NameInUse(list []software.Software, name, except string) bool {
	for _, s := range list {
		if s.Name == name && s.Name != except {
			return true
		}
	}
	return false
}

// Put returns a copy of list with sw stored at index, or appended when
// index is negative.
func Put(list []software.Software, index int, sw software.Software) []software.Software {
	out := slices.Clone(list)
	if index < 0 || index >= len(out) {
		return append(out, sw)
	}
	out[index] = sw
	return out
}

// Names returns the entry names in stored order.
func Names(list []software.Software) []string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}
