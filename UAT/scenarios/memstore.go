package scenarios

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissing is returned by MemStore.Get for keys it does not hold.
var ErrMissing = errors.New("missing key")

// MemStore is an in-memory Store.
type MemStore struct {
	values map[string]string
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissing, key)
	}

	return value, nil
}

// Keys returns the stored keys that start with any of prefixes, sorted. No prefixes
// matches every key.
func (m *MemStore) Keys(prefixes ...string) []string {
	keys := make([]string, 0, len(m.values))

	for key := range m.values {
		if len(prefixes) == 0 || hasAnyPrefix(key, prefixes) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

// Put stores value under key.
func (m *MemStore) Put(_ context.Context, key, value string) error {
	m.values[key] = value

	return nil
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}
