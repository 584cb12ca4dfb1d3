package envpath

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrValueNotFound is returned by Store.ReadString when the named value
// does not exist in the backing store. Callers treat it as "no existing
// value", not as a failure.
var ErrValueNotFound = errors.New("envpath: value not found")

// Store is the persistent key-value capability the maintainer runs
// against. The production implementation is the Windows registry
// environment key; tests inject MemoryStore.
type Store interface {
	// ReadString returns the string value stored under name, or
	// ErrValueNotFound when no such value exists.
	ReadString(name string) (string, error)

	// WriteString stores value under name, creating it if needed.
	WriteString(name, value string) error
}

// MemoryStore is an in-memory Store for tests and dry runs. Value
// names are case-insensitive, matching registry semantics.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// ReadString implements Store.
func (s *MemoryStore) ReadString(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[strings.ToLower(name)]
	if !ok {
		return "", ErrValueNotFound
	}
	return v, nil
}

// WriteString implements Store.
func (s *MemoryStore) WriteString(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[strings.ToLower(name)] = value
	return nil
}

// Delete removes a value, so tests can model an absent PATH.
func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, strings.ToLower(name))
}

// Names returns the stored value names, sorted, for assertions.
func (s *MemoryStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
