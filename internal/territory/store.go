package territory

import (
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// storeEntry pairs a cached map with the file metadata used to decide
// whether it is still fresh.
type storeEntry struct {
	m       *Map
	path    string // empty for built-in maps
	modTime time.Time
}

// Store is a thread-safe cache of loaded territory maps. File-backed maps
// are revalidated by modification time on every Get; built-in maps never go
// stale. Concurrent loads of the same key are collapsed into one.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
	group   singleflight.Group
}

// NewStore creates an empty territory store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

// Get returns the map for nameOrPath, loading or reloading it as needed.
func (s *Store) Get(nameOrPath string) (*Map, error) {
	s.mu.RLock()
	e, ok := s.entries[nameOrPath]
	s.mu.RUnlock()

	if ok && fresh(e) {
		return e.m, nil
	}

	v, err, _ := s.group.Do(nameOrPath, func() (interface{}, error) {
		// Re-check inside the flight: another caller may have refreshed it.
		s.mu.RLock()
		e, ok := s.entries[nameOrPath]
		s.mu.RUnlock()
		if ok && fresh(e) {
			return e.m, nil
		}

		entry := &storeEntry{}
		if info, statErr := os.Stat(nameOrPath); statErr == nil {
			entry.path = nameOrPath
			entry.modTime = info.ModTime()
		}
		m, err := Load(nameOrPath)
		if err != nil {
			return nil, err
		}
		entry.m = m

		s.mu.Lock()
		s.entries[nameOrPath] = entry
		s.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Map), nil
}

// Invalidate drops a cached entry so the next Get reloads it.
func (s *Store) Invalidate(nameOrPath string) {
	s.mu.Lock()
	delete(s.entries, nameOrPath)
	s.mu.Unlock()
}

func fresh(e *storeEntry) bool {
	if e.path == "" {
		return true
	}
	info, err := os.Stat(e.path)
	if err != nil {
		return false
	}
	return info.ModTime().Equal(e.modTime)
}
