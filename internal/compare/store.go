// Package compare implements the property comparison list: a small bounded
// set of property IDs a visitor has picked for side-by-side comparison,
// persisted locally between sessions.
package compare

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultMaxItems is how many properties fit in a comparison at once.
const DefaultMaxItems = 4

type state struct {
	PropertyIDs []string `json:"property_ids"`
}

// Store is a bounded comparison list with membership checks. Adding a
// duplicate or adding beyond capacity is a silent no-op. Safe for
// concurrent use; every mutation is persisted to the backing file.
type Store struct {
	mu   sync.Mutex
	path string
	max  int
	ids  []string
}

// NewStore opens (or creates) a comparison store backed by the given file.
// maxItems <= 0 selects DefaultMaxItems.
func NewStore(path string, maxItems int) (*Store, error) {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	s := &Store{path: path, max: maxItems}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read comparison store: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse comparison store: %w", err)
	}
	if len(st.PropertyIDs) > maxItems {
		st.PropertyIDs = st.PropertyIDs[:maxItems]
	}
	s.ids = st.PropertyIDs
	return s, nil
}

// DefaultPath returns the comparison store location under the user config
// directory (~/.config/estately/compare.json, honoring XDG_CONFIG_HOME).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "estately", "compare.json"), nil
}

// Add puts a property on the comparison list. Returns false without error
// when the ID is empty, already present, or the list is full.
func (s *Store) Add(id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) >= s.max || s.containsLocked(id) {
		return false, nil
	}
	s.ids = append(s.ids, id)
	if err := s.saveLocked(); err != nil {
		s.ids = s.ids[:len(s.ids)-1]
		return false, err
	}
	return true, nil
}

// Remove takes a property off the list. Returns false when it was absent.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			if err := s.saveLocked(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Contains reports membership.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(id)
}

// IDs returns a copy of the current comparison list in insertion order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of properties on the list.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Full reports whether the list is at capacity.
func (s *Store) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids) >= s.max
}

// Clear empties the list.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	return s.saveLocked()
}

func (s *Store) containsLocked(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	data, err := json.MarshalIndent(state{PropertyIDs: s.ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal comparison store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write comparison store: %w", err)
	}
	return nil
}
