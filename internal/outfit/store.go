package outfit

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrInvalidName is returned when saving under a blank name.
var ErrInvalidName = errors.New("outfit name is blank")

// Store keeps named outfits in memory. Durable storage is handled by the
// persistence collaborator through Entries and Replace.
type Store struct {
	entries map[string]Outfit
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Outfit)}
}

// Save stores o under name, replacing any outfit already saved there.
func (s *Store) Save(name string, o Outfit) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	s.entries[name] = New(o.pieces)
	return nil
}

// Delete removes name and reports whether it existed.
func (s *Store) Delete(name string) bool {
	if _, ok := s.entries[name]; !ok {
		return false
	}
	delete(s.entries, name)
	return true
}

// Get returns the outfit saved under name.
func (s *Store) Get(name string) (Outfit, bool) {
	o, ok := s.entries[name]
	return o, ok
}

// List returns the saved names in ascending order.
func (s *Store) List() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

// Len returns the number of saved outfits.
func (s *Store) Len() int {
	return len(s.entries)
}

// Export renders o as share text.
func (s *Store) Export(o Outfit) string {
	return Export(o)
}

// ExportNamed renders the outfit saved under name as share text.
func (s *Store) ExportNamed(name string) (string, error) {
	o, ok := s.entries[name]
	if !ok {
		return "", fmt.Errorf("no outfit named %q", name)
	}
	return Export(o), nil
}

// Import parses share text. The store itself is not modified.
func (s *Store) Import(text string) (Outfit, error) {
	return Import(text)
}

// Entries returns a copy of every saved outfit keyed by name.
func (s *Store) Entries() map[string]Outfit {
	return maps.Clone(s.entries)
}

// Replace swaps the store contents for entries. Blank names are skipped.
func (s *Store) Replace(entries map[string]Outfit) {
	s.entries = make(map[string]Outfit, len(entries))
	for name, o := range entries {
		if strings.TrimSpace(name) != "" {
			s.entries[name] = New(o.pieces)
		}
	}
}
