package document

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
)

// Document is one plugin instance.
type Document struct {
	// Plugin is the plugin type name.
	Plugin string `json:"plugin"`

	// State is the plugin state. Always nil for stateless plugins.
	State any `json:"state,omitempty"`
}

// Equal reports whether two documents hold the same plugin and state.
func (d Document) Equal(other Document) bool {
	return d.Plugin == other.Plugin && reflect.DeepEqual(d.State, other.State)
}

// Store maps document ids to documents.
type Store map[string]Document

// NewID returns a fresh random document id.
func NewID() string {
	return uuid.New().String()
}

// Get returns the document stored under id.
func (s Store) Get(id string) (Document, bool) {
	d, ok := s[id]
	return d, ok
}

// Has returns true if id is present.
func (s Store) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of documents.
func (s Store) Len() int {
	return len(s)
}

// IDs returns the document ids in sorted order.
func (s Store) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a shallow copy of the store. Plugin state values are
// shared; they are treated as immutable.
func (s Store) Clone() Store {
	out := make(Store, len(s)+1)
	for id, d := range s {
		out[id] = d
	}
	return out
}

// Equal reports whether two stores hold the same documents.
func (s Store) Equal(other Store) bool {
	if len(s) != len(other) {
		return false
	}
	for id, d := range s {
		o, ok := other[id]
		if !ok || !d.Equal(o) {
			return false
		}
	}
	return true
}
