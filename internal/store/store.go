// Package store holds the items of one invocation in memory.
//
// A Store keeps items in insertion order and never sorts on its own.
// It does not enforce id uniqueness; Get returns the first exact match.
package store

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
)

type Store struct {
	items []model.Item
}

func New() *Store { return &Store{} }

// FromItems builds a store holding a copy of items, in order.
func FromItems(items []model.Item) *Store {
	return &Store{items: slices.Clone(items)}
}

// Insert appends it.
func (s *Store) Insert(it model.Item) { s.items = append(s.items, it) }

func (s *Store) Len() int { return len(s.items) }

// Items returns a copy of the collection in store order.
func (s *Store) Items() []model.Item { return slices.Clone(s.items) }

// Get finds the item whose id is exactly id.
func (s *Store) Get(id string) (model.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// WithPrefix returns every item whose id starts with prefix, in store order.
func (s *Store) WithPrefix(prefix string) []model.Item {
	return s.Filter(func(it model.Item) bool {
		return strings.HasPrefix(it.ID, prefix)
	})
}

// Filter returns the items keep accepts, in store order.
func (s *Store) Filter(keep func(model.Item) bool) []model.Item {
	var out []model.Item
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Replace overwrites the first item with the same id.
func (s *Store) Replace(it model.Item) bool {
	for i := range s.items {
		if s.items[i].ID == it.ID {
			s.items[i] = it
			return true
		}
	}
	return false
}

// Delete removes the first item with the given id.
func (s *Store) Delete(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = slices.Delete(s.items, i, i+1)
			return true
		}
	}
	return false
}
