// Package favorites persists the set of starred exercise ids.
package favorites

import (
	"fmt"

	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/kv"
)

// Key is the record name in the key-value store.
const Key = "exercise_favorites"

type document struct {
	IDs []string `toml:"ids"`
}

// Set is an insertion-ordered set of normalized exercise ids. A catalog id
// and a custom id with the same normalized form are the same member.
type Set struct {
	kv      kv.Store
	ids     []exercise.ID
	members map[exercise.ID]struct{}
}

// Load reads the persisted set; a missing record is an empty set.
func Load(store kv.Store) (*Set, error) {
	s := &Set{kv: store, members: make(map[exercise.ID]struct{})}
	var doc document
	if _, err := store.Get(Key, &doc); err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	for _, raw := range doc.IDs {
		id := exercise.NewID(raw)
		if id == "" {
			continue
		}
		if _, dup := s.members[id]; dup {
			continue
		}
		s.members[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s, nil
}

// Contains reports whether id is a favorite.
func (s *Set) Contains(id exercise.ID) bool {
	_, ok := s.members[exercise.NewID(string(id))]
	return ok
}

// Toggle flips membership of id, persists, and returns the new state.
func (s *Set) Toggle(id exercise.ID) (bool, error) {
	id = exercise.NewID(string(id))
	if id == "" {
		return false, nil
	}
	if _, ok := s.members[id]; ok {
		s.drop(id)
		return false, s.save()
	}
	s.members[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true, s.save()
}

// Remove drops id if present.
func (s *Set) Remove(id exercise.ID) (bool, error) {
	id = exercise.NewID(string(id))
	if _, ok := s.members[id]; !ok {
		return false, nil
	}
	s.drop(id)
	return true, s.save()
}

// IDs returns the members in the order they were added.
func (s *Set) IDs() []exercise.ID {
	return append([]exercise.ID(nil), s.ids...)
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	return len(s.ids)
}

func (s *Set) drop(id exercise.ID) {
	delete(s.members, id)
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

func (s *Set) save() error {
	doc := document{IDs: make([]string, 0, len(s.ids))}
	for _, id := range s.ids {
		doc.IDs = append(doc.IDs, id.String())
	}
	if err := s.kv.Put(Key, doc); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
