// Package custom persists the exercises a user authors alongside the catalog.
package custom

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/kv"
)

// Key is the record name in the key-value store.
const Key = "custom_exercises"

const (
	idPrefix        = "custom_"
	defaultTarget   = "custom"
	defaultBodyPart = "custom"
)

type document struct {
	Exercises []exercise.Ref `toml:"exercises"`
}

// Store owns the custom exercise collection. Every mutation writes the whole
// collection back before returning.
type Store struct {
	kv        kv.Store
	exercises []exercise.Ref
	now       func() time.Time
}

// Load reads the persisted collection; a missing record is an empty list.
func Load(store kv.Store) (*Store, error) {
	s := &Store{kv: store, now: time.Now}
	var doc document
	if _, err := store.Get(Key, &doc); err != nil {
		return nil, fmt.Errorf("load custom exercises: %w", err)
	}
	for _, ref := range doc.Exercises {
		ref.ID = exercise.NewID(string(ref.ID))
		ref.IsCustom = true
		s.exercises = append(s.exercises, ref)
	}
	return s, nil
}

// SetClock overrides the time source used for new ids.
func (s *Store) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// All returns the custom exercises in creation order.
func (s *Store) All() []exercise.Ref {
	return append([]exercise.Ref(nil), s.exercises...)
}

// Len returns the number of custom exercises.
func (s *Store) Len() int {
	return len(s.exercises)
}

// Find returns the custom exercise with the given id.
func (s *Store) Find(id exercise.ID) (exercise.Ref, bool) {
	id = exercise.NewID(string(id))
	for _, ref := range s.exercises {
		if ref.ID == id {
			return ref, true
		}
	}
	return exercise.Ref{}, false
}

// Create appends a new custom exercise. An empty name is refused and reported
// as not created. The raw body part becomes the lowercased target.
func (s *Store) Create(name, bodyPartRaw string) (exercise.Ref, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return exercise.Ref{}, false, nil
	}
	target := strings.ToLower(strings.TrimSpace(bodyPartRaw))
	if target == "" {
		target = defaultTarget
	}
	ref := exercise.Ref{
		ID:       s.nextID(),
		Name:     name,
		Target:   target,
		BodyPart: defaultBodyPart,
		IsCustom: true,
	}
	s.exercises = append(s.exercises, ref)
	return ref, true, s.save()
}

// Delete removes the custom exercise with id. Unknown ids are a no-op.
func (s *Store) Delete(id exercise.ID) (bool, error) {
	id = exercise.NewID(string(id))
	for i, ref := range s.exercises {
		if ref.ID != id {
			continue
		}
		s.exercises = append(s.exercises[:i], s.exercises[i+1:]...)
		return true, s.save()
	}
	return false, nil
}

// nextID is time based; two creations within the same millisecond get
// consecutive stamps.
func (s *Store) nextID() exercise.ID {
	stamp := s.now().UnixMilli()
	for {
		id := exercise.ID(idPrefix + strconv.FormatInt(stamp, 10))
		if _, taken := s.Find(id); !taken {
			return id
		}
		stamp++
	}
}

func (s *Store) save() error {
	doc := document{Exercises: s.exercises}
	if doc.Exercises == nil {
		doc.Exercises = []exercise.Ref{}
	}
	if err := s.kv.Put(Key, doc); err != nil {
		return fmt.Errorf("save custom exercises: %w", err)
	}
	return nil
}
