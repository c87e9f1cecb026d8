package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/kv"
)

// Key is the record name in the key-value store.
const Key = "workout_templates"

const (
	defaultTemplateID   = "plan_default"
	defaultTemplateName = "Default Plan"
)

type document struct {
	Templates []Template `toml:"templates"`
}

// Store owns the template collection. The collection is never empty, and
// every mutation writes the whole collection back before returning.
//
// Mutating methods report whether they changed anything; refusals and
// stale indices are reported as false with a nil error.
type Store struct {
	kv        kv.Store
	templates []Template
	newID     func() string
}

// LoadOrInit reads the persisted collection. When nothing usable is stored it
// creates and persists a single "Default Plan".
func LoadOrInit(store kv.Store) (*Store, error) {
	s := &Store{kv: store, newID: newTemplateID}

	var doc document
	found, err := store.Get(Key, &doc)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	if !found || len(doc.Templates) == 0 {
		s.templates = []Template{{
			ID:       defaultTemplateID,
			Name:     defaultTemplateName,
			Active:   true,
			Schedule: newSchedule(),
		}}
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	repaired := false
	for i := range doc.Templates {
		if doc.Templates[i].repair() {
			repaired = true
		}
	}
	s.templates = doc.Templates
	if repaired {
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetIDGenerator overrides how new template ids are produced.
func (s *Store) SetIDGenerator(gen func() string) {
	if gen != nil {
		s.newID = gen
	}
}

// Len returns the number of templates.
func (s *Store) Len() int {
	return len(s.templates)
}

// Templates returns a deep copy of the collection.
func (s *Store) Templates() []Template {
	out := make([]Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out
}

// Template returns a deep copy of the template at index.
func (s *Store) Template(index int) (Template, bool) {
	if !s.validTemplate(index) {
		return Template{}, false
	}
	return s.templates[index].Clone(), true
}

// Day returns a deep copy of one day of one template.
func (s *Store) Day(template, day int) (DayPlan, bool) {
	d := s.day(template, day)
	if d == nil {
		return DayPlan{}, false
	}
	return d.Clone(), true
}

// CreateTemplate appends a template with an empty schedule and returns its
// index. Blank names are refused.
func (s *Store) CreateTemplate(name string) (int, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, false, nil
	}
	s.templates = append(s.templates, Template{
		ID:       s.newID(),
		Name:     name,
		Schedule: newSchedule(),
	})
	return len(s.templates) - 1, true, s.save()
}

// RenameTemplate renames the template at index. Blank names are refused.
func (s *Store) RenameTemplate(index int, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || !s.validTemplate(index) {
		return false, nil
	}
	s.templates[index].Name = name
	return true, s.save()
}

// DeleteTemplate removes the template at index. It refuses to remove the
// last remaining template.
func (s *Store) DeleteTemplate(index int) (bool, error) {
	if len(s.templates) <= 1 || !s.validTemplate(index) {
		return false, nil
	}
	s.templates = append(s.templates[:index], s.templates[index+1:]...)
	return true, s.save()
}

// SetRest sets the rest flag of a day without touching its exercises.
func (s *Store) SetRest(template, day int, rest bool) (bool, error) {
	d := s.day(template, day)
	if d == nil {
		return false, nil
	}
	d.IsRest = rest
	return true, s.save()
}

// AddExercise appends ref to a day with DefaultSetCount empty sets and
// returns the new exercise index. The same exercise may be added repeatedly.
func (s *Store) AddExercise(template, day int, ref exercise.Ref) (int, bool, error) {
	d := s.day(template, day)
	if d == nil {
		return -1, false, nil
	}
	d.Exercises = append(d.Exercises, newPlannedExercise(ref))
	return len(d.Exercises) - 1, true, s.save()
}

// RemoveExercise deletes the exercise at exIndex.
func (s *Store) RemoveExercise(template, day, exIndex int) (bool, error) {
	d := s.day(template, day)
	if d == nil || exIndex < 0 || exIndex >= len(d.Exercises) {
		return false, nil
	}
	d.Exercises = append(d.Exercises[:exIndex], d.Exercises[exIndex+1:]...)
	return true, s.save()
}

// AddSet appends a copy of the exercise's last set.
func (s *Store) AddSet(template, day, exIndex int) (bool, error) {
	ex := s.exercise(template, day, exIndex)
	if ex == nil {
		return false, nil
	}
	next := SetEntry{}
	if n := len(ex.SetsData); n > 0 {
		next = ex.SetsData[n-1]
	}
	ex.SetsData = append(ex.SetsData, next)
	return true, s.save()
}

// RemoveSet drops the exercise's last set, but never its only one.
func (s *Store) RemoveSet(template, day, exIndex int) (bool, error) {
	ex := s.exercise(template, day, exIndex)
	if ex == nil || len(ex.SetsData) <= 1 {
		return false, nil
	}
	ex.SetsData = ex.SetsData[:len(ex.SetsData)-1]
	return true, s.save()
}

// UpdateSetField writes one column of a set. Negative or non-finite values
// are stored as 0; reps are truncated to whole numbers.
func (s *Store) UpdateSetField(template, day, exIndex, setIndex int, field SetField, value float64) (bool, error) {
	ex := s.exercise(template, day, exIndex)
	if ex == nil || setIndex < 0 || setIndex >= len(ex.SetsData) {
		return false, nil
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	set := &ex.SetsData[setIndex]
	switch field {
	case FieldWeight:
		set.Weight = value
	case FieldReps:
		if value > math.MaxInt32 {
			value = math.MaxInt32
		}
		set.Reps = int(value)
	default:
		return false, nil
	}
	return true, s.save()
}

func (s *Store) validTemplate(index int) bool {
	return index >= 0 && index < len(s.templates)
}

func (s *Store) day(template, day int) *DayPlan {
	if !s.validTemplate(template) || day < 0 || day >= DaysPerWeek {
		return nil
	}
	return &s.templates[template].Schedule[day]
}

func (s *Store) exercise(template, day, exIndex int) *PlannedExercise {
	d := s.day(template, day)
	if d == nil || exIndex < 0 || exIndex >= len(d.Exercises) {
		return nil
	}
	return &d.Exercises[exIndex]
}

func (s *Store) save() error {
	if err := s.kv.Put(Key, document{Templates: s.templates}); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}
	return nil
}

// newTemplateID returns a time-ordered id. It falls back to a millisecond
// stamp if the uuid generator fails.
func newTemplateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "plan_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return "plan_" + id.String()
}
