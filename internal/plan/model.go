package plan

import (
	"strconv"
	"strings"
	"time"

	"github.com/five82/lifter/internal/exercise"
)

// DaysPerWeek is the fixed schedule length. Index 0 is Monday.
const DaysPerWeek = 7

// DefaultSetCount is how many sets an exercise gets when it is added.
const DefaultSetCount = 3

// maxLegacySets bounds the set count read from old records. Larger counts
// fall back to DefaultSetCount.
const maxLegacySets = 100

// DayNames are the schedule labels, Monday first.
var DayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayLabels are the one-letter day selector labels.
var DayLabels = [DaysPerWeek]string{"M", "T", "W", "T", "F", "S", "S"}

// SetEntry is one weight x reps pair.
type SetEntry struct {
	Weight float64 `toml:"weight"`
	Reps   int     `toml:"reps"`
}

// PlannedExercise is one exercise placed into a day, with its own sets.
type PlannedExercise struct {
	ID       exercise.ID `toml:"id"`
	Name     string      `toml:"name"`
	SetsData []SetEntry  `toml:"setsData"`

	// Fields written by older versions before sets carried their own values.
	LegacySets       int    `toml:"sets,omitempty"`
	LegacyTargetReps string `toml:"targetReps,omitempty"`
}

// DayPlan is one weekday of a template. IsRest only gates display; the
// exercise list survives toggling rest on and off.
type DayPlan struct {
	IsRest    bool              `toml:"isRest"`
	Exercises []PlannedExercise `toml:"exercises"`
}

// Template is a named weekly schedule.
type Template struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	// Active is carried for compatibility with stored data; the current
	// template is chosen by the session, not by this flag.
	Active   bool      `toml:"active"`
	Schedule []DayPlan `toml:"schedule"`
}

// SetField names the editable columns of a set.
type SetField string

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
)

func newSchedule() []DayPlan {
	schedule := make([]DayPlan, DaysPerWeek)
	for i := range schedule {
		schedule[i] = DayPlan{Exercises: []PlannedExercise{}}
	}
	return schedule
}

func newPlannedExercise(ref exercise.Ref) PlannedExercise {
	sets := make([]SetEntry, DefaultSetCount)
	return PlannedExercise{ID: ref.ID, Name: ref.Name, SetsData: sets}
}

// DefaultDay maps now to a Monday-first day index: the Go weekday minus one,
// with Sunday wrapping to 6.
func DefaultDay(now time.Time) int {
	day := int(now.Weekday()) - 1
	if day < 0 {
		day = DaysPerWeek - 1
	}
	return day
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	out := t
	out.Schedule = make([]DayPlan, len(t.Schedule))
	for i, day := range t.Schedule {
		out.Schedule[i] = day.Clone()
	}
	return out
}

// Clone returns a deep copy of d.
func (d DayPlan) Clone() DayPlan {
	out := DayPlan{IsRest: d.IsRest, Exercises: make([]PlannedExercise, len(d.Exercises))}
	for i, ex := range d.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// Clone returns a deep copy of p.
func (p PlannedExercise) Clone() PlannedExercise {
	out := p
	out.SetsData = append([]SetEntry(nil), p.SetsData...)
	if out.SetsData == nil {
		out.SetsData = []SetEntry{}
	}
	return out
}

// repair brings a decoded template back within the invariants: exactly seven
// days, non-nil exercise lists, and at least one set per exercise. Legacy
// sets/targetReps pairs are expanded into set entries. It reports whether
// anything changed. An exercise saved without a set list gets
// DefaultSetCount sets, the legacy count when one is present.
func (t *Template) repair() bool {
	changed := false
	if len(t.Schedule) != DaysPerWeek {
		fixed := newSchedule()
		copy(fixed, t.Schedule)
		t.Schedule = fixed
		changed = true
	}
	for d := range t.Schedule {
		day := &t.Schedule[d]
		if day.Exercises == nil {
			day.Exercises = []PlannedExercise{}
		}
		for e := range day.Exercises {
			if day.Exercises[e].repair() {
				changed = true
			}
		}
	}
	return changed
}

func (p *PlannedExercise) repair() bool {
	changed := false
	if len(p.SetsData) == 0 {
		count := DefaultSetCount
		switch {
		case p.SetsData != nil:
			// An explicitly empty list only needs the one required set.
			count = 1
		case p.LegacySets > 0 && p.LegacySets <= maxLegacySets:
			count = p.LegacySets
		}
		reps := parseReps(p.LegacyTargetReps)
		p.SetsData = make([]SetEntry, count)
		for i := range p.SetsData {
			p.SetsData[i].Reps = reps
		}
		changed = true
	}
	if p.LegacySets != 0 || p.LegacyTargetReps != "" {
		p.LegacySets = 0
		p.LegacyTargetReps = ""
		changed = true
	}
	for i := range p.SetsData {
		if p.SetsData[i].Weight < 0 {
			p.SetsData[i].Weight = 0
			changed = true
		}
		if p.SetsData[i].Reps < 0 {
			p.SetsData[i].Reps = 0
			changed = true
		}
	}
	return changed
}

// parseReps reads a legacy target such as "10" or "8-12", keeping the
// leading number.
func parseReps(raw string) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
