package state

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/five82/lifter/internal/catalog"
	"github.com/five82/lifter/internal/custom"
	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/favorites"
	"github.com/five82/lifter/internal/kv"
	"github.com/five82/lifter/internal/library"
	"github.com/five82/lifter/internal/plan"
)

// CatalogStatus tracks the one-time catalog load.
type CatalogStatus int

const (
	CatalogLoading CatalogStatus = iota
	CatalogReady
	CatalogFailed
)

func (s CatalogStatus) String() string {
	switch s {
	case CatalogReady:
		return "ready"
	case CatalogFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Refusal reasons reported in Outcome.Reason.
const (
	ReasonEmptyName      = "name is empty"
	ReasonLastTemplate   = "cannot delete the only plan"
	ReasonNotConfirmed   = "not confirmed"
	ReasonNoSuchTemplate = "no such plan"
	ReasonNoSuchDay      = "no such day"
	ReasonNoSuchExercise = "no such exercise"
	ReasonNoSuchSet      = "no such set"
	ReasonLastSet        = "an exercise keeps at least one set"
	ReasonUnknownField   = "unknown set field"
	ReasonNoSuchCustom   = "no such custom exercise"
)

// TemplateTab is the render data for one template tab.
type TemplateTab struct {
	ID   string
	Name string
}

// View is everything the UI needs to render the planner. It never shares
// memory with the session.
type View struct {
	Templates   []TemplateTab
	Template    int
	Day         int
	Plan        plan.DayPlan
	Filter      library.Filter
	Catalog     CatalogStatus
	CatalogSize int
	CatalogErr  error
	Customs     int
	Favorites   int
}

// DayName returns the selected weekday name.
func (v View) DayName() string {
	if v.Day < 0 || v.Day >= plan.DaysPerWeek {
		return ""
	}
	return plan.DayNames[v.Day]
}

// TemplateName returns the selected template name.
func (v View) TemplateName() string {
	if v.Template < 0 || v.Template >= len(v.Templates) {
		return ""
	}
	return v.Templates[v.Template].Name
}

// Outcome is returned by every command. Applied is false when the command
// was refused or addressed something that no longer exists; Reason then says
// why. View is the state after the command.
type Outcome struct {
	Applied bool
	Reason  string
	View    View
}

// Session is the explicit session state: the three stores, the catalog
// index, and the ephemeral template/day selection. Every command persists
// before it returns.
type Session struct {
	mu sync.RWMutex

	plans     *plan.Store
	customs   *custom.Store
	favorites *favorites.Set

	catalog       *catalog.Index
	catalogStatus CatalogStatus
	catalogErr    error

	template int
	day      int
	filter   library.Filter
}

// Open loads every store from kv and selects the first template and the
// default day for now.
func Open(store kv.Store, now time.Time) (*Session, error) {
	plans, err := plan.LoadOrInit(store)
	if err != nil {
		return nil, err
	}
	customs, err := custom.Load(store)
	if err != nil {
		return nil, err
	}
	favs, err := favorites.Load(store)
	if err != nil {
		return nil, err
	}
	return New(plans, customs, favs, now), nil
}

// New builds a session over already-loaded stores.
func New(plans *plan.Store, customs *custom.Store, favs *favorites.Set, now time.Time) *Session {
	return &Session{
		plans:     plans,
		customs:   customs,
		favorites: favs,
		catalog:   catalog.Empty(),
		day:       plan.DefaultDay(now),
		filter:    library.FilterAll,
	}
}

// View returns a render snapshot.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view()
}

// SetCatalog records the result of the catalog load. On failure the session
// keeps an empty index so custom exercises and favorites keep working.
func (s *Session) SetCatalog(idx *catalog.Index, err error) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || idx == nil {
		if err == nil {
			err = fmt.Errorf("catalog load returned no index")
		}
		log.WithError(err).Error("catalog load failed; continuing with custom exercises only")
		s.catalog = catalog.Empty()
		s.catalogStatus = CatalogFailed
		s.catalogErr = err
		return s.view()
	}
	log.WithField("exercises", idx.Len()).Info("catalog loaded")
	s.catalog = idx
	s.catalogStatus = CatalogReady
	s.catalogErr = nil
	return s.view()
}

// SetFilter restores a previously used library filter.
func (s *Session) SetFilter(f library.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = library.ParseFilter(string(f))
}

// SelectTemplate changes the current template. Selection is not persisted.
func (s *Session) SelectTemplate(index int) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.plans.Len() {
		return s.refuse(ReasonNoSuchTemplate)
	}
	s.template = index
	return s.applied()
}

// SelectDay changes the current weekday. Selection is not persisted.
func (s *Session) SelectDay(index int) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= plan.DaysPerWeek {
		return s.refuse(ReasonNoSuchDay)
	}
	s.day = index
	return s.applied()
}

// CreateTemplate appends a template and selects it.
func (s *Session) CreateTemplate(name string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok, err := s.plans.CreateTemplate(name)
	if !ok {
		return s.refuse(ReasonEmptyName), nil
	}
	s.template = index
	return s.result(plan.Key, err)
}

// RenameTemplate renames the template at index.
func (s *Session) RenameTemplate(index int, name string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.plans.Len() {
		return s.refuse(ReasonNoSuchTemplate), nil
	}
	ok, err := s.plans.RenameTemplate(index, name)
	if !ok {
		return s.refuse(ReasonEmptyName), nil
	}
	return s.result(plan.Key, err)
}

// DeleteTemplate removes the template at index once confirmed and resets the
// selection to the first template.
func (s *Session) DeleteTemplate(index int, confirmed bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case index < 0 || index >= s.plans.Len():
		return s.refuse(ReasonNoSuchTemplate), nil
	case s.plans.Len() <= 1:
		return s.refuse(ReasonLastTemplate), nil
	case !confirmed:
		return s.refuse(ReasonNotConfirmed), nil
	}
	ok, err := s.plans.DeleteTemplate(index)
	if !ok {
		return s.refuse(ReasonLastTemplate), nil
	}
	s.template = 0
	return s.result(plan.Key, err)
}

// SetRest sets the rest flag of the current day.
func (s *Session) SetRest(rest bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.plans.SetRest(s.template, s.day, rest)
	if !ok {
		return s.refuse(ReasonNoSuchDay), nil
	}
	return s.result(plan.Key, err)
}

// AddExercise appends ref to the current day.
func (s *Session) AddExercise(ref exercise.Ref) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.plans.AddExercise(s.template, s.day, ref)
	if !ok {
		return s.refuse(ReasonNoSuchDay), nil
	}
	return s.result(plan.Key, err)
}

// RemoveExercise removes an exercise from the current day once confirmed.
func (s *Session) RemoveExercise(exIndex int, confirmed bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !confirmed {
		return s.refuse(ReasonNotConfirmed), nil
	}
	ok, err := s.plans.RemoveExercise(s.template, s.day, exIndex)
	if !ok {
		return s.refuse(ReasonNoSuchExercise), nil
	}
	return s.result(plan.Key, err)
}

// AddSet copies the last set of an exercise on the current day.
func (s *Session) AddSet(exIndex int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.plans.AddSet(s.template, s.day, exIndex)
	if !ok {
		return s.refuse(ReasonNoSuchExercise), nil
	}
	return s.result(plan.Key, err)
}

// RemoveSet drops the last set of an exercise once confirmed. The only
// remaining set is never removed.
func (s *Session) RemoveSet(exIndex int, confirmed bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex, found := s.currentExercise(exIndex)
	switch {
	case !found:
		return s.refuse(ReasonNoSuchExercise), nil
	case len(ex.SetsData) <= 1:
		return s.refuse(ReasonLastSet), nil
	case !confirmed:
		return s.refuse(ReasonNotConfirmed), nil
	}
	ok, err := s.plans.RemoveSet(s.template, s.day, exIndex)
	if !ok {
		return s.refuse(ReasonLastSet), nil
	}
	return s.result(plan.Key, err)
}

// UpdateSetField writes weight or reps of one set on the current day.
func (s *Session) UpdateSetField(exIndex, setIndex int, field plan.SetField, value float64) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if field != plan.FieldWeight && field != plan.FieldReps {
		return s.refuse(ReasonUnknownField), nil
	}
	ex, found := s.currentExercise(exIndex)
	if !found {
		return s.refuse(ReasonNoSuchExercise), nil
	}
	if setIndex < 0 || setIndex >= len(ex.SetsData) {
		return s.refuse(ReasonNoSuchSet), nil
	}
	ok, err := s.plans.UpdateSetField(s.template, s.day, exIndex, setIndex, field, value)
	if !ok {
		return s.refuse(ReasonNoSuchSet), nil
	}
	return s.result(plan.Key, err)
}

// QueryLibrary runs a library query and remembers filter as the current one.
func (s *Session) QueryLibrary(filter library.Filter, text string) []library.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = library.ParseFilter(string(filter))
	return library.Query(s.filter, text, library.Sources{
		Catalog:   s.catalog,
		Custom:    s.customs,
		Favorites: s.favorites,
	})
}

// ToggleFavorite flips membership of id and returns the new state.
func (s *Session) ToggleFavorite(id exercise.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fav, err := s.favorites.Toggle(id)
	if err != nil {
		log.WithError(err).WithField("key", favorites.Key).Error("persist failed")
	}
	return fav, err
}

// CreateCustomExercise adds a user-authored exercise and returns it so the
// caller can add it to the current day.
func (s *Session) CreateCustomExercise(name, bodyPart string) (exercise.Ref, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok, err := s.customs.Create(name, bodyPart)
	if !ok {
		return exercise.Ref{}, s.refuse(ReasonEmptyName), nil
	}
	out, err := s.result(custom.Key, err)
	return ref, out, err
}

// DeleteCustomExercise removes a custom exercise once confirmed and drops it
// from the favorites. Plans that already use it keep their copy.
func (s *Session) DeleteCustomExercise(id exercise.ID, confirmed bool) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.customs.Find(id); !found {
		return s.refuse(ReasonNoSuchCustom), nil
	}
	if !confirmed {
		return s.refuse(ReasonNotConfirmed), nil
	}
	_, delErr := s.customs.Delete(id)
	_, favErr := s.favorites.Remove(id)
	return s.result(custom.Key, multierr.Combine(delErr, favErr))
}

// CustomExercises returns the custom exercises in creation order.
func (s *Session) CustomExercises() []exercise.Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customs.All()
}

// Favorites returns the favorited ids.
func (s *Session) Favorites() []exercise.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.IDs()
}

// Templates returns a deep copy of every template.
func (s *Session) Templates() []plan.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plans.Templates()
}

func (s *Session) currentExercise(exIndex int) (plan.PlannedExercise, bool) {
	day, ok := s.plans.Day(s.template, s.day)
	if !ok || exIndex < 0 || exIndex >= len(day.Exercises) {
		return plan.PlannedExercise{}, false
	}
	return day.Exercises[exIndex], true
}

func (s *Session) view() View {
	templates := s.plans.Templates()
	tabs := make([]TemplateTab, len(templates))
	for i, t := range templates {
		tabs[i] = TemplateTab{ID: t.ID, Name: t.Name}
	}
	day, _ := s.plans.Day(s.template, s.day)
	return View{
		Templates:   tabs,
		Template:    s.template,
		Day:         s.day,
		Plan:        day,
		Filter:      s.filter,
		Catalog:     s.catalogStatus,
		CatalogSize: s.catalog.Len(),
		CatalogErr:  s.catalogErr,
		Customs:     s.customs.Len(),
		Favorites:   s.favorites.Len(),
	}
}

func (s *Session) applied() Outcome {
	return Outcome{Applied: true, View: s.view()}
}

func (s *Session) refuse(reason string) Outcome {
	return Outcome{Reason: reason, View: s.view()}
}

// result wraps an applied mutation. A persistence error leaves the in-memory
// change in place and is returned to the caller.
func (s *Session) result(key string, err error) (Outcome, error) {
	if err != nil {
		log.WithError(err).WithField("key", key).Error("persist failed")
	}
	return s.applied(), err
}
