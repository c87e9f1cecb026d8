package state

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/lifter/internal/catalog"
	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/favorites"
	"github.com/five82/lifter/internal/kv"
	"github.com/five82/lifter/internal/library"
	"github.com/five82/lifter/internal/plan"
)

// 2024-01-03 was a Wednesday.
var wednesday = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

const testCatalog = `{
  "chest": [{"id": 1, "name": "barbell bench press", "target": "pectorals", "bodyPart": "chest", "equipment": "barbell"}],
  "upper legs": [{"id": 2, "name": "barbell full squat", "target": "glutes", "bodyPart": "upper legs", "equipment": "barbell"}],
  "lower legs": [{"id": 3, "name": "calf raise", "target": "calves", "bodyPart": "lower legs", "equipment": "body weight"}]
}`

func openSession(t *testing.T) (*Session, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s, err := Open(mem, wednesday)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	idx, err := catalog.ParseBytes([]byte(testCatalog))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	s.SetCatalog(idx, nil)
	return s, mem
}

func mustApply(t *testing.T) func(Outcome, error) Outcome {
	t.Helper()
	return func(out Outcome, err error) Outcome {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Applied {
			t.Fatalf("Applied = false (reason %q), want true", out.Reason)
		}
		return out
	}
}

func mustRefuse(t *testing.T, out Outcome, err error, reason string) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Applied {
		t.Fatalf("Applied = true, want refusal %q", reason)
	}
	if out.Reason != reason {
		t.Fatalf("Reason = %q, want %q", out.Reason, reason)
	}
}

func TestOpen_DefaultSelection(t *testing.T) {
	s, _ := openSession(t)
	v := s.View()

	if v.Template != 0 {
		t.Fatalf("Template = %d, want 0", v.Template)
	}
	if v.Day != 2 {
		t.Fatalf("Day = %d, want 2 (Wednesday)", v.Day)
	}
	if v.DayName() != "Wednesday" {
		t.Fatalf("DayName() = %q, want Wednesday", v.DayName())
	}
	if v.TemplateName() != "Default Plan" {
		t.Fatalf("TemplateName() = %q, want Default Plan", v.TemplateName())
	}
	if v.Catalog != CatalogReady || v.CatalogSize != 3 {
		t.Fatalf("catalog = %v/%d, want ready/3", v.Catalog, v.CatalogSize)
	}
}

func TestSelectDayAndTemplate(t *testing.T) {
	s, mem := openSession(t)
	writes := mem.Writes(plan.Key)

	out := s.SelectDay(6)
	if !out.Applied || out.View.Day != 6 {
		t.Fatalf("SelectDay(6) = %+v", out)
	}
	if out := s.SelectDay(7); out.Applied || out.Reason != ReasonNoSuchDay {
		t.Fatalf("SelectDay(7) = %+v, want refusal", out)
	}
	if out := s.SelectTemplate(1); out.Applied || out.Reason != ReasonNoSuchTemplate {
		t.Fatalf("SelectTemplate(1) = %+v, want refusal", out)
	}
	if got := mem.Writes(plan.Key); got != writes {
		t.Fatalf("selection persisted: writes = %d, want %d", got, writes)
	}
}

func TestCreateTemplate_SelectsNewTemplate(t *testing.T) {
	s, _ := openSession(t)

	out, err := s.CreateTemplate("")
	mustRefuse(t, out, err, ReasonEmptyName)
	if len(out.View.Templates) != 1 {
		t.Fatalf("templates = %d, want 1", len(out.View.Templates))
	}

	out = mustApply(t)(s.CreateTemplate("Strength"))
	if out.View.Template != 1 || out.View.TemplateName() != "Strength" {
		t.Fatalf("selection = %d %q, want 1 Strength", out.View.Template, out.View.TemplateName())
	}
}

func TestRenameTemplate(t *testing.T) {
	s, _ := openSession(t)

	out, err := s.RenameTemplate(0, "  ")
	mustRefuse(t, out, err, ReasonEmptyName)
	out, err = s.RenameTemplate(4, "x")
	mustRefuse(t, out, err, ReasonNoSuchTemplate)

	out = mustApply(t)(s.RenameTemplate(0, "Base"))
	if out.View.TemplateName() != "Base" {
		t.Fatalf("TemplateName() = %q, want Base", out.View.TemplateName())
	}
}

func TestDeleteTemplate(t *testing.T) {
	s, _ := openSession(t)

	out, err := s.DeleteTemplate(0, true)
	mustRefuse(t, out, err, ReasonLastTemplate)

	mustApply(t)(s.CreateTemplate("A"))
	mustApply(t)(s.CreateTemplate("B"))

	out, err = s.DeleteTemplate(2, false)
	mustRefuse(t, out, err, ReasonNotConfirmed)
	if len(out.View.Templates) != 3 {
		t.Fatalf("templates = %d, want 3", len(out.View.Templates))
	}

	out = mustApply(t)(s.DeleteTemplate(2, true))
	if out.View.Template != 0 {
		t.Fatalf("Template = %d, want 0 after delete", out.View.Template)
	}
	if len(out.View.Templates) != 2 {
		t.Fatalf("templates = %d, want 2", len(out.View.Templates))
	}
}

func TestDayCommands_AddressCurrentSelection(t *testing.T) {
	s, _ := openSession(t)
	s.SelectDay(0)

	out := mustApply(t)(s.AddExercise(exercise.Ref{ID: exercise.NewID(5), Name: "Bench Press"}))
	if len(out.View.Plan.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(out.View.Plan.Exercises))
	}
	if sets := out.View.Plan.Exercises[0].SetsData; len(sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(sets))
	}

	mustApply(t)(s.UpdateSetField(0, 2, plan.FieldWeight, 80))
	mustApply(t)(s.UpdateSetField(0, 2, plan.FieldReps, -4))
	out = mustApply(t)(s.AddSet(0))
	sets := out.View.Plan.Exercises[0].SetsData
	if len(sets) != 4 || sets[3] != (plan.SetEntry{Weight: 80}) {
		t.Fatalf("sets after AddSet = %+v", sets)
	}

	out, err := s.UpdateSetField(0, 9, plan.FieldReps, 1)
	mustRefuse(t, out, err, ReasonNoSuchSet)
	out, err = s.UpdateSetField(0, 0, plan.SetField("rpe"), 1)
	mustRefuse(t, out, err, ReasonUnknownField)

	// Other days are untouched.
	s.SelectDay(1)
	if v := s.View(); len(v.Plan.Exercises) != 0 {
		t.Fatalf("day 1 exercises = %d, want 0", len(v.Plan.Exercises))
	}
}

func TestRemoveSet_RequiresConfirmationAndKeepsOne(t *testing.T) {
	s, _ := openSession(t)
	mustApply(t)(s.AddExercise(exercise.Ref{ID: "1", Name: "Row"}))

	out, err := s.RemoveSet(0, false)
	mustRefuse(t, out, err, ReasonNotConfirmed)

	mustApply(t)(s.RemoveSet(0, true))
	mustApply(t)(s.RemoveSet(0, true))
	out, err = s.RemoveSet(0, true)
	mustRefuse(t, out, err, ReasonLastSet)
	if n := len(out.View.Plan.Exercises[0].SetsData); n != 1 {
		t.Fatalf("sets = %d, want 1", n)
	}
}

func TestRemoveExercise(t *testing.T) {
	s, _ := openSession(t)
	mustApply(t)(s.AddExercise(exercise.Ref{ID: "1", Name: "Row"}))

	out, err := s.RemoveExercise(0, false)
	mustRefuse(t, out, err, ReasonNotConfirmed)
	out, err = s.RemoveExercise(3, true)
	mustRefuse(t, out, err, ReasonNoSuchExercise)

	out = mustApply(t)(s.RemoveExercise(0, true))
	if len(out.View.Plan.Exercises) != 0 {
		t.Fatalf("exercises = %d, want 0", len(out.View.Plan.Exercises))
	}
}

func TestSetRest_PreservesExercises(t *testing.T) {
	s, _ := openSession(t)
	mustApply(t)(s.AddExercise(exercise.Ref{ID: "1", Name: "Row"}))

	out := mustApply(t)(s.SetRest(true))
	if !out.View.Plan.IsRest || len(out.View.Plan.Exercises) != 1 {
		t.Fatalf("plan = %+v, want rest with 1 exercise", out.View.Plan)
	}
	out = mustApply(t)(s.SetRest(false))
	if out.View.Plan.IsRest || len(out.View.Plan.Exercises) != 1 {
		t.Fatalf("plan = %+v, want active with 1 exercise", out.View.Plan)
	}
}

func TestQueryLibrary_LegsSquat(t *testing.T) {
	s, _ := openSession(t)
	if _, _, err := s.CreateCustomExercise("Goblet Squat", "legs"); err != nil {
		t.Fatalf("CreateCustomExercise: %v", err)
	}
	if _, _, err := s.CreateCustomExercise("Squat Jump", "cardio"); err != nil {
		t.Fatalf("CreateCustomExercise: %v", err)
	}

	got := s.QueryLibrary(library.Legs, "SQUAT")
	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	want := []string{"barbell full squat", "Goblet Squat"}
	if len(names) != len(want) {
		t.Fatalf("results = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("results = %v, want %v", names, want)
		}
	}
	if v := s.View(); v.Filter != library.Legs {
		t.Fatalf("Filter = %q, want legs", v.Filter)
	}
}

func TestToggleFavorite_NumericAndStringAgree(t *testing.T) {
	s, _ := openSession(t)

	fav, err := s.ToggleFavorite(exercise.NewID(1))
	if err != nil || !fav {
		t.Fatalf("ToggleFavorite = %v, %v; want true, nil", fav, err)
	}
	got := s.QueryLibrary(library.FilterFavorites, "")
	if len(got) != 1 || got[0].ID != exercise.ID("1") || !got[0].Favorite {
		t.Fatalf("favorites = %+v, want catalog id 1", got)
	}

	fav, err = s.ToggleFavorite(exercise.NewID("1"))
	if err != nil || fav {
		t.Fatalf("ToggleFavorite = %v, %v; want false, nil", fav, err)
	}
	if got := s.QueryLibrary(library.FilterFavorites, ""); len(got) != 0 {
		t.Fatalf("favorites = %+v, want none", got)
	}
}

func TestCustomExercise_CreateAndDelete(t *testing.T) {
	s, mem := openSession(t)

	_, out, err := s.CreateCustomExercise(" ", "legs")
	mustRefuse(t, out, err, ReasonEmptyName)

	ref, out, err := s.CreateCustomExercise("Sled Push", "Legs")
	mustApply(t)(out, err)
	if !ref.IsCustom || ref.Target != "legs" || ref.BodyPart != "custom" {
		t.Fatalf("ref = %+v", ref)
	}
	mustApply(t)(s.AddExercise(ref))
	if _, err := s.ToggleFavorite(ref.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	out, err = s.DeleteCustomExercise(ref.ID, false)
	mustRefuse(t, out, err, ReasonNotConfirmed)

	out = mustApply(t)(s.DeleteCustomExercise(ref.ID, true))
	if out.View.Customs != 0 || out.View.Favorites != 0 {
		t.Fatalf("customs/favorites = %d/%d, want 0/0", out.View.Customs, out.View.Favorites)
	}
	if len(out.View.Plan.Exercises) != 1 {
		t.Fatalf("planned copy removed; exercises = %d, want 1", len(out.View.Plan.Exercises))
	}

	reloaded, err := favorites.Load(mem)
	if err != nil {
		t.Fatalf("favorites.Load: %v", err)
	}
	if reloaded.Contains(ref.ID) {
		t.Fatalf("deleted custom exercise still favorited after reload")
	}

	out, err = s.DeleteCustomExercise(ref.ID, true)
	mustRefuse(t, out, err, ReasonNoSuchCustom)
}

func TestSetCatalog_FailureKeepsCustomUsable(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Open(mem, wednesday)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if v := s.View(); v.Catalog != CatalogLoading {
		t.Fatalf("Catalog = %v, want loading", v.Catalog)
	}

	v := s.SetCatalog(nil, errors.New("boom"))
	if v.Catalog != CatalogFailed || v.CatalogErr == nil || v.CatalogSize != 0 {
		t.Fatalf("view = %+v, want failed empty catalog", v)
	}

	if _, _, err := s.CreateCustomExercise("Band Pull Apart", "shoulders"); err != nil {
		t.Fatalf("CreateCustomExercise: %v", err)
	}
	if got := s.QueryLibrary(library.FilterAll, ""); len(got) != 1 {
		t.Fatalf("results = %d, want 1 custom", len(got))
	}
}

func TestView_IsIndependentCopy(t *testing.T) {
	s, _ := openSession(t)
	out := mustApply(t)(s.AddExercise(exercise.Ref{ID: "1", Name: "Row"}))

	out.View.Plan.Exercises[0].SetsData[0].Weight = 999
	out.View.Templates[0].Name = "mutated"

	v := s.View()
	if v.Plan.Exercises[0].SetsData[0].Weight != 0 {
		t.Fatalf("View shares set data with the session")
	}
	if v.TemplateName() != "Default Plan" {
		t.Fatalf("View shares template names with the session")
	}
}

type failingStore struct {
	*kv.Memory
	fail bool
}

func (f *failingStore) Put(key string, value any) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Put(key, value)
}

func TestPersistError_IsReturnedAndChangeKept(t *testing.T) {
	store := &failingStore{Memory: kv.NewMemory()}
	s, err := Open(store, wednesday)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.fail = true

	out, err := s.CreateTemplate("Unsaved")
	if err == nil {
		t.Fatalf("CreateTemplate error = nil, want disk full")
	}
	if !out.Applied || len(out.View.Templates) != 2 {
		t.Fatalf("out = %+v, want applied with 2 templates", out)
	}
}
