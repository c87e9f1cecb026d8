package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lifter/internal/exercise"
	"github.com/five82/lifter/internal/library"
	"github.com/five82/lifter/internal/state"
)

// openLibrary switches to the library screen with a fresh query.
func (m Model) openLibrary() (tea.Model, tea.Cmd) {
	m.screen = ScreenLibrary
	m.search.SetValue("")
	m.lastSearch = ""
	m.libCursor = 0
	m.refreshResults()
	cmd := m.search.Focus()
	return m, cmd
}

func (m *Model) closeLibrary() {
	m.screen = ScreenPlanner
	m.search.Blur()
	m.savePrefs()
}

func (m *Model) refreshResults() {
	m.results = m.session.QueryLibrary(m.libFilter, m.search.Value())
	if m.libCursor >= len(m.results) {
		m.libCursor = len(m.results) - 1
	}
	if m.libCursor < 0 {
		m.libCursor = 0
	}
}

func (m Model) selected() (library.Result, bool) {
	if m.libCursor < 0 || m.libCursor >= len(m.results) {
		return library.Result{}, false
	}
	return m.results[m.libCursor], true
}

// handleLibraryKey processes keyboard input for the library screen. Plain
// keys go to the search box.
func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeLibrary()
		return m, nil

	case key.Matches(msg, m.keys.NextFilter):
		m.libFilter = m.libFilter.Next()
		m.libCursor = 0
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keys.PrevFilter):
		m.libFilter = m.libFilter.Prev()
		m.libCursor = 0
		m.refreshResults()
		return m, nil

	case msg.Type == tea.KeyUp:
		if m.libCursor > 0 {
			m.libCursor--
		}
		return m, nil

	case msg.Type == tea.KeyDown:
		if m.libCursor < len(m.results)-1 {
			m.libCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		res, ok := m.selected()
		if !ok {
			return m, nil
		}
		out, err := m.session.AddExercise(res.Ref)
		m.closeLibrary()
		m.applyOutcome(out, err)
		if out.Applied {
			m.moveTo(len(out.View.Plan.Exercises)-1, 0)
			m.setStatus(fmt.Sprintf("Added %s to %s", titleCase(res.Name), out.View.DayName()))
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFavorite):
		res, ok := m.selected()
		if !ok {
			return m, nil
		}
		fav, err := m.session.ToggleFavorite(res.ID)
		if err != nil {
			m.setError("Save failed: " + err.Error())
		}
		if m.libFilter == library.FilterFavorites {
			m.refreshResults()
		} else {
			// Only the marker changes; no requery needed.
			for i := range m.results {
				if m.results[i].ID == res.ID {
					m.results[i].Favorite = fav
				}
			}
		}
		m.view = m.session.View()
		return m, nil

	case key.Matches(msg, m.keys.NewCustom):
		m.modal = newPromptModal("New custom exercise", "Name shown in the library", strings.TrimSpace(m.search.Value()),
			actionCustomName, pending{})
		return m, nil

	case key.Matches(msg, m.keys.DeleteCustom):
		res, ok := m.selected()
		if !ok || !res.IsCustom {
			m.setStatus("Only custom exercises can be deleted")
			return m, nil
		}
		out, err := m.session.DeleteCustomExercise(res.ID, false)
		if out.Reason == state.ReasonNotConfirmed {
			question := fmt.Sprintf("Delete custom exercise %q? Plans that use it keep their copy.", res.Name)
			m.modal = newConfirmModal(question, actionDeleteCustom, pending{id: string(res.ID), name: res.Name})
			return m, nil
		}
		m.applyOutcome(out, err)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != m.lastSearch {
		m.lastSearch = value
		m.libCursor = 0
		m.refreshResults()
	}
	return m, cmd
}

// categoryHint lists the body parts a custom exercise can be filed under.
func categoryHint() string {
	categories := library.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return "One of " + strings.Join(names, ", ") + " (optional)"
}

// createCustom stores a new custom exercise and adds it to the current day.
func (m Model) createCustom(name, bodyPart string) (tea.Model, tea.Cmd) {
	ref, out, err := m.session.CreateCustomExercise(name, bodyPart)
	m.applyOutcome(out, err)
	if !out.Applied {
		return m, nil
	}
	added, err := m.session.AddExercise(ref)
	m.closeLibrary()
	m.applyOutcome(added, err)
	if added.Applied {
		m.moveTo(len(added.View.Plan.Exercises)-1, 0)
		m.setStatus(fmt.Sprintf("Created %s and added it to %s", ref.Name, added.View.DayName()))
	}
	return m, nil
}

func (m Model) deleteCustom(id, name string) (tea.Model, tea.Cmd) {
	out, err := m.session.DeleteCustomExercise(exercise.ID(id), true)
	m.applyOutcome(out, err)
	if out.Applied {
		m.setStatus(fmt.Sprintf("Deleted %s", name))
	}
	m.refreshResults()
	return m, nil
}

// Rendering

func (m Model) renderLibrary() string {
	styles := m.theme.Styles()
	height := max(m.height-chromeHeight, 4)

	lines := []string{" " + m.search.View(), " " + m.renderFilterChips(), ""}

	if len(m.results) == 0 {
		msg := "No exercises found."
		if m.view.Catalog == state.CatalogLoading {
			msg = "Loading catalog…"
		}
		lines = append(lines, " "+styles.MutedText.Render(msg))
		return padLines(lines, height)
	}

	room := height - len(lines)
	start := windowStart(m.libCursor, len(m.results), room)
	end := min(start+room, len(m.results))
	for i := start; i < end; i++ {
		lines = append(lines, m.renderResult(m.results[i], i == m.libCursor))
	}
	return padLines(lines, height)
}

func (m Model) renderFilterChips() string {
	styles := m.theme.Styles()
	chips := make([]string, 0, len(library.Filters()))
	for _, f := range library.Filters() {
		if f == m.libFilter {
			chips = append(chips, styles.ActiveTab.Render(f.Label()))
		} else {
			chips = append(chips, styles.Tab.Render(f.Label()))
		}
	}
	return strings.Join(chips, "")
}

func (m Model) renderResult(res library.Result, selected bool) string {
	styles := m.theme.Styles()

	star := "  "
	if res.Favorite {
		star = styles.Favorite.Render("★ ")
	}

	name := titleCase(res.Name)
	if selected {
		name = styles.Selected.Render(" " + name + " ")
	} else {
		name = " " + styles.Text.Render(name) + " "
	}

	var detail []string
	if res.Target != "" {
		detail = append(detail, res.Target)
	}
	if res.Equipment != "" {
		detail = append(detail, res.Equipment)
	}
	line := " " + star + name
	if res.IsCustom {
		line += " " + styles.Badge.Render("custom")
	}
	if len(detail) > 0 && m.width >= LayoutCompactWidth {
		line += " " + styles.FaintText.Render(strings.Join(detail, " · "))
	}
	return line
}
