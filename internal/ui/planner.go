package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lifter/internal/plan"
	"github.com/five82/lifter/internal/state"
)

// setRow addresses one set row of the current day.
type setRow struct {
	ex  int
	set int
}

func rowsOf(day plan.DayPlan) []setRow {
	var rows []setRow
	for e, ex := range day.Exercises {
		for s := range ex.SetsData {
			rows = append(rows, setRow{ex: e, set: s})
		}
	}
	return rows
}

// current returns the row under the cursor.
func (m Model) current() (setRow, bool) {
	rows := rowsOf(m.view.Plan)
	if m.view.Plan.IsRest || m.row < 0 || m.row >= len(rows) {
		return setRow{}, false
	}
	return rows[m.row], true
}

func (m *Model) clampRow() {
	n := len(rowsOf(m.view.Plan))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// moveTo places the cursor on (ex, set) when that row exists.
func (m *Model) moveTo(ex, set int) {
	for i, r := range rowsOf(m.view.Plan) {
		if r.ex == ex && r.set == set {
			m.row = i
			return
		}
	}
	m.clampRow()
}

// handlePlannerKey processes keyboard input for the planner screen.
func (m Model) handlePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.view
	switch {
	case key.Matches(msg, m.keys.PrevPlan), key.Matches(msg, m.keys.NextPlan):
		n := len(v.Templates)
		step := 1
		if key.Matches(msg, m.keys.PrevPlan) {
			step = n - 1
		}
		m.applyOutcome(m.session.SelectTemplate((v.Template+step)%n), nil)
		m.row = 0

	case key.Matches(msg, m.keys.NewPlan):
		m.modal = newPromptModal("New plan", "Name for the new weekly plan", "", actionCreatePlan, pending{})

	case key.Matches(msg, m.keys.RenamePlan):
		m.modal = newPromptModal("Rename plan", "", v.TemplateName(), actionRenamePlan, pending{template: v.Template})

	case key.Matches(msg, m.keys.DeletePlan):
		// Probe first so a refusal is reported without asking.
		out, err := m.session.DeleteTemplate(v.Template, false)
		if out.Reason == state.ReasonNotConfirmed {
			question := fmt.Sprintf("Delete plan %q? This cannot be undone.", v.TemplateName())
			m.modal = newConfirmModal(question, actionDeletePlan, pending{template: v.Template})
			return m, nil
		}
		m.applyOutcome(out, err)

	case key.Matches(msg, m.keys.PrevDay):
		m.applyOutcome(m.session.SelectDay((v.Day+plan.DaysPerWeek-1)%plan.DaysPerWeek), nil)
		m.row = 0

	case key.Matches(msg, m.keys.NextDay):
		m.applyOutcome(m.session.SelectDay((v.Day+1)%plan.DaysPerWeek), nil)
		m.row = 0

	case key.Matches(msg, m.keys.DayNumber):
		day, _ := strconv.Atoi(msg.String())
		m.applyOutcome(m.session.SelectDay(day-1), nil)
		m.row = 0

	case key.Matches(msg, m.keys.ToggleRest):
		m.applyOutcome(m.session.SetRest(!v.Plan.IsRest))

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if m.row < len(rowsOf(v.Plan))-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.SwitchField):
		if m.field == plan.FieldWeight {
			m.field = plan.FieldReps
		} else {
			m.field = plan.FieldWeight
		}

	case key.Matches(msg, m.keys.Edit):
		r, ok := m.current()
		if !ok {
			return m, nil
		}
		ex := v.Plan.Exercises[r.ex]
		set := ex.SetsData[r.set]
		act, label, initial := actionEditWeight, "Weight", formatWeight(set.Weight)
		if m.field == plan.FieldReps {
			act, label, initial = actionEditReps, "Reps", strconv.Itoa(set.Reps)
		}
		title := fmt.Sprintf("%s · set %d · %s", titleCase(ex.Name), r.set+1, label)
		m.modal = newPromptModal(title, "Negative values are stored as 0", initial, act,
			pending{template: v.Template, day: v.Day, exIndex: r.ex, setIndex: r.set})

	case key.Matches(msg, m.keys.AddExercise):
		if v.Plan.IsRest {
			m.setStatus("Rest day. Press R to plan exercises.")
			return m, nil
		}
		return m.openLibrary()

	case key.Matches(msg, m.keys.RemoveExercise):
		r, ok := m.current()
		if !ok {
			return m, nil
		}
		name := titleCase(v.Plan.Exercises[r.ex].Name)
		question := fmt.Sprintf("Remove %s from %s?", name, v.DayName())
		m.modal = newConfirmModal(question, actionRemoveExercise, pending{template: v.Template, day: v.Day, exIndex: r.ex})

	case key.Matches(msg, m.keys.AddSet):
		r, ok := m.current()
		if !ok {
			return m, nil
		}
		out, err := m.session.AddSet(r.ex)
		m.applyOutcome(out, err)
		if out.Applied {
			m.moveTo(r.ex, len(out.View.Plan.Exercises[r.ex].SetsData)-1)
		}

	case key.Matches(msg, m.keys.RemoveSet):
		r, ok := m.current()
		if !ok {
			return m, nil
		}
		out, err := m.session.RemoveSet(r.ex, false)
		if out.Reason == state.ReasonNotConfirmed {
			ex := v.Plan.Exercises[r.ex]
			question := fmt.Sprintf("Remove set %d of %s?", len(ex.SetsData), titleCase(ex.Name))
			m.modal = newConfirmModal(question, actionRemoveSet, pending{template: v.Template, day: v.Day, exIndex: r.ex})
			return m, nil
		}
		m.applyOutcome(out, err)
	}
	return m, nil
}

// handlePrompt applies a submitted prompt.
func (m Model) handlePrompt(msg promptResultMsg) (tea.Model, tea.Cmd) {
	t := msg.target
	switch msg.action {
	case actionCreatePlan:
		out, err := m.session.CreateTemplate(msg.value)
		m.applyOutcome(out, err)
		if out.Applied {
			m.row = 0
			m.setStatus(fmt.Sprintf("Created plan %q", out.View.TemplateName()))
		}

	case actionRenamePlan:
		m.applyOutcome(m.session.RenameTemplate(t.template, msg.value))

	case actionEditWeight, actionEditReps:
		value, ok := parseAmount(msg.value)
		if !ok {
			m.setError(fmt.Sprintf("%q is not a number", strings.TrimSpace(msg.value)))
			return m, nil
		}
		if !m.sameDay(t) {
			return m, nil
		}
		field := plan.FieldWeight
		if msg.action == actionEditReps {
			field = plan.FieldReps
		}
		m.applyOutcome(m.session.UpdateSetField(t.exIndex, t.setIndex, field, value))

	case actionCustomName:
		name := strings.TrimSpace(msg.value)
		if name == "" {
			m.setStatus(capitalize(state.ReasonEmptyName))
			return m, nil
		}
		initial := ""
		if m.libFilter.IsCategory() {
			initial = string(m.libFilter)
		}
		m.modal = newPromptModal("Body part for "+name, categoryHint(), initial,
			actionCustomBodyPart, pending{name: name})

	case actionCustomBodyPart:
		return m.createCustom(t.name, msg.value)
	}
	return m, nil
}

// handleConfirm applies an answered confirmation.
func (m Model) handleConfirm(msg confirmResultMsg) (tea.Model, tea.Cmd) {
	if !msg.confirmed {
		m.setStatus("Cancelled")
		return m, nil
	}
	t := msg.target
	switch msg.action {
	case actionDeletePlan:
		out, err := m.session.DeleteTemplate(t.template, true)
		m.applyOutcome(out, err)
		m.row = 0

	case actionRemoveExercise:
		if !m.sameDay(t) {
			return m, nil
		}
		m.applyOutcome(m.session.RemoveExercise(t.exIndex, true))

	case actionRemoveSet:
		if !m.sameDay(t) {
			return m, nil
		}
		m.applyOutcome(m.session.RemoveSet(t.exIndex, true))

	case actionDeleteCustom:
		return m.deleteCustom(t.id, t.name)
	}
	return m, nil
}

// sameDay reports whether the selection still matches where a modal was
// opened. Day commands address the current selection, so a mismatch drops
// the action.
func (m *Model) sameDay(t pending) bool {
	if m.view.Template != t.template || m.view.Day != t.day {
		m.setStatus(capitalize(state.ReasonNoSuchExercise))
		return false
	}
	return true
}

// Rendering

func (m Model) renderDayBar() string {
	styles := m.theme.Styles()
	templates := m.session.Templates()
	var schedule []plan.DayPlan
	if m.view.Template >= 0 && m.view.Template < len(templates) {
		schedule = templates[m.view.Template].Schedule
	}

	compact := m.width > 0 && m.width < LayoutCompactWidth
	bubbles := make([]string, 0, plan.DaysPerWeek)
	for d := 0; d < plan.DaysPerWeek; d++ {
		label := plan.DayLabels[d]
		if !compact {
			label = plan.DayNames[d][:3]
		}
		style := styles.Day
		if d < len(schedule) && schedule[d].IsRest {
			style = styles.RestDay
		}
		if d == m.view.Day {
			style = styles.ActiveDay
		}
		bubbles = append(bubbles, style.Render(label))
	}
	return " " + strings.Join(bubbles, " ")
}

func (m Model) renderPlanner() string {
	styles := m.theme.Styles()
	v := m.view
	height := max(m.height-chromeHeight, 3)

	var lines []string
	title := styles.AccentText.Bold(true).Render(v.DayName())
	if v.Plan.IsRest {
		title += " " + styles.FaintText.Render("(rest day)")
	}
	lines = append(lines, " "+title)

	switch {
	case v.Plan.IsRest:
		lines = append(lines, "", " "+styles.MutedText.Render("Rest day. Press R to plan exercises."))
		return padLines(lines, height)
	case len(v.Plan.Exercises) == 0:
		lines = append(lines, "", " "+styles.MutedText.Render("No exercises yet. Press a to add one from the library."))
		return padLines(lines, height)
	}

	cursor, _ := m.current()
	body := make([]string, 0)
	focusLine := 0
	for e, ex := range v.Plan.Exercises {
		body = append(body, "")
		body = append(body, fmt.Sprintf(" %s %s",
			styles.FaintText.Render(fmt.Sprintf("%d.", e+1)),
			styles.Text.Bold(true).Render(titleCase(ex.Name))))
		for s, set := range ex.SetsData {
			selected := cursor.ex == e && cursor.set == s
			if selected {
				focusLine = len(body)
			}
			body = append(body, m.renderSetRow(s, set, selected))
		}
	}

	room := height - len(lines)
	start := windowStart(focusLine, len(body), room)
	end := min(start+room, len(body))
	lines = append(lines, body[start:end]...)
	return padLines(lines, height)
}

func (m Model) renderSetRow(index int, set plan.SetEntry, selected bool) string {
	styles := m.theme.Styles()
	weight := fmt.Sprintf(" %6s ", formatWeight(set.Weight))
	reps := fmt.Sprintf(" %4d ", set.Reps)
	if selected {
		if m.field == plan.FieldWeight {
			weight = styles.Selected.Render(weight)
		} else {
			reps = styles.Selected.Render(reps)
		}
	}
	marker := "  "
	if selected {
		marker = styles.AccentText.Render("› ")
	}
	return fmt.Sprintf("   %sset %-2d %s %s %s %s",
		marker, index+1,
		styles.MutedText.Render("weight"), weight,
		styles.MutedText.Render("reps"), reps)
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	if m.status == "" {
		return ""
	}
	if m.statusIsErr {
		return " " + styles.DangerText.Render(m.status)
	}
	return " " + styles.InfoText.Render(m.status)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	var hint string
	switch m.screen {
	case ScreenLibrary:
		hint = "type to search · ↑/↓ move · enter add · tab filter · ctrl+f favorite · ctrl+n new · ctrl+x delete · esc back"
	case ScreenLogs:
		hint = "↑/↓ scroll · f warnings only · ctrl+r reload · esc back"
	default:
		hint = shortHelp(m.keys.ShortHelp())
	}
	return styles.Footer.Width(m.width).Render(truncate(hint, max(m.width-2, 10)))
}

// padLines joins lines and pads to height so the footer stays put.
func padLines(lines []string, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
