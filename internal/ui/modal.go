package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// action names what a modal answer is for.
type action int

const (
	actionCreatePlan action = iota
	actionRenamePlan
	actionDeletePlan
	actionRemoveExercise
	actionRemoveSet
	actionEditWeight
	actionEditReps
	actionCustomName
	actionCustomBodyPart
	actionDeleteCustom
)

// pending carries the target of an action across the modal round trip, so a
// re-render in between cannot retarget it.
type pending struct {
	template int
	day      int
	exIndex  int
	setIndex int
	id       string
	name     string
}

// promptResultMsg is sent when a prompt is submitted.
type promptResultMsg struct {
	action action
	value  string
	target pending
}

// confirmResultMsg is sent when a confirmation is answered.
type confirmResultMsg struct {
	action    action
	confirmed bool
	target    pending
}

// promptModal asks for one line of text.
type promptModal struct {
	title  string
	hint   string
	action action
	target pending
	input  textinput.Model
}

func newPromptModal(title, hint, initial string, act action, target pending) promptModal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 80
	ti.Width = 40
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return promptModal{title: title, hint: hint, action: act, target: target, input: ti}
}

func (p promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.Type == tea.KeyEsc:
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			result := promptResultMsg{action: p.action, value: p.input.Value(), target: p.target}
			return p, func() tea.Msg { return result }, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	if p.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render(p.hint))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter to save · esc to cancel"))
	return placeModal(theme, width, height, 50, b.String())
}

// confirmModal asks a yes/no question before an irreversible action.
type confirmModal struct {
	question string
	action   action
	target   pending
}

func newConfirmModal(question string, act action, target pending) confirmModal {
	return confirmModal{question: question, action: act, target: target}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	answer := func(yes bool) tea.Cmd {
		result := confirmResultMsg{action: c.action, confirmed: yes, target: c.target}
		return func() tea.Msg { return result }
	}
	switch {
	case key.Matches(km, keys.Yes):
		return c, answer(true), true
	case key.Matches(km, keys.No):
		return c, answer(false), true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.question))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("y to confirm · n/esc to cancel"))
	return placeModal(theme, width, height, 50, b.String())
}

func placeModal(theme Theme, width, height, modalWidth int, content string) string {
	if width > 0 && modalWidth > width-4 {
		modalWidth = max(width-4, 20)
	}
	box := theme.Styles().Modal.Width(modalWidth).Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
