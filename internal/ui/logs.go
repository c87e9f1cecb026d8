package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/lifter/internal/logtail"
)

// refreshLogs reads the log tail off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// handleLogsKey processes keyboard input for the diagnostics screen.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenPlanner
		return m, nil

	case key.Matches(msg, m.keys.ToggleLevel):
		m.warnOnly = !m.warnOnly
		m.updateLogViewport()
		m.logViewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshLogs()
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateLogViewport() {
	m.logViewport.SetContent(m.logContent())
}

func (m Model) logContent() string {
	styles := m.theme.Styles()
	if m.logPath == "" {
		return styles.MutedText.Render("Logging to file is disabled.")
	}
	if m.logErr != nil {
		return styles.DangerText.Render("Cannot read log: " + m.logErr.Error())
	}

	threshold := logrus.TraceLevel
	if m.warnOnly {
		threshold = logrus.WarnLevel
	}
	entries := logtail.Filter(m.logLines, threshold)
	if len(entries) == 0 {
		return styles.MutedText.Render("Nothing logged yet.")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.renderLogEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLogEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Time == "" && len(e.Fields) == 0 {
		return styles.Text.Render(e.Raw)
	}

	levelStyle := styles.InfoText
	switch {
	case e.Level <= logrus.ErrorLevel:
		levelStyle = styles.DangerText
	case e.Level == logrus.WarnLevel:
		levelStyle = styles.WarningText
	case e.Level >= logrus.DebugLevel:
		levelStyle = styles.FaintText
	}

	var b strings.Builder
	if len(e.Time) >= 19 {
		// 2006-01-02T15:04:05 -> 15:04:05
		b.WriteString(styles.FaintText.Render(e.Time[11:19]))
		b.WriteString(" ")
	}
	b.WriteString(levelStyle.Render(strings.ToUpper(e.Level.String())[:4]))
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(e.Message))
	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(f[0] + "="))
		b.WriteString(styles.AccentText.Render(f[1]))
	}
	return b.String()
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := " " + styles.AccentText.Bold(true).Render("Diagnostics")
	if m.warnOnly {
		title += " " + styles.FaintText.Render("(warnings and errors)")
	}
	height := max(m.height-chromeHeight, 2)
	vp := m.logViewport
	vp.Height = height - 1
	return title + "\n" + vp.View()
}
