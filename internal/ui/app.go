package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lifter/internal/catalog"
	"github.com/five82/lifter/internal/library"
	"github.com/five82/lifter/internal/plan"
	"github.com/five82/lifter/internal/prefs"
	"github.com/five82/lifter/internal/state"
)

// Screen is the currently shown main screen.
type Screen int

const (
	ScreenPlanner Screen = iota
	ScreenLibrary
	ScreenLogs
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Session *state.Session
	// LoadCatalog is run once, off the update loop, when the program starts.
	LoadCatalog func(context.Context) (*catalog.Index, error)
	LogPath     string
	ThemeName   string
	PrefsPath   string
	// LibraryFilter is the filter restored from preferences.
	LibraryFilter string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	session     *state.Session
	loadCatalog func(context.Context) (*catalog.Index, error)
	logPath     string
	prefsPath   string
	keys        keyMap

	// UI state
	theme    Theme
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal

	// Status line
	status      string
	statusIsErr bool

	// Planner state
	view  state.View
	row   int
	field plan.SetField

	// Library state
	search     textinput.Model
	libFilter  library.Filter
	results    []library.Result
	libCursor  int
	lastSearch string

	// Diagnostics state
	logViewport viewport.Model
	logLines    []string
	logErr      error
	warnOnly    bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search exercises"
	search.CharLimit = 60

	filter := library.ParseFilter(opts.LibraryFilter)
	opts.Session.SetFilter(filter)

	return Model{
		ctx:         ctx,
		session:     opts.Session,
		loadCatalog: opts.LoadCatalog,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		screen:      ScreenPlanner,
		view:        opts.Session.View(),
		field:       plan.FieldWeight,
		search:      search,
		libFilter:   filter,
		logViewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.loadCatalog != nil {
		cmds = append(cmds, loadCatalogCmd(m.ctx, m.loadCatalog))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(m.width-8, 10)
		m.logViewport.Width = m.width
		m.logViewport.Height = max(m.height-chromeHeight, 1)
		m.updateLogViewport()
		return m, nil

	case catalogLoadedMsg:
		m.view = m.session.SetCatalog(msg.index, msg.err)
		if msg.err != nil {
			m.setError("Exercise catalog unavailable; custom exercises still work (see L)")
		}
		if m.screen == ScreenLibrary {
			m.refreshResults()
		}
		return m, nil

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		m.logViewport.GotoBottom()
		return m, nil

	case promptResultMsg:
		return m.handlePrompt(msg)

	case confirmResultMsg:
		return m.handleConfirm(msg)
	}

	// Cursor blink and other internal messages.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	if m.screen == ScreenLibrary {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	m.setStatus("")

	if m.screen == ScreenLibrary {
		return m.handleLibraryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.screen = ScreenLogs
		return m, m.refreshLogs()
	}

	switch m.screen {
	case ScreenLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handlePlannerKey(msg)
	}
}

// applyOutcome stores the view a command returned and reports refusals and
// save failures on the status line.
func (m *Model) applyOutcome(out state.Outcome, err error) {
	m.view = out.View
	switch {
	case err != nil:
		m.setError("Save failed: " + err.Error())
	case !out.Applied && out.Reason != "":
		m.setStatus(capitalize(out.Reason))
	}
	m.clampRow()
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusIsErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusIsErr = true
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, LibraryFilter: string(m.libFilter)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.WithError(err).Warn("save prefs")
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDayBar())
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenLibrary:
		b.WriteString(m.renderLibrary())
	case ScreenLogs:
		b.WriteString(m.renderLogs())
	default:
		b.WriteString(m.renderPlanner())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Messages

type catalogLoadedMsg struct {
	index *catalog.Index
	err   error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func loadCatalogCmd(ctx context.Context, load func(context.Context) (*catalog.Index, error)) tea.Cmd {
	return func() tea.Msg {
		idx, err := load(ctx)
		return catalogLoadedMsg{index: idx, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
