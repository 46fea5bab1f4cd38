// Package tui provides the interactive archive browser: a year list with
// month/day counts and a live view of a traversal run.
package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/niwi/photoarc/internal/adapters/osfs"
	"github.com/niwi/photoarc/internal/archive"
	"github.com/niwi/photoarc/internal/config"
	"github.com/niwi/photoarc/internal/dateparse"
	"github.com/niwi/photoarc/internal/ports"
	"github.com/niwi/photoarc/internal/report"
)

// View represents the current view state
type View int

const (
	YearsView View = iota
	RunView
)

// YearItem represents one year directory in the archive root.
type YearItem struct {
	Name   string
	Year   int
	Months int
	Days   int
}

// Model is the main TUI model
type Model struct {
	config *config.Config
	fs     ports.FileSystem
	parser ports.DateParser

	view     View
	width    int
	height   int
	quitting bool

	// Years view
	years  []YearItem
	cursor int

	// Run view
	running  bool
	runYear  int // 0 = whole archive
	runLines []string
	matched  int

	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Run  key.Binding
	All  key.Binding
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Run: key.NewBinding(
		key.WithKeys("enter", "r"),
		key.WithHelp("enter", "process year"),
	),
	All: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "process all"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a TUI model from the saved config.
func NewModel() (*Model, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewModelWithConfig(cfg, osfs.New()), nil
}

// NewModelWithConfig creates a model with injected dependencies (for tests).
func NewModelWithConfig(cfg *config.Config, fs ports.FileSystem) *Model {
	return &Model{
		config: cfg,
		fs:     fs,
		parser: dateparse.NewStandard(),
	}
}

// Messages
type yearsLoadedMsg struct {
	years []YearItem
	err   error
}

type runDoneMsg struct {
	lines   []string
	matched int
}

// Init loads the year list.
func (m *Model) Init() tea.Cmd {
	return m.loadYears
}

// loadYears scans the archive root one level deep per year for counts.
func (m *Model) loadYears() tea.Msg {
	root := config.ExpandPath(m.config.Root)
	entries, err := m.fs.ReadDir(root)
	if err != nil {
		return yearsLoadedMsg{err: err}
	}

	var years []YearItem
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year := m.parser.ParseYear(entry.Name())
		if year == 0 {
			continue
		}
		item := YearItem{Name: entry.Name(), Year: year}
		yearDir := filepath.Join(root, entry.Name())
		if months, err := m.fs.ReadDir(yearDir); err == nil {
			for _, month := range months {
				if !month.IsDir() || m.parser.ParseMonth(month.Name()) == 0 {
					continue
				}
				item.Months++
				if days, err := m.fs.ReadDir(filepath.Join(yearDir, month.Name())); err == nil {
					for _, day := range days {
						if day.IsDir() && m.parser.ParseDay(day.Name()) != 0 {
							item.Days++
						}
					}
				}
			}
		}
		years = append(years, item)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return yearsLoadedMsg{years: years}
}

// runTraversal processes the whole archive or one preset year and renders
// the resulting event stream.
func (m *Model) runTraversal(year int) tea.Cmd {
	root := config.ExpandPath(m.config.Root)
	fs := m.fs
	parser := m.parser
	return func() tea.Msg {
		var preset *archive.DateMarker
		if year != 0 {
			p := archive.NewDateMarker(year)
			preset = &p
		}

		capture := &report.Capture{}
		engine, err := archive.New(archive.Options{
			RootPath: root,
			Preset:   preset,
			FS:       fs,
			Parser:   parser,
			Reporter: capture,
		})
		if err != nil {
			return runDoneMsg{lines: []string{"Error: " + err.Error()}}
		}
		engine.Process()

		matched := 0
		for _, e := range capture.ByKind(archive.DayMatched) {
			matched += e.Count
		}
		return runDoneMsg{lines: eventLines(capture.Events), matched: matched}
	}
}

// eventLines renders events with the console wording, uncolored.
func eventLines(events []archive.Event) []string {
	var buf strings.Builder
	console := report.NewPlainConsole(&buf, &buf)
	for _, e := range events {
		console.Report(e)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case yearsLoadedMsg:
		if msg.err != nil {
			m.statusMsg = "Could not read archive root: " + msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.years = msg.years
		if m.cursor >= len(m.years) {
			m.cursor = 0
		}
		return m, nil

	case runDoneMsg:
		m.running = false
		m.runLines = msg.lines
		m.matched = msg.matched
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Back):
		if m.view == RunView && !m.running {
			m.view = YearsView
			m.runLines = nil
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.view == YearsView && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.view == YearsView && m.cursor < len(m.years)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Run):
		if m.view == YearsView && len(m.years) > 0 {
			m.view = RunView
			m.running = true
			m.runYear = m.years[m.cursor].Year
			return m, m.runTraversal(m.runYear)
		}
		return m, nil

	case key.Matches(msg, keys.All):
		if m.view == YearsView {
			m.view = RunView
			m.running = true
			m.runYear = 0
			return m, m.runTraversal(0)
		}
		return m, nil
	}
	return m, nil
}

// View renders the current view.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("photoarc"))
	b.WriteString("\n\n")

	switch m.view {
	case YearsView:
		m.renderYears(&b)
	case RunView:
		m.renderRun(&b)
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(warnBadge.Render(m.statusMsg))
		} else {
			b.WriteString(dimStyle.Render(m.statusMsg))
		}
	}

	return appStyle.Render(b.String())
}

func (m *Model) renderYears(b *strings.Builder) {
	if len(m.years) == 0 {
		b.WriteString(dimStyle.Render("No year directories found under " + m.config.Root))
		b.WriteString("\n")
	}
	for i, y := range m.years {
		line := fmt.Sprintf("%s  %d months, %d days", y.Name, y.Months, y.Days)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[↑/↓] move  [enter] process year  [a] process all  [q] quit"))
}

func (m *Model) renderRun(b *strings.Builder) {
	if m.runYear != 0 {
		b.WriteString(normalStyle.Render(fmt.Sprintf("Run: year %d", m.runYear)))
	} else {
		b.WriteString(normalStyle.Render("Run: whole archive"))
	}
	b.WriteString("\n\n")

	if m.running {
		b.WriteString(dimStyle.Render("Processing..."))
		b.WriteString("\n")
		return
	}

	// Tail the event stream to fit the window.
	lines := m.runLines
	max := m.height - 8
	if max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	for _, line := range lines {
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(matchBadge.Render(fmt.Sprintf("MATCHED %d", m.matched)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[esc] back  [q] quit"))
}

// Run starts the TUI
func Run() error {
	m, err := NewModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
