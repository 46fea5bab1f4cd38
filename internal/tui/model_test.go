package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/niwi/photoarc/internal/config"
	"github.com/niwi/photoarc/internal/mocks"
)

func testModel() (*Model, *mocks.MockFileSystem) {
	fs := mocks.NewMockFileSystem()
	fs.AddDir("/photos", "d:2020", "d:2021", "d:misc")
	fs.AddDir("/photos/2020", "d:01")
	fs.AddDir("/photos/2020/01", "d:05")
	fs.AddDir("/photos/2020/01/05", "a.jpg")
	fs.AddDir("/photos/2021", "d:03", "d:07")
	fs.AddDir("/photos/2021/03", "d:15")
	fs.AddDir("/photos/2021/07", "d:04")
	fs.AddDir("/photos/2021/03/15", "b.jpg")
	fs.AddDir("/photos/2021/07/04", "c.jpg")

	cfg := config.DefaultConfig()
	cfg.Root = "/photos"
	return NewModelWithConfig(cfg, fs), fs
}

func TestLoadYears(t *testing.T) {
	m, _ := testModel()

	msg := m.loadYears()
	loaded, ok := msg.(yearsLoadedMsg)
	if !ok {
		t.Fatalf("loadYears returned %T", msg)
	}
	if loaded.err != nil {
		t.Fatalf("loadYears error: %v", loaded.err)
	}
	if len(loaded.years) != 2 {
		t.Fatalf("years = %+v, expected 2020 and 2021 (misc ignored)", loaded.years)
	}
	if loaded.years[0].Year != 2020 || loaded.years[1].Year != 2021 {
		t.Errorf("years out of order: %+v", loaded.years)
	}
	if loaded.years[1].Months != 2 || loaded.years[1].Days != 2 {
		t.Errorf("2021 counts = %+v, expected 2 months, 2 days", loaded.years[1])
	}
}

func TestModelView(t *testing.T) {
	m, _ := testModel()
	m.width = 80
	m.height = 24

	if msg := m.loadYears(); msg != nil {
		updated, _ := m.Update(msg)
		m = updated.(*Model)
	}

	view := m.View()
	if view == "" {
		t.Fatal("View() returned empty string")
	}
	if !strings.Contains(view, "photoarc") {
		t.Error("View should contain 'photoarc'")
	}
	if !strings.Contains(view, "2021") {
		t.Error("View should list year 2021")
	}
	if !strings.Contains(view, "2 months, 2 days") {
		t.Errorf("View should show 2021 counts:\n%s", view)
	}
}

func TestModelWindowSize(t *testing.T) {
	m, _ := testModel()

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m = updated.(*Model)

	if m.width != 100 {
		t.Errorf("width = %d, expected 100", m.width)
	}
	if m.height != 50 {
		t.Errorf("height = %d, expected 50", m.height)
	}
}

func TestRunSelectedYear(t *testing.T) {
	m, _ := testModel()
	m.width = 80
	m.height = 24

	updated, _ := m.Update(m.loadYears())
	m = updated.(*Model)

	// Select 2021 and run it.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)
	if cmd == nil {
		t.Fatal("enter did not start a run")
	}

	updated, _ = m.Update(cmd())
	m = updated.(*Model)

	if m.running {
		t.Error("still running after runDoneMsg")
	}
	if m.matched != 2 {
		t.Errorf("matched = %d, expected the two 2021 photos", m.matched)
	}
	view := m.View()
	if !strings.Contains(view, "MATCHED 2") {
		t.Errorf("run view missing match total:\n%s", view)
	}
	if !strings.Contains(view, "Processing the year: 2021") {
		t.Errorf("run view missing event lines:\n%s", view)
	}
}

func TestWithTeatest(t *testing.T) {
	m, _ := testModel()

	tm := teatest.NewTestModel(t, m)

	tm.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}
