package faultviewer

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/ecsfault/foundation/core/exception"
	"github.com/msto63/ecsfault/internal/journal"
)

func seededStore(t *testing.T) *journal.MemoryStore {
	t.Helper()
	store := journal.NewMemoryStore()
	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	faults := []struct {
		source string
		fault  exception.Fault
	}{
		{"physics", exception.NewComponent("missing Transform", "world.cpp", "World::get", 42)},
		{"loader", exception.NewAt("bad scene", "Config", "scene.go", "scene.Load", 3)},
		{"physics", exception.NewAt("step overflow", "", "step.go", "physics.Step", 7)},
	}
	for i, f := range faults {
		rec := journal.NewRecord(f.source, f.fault)
		rec.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := store.Record(context.Background(), rec); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func loaded(t *testing.T, cfg Config) Model {
	t.Helper()
	m := New(cfg)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated, _ = updated.Update(m.loadRecords())
	updated, _ = updated.Update(m.loadStats())
	return updated.(Model)
}

func press(m Model, key string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated.(Model)
}

func messages(records []*journal.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Message
	}
	return out
}

func TestLoadRecordsOldestFirst(t *testing.T) {
	m := loaded(t, Config{Store: seededStore(t)})

	got := strings.Join(messages(m.filtered), ",")
	if got != "missing Transform,bad scene,step overflow" {
		t.Errorf("filtered = %s", got)
	}
	if m.loading {
		t.Error("still loading after records arrived")
	}
	if m.stats.Total != 3 {
		t.Errorf("stats.Total = %d, want 3", m.stats.Total)
	}
}

func TestLoadRecordsBySource(t *testing.T) {
	m := loaded(t, Config{Store: seededStore(t), Source: "physics"})

	if len(m.filtered) != 2 {
		t.Errorf("filtered = %v, want 2 physics records", messages(m.filtered))
	}
}

func TestSeverityToggle(t *testing.T) {
	m := loaded(t, Config{Store: seededStore(t)})

	m = press(m, "3")
	if got := strings.Join(messages(m.filtered), ","); got != "bad scene,step overflow" {
		t.Errorf("without high = %s", got)
	}

	m = press(m, "2")
	if len(m.filtered) != 0 {
		t.Errorf("without high and medium = %v", messages(m.filtered))
	}

	m = press(m, "0")
	if len(m.filtered) != 3 {
		t.Errorf("after reset = %v", messages(m.filtered))
	}
}

func TestCategoryCycle(t *testing.T) {
	m := loaded(t, Config{Store: seededStore(t)})

	want := []struct {
		category string
		count    int
	}{
		{"Component", 1},
		{"Config", 1},
		{"", 3},
	}

	for _, w := range want {
		m = press(m, "k")
		if m.categoryFilter != w.category {
			t.Fatalf("categoryFilter = %q, want %q", m.categoryFilter, w.category)
		}
		if len(m.filtered) != w.count {
			t.Errorf("category %q: %d records, want %d", w.category, len(m.filtered), w.count)
		}
	}
}

func TestNextCategory(t *testing.T) {
	tests := []struct {
		categories []string
		current    string
		want       string
	}{
		{nil, "", ""},
		{[]string{""}, "", ""},
		{[]string{"", "Component"}, "", "Component"},
		{[]string{"Component", "Config"}, "Component", "Config"},
		{[]string{"Component", "Config"}, "Config", ""},
		{[]string{"Component"}, "Gone", ""},
	}

	for _, tt := range tests {
		if got := nextCategory(tt.categories, tt.current); got != tt.want {
			t.Errorf("nextCategory(%v, %q) = %q, want %q", tt.categories, tt.current, got, tt.want)
		}
	}
}

func TestPauseStopsRefresh(t *testing.T) {
	m := loaded(t, Config{Store: seededStore(t)})

	m = press(m, "p")
	if !m.paused {
		t.Fatal("not paused")
	}
	if !strings.Contains(m.View(), "PAUSIERT") {
		t.Error("pause not shown in header")
	}

	m = press(m, " ")
	if m.paused {
		t.Error("space did not resume")
	}
}

func TestViewContents(t *testing.T) {
	m := New(Config{})
	if got := m.View(); got != "Lade FaultViewer..." {
		t.Errorf("View() before resize = %q", got)
	}

	m = loaded(t, Config{Store: seededStore(t)})
	view := m.View()
	for _, want := range []string{Logo, "missing Transform", "world.cpp:42 in World::get", "Gesamt: 3", "Alarm: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestNoStore(t *testing.T) {
	m := loaded(t, Config{})
	if m.err == nil {
		t.Error("expected error without store")
	}
}

func TestQuitKeys(t *testing.T) {
	m := New(Config{})
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%v: no command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command is not quit", msg)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"physics", 10, "physics"},
		{"renderer-main", 10, "renderer-~"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
