package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amityadavvoid-ui/Syetem/internal/clock"
	"github.com/amityadavvoid-ui/Syetem/internal/engine"
	"github.com/amityadavvoid-ui/Syetem/internal/storage"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service, *clock.FakeClock) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clk := clock.Fake(time.Date(2025, time.April, 7, 22, 0, 0, 0, time.Local))
	svc := engine.NewService(db, engine.WithClock(clk))
	return newBoardModel(ctx, svc), svc, clk
}

// apply feeds msg to the model and returns the updated board.
func apply(t *testing.T, m boardModel, msg tea.Msg) (boardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(boardModel), cmd
}

func load(t *testing.T, m boardModel) boardModel {
	t.Helper()
	m, _ = apply(t, m, m.loadCmd()())
	if m.snap == nil {
		t.Fatalf("snapshot not loaded: %v", m.err)
	}
	return m
}

func TestBoardTogglesSelectedQuest(t *testing.T) {
	m, svc, _ := newTestBoard(t)
	ctx := context.Background()
	if _, err := svc.AddQuest(ctx, engine.QuestInput{Name: "Push-ups", Stat: engine.StatStrength}); err != nil {
		t.Fatalf("add: %v", err)
	}
	m = load(t, m)
	if !strings.Contains(m.View(), "Push-ups") {
		t.Fatalf("view missing quest:\n%s", m.View())
	}

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatalf("space produced no command")
	}
	msg, ok := cmd().(toggledMsg)
	if !ok || msg.err != nil {
		t.Fatalf("toggle msg=%+v", msg)
	}
	m, _ = apply(t, m, msg)
	if !strings.Contains(m.lastLog, "Completed") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}

	m = load(t, m)
	if !m.snap.Quests[0].Completed {
		t.Fatalf("quest not completed after toggle")
	}
}

func TestBoardTickRunsRollover(t *testing.T) {
	m, svc, clk := newTestBoard(t)
	ctx := context.Background()
	if _, err := svc.AddQuest(ctx, engine.QuestInput{Name: "Read", Stat: engine.StatIntelligence}); err != nil {
		t.Fatalf("add: %v", err)
	}
	m = load(t, m)

	res := m.rolloverCmd()().(rolloverMsg)
	if res.err != nil || res.res.Ran {
		t.Fatalf("same-day rollover=%+v err=%v", res.res, res.err)
	}

	clk.Advance(3 * time.Hour)
	res = m.rolloverCmd()().(rolloverMsg)
	if res.err != nil || !res.res.Ran || len(res.res.Penalties) != 1 {
		t.Fatalf("midnight rollover=%+v err=%v", res.res, res.err)
	}
	m, cmd := apply(t, m, res)
	if cmd == nil || !strings.Contains(m.lastLog, "missed") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}

func TestBoardFocusSessionCompletesOnTick(t *testing.T) {
	m, _, clk := newTestBoard(t)
	m = load(t, m)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	if m.focusEnd.IsZero() {
		t.Fatalf("focus session not started")
	}

	clk.Advance(36 * time.Minute)
	m, _ = apply(t, m, tickMsg(clk.Now()))
	if !m.focusEnd.IsZero() {
		t.Fatalf("focus session still running after its length")
	}
	msg := m.focusCmd()().(focusMsg)
	if msg.err != nil || msg.res.Awarded == 0 {
		t.Fatalf("focus=%+v err=%v", msg.res, msg.err)
	}
}

func TestBoardCalendarToggle(t *testing.T) {
	m, _, _ := newTestBoard(t)
	m = load(t, m)
	if len(m.snap.Calendar) != calendarCollapse {
		t.Fatalf("calendar=%d days, want %d", len(m.snap.Calendar), calendarCollapse)
	}

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	m, _ = apply(t, m, cmd())
	if len(m.snap.Calendar) != calendarExpand {
		t.Fatalf("calendar=%d days, want %d", len(m.snap.Calendar), calendarExpand)
	}
}

func TestBoardLogsInterference(t *testing.T) {
	m, _, _ := newTestBoard(t)
	m = load(t, m)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	if !m.tagging {
		t.Fatalf("tag input not opened")
	}
	m.tagInput.SetValue("phone, noise")
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.tagging || cmd == nil {
		t.Fatalf("submit did not log")
	}
	msg := cmd().(interferedMsg)
	if msg.err != nil || len(msg.res.Tags) != 2 {
		t.Fatalf("interference=%+v err=%v", msg.res, msg.err)
	}
}
