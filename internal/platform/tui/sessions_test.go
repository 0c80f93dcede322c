package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/storage"
)

func TestSessionRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []storage.Session{
		{
			User:        "alice",
			Remote:      "10.0.0.5:5122",
			Mode:        "blockfall",
			GamesPlayed: 1234,
			StartedAt:   now.Add(-5 * time.Minute),
		},
		{
			User:      "bob",
			Remote:    "local",
			StartedAt: now.Add(-3 * time.Hour),
			EndedAt:   now.Add(-3*time.Hour + 90*time.Second),
		},
	}

	rows := SessionRows(sessions, now)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(rows))
	}

	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "alice"},
		{0, 3, "1,234"},
		{0, 4, "5 minutes ago"},
		{0, 5, "5m0s (live)"},
		{1, 2, "-"},
		{1, 3, "0"},
		{1, 4, "3 hours ago"},
		{1, 5, "1m30s"},
	}
	for _, tt := range tests {
		if got := rows[tt.row][tt.col]; got != tt.want {
			t.Errorf("row %d col %d = %q, expected %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestWriteSessions(t *testing.T) {
	now := time.Now()

	var empty bytes.Buffer
	if err := WriteSessions(&empty, nil, storage.Stats{}, now); err != nil {
		t.Fatalf("WriteSessions: %v", err)
	}
	if !strings.Contains(empty.String(), "No sessions recorded yet.") {
		t.Errorf("unexpected output for empty log:\n%s", empty.String())
	}

	var buf bytes.Buffer
	sessions := []storage.Session{{User: "carol", Remote: "local", Mode: "blockfall_turbo", StartedAt: now}}
	if err := WriteSessions(&buf, sessions, storage.Stats{Sessions: 1, Games: 2, Users: 1}, now); err != nil {
		t.Fatalf("WriteSessions: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"1 sessions, 2 games, 1 players", "User", "carol", "blockfall_turbo"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionsModelWithoutStore(t *testing.T) {
	m := NewSessionsModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No sessions recorded yet.") {
		t.Error("expected empty message without a store")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(SessionsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
