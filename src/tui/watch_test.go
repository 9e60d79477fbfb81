package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestWatchModel_StatusUpdates(t *testing.T) {
	m := NewWatchModel("777")
	if m.status != "SCHEDULED" {
		t.Errorf("initial status = %q, want SCHEDULED", m.status)
	}

	updated, _ := m.Update(StatusMsg("EXECUTING"))
	m = updated.(WatchModel)
	if m.status != "EXECUTING" {
		t.Errorf("status = %q, want EXECUTING", m.status)
	}
	if !strings.Contains(m.View(), "https://cirrus-ci.com/build/777") {
		t.Errorf("View() missing build URL:\n%s", m.View())
	}
}

func TestWatchModel_ResultQuits(t *testing.T) {
	m := NewWatchModel("777")

	updated, cmd := m.Update(ResultMsg{Err: errors.New("build 777 was terminated: FAILED")})
	m = updated.(WatchModel)
	if !m.done {
		t.Error("done = false, want true")
	}
	if m.Err() == nil {
		t.Error("Err() = nil, want the poll error")
	}
	if cmd == nil {
		t.Fatal("cmd = nil, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestWatchModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewWatchModel("777")
			var msg tea.KeyMsg
			if key == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			} else {
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}
			_, cmd := m.Update(msg)
			if cmd == nil {
				t.Fatal("cmd = nil, want tea.Quit")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
			}
		})
	}
}
