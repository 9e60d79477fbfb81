// Package tui implements the watch-mode display: a live status line for a
// build being polled.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusMsg carries the latest observed build status into the model.
type StatusMsg string

// ResultMsg ends the watch with the poll outcome.
type ResultMsg struct {
	Err error
}

// WatchModel renders a spinner, the build URL, the last observed status and
// the elapsed time while a poller runs in the background. The poller feeds it
// through StatusMsg and ResultMsg; the model itself never talks to the API.
type WatchModel struct {
	spinner spinner.Model
	styles  *StyleConfig
	buildID string
	status  string
	started time.Time
	done    bool
	err     error
}

// NewWatchModel creates a watch model for one build.
func NewWatchModel(buildID string) WatchModel {
	styles := DefaultStyles()
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Spinner)
	return WatchModel{
		spinner: s,
		styles:  styles,
		buildID: buildID,
		status:  "SCHEDULED",
		started: time.Now(),
	}
}

func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case StatusMsg:
		m.status = string(msg)
	case ResultMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WatchModel) View() string {
	url := fmt.Sprintf("https://cirrus-ci.com/build/%s", m.buildID)
	elapsed := time.Since(m.started).Round(time.Second)

	if m.done {
		marker := m.styles.StatusStyle("COMPLETED").Render("✓")
		if m.err != nil {
			marker = m.styles.StatusStyle("FAILED").Render("✗")
		}
		return fmt.Sprintf("%s %s %s %s\n",
			marker,
			url,
			m.styles.StatusStyle(m.status).Render(m.status),
			m.styles.MutedStyle().Render(elapsed.String()))
	}

	return fmt.Sprintf("%s%s %s %s\n",
		m.spinner.View(),
		url,
		m.styles.StatusStyle(m.status).Render(m.status),
		m.styles.MutedStyle().Render(elapsed.String()))
}

// Err returns the poll outcome once the watch has finished.
func (m WatchModel) Err() error {
	return m.err
}
