package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the customizable colors for the watch display.
type StyleConfig struct {
	Active  lipgloss.Color
	Success lipgloss.Color
	Failure lipgloss.Color
	Muted   lipgloss.Color
	Spinner lipgloss.Color
}

// DefaultStyles returns the default color palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Active:  lipgloss.Color("#FBBC04"), // Yellow
		Success: lipgloss.Color("#34A853"), // Green
		Failure: lipgloss.Color("#EA4335"), // Red
		Muted:   lipgloss.Color("#9AA0A6"),
		Spinner: lipgloss.Color("#FFD700"), // Gold
	}
}

// StatusStyle returns the style for one build status value.
func (s *StyleConfig) StatusStyle(status string) lipgloss.Style {
	var color lipgloss.Color
	switch status {
	case "COMPLETED":
		color = s.Success
	case "NEEDS_APPROVAL", "FAILED", "ABORTED", "ERRORED":
		color = s.Failure
	default:
		color = s.Active
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// MutedStyle returns the style for secondary text.
func (s *StyleConfig) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Muted)
}
