package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/stagetrack/internal/progress"
)

var (
	statusStylePending    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	statusStyleInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	statusStyleCompleted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	statusStyleDefault    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))

	ordinalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	titleStyle       = lipgloss.NewStyle().Bold(true)
	detailTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	connectorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	reasonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).Italic(true)
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))

	buttonStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3A3F4B")).Padding(0, 1)
	focusedButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5B8DEF")).Padding(0, 1).Bold(true)
	focusMarkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
)

func statusStyle(status progress.Status) lipgloss.Style {
	switch status {
	case progress.StatusPending:
		return statusStylePending
	case progress.StatusInProgress:
		return statusStyleInProgress
	case progress.StatusCompleted:
		return statusStyleCompleted
	default:
		return statusStyleDefault
	}
}
