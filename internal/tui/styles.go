package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/claude/fittrack/internal/workout"
)

var (
	baseStyle   = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	tabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	activeTab   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Bold(true).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	clockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true).Padding(1, 4)
	workStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	restStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	dayStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	workoutDay  = dayStyle.Foreground(lipgloss.Color("42")).Bold(true)
	cursorDay   = dayStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63"))

	noticeStyles = map[workout.Level]lipgloss.Style{
		workout.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		workout.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		workout.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func renderNotice(n workout.Notice) string {
	if n.Title == "" {
		return ""
	}
	s := noticeStyles[n.Level].Render(n.Title)
	if n.Detail != "" {
		s += " " + dimStyle.Render(n.Detail)
	}
	return s
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}
