package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nocturne/internal/models"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	LabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(24)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	OKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("236")).
			Padding(0, 1)
)

// HealthStyle colours a health status.
func HealthStyle(h models.HealthStatus) lipgloss.Style {
	switch h {
	case models.HealthExcellent, models.HealthGood:
		return OKStyle
	case models.HealthWarning:
		return WarnStyle
	default:
		return ErrorStyle
	}
}

// RenderMetric shows a pending metric as a dim "pending" marker.
func RenderMetric(m models.Metric) string {
	if m.IsPending() {
		return PendingStyle.Render(m.String())
	}
	return m.String()
}

// Row renders a label/value line.
func Row(label, value string) string {
	return LabelStyle.Render(label) + value
}
