package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// Color palette shared by all terminal output.
var (
	primaryColor = lipgloss.Color("#7571F9")
	successColor = lipgloss.Color("#02BA84")
	warningColor = lipgloss.Color("#F2C94C")
	errorColor   = lipgloss.Color("#ED567A")
	infoColor    = lipgloss.Color("#43BF6D")
	subtleColor  = lipgloss.Color("#6C6C6C")
)

// Styles contains the styling definitions for report rendering.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	Box      lipgloss.Style
	Score    lipgloss.Style
	Critical lipgloss.Style
}

// NewStyles creates a Styles instance with the default palette.
func NewStyles() *Styles {
	s := &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primaryColor),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(infoColor),
		Success:  lipgloss.NewStyle().Foreground(successColor),
		Warning:  lipgloss.NewStyle().Foreground(warningColor),
		Error:    lipgloss.NewStyle().Foreground(errorColor),
		Info:     lipgloss.NewStyle().Foreground(infoColor),
		Subtle:   lipgloss.NewStyle().Foreground(subtleColor),
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(subtleColor).
		Padding(0, 1)

	s.Score = lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor)

	s.Critical = lipgloss.NewStyle().
		Bold(true).
		Foreground(errorColor)

	return s
}

// ForSeverity returns the style matching a severity level.
func (s *Styles) ForSeverity(severity model.Severity) lipgloss.Style {
	switch severity {
	case model.SeverityCritical:
		return s.Critical
	case model.SeverityError:
		return s.Error
	case model.SeverityWarning:
		return s.Warning
	case model.SeverityInfo:
		return s.Subtle
	default:
		return s.Normal
	}
}

// ForScore returns the style matching a compliance score.
func (s *Styles) ForScore(score float64) lipgloss.Style {
	switch {
	case score >= 0.9:
		return s.Success
	case score >= 0.7:
		return s.Warning
	default:
		return s.Error
	}
}

// RenderProgressBar renders a fixed-width score bar.
func (s *Styles) RenderProgressBar(progress float64, width int) string {
	if width <= 0 {
		width = 30
	}
	filled := int(float64(width) * progress)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
