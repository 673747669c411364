// Package styles holds the colour palette and lipgloss styles shared by
// the TUI views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Confidence bands used to colour answers. Scores at or above
// HighConfidence render as success, at or above MediumConfidence as a
// warning, and anything lower as an error.
const (
	HighConfidence   = 60
	MediumConfidence = 30
)

// Theme is a colour palette.
type Theme struct {
	Primary, Secondary lipgloss.Color
	Foreground, Muted  lipgloss.Color

	Success, Warning, Error lipgloss.Color

	Border, StatusBackground lipgloss.Color
}

// DefaultTheme is a dark palette with a blue accent.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:          "#2563EB",
		Secondary:        "#14B8A6",
		Foreground:       "#E5E7EB",
		Muted:            "#6B7280",
		Success:          "#22C55E",
		Warning:          "#EAB308",
		Error:            "#EF4444",
		Border:           "#374151",
		StatusBackground: "#111827",
	}
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title, Subtitle         lipgloss.Style
	Normal, Muted, Selected lipgloss.Style
	Error, Success, Warning lipgloss.Style

	Answer  lipgloss.Style
	Passage lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
}

// NewStyles derives styles from theme, falling back to DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:    fg(theme.Error),
		Success:  fg(theme.Success),
		Warning:  fg(theme.Warning),
		Answer:   fg(theme.Foreground),
		Passage:  fg(theme.Muted).Italic(true).PaddingLeft(2),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.StatusBackground).Padding(0, 1),
		Help:      fg(theme.Muted),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Confidence picks the style for a confidence score.
func (s *Styles) Confidence(score int) lipgloss.Style {
	switch {
	case score >= HighConfidence:
		return s.Success
	case score >= MediumConfidence:
		return s.Warning
	}
	return s.Error
}
