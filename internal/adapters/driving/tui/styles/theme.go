// Package styles provides the colour palette and lipgloss styles for the
// assistant TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the colours the assistant view is drawn with.
type Palette struct {
	Accent    lipgloss.Color // title, selection background
	Highlight lipgloss.Color // answers, links, origins
	Text      lipgloss.Color
	Dim       lipgloss.Color // hints, help, status bar text
	Good      lipgloss.Color
	Bad       lipgloss.Color
	Frame     lipgloss.Color // input border
	Bar       lipgloss.Color // status bar background
}

// DefaultPalette returns the dark palette used by default.
func DefaultPalette() Palette {
	return Palette{
		Accent:    lipgloss.Color("#2563EB"),
		Highlight: lipgloss.Color("#06B6D4"),
		Text:      lipgloss.Color("#CDD6F4"),
		Dim:       lipgloss.Color("#6C7086"),
		Good:      lipgloss.Color("#A6E3A1"),
		Bad:       lipgloss.Color("#F38BA8"),
		Frame:     lipgloss.Color("#45475A"),
		Bar:       lipgloss.Color("#181825"),
	}
}

// Styles are the rendered styles shared by the app and its components.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style // file names in the result list
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	// InputField frames the question prompt.
	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Answer renders a conversational reply with a left rule.
	Answer lipgloss.Style
	Link   lipgloss.Style
}

// NewStyles builds the styles for a palette.
func NewStyles(p Palette) *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Highlight),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Bad),
		Success:  lipgloss.NewStyle().Foreground(p.Good),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Frame).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.Bar).
			Padding(0, 1),

		Answer: lipgloss.NewStyle().
			Foreground(p.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Highlight).
			PaddingLeft(1),
		Link: lipgloss.NewStyle().Foreground(p.Highlight).Underline(true),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}
