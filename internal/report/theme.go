// Package report renders catalog, progress, assessment and goal data as
// styled terminal text.
package report

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// styles is the set of styles a Renderer uses. The plain variant has no
// colors or decorations so output stays readable when piped.
type styles struct {
	title     lipgloss.Style
	heading   lipgloss.Style
	dim       lipgloss.Style
	good      lipgloss.Style
	bad       lipgloss.Style
	accent    lipgloss.Style
	barFilled lipgloss.Style
	barEmpty  lipgloss.Style
}

func colorStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(Primary),
		heading:   lipgloss.NewStyle().Bold(true).Foreground(Secondary),
		dim:       lipgloss.NewStyle().Foreground(TextDim),
		good:      lipgloss.NewStyle().Foreground(Success).Bold(true),
		bad:       lipgloss.NewStyle().Foreground(Error).Bold(true),
		accent:    lipgloss.NewStyle().Foreground(Accent),
		barFilled: lipgloss.NewStyle().Foreground(Secondary),
		barEmpty:  lipgloss.NewStyle().Foreground(Border),
	}
}

func plainStyles() styles {
	s := lipgloss.NewStyle()
	return styles{
		title: s, heading: s, dim: s, good: s, bad: s, accent: s,
		barFilled: s, barEmpty: s,
	}
}
