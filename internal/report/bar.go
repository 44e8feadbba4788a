package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// ProgressBar displays a horizontal progress bar with a percentage.
type ProgressBar struct {
	Label   string
	Percent float64 // 0-100
	Width   int     // total width including label and percentage
}

const (
	barFilledRune = "█"
	barEmptyRune  = "░"
	minBarWidth   = 4
)

// cells returns the filled and empty cell counts for a bar of width cells.
func (p ProgressBar) cells(width int) (filled, empty int) {
	filled = int(float64(width) * p.Percent / 100)
	filled = min(max(filled, 0), width)
	return filled, width - filled
}

func (p ProgressBar) render(st styles) string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(p.Label)
		b.WriteString("  ")
	}

	pct := fmt.Sprintf("  %3.0f%%", p.Percent)
	barWidth := max(p.Width-lipgloss.Width(b.String())-len(pct), minBarWidth)

	filled, empty := p.cells(barWidth)
	b.WriteString(st.barFilled.Render(strings.Repeat(barFilledRune, filled)))
	b.WriteString(st.barEmpty.Render(strings.Repeat(barEmptyRune, empty)))
	b.WriteString(st.dim.Render(pct))
	return b.String()
}
