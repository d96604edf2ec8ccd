package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	barFilled = "█"
	barEmpty  = "░"

	truncationMark = ".."
)

// truncateLabel caps a label at width display cells, marking the cut with a
// two-dot suffix. Width is measured in terminal cells, not bytes.
func truncateLabel(label string, width int) string {
	if runewidth.StringWidth(label) <= width {
		return label
	}

	return runewidth.Truncate(label, width, truncationMark)
}

// padRow wraps content in frame borders, padding with spaces so the visible
// row width is exactly width. Padding is computed from the escape-stripped
// width, so color codes inside content never shift the right border.
func padRow(content string, width int) string {
	padding := width - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}

	return "│" + content + strings.Repeat(" ", padding) + "│"
}

// renderBar builds the cell run for a percentage at the given width.
func renderBar(width int, percent float64) string {
	filled := filledCells(width, percent)

	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// barRow renders one metric line: padded label, severity-colored bar and a
// right-aligned value column.
func barRow(plan Layout, label string, value, maxValue float64, invert bool, valueStr string, valueWidth int) string {
	percent := percentOf(value, maxValue)
	bar := TierStyle(TierFor(percent, invert)).Render("│" + renderBar(plan.BarWidth, percent) + "│")

	content := fmt.Sprintf(" %-*s %s %*s",
		plan.LabelWidth, truncateLabel(label, plan.LabelWidth),
		bar,
		valueWidth, valueStr)

	return padRow(content, plan.FrameWidth)
}
