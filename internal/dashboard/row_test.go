package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Force TrueColor output in tests so ANSI sequences are deterministic
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		width int
		want  string
	}{
		{"short stays", "GPU 0: A100", 20, "GPU 0: A100"},
		{"exact width stays", "12345678901234567890", 20, "12345678901234567890"},
		{"long is cut with mark", "GPU 0: NVIDIA GeForce RTX 3080 Ti", 20, "GPU 0: NVIDIA GeFo.."},
		{"empty", "", 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateLabel(tt.label, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), tt.width)
		})
	}
}

func TestPadRowWidthInvariance(t *testing.T) {
	const width = 120

	tests := []struct {
		name    string
		content string
	}{
		{"plain", "hello"},
		{"empty", ""},
		{"one style", criticalStyle.Render("ALERT")},
		{"several styles", normalStyle.Render("a") + warningStyle.Render("bb") +
			criticalStyle.Render("c") + boldStyle.Render("d") + dimStyle.Render("e")},
		{"style wrapping spaces", "x " + warningStyle.Render("  mid  ") + " y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := padRow(tt.content, width)
			assert.Equal(t, width, lipgloss.Width(row))
			assert.True(t, strings.HasPrefix(row, "│"))
			assert.True(t, strings.HasSuffix(row, "│"))
		})
	}
}

func TestPadRowStructure(t *testing.T) {
	assert.Equal(t, "│abc     │", padRow("abc", 10))
	assert.Equal(t, "│        │", padRow("", 10))
}

func TestPadRowOverflow(t *testing.T) {
	row := padRow("this content is wider than the row", 10)
	assert.Equal(t, "│this content is wider than the row│", row)
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		percent    float64
		wantFilled int
	}{
		{"empty", 10, 0, 0},
		{"half", 10, 50, 5},
		{"full", 10, 100, 10},
		{"clamped over", 10, 200, 10},
		{"clamped under", 10, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderBar(tt.width, tt.percent)
			assert.Equal(t, tt.wantFilled, strings.Count(bar, barFilled))
			assert.Equal(t, tt.width-tt.wantFilled, strings.Count(bar, barEmpty))
			assert.Equal(t, tt.width, lipgloss.Width(bar))
		})
	}
}

func TestBarRowAlignment(t *testing.T) {
	plan := ComputeLayout(160)

	rows := []string{
		barRow(plan, "GPU 0: Test", 45, 100, true, "45.0°C", barValueWidth),
		barRow(plan, "GPU 1: Test", 92, 100, true, "92.0°C", barValueWidth),
		barRow(plan, "GPU 0: Test", 1000, 8000, false, "1000MB/7.81GB", pairValueWidth),
		barRow(plan, "GPU 0: Test", 140, 150, false, "140W/150W", pairValueWidth),
	}

	for _, row := range rows {
		assert.Equal(t, plan.FrameWidth, lipgloss.Width(row))
	}
}

func TestBarRowTiers(t *testing.T) {
	plan := ComputeLayout(160)

	normal := barRow(plan, "GPU 0: Test", 45, 100, true, "45.0°C", barValueWidth)
	critical := barRow(plan, "GPU 1: Test", 92, 100, true, "92.0°C", barValueWidth)

	assert.Contains(t, normal, "\x1b[92m")
	assert.Contains(t, critical, "\x1b[91m")
}

func TestBarRowZeroMax(t *testing.T) {
	plan := ComputeLayout(160)

	row := barRow(plan, "GPU 0: Test", 500, 0, false, "500MB/0MB", pairValueWidth)
	assert.Equal(t, 0, strings.Count(row, barFilled))
	assert.Equal(t, plan.BarWidth, strings.Count(row, barEmpty))
	assert.Equal(t, plan.FrameWidth, lipgloss.Width(row))
}

func TestBarRowNegativeValue(t *testing.T) {
	plan := ComputeLayout(160)

	row := barRow(plan, "GPU 0: Test", -5, 100, false, "-5.0%", barValueWidth)
	assert.Equal(t, 0, strings.Count(row, barFilled))
	assert.Equal(t, plan.FrameWidth, lipgloss.Width(row))
}

func TestBarRowTruncatesLongLabel(t *testing.T) {
	plan := ComputeLayout(80)

	row := barRow(plan, "GPU 0: NVIDIA GeForce RTX 3080 Ti Founders Edition", 45, 100, false,
		"45.0%", barValueWidth)
	assert.Contains(t, row, truncationMark)
	assert.Equal(t, plan.FrameWidth, lipgloss.Width(row))
}

func TestRowsMonochromeWhenColorDisabled(t *testing.T) {
	DisableColor()
	t.Cleanup(func() {
		lipgloss.SetColorProfile(termenv.TrueColor)
	})

	plan := ComputeLayout(160)
	row := barRow(plan, "GPU 0: Test", 92, 100, true, "92.0°C", barValueWidth)

	assert.NotContains(t, row, "\x1b[")
	assert.Equal(t, plan.FrameWidth, lipgloss.Width(row))
}
