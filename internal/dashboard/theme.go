package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Severity colors use the bright ANSI traffic-light palette.
const (
	colorNormal   = lipgloss.Color("10")
	colorWarning  = lipgloss.Color("11")
	colorCritical = lipgloss.Color("9")
)

var (
	normalStyle   = lipgloss.NewStyle().Foreground(colorNormal)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	criticalStyle = lipgloss.NewStyle().Foreground(colorCritical)
	boldStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// TierStyle resolves a severity tier to its terminal style.
func TierStyle(tier Tier) lipgloss.Style {
	switch tier {
	case TierCritical:
		return criticalStyle
	case TierWarning:
		return warningStyle
	default:
		return normalStyle
	}
}

// DisableColor forces monochrome output regardless of terminal support.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
