package dashboard

import (
	"fmt"
	"math"
)

const (
	mibPerGiB = 1024

	// Value column widths for single-value and pair-value bar rows.
	barValueWidth  = 10
	pairValueWidth = 16
)

// percentOf converts value/maxValue to a percentage saturated to [0, 100].
// A maximum of zero or less is the "unknown" sentinel and yields 0.
func percentOf(value, maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}

	return clampPercent(value / maxValue * 100)
}

// clampPercent saturates a percentage into [0, 100].
func clampPercent(percent float64) float64 {
	return math.Min(100, math.Max(0, percent))
}

// filledCells converts a percentage to a filled cell count in [0, width],
// rounding down.
func filledCells(width int, percent float64) int {
	return int(float64(width) * clampPercent(percent) / 100)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func formatTemperature(value float64) string {
	return fmt.Sprintf("%.1f°C", value)
}

// formatMemory renders a MiB quantity, switching to GB at 1024.
func formatMemory(mib float64) string {
	if mib < mibPerGiB {
		return fmt.Sprintf("%.0fMB", mib)
	}

	return fmt.Sprintf("%.2fGB", mib/mibPerGiB)
}

func formatMemoryPair(used, total float64) string {
	return formatMemory(used) + "/" + formatMemory(total)
}

func formatPowerPair(draw, limit float64) string {
	return fmt.Sprintf("%.0fW/%.0fW", draw, limit)
}
