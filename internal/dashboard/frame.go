// Package dashboard renders GPU samples into fixed-width terminal frames.
// Frame production is pure string building; terminal control (clearing,
// cursor, size probing) belongs to the caller.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/mutker/nvstat/internal/gpu"
)

const (
	frameTitle      = "NVSTAT - GPU Monitor"
	footerHint      = "Press Ctrl+C to exit"
	noDevicesNotice = "⚠️  No GPUs detected or driver not available"
	timestampFormat = "2006-01-02 15:04:05"
)

// TerminalSize is the geometry reported by the driver. Columns drives the
// layout; Rows only appears in the banner.
type TerminalSize struct {
	Columns int
	Rows    int
}

// Totals are the cross-device aggregates shown in the TOTALS section.
type Totals struct {
	MemoryUsed     float64 // MiB
	MemoryTotal    float64 // MiB
	PowerDraw      float64 // W
	PowerLimit     float64 // W
	AvgUtilization float64 // percent
	AvgTemperature float64 // degrees Celsius
}

// Aggregate sums memory and power across samples and averages utilization
// and temperature. Returns the zero value for an empty slice.
func Aggregate(samples []gpu.Sample) Totals {
	if len(samples) == 0 {
		return Totals{}
	}

	var totals Totals
	for _, s := range samples {
		totals.MemoryUsed += s.MemoryUsed
		totals.MemoryTotal += s.MemoryTotal
		totals.PowerDraw += s.PowerDraw
		totals.PowerLimit += s.PowerLimit
		totals.AvgUtilization += s.UtilGPU
		totals.AvgTemperature += s.Temperature
	}

	count := float64(len(samples))
	totals.AvgUtilization /= count
	totals.AvgTemperature /= count

	return totals
}

// ComposeFrame renders one complete dashboard frame, trailing newline
// included. It is a pure function of its inputs.
func ComposeFrame(samples []gpu.Sample, size TerminalSize, now time.Time, refresh time.Duration) string {
	plan := ComputeLayout(size.Columns)
	banner := strings.Repeat("═", plan.FrameWidth)

	var b strings.Builder
	b.WriteString(boldStyle.Render(banner) + "\n")
	fmt.Fprintf(&b, "  %s  │  %s  │  Terminal: %dx%d\n",
		frameTitle, now.Format(timestampFormat), size.Columns, size.Rows)
	b.WriteString(boldStyle.Render(banner) + "\n")

	if len(samples) == 0 {
		b.WriteString("\n" + noDevicesNotice + "\n")
		b.WriteString("\n" + banner + "\n")

		return b.String()
	}

	writeSection(&b, plan, "TEMPERATURE", temperatureRows(plan, samples))
	writeSection(&b, plan, "GPU UTILIZATION", utilizationRows(plan, samples))
	writeSection(&b, plan, "MEMORY USAGE", memoryRows(plan, samples))
	writeSection(&b, plan, "POWER USAGE", powerRows(plan, samples))
	writeSection(&b, plan, "TOTALS", totalsRows(plan, Aggregate(samples)))

	b.WriteString("\n" + banner + "\n")
	b.WriteString(dimStyle.Render(footerHint+"  │  Refresh: "+refresh.String()) + "\n")
	b.WriteString(banner + "\n")

	return b.String()
}

func writeSection(b *strings.Builder, plan Layout, title string, rows []string) {
	b.WriteString("\n")
	for _, line := range section(plan, title, rows) {
		b.WriteString(line + "\n")
	}
}

func deviceLabel(s gpu.Sample) string {
	return fmt.Sprintf("GPU %d: %s", s.Index, s.Name)
}

func temperatureRows(plan Layout, samples []gpu.Sample) []string {
	rows := make([]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, barRow(plan, deviceLabel(s), s.Temperature, 100, true,
			formatTemperature(s.Temperature), barValueWidth))
	}

	return rows
}

func utilizationRows(plan Layout, samples []gpu.Sample) []string {
	rows := make([]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, barRow(plan, deviceLabel(s), s.UtilGPU, 100, false,
			formatPercent(s.UtilGPU), barValueWidth))
	}

	return rows
}

func memoryRows(plan Layout, samples []gpu.Sample) []string {
	rows := make([]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, barRow(plan, deviceLabel(s), s.MemoryUsed, s.MemoryTotal, false,
			formatMemoryPair(s.MemoryUsed, s.MemoryTotal), pairValueWidth))
	}

	return rows
}

// powerRows substitutes a 100W scale for devices that report no limit, and
// the value column shows the substituted maximum.
func powerRows(plan Layout, samples []gpu.Sample) []string {
	rows := make([]string, 0, len(samples))
	for _, s := range samples {
		maxValue := s.PowerLimit
		if maxValue <= 0 {
			maxValue = 100
		}
		rows = append(rows, barRow(plan, deviceLabel(s), s.PowerDraw, maxValue, false,
			formatPowerPair(s.PowerDraw, maxValue), pairValueWidth))
	}

	return rows
}

func totalsRows(plan Layout, totals Totals) []string {
	blank := padRow("", plan.FrameWidth)

	memExtra := fmt.Sprintf("(%s / %s)",
		formatMemory(totals.MemoryUsed), formatMemory(totals.MemoryTotal))
	powerExtra := fmt.Sprintf("(%.0fW / %.0fW)", totals.PowerDraw, totals.PowerLimit)

	rows := []string{blank}
	rows = append(rows, gaugeBlock(plan, "Total VRAM",
		totals.MemoryUsed, totals.MemoryTotal, "", false, memExtra)...)
	rows = append(rows, blank)
	rows = append(rows, gaugeBlock(plan, "Average GPU Utilization",
		totals.AvgUtilization, 100, "%", false, "")...)
	rows = append(rows, blank)
	rows = append(rows, gaugeBlock(plan, "Total Power Draw",
		totals.PowerDraw, totals.PowerLimit, "W", false, powerExtra)...)
	rows = append(rows, blank)
	rows = append(rows, gaugeBlock(plan, "Average Temperature",
		totals.AvgTemperature, 100, "°C", true, "")...)
	rows = append(rows, blank)

	return rows
}
