package dashboard

import (
	"fmt"
	"strings"
)

// gaugeBlock renders a titled gauge: a bold title row, then the bar boxed in
// double-line borders with its value alongside. Returns four framed rows.
// An empty unit shows the percentage instead of the raw value.
func gaugeBlock(plan Layout, title string, value, maxValue float64, unit string, invert bool, extra string) []string {
	percent := percentOf(value, maxValue)
	style := TierStyle(TierFor(percent, invert))

	valueStr := formatPercent(percent)
	if unit != "" {
		valueStr = fmt.Sprintf("%.1f%s", value, unit)
	}
	if extra != "" {
		valueStr += "  " + extra
	}

	top := "╔" + strings.Repeat("═", plan.GaugeWidth) + "╗"
	middle := "║" + renderBar(plan.GaugeWidth, percent) + "║"
	bottom := "╚" + strings.Repeat("═", plan.GaugeWidth) + "╝"

	return []string{
		padRow("  "+boldStyle.Render(title), plan.FrameWidth),
		padRow("    "+top, plan.FrameWidth),
		padRow("    "+style.Render(middle)+"  "+valueStr, plan.FrameWidth),
		padRow("    "+bottom, plan.FrameWidth),
	}
}
