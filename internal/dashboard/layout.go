package dashboard

// Frame width bounds. Narrower terminals still render at MinWidth and let
// the terminal wrap; wider ones cap at PreferredWidth.
const (
	MinWidth       = 80
	PreferredWidth = 160

	// rowOverhead is the fixed per-row cost: frame borders, padding, bar
	// borders and the widest value column.
	rowOverhead = 24

	maxLabelWidth = 50
	minBarWidth   = 20

	gaugeOverhead = 20
	maxGaugeWidth = 50
)

// Layout is the frame geometry derived from one terminal width.
type Layout struct {
	FrameWidth int
	LabelWidth int
	BarWidth   int
	GaugeWidth int
}

// ComputeLayout derives frame geometry from the terminal width. Labels take
// up to a third of the space left after fixed overhead; bars get the
// remainder but never fewer than minBarWidth cells.
func ComputeLayout(terminalWidth int) Layout {
	frameWidth := min(max(terminalWidth, MinWidth), PreferredWidth)
	labelWidth := min(maxLabelWidth, (frameWidth-rowOverhead)/3)
	barWidth := max(minBarWidth, frameWidth-rowOverhead-labelWidth-2)
	gaugeWidth := min(maxGaugeWidth, (frameWidth-gaugeOverhead)/2)

	return Layout{
		FrameWidth: frameWidth,
		LabelWidth: labelWidth,
		BarWidth:   barWidth,
		GaugeWidth: gaugeWidth,
	}
}
