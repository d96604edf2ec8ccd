package dashboard

// Severity thresholds in percent. Inverted metrics (temperature) use the
// lower pair.
const (
	warningThreshold          = 70.0
	criticalThreshold         = 90.0
	invertedWarningThreshold  = 60.0
	invertedCriticalThreshold = 80.0
)

// Tier classifies a percentage for severity coloring.
type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierCritical
)

// TierFor maps a percentage to its severity tier. Thresholds are strict:
// the boundary value itself stays in the lower tier.
func TierFor(percent float64, invert bool) Tier {
	warning, critical := warningThreshold, criticalThreshold
	if invert {
		warning, critical = invertedWarningThreshold, invertedCriticalThreshold
	}

	switch {
	case percent > critical:
		return TierCritical
	case percent > warning:
		return TierWarning
	default:
		return TierNormal
	}
}
