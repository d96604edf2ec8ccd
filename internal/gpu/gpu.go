package gpu

import (
	"context"

	"codeberg.org/mutker/nvstat/internal/logger"
)

// Sample is one device's readings for a single refresh tick. Values the
// driver cannot report are zero; a zero maximum renders as an empty bar
// rather than an error.
type Sample struct {
	Index       int
	Name        string
	Temperature float64 // degrees Celsius
	MemoryUsed  float64 // MiB
	MemoryTotal float64 // MiB
	UtilGPU     float64 // percent
	UtilMemory  float64 // percent
	PowerDraw   float64 // watts, 0 when unsupported
	PowerLimit  float64 // watts, 0 when unsupported
}

// Source produces device samples on demand
type Source interface {
	// Snapshot reads every visible device. An empty result means no devices,
	// which the dashboard renders as a first-class state.
	Snapshot(ctx context.Context) ([]Sample, error)
	Name() string
	Close() error
}

// Detect returns the preferred available source: NVML when it initializes,
// otherwise the nvidia-smi subprocess fallback.
func Detect(forceSMI bool) Source {
	if !forceSMI {
		src, err := NewNVML()
		if err == nil {
			logger.Info().Msg("Using NVML metrics source")
			return src
		}
		logger.Warn().Err(err).Msg("NVML unavailable, falling back to nvidia-smi")
	}

	logger.Info().Msg("Using nvidia-smi metrics source")

	return NewSMI()
}
