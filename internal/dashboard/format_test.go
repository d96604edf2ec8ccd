package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		maxValue float64
		want     float64
	}{
		{"half", 50, 100, 50},
		{"full", 100, 100, 100},
		{"over full clamps", 150, 100, 100},
		{"negative clamps", -5, 100, 0},
		{"zero max sentinel", 10, 0, 0},
		{"negative max sentinel", 10, -5, 0},
		{"fractional", 1, 3, 100.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentOf(tt.value, tt.maxValue), 1e-9)
		})
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-1))
	assert.Equal(t, 0.0, clampPercent(0))
	assert.Equal(t, 42.5, clampPercent(42.5))
	assert.Equal(t, 100.0, clampPercent(100))
	assert.Equal(t, 100.0, clampPercent(100.1))
}

func TestFilledCells(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		want    int
	}{
		{"empty", 10, 0, 0},
		{"full", 10, 100, 10},
		{"half", 10, 50, 5},
		{"rounds down", 89, 50, 44},
		{"over full clamps", 10, 150, 10},
		{"negative clamps", 10, -20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filledCells(tt.width, tt.percent))
		})
	}
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "0MB", formatMemory(0))
	assert.Equal(t, "512MB", formatMemory(512))
	assert.Equal(t, "1023MB", formatMemory(1023))
	assert.Equal(t, "1.00GB", formatMemory(1024))
	assert.Equal(t, "7.81GB", formatMemory(8000))
	assert.Equal(t, "24.00GB", formatMemory(24576))
}

func TestFormatMemoryPair(t *testing.T) {
	assert.Equal(t, "1000MB/7.81GB", formatMemoryPair(1000, 8000))
	assert.Equal(t, "0MB/0MB", formatMemoryPair(0, 0))
}

func TestFormatPowerPair(t *testing.T) {
	assert.Equal(t, "220W/320W", formatPowerPair(220.4, 320))
	assert.Equal(t, "0W/100W", formatPowerPair(0, 100))
}

func TestFormatScalars(t *testing.T) {
	assert.Equal(t, "35.0%", formatPercent(35))
	assert.Equal(t, "99.9%", formatPercent(99.9))
	assert.Equal(t, "45.0°C", formatTemperature(45))
}
