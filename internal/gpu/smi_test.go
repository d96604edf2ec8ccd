package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSMIOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []Sample
	}{
		{
			name:   "single device",
			output: "0, NVIDIA GeForce RTX 3080, 45, 2048, 10240, 35, 12, 220.50, 320.00",
			want: []Sample{
				{
					Index:       0,
					Name:        "NVIDIA GeForce RTX 3080",
					Temperature: 45,
					MemoryUsed:  2048,
					MemoryTotal: 10240,
					UtilGPU:     35,
					UtilMemory:  12,
					PowerDraw:   220.5,
					PowerLimit:  320,
				},
			},
		},
		{
			name: "multiple devices",
			output: "0, NVIDIA A100, 62, 32768, 40960, 98, 74, 350.00, 400.00\n" +
				"1, NVIDIA A100, 58, 1024, 40960, 3, 1, 61.25, 400.00",
			want: []Sample{
				{
					Index:       0,
					Name:        "NVIDIA A100",
					Temperature: 62,
					MemoryUsed:  32768,
					MemoryTotal: 40960,
					UtilGPU:     98,
					UtilMemory:  74,
					PowerDraw:   350,
					PowerLimit:  400,
				},
				{
					Index:       1,
					Name:        "NVIDIA A100",
					Temperature: 58,
					MemoryUsed:  1024,
					MemoryTotal: 40960,
					UtilGPU:     3,
					UtilMemory:  1,
					PowerDraw:   61.25,
					PowerLimit:  400,
				},
			},
		},
		{
			name:   "power not available",
			output: "0, NVIDIA Tesla T4, 30, 1024, 16384, 10, 5, [N/A], [N/A]",
			want: []Sample{
				{
					Index:       0,
					Name:        "NVIDIA Tesla T4",
					Temperature: 30,
					MemoryUsed:  1024,
					MemoryTotal: 16384,
					UtilGPU:     10,
					UtilMemory:  5,
					PowerDraw:   0,
					PowerLimit:  0,
				},
			},
		},
		{
			name:   "extra whitespace",
			output: "  0 ,  NVIDIA GeForce RTX 3070 ,  58  ,  4096  ,  8192  ,  35  ,  20  ,  125.00  ,  220.00  ",
			want: []Sample{
				{
					Index:       0,
					Name:        "NVIDIA GeForce RTX 3070",
					Temperature: 58,
					MemoryUsed:  4096,
					MemoryTotal: 8192,
					UtilGPU:     35,
					UtilMemory:  20,
					PowerDraw:   125,
					PowerLimit:  220,
				},
			},
		},
		{
			name: "malformed line skipped",
			output: "0, NVIDIA GeForce RTX 3080, 45, 2048, 10240, 35, 12, 220.50, 320.00\n" +
				"garbage line without fields\n" +
				"1, NVIDIA GeForce RTX 3080, not-a-number, 2048, 10240, 35, 12, 220.50, 320.00",
			want: []Sample{
				{
					Index:       0,
					Name:        "NVIDIA GeForce RTX 3080",
					Temperature: 45,
					MemoryUsed:  2048,
					MemoryTotal: 10240,
					UtilGPU:     35,
					UtilMemory:  12,
					PowerDraw:   220.5,
					PowerLimit:  320,
				},
			},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "driver error banner",
			output: "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSMIOutput(tt.output)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSMIFloat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		optional bool
		want     float64
		wantErr  bool
	}{
		{name: "plain number", raw: "42.5", want: 42.5},
		{name: "bracketed NA optional", raw: "[N/A]", optional: true, want: 0},
		{name: "bare NA optional", raw: "N/A", optional: true, want: 0},
		{name: "empty optional", raw: "", optional: true, want: 0},
		{name: "bracketed NA required", raw: "[N/A]", wantErr: true},
		{name: "garbage", raw: "watts", optional: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSMIFloat(tt.raw, tt.optional)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
