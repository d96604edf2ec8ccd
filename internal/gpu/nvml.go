package gpu

import (
	"context"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/logger"
)

const (
	milliWattsToWatts = 1000
	bytesPerMiB       = 1024 * 1024
)

type nvmlDevice struct {
	index  int
	handle nvml.Device
}

type nvmlSource struct {
	devices []nvmlDevice
}

// NewNVML initializes NVML and caches a handle for every visible device.
func NewNVML() (Source, error) {
	errFactory := errors.New()

	if ret := nvml.Init(); !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrInitFailed, newNVMLError(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if !IsNVMLSuccess(ret) {
		_ = nvml.Shutdown()
		return nil, errFactory.Wrap(ErrDeviceCountFailed, newNVMLError(ret))
	}

	devices := make([]nvmlDevice, 0, count)
	for i := 0; i < count; i++ {
		handle, ret := nvml.DeviceGetHandleByIndex(i)
		if !IsNVMLSuccess(ret) {
			logger.Warn().Msgf("Failed to get handle for GPU %d: %v", i, nvml.ErrorString(ret))
			continue
		}
		devices = append(devices, nvmlDevice{index: i, handle: handle})
	}

	if count > 0 && len(devices) == 0 {
		_ = nvml.Shutdown()
		return nil, errFactory.WithMessage(ErrDeviceNotFound, "no NVML device handle could be opened")
	}

	logger.Debug().Msgf("NVML initialized with %d devices", len(devices))

	return &nvmlSource{devices: devices}, nil
}

func (s *nvmlSource) Name() string {
	return "nvml"
}

func (s *nvmlSource) Snapshot(ctx context.Context) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.New().Wrap(ErrQueryFailed, err)
	}

	samples := make([]Sample, 0, len(s.devices))
	for _, dev := range s.devices {
		samples = append(samples, readDevice(dev))
	}

	return samples, nil
}

// readDevice reads all metrics for one device. Individual read failures
// leave the zero value in place.
func readDevice(dev nvmlDevice) Sample {
	sample := Sample{Index: dev.index}

	if name, ret := dev.handle.GetName(); IsNVMLSuccess(ret) {
		sample.Name = name
	}

	if temp, ret := dev.handle.GetTemperature(nvml.TEMPERATURE_GPU); IsNVMLSuccess(ret) {
		sample.Temperature = float64(temp)
	}

	if mem, ret := dev.handle.GetMemoryInfo(); IsNVMLSuccess(ret) {
		sample.MemoryUsed = float64(mem.Used) / bytesPerMiB
		sample.MemoryTotal = float64(mem.Total) / bytesPerMiB
	}

	if util, ret := dev.handle.GetUtilizationRates(); IsNVMLSuccess(ret) {
		sample.UtilGPU = float64(util.Gpu)
		sample.UtilMemory = float64(util.Memory)
	}

	if power, ret := dev.handle.GetPowerUsage(); IsNVMLSuccess(ret) {
		sample.PowerDraw = float64(power) / milliWattsToWatts
	}

	if limit, ret := dev.handle.GetPowerManagementLimit(); IsNVMLSuccess(ret) {
		sample.PowerLimit = float64(limit) / milliWattsToWatts
	}

	return sample
}

func (s *nvmlSource) Close() error {
	if ret := nvml.Shutdown(); !IsNVMLSuccess(ret) {
		return errors.New().Wrap(ErrShutdownFailed, newNVMLError(ret))
	}

	return nil
}
