package gpu

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/logger"
)

const (
	smiBinary      = "nvidia-smi"
	smiQueryFields = "index,name,temperature.gpu,memory.used,memory.total," +
		"utilization.gpu,utilization.memory,power.draw,power.limit"
	smiFieldCount = 9
)

type smiSource struct{}

// NewSMI returns the nvidia-smi subprocess source. Construction never fails;
// a missing binary surfaces as a Snapshot error.
func NewSMI() Source {
	return &smiSource{}
}

func (s *smiSource) Name() string {
	return "nvidia-smi"
}

func (s *smiSource) Snapshot(ctx context.Context) ([]Sample, error) {
	cmd := exec.CommandContext(ctx, smiBinary,
		"--query-gpu="+smiQueryFields,
		"--format=csv,noheader,nounits")

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.New().Wrap(ErrQueryFailed, err)
	}

	return parseSMIOutput(string(out)), nil
}

func (s *smiSource) Close() error {
	return nil
}

// parseSMIOutput parses csv,noheader,nounits query output. Malformed lines
// are skipped; power fields tolerate the [N/A] placeholder.
func parseSMIOutput(out string) []Sample {
	var samples []Sample

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < smiFieldCount {
			logger.Debug().Msgf("Skipping malformed nvidia-smi line: %q", line)
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		sample, err := parseSMILine(fields)
		if err != nil {
			logger.Debug().Err(err).Msgf("Skipping malformed nvidia-smi line: %q", line)
			continue
		}
		samples = append(samples, sample)
	}

	return samples
}

func parseSMILine(fields []string) (Sample, error) {
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return Sample{}, err
	}

	sample := Sample{Index: index, Name: fields[1]}

	numeric := []struct {
		dst      *float64
		raw      string
		optional bool
	}{
		{&sample.Temperature, fields[2], false},
		{&sample.MemoryUsed, fields[3], false},
		{&sample.MemoryTotal, fields[4], false},
		{&sample.UtilGPU, fields[5], false},
		{&sample.UtilMemory, fields[6], false},
		{&sample.PowerDraw, fields[7], true},
		{&sample.PowerLimit, fields[8], true},
	}

	for _, field := range numeric {
		value, err := parseSMIFloat(field.raw, field.optional)
		if err != nil {
			return Sample{}, err
		}
		*field.dst = value
	}

	return sample, nil
}

// parseSMIFloat converts one numeric field. Optional fields (power on boards
// without sensors) report [N/A], which maps to zero.
func parseSMIFloat(raw string, optional bool) (float64, error) {
	if optional && (raw == "" || raw == "N/A" || raw == "[N/A]") {
		return 0, nil
	}

	return strconv.ParseFloat(raw, 64)
}
