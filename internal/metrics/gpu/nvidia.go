package gpu

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"syshud/internal/models"
)

// primaryToolStrategy shells out to nvidia-smi for utilization and
// temperature in one query. Most precise source, only present on machines
// with the NVIDIA driver stack installed.
type primaryToolStrategy struct {
	path string
}

func newPrimaryToolStrategy() *primaryToolStrategy {
	return &primaryToolStrategy{path: "nvidia-smi"}
}

func (s *primaryToolStrategy) Name() string { return "nvidia-smi" }

func (s *primaryToolStrategy) Source() models.GPUSource { return models.GPUSourcePrimaryTool }

func (s *primaryToolStrategy) Read(ctx context.Context) (Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, s.path,
		"--query-gpu=utilization.gpu,temperature.gpu",
		"--format=csv,noheader,nounits")
	out, err := cmd.Output()
	if err != nil {
		// Covers the tool being absent, a nonzero exit, and the timeout kill.
		return Reading{}, err
	}
	return parseSMIOutput(string(out))
}

// parseSMIOutput extracts the first data row where both the utilization and
// temperature columns parse as numbers. Multi-GPU systems report one row per
// device; the first well-formed row (GPU index 0) wins.
func parseSMIOutput(out string) (Reading, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		util, errU := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		temp, errT := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if errU != nil || errT != nil {
			continue
		}
		return Reading{Utilization: &util, Temperature: &temp}, nil
	}
	if strings.TrimSpace(out) == "" {
		return Reading{}, errors.New("nvidia-smi produced no output")
	}
	return Reading{}, fmt.Errorf("nvidia-smi output had no parseable data row: %q", strings.TrimSpace(out))
}
