//go:build windows

package gpu

import (
	"context"
	"os/exec"

	"syshud/internal/models"
)

// perfCounterStrategy samples the GPU Engine utilization counter through
// PowerShell. Coarsest source but present on any modern Windows install;
// temperature is not exposed through this path.
type perfCounterStrategy struct{}

func newPerfCounterStrategy() Strategy { return perfCounterStrategy{} }

func (perfCounterStrategy) Name() string { return "perf-counter" }

func (perfCounterStrategy) Source() models.GPUSource { return models.GPUSourcePerfCounter }

func (perfCounterStrategy) Read(ctx context.Context) (Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command",
		`(Get-Counter "\GPU Engine(*)\Utilization Percentage").CounterSamples | Select-Object -First 1 | Select-Object -ExpandProperty CookedValue`)
	out, err := cmd.Output()
	if err != nil {
		return Reading{}, err
	}
	util, err := parseCounterValue(string(out))
	if err != nil {
		return Reading{}, err
	}
	return Reading{Utilization: &util}, nil
}
