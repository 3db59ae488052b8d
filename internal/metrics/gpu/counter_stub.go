//go:build !windows

package gpu

import (
	"context"

	"syshud/internal/models"
)

// perfCounterStrategy relies on the Windows performance-counter subsystem;
// elsewhere it yields no data.
type perfCounterStrategy struct{}

func newPerfCounterStrategy() Strategy { return perfCounterStrategy{} }

func (perfCounterStrategy) Name() string { return "perf-counter" }

func (perfCounterStrategy) Source() models.GPUSource { return models.GPUSourcePerfCounter }

func (perfCounterStrategy) Read(ctx context.Context) (Reading, error) {
	return Reading{}, nil
}
