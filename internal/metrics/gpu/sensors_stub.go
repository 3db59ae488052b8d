//go:build !windows

package gpu

import (
	"context"

	"syshud/internal/models"
)

// sensorServiceStrategy is Windows-only; the hardware-monitor services it
// queries do not exist elsewhere, so the strategy yields no data and the
// resolver moves on.
type sensorServiceStrategy struct{}

func newSensorServiceStrategy() Strategy { return sensorServiceStrategy{} }

func (sensorServiceStrategy) Name() string { return "hardware-monitor" }

func (sensorServiceStrategy) Source() models.GPUSource { return models.GPUSourceSensorService }

func (sensorServiceStrategy) Read(ctx context.Context) (Reading, error) {
	return Reading{}, nil
}
