package metrics

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// CPUTemperature scans the exposed sensor channels for one whose key suggests
// a CPU or core origin and returns its reading in °C. A nil result means no
// such channel exists on this machine, which is an expected state rather than
// an error; only the sensor subsystem failing outright returns one.
func CPUTemperature(ctx context.Context) (*float64, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return pickCPUChannel(stats), nil
}

func pickCPUChannel(stats []sensors.TemperatureStat) *float64 {
	for _, stat := range stats {
		if !isCPUChannel(stat.SensorKey) {
			continue
		}
		temp := stat.Temperature
		return &temp
	}
	return nil
}

func isCPUChannel(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "cpu") || strings.Contains(lower, "core")
}
