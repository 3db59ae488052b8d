//go:build windows

package gpu

import (
	"context"
	"time"

	wmi "github.com/StackExchange/wmi"

	"syshud/internal/models"
)

// Namespaces publishing the hardware-monitor Sensor class. OpenHardwareMonitor
// came first; LibreHardwareMonitor is its maintained fork with the same schema.
var hwmonNamespaces = []string{
	`root\OpenHardwareMonitor`,
	`root\LibreHardwareMonitor`,
}

const wmiQueryTimeout = 3 * time.Second

// sensorServiceStrategy queries a running hardware-monitor service over WMI
// for GPU-named temperature and load channels.
type sensorServiceStrategy struct {
	namespaces []string
}

func newSensorServiceStrategy() Strategy {
	return &sensorServiceStrategy{namespaces: hwmonNamespaces}
}

func (s *sensorServiceStrategy) Name() string { return "hardware-monitor" }

func (s *sensorServiceStrategy) Source() models.GPUSource { return models.GPUSourceSensorService }

func (s *sensorServiceStrategy) Read(ctx context.Context) (Reading, error) {
	var lastErr error
	for _, namespace := range s.namespaces {
		reading, err := querySensorNamespace(ctx, namespace)
		if err != nil {
			// Namespace absent means the monitor is not installed; try the
			// next one and report the failure only if none answers.
			lastErr = err
			continue
		}
		if reading.Usable() {
			return reading, nil
		}
	}
	if lastErr != nil {
		return Reading{}, lastErr
	}
	return Reading{}, nil
}

func querySensorNamespace(ctx context.Context, namespace string) (Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, wmiQueryTimeout)
	defer cancel()
	var sensors []hwmonSensor
	q := "SELECT Name, SensorType, Value FROM Sensor"
	if err := wmi.QueryWithContext(ctx, q, &sensors, nil, namespace); err != nil {
		return Reading{}, err
	}
	return matchGPUSensors(sensors), nil
}
