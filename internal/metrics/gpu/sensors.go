package gpu

import "strings"

// hwmonSensor mirrors the Sensor class published by OpenHardwareMonitor and
// LibreHardwareMonitor under their WMI namespaces. Field names must match the
// WMI property names for struct-based unmarshaling.
type hwmonSensor struct {
	Name       string
	SensorType string
	Value      float32
}

// matchGPUSensors selects the first GPU-named channel of each of the
// Temperature and Load sensor types. Channel names are matched
// case-insensitively; a monitor with no GPU channels yields an unusable
// Reading so the resolver falls through to the next strategy.
func matchGPUSensors(list []hwmonSensor) Reading {
	var reading Reading
	for _, sensor := range list {
		if !strings.Contains(strings.ToLower(sensor.Name), "gpu") {
			continue
		}
		kind := strings.ToLower(sensor.SensorType)
		switch {
		case reading.Temperature == nil && strings.Contains(kind, "temperature"):
			temp := float64(sensor.Value)
			reading.Temperature = &temp
		case reading.Utilization == nil && strings.Contains(kind, "load"):
			util := float64(sensor.Value)
			reading.Utilization = &util
		}
		if reading.Temperature != nil && reading.Utilization != nil {
			break
		}
	}
	return reading
}
