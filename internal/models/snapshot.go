package models

import (
	"fmt"
	"strconv"
	"time"
)

// GPUSource identifies which acquisition strategy produced the GPU fields of
// a Snapshot. It is diagnostic metadata only; consumers render the values the
// same way regardless of origin.
type GPUSource string

const (
	GPUSourceNone          GPUSource = "none"
	GPUSourcePrimaryTool   GPUSource = "nvidia-smi"
	GPUSourceSensorService GPUSource = "hardware-monitor"
	GPUSourcePerfCounter   GPUSource = "perf-counter"
)

// Snapshot captures one complete point-in-time bundle of monitored metrics.
// Optional fields are nil when the backing sensor or tool is unavailable;
// absence is an expected state, not a fault. A Snapshot is immutable once
// published and is superseded by the next sampling tick.
type Snapshot struct {
	CPUPercent     float64   `json:"cpu_percent"`
	CPUTemperature *float64  `json:"cpu_temperature,omitempty"`
	MemoryPercent  float64   `json:"memory_percent"`
	GPUPercent     *float64  `json:"gpu_percent,omitempty"`
	GPUTemperature *float64  `json:"gpu_temperature,omitempty"`
	GPUSource      GPUSource `json:"gpu_source"`
	CapturedAt     time.Time `json:"captured_at"`
}

// Placeholder shown in place of any metric whose source is unavailable.
const Placeholder = "N/A"

// CPUUsageDisplay renders CPU utilization as "NN.N%".
func (s Snapshot) CPUUsageDisplay() string {
	return fmt.Sprintf("%.1f%%", s.CPUPercent)
}

// CPUTempDisplay renders CPU temperature as "NN.N°C", or the placeholder when
// no CPU-labeled sensor channel exists.
func (s Snapshot) CPUTempDisplay() string {
	return tempDisplay(s.CPUTemperature)
}

// MemoryUsageDisplay renders memory utilization as "NN.N%".
func (s Snapshot) MemoryUsageDisplay() string {
	return fmt.Sprintf("%.1f%%", s.MemoryPercent)
}

// GPUUsageDisplay renders GPU utilization with only the precision the source
// reported: "45%" from the vendor tool's integer output, "37.5%" from a
// fractional counter sample. Placeholder when every strategy came up empty.
func (s Snapshot) GPUUsageDisplay() string {
	if s.GPUPercent == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*s.GPUPercent, 'f', -1, 64) + "%"
}

// GPUTempDisplay renders GPU temperature as "NN.N°C" or the placeholder.
func (s Snapshot) GPUTempDisplay() string {
	return tempDisplay(s.GPUTemperature)
}

func tempDisplay(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f°C", *v)
}

// Float returns a pointer to v, for building optional Snapshot fields.
func Float(v float64) *float64 {
	return &v
}
