package metrics

import (
	"context"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUSource reads instantaneous CPU utilization from aggregate jiffy counters.
// Utilization is computed from the delta against the previous read, so the
// first call after construction reports 0 and every later call reflects the
// interval since the prior tick.
type CPUSource struct {
	lastTotal float64
	lastIdle  float64
}

// NewCPUSource creates a CPU utilization source with no prior sample.
func NewCPUSource() *CPUSource {
	return &CPUSource{}
}

// Percent returns aggregate CPU busy time as a percentage in [0,100].
func (s *CPUSource) Percent(ctx context.Context) (float64, error) {
	stats, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(stats) == 0 {
		return 0, nil
	}
	total := cpuTotal(stats[0])
	idle := stats[0].Idle + stats[0].Iowait

	deltaTotal := total - s.lastTotal
	deltaIdle := idle - s.lastIdle
	hasPrev := s.lastTotal > 0
	s.lastTotal = total
	s.lastIdle = idle

	if !hasPrev || deltaTotal <= 0 {
		return 0, nil
	}
	used := deltaTotal - deltaIdle
	if used < 0 {
		used = 0
	}
	return clampPercent((used / deltaTotal) * 100), nil
}

func cpuTotal(stat cpu.TimesStat) float64 {
	return stat.User + stat.System + stat.Nice + stat.Idle + stat.Iowait +
		stat.Irq + stat.Softirq + stat.Steal + stat.Guest + stat.GuestNice
}

func clampPercent(val float64) float64 {
	if math.IsNaN(val) || val < 0 {
		return 0
	}
	if val > 100 {
		return 100
	}
	return val
}
