package metrics

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemoryPercent returns virtual memory utilization as a percentage in [0,100].
func MemoryPercent(ctx context.Context) (float64, error) {
	stats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return clampPercent(stats.UsedPercent), nil
}
