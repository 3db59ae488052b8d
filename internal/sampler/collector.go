package sampler

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"syshud/internal/metrics"
	"syshud/internal/metrics/gpu"
	"syshud/internal/models"
	"syshud/internal/utils"
)

// Collector produces one fully formed Snapshot per sampling pass. Individual
// source failures surface as absent fields, never as errors.
type Collector interface {
	Collect(ctx context.Context) models.Snapshot
}

// SystemCollector reads the live CPU, memory, and GPU sources.
type SystemCollector struct {
	cpu  *metrics.CPUSource
	gpu  *gpu.Resolver
	log  *utils.Logger
	diag *rate.Limiter
}

// NewSystemCollector wires the default sources and the GPU fallback chain.
func NewSystemCollector(log *utils.Logger) *SystemCollector {
	return &SystemCollector{
		cpu:  metrics.NewCPUSource(),
		gpu:  gpu.NewResolver(log),
		log:  log,
		diag: rate.NewLimiter(rate.Every(time.Minute), 3),
	}
}

// Collect assembles a Snapshot from whatever sources answer. CPU and memory
// utilization default to zero on failure; temperature and GPU fields stay
// absent.
func (c *SystemCollector) Collect(ctx context.Context) models.Snapshot {
	snap := models.Snapshot{GPUSource: models.GPUSourceNone}

	if pct, err := c.cpu.Percent(ctx); err == nil {
		snap.CPUPercent = pct
	} else {
		c.diagf("CPU utilization read failed: %v", err)
	}

	if temp, err := metrics.CPUTemperature(ctx); err == nil {
		snap.CPUTemperature = temp
	} else {
		c.diagf("CPU temperature read failed: %v", err)
	}

	if pct, err := metrics.MemoryPercent(ctx); err == nil {
		snap.MemoryPercent = pct
	} else {
		c.diagf("memory read failed: %v", err)
	}

	outcome := c.gpu.Resolve(ctx)
	snap.GPUPercent = outcome.Utilization
	snap.GPUTemperature = outcome.Temperature
	snap.GPUSource = outcome.Source

	snap.CapturedAt = time.Now()
	return snap
}

func (c *SystemCollector) diagf(format string, args ...interface{}) {
	if c.log == nil || !c.diag.Allow() {
		return
	}
	c.log.Writef(format, args...)
}
