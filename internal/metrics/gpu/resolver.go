// Package gpu resolves GPU utilization and temperature through an ordered
// chain of acquisition strategies. Strategies are tried in decreasing order
// of precision: the vendor diagnostic tool first, then the local hardware
// monitor sensor service, then the OS performance counter subsystem. A
// strategy that fails or yields nothing is skipped and the next one runs;
// no error ever propagates out of Resolve.
package gpu

import (
	"context"
	"math"
	"time"

	"golang.org/x/time/rate"

	"syshud/internal/models"
	"syshud/internal/utils"
)

// toolTimeout bounds each external tool invocation so a wedged process can
// never stall the sampling tick past its budget.
const toolTimeout = 5 * time.Second

// resolveBudget caps one full walk of the chain. The strategies carry their
// own per-call timeouts, but those must not stack: a fully exhausted chain
// still has to finish within two tool invocations' worth of waiting.
const resolveBudget = 2 * toolTimeout

// Reading is the raw result of one strategy attempt. Either field may be nil;
// the perf-counter path, for instance, never learns the temperature.
type Reading struct {
	Utilization *float64
	Temperature *float64
}

// Usable reports whether the reading carries at least one value worth
// stopping the fallback chain for.
func (r Reading) Usable() bool {
	return r.Utilization != nil || r.Temperature != nil
}

// Outcome is the resolver's final answer for one sampling tick, tagged with
// the strategy that produced it (or GPUSourceNone when all were exhausted).
type Outcome struct {
	Utilization *float64
	Temperature *float64
	Source      models.GPUSource
}

// Strategy is one self-contained method of obtaining GPU metrics. Read
// returns an error for any failure mode (tool missing, timeout, malformed
// output, service unavailable); the resolver swallows it and moves on.
type Strategy interface {
	Name() string
	Source() models.GPUSource
	Read(ctx context.Context) (Reading, error)
}

// Resolver walks the strategy chain until one yields usable data.
type Resolver struct {
	strategies []Strategy
	log        *utils.Logger
	diag       *rate.Limiter
}

// NewResolver builds a resolver over the platform's default strategy chain.
// Passing explicit strategies overrides the chain (used by tests and kept in
// priority order by the caller).
func NewResolver(log *utils.Logger, strategies ...Strategy) *Resolver {
	if len(strategies) == 0 {
		strategies = []Strategy{
			newPrimaryToolStrategy(),
			newSensorServiceStrategy(),
			newPerfCounterStrategy(),
		}
	}
	return &Resolver{
		strategies: strategies,
		log:        log,
		// A machine with no GPU tooling fails every strategy every tick;
		// keep the diagnostics informative without flooding the log.
		diag: rate.NewLimiter(rate.Every(time.Minute), 3),
	}
}

// Resolve tries each strategy in order and returns the first usable reading.
// Exhaustion returns a fully absent Outcome, never an error. The whole chain
// shares one deadline: later strategies get whatever budget the earlier ones
// left behind.
func (r *Resolver) Resolve(ctx context.Context) Outcome {
	ctx, cancel := context.WithTimeout(ctx, resolveBudget)
	defer cancel()
	for _, s := range r.strategies {
		reading, err := s.Read(ctx)
		if err != nil {
			r.diagf("GPU strategy %s failed: %v", s.Name(), err)
			continue
		}
		if !reading.Usable() {
			continue
		}
		return Outcome{
			Utilization: clampOptional(reading.Utilization),
			Temperature: reading.Temperature,
			Source:      s.Source(),
		}
	}
	return Outcome{Source: models.GPUSourceNone}
}

func (r *Resolver) diagf(format string, args ...interface{}) {
	if r.log == nil || !r.diag.Allow() {
		return
	}
	r.log.Writef(format, args...)
}

func clampOptional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clamped := clampPercent(*v)
	return &clamped
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
