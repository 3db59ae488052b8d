package gpu

import (
	"context"
	"errors"
	"testing"
	"time"

	"syshud/internal/models"
)

type fakeStrategy struct {
	name    string
	source  models.GPUSource
	reading Reading
	err     error
	calls   int
}

func (f *fakeStrategy) Name() string             { return f.name }
func (f *fakeStrategy) Source() models.GPUSource { return f.source }
func (f *fakeStrategy) Read(ctx context.Context) (Reading, error) {
	f.calls++
	return f.reading, f.err
}

func reading(util, temp float64) Reading {
	return Reading{Utilization: &util, Temperature: &temp}
}

func TestResolveStopsAtFirstUsableStrategy(t *testing.T) {
	primary := &fakeStrategy{name: "primary", source: models.GPUSourcePrimaryTool, reading: reading(45, 62)}
	fallback := &fakeStrategy{name: "fallback", source: models.GPUSourceSensorService, reading: reading(10, 30)}

	outcome := NewResolver(nil, primary, fallback).Resolve(context.Background())

	if outcome.Source != models.GPUSourcePrimaryTool {
		t.Fatalf("expected primary source, got %s", outcome.Source)
	}
	if outcome.Utilization == nil || *outcome.Utilization != 45 {
		t.Fatalf("unexpected utilization: %v", outcome.Utilization)
	}
	if outcome.Temperature == nil || *outcome.Temperature != 62 {
		t.Fatalf("unexpected temperature: %v", outcome.Temperature)
	}
	if fallback.calls != 0 {
		t.Fatalf("lower-priority strategy was invoked %d times", fallback.calls)
	}
}

func TestResolveFallsThroughFailures(t *testing.T) {
	util := 37.5
	chain := []Strategy{
		&fakeStrategy{name: "primary", source: models.GPUSourcePrimaryTool, err: errors.New("tool not found")},
		&fakeStrategy{name: "sensors", source: models.GPUSourceSensorService, err: errors.New("namespace absent")},
		&fakeStrategy{name: "counter", source: models.GPUSourcePerfCounter, reading: Reading{Utilization: &util}},
	}

	outcome := NewResolver(nil, chain...).Resolve(context.Background())

	if outcome.Source != models.GPUSourcePerfCounter {
		t.Fatalf("expected perf-counter source, got %s", outcome.Source)
	}
	if outcome.Utilization == nil || *outcome.Utilization != 37.5 {
		t.Fatalf("unexpected utilization: %v", outcome.Utilization)
	}
	if outcome.Temperature != nil {
		t.Fatalf("perf counter cannot report temperature, got %v", *outcome.Temperature)
	}
}

func TestResolveSkipsEmptyReadings(t *testing.T) {
	empty := &fakeStrategy{name: "sensors", source: models.GPUSourceSensorService}
	counter := &fakeStrategy{name: "counter", source: models.GPUSourcePerfCounter, reading: Reading{Utilization: models.Float(12)}}

	outcome := NewResolver(nil, empty, counter).Resolve(context.Background())

	if outcome.Source != models.GPUSourcePerfCounter {
		t.Fatalf("empty reading should not stop the chain, got %s", outcome.Source)
	}
}

func TestResolveExhaustionYieldsAbsence(t *testing.T) {
	chain := []Strategy{
		&fakeStrategy{name: "primary", source: models.GPUSourcePrimaryTool, err: errors.New("timeout")},
		&fakeStrategy{name: "sensors", source: models.GPUSourceSensorService, err: errors.New("access denied")},
		&fakeStrategy{name: "counter", source: models.GPUSourcePerfCounter, err: errors.New("exit status 1")},
	}

	outcome := NewResolver(nil, chain...).Resolve(context.Background())

	if outcome.Source != models.GPUSourceNone {
		t.Fatalf("expected none source, got %s", outcome.Source)
	}
	if outcome.Utilization != nil || outcome.Temperature != nil {
		t.Fatal("exhausted resolver must report fully absent values")
	}
}

type deadlineStrategy struct {
	fakeStrategy
	deadline time.Time
	bounded  bool
}

func (d *deadlineStrategy) Read(ctx context.Context) (Reading, error) {
	d.deadline, d.bounded = ctx.Deadline()
	return Reading{}, errors.New("unavailable")
}

func TestResolveSharesOneDeadlineAcrossChain(t *testing.T) {
	first := &deadlineStrategy{fakeStrategy: fakeStrategy{name: "primary", source: models.GPUSourcePrimaryTool}}
	second := &deadlineStrategy{fakeStrategy: fakeStrategy{name: "sensors", source: models.GPUSourceSensorService}}
	third := &deadlineStrategy{fakeStrategy: fakeStrategy{name: "counter", source: models.GPUSourcePerfCounter}}

	start := time.Now()
	NewResolver(nil, first, second, third).Resolve(context.Background())

	for _, s := range []*deadlineStrategy{first, second, third} {
		if !s.bounded {
			t.Fatalf("strategy %s ran without a deadline", s.name)
		}
		if budget := s.deadline.Sub(start); budget > resolveBudget {
			t.Fatalf("strategy %s got %v of budget, cap is %v", s.name, budget, resolveBudget)
		}
	}
	// One deadline for the walk, not a fresh budget per strategy.
	if !first.deadline.Equal(second.deadline) || !second.deadline.Equal(third.deadline) {
		t.Fatalf("deadlines diverge: %v / %v / %v", first.deadline, second.deadline, third.deadline)
	}
}

func TestResolveKeepsTighterCallerDeadline(t *testing.T) {
	s := &deadlineStrategy{fakeStrategy: fakeStrategy{name: "primary", source: models.GPUSourcePrimaryTool}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	NewResolver(nil, s).Resolve(ctx)

	if !s.bounded {
		t.Fatal("strategy ran without a deadline")
	}
	if budget := s.deadline.Sub(start); budget > 50*time.Millisecond {
		t.Fatalf("caller's deadline was loosened to %v", budget)
	}
}

func TestResolveClampsUtilization(t *testing.T) {
	over := &fakeStrategy{name: "counter", source: models.GPUSourcePerfCounter, reading: Reading{Utilization: models.Float(104.2)}}

	outcome := NewResolver(nil, over).Resolve(context.Background())

	if outcome.Utilization == nil || *outcome.Utilization != 100 {
		t.Fatalf("expected clamp to 100, got %v", outcome.Utilization)
	}
}
