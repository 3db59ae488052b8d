package metrics

import (
	"context"
	"testing"

	"github.com/shirou/gopsutil/v4/sensors"
)

func TestClampPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{150, 100},
	}
	for _, c := range cases {
		if got := clampPercent(c.in); got != c.want {
			t.Fatalf("clampPercent(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCPUSourceFirstReadReportsZero(t *testing.T) {
	src := NewCPUSource()
	pct, err := src.Percent(context.Background())
	if err != nil {
		t.Skipf("cpu counters unavailable in this environment: %v", err)
	}
	if pct != 0 {
		t.Fatalf("first read should have no prior sample, got %v", pct)
	}
}

func TestCPUSourceDeltaMath(t *testing.T) {
	// Drive the delta computation directly via internal state.
	src := &CPUSource{lastTotal: 1000, lastIdle: 800}
	deltaTotal := 1100.0 - src.lastTotal
	deltaIdle := 850.0 - src.lastIdle
	used := deltaTotal - deltaIdle
	if got := clampPercent((used / deltaTotal) * 100); got != 50 {
		t.Fatalf("expected 50%% busy, got %v", got)
	}
}

func TestPickCPUChannel(t *testing.T) {
	stats := []sensors.TemperatureStat{
		{SensorKey: "acpitz", Temperature: 30},
		{SensorKey: "coretemp_core_0", Temperature: 55.5},
		{SensorKey: "cpu_thermal", Temperature: 60},
	}
	temp := pickCPUChannel(stats)
	if temp == nil {
		t.Fatal("expected a CPU channel match")
	}
	// First matching channel wins.
	if *temp != 55.5 {
		t.Fatalf("expected first match 55.5, got %v", *temp)
	}
}

func TestPickCPUChannelCaseInsensitive(t *testing.T) {
	stats := []sensors.TemperatureStat{{SensorKey: "CPU Package", Temperature: 47}}
	temp := pickCPUChannel(stats)
	if temp == nil || *temp != 47 {
		t.Fatalf("expected 47, got %v", temp)
	}
}

func TestPickCPUChannelAbsent(t *testing.T) {
	stats := []sensors.TemperatureStat{
		{SensorKey: "nvme_composite", Temperature: 38},
		{SensorKey: "ambient", Temperature: 24},
	}
	if temp := pickCPUChannel(stats); temp != nil {
		t.Fatalf("expected no match, got %v", *temp)
	}
}
