package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/graphplay/engine/clock"
)

const tolerance = 1e-9

func newTestScheduler(period time.Duration) (Scheduler, *clock.ManualClock) {
	c := clock.NewManualClock(time.Unix(0, 0))
	return NewScheduler(WithClock(c), WithFramePeriod(period)), c
}

func TestRunningMeanMatchesSummation(t *testing.T) {
	values := []float64{0.01, 0.02, 0.015, 0.018, 0.012}

	var m RunningMean
	var sum float64
	for i, v := range values {
		sum += v
		got := m.Add(v)
		exp := sum / float64(i+1)
		if math.Abs(got-exp) > tolerance {
			t.Fatalf("[sample %d] expected mean %f; got %f", i, exp, got)
		}
	}

	if math.Abs(m.Mean()-0.015) > tolerance {
		t.Fatalf("expected final mean 0.015; got %f", m.Mean())
	}
	if m.Count() != uint64(len(values)) {
		t.Fatalf("expected %d samples; got %d", len(values), m.Count())
	}
}

func TestPaceConvergesForConstantWork(t *testing.T) {
	period := time.Second / 60
	work := 4 * time.Millisecond
	sch, c := newTestScheduler(period)

	for i := 0; i < 100; i++ {
		slept, actual := sch.Pace(work)
		if !slept {
			t.Fatalf("[frame %d] expected the scheduler to sleep", i)
		}
		if actual != period-work {
			t.Fatalf("[frame %d] expected actual sleep %s; got %s", i, period-work, actual)
		}
	}

	stats := sch.Stats()
	if stats.FrameCount != 100 || stats.SleptFrames != 100 {
		t.Fatalf("expected 100 paced and slept frames; got %d/%d", stats.FrameCount, stats.SleptFrames)
	}
	if math.Abs(stats.AvgUpdateSeconds-work.Seconds()) > tolerance {
		t.Fatalf("expected avg update %f; got %f", work.Seconds(), stats.AvgUpdateSeconds)
	}
	if math.Abs(stats.AvgSleepSeconds-(period-work).Seconds()) > tolerance {
		t.Fatalf("expected avg sleep %f; got %f", (period - work).Seconds(), stats.AvgSleepSeconds)
	}
	if math.Abs(stats.AvgRealSleepSeconds-(period-work).Seconds()) > tolerance {
		t.Fatalf("expected avg real sleep %f; got %f", (period - work).Seconds(), stats.AvgRealSleepSeconds)
	}
	if got := len(c.Sleeps()); got != 100 {
		t.Fatalf("expected 100 sleeps on the clock; got %d", got)
	}
}

func TestPaceMeasuresOversleep(t *testing.T) {
	period := 10 * time.Millisecond
	sch, c := newTestScheduler(period)
	c.SetOversleep(500 * time.Microsecond)

	slept, actual := sch.Pace(2 * time.Millisecond)
	if !slept {
		t.Fatal("expected the scheduler to sleep")
	}
	if exp := 8*time.Millisecond + 500*time.Microsecond; actual != exp {
		t.Fatalf("expected measured sleep %s; got %s", exp, actual)
	}

	stats := sch.Stats()
	if math.Abs(stats.AvgSleepSeconds-0.008) > tolerance {
		t.Fatalf("expected avg sleep 0.008; got %f", stats.AvgSleepSeconds)
	}
	if math.Abs(stats.AvgRealSleepSeconds-0.0085) > tolerance {
		t.Fatalf("expected avg real sleep 0.0085; got %f", stats.AvgRealSleepSeconds)
	}
}

func TestPaceOverrunDoesNotSleep(t *testing.T) {
	type spec struct {
		work time.Duration
	}
	period := time.Second / 60
	specs := []spec{
		{period},
		{period + time.Nanosecond},
		{50 * time.Millisecond},
	}

	for index, s := range specs {
		sch, c := newTestScheduler(period)

		slept, actual := sch.Pace(s.work)
		if slept || actual != 0 {
			t.Fatalf("[spec %d] expected no sleep for work %s; got slept=%t actual=%s", index, s.work, slept, actual)
		}
		if len(c.Sleeps()) != 0 {
			t.Fatalf("[spec %d] expected the clock not to be slept on", index)
		}

		stats := sch.Stats()
		if stats.FrameCount != 1 || stats.SleptFrames != 0 || stats.Overruns() != 1 {
			t.Fatalf("[spec %d] unexpected counters %+v", index, stats)
		}
		if math.Abs(stats.AvgUpdateSeconds-s.work.Seconds()) > tolerance {
			t.Fatalf("[spec %d] expected avg update %f; got %f", index, s.work.Seconds(), stats.AvgUpdateSeconds)
		}
	}
}

func TestPaceMixedFrames(t *testing.T) {
	period := 10 * time.Millisecond
	sch, _ := newTestScheduler(period)

	works := []time.Duration{2 * time.Millisecond, 12 * time.Millisecond, 4 * time.Millisecond}
	for _, w := range works {
		sch.Pace(w)
	}

	stats := sch.Stats()
	if exp := 0.006; math.Abs(stats.AvgUpdateSeconds-exp) > tolerance {
		t.Fatalf("expected avg update %f; got %f", exp, stats.AvgUpdateSeconds)
	}
	// Only the two frames that slept (8ms and 6ms) contribute to the sleep mean.
	if exp := 0.007; math.Abs(stats.AvgSleepSeconds-exp) > tolerance {
		t.Fatalf("expected avg sleep %f; got %f", exp, stats.AvgSleepSeconds)
	}
	if stats.Overruns() != 1 {
		t.Fatalf("expected 1 overrun; got %d", stats.Overruns())
	}
}

func TestBuilderOptions(t *testing.T) {
	type spec struct {
		opts []SchedulerBuilderOption
		exp  time.Duration
	}
	specs := []spec{
		{nil, DefaultFramePeriod},
		{[]SchedulerBuilderOption{WithFramePeriod(0)}, DefaultFramePeriod},
		{[]SchedulerBuilderOption{WithFramePeriod(5 * time.Millisecond)}, 5 * time.Millisecond},
		{[]SchedulerBuilderOption{WithTargetFPS(-1)}, DefaultFramePeriod},
		{[]SchedulerBuilderOption{WithTargetFPS(100)}, 10 * time.Millisecond},
	}

	for index, s := range specs {
		if got := NewScheduler(s.opts...).FramePeriod(); got != s.exp {
			t.Fatalf("[spec %d] expected frame period %s; got %s", index, s.exp, got)
		}
	}
}

func TestFrameStatsDurations(t *testing.T) {
	stats := FrameStats{AvgUpdateSeconds: 0.004, AvgSleepSeconds: 0.012, AvgRealSleepSeconds: 0.0125}
	if stats.AvgUpdate() != 4*time.Millisecond {
		t.Fatalf("expected 4ms; got %s", stats.AvgUpdate())
	}
	if stats.AvgSleep() != 12*time.Millisecond {
		t.Fatalf("expected 12ms; got %s", stats.AvgSleep())
	}
	if stats.AvgRealSleep() != 12500*time.Microsecond {
		t.Fatalf("expected 12.5ms; got %s", stats.AvgRealSleep())
	}
}
