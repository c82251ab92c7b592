package profiler

import (
	"time"

	"github.com/Carmen-Shannon/graphplay/engine/clock"
	"github.com/Carmen-Shannon/graphplay/engine/log"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often the profiler logs a summary. Non-positive values keep the default.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock sets the time source used to measure reporting intervals.
//
// Parameters:
//   - c: the clock to read
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(c clock.Clock) ProfilerBuilderOption {
	return func(p *Profiler) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithLogger overrides the logger summaries are written to.
//
// Parameters:
//   - l: the destination logger
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithLogger(l log.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}
