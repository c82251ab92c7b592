package scheduler

import (
	"time"

	"github.com/Carmen-Shannon/graphplay/engine/clock"
)

// SchedulerBuilderOption is a functional option for configuring a Scheduler.
type SchedulerBuilderOption func(*scheduler)

// WithFramePeriod sets the target frame period. Non-positive values keep DefaultFramePeriod.
//
// Parameters:
//   - period: the target duration of one frame
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithFramePeriod(period time.Duration) SchedulerBuilderOption {
	return func(s *scheduler) {
		if period <= 0 {
			return
		}
		s.framePeriod = period
	}
}

// WithTargetFPS sets the frame period from a target frame rate. Values <= 0 keep DefaultFramePeriod.
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithTargetFPS(fps float64) SchedulerBuilderOption {
	return func(s *scheduler) {
		if fps <= 0 {
			return
		}
		s.framePeriod = time.Duration(float64(time.Second) / fps)
	}
}

// WithClock sets the clock used to measure sleeps and to block.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - SchedulerBuilderOption: option function to apply
func WithClock(c clock.Clock) SchedulerBuilderOption {
	return func(s *scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}
