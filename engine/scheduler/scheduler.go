// Package scheduler paces the render loop to a fixed frame period.
package scheduler

import (
	"time"

	"github.com/Carmen-Shannon/graphplay/engine/clock"
)

// DefaultFramePeriod is the target frame period for 60 frames per second.
const DefaultFramePeriod = time.Second / 60

// scheduler implements the Scheduler interface.
type scheduler struct {
	clock       clock.Clock
	framePeriod time.Duration

	stats     FrameStats
	update    RunningMean
	sleep     RunningMean
	realSleep RunningMean
}

// Scheduler owns the fixed-period pacing of the render loop.
// It sleeps away whatever is left of the frame period after the frame's work and keeps running timing averages.
// A frame that overruns the period does not sleep and the next frame simply starts late; there is no catch-up.
type Scheduler interface {
	// Pace accounts for one frame and sleeps the remainder of the frame period.
	//
	// Parameters:
	//   - work: the duration of the frame's work (event polling, update, submission)
	//
	// Returns:
	//   - bool: true if the scheduler slept, false if the frame overran the period
	//   - time.Duration: the measured sleep duration, zero when no sleep occurred
	Pace(work time.Duration) (bool, time.Duration)

	// FramePeriod returns the fixed target frame period.
	//
	// Returns:
	//   - time.Duration: the frame period
	FramePeriod() time.Duration

	// Stats returns a snapshot of the running frame statistics.
	//
	// Returns:
	//   - FrameStats: the statistics since the loop started
	Stats() FrameStats
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a Scheduler targeting DefaultFramePeriod on the system clock unless overridden by options.
//
// Parameters:
//   - options: functional options for scheduler configuration
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(options ...SchedulerBuilderOption) Scheduler {
	s := &scheduler{
		clock:       clock.NewClock(),
		framePeriod: DefaultFramePeriod,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scheduler) Pace(work time.Duration) (bool, time.Duration) {
	if work < 0 {
		work = 0
	}

	s.stats.FrameCount++
	s.stats.AvgUpdateSeconds = s.update.Add(work.Seconds())

	if work >= s.framePeriod {
		return false, 0
	}

	sleepDuration := s.framePeriod - work
	s.stats.SleptFrames++
	s.stats.AvgSleepSeconds = s.sleep.Add(sleepDuration.Seconds())

	start := s.clock.Now()
	s.clock.Sleep(sleepDuration)
	actual := s.clock.Since(start)

	s.stats.AvgRealSleepSeconds = s.realSleep.Add(actual.Seconds())

	return true, actual
}

func (s *scheduler) FramePeriod() time.Duration {
	return s.framePeriod
}

func (s *scheduler) Stats() FrameStats {
	return s.stats
}
