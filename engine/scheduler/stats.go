package scheduler

import (
	"math"
	"time"
)

// RunningMean is an incremental arithmetic mean: mean += (x - mean) / n.
// It never stores the samples, so it stays numerically stable over long sessions.
type RunningMean struct {
	n    uint64
	mean float64
}

// Add folds a sample into the mean.
//
// Parameters:
//   - x: the sample value
//
// Returns:
//   - float64: the updated mean
func (m *RunningMean) Add(x float64) float64 {
	m.n++
	m.mean += (x - m.mean) / float64(m.n)
	return m.mean
}

// Mean returns the current mean, or 0 if no samples were added.
func (m *RunningMean) Mean() float64 {
	return m.mean
}

// Count returns the number of samples added.
func (m *RunningMean) Count() uint64 {
	return m.n
}

// FrameStats holds running timing statistics for the pacing loop.
// Every average is the mean over all samples since the loop started; nothing is reset during a session.
type FrameStats struct {
	// FrameCount is the number of paced frames.
	FrameCount uint64

	// SleptFrames is the number of frames that finished inside the frame period and slept.
	SleptFrames uint64

	// AvgUpdateSeconds is the mean frame work duration over all frames.
	AvgUpdateSeconds float64

	// AvgSleepSeconds is the mean requested sleep over the frames that slept.
	// The divisor is SleptFrames, not FrameCount: overrun frames do not contribute a zero sample.
	AvgSleepSeconds float64

	// AvgRealSleepSeconds is the mean measured sleep over the frames that slept.
	AvgRealSleepSeconds float64
}

// AvgUpdate returns AvgUpdateSeconds as a time.Duration.
func (s FrameStats) AvgUpdate() time.Duration {
	return seconds(s.AvgUpdateSeconds)
}

// AvgSleep returns AvgSleepSeconds as a time.Duration.
func (s FrameStats) AvgSleep() time.Duration {
	return seconds(s.AvgSleepSeconds)
}

// AvgRealSleep returns AvgRealSleepSeconds as a time.Duration.
func (s FrameStats) AvgRealSleep() time.Duration {
	return seconds(s.AvgRealSleepSeconds)
}

// Overruns returns the number of frames whose work exceeded the frame period.
func (s FrameStats) Overruns() uint64 {
	return s.FrameCount - s.SleptFrames
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
