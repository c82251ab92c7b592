package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/graphplay/engine/clock"
	"github.com/Carmen-Shannon/graphplay/engine/log"
	"github.com/Carmen-Shannon/graphplay/engine/scheduler"
)

var logger = log.New("profiler")

// Profiler tracks frame rate, pacing and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	clock          clock.Clock
	logger         log.Logger
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	reports        int
}

// Report is a single interval summary produced by Tick.
type Report struct {
	FPS          float64
	AvgUpdate    time.Duration
	AvgSleep     time.Duration
	AvgRealSleep time.Duration
	Overruns     uint64
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	LastPauseUs  uint64
	MaxPauseUs   uint64
	SysMB        float64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and time is read from the system clock.
//
// Parameters:
//   - options: functional options for profiler configuration
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		clock:          clock.NewClock(),
		logger:         logger,
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}

	for _, opt := range options {
		opt(p)
	}

	p.lastTime = p.clock.Now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics at Notice level when the update interval has elapsed.
// Statistics include: FPS, the scheduler's running averages, heap usage, allocation rate,
// GC count/pause times and total memory.
//
// Parameters:
//   - stats: the scheduler statistics at the end of the current frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats scheduler.FrameStats) bool {
	p.frameCount++
	elapsed := p.clock.Since(p.lastTime)

	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	r := p.sample(stats, elapsed)
	p.logger.Noticef("FPS: %.2f | Update: %s | Sleep: %s (real %s) | Overruns: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.AvgUpdate, r.AvgSleep, r.AvgRealSleep, r.Overruns,
		r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)

	p.frameCount = 0
	p.lastTime = p.clock.Now()
	p.reports++
	return true
}

// Reports returns how many interval summaries have been logged.
func (p *Profiler) Reports() int {
	return p.reports
}

// sample builds a Report for the interval that just elapsed and rolls the GC bookkeeping forward.
func (p *Profiler) sample(stats scheduler.FrameStats, elapsed time.Duration) Report {
	runtime.ReadMemStats(&p.memStats)

	r := Report{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgUpdate:    stats.AvgUpdate(),
		AvgSleep:     stats.AvgSleep(),
		AvgRealSleep: stats.AvgRealSleep(),
		Overruns:     stats.Overruns(),
		// Alloc: live heap bytes; Sys: bytes obtained from the OS
		HeapMB: float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:  float64(p.memStats.Sys) / 1024 / 1024,
	}

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	r.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	r.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		r.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
				r.MaxPauseUs = pause
			}
		}
	}

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return r
}
