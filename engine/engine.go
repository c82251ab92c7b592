package engine

import (
	"time"

	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine/clock"
	"github.com/Carmen-Shannon/graphplay/engine/log"
	"github.com/Carmen-Shannon/graphplay/engine/profiler"
	"github.com/Carmen-Shannon/graphplay/engine/scheduler"
	"github.com/Carmen-Shannon/graphplay/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.New("engine")

// State is the lifecycle state of the render loop.
type State int

const (
	// StateRunning is the initial state; iterations keep rendering.
	StateRunning State = iota
	// StateStopped is terminal; Run returns once it is reached.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// EventSource is the window side of the loop. PollEvents drains every event queued since the last call
// without blocking.
type EventSource interface {
	PollEvents() []common.Event
}

// Graphics is the GPU side of the loop. One frame is always
// BeginFrame, Clear, UpdateUniform, Draw, Present in that order.
type Graphics interface {
	// BeginFrame acquires the next surface texture and opens a command encoder.
	//
	// Returns:
	//   - error: error if the surface texture could not be acquired
	BeginFrame() error

	// Clear opens the render pass, clearing color and depth attachments.
	//
	// Parameters:
	//   - color: the color clear value
	//   - depth: the depth clear value
	Clear(color common.Color, depth float32)

	// UpdateUniform writes the view/projection constant block.
	//
	// Parameters:
	//   - block: the camera matrices for this frame
	UpdateUniform(block transform.ViewProjectionBlock)

	// Draw records an indexed draw of mesh with the given pipeline and model matrix.
	//
	// Parameters:
	//   - mesh: a handle returned by the mesh upload
	//   - pipelineKey: the key of a registered pipeline
	//   - model: the model matrix
	//
	// Returns:
	//   - error: error if the pipeline or mesh is unknown
	Draw(mesh common.MeshHandle, pipelineKey string, model mgl32.Mat4) error

	// Present ends the pass, submits the recorded commands and presents the surface.
	Present()
}

// engine implements the Engine interface.
// A single goroutine samples the clock, drains events, renders one frame and paces itself.
type engine struct {
	clock     clock.Clock
	scheduler scheduler.Scheduler
	transform transform.Transform

	events   EventSource
	graphics Graphics

	mesh        common.MeshHandle
	pipelineKey string
	clearColor  common.Color

	width, height int

	profiler         *profiler.Profiler
	profilingEnabled bool

	state     State
	lastStart time.Time
	started   bool
	frames    uint64
}

// Engine is the render loop driver.
// It owns the loop state and coordinates the clock, the scheduler, the transform state and its two collaborators.
type Engine interface {
	// Step runs exactly one loop iteration: sample the clock, process events, render if still running,
	// then pace to the frame period. Calling Step after the loop stopped does nothing.
	//
	// Returns:
	//   - State: the loop state after the iteration
	Step() State

	// Run calls Step until the loop reaches StateStopped.
	//
	// Returns:
	//   - scheduler.FrameStats: the pacing statistics at exit
	Run() scheduler.FrameStats

	// Stop requests termination. The current iteration, if any, completes its submission first.
	Stop()

	// State returns the current loop state.
	//
	// Returns:
	//   - State: running or stopped
	State() State

	// Frames returns how many frames were submitted to the graphics collaborator.
	//
	// Returns:
	//   - uint64: the number of presented frames
	Frames() uint64

	// Stats returns the scheduler's running statistics.
	//
	// Returns:
	//   - scheduler.FrameStats: the pacing statistics so far
	Stats() scheduler.FrameStats

	// Transform returns the transform state driven by the loop.
	//
	// Returns:
	//   - transform.Transform: the transform state
	Transform() transform.Transform

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine bound to an event source and a graphics collaborator.
// Missing clock, scheduler and transform state are created with defaults; the scheduler and the
// transform share the engine clock's frame period.
//
// Parameters:
//   - events: the window event source
//   - graphics: the renderer that draws each frame
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the default transform state cannot be built
func NewEngine(events EventSource, graphics Graphics, options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		events:      events,
		graphics:    graphics,
		pipelineKey: DefaultPipelineKey,
		clearColor:  common.Black,
		width:       800,
		height:      600,
		state:       StateRunning,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.clock == nil {
		e.clock = clock.NewClock()
	}
	if e.scheduler == nil {
		e.scheduler = scheduler.NewScheduler(scheduler.WithClock(e.clock))
	}
	if e.transform == nil {
		t, err := transform.NewTransform(
			transform.WithFramePeriod(e.scheduler.FramePeriod()),
			transform.WithSize(e.width, e.height),
		)
		if err != nil {
			return nil, err
		}
		e.transform = t
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.clock))
	}

	return e, nil
}

// DefaultPipelineKey is the pipeline used when WithPipelineKey is not given.
const DefaultPipelineKey = "unlit"

func (e *engine) Step() State {
	if e.state == StateStopped {
		return e.state
	}

	start := e.clock.Now()
	var dt float32
	if e.started {
		dt = float32(e.clock.Since(e.lastStart).Seconds())
	}
	e.lastStart = start
	e.started = true

	e.handleEvents()

	if e.state == StateRunning {
		e.transform.Advance(dt)
		e.renderFrame()
	}

	work := e.clock.Since(start)
	e.scheduler.Pace(work)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.scheduler.Stats())
	}

	return e.state
}

func (e *engine) Run() scheduler.FrameStats {
	logger.Infof("render loop started at %s per frame", e.scheduler.FramePeriod())
	for e.Step() != StateStopped {
	}

	stats := e.scheduler.Stats()
	logger.Infof("render loop stopped after %d frames (%d overruns)", stats.FrameCount, stats.Overruns())
	return stats
}

func (e *engine) Stop() {
	e.state = StateStopped
}

func (e *engine) State() State {
	return e.state
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Stats() scheduler.FrameStats {
	return e.scheduler.Stats()
}

func (e *engine) Transform() transform.Transform {
	return e.transform
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// handleEvents drains the event source. Every event in the batch is processed, so a resize queued
// behind a close still reaches the transform state.
func (e *engine) handleEvents() {
	if e.events == nil {
		return
	}

	for _, ev := range e.events.PollEvents() {
		switch {
		case ev.IsStop():
			logger.Debugf("stop requested by %s", ev)
			e.state = StateStopped
		case ev.Kind == common.EventResize:
			if err := e.transform.OnResize(ev.Width, ev.Height); err != nil {
				logger.Warningf("ignoring resize: %v", err)
			}
		}
	}
}

// renderFrame submits one frame. A failed BeginFrame skips the frame; a failed draw still presents
// so the surface texture is released.
func (e *engine) renderFrame() {
	if e.graphics == nil {
		return
	}

	if err := e.graphics.BeginFrame(); err != nil {
		logger.Warningf("skipping frame: %v", err)
		return
	}

	e.graphics.Clear(e.clearColor, 1.0)
	e.graphics.UpdateUniform(e.transform.Snapshot())
	if err := e.graphics.Draw(e.mesh, e.pipelineKey, e.transform.Model()); err != nil {
		logger.Errorf("draw failed: %v", err)
	}
	e.graphics.Present()
	e.frames++
}
