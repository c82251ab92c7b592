package engine

import (
	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine/clock"
	"github.com/Carmen-Shannon/graphplay/engine/profiler"
	"github.com/Carmen-Shannon/graphplay/engine/scheduler"
	"github.com/Carmen-Shannon/graphplay/engine/transform"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets a custom profiler. Profiling still has to be enabled with WithProfiling.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithClock sets the time source for dt and work measurement.
// It is also handed to the default scheduler and profiler when those are not set explicitly.
//
// Parameters:
//   - c: the clock to sample
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithScheduler sets the frame scheduler. It should share the engine's clock.
//
// Parameters:
//   - s: the scheduler pacing each iteration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s scheduler.Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithTransform sets the transform state advanced by the loop.
//
// Parameters:
//   - t: the transform state
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTransform(t transform.Transform) EngineBuilderOption {
	return func(e *engine) {
		e.transform = t
	}
}

// WithMesh sets the uploaded mesh drawn every frame.
//
// Parameters:
//   - mesh: the handle returned by the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMesh(mesh common.MeshHandle) EngineBuilderOption {
	return func(e *engine) {
		e.mesh = mesh
	}
}

// WithPipelineKey sets the pipeline used for the draw call.
//
// Parameters:
//   - key: the key of a registered render pipeline
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPipelineKey(key string) EngineBuilderOption {
	return func(e *engine) {
		e.pipelineKey = common.Coalesce(key, DefaultPipelineKey)
	}
}

// WithClearColor sets the color the render pass clears to. Defaults to black.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClearColor(color common.Color) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = color
	}
}

// WithInitialSize sets the surface size used to build the default transform state.
// It has no effect when WithTransform is given.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInitialSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.width = width
		e.height = height
	}
}
