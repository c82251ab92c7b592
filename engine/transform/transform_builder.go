package transform

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformBuilderOption is a functional option for configuring a Transform.
type TransformBuilderOption func(*transformImpl)

// WithFramePeriod sets the target frame period the angular velocity is defined against.
// Non-positive values keep the 1/60s default.
//
// Parameters:
//   - period: the target frame period
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithFramePeriod(period time.Duration) TransformBuilderOption {
	return func(t *transformImpl) {
		if period > 0 {
			t.framePeriod = period
		}
	}
}

// WithEye sets the fixed camera position.
//
// Parameters:
//   - x, y, z: eye position in world space
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithEye(x, y, z float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.eye = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the point the fixed camera looks at.
//
// Parameters:
//   - x, y, z: target position in world space
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithTarget(x, y, z float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.target = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithUp(x, y, z float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.up = mgl32.Vec3{x, y, z}
	}
}

// WithSize sets the initial surface size used for the first projection.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithSize(width, height int) TransformBuilderOption {
	return func(t *transformImpl) {
		t.width = width
		t.height = height
	}
}
