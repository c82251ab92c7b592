package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FovY is the fixed vertical field of view in radians.
	FovY float32 = math.Pi / 6

	// Near is the near clipping plane distance.
	Near float32 = 0.01

	// Far is the far clipping plane distance.
	Far float32 = 100.0

	// FramesPerTurn is the number of target frame periods one full rotation takes.
	FramesPerTurn = 600
)

// Projection is a perspective projection and the parameters it was built from.
type Projection struct {
	Aspect float32
	FovY   float32
	Near   float32
	Far    float32
	Matrix mgl32.Mat4
}

// ViewProjectionBlock is the per-frame bundle of view, inverse view and projection matrices
// uploaded to the graphics collaborator before each draw.
type ViewProjectionBlock struct {
	View        mgl32.Mat4
	ViewInverse mgl32.Mat4
	Projection  mgl32.Mat4
}

// transformImpl implements the Transform interface.
type transformImpl struct {
	framePeriod time.Duration

	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	width  int
	height int

	angle float64
	model mgl32.Mat4

	view        mgl32.Mat4
	viewInverse mgl32.Mat4
	projection  Projection
	block       ViewProjectionBlock
}

// Transform owns the rotating object's angle and the matrices derived from it.
// The view matrix is fixed at construction; the projection changes only on a valid resize.
type Transform interface {
	// Advance rotates the object by the angular velocity times dt and recomputes the model matrix.
	// The angular velocity is one full turn per FramesPerTurn target frame periods.
	// Negative dt is treated as zero. The angle always stays in [0, 2π).
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous advance
	Advance(dt float32)

	// OnResize recomputes the projection for a new surface size.
	// Degenerate sizes are rejected and the previous projection is retained.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - error: an error wrapping viewport.ErrInvalidDimensions if either side is <= 0
	OnResize(width, height int) error

	// Snapshot returns the current view-projection block by value.
	//
	// Returns:
	//   - ViewProjectionBlock: the view, inverse view and projection matrices
	Snapshot() ViewProjectionBlock

	// Model returns the current model matrix, Rotation(angle, angle/2, 0).
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	Model() mgl32.Mat4

	// Angle returns the current rotation angle in radians, in [0, 2π).
	//
	// Returns:
	//   - float64: the rotation angle
	Angle() float64

	// AngularVelocity returns the rotation speed in radians per second.
	//
	// Returns:
	//   - float64: radians per second
	AngularVelocity() float64

	// Projection returns the current projection and its parameters.
	//
	// Returns:
	//   - Projection: the projection
	Projection() Projection

	// Size returns the surface size of the last accepted resize.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)
}

var _ Transform = &transformImpl{}

// NewTransform creates a Transform with the view fixed from the eye/target/up triple and the projection
// computed for the initial surface size (800x600 unless overridden).
//
// Parameters:
//   - options: functional options to configure the transform
//
// Returns:
//   - Transform: the newly created transform
//   - error: an error if the initial size is degenerate or the view matrix is singular
func NewTransform(options ...TransformBuilderOption) (Transform, error) {
	t := &transformImpl{
		framePeriod: time.Second / 60,
		eye:         mgl32.Vec3{4, 3, 4},
		target:      mgl32.Vec3{0, 0, 0},
		up:          mgl32.Vec3{0, 1, 0},
		width:       800,
		height:      600,
		model:       mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(t)
	}

	t.view = common.LookAt(t.eye, t.target, t.up)
	inv, ok := common.Invert(t.view)
	if !ok {
		return nil, fmt.Errorf("view matrix from eye %v target %v is singular", t.eye, t.target)
	}
	t.viewInverse = inv
	t.block.View = t.view
	t.block.ViewInverse = t.viewInverse

	if err := t.OnResize(t.width, t.height); err != nil {
		return nil, fmt.Errorf("initial projection: %w", err)
	}

	return t, nil
}

func (t *transformImpl) Advance(dt float32) {
	if dt < 0 || math.IsNaN(float64(dt)) {
		dt = 0
	}

	t.angle = math.Mod(t.angle+t.AngularVelocity()*float64(dt), common.TwoPi)
	if t.angle >= common.TwoPi || t.angle < 0 {
		t.angle = 0
	}

	a := float32(t.angle)
	t.model = common.Rotation(a, a/2, 0)
}

func (t *transformImpl) OnResize(width, height int) error {
	aspect, err := viewport.Aspect(width, height)
	if err != nil {
		return err
	}

	t.width, t.height = width, height
	t.projection = Projection{
		Aspect: aspect,
		FovY:   FovY,
		Near:   Near,
		Far:    Far,
		Matrix: common.Perspective(FovY, aspect, Near, Far),
	}
	t.block.Projection = t.projection.Matrix
	return nil
}

func (t *transformImpl) Snapshot() ViewProjectionBlock {
	return t.block
}

func (t *transformImpl) Model() mgl32.Mat4 {
	return t.model
}

func (t *transformImpl) Angle() float64 {
	return t.angle
}

func (t *transformImpl) AngularVelocity() float64 {
	return common.TwoPi / (FramesPerTurn * t.framePeriod.Seconds())
}

func (t *transformImpl) Projection() Projection {
	return t.projection
}

func (t *transformImpl) Size() (width, height int) {
	return t.width, t.height
}
