package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// clipDepthCorrection remaps OpenGL clip-space depth [-1, 1] to the WebGPU range [0, 1].
// Column-major: z' = 0.5*z + 0.5*w.
var clipDepthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Multiply returns a * b. All matrices are column-major (OpenGL/WebGPU convention).
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - mgl32.Mat4: the product a * b
func Multiply(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

// Invert computes the inverse of a 4x4 matrix.
// If the matrix is singular (determinant zero or not finite) the identity is returned along with false.
//
// Parameters:
//   - m: source matrix
//
// Returns:
//   - mgl32.Mat4: the inverse of m, or the identity if m is singular
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert(m mgl32.Mat4) (mgl32.Mat4, bool) {
	det := float64(m.Det())
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return mgl32.Ident4(), false
	}
	return m.Inv(), true
}

// Rotation builds a homogeneous rotation from Euler angles.
// The composition order is Rz(yaw) * Ry(pitch) * Rx(roll), so roll is applied first.
//
// Parameters:
//   - roll: rotation about the X axis in radians
//   - pitch: rotation about the Y axis in radians
//   - yaw: rotation about the Z axis in radians
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func Rotation(roll, pitch, yaw float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(yaw).
		Mul4(mgl32.HomogRotate3DY(pitch)).
		Mul4(mgl32.HomogRotate3DX(roll))
}

// Perspective creates a perspective projection matrix for WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// AspectOf recovers the aspect ratio encoded in a projection matrix built by Perspective.
func AspectOf(projection mgl32.Mat4) float32 {
	if projection[0] == 0 {
		return 0
	}
	return projection[5] / projection[0]
}
