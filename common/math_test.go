package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

// closeTo compares element-wise with an absolute tolerance so float32 noise around zero passes.
func closeTo(got, exp []float32) bool {
	if len(got) != len(exp) {
		return false
	}
	for i := range got {
		if math.Abs(float64(got[i]-exp[i])) > epsilon {
			return false
		}
	}
	return true
}

func TestInvertRoundTrip(t *testing.T) {
	view := LookAt(mgl32.Vec3{4, 3, 4}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	inv, ok := Invert(view)
	if !ok {
		t.Fatal("expected view matrix to be invertible")
	}

	ident := mgl32.Ident4()
	if got := Multiply(view, inv); !closeTo(got[:], ident[:]) {
		t.Fatalf("expected view * inverse to be identity; got %v", got)
	}
}

func TestInvertSingular(t *testing.T) {
	inv, ok := Invert(mgl32.Mat4{})
	if ok {
		t.Fatal("expected zero matrix to be reported as singular")
	}
	if inv != mgl32.Ident4() {
		t.Fatalf("expected identity fallback; got %v", inv)
	}
}

func TestRotationComposition(t *testing.T) {
	type spec struct {
		roll, pitch float32
		in, exp     mgl32.Vec3
	}
	half := float32(math.Pi / 2)
	specs := []spec{
		{0, 0, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}},
		// roll about X: +Y goes to +Z
		{half, 0, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		// pitch about Y: +Z goes to +X
		{0, half, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		// roll is applied before pitch: +Y -> +Z -> +X
		{half, half, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}

	for index, s := range specs {
		got := mgl32.TransformCoordinate(s.in, Rotation(s.roll, s.pitch, 0))
		if !closeTo(got[:], s.exp[:]) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.01), float32(100.0)
	proj := Perspective(math.Pi/6, 4.0/3.0, near, far)

	depth := func(z float32) float32 {
		clip := proj.Mul4x1(mgl32.Vec4{0, 0, z, 1})
		return clip.Z() / clip.W()
	}

	if d := depth(-near); math.Abs(float64(d)) > 1e-4 {
		t.Fatalf("expected near plane to map to depth 0; got %f", d)
	}
	if d := depth(-far); math.Abs(float64(d-1)) > 1e-4 {
		t.Fatalf("expected far plane to map to depth 1; got %f", d)
	}
}

func TestAspectOf(t *testing.T) {
	for index, aspect := range []float32{1, 4.0 / 3.0, 16.0 / 9.0, 0.5} {
		got := AspectOf(Perspective(math.Pi/6, aspect, 0.01, 100))
		if math.Abs(float64(got-aspect)) > epsilon {
			t.Fatalf("[spec %d] expected aspect %f; got %f", index, aspect, got)
		}
	}
	if got := AspectOf(mgl32.Mat4{}); got != 0 {
		t.Fatalf("expected 0 for zero matrix; got %f", got)
	}
}

func TestCloseToNearZero(t *testing.T) {
	type spec struct {
		got, exp []float32
		ok       bool
	}
	specs := []spec{
		{[]float32{0, -4.371139e-08, 1}, []float32{0, 0, 1}, true},
		{[]float32{1e-6, 1}, []float32{0, 1}, true},
		{[]float32{1e-3, 1}, []float32{0, 1}, false},
		{[]float32{0, 0}, []float32{0}, false},
	}
	for index, s := range specs {
		if closeTo(s.got, s.exp) != s.ok {
			t.Fatalf("[spec %d] expected closeTo(%v, %v) to be %v", index, s.got, s.exp, s.ok)
		}
	}
}

func TestInvertNotFinite(t *testing.T) {
	nan := float32(math.NaN())
	if _, ok := Invert(mgl32.Mat4{nan, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}); ok {
		t.Fatal("expected a matrix with NaN entries to be reported as singular")
	}
}
