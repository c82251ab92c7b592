package transform

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/graphplay/common"
	"github.com/Carmen-Shannon/graphplay/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
)

func mustTransform(t *testing.T, options ...TransformBuilderOption) Transform {
	t.Helper()
	tr, err := NewTransform(options...)
	if err != nil {
		t.Fatalf("unexpected error creating transform: %v", err)
	}
	return tr
}

// matricesClose compares element-wise with an absolute tolerance.
func matricesClose(got, exp mgl32.Mat4, tolerance float64) bool {
	for i := range got {
		if math.Abs(float64(got[i]-exp[i])) > tolerance {
			return false
		}
	}
	return true
}

// circularDistance returns the distance between two angles on the circle.
func circularDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), common.TwoPi)
	return math.Min(d, common.TwoPi-d)
}

func TestAdvanceKeepsAngleInRange(t *testing.T) {
	dts := []float32{0, 1.0 / 60, 0.25, 1, 9.99, 10, 10.01, 37.5, 1000, -1, float32(math.NaN())}

	for index, dt := range dts {
		tr := mustTransform(t)
		for i := 0; i < 10; i++ {
			tr.Advance(dt)
			if a := tr.Angle(); a < 0 || a >= common.TwoPi {
				t.Fatalf("[spec %d] expected angle in [0, 2π) after dt=%f; got %f", index, dt, a)
			}
		}
	}
}

func TestAdvanceIsProportionalToDt(t *testing.T) {
	tr := mustTransform(t)

	period := time.Second / 60
	if exp := common.TwoPi / (FramesPerTurn * period.Seconds()); math.Abs(tr.AngularVelocity()-exp) > 1e-9 {
		t.Fatalf("expected angular velocity %f rad/s at 60 fps; got %f", exp, tr.AngularVelocity())
	}
	// one turn per ten seconds, up to the truncation of the nanosecond frame period
	if exp := common.TwoPi / 10; math.Abs(tr.AngularVelocity()-exp) > 1e-6 {
		t.Fatalf("expected angular velocity near %f rad/s; got %.9f", exp, tr.AngularVelocity())
	}

	tr.Advance(0.5)
	if exp := tr.AngularVelocity() * float64(float32(0.5)); math.Abs(tr.Angle()-exp) > 1e-9 {
		t.Fatalf("expected angle %f; got %f", exp, tr.Angle())
	}

	tr.Advance(-3)
	if exp := tr.AngularVelocity() * 0.5; math.Abs(tr.Angle()-exp) > 1e-9 {
		t.Fatalf("expected negative dt to leave the angle at %f; got %f", exp, tr.Angle())
	}
}

func TestAdvanceFullRotation(t *testing.T) {
	tr := mustTransform(t, WithFramePeriod(time.Second/60))

	dt := float32(1.0 / 60)
	for i := 0; i < 600; i++ {
		tr.Advance(dt)
	}

	if d := circularDistance(tr.Angle(), 0); d > 1e-4 {
		t.Fatalf("expected one full rotation after 600 frames; angle %f is %f from 0", tr.Angle(), d)
	}
}

func TestAdvanceHalfRotationAtOtherFramePeriod(t *testing.T) {
	period := time.Second / 30
	tr := mustTransform(t, WithFramePeriod(period))

	for i := 0; i < 300; i++ {
		tr.Advance(float32(period.Seconds()))
	}

	if d := circularDistance(tr.Angle(), math.Pi); d > 1e-4 {
		t.Fatalf("expected a half rotation after 300 frames at 30 fps; got angle %f", tr.Angle())
	}
}

func TestModelMatrixCouplesAxes(t *testing.T) {
	tr := mustTransform(t)
	tr.Advance(1.25)

	a := float32(tr.Angle())
	exp := mgl32.HomogRotate3DY(a / 2).Mul4(mgl32.HomogRotate3DX(a))
	if got := tr.Model(); !matricesClose(got, exp, 1e-5) {
		t.Fatalf("expected model %v; got %v", exp, got)
	}
}

func TestResizeScenario(t *testing.T) {
	tr := mustTransform(t, WithSize(800, 600))

	if got, exp := tr.Projection().Aspect, float32(800)/float32(600); got != exp {
		t.Fatalf("expected initial aspect %f; got %f", exp, got)
	}

	if err := tr.OnResize(1600, 900); err != nil {
		t.Fatalf("unexpected resize error: %v", err)
	}
	exp := float32(1600) / float32(900)
	if got := tr.Projection().Aspect; got != exp {
		t.Fatalf("expected aspect %f after resize; got %f", exp, got)
	}
	if got := common.AspectOf(tr.Snapshot().Projection); math.Abs(float64(got-exp)) > 1e-5 {
		t.Fatalf("expected snapshot projection to encode aspect %f; got %f", exp, got)
	}

	before := tr.Snapshot()
	err := tr.OnResize(1600, 0)
	if !errors.Is(err, viewport.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions; got %v", err)
	}
	if got := tr.Projection().Aspect; got != exp {
		t.Fatalf("expected aspect to remain %f after a rejected resize; got %f", exp, got)
	}
	if tr.Snapshot() != before {
		t.Fatal("expected the view-projection block to be unchanged after a rejected resize")
	}
	if w, h := tr.Size(); w != 1600 || h != 900 {
		t.Fatalf("expected size to remain 1600x900; got %dx%d", w, h)
	}
}

func TestResizeLeavesViewUntouched(t *testing.T) {
	tr := mustTransform(t)
	before := tr.Snapshot()

	if err := tr.OnResize(1024, 256); err != nil {
		t.Fatalf("unexpected resize error: %v", err)
	}

	after := tr.Snapshot()
	if after.View != before.View || after.ViewInverse != before.ViewInverse {
		t.Fatal("expected view and inverse view to be unaffected by resize")
	}
	if after.Projection == before.Projection {
		t.Fatal("expected projection to change")
	}
	if got := after.View.Mul4(after.ViewInverse); !matricesClose(got, mgl32.Ident4(), 1e-5) {
		t.Fatalf("expected cached inverse to invert the view; got %v", got)
	}
}

func TestProjectionParameters(t *testing.T) {
	p := mustTransform(t).Projection()
	if p.FovY != FovY || p.Near != Near || p.Far != Far {
		t.Fatalf("unexpected projection parameters %+v", p)
	}
	if math.Abs(float64(FovY)-math.Pi/6) > 1e-7 {
		t.Fatalf("expected fov of π/6; got %f", FovY)
	}
}

func TestNewTransformErrors(t *testing.T) {
	if _, err := NewTransform(WithSize(800, 0)); !errors.Is(err, viewport.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions for a degenerate initial size; got %v", err)
	}
	if _, err := NewTransform(WithEye(0, 0, 0), WithTarget(0, 0, 0), WithUp(0, 0, 0)); err == nil {
		t.Fatal("expected an error for a degenerate eye/target/up triple")
	}
}

func TestGPUUniformMarshal(t *testing.T) {
	tr := mustTransform(t)
	tr.Advance(0.3)

	u := NewGPUViewProjectionUniform(tr.Snapshot())
	buf := u.Marshal()
	if len(buf) != 192 || u.Size() != 192 {
		t.Fatalf("expected 192 bytes; got %d (size %d)", len(buf), u.Size())
	}

	block := tr.Snapshot()
	for i, exp := range [3]mgl32.Mat4{block.View, block.ViewInverse, block.Projection} {
		for j := 0; j < 16; j++ {
			got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*64+j*4:]))
			if got != exp[j] {
				t.Fatalf("[matrix %d] expected element %d to be %f; got %f", i, j, exp[j], got)
			}
		}
	}

	m := NewGPUModelUniform(tr.Model())
	mbuf := m.Marshal()
	if len(mbuf) != 64 {
		t.Fatalf("expected 64 bytes; got %d", len(mbuf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(mbuf[20:])); got != tr.Model()[5] {
		t.Fatalf("expected element 5 to be %f; got %f", tr.Model()[5], got)
	}
}
