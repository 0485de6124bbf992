package puppet

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// assertVec3 compares component-wise with an absolute tolerance. mgl64's
// ApproxEqualThreshold squares the threshold when either side is zero.
func assertVec3(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	assertVecN(t, name, got[:], want[:])
}

func assertVec4(t *testing.T, name string, got, want mgl64.Vec4) {
	t.Helper()
	assertVecN(t, name, got[:], want[:])
}

func assertVecN(t *testing.T, name string, got, want []float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func assertMatrix(t *testing.T, name string, got, want mgl64.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func endOf(length float64, rotation mgl64.Vec3) mgl64.Vec3 {
	return LocalTransform(length, rotation).Mul4x1(originPoint).Vec3()
}

// --- LocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	assertMatrix(t, "identity", LocalTransform(0, mgl64.Vec3{}), mgl64.Ident4())
}

func TestLocalTransformTranslationOnly(t *testing.T) {
	assertMatrix(t, "translate", LocalTransform(2.5, mgl64.Vec3{}), mgl64.Translate3D(0, 0, 2.5))
}

func TestLocalTransformRotateY90(t *testing.T) {
	assertVec3(t, "end", endOf(1, mgl64.Vec3{0, math.Pi / 2, 0}), mgl64.Vec3{1, 0, 0})
}

func TestLocalTransformRotateX90(t *testing.T) {
	assertVec3(t, "end", endOf(1, mgl64.Vec3{math.Pi / 2, 0, 0}), mgl64.Vec3{0, -1, 0})
}

func TestLocalTransformRotateZOnlySpinsAroundSegment(t *testing.T) {
	assertVec3(t, "end", endOf(1, mgl64.Vec3{0, 0, 1.234}), mgl64.Vec3{0, 0, 1})
}

func TestLocalTransformOrderXThenY(t *testing.T) {
	// Rx·Ry·(0,0,1) = Rx·(1,0,0) = (1,0,0); Ry·Rx would give (0,-1,0).
	assertVec3(t, "end", endOf(1, mgl64.Vec3{math.Pi / 2, math.Pi / 2, 0}), mgl64.Vec3{1, 0, 0})
}

func TestLocalTransformZeroLengthIsPureRotation(t *testing.T) {
	rot := mgl64.Vec3{0.3, -0.7, 1.1}
	m := LocalTransform(0, rot)
	assertVec3(t, "origin", m.Mul4x1(originPoint).Vec3(), mgl64.Vec3{})
	want := mgl64.HomogRotate3DX(rot[0]).Mul4(mgl64.HomogRotate3DY(rot[1])).Mul4(mgl64.HomogRotate3DZ(rot[2]))
	assertMatrix(t, "rotation", m, want)
}

func TestLocalTransformIsRigid(t *testing.T) {
	m := LocalTransform(0.8, mgl64.Vec3{0.4, 1.3, -2.2})
	// The end point stays at distance length from the origin.
	assertNear(t, "length", m.Mul4x1(originPoint).Vec3().Len(), 0.8)
	assertNear(t, "det", m.Mat3().Det(), 1)
}

// --- Axis ---

func TestParseAxis(t *testing.T) {
	tests := map[string]Axis{"x": AxisX, "Y": AxisY, " z ": AxisZ}
	for in, want := range tests {
		got, err := ParseAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAxis("w"); !errors.Is(err, ErrUnknownAxis) {
		t.Errorf("ParseAxis(w) err = %v, want ErrUnknownAxis", err)
	}
}

func TestAxisString(t *testing.T) {
	if AxisX.String() != "x" || AxisY.String() != "y" || AxisZ.String() != "z" {
		t.Errorf("axis strings: %s %s %s", AxisX, AxisY, AxisZ)
	}
}

func TestDeg2Rad(t *testing.T) {
	assertNear(t, "90", Deg2Rad(90), math.Pi/2)
	assertNear(t, "-180", Deg2Rad(-180), -math.Pi)
}

// --- transformPoints ---

func TestTransformPointsReusesBuffer(t *testing.T) {
	src := []mgl64.Vec4{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}
	m := mgl64.Translate3D(1, 2, 3)
	dst := transformPoints(m, src, nil)
	if len(dst) != 3 {
		t.Fatalf("len = %d, want 3", len(dst))
	}
	assertVec3(t, "p0", dst[0].Vec3(), mgl64.Vec3{2, 2, 3})

	again := transformPoints(m, src[:2], dst)
	if &again[0] != &dst[0] {
		t.Error("buffer was reallocated")
	}
	if len(again) != 2 {
		t.Errorf("len = %d, want 2", len(again))
	}
}

func TestIsFinite(t *testing.T) {
	if isFinite(math.NaN()) || isFinite(math.Inf(1)) || !isFinite(0) {
		t.Error("isFinite")
	}
	m := mgl64.Ident4()
	m[5] = math.Inf(-1)
	if isFiniteMat4(m) {
		t.Error("isFiniteMat4 accepted -Inf")
	}
}
