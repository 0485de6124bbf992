package puppet

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// originPoint is the local origin in homogeneous coordinates.
var originPoint = mgl64.Vec4{0, 0, 0, 1}

// Axis identifies one of a joint's three local rotation axes.
type Axis uint8

const (
	AxisX Axis = iota // rotation applied first
	AxisY             // rotation applied second
	AxisZ             // rotation applied last, closest to the translation
)

// String returns the lowercase axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// ParseAxis converts "x", "y" or "z" (any case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// LocalTransform builds a joint's local rigid transform from its segment
// length and Euler rotation (radians).
//
// Composition order:
//
//	Rx(rotation.x) · Ry(rotation.y) · Rz(rotation.z) · Translate(0, 0, length)
//
// The translation is innermost, so the segment is first laid along local Z
// and then rotated. Changing the order changes how combined X/Y/Z edits
// interact.
func LocalTransform(length float64, rotation mgl64.Vec3) mgl64.Mat4 {
	rx := mgl64.HomogRotate3DX(rotation[0])
	ry := mgl64.HomogRotate3DY(rotation[1])
	rz := mgl64.HomogRotate3DZ(rotation[2])
	tz := mgl64.Translate3D(0, 0, length)
	return rx.Mul4(ry.Mul4(rz.Mul4(tz)))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// transformPoints applies m to every point in src, writing into dst.
// dst is grown to a high-water mark and never shrinks; the resliced buffer
// is returned.
func transformPoints(m mgl64.Mat4, src, dst []mgl64.Vec4) []mgl64.Vec4 {
	if cap(dst) < len(src) {
		dst = make([]mgl64.Vec4, len(src))
	}
	dst = dst[:len(src)]
	for i, p := range src {
		dst[i] = m.Mul4x1(p)
	}
	return dst
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isFiniteVec3(v mgl64.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

func isFiniteVec4(v mgl64.Vec4) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2]) && isFinite(v[3])
}

func isFiniteMat4(m mgl64.Mat4) bool {
	for _, v := range m {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
