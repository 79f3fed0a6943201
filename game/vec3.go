package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector in world units. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// DefaultForward is used whenever a heading cannot be derived from the angles.
var DefaultForward = Vec3{X: 0, Y: 0, Z: 1}

// vec and vec3 convert to and from mgl64 for the arithmetic
func (v Vec3) vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func vec3(m mgl64.Vec3) Vec3 {
	return Vec3{X: m.X(), Y: m.Y(), Z: m.Z()}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return vec3(v.vec().Add(o.vec()))
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return vec3(v.vec().Sub(o.vec()))
}

func (v Vec3) Scale(s float64) Vec3 {
	return vec3(v.vec().Mul(s))
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.vec().Dot(o.vec())
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return vec3(v.vec().Cross(o.vec()))
}

// Length returns the euclidean length of the vector
func (v Vec3) Length() float64 {
	return v.vec().Len()
}

// Distance returns the distance between two points
func (v Vec3) Distance(o Vec3) float64 {
	return v.vec().Sub(o.vec()).Len()
}

// IsFinite reports whether every component is a real number
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Normalize returns the unit vector. A zero-length or non-finite vector
// yields the zero vector and ok=false.
func (v Vec3) Normalize() (Vec3, bool) {
	length := v.Length()
	if length < 1e-9 || !isFinite(length) {
		return Vec3{}, false
	}
	return vec3(v.vec().Normalize()), true
}

// NormalizeOr returns the unit vector, or fallback when it can't be normalized
func (v Vec3) NormalizeOr(fallback Vec3) Vec3 {
	if n, ok := v.Normalize(); ok {
		return n
	}
	return fallback
}

// ForwardVector converts yaw and pitch (degrees) into a unit heading.
// Positive pitch points the nose down.
func ForwardVector(yawDeg, pitchDeg float64) Vec3 {
	yaw := Radians(yawDeg)
	pitch := Radians(pitchDeg)
	forward := Vec3{
		X: math.Sin(yaw) * math.Cos(pitch),
		Y: -math.Sin(pitch),
		Z: math.Cos(yaw) * math.Cos(pitch),
	}
	return forward.NormalizeOr(DefaultForward)
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return mgl64.DegToRad(deg)
}

// WrapDegrees maps any finite angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	if !isFinite(deg) {
		return 0
	}
	wrapped := math.Mod(deg, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	// Mod of a tiny negative value can round back up to exactly 360
	if wrapped >= 360 {
		wrapped = 0
	}
	return wrapped
}

// SignedAngleDelta returns the shortest signed difference to-from in (-180, 180].
func SignedAngleDelta(from, to float64) float64 {
	d := WrapDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// sanitizeDelta treats negative and non-finite frame deltas as zero.
func sanitizeDelta(dt float64) float64 {
	if !isFinite(dt) || dt < 0 {
		return 0
	}
	return dt
}
