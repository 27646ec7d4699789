package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector. It is a value type: every operation returns a new
// vector, so no scratch objects need to be shared between frames. The
// arithmetic is done by mgl64; Vec3 keeps named fields for readability at
// the call sites.
type Vec3 struct{ X, Y, Z float64 }

// FromMgl converts an mgl64 vector.
func FromMgl(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

// Mgl returns v as an mgl64 vector.
func (v Vec3) Mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

// Add returns the sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 { return FromMgl(v.Mgl().Add(o.Mgl())) }

// Sub returns the difference between two vectors
func (v Vec3) Sub(o Vec3) Vec3 { return FromMgl(v.Mgl().Sub(o.Mgl())) }

// Scale multiplies a vector by a scalar
func (v Vec3) Scale(k float64) Vec3 { return FromMgl(v.Mgl().Mul(k)) }

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float64 { return v.Mgl().Dot(o.Mgl()) }

// Cross returns the cross product of two vectors
func (v Vec3) Cross(o Vec3) Vec3 { return FromMgl(v.Mgl().Cross(o.Mgl())) }

// Length returns the Euclidean length of the vector
func (v Vec3) Length() float64 { return v.Mgl().Len() }

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	if v == (Vec3{}) {
		return Vec3{}
	}
	return FromMgl(v.Mgl().Normalize())
}

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	a := v.Mgl()
	return FromMgl(a.Add(o.Mgl().Sub(a).Mul(t)))
}

// Distance returns the distance between two points.
func (v Vec3) Distance(o Vec3) float64 { return v.Sub(o).Length() }

// ApproxEqual reports whether every component differs by at most eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps &&
		math.Abs(v.Y-o.Y) <= eps &&
		math.Abs(v.Z-o.Z) <= eps
}
