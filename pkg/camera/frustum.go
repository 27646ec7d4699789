package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

// Plane is the set of points p with Normal·p + D = 0. Points with a positive
// distance are on the inner side.
type Plane struct {
	Normal geo.Vec3
	D      float64
}

// Distance returns the signed distance from the plane to p.
func (pl Plane) Distance(p geo.Vec3) float64 {
	return pl.Normal.Dot(p) + pl.D
}

// Frustum is the six planes bounding a camera's view volume, with normals
// pointing inward: left, right, bottom, top, near, far.
type Frustum [6]Plane

// NewFrustum extracts the clipping planes from a view-projection matrix.
func NewFrustum(vp mgl64.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	combine := func(a, b mgl64.Vec4, sign float64) Plane {
		c := a.Add(b.Mul(sign))
		n := geo.FromMgl(c.Vec3())
		d := c.W()
		l := n.Length()
		if l == 0 {
			return Plane{Normal: n, D: d}
		}
		return Plane{Normal: n.Scale(1 / l), D: d / l}
	}

	return Frustum{
		combine(r3, r0, 1),
		combine(r3, r0, -1),
		combine(r3, r1, 1),
		combine(r3, r1, -1),
		combine(r3, r2, 1),
		combine(r3, r2, -1),
	}
}

// Contains reports whether p is inside or on the boundary of every plane.
func (f Frustum) Contains(p geo.Vec3) bool {
	for _, pl := range f {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}
