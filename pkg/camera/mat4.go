package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

// LookAt builds a right-handed view matrix with the camera at eye looking at
// target. The camera looks down its local -Z axis.
func LookAt(eye, target, up geo.Vec3) mgl64.Mat4 {
	f := target.Sub(eye).Normalize()
	if f.Cross(up).Length() < 1e-12 {
		// up is parallel to the view direction; pick any other axis
		up = geo.Vec3{Z: 1}
		if math.Abs(f.Z) > 0.9 {
			up = geo.Vec3{X: 1}
		}
	}
	return mgl64.LookAtV(eye.Mgl(), target.Mgl(), up.Mgl())
}

// Perspective builds an OpenGL-style projection matrix. fovY is the vertical
// field of view in degrees. Visible points land in [-1, 1] on every axis
// after the perspective divide.
func Perspective(fovY, aspect, near, far float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(fovY), aspect, near, far)
}

// transform applies m to the point p (w = 1) and returns the homogeneous result.
func transform(m mgl64.Mat4, p geo.Vec3) mgl64.Vec4 {
	return m.Mul4x1(p.Mgl().Vec4(1))
}
