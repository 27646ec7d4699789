package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

// Camera is a perspective camera in globe space. The globe is centered at
// the origin.
type Camera struct {
	Position geo.Vec3
	Target   geo.Vec3
	Up       geo.Vec3

	// FovY is the vertical field of view in degrees
	FovY float64

	// Aspect is viewport width / height
	Aspect float64

	Near float64
	Far  float64
}

// Default returns the starting camera for a globe of the given radius:
// placed at (0, 2, 6) for the 2.4 globe and scaled with it, looking at the
// center.
func Default(radius float64) Camera {
	scale := radius / 2.4
	return Camera{
		Position: geo.Vec3{X: 0, Y: 2 * scale, Z: 6 * scale},
		Target:   geo.Vec3{},
		Up:       geo.Vec3{Y: 1},
		FovY:     60,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c Camera) ViewMatrix() mgl64.Mat4 {
	return LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the camera-to-clip transform.
func (c Camera) ProjectionMatrix() mgl64.Mat4 {
	return Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns the combined world-to-clip transform.
func (c Camera) ViewProjection() mgl64.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Frustum returns the camera's view volume.
func (c Camera) Frustum() Frustum {
	return NewFrustum(c.ViewProjection())
}

// IsCityVisible reports whether a city marker should be drawn: it must lie
// inside the camera frustum and face the camera, meaning its surface normal
// points toward the camera as seen from the globe center.
func IsCityVisible(city catalog.City, cam Camera) bool {
	return NewViewpoint(cam).Visible(city.Position)
}

// Occluded reports whether the globe of the given radius hides p from the
// camera. p may be on or above the surface.
func Occluded(p geo.Vec3, radius float64, cam Camera) bool {
	return occluded(cam.Position, p, radius)
}

func occluded(eye, p geo.Vec3, radius float64) bool {
	d := p.Sub(eye)
	a := d.Dot(d)
	if a == 0 {
		return false
	}
	b := 2 * eye.Dot(d)
	c := eye.Dot(eye) - radius*radius
	if c <= 0 {
		// eye inside the globe
		return false
	}

	disc := b*b - 4*a*c
	if disc <= 0 {
		return false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)

	// Points on the surface hit the sphere at t = 1 themselves.
	return t > 0 && t < 1-1e-6
}

// Project maps p to viewport coordinates for a width x height viewport with
// the origin at the top left. ok is false when p is behind the camera or
// outside the view volume.
func Project(p geo.Vec3, cam Camera, width, height float64) (x, y float64, ok bool) {
	return project(cam.ViewProjection(), p, width, height)
}

func project(vp mgl64.Mat4, p geo.Vec3, width, height float64) (float64, float64, bool) {
	c := transform(vp, p)
	cx, cy, cz, cw := c.X(), c.Y(), c.Z(), c.W()
	if cw <= 0 {
		return 0, 0, false
	}
	nx, ny, nz := cx/cw, cy/cw, cz/cw

	x := (nx + 1) / 2 * width
	y := (1 - ny) / 2 * height
	ok := nx >= -1 && nx <= 1 && ny >= -1 && ny <= 1 && nz >= -1 && nz <= 1
	return x, y, ok
}

// Viewpoint caches a camera's matrices for evaluating many points in one
// frame.
type Viewpoint struct {
	Camera  Camera
	vp      mgl64.Mat4
	frustum Frustum
}

// NewViewpoint precomputes the view-projection and frustum of cam.
func NewViewpoint(cam Camera) Viewpoint {
	vp := cam.ViewProjection()
	return Viewpoint{
		Camera:  cam,
		vp:      vp,
		frustum: NewFrustum(vp),
	}
}

// Visible applies the city visibility rule to a surface point.
func (v Viewpoint) Visible(p geo.Vec3) bool {
	if !v.frustum.Contains(p) {
		return false
	}
	toCamera := v.Camera.Position.Sub(geo.Vec3{})
	return p.Normalize().Dot(toCamera) > 0
}

// Occluded reports whether the globe hides p.
func (v Viewpoint) Occluded(p geo.Vec3, radius float64) bool {
	return occluded(v.Camera.Position, p, radius)
}

// Project maps p to viewport coordinates. See Project.
func (v Viewpoint) Project(p geo.Vec3, width, height float64) (float64, float64, bool) {
	return project(v.vp, p, width, height)
}

// Contains reports whether p is inside the view volume.
func (v Viewpoint) Contains(p geo.Vec3) bool {
	return v.frustum.Contains(p)
}
