package camera

import (
	"math"

	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

const (
	// DefaultAutoRotateSpeed matches a slow drift: one full turn every
	// 120 seconds.
	DefaultAutoRotateSpeed = 0.5

	// DefaultResumeAfter is how long the orbit waits after the last manual
	// move before auto-rotation resumes, in seconds.
	DefaultResumeAfter = 2.0

	// maxElevation keeps the camera away from the poles where the up
	// vector degenerates.
	maxElevation = math.Pi/2 - 0.1
)

// Orbit moves a camera on a sphere around the globe center. Azimuth and
// elevation are in radians; azimuth 0 looks along -Z from +Z.
//
// Orbit is not safe for concurrent use.
type Orbit struct {
	Azimuth   float64
	Elevation float64
	Distance  float64

	// AutoRotate enables the idle drift
	AutoRotate bool

	// AutoRotateSpeed is in turns per minute, so 0.5 is a turn every 2 minutes
	AutoRotateSpeed float64

	// ResumeAfter is the idle time before drifting again after a manual move
	ResumeAfter float64

	radius      float64
	minDistance float64
	maxDistance float64

	interacting bool
	idle        float64

	home orbitHome
}

// orbitHome is the spherical position an Orbit resets to.
type orbitHome struct {
	azimuth, elevation, distance float64
}

// NewOrbit starts from the default camera position for radius.
func NewOrbit(radius float64) *Orbit {
	o := &Orbit{
		AutoRotate:      true,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
		ResumeAfter:     DefaultResumeAfter,
	}
	o.setRadius(radius)

	pos := Default(radius).Position
	o.Distance = pos.Length()
	o.Elevation = math.Asin(pos.Y / o.Distance)
	o.Azimuth = math.Atan2(pos.X, pos.Z)
	o.home = orbitHome{azimuth: o.Azimuth, elevation: o.Elevation, distance: o.Distance}
	o.idle = o.ResumeAfter

	return o
}

func (o *Orbit) setRadius(radius float64) {
	o.radius = radius
	o.minDistance = 1.5 * radius
	o.maxDistance = 4 * radius
}

// Radius returns the globe radius the orbit is sized for.
func (o *Orbit) Radius() float64 {
	return o.radius
}

// SetRadius rescales the orbit for a new globe radius, keeping the view
// direction and relative zoom.
func (o *Orbit) SetRadius(radius float64) {
	if radius <= 0 || radius == o.radius {
		return
	}
	k := radius / o.radius
	o.setRadius(radius)
	o.Distance = geo.Clamp(o.Distance*k, o.minDistance, o.maxDistance)
	o.home.distance *= k
}

// BeginInteraction pauses auto-rotation until EndInteraction.
func (o *Orbit) BeginInteraction() {
	o.interacting = true
	o.idle = 0
}

// EndInteraction lets auto-rotation resume after ResumeAfter seconds.
func (o *Orbit) EndInteraction() {
	o.interacting = false
	o.idle = 0
}

// Interacting reports whether a manual interaction is in progress.
func (o *Orbit) Interacting() bool {
	return o.interacting
}

// Rotate turns the camera by the given angles in radians. Elevation stays
// clear of the poles.
func (o *Orbit) Rotate(dAzimuth, dElevation float64) {
	o.Azimuth = wrapAngle(o.Azimuth + dAzimuth)
	o.Elevation = geo.Clamp(o.Elevation+dElevation, -maxElevation, maxElevation)
	o.idle = 0
}

// Zoom multiplies the camera distance by factor. Factors below 1 move
// closer. The distance stays within [1.5, 4] globe radii.
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	o.Distance = geo.Clamp(o.Distance*factor, o.minDistance, o.maxDistance)
	o.idle = 0
}

// Reset returns to the starting position.
func (o *Orbit) Reset() {
	o.Azimuth = o.home.azimuth
	o.Elevation = o.home.elevation
	o.Distance = geo.Clamp(o.home.distance, o.minDistance, o.maxDistance)
	o.idle = 0
}

// Update advances auto-rotation by elapsed seconds.
func (o *Orbit) Update(elapsed float64) {
	if elapsed <= 0 || math.IsNaN(elapsed) {
		return
	}
	if o.interacting {
		return
	}
	if o.idle < o.ResumeAfter {
		o.idle += elapsed
		return
	}
	if !o.AutoRotate {
		return
	}
	o.Azimuth = wrapAngle(o.Azimuth - 2*math.Pi/60*o.AutoRotateSpeed*elapsed)
}

// Position returns the camera position in globe space.
func (o *Orbit) Position() geo.Vec3 {
	cosEl := math.Cos(o.Elevation)
	return geo.Vec3{
		X: o.Distance * cosEl * math.Sin(o.Azimuth),
		Y: o.Distance * math.Sin(o.Elevation),
		Z: o.Distance * cosEl * math.Cos(o.Azimuth),
	}
}

// Camera returns the camera for a viewport with the given aspect ratio.
func (o *Orbit) Camera(aspect float64) Camera {
	cam := Default(o.radius)
	cam.Position = o.Position()
	cam.Aspect = aspect
	return cam
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
