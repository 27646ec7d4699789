package arc

import (
	"math"

	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

const (
	// DefaultSamples is the number of points sampled along an arc.
	DefaultSamples = 51

	// DefaultHeightFactor is how far above the globe surface the arc's
	// control point is raised.
	DefaultHeightFactor = 0.5
)

// Build returns the arc between two cities as samples evenly spaced points
// on a quadratic Bézier curve. The control point is the endpoints' midpoint
// pushed out to radius+heightFactor, so the arc bulges away from the globe.
//
// The first point is from.Position and the last is to.Position.
// samples below 2 are raised to 2.
func Build(from, to catalog.City, radius, heightFactor float64, samples int) []geo.Vec3 {
	return BuildPoints(from.Position, to.Position, radius, heightFactor, samples)
}

// BuildPoints is Build for raw endpoints.
func BuildPoints(start, end geo.Vec3, radius, heightFactor float64, samples int) []geo.Vec3 {
	if samples < 2 {
		samples = 2
	}

	control := controlDirection(start, end).Scale(radius + heightFactor)

	path := make([]geo.Vec3, samples)
	last := float64(samples - 1)
	for i := range path {
		path[i] = quadratic(start, control, end, float64(i)/last)
	}
	// Pin endpoints exactly.
	path[0] = start
	path[samples-1] = end

	return path
}

// controlDirection is the unit direction of the control point. For nearly
// antipodal endpoints the midpoint collapses toward the origin, so a
// direction perpendicular to the endpoints is used instead.
func controlDirection(start, end geo.Vec3) geo.Vec3 {
	mid := start.Lerp(end, 0.5)
	scale := math.Max(start.Length(), end.Length())
	if scale == 0 || mid.Length() > 1e-6*scale {
		return mid.Normalize()
	}

	axis := geo.Vec3{Y: 1}
	if math.Abs(start.Normalize().Dot(axis)) > 0.9 {
		axis = geo.Vec3{X: 1}
	}
	perp := start.Cross(axis).Cross(start)
	return perp.Normalize()
}

func quadratic(p0, p1, p2 geo.Vec3, t float64) geo.Vec3 {
	u := 1 - t
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}

// Truncate returns the leading part of path for a draw progress fraction:
// max(2, floor(len(path)*fraction)) points, never more than the path holds.
// fraction is clamped to [0, 1]. The result shares path's backing array and
// must be treated as read-only.
func Truncate(path []geo.Vec3, fraction float64) []geo.Vec3 {
	if len(path) <= 2 {
		return path
	}
	if math.IsNaN(fraction) {
		fraction = 0
	}
	fraction = geo.Clamp(fraction, 0, 1)

	n := int(math.Floor(float64(len(path)) * fraction))
	if n < 2 {
		n = 2
	}
	if n > len(path) {
		n = len(path)
	}
	return path[:n:n]
}
