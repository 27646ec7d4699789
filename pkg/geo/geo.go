package geo

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusKm is the Earth's radius in kilometers (WGS84 mean radius)
	EarthRadiusKm = 6371.0
)

// GeoPoint is a position on the globe in decimal degrees.
type GeoPoint struct {
	// Lat in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Lat float64

	// Lon in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Lon float64
}

// ToRadians converts the point to radians.
// Returns (latRad, lonRad).
func (g GeoPoint) ToRadians() (float64, float64) {
	return g.Lat * DegreesToRadians, g.Lon * DegreesToRadians
}

// Project maps a latitude/longitude to a point on a sphere of the given
// radius centered at the origin.
//
// The polar angle is measured from +Y (phi = 90° - lat) and the azimuthal
// angle is the longitude offset by 180° (theta = lon + 180°):
//
//	x = -r·sin(phi)·cos(theta)
//	y =  r·cos(phi)
//	z =  r·sin(phi)·sin(theta)
//
// Resulting axis mapping:
//   - (0°, 0°)   -> +X (reference direction)
//   - (90°, any) -> +Y (north pole)
//   - (0°, 90°E) -> -Z
//   - (0°, 90°W) -> +Z
//
// Inputs are not clamped; out-of-range values wrap through the trig functions.
func Project(lat, lon, radius float64) Vec3 {
	phi := (90 - lat) * DegreesToRadians
	theta := (lon + 180) * DegreesToRadians

	sinPhi := math.Sin(phi)
	return Vec3{
		X: -radius * sinPhi * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Sin(theta),
	}
}

// ProjectPoint is Project for a GeoPoint.
func ProjectPoint(p GeoPoint, radius float64) Vec3 {
	return Project(p.Lat, p.Lon, radius)
}

// Bearing calculates the initial bearing (forward azimuth) from one point to another.
// Returns bearing in degrees (0-360), where 0/360 = North, 90 = East, 180 = South, 270 = West.
func Bearing(from, to GeoPoint) float64 {
	lat1, lon1 := from.ToRadians()
	lat2, lon2 := to.ToRadians()

	dLon := lon2 - lon1
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	bearing := math.Atan2(y, x) * RadiansToDegrees

	if bearing < 0 {
		bearing += 360
	}
	return bearing
}

// DistanceKm calculates the great-circle distance between two points
// using the Haversine formula.
func DistanceKm(from, to GeoPoint) float64 {
	lat1, lon1 := from.ToRadians()
	lat2, lon2 := to.ToRadians()

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Tier maps a viewport width bucket to a globe radius.
type Tier struct {
	// MaxWidth is the exclusive upper bound of the bucket in pixels.
	// Zero means unbounded and must only appear on the last tier.
	MaxWidth int `json:"max_width"`

	// Radius is the globe radius used for viewports in this bucket.
	Radius float64 `json:"radius"`
}

// DefaultTiers are the four viewport classes: phone, phone landscape,
// tablet and desktop.
var DefaultTiers = []Tier{
	{MaxWidth: 480, Radius: 1.0},
	{MaxWidth: 768, Radius: 1.5},
	{MaxWidth: 1024, Radius: 2.0},
	{MaxWidth: 0, Radius: 2.4},
}

// RadiusForWidth picks the globe radius for a viewport width using DefaultTiers.
func RadiusForWidth(width int) float64 {
	return RadiusForWidthTiers(width, DefaultTiers)
}

// RadiusForWidthTiers picks the globe radius for a viewport width from the
// given tiers. Bounded tiers are checked in ascending MaxWidth order; the
// unbounded tier (or the widest one, if none is unbounded) catches the rest.
func RadiusForWidthTiers(width int, tiers []Tier) float64 {
	if len(tiers) == 0 {
		return DefaultTiers[len(DefaultTiers)-1].Radius
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].MaxWidth, sorted[j].MaxWidth
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})

	for _, t := range sorted {
		if t.MaxWidth == 0 || width < t.MaxWidth {
			return t.Radius
		}
	}
	return sorted[len(sorted)-1].Radius
}

// Clamp limits x to [low, high].
func Clamp[T constraints.Float](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}
