package scene

import (
	"math"

	"github.com/jeslor/globe-with-connecting-cities/pkg/camera"
	"github.com/jeslor/globe-with-connecting-cities/pkg/flights"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
	"github.com/jeslor/globe-with-connecting-cities/pkg/starfield"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

// ScreenPoint is a projected point in cell coordinates. Hidden points are
// behind the globe or off screen.
type ScreenPoint struct {
	X, Y   float64
	Hidden bool
}

// FlightView is one flight as it should be drawn this frame.
type FlightView struct {
	ID       int
	From, To string
	Status   flights.Status
	Progress float64
	Opacity  float64

	// DistanceKm and Bearing describe the route for legends
	DistanceKm float64
	Bearing    float64

	// Points is the drawn part of the arc
	Points []ScreenPoint
}

// CityView is a city marker.
type CityView struct {
	Name    string
	X, Y    float64
	Visible bool
}

// Frame is a read-only snapshot of the scene for one render pass.
type Frame struct {
	Cols, Rows int
	Radius     float64
	Camera     camera.Camera

	// CenterX, CenterY and RadiusX, RadiusY outline the globe on screen
	CenterX, CenterY float64
	RadiusX, RadiusY float64

	Grid    []ScreenPoint
	Flights []FlightView
	Cities  []CityView
	Stars   []starfield.Star

	Paused      bool
	Labels      bool
	Stats       Stats
	LastArrival string
}

// Frame projects the current state into screen space.
func (s *Scene) Frame() Frame {
	cols, rows := float64(s.cols), float64(s.rows)
	cam := s.orbit.Camera(cols / (rows * cellAspect))
	vp := camera.NewViewpoint(cam)

	f := Frame{
		Cols:        s.cols,
		Rows:        s.rows,
		Radius:      s.radius,
		Camera:      cam,
		Stars:       s.stars.Stars(),
		Paused:      s.paused,
		Labels:      s.labels,
		Stats:       s.stats,
		LastArrival: s.lastArrival,
	}

	f.CenterX, f.CenterY, _ = vp.Project(geo.Vec3{}, cols, rows)
	d := cam.Position.Length()
	if d > s.radius {
		half := math.Tan(cam.FovY * geo.DegreesToRadians / 2)
		f.RadiusY = rows / 2 * math.Tan(math.Asin(s.radius/d)) / half
		f.RadiusX = f.RadiusY * cols / (rows * cam.Aspect)
	}

	f.Grid = make([]ScreenPoint, 0, len(s.grid))
	for _, p := range s.grid {
		if vp.Occluded(p, s.radius) {
			continue
		}
		x, y, ok := vp.Project(p, cols, rows)
		if ok {
			f.Grid = append(f.Grid, ScreenPoint{X: x, Y: y})
		}
	}

	for _, c := range s.manager.Catalog().Cities() {
		x, y, _ := vp.Project(c.Position, cols, rows)
		f.Cities = append(f.Cities, CityView{
			Name:    c.Name,
			X:       x,
			Y:       y,
			Visible: vp.Visible(c.Position),
		})
	}

	for _, fl := range s.manager.Flights() {
		visible := fl.Visible()
		view := FlightView{
			ID:         fl.ID,
			From:       fl.From.Name,
			To:         fl.To.Name,
			Status:     fl.Status,
			Progress:   fl.Progress,
			Opacity:    fl.Opacity,
			DistanceKm: fl.DistanceKm(),
			Bearing:    geo.Bearing(fl.From.Geo, fl.To.Geo),
			Points:     make([]ScreenPoint, len(visible)),
		}
		for i, p := range visible {
			x, y, ok := vp.Project(p, cols, rows)
			view.Points[i] = ScreenPoint{X: x, Y: y, Hidden: !ok || vp.Occluded(p, s.radius)}
		}
		f.Flights = append(f.Flights, view)
	}

	return f
}

// VisibleCities returns the names of cities facing the camera.
func (f Frame) VisibleCities() []string {
	var names []string
	for _, c := range f.Cities {
		if c.Visible {
			names = append(names, c.Name)
		}
	}
	return names
}
