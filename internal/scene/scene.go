// Package scene composes the globe, the flights, the camera and the
// starfield into per-frame snapshots for the terminal hosts.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/jeslor/globe-with-connecting-cities/internal/logging"
	"github.com/jeslor/globe-with-connecting-cities/pkg/camera"
	"github.com/jeslor/globe-with-connecting-cities/pkg/config"
	"github.com/jeslor/globe-with-connecting-cities/pkg/flights"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
	"github.com/jeslor/globe-with-connecting-cities/pkg/rand"
	"github.com/jeslor/globe-with-connecting-cities/pkg/starfield"
)

// CellWidthPx approximates the pixel width of one terminal column. It turns
// a column count into a viewport width for the radius tiers.
const CellWidthPx = 8

// Stats are running totals since the scene was created.
type Stats struct {
	Frames   int
	Seconds  float64
	Spawned  int
	Arrived  int
	Retired  int
	Rebuilds int
}

// Scene owns all animated state. It is not safe for concurrent use; hosts
// serialize access from their frame loop and input handlers.
type Scene struct {
	log *logging.Logger

	tiers   []geo.Tier
	radius  float64
	manager *flights.Manager
	orbit   *camera.Orbit
	stars   *starfield.Field
	grid    []geo.Vec3

	cols, rows int
	paused     bool
	labels     bool

	stats       Stats
	lastArrival string
}

// New builds a scene for a cols x rows terminal viewport and warm-starts
// the flight pool.
func New(cfg *config.Config, log *logging.Logger, cols, rows int) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	cols, rows = max(cols, 1), max(rows, 1)
	radius := geo.RadiusForWidthTiers(cols*CellWidthPx, cfg.Globe.Tiers)

	cat, err := cfg.Catalog(radius)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	seed := cfg.Render.Seed
	manager, err := flights.NewManager(cat, cfg.FlightParams(), rand.New(seed))
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	starSeed := seed
	if starSeed != 0 {
		starSeed++
	}

	orbit := camera.NewOrbit(radius)
	orbit.AutoRotate = cfg.Camera.AutoRotate
	orbit.AutoRotateSpeed = cfg.Camera.AutoRotateSpeed
	orbit.ResumeAfter = cfg.Camera.ResumeAfterSeconds

	s := &Scene{
		log:     log.With(slog.String("component", "scene")),
		tiers:   cfg.Globe.Tiers,
		radius:  radius,
		manager: manager,
		orbit:   orbit,
		stars:   starfield.New(cfg.Render.Stars, float64(cols), float64(rows), rand.New(starSeed)),
		grid:    graticule(radius),
		cols:    cols,
		rows:    rows,
		labels:  cfg.Render.ShowLabels,
	}
	manager.SetGrowthHandler(s.onArrival)

	s.stats.Spawned = manager.Warm()
	s.log.Info("scene ready",
		slog.Int("cols", cols), slog.Int("rows", rows),
		slog.Float64("radius", radius),
		slog.Int("cities", cat.Len()),
		slog.Int("flights", manager.Len()))

	return s, nil
}

func (s *Scene) onArrival(f flights.Flight) {
	s.stats.Arrived++
	s.lastArrival = f.To.Name
	s.log.Debug("flight arrived",
		slog.Int("id", f.ID),
		slog.String("from", f.From.Name),
		slog.String("to", f.To.Name))
}

// Tick advances the animation by elapsed seconds. A paused scene ignores
// ticks.
func (s *Scene) Tick(elapsed float64) flights.TickReport {
	if s.paused {
		return flights.TickReport{}
	}

	r := s.manager.Tick(elapsed)
	s.orbit.Update(r.Elapsed)
	s.stars.Step()

	s.stats.Frames++
	s.stats.Seconds += r.Elapsed
	s.stats.Spawned += len(r.Spawned)
	s.stats.Retired += len(r.Retired)

	if len(r.Retired) > 0 || len(r.Spawned) > 0 {
		s.log.Debug("flights turned over",
			slog.Any("retired", r.Retired),
			slog.Any("spawned", r.Spawned))
	}
	return r
}

// Resize reacts to a new terminal size. The star field is regenerated and,
// when the width moves into another tier, the catalog is reprojected and
// every active flight path rebuilt. It reports whether the radius changed.
func (s *Scene) Resize(cols, rows int) (bool, error) {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != s.cols || rows != s.rows {
		s.cols, s.rows = cols, rows
		s.stars.Resize(float64(cols), float64(rows))
	}

	radius := geo.RadiusForWidthTiers(cols*CellWidthPx, s.tiers)
	if radius == s.radius {
		return false, nil
	}

	cat := s.manager.Catalog().Reproject(radius)
	if err := s.manager.Rebuild(cat); err != nil {
		s.log.Error("rebuild failed", slog.Any("error", err))
		return false, fmt.Errorf("scene resize: %w", err)
	}

	s.log.Info("globe radius changed",
		slog.Float64("from", s.radius),
		slog.Float64("to", radius),
		slog.Int("cols", cols))

	s.radius = radius
	s.orbit.SetRadius(radius)
	s.grid = graticule(radius)
	s.stats.Rebuilds++
	return true, nil
}

// Radius returns the current globe radius.
func (s *Scene) Radius() float64 {
	return s.radius
}

// Size returns the viewport in cells.
func (s *Scene) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Orbit exposes the camera controller for input handling.
func (s *Scene) Orbit() *camera.Orbit {
	return s.orbit
}

// Manager exposes the flight manager.
func (s *Scene) Manager() *flights.Manager {
	return s.manager
}

// Paused reports whether ticks are ignored.
func (s *Scene) Paused() bool {
	return s.paused
}

// TogglePause pauses or resumes the animation.
func (s *Scene) TogglePause() bool {
	s.paused = !s.paused
	s.log.Info("pause toggled", slog.Bool("paused", s.paused))
	return s.paused
}

// ToggleLabels shows or hides city names.
func (s *Scene) ToggleLabels() bool {
	s.labels = !s.labels
	return s.labels
}

// LastArrival names the destination of the most recent arrival.
func (s *Scene) LastArrival() string {
	return s.lastArrival
}

// Stats returns the running totals.
func (s *Scene) Stats() Stats {
	return s.stats
}

// graticule samples meridians every 30° and parallels every 30° as points
// on the globe.
func graticule(radius float64) []geo.Vec3 {
	var pts []geo.Vec3
	for lon := -180.0; lon < 180; lon += 30 {
		for lat := -85.0; lat <= 85; lat += 5 {
			pts = append(pts, geo.Project(lat, lon, radius))
		}
	}
	for lat := -60.0; lat <= 60; lat += 30 {
		for lon := -180.0; lon < 180; lon += 5 {
			pts = append(pts, geo.Project(lat, lon, radius))
		}
	}
	return pts
}
