package flights

import (
	"github.com/jeslor/globe-with-connecting-cities/pkg/arc"
	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

// Status is a flight's animation phase. It only ever moves forward:
// Growing -> FadingOut -> Done.
type Status int

const (
	// Growing: the arc is being drawn and fading in.
	Growing Status = iota

	// FadingOut: the arc is fully drawn and its opacity is falling.
	FadingOut

	// Done: the flight is finished and will be dropped from the active set.
	Done
)

func (s Status) String() string {
	switch s {
	case Growing:
		return "growing"
	case FadingOut:
		return "fadingOut"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Flight is one animated arc between two cities.
type Flight struct {
	// ID is unique and increases with every spawned flight
	ID int

	// From and To are the endpoints; their names always differ
	From catalog.City
	To   catalog.City

	// Progress is the drawn fraction of the arc (0-1)
	Progress float64

	// Opacity is the arc's alpha (0-1)
	Opacity float64

	// Speed is progress per second (1 / duration)
	Speed float64

	// Status is the current animation phase
	Status Status

	// Path is the full sampled arc. It is shared between snapshots and
	// must not be modified.
	Path []geo.Vec3

	// grown latches the first time Progress reaches 1.
	grown bool
}

// Visible returns the part of the arc drawn so far.
func (f Flight) Visible() []geo.Vec3 {
	return arc.Truncate(f.Path, f.Progress)
}

// GrowthComplete reports whether the flight's growth-complete edge has fired.
func (f Flight) GrowthComplete() bool {
	return f.grown
}

// Duration returns the time in seconds the arc takes to draw.
func (f Flight) Duration() float64 {
	if f.Speed == 0 {
		return 0
	}
	return 1 / f.Speed
}

// DistanceKm is the great-circle distance between the endpoints.
func (f Flight) DistanceKm() float64 {
	return geo.DistanceKm(f.From.Geo, f.To.Geo)
}

// snapEpsilon absorbs the rounding left by summing per-frame deltas, so a
// 2s arc at 60fps completes on frame 120 rather than 121.
const snapEpsilon = 1e-9

func snapToOne(v float64) float64 {
	if v >= 1-snapEpsilon {
		return 1
	}
	return v
}

// advance moves the flight forward by elapsed seconds and reports whether
// the growth-complete edge fired during this step.
func (f *Flight) advance(elapsed float64, p Params) bool {
	switch f.Status {
	case Growing:
		f.Progress = snapToOne(f.Progress + elapsed*f.Speed)
		f.Opacity = snapToOne(f.Opacity + elapsed/p.FadeIn)
		if f.Progress >= 1 && f.Opacity >= 1 {
			f.Status = FadingOut
		}
	case FadingOut:
		f.Opacity = max(f.Opacity-elapsed/p.FadeOut, 0)
		if f.Opacity <= 0 {
			f.Status = Done
		}
	}

	if f.Progress < 1 {
		f.grown = false
		return false
	}
	if f.grown {
		return false
	}
	f.grown = true
	return true
}
