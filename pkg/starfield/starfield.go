// Package starfield animates the twinkling background behind the globe.
package starfield

import (
	"github.com/jeslor/globe-with-connecting-cities/pkg/rand"
)

// DefaultCount is the number of stars in a field.
const DefaultCount = 500

// Star is one background point. X and Y are viewport coordinates.
type Star struct {
	X, Y     float64
	Radius   float64
	Alpha    float64
	Velocity float64
}

// Field is a set of stars covering a viewport. It is not safe for
// concurrent use.
type Field struct {
	stars  []Star
	count  int
	width  float64
	height float64
	rng    *rand.Rand
}

// New creates a field of count stars spread over a width x height viewport.
func New(count int, width, height float64, rng *rand.Rand) *Field {
	if count < 0 {
		count = 0
	}
	f := &Field{count: count, rng: rng}
	f.Resize(width, height)
	return f
}

// Resize regenerates every star for the new viewport size.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
	f.stars = make([]Star, f.count)
	for i := range f.stars {
		f.stars[i] = Star{
			X:        f.rng.Float64() * width,
			Y:        f.rng.Float64() * height,
			Radius:   f.rng.Range(0.5, 1.5),
			Alpha:    f.rng.Float64(),
			Velocity: f.rng.Range(0.001, 0.006) * f.rng.Sign(),
		}
	}
}

// Step advances every star's twinkle by one frame. A star whose alpha
// leaves [0, 1] is clamped back and reverses direction.
func (f *Field) Step() {
	for i := range f.stars {
		s := &f.stars[i]
		s.Alpha += s.Velocity
		if s.Alpha > 1 || s.Alpha < 0 {
			s.Velocity = -s.Velocity
			s.Alpha = max(0, min(1, s.Alpha))
		}
	}
}

// Stars returns a copy of the current stars.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Size returns the viewport the field covers.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Len returns the number of stars.
func (f *Field) Len() int {
	return len(f.stars)
}
