package flights

import (
	"errors"
	"fmt"
	"math"

	"github.com/jeslor/globe-with-connecting-cities/pkg/arc"
	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

// ErrInvalidParams is returned by NewManager when the parameters cannot
// drive the animation.
var ErrInvalidParams = errors.New("invalid flight parameters")

// Params tunes the flight animation.
type Params struct {
	// MaxActive is the number of flights kept alive at once
	MaxActive int

	// FadeIn is the time in seconds for a new arc to reach full opacity
	FadeIn float64

	// FadeOut is the time in seconds for a finished arc to disappear
	FadeOut float64

	// MinDuration and MaxDuration bound the random draw time of an arc in seconds
	MinDuration float64
	MaxDuration float64

	// MaxDelta caps the elapsed time of a single tick in seconds.
	// A stalled frame then advances flights by at most this much.
	MaxDelta float64

	// ArcHeight is how far above the globe surface the arc control point sits
	ArcHeight float64

	// ArcSamples is the number of points per arc
	ArcSamples int
}

// DefaultParams returns the standard animation settings.
func DefaultParams() Params {
	return Params{
		MaxActive:   20,
		FadeIn:      0.4,
		FadeOut:     0.6,
		MinDuration: 1.5,
		MaxDuration: 3.0,
		MaxDelta:    0.25,
		ArcHeight:   arc.DefaultHeightFactor,
		ArcSamples:  arc.DefaultSamples,
	}
}

// Validate checks that the parameters describe a runnable animation.
func (p Params) Validate() error {
	switch {
	case p.MaxActive <= 0:
		return fmt.Errorf("%w: max active must be positive, got %d", ErrInvalidParams, p.MaxActive)
	case p.FadeIn <= 0 || p.FadeOut <= 0:
		return fmt.Errorf("%w: fade durations must be positive (in=%v out=%v)", ErrInvalidParams, p.FadeIn, p.FadeOut)
	case p.MinDuration <= 0 || p.MaxDuration < p.MinDuration:
		return fmt.Errorf("%w: duration range [%v, %v]", ErrInvalidParams, p.MinDuration, p.MaxDuration)
	case p.MaxDelta <= 0:
		return fmt.Errorf("%w: max delta must be positive, got %v", ErrInvalidParams, p.MaxDelta)
	case p.ArcSamples < 2:
		return fmt.Errorf("%w: arc needs at least 2 samples, got %d", ErrInvalidParams, p.ArcSamples)
	}
	return nil
}

// Source is the randomness used to pick routes and durations.
type Source interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Float64 returns a uniform value in [0, 1)
	Float64() float64
}

// TickReport summarizes what happened during one Tick.
type TickReport struct {
	// Elapsed is the time step actually applied, after clamping
	Elapsed float64

	// Grown lists flights whose growth-complete edge fired
	Grown []int

	// Retired lists flights that reached Done and were removed
	Retired []int

	// Spawned lists flights created to replace them
	Spawned []int
}

// Manager owns the pool of active flights. It is driven from a single
// animation loop and is not safe for concurrent use.
type Manager struct {
	catalog *catalog.Catalog
	params  Params
	rng     Source

	flights []Flight
	nextID  int

	onGrowth func(Flight)
}

// NewManager creates an empty manager. Call Warm to populate it.
func NewManager(cat *catalog.Catalog, params Params, rng Source) (*Manager, error) {
	if cat == nil || cat.Len() < 2 {
		n := 0
		if cat != nil {
			n = cat.Len()
		}
		return nil, fmt.Errorf("flight manager: %w: got %d", catalog.ErrTooFewCities, n)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("flight manager: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("flight manager: %w: nil random source", ErrInvalidParams)
	}

	return &Manager{
		catalog: cat,
		params:  params,
		rng:     rng,
		flights: make([]Flight, 0, params.MaxActive),
	}, nil
}

// SetGrowthHandler registers fn to be called once per flight when its arc
// is first fully drawn. Pass nil to remove the handler.
func (m *Manager) SetGrowthHandler(fn func(Flight)) {
	m.onGrowth = fn
}

// Params returns the manager's parameters.
func (m *Manager) Params() Params {
	return m.params
}

// Catalog returns the catalog flights are drawn from.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Flights returns a copy of the active flights in spawn order.
func (m *Manager) Flights() []Flight {
	out := make([]Flight, len(m.flights))
	copy(out, m.flights)
	return out
}

// Len returns the number of flights in the active set.
func (m *Manager) Len() int {
	return len(m.flights)
}

// Count returns the number of active flights with the given status.
func (m *Manager) Count(s Status) int {
	n := 0
	for i := range m.flights {
		if m.flights[i].Status == s {
			n++
		}
	}
	return n
}

// live counts flights that still occupy a slot.
func (m *Manager) live() int {
	return len(m.flights) - m.Count(Done)
}

// Spawn adds one flight between two random distinct cities. It does nothing
// and returns false when MaxActive flights are already live.
func (m *Manager) Spawn() (Flight, bool) {
	if m.live() >= m.params.MaxActive {
		return Flight{}, false
	}

	n := m.catalog.Len()
	from := m.catalog.At(m.rng.Intn(n))
	to := m.catalog.At(m.rng.Intn(n))
	for to.Name == from.Name {
		to = m.catalog.At(m.rng.Intn(n))
	}

	duration := m.params.MinDuration + m.rng.Float64()*(m.params.MaxDuration-m.params.MinDuration)

	f := Flight{
		ID:       m.nextID,
		From:     from,
		To:       to,
		Progress: 0,
		Opacity:  0,
		Speed:    1 / duration,
		Status:   Growing,
		Path:     m.buildPath(from, to),
	}
	m.nextID++
	m.flights = append(m.flights, f)

	return f, true
}

// Replenish spawns flights until MaxActive are live and returns the new IDs.
func (m *Manager) Replenish() []int {
	var ids []int
	for m.live() < m.params.MaxActive {
		f, ok := m.Spawn()
		if !ok {
			break
		}
		ids = append(ids, f.ID)
	}
	return ids
}

// Warm fills an empty (or depleted) pool before the first tick and returns
// the number of flights spawned.
func (m *Manager) Warm() int {
	return len(m.Replenish())
}

// Tick advances every active flight by elapsed seconds.
//
// All flights use the same clamped step. A flight's growth-complete edge is
// evaluated after its own update, fires once per flight, notifies the growth
// handler and spawns one extra flight. Done flights are dropped into a fresh
// slice, then the pool is topped back up to MaxActive.
func (m *Manager) Tick(elapsed float64) TickReport {
	elapsed = m.sanitize(elapsed)
	report := TickReport{Elapsed: elapsed}

	next := make([]Flight, 0, max(len(m.flights), m.params.MaxActive))
	var grown []Flight
	for _, f := range m.flights {
		if f.advance(elapsed, m.params) {
			grown = append(grown, f)
			report.Grown = append(report.Grown, f.ID)
		}
		if f.Status == Done {
			report.Retired = append(report.Retired, f.ID)
			continue
		}
		next = append(next, f)
	}
	m.flights = next

	for _, f := range grown {
		if m.onGrowth != nil {
			m.onGrowth(f)
		}
		if nf, ok := m.Spawn(); ok {
			report.Spawned = append(report.Spawned, nf.ID)
		}
	}
	report.Spawned = append(report.Spawned, m.Replenish()...)

	return report
}

// sanitize clamps a frame delta into [0, MaxDelta]. NaN counts as no time.
func (m *Manager) sanitize(elapsed float64) float64 {
	if math.IsNaN(elapsed) || elapsed < 0 {
		return 0
	}
	if elapsed > m.params.MaxDelta {
		return m.params.MaxDelta
	}
	return elapsed
}

// Rebuild switches to a catalog projected at a different radius. Every
// active flight has its endpoints re-resolved by name and its arc rebuilt.
func (m *Manager) Rebuild(cat *catalog.Catalog) error {
	if cat == nil || cat.Len() < 2 {
		return fmt.Errorf("rebuild flights: %w", catalog.ErrTooFewCities)
	}

	next := make([]Flight, len(m.flights))
	for i, f := range m.flights {
		from, ok := cat.Lookup(f.From.Name)
		if !ok {
			return fmt.Errorf("rebuild flights: city %q missing from new catalog", f.From.Name)
		}
		to, ok := cat.Lookup(f.To.Name)
		if !ok {
			return fmt.Errorf("rebuild flights: city %q missing from new catalog", f.To.Name)
		}
		f.From, f.To = from, to
		f.Path = m.buildPathAt(cat.Radius(), from, to)
		next[i] = f
	}

	m.catalog = cat
	m.flights = next
	return nil
}

func (m *Manager) buildPath(from, to catalog.City) []geo.Vec3 {
	return m.buildPathAt(m.catalog.Radius(), from, to)
}

func (m *Manager) buildPathAt(radius float64, from, to catalog.City) []geo.Vec3 {
	return arc.Build(from, to, radius, m.params.ArcHeight, m.params.ArcSamples)
}
