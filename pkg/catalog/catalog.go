package catalog

import (
	"errors"
	"fmt"

	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

var (
	// ErrTooFewCities is returned when a catalog has fewer than two cities.
	// Picking a distinct destination would never terminate.
	ErrTooFewCities = errors.New("catalog needs at least 2 cities")

	// ErrDuplicateCity is returned when two entries share a name.
	ErrDuplicateCity = errors.New("duplicate city name")
)

// Entry is a named geographic coordinate used to build a catalog.
type Entry struct {
	Name string
	Geo  geo.GeoPoint
}

// City is a catalog entry with its position on the globe precomputed.
// Cities are values and never change after the catalog is built.
type City struct {
	// Name is unique within a catalog
	Name string

	// Geo is the city's latitude/longitude
	Geo geo.GeoPoint

	// Position is Geo projected onto the globe at the catalog radius
	Position geo.Vec3
}

// Catalog is an ordered, read-only list of cities projected at one radius.
type Catalog struct {
	radius  float64
	entries []Entry
	cities  []City
	byName  map[string]int
}

// New builds a catalog, projecting every entry at radius.
func New(radius float64, entries []Entry) (*Catalog, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewCities, len(entries))
	}

	c := &Catalog{
		radius:  radius,
		entries: make([]Entry, len(entries)),
		cities:  make([]City, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for _, e := range entries {
		if _, ok := c.byName[e.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCity, e.Name)
		}
		c.byName[e.Name] = len(c.cities)
		c.cities = append(c.cities, City{
			Name:     e.Name,
			Geo:      e.Geo,
			Position: geo.ProjectPoint(e.Geo, radius),
		})
	}

	return c, nil
}

// Default returns the built-in city list projected at radius.
func Default(radius float64) *Catalog {
	c, err := New(radius, DefaultEntries)
	if err != nil {
		// DefaultEntries is static data.
		panic(err)
	}
	return c
}

// Cities returns the cities in catalog order. The returned slice is a copy.
func (c *Catalog) Cities() []City {
	out := make([]City, len(c.cities))
	copy(out, c.cities)
	return out
}

// At returns the i-th city.
func (c *Catalog) At(i int) City {
	return c.cities[i]
}

// Len returns the number of cities.
func (c *Catalog) Len() int {
	return len(c.cities)
}

// Radius returns the globe radius the positions were projected at.
func (c *Catalog) Radius() float64 {
	return c.radius
}

// Lookup finds a city by name.
func (c *Catalog) Lookup(name string) (City, bool) {
	i, ok := c.byName[name]
	if !ok {
		return City{}, false
	}
	return c.cities[i], true
}

// Reproject returns a new catalog with the same cities projected at radius.
// The receiver is left unchanged.
func (c *Catalog) Reproject(radius float64) *Catalog {
	if radius == c.radius {
		return c
	}
	// Entries were validated when c was built.
	nc, _ := New(radius, c.entries)
	return nc
}
