package arc

import (
	"math"
	"testing"

	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

func testCities(t *testing.T, radius float64) (catalog.City, catalog.City) {
	t.Helper()
	c := catalog.Default(radius)
	london, ok := c.Lookup("London")
	if !ok {
		t.Fatal("London missing from default catalog")
	}
	tokyo, ok := c.Lookup("Tokyo")
	if !ok {
		t.Fatal("Tokyo missing from default catalog")
	}
	return london, tokyo
}

func TestBuildEndpoints(t *testing.T) {
	from, to := testCities(t, 2.4)

	path := Build(from, to, 2.4, DefaultHeightFactor, DefaultSamples)

	if len(path) != 51 {
		t.Fatalf("len(path) = %d, want 51", len(path))
	}
	if !path[0].ApproxEqual(from.Position, 1e-9) {
		t.Errorf("first point = %+v, want %+v", path[0], from.Position)
	}
	if !path[50].ApproxEqual(to.Position, 1e-9) {
		t.Errorf("last point = %+v, want %+v", path[50], to.Position)
	}
}

func TestBuildBulgesOutward(t *testing.T) {
	c := catalog.Default(2.0)
	london, _ := c.Lookup("London")
	paris, _ := c.Lookup("Paris")

	// Short hops stay above the surface along their whole length.
	hop := Build(london, paris, 2.0, 0.5, 51)
	for i := 1; i < len(hop)-1; i++ {
		if r := hop[i].Length(); r <= 2.0 {
			t.Errorf("sample %d at radius %.4f, want above the surface", i, r)
		}
	}

	from, to := testCities(t, 2.0)
	path := Build(from, to, 2.0, 0.5, 51)

	// The apex of a quadratic Bézier is halfway to the control point.
	mid := path[25]
	control := from.Position.Lerp(to.Position, 0.5).Normalize().Scale(2.5)
	want := from.Position.Lerp(to.Position, 0.5).Lerp(control, 0.5)
	if !mid.ApproxEqual(want, 1e-9) {
		t.Errorf("midpoint = %+v, want %+v", mid, want)
	}
}

func TestBuildMinimumSamples(t *testing.T) {
	from, to := testCities(t, 1)
	for _, n := range []int{-1, 0, 1, 2} {
		if got := len(Build(from, to, 1, 0.5, n)); got != 2 {
			t.Errorf("samples=%d gave %d points, want 2", n, got)
		}
	}
}

func TestBuildAntipodal(t *testing.T) {
	a := geo.Project(0, 0, 1)
	b := geo.Project(0, 180, 1)
	path := BuildPoints(a, b, 1, 0.5, 11)

	for i, p := range path {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			t.Fatalf("sample %d is NaN", i)
		}
	}
	if r := path[5].Length(); r < 0.5 {
		t.Errorf("antipodal apex radius = %.4f, arc collapsed through the globe", r)
	}
}

func TestTruncate(t *testing.T) {
	from, to := testCities(t, 1)
	path := Build(from, to, 1, 0.5, 51)

	tests := []struct {
		name     string
		fraction float64
		want     int
	}{
		{"Zero", 0, 2},
		{"Tiny", 0.01, 2},
		{"Half", 0.5, 25},
		{"Nearly full", 0.99, 50},
		{"Full", 1, 51},
		{"Negative", -1, 2},
		{"Above one", 2, 51},
		{"NaN", math.NaN(), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(path, tt.fraction)
			if len(got) != tt.want {
				t.Errorf("Truncate(%v) has %d points, want %d", tt.fraction, len(got), tt.want)
			}
			if got[0] != path[0] {
				t.Error("truncated path must start at the origin city")
			}
		})
	}
}

func TestTruncateShortPath(t *testing.T) {
	short := []geo.Vec3{{X: 1}, {X: 2}}
	if got := Truncate(short, 0); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestTruncateDoesNotAllowAppendIntoPath(t *testing.T) {
	path := BuildPoints(geo.Vec3{X: 1}, geo.Vec3{Y: 1}, 1, 0.5, 10)
	prefix := Truncate(path, 0.5)
	before := path[len(prefix)]
	_ = append(prefix, geo.Vec3{Z: 99})
	if path[len(prefix)] != before {
		t.Error("appending to a truncated path overwrote the cached arc")
	}
}
