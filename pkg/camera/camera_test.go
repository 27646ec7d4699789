package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jeslor/globe-with-connecting-cities/pkg/catalog"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

func onAxisCamera() Camera {
	cam := Default(2.4)
	cam.Position = geo.Vec3{Z: 10}
	return cam
}

func TestDefault(t *testing.T) {
	tests := []struct {
		radius float64
		want   geo.Vec3
	}{
		{2.4, geo.Vec3{Y: 2, Z: 6}},
		{1.2, geo.Vec3{Y: 1, Z: 3}},
		{1.0, geo.Vec3{Y: 2 / 2.4, Z: 6 / 2.4}},
	}

	for _, tt := range tests {
		cam := Default(tt.radius)
		if !cam.Position.ApproxEqual(tt.want, 1e-12) {
			t.Errorf("Default(%v).Position = %+v, want %+v", tt.radius, cam.Position, tt.want)
		}
		if cam.FovY != 60 || cam.Target != (geo.Vec3{}) {
			t.Errorf("Default(%v) = %+v", tt.radius, cam)
		}
	}
}

func TestLookAt(t *testing.T) {
	view := LookAt(geo.Vec3{Z: 10}, geo.Vec3{}, geo.Vec3{Y: 1})

	c := transform(view, geo.Vec3{})
	x, y, z, w := c.X(), c.Y(), c.Z(), c.W()
	if math.Abs(x) > 1e-12 || math.Abs(y) > 1e-12 || math.Abs(z+10) > 1e-12 || w != 1 {
		t.Errorf("target in camera space = (%v, %v, %v, %v), want (0, 0, -10, 1)", x, y, z, w)
	}

	c = transform(view, geo.Vec3{X: 1, Y: 2})
	x, y = c.X(), c.Y()
	if math.Abs(x-1) > 1e-12 || math.Abs(y-2) > 1e-12 {
		t.Errorf("camera axes rotated: got (%v, %v), want (1, 2)", x, y)
	}
}

func TestLookAtParallelUp(t *testing.T) {
	view := LookAt(geo.Vec3{Y: 5}, geo.Vec3{}, geo.Vec3{Y: 1})
	for i, v := range view {
		if math.IsNaN(v) {
			t.Fatalf("element %d is NaN", i)
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := 0.5, 100.0
	proj := Perspective(60, 1, near, far)

	tests := []struct {
		name string
		z    float64
		want float64
	}{
		{"Near plane", -near, -1},
		{"Far plane", -far, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := transform(proj, geo.Vec3{Z: tt.z})
			if got := c.Z() / c.W(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ndc z = %v, want %v", got, tt.want)
			}
		})
	}
}

// Column-major mgl64 storage must not flip the plane extraction.
func TestViewProjectionMatchesMgl(t *testing.T) {
	cam := Default(2.4)
	cam.Aspect = 2

	want := mgl64.Perspective(mgl64.DegToRad(60), 2, cam.Near, cam.Far).
		Mul4(mgl64.LookAtV(mgl64.Vec3{0, 2, 6}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}))
	if got := cam.ViewProjection(); !got.ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("ViewProjection = %v, want %v", got, want)
	}

	// The globe center sits in the middle of the viewport
	x, y, ok := Project(geo.Vec3{}, cam, 200, 100)
	if !ok || math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("Project(center) = (%v, %v, %v), want (100, 50, true)", x, y, ok)
	}

	// A point above the center projects above it on screen
	_, yUp, ok := Project(geo.Vec3{Y: 1}, cam, 200, 100)
	if !ok || yUp >= 50 {
		t.Errorf("Project(up) y = %v, want < 50", yUp)
	}

	f := cam.Frustum()
	if !f.Contains(geo.Vec3{}) || f.Contains(geo.Vec3{Z: 7}) {
		t.Error("frustum planes disagree with the projection")
	}
}

func TestFrustumIdentity(t *testing.T) {
	f := NewFrustum(mgl64.Ident4())
	if !f.Contains(geo.Vec3{X: 0.5, Y: -0.5, Z: 0.9}) {
		t.Error("point inside the unit cube rejected")
	}
	if f.Contains(geo.Vec3{X: 2}) {
		t.Error("point outside the unit cube accepted")
	}
}

func TestFrustumContains(t *testing.T) {
	f := onAxisCamera().Frustum()

	tests := []struct {
		name string
		p    geo.Vec3
		want bool
	}{
		{"Globe center", geo.Vec3{}, true},
		{"Front surface", geo.Vec3{Z: 1}, true},
		{"Back surface", geo.Vec3{Z: -1}, true},
		{"Behind camera", geo.Vec3{Z: 20}, false},
		{"Far off to the side", geo.Vec3{X: 100}, false},
		{"Beyond far plane", geo.Vec3{Z: -2000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIsCityVisible(t *testing.T) {
	cam := onAxisCamera()

	tests := []struct {
		name string
		pos  geo.Vec3
		want bool
	}{
		{"Facing camera", geo.Vec3{Z: 1}, true},
		{"Far side", geo.Vec3{Z: -1}, false},
		{"On the limb", geo.Vec3{X: 1}, false},
		{"Upper front", geo.Vec3{Y: 0.6, Z: 0.8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := catalog.City{Name: tt.name, Position: tt.pos}
			if got := IsCityVisible(city, cam); got != tt.want {
				t.Errorf("IsCityVisible(%+v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestIsCityVisibleFollowsCamera(t *testing.T) {
	c := catalog.Default(2.4)
	london, _ := c.Lookup("London")
	sydney, _ := c.Lookup("Sydney")

	// Look straight down at London from above it.
	cam := Default(2.4)
	cam.Position = london.Position.Normalize().Scale(6)

	if !IsCityVisible(london, cam) {
		t.Error("London hidden from a camera directly above it")
	}
	if IsCityVisible(sydney, cam) {
		t.Error("Sydney visible through the globe")
	}
}

func TestOccluded(t *testing.T) {
	cam := onAxisCamera()

	tests := []struct {
		name string
		p    geo.Vec3
		want bool
	}{
		{"Front surface", geo.Vec3{Z: 1}, false},
		{"Back surface", geo.Vec3{Z: -1}, true},
		{"Behind globe", geo.Vec3{Z: -1.5}, true},
		{"Above the north pole", geo.Vec3{Y: 2}, false},
		{"Between camera and globe", geo.Vec3{Z: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Occluded(tt.p, 1, cam); got != tt.want {
				t.Errorf("Occluded(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	cam := Default(2.4)

	x, y, ok := Project(geo.Vec3{}, cam, 200, 100)
	if !ok {
		t.Fatal("globe center not on screen")
	}
	if math.Abs(x-100) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("center projected to (%v, %v), want (100, 50)", x, y)
	}

	_, up, ok := Project(geo.Vec3{Y: 1}, onAxisCamera(), 200, 100)
	if !ok || up >= 50 {
		t.Errorf("point above center projected to y=%v ok=%v, want above the middle row", up, ok)
	}

	if _, _, ok := Project(geo.Vec3{Y: 4, Z: 12}, cam, 200, 100); ok {
		t.Error("point behind the camera reported on screen")
	}
}

func TestViewpointMatchesFunctions(t *testing.T) {
	cam := Default(2.4)
	v := NewViewpoint(cam)

	for _, city := range catalog.Default(2.4).Cities() {
		if v.Visible(city.Position) != IsCityVisible(city, cam) {
			t.Errorf("%s: viewpoint and IsCityVisible disagree", city.Name)
		}
		if v.Occluded(city.Position, 2.4) != Occluded(city.Position, 2.4, cam) {
			t.Errorf("%s: viewpoint and Occluded disagree", city.Name)
		}
	}
}
