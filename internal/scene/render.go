package scene

import (
	"math"

	"github.com/jeslor/globe-with-connecting-cities/internal/raster"
)

// Glyphs used by Rasterize.
const (
	GlyphGrid = '·'
	GlyphRim  = 'o'
	GlyphCity = '●'
)

// ArcGlyph picks a character for an arc cell by opacity.
func ArcGlyph(opacity float64) rune {
	switch {
	case opacity >= 0.66:
		return '#'
	case opacity >= 0.33:
		return '+'
	default:
		return '.'
	}
}

// StarGlyph picks a character for a star by brightness.
func StarGlyph(alpha float64) rune {
	switch {
	case alpha >= 0.8:
		return '*'
	case alpha >= 0.4:
		return '+'
	default:
		return '.'
	}
}

// Rasterize draws a frame back to front: stars, globe, arcs, cities and
// labels. The canvas is resized to the frame if needed.
func Rasterize(f Frame, c *raster.Canvas) {
	if cols, rows := c.Size(); cols != f.Cols || rows != f.Rows {
		c.Resize(f.Cols, f.Rows)
	} else {
		c.Clear()
	}

	for _, s := range f.Stars {
		if s.Alpha < 0.1 {
			continue
		}
		c.Set(int(s.X), int(s.Y), raster.Cell{
			Rune:      StarGlyph(s.Alpha),
			Kind:      raster.Star,
			Intensity: s.Alpha,
			Tag:       -1,
		})
	}

	cx, cy := round(f.CenterX), round(f.CenterY)
	rim := raster.Cell{Rune: GlyphRim, Kind: raster.Globe, Intensity: 0.8, Tag: -1}
	c.Ellipse(cx, cy, round(f.RadiusX), round(f.RadiusY), rim)

	grid := raster.Cell{Rune: GlyphGrid, Kind: raster.Globe, Intensity: 0.3, Tag: -1}
	for _, p := range f.Grid {
		c.Set(round(p.X), round(p.Y), grid)
	}

	for _, fl := range f.Flights {
		cell := raster.Cell{
			Rune:      ArcGlyph(fl.Opacity),
			Kind:      raster.Arc,
			Intensity: fl.Opacity,
			Tag:       fl.ID,
		}
		for i := 1; i < len(fl.Points); i++ {
			a, b := fl.Points[i-1], fl.Points[i]
			if a.Hidden || b.Hidden {
				continue
			}
			c.Line(round(a.X), round(a.Y), round(b.X), round(b.Y), cell)
		}
	}

	for _, city := range f.Cities {
		if !city.Visible {
			continue
		}
		x, y := round(city.X), round(city.Y)
		c.Set(x, y, raster.Cell{Rune: GlyphCity, Kind: raster.City, Intensity: 1, Tag: -1})
		if f.Labels {
			c.Text(x+2, y, city.Name, raster.Cell{Kind: raster.Label, Intensity: 0.7, Tag: -1})
		}
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
