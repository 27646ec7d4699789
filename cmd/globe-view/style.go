package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jeslor/globe-with-connecting-cities/internal/raster"
)

// styleFor picks the tcell style for a rasterized cell. Arcs are green and
// cities yellow; brightness follows the cell intensity.
func styleFor(cell raster.Cell) tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)

	switch cell.Kind {
	case raster.Star:
		return base.Foreground(gray(cell.Intensity))
	case raster.Globe:
		if cell.Rune == 'o' {
			return base.Foreground(tcell.ColorDarkCyan)
		}
		return base.Foreground(tcell.NewRGBColor(40, 70, 110))
	case raster.Arc:
		g := int32(80 + 175*clamp01(cell.Intensity))
		return base.Foreground(tcell.NewRGBColor(0, g, 0))
	case raster.City:
		return base.Foreground(tcell.ColorYellow).Bold(true)
	case raster.Label:
		return base.Foreground(tcell.ColorWhite)
	default:
		return base
	}
}

func gray(intensity float64) tcell.Color {
	v := int32(60 + 195*clamp01(intensity))
	return tcell.NewRGBColor(v, v, v)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
