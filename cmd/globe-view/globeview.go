package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jeslor/globe-with-connecting-cities/internal/raster"
	"github.com/jeslor/globe-with-connecting-cities/internal/scene"
)

// GlobeView is a custom tview primitive that renders the scene using tcell
type GlobeView struct {
	*tview.Box
	app    *App
	canvas *raster.Canvas
}

// NewGlobeView creates a new globe view
func NewGlobeView(app *App) *GlobeView {
	gv := &GlobeView{
		Box:    tview.NewBox(),
		app:    app,
		canvas: raster.New(1, 1),
	}
	gv.SetBorder(true).SetTitle(" Globe ")
	return gv
}

// Draw renders the globe view using tcell
func (gv *GlobeView) Draw(screen tcell.Screen) {
	gv.Box.DrawForSubclass(screen, gv)

	// Get the inner bounds (excluding border)
	x, y, width, height := gv.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	frame, ok := gv.app.frame(width, height)
	if !ok {
		return
	}
	scene.Rasterize(frame, gv.canvas)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cell := gv.canvas.At(col, row)
			if cell.Kind == raster.Empty {
				continue
			}
			screen.SetContent(x+col, y+row, cell.Rune, nil, styleFor(cell))
		}
	}

	if frame.Paused {
		drawText(screen, x+1, y, "PAUSED", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}
}

// drawText writes s at (x, y) one rune per cell
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
