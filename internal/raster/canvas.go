// Package raster is a character-cell canvas shared by the terminal hosts.
package raster

// Kind tags what was drawn into a cell so a host can pick colors.
type Kind int

const (
	Empty Kind = iota
	Star
	Globe
	Arc
	City
	Label
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Star:
		return "star"
	case Globe:
		return "globe"
	case Arc:
		return "arc"
	case City:
		return "city"
	case Label:
		return "label"
	default:
		return "unknown"
	}
}

// Cell is one character position.
type Cell struct {
	Rune rune
	Kind Kind

	// Intensity is the cell's brightness (0-1)
	Intensity float64

	// Tag identifies the drawn object, e.g. a flight ID. -1 when unused.
	Tag int
}

// Canvas is a cols x rows grid of cells. Later draws overwrite earlier
// ones, so callers draw back to front.
type Canvas struct {
	cols, rows int
	cells      []Cell
}

// New creates a blank canvas. Negative sizes are treated as zero.
func New(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]Cell, c.cols*c.rows)
	c.Clear()
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', Kind: Empty, Tag: -1}
	}
}

// In reports whether (x, y) is on the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && x < c.cols && y >= 0 && y < c.rows
}

// At returns the cell at (x, y). Off-canvas positions return a blank cell.
func (c *Canvas) At(x, y int) Cell {
	if !c.In(x, y) {
		return Cell{Rune: ' ', Tag: -1}
	}
	return c.cells[y*c.cols+x]
}

// Set writes a cell. Off-canvas writes are ignored.
func (c *Canvas) Set(x, y int, cell Cell) {
	if c.In(x, y) {
		c.cells[y*c.cols+x] = cell
	}
}

// Line draws a straight line with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, cell Cell) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, cell)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Ellipse draws an axis-aligned ellipse outline with the midpoint
// algorithm. Terminal cells are about twice as tall as wide, so a round
// globe needs rx close to 2*ry.
func (c *Canvas) Ellipse(cx, cy, rx, ry int, cell Cell) {
	if rx <= 0 || ry <= 0 {
		c.Set(cx, cy, cell)
		return
	}

	plot := func(x, y int) {
		c.Set(cx+x, cy+y, cell)
		c.Set(cx-x, cy+y, cell)
		c.Set(cx+x, cy-y, cell)
		c.Set(cx-x, cy-y, cell)
	}

	rx2, ry2 := rx*rx, ry*ry
	x, y := 0, ry
	px, py := 0, 2*rx2*y

	// Region 1: slope shallower than -1
	p := ry2 - rx2*ry + rx2/4
	for px < py {
		plot(x, y)
		x++
		px += 2 * ry2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= 2 * rx2
			p += ry2 + px - py
		}
	}

	// Region 2
	p = ry2*(2*x+1)*(2*x+1)/4 + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		plot(x, y)
		y--
		py -= 2 * rx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += 2 * ry2
			p += rx2 - py + px
		}
	}
}

// Circle draws a circle outline of radius r cells.
func (c *Canvas) Circle(cx, cy, r int, cell Cell) {
	c.Ellipse(cx, cy, r, r, cell)
}

// Text writes s starting at (x, y), clipped to the canvas.
func (c *Canvas) Text(x, y int, s string, cell Cell) {
	for _, r := range s {
		cell.Rune = r
		c.Set(x, y, cell)
		x++
	}
}

// Count returns the number of cells of the given kind.
func (c *Canvas) Count(k Kind) int {
	n := 0
	for _, cell := range c.cells {
		if cell.Kind == k {
			n++
		}
	}
	return n
}

// Rows renders the canvas as plain strings, one per row.
func (c *Canvas) Rows() []string {
	out := make([]string, c.rows)
	buf := make([]rune, c.cols)
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			buf[x] = c.cells[y*c.cols+x].Rune
		}
		out[y] = string(buf)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
