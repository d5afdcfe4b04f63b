package tui

import (
	"math"
	"strings"

	"github.com/nmoller/verdant/types"
)

// cell is one character of the rendered plant.
type cell struct {
	r   rune
	age float32
	set bool
}

// canvas rasterizes shape records into a character grid. The projection is a
// front view: world X maps to columns, world Y to rows (flipped), world Z is
// dropped. Terminal cells are roughly twice as tall as wide, so the X axis
// gets double the scale.
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int) *canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &canvas{width: width, height: height, cells: make([]cell, width*height)}
}

func (c *canvas) put(x, y int, r rune, age float32) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, age: age, set: true}
}

// segmentRune picks a character from the dominant screen direction.
func segmentRune(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady > 2*adx:
		return '|'
	case adx > 2*ady:
		return '-'
	case (dx > 0) == (dy > 0):
		return '/'
	default:
		return '\\'
	}
}

// line draws a segment with the classic integer error accumulator.
func (c *canvas) line(x0, y0, x1, y1 int, r rune, age float32) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.put(x0, y0, r, age)
		if x0 == x1 && y0 == y1 {
			return
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

// render colors each cell by age and joins rows top to bottom.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if !cl.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(ageStyle(cl.age).Render(string(cl.r)))
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// drawShapes fits the plant bounds into the canvas and rasterizes every line
// and circle record. Scope markers carry no geometry.
func drawShapes(c *canvas, shapes []types.RenderShape) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	for _, s := range shapes {
		switch s.Kind {
		case types.RenderLine:
			grow(float64(s.Start.X()), float64(s.Start.Y()))
			grow(float64(s.End.X()), float64(s.End.Y()))
		case types.RenderCircle:
			grow(float64(s.Pos.X()), float64(s.Pos.Y()))
		}
	}
	if minX > maxX {
		return
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX < 1e-6 {
		spanX = 1e-6
	}
	if spanY < 1e-6 {
		spanY = 1e-6
	}

	// Uniform scale, X doubled for the cell aspect ratio.
	scale := math.Min(float64(c.width-1)/(spanX*2), float64(c.height-1)/spanY)
	offX := (float64(c.width-1) - spanX*2*scale) / 2

	toScreen := func(x, y float64) (int, int) {
		sx := offX + (x-minX)*2*scale
		sy := float64(c.height-1) - (y-minY)*scale
		return int(math.Round(sx)), int(math.Round(sy))
	}

	for _, s := range shapes {
		switch s.Kind {
		case types.RenderLine:
			x0, y0 := toScreen(float64(s.Start.X()), float64(s.Start.Y()))
			x1, y1 := toScreen(float64(s.End.X()), float64(s.End.Y()))
			r := segmentRune(float64(x1-x0), float64(y0-y1))
			c.line(x0, y0, x1, y1, r, s.Age)
		case types.RenderCircle:
			x, y := toScreen(float64(s.Pos.X()), float64(s.Pos.Y()))
			c.put(x, y, 'o', s.Age)
		}
	}
}
