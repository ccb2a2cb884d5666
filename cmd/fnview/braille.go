package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/plot"
)

// Each terminal cell holds a 2x4 block of braille dots, so the plot's
// pixel space is twice the cell width and four times the cell height.
const (
	dotsX = 2
	dotsY = 4
)

// dotBits maps a dot position within a cell to its bit in the braille
// pattern starting at U+2800.
var dotBits = [dotsY][dotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// rolePriority decides which role colours a cell when several draw dots
// in it. Higher wins.
var rolePriority = map[plot.Role]int{
	plot.RoleGrid:  1,
	plot.RoleAxis:  2,
	plot.RoleTick:  3,
	plot.RoleCurve: 4,
}

type brailleCell struct {
	dots rune
	role plot.Role
	text rune // label character, overrides dots
}

// Braille is a plot.Canvas that draws into a grid of braille cells.
type Braille struct {
	cols, rows int
	cells      []brailleCell
}

var _ plot.Canvas = (*Braille)(nil)

// NewBraille returns an empty canvas of cols x rows cells.
func NewBraille(cols, rows int) *Braille {
	b := &Braille{}
	b.Resize(cols, rows)
	return b
}

// Resize clears the canvas and sets its size in cells.
func (b *Braille) Resize(cols, rows int) {
	b.cols, b.rows = max(cols, 0), max(rows, 0)
	b.cells = make([]brailleCell, b.cols*b.rows)
}

// Clear removes all dots and labels.
func (b *Braille) Clear() {
	clear(b.cells)
}

// Size returns the canvas size in dots.
func (b *Braille) Size() (width, height int) {
	return b.cols * dotsX, b.rows * dotsY
}

// Line implements plot.Canvas.
func (b *Braille) Line(from, to vec.Vec2, role plot.Role) {
	w, h := b.Size()
	a, z, ok := plot.ClipLine(from, to, vec.Vec2{}, vec.Vec2{X: float64(w), Y: float64(h)})
	if !ok {
		return
	}
	d := z.Sub(a)
	steps := math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y)))
	if steps < 1 {
		b.set(a, role)
		return
	}
	for i := 0.0; i <= steps; i++ {
		b.set(a.Add(d.Mul(i/steps)), role)
	}
}

// Text implements plot.Canvas. Each character takes one cell, starting
// at the cell that contains at.
func (b *Braille) Text(at vec.Vec2, s string, role plot.Role) {
	if !finite(at) {
		return
	}
	col := math.Floor(at.X / dotsX)
	row := math.Floor(at.Y/dotsY) - 1 // baseline is below the glyphs
	if row < 0 || row >= float64(b.rows) || col >= float64(b.cols) || col < -float64(len(s)) {
		return
	}
	r, c0 := int(row), int(col)
	i := 0
	for _, ch := range s {
		c := c0 + i
		i++
		if c < 0 || c >= b.cols {
			continue
		}
		cell := &b.cells[r*b.cols+c]
		cell.text = ch
		cell.role = role
	}
}

func (b *Braille) set(p vec.Vec2, role plot.Role) {
	x, y := math.Floor(p.X), math.Floor(p.Y)
	w, h := b.Size()
	if x < 0 || y < 0 || x >= float64(w) || y >= float64(h) {
		return
	}
	ix, iy := int(x), int(y)
	cell := &b.cells[(iy/dotsY)*b.cols+ix/dotsX]
	cell.dots |= dotBits[iy%dotsY][ix%dotsX]
	if cell.text == 0 && rolePriority[role] >= rolePriority[cell.role] {
		cell.role = role
	}
}

// Cell returns the rune shown at (col, row) and the role that coloured
// it. Empty cells are blank.
func (b *Braille) Cell(col, row int) (rune, plot.Role) {
	cell := b.cells[row*b.cols+col]
	switch {
	case cell.text != 0:
		return cell.text, cell.role
	case cell.dots != 0:
		return 0x2800 + cell.dots, cell.role
	}
	return ' ', cell.role
}

// Draw copies the canvas onto screen with its top left corner at (x0, y0).
func (b *Braille) Draw(screen tcell.Screen, x0, y0 int, styles map[plot.Role]tcell.Style) {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			r, role := b.Cell(col, row)
			style := styleDefault
			if r != ' ' {
				style = styles[role]
			}
			screen.SetContent(x0+col, y0+row, r, nil, style)
		}
	}
}

func finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
