// Package interact owns the state of an interactive plot: the view, the
// viewport size, the active function and the pan gesture in progress.
// A UI shell feeds it pointer, wheel and resize events and asks it to
// render.
package interact

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/evaluator"
	"github.com/ha1tch/fnplot/pkg/plot"
	"github.com/ha1tch/fnplot/pkg/view"
)

// Variable is the name of the free variable in function definitions.
const Variable = "x"

// Mode is the pointer state of a Controller.
type Mode int

const (
	Idle    Mode = iota // no pointer button held
	Panning             // a drag is moving the view
)

func (m Mode) String() string {
	if m == Panning {
		return "panning"
	}
	return "idle"
}

// Controller applies input events to a view and renders it. It is meant
// to be driven from a single event loop and is not safe for concurrent
// use.
type Controller struct {
	compiler evaluator.Compiler
	view     view.ViewState
	width    int
	height   int

	fn         evaluator.Function
	definition string

	mode   Mode
	anchor vec.Vec2 // last pointer position while Panning

	// OnRedraw, if set, is called after every change that alters the
	// rendered frame.
	OnRedraw func()
}

// New returns a controller with the default view and no function. A nil
// compiler selects evaluator.Expr.
func New(compiler evaluator.Compiler, width, height int) *Controller {
	if compiler == nil {
		compiler = evaluator.Expr{}
	}
	c := &Controller{
		compiler: compiler,
		view:     view.Default(),
	}
	c.width, c.height = clampSize(width, height)
	return c
}

// Define compiles definition and, if that succeeds, makes it the active
// function. On failure the previous function stays active, nothing else
// changes, and the *evaluator.CompileError is returned.
func (c *Controller) Define(definition string) error {
	fn, err := c.compiler.Compile(definition, Variable)
	if err != nil {
		return err
	}
	c.fn = fn
	c.definition = definition
	c.redraw()
	return nil
}

// SetFunction is Define reporting only success.
func (c *Controller) SetFunction(definition string) bool {
	return c.Define(definition) == nil
}

// Definition returns the source of the active function, or "" if none
// has been set.
func (c *Controller) Definition() string {
	return c.definition
}

// Function returns the active function handle, or nil.
func (c *Controller) Function() evaluator.Function {
	return c.fn
}

// SetManualTicks pins the tick spacing of each axis. Values <= 0 select
// automatic spacing for that axis.
func (c *Controller) SetManualTicks(tickX, tickY float64) {
	c.view.ManualTickX = tickX
	c.view.ManualTickY = tickY
	c.redraw()
}

// Resize sets the viewport size in pixels. Negative sizes count as zero.
func (c *Controller) Resize(width, height int) {
	width, height = clampSize(width, height)
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.redraw()
}

// Size returns the viewport size in pixels.
func (c *Controller) Size() (width, height int) {
	return c.width, c.height
}

// View returns a copy of the current view state.
func (c *Controller) View() view.ViewState {
	return c.view
}

// Mode returns the pointer state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// PointerPress starts a pan gesture at (x, y).
func (c *Controller) PointerPress(x, y float64) {
	c.mode = Panning
	c.anchor = vec.Vec2{X: x, Y: y}
}

// PointerDrag moves the view by the distance the pointer travelled since
// the previous press or drag event. It does nothing unless a pan is in
// progress.
func (c *Controller) PointerDrag(x, y float64) {
	if c.mode != Panning {
		return
	}
	cur := vec.Vec2{X: x, Y: y}
	d := cur.Sub(c.anchor)
	c.anchor = cur
	if d.X == 0 && d.Y == 0 {
		return
	}
	c.view.Pan(d.X, d.Y)
	c.redraw()
}

// PointerRelease ends a pan gesture.
func (c *Controller) PointerRelease(x, y float64) {
	c.mode = Idle
	c.anchor = vec.Vec2{}
}

// Wheel zooms by view.ZoomBase^rotation about the pointer position
// (x, y): the world point under the pointer stays where it is. Positive
// rotation zooms in. Wheel works in any mode.
func (c *Controller) Wheel(x, y, rotation float64) {
	if rotation == 0 || math.IsNaN(rotation) {
		return
	}
	p := vec.Vec2{X: x, Y: y}
	if c.view.ZoomAt(p, view.ZoomFactor(rotation), c.width, c.height) {
		c.redraw()
	}
}

// Pan moves the view by (dx, dy) pixels, as a drag of that length would.
func (c *Controller) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.view.Pan(dx, dy)
	c.redraw()
}

// Reset restores the default scale and offset. The function and the
// manual tick settings are kept.
func (c *Controller) Reset() {
	v := view.Default()
	v.ManualTickX = c.view.ManualTickX
	v.ManualTickY = c.view.ManualTickY
	c.view = v
	c.redraw()
}

// WorldAt returns the world coordinates under the screen position
// (x, y).
func (c *Controller) WorldAt(x, y float64) vec.Vec2 {
	return c.view.Transform(c.width, c.height).ScreenToWorld(vec.Vec2{X: x, Y: y})
}

// Render draws the current frame onto canvas.
func (c *Controller) Render(canvas plot.Canvas) plot.Stats {
	return plot.Render(canvas, c.view, c.width, c.height, c.fn)
}

func (c *Controller) redraw() {
	if c.OnRedraw != nil {
		c.OnRedraw()
	}
}

func clampSize(width, height int) (int, int) {
	return max(width, 0), max(height, 0)
}
