package plot

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/view"
)

// Tick mark and label placement, in pixels
const (
	tickHalfLength = 4
	xLabelDX       = -10 // x-axis labels sit below the axis
	xLabelDY       = 15
	yLabelDX       = 6 // y-axis labels sit right of the axis
	yLabelDY       = 4
)

// maxTickCount bounds TickCount for absurd manual spacings.
const maxTickCount = 1 << 30

// TickCount returns how many ticks to consider on each side of the
// origin for an axis extent pixels long, with the origin moved offset
// pixels from the centre. Two extra ticks cover partly visible ticks at
// the edges.
func TickCount(extent, offset, scale, spacing float64) int {
	n := math.Ceil((extent+math.Abs(offset))/scale/spacing) + 2
	if math.IsNaN(n) || n > maxTickCount {
		return maxTickCount
	}
	return int(n)
}

// tickRange narrows [-n, n] to the tick indices whose position
// origin + i*step lies inside [0, extent]. step may be negative.
func tickRange(n int, origin, step, extent float64) (lo, hi int) {
	flo, fhi := -float64(n), float64(n)
	if step != 0 && isFinite(step) {
		a, b := -origin/step, (extent-origin)/step
		if a > b {
			a, b = b, a
		}
		flo = math.Max(flo, math.Ceil(a))
		fhi = math.Min(fhi, math.Floor(b))
	}
	if flo > fhi {
		return 0, -1
	}
	return int(flo), int(fhi)
}

// axis describes one screen axis for tick placement.
type axis struct {
	scale, offset, extent float64
	origin                float64 // screen position of world zero
	dir                   float64 // +1 if screen positions grow with world values, -1 if not
	toScreen              func(float64) float64
}

func xAxis(t view.Transform) axis {
	return axis{
		scale:    t.ScaleX,
		offset:   t.OffsetX,
		extent:   t.Width,
		origin:   t.Center().X,
		dir:      1,
		toScreen: t.WorldXToScreen,
	}
}

func yAxis(t view.Transform) axis {
	return axis{
		scale:    t.ScaleY,
		offset:   t.OffsetY,
		extent:   t.Height,
		origin:   t.Center().Y,
		dir:      -1,
		toScreen: t.WorldYToScreen,
	}
}

// ticks calls fn with the world value and screen position of every
// visible tick.
func (a axis) ticks(spacing float64, fn func(value, pos float64)) {
	n := TickCount(a.extent, a.offset, a.scale, spacing)
	lo, hi := tickRange(n, a.origin, a.dir*spacing*a.scale, a.extent)
	for i := lo; i <= hi; i++ {
		value := float64(i) * spacing
		pos := a.toScreen(value)
		if !isFinite(pos) {
			continue
		}
		fn(value, pos)
	}
}

// DrawGrid draws a full-height line at every x tick and a full-width line
// at every y tick.
func DrawGrid(c Canvas, t view.Transform, spacingX, spacingY float64) {
	xAxis(t).ticks(spacingX, func(_, x float64) {
		c.Line(vec.Vec2{X: x, Y: 0}, vec.Vec2{X: x, Y: t.Height}, RoleGrid)
	})
	yAxis(t).ticks(spacingY, func(_, y float64) {
		c.Line(vec.Vec2{X: 0, Y: y}, vec.Vec2{X: t.Width, Y: y}, RoleGrid)
	})
}

// DrawAxes draws the x and y axes across the viewport.
func DrawAxes(c Canvas, t view.Transform) {
	o := t.Center()
	c.Line(vec.Vec2{X: 0, Y: o.Y}, vec.Vec2{X: t.Width, Y: o.Y}, RoleAxis)
	c.Line(vec.Vec2{X: o.X, Y: 0}, vec.Vec2{X: o.X, Y: t.Height}, RoleAxis)
}

// DrawTicks draws tick marks across both axes and labels every tick
// except the origin.
func DrawTicks(c Canvas, t view.Transform, spacingX, spacingY float64) {
	o := t.Center()
	xAxis(t).ticks(spacingX, func(value, x float64) {
		c.Line(vec.Vec2{X: x, Y: o.Y - tickHalfLength}, vec.Vec2{X: x, Y: o.Y + tickHalfLength}, RoleTick)
		if label, ok := view.FormatTick(value); ok {
			c.Text(vec.Vec2{X: x + xLabelDX, Y: o.Y + xLabelDY}, label, RoleLabel)
		}
	})
	yAxis(t).ticks(spacingY, func(value, y float64) {
		c.Line(vec.Vec2{X: o.X - tickHalfLength, Y: y}, vec.Vec2{X: o.X + tickHalfLength, Y: y}, RoleTick)
		if label, ok := view.FormatTick(value); ok {
			c.Text(vec.Vec2{X: o.X + yLabelDX, Y: y + yLabelDY}, label, RoleLabel)
		}
	})
}
