package plot

import (
	"github.com/ha1tch/fnplot/pkg/evaluator"
	"github.com/ha1tch/fnplot/pkg/view"
)

// Render draws one complete frame of a width x height viewport onto c:
// gridlines, axes, tick marks with labels, and finally the graph of fn.
// A nil fn draws the empty coordinate system.
func Render(c Canvas, v view.ViewState, width, height int, fn evaluator.Function) Stats {
	t := v.Transform(width, height)
	sx := v.TickSpacingX(width)
	sy := v.TickSpacingY(height)

	DrawGrid(c, t, sx, sy)
	DrawAxes(c, t)
	DrawTicks(c, t, sx, sy)
	if fn == nil {
		return Stats{}
	}
	return DrawCurve(c, fn, t)
}
