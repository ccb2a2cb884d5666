package plot

import (
	"iter"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/evaluator"
	"github.com/ha1tch/fnplot/pkg/view"
)

// Segment is a run of connected curve points in screen coordinates.
type Segment []vec.Vec2

// Stats summarises one sampling pass.
type Stats struct {
	Segments int // connected runs, including single points
	Points   int // valid samples
	Breaks   int // columns where the function was undefined
}

// Segments samples fn once per pixel column of t, from column 0 to
// Width-1, and yields the connected runs of valid samples. A column
// where evaluation fails, or where the value or its screen position is
// not finite, ends the current run; the next valid column starts a new
// one. Every iteration samples afresh, and yielded segments are not
// reused.
func Segments(fn evaluator.Function, t view.Transform) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		sample(fn, t, yield)
	}
}

// DrawCurve draws the graph of fn as straight lines between the samples
// of each segment.
func DrawCurve(c Canvas, fn evaluator.Function, t view.Transform) Stats {
	var st Stats
	st.Breaks = sample(fn, t, func(seg Segment) bool {
		st.Segments++
		st.Points += len(seg)
		for i := 1; i < len(seg); i++ {
			c.Line(seg[i-1], seg[i], RoleCurve)
		}
		return true
	})
	return st
}

// sample runs the column walk and returns the number of break columns
// visited before the walk finished or yield asked to stop.
func sample(fn evaluator.Function, t view.Transform, yield func(Segment) bool) int {
	breaks := 0
	var cur Segment
	for px := 0; float64(px) < t.Width; px++ {
		sx := float64(px)
		y, err := fn.Evaluate(t.ScreenXToWorld(sx))
		sy := t.WorldYToScreen(y)
		if err != nil || !isFinite(y) || !isFinite(sy) {
			breaks++
			if len(cur) > 0 {
				if !yield(cur) {
					return breaks
				}
				cur = nil
			}
			continue
		}
		cur = append(cur, vec.Vec2{X: sx, Y: sy})
	}
	if len(cur) > 0 {
		yield(cur)
	}
	return breaks
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
