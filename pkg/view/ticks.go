package view

import (
	"math"
	"strconv"
)

// DesiredTickCount is the number of tick intervals automatic spacing
// aims for across a viewport.
const DesiredTickCount = 10

// OriginEpsilon is the distance from zero below which a tick value is
// treated as the origin and left unlabelled.
const OriginEpsilon = 1e-6

// tickLadder lists the automatic tick spacings in ascending order.
var tickLadder = []float64{
	0.1, 0.2, 0.5,
	1, 2, 5,
	10, 20, 50,
	100, 200, 500,
	1000, 2000, 5000,
	10000, 20000, 50000,
	1000000,
}

// TickSpacing returns the world-space interval between ticks on an axis
// with the given scale (pixels per unit) and extent (pixels). A positive
// manual value is returned unchanged. Otherwise the smallest ladder step
// not below extent/(scale*DesiredTickCount) is chosen; if the ladder is
// exhausted the result is math.MaxFloat64, which leaves at most the
// origin tick on screen.
func TickSpacing(scale, extent, manual float64) float64 {
	if manual > 0 {
		return manual
	}
	ideal := extent / (scale * DesiredTickCount)
	for _, step := range tickLadder {
		if step >= ideal {
			return step
		}
	}
	return math.MaxFloat64
}

// FormatTick returns the label for a tick at world value v. The second
// result is false for values within OriginEpsilon of zero, which are
// not labelled. Values of magnitude at least one print without decimals,
// smaller ones with two. Halves round away from zero.
func FormatTick(v float64) (string, bool) {
	if math.Abs(v) <= OriginEpsilon {
		return "", false
	}
	if math.Abs(v) >= 1 {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64), true
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64), true
}
