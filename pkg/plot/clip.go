package plot

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// ClipLine clips the segment a-b to the box spanned by lo and hi using
// the Liang-Barsky method. It reports false if no part of the segment
// lies inside the box or an endpoint is not finite.
//
// Differences are taken on halved coordinates, so segments spanning most
// of the float64 range do not overflow.
func ClipLine(a, b, lo, hi vec.Vec2) (vec.Vec2, vec.Vec2, bool) {
	if !isFinite(a.X) || !isFinite(a.Y) || !isFinite(b.X) || !isFinite(b.Y) {
		return a, b, false
	}
	dx := b.X/2 - a.X/2
	dy := b.Y/2 - a.Y/2
	edges := [4][2]float64{
		{-dx, a.X/2 - lo.X/2},
		{dx, hi.X/2 - a.X/2},
		{-dy, a.Y/2 - lo.Y/2},
		{dy, hi.Y/2 - a.Y/2},
	}

	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return lerp(a, b, t0), lerp(a, b, t1), true
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: a.X*(1-t) + b.X*t, Y: a.Y*(1-t) + b.Y*t}
}
