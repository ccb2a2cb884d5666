// Package view holds the viewport state of a function plot and the pure
// coordinate math that maps between world and screen space.
package view

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Default view parameters
const (
	DefaultScale = 40.0 // pixels per world unit on both axes
	ZoomBase     = 1.1  // zoom factor per unit of wheel rotation

	// Scale limits applied by ZoomAt. Both are far outside anything a
	// user reaches by hand but keep the axes from collapsing to zero or
	// overflowing to infinity.
	MinScale = 1e-6
	MaxScale = 1e9
)

// ViewState is the mutable state of a viewport: independent per-axis
// scale, the pixel offset of the world origin from the viewport centre,
// and optional manual tick spacing.
//
// ScaleX and ScaleY must stay strictly positive.
type ViewState struct {
	ScaleX, ScaleY   float64 // pixels per unit
	OffsetX, OffsetY float64 // origin offset from centre, in pixels

	// Manual tick spacing in world units. Values <= 0 select the
	// automatic spacing.
	ManualTickX, ManualTickY float64
}

// Default returns the startup view: scale 40 on both axes, origin at the
// viewport centre, automatic ticks.
func Default() ViewState {
	return ViewState{
		ScaleX: DefaultScale,
		ScaleY: DefaultScale,
	}
}

// Transform returns the world/screen mapping of v for a viewport of the
// given size in pixels.
func (v ViewState) Transform(width, height int) Transform {
	return Transform{
		ScaleX:  v.ScaleX,
		ScaleY:  v.ScaleY,
		OffsetX: v.OffsetX,
		OffsetY: v.OffsetY,
		Width:   float64(width),
		Height:  float64(height),
	}
}

// TickSpacingX returns the tick interval for the x axis of a viewport
// width pixels wide.
func (v ViewState) TickSpacingX(width int) float64 {
	return TickSpacing(v.ScaleX, float64(width), v.ManualTickX)
}

// TickSpacingY returns the tick interval for the y axis of a viewport
// height pixels high.
func (v ViewState) TickSpacingY(height int) float64 {
	return TickSpacing(v.ScaleY, float64(height), v.ManualTickY)
}

// Pan moves the world origin by (dx, dy) screen pixels.
func (v *ViewState) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomFactor converts a signed wheel rotation into a scale multiplier.
// Positive rotation zooms in.
func ZoomFactor(rotation float64) float64 {
	return math.Pow(ZoomBase, rotation)
}

// ZoomAt multiplies both scales by factor while keeping the world point
// under the screen position p fixed. The viewport is width x height
// pixels. Each axis is handled on its own: capture the world coordinate
// under p, rescale, capture again, then shift the offset by the
// difference. Factors that are not finite and positive are ignored; the
// resulting scales are clamped to [MinScale, MaxScale].
//
// ZoomAt reports whether the view changed.
func (v *ViewState) ZoomAt(p vec.Vec2, factor float64, width, height int) bool {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return false
	}
	old := *v

	// x axis
	before := v.Transform(width, height).ScreenXToWorld(p.X)
	v.ScaleX = clampScale(v.ScaleX * factor)
	after := v.Transform(width, height).ScreenXToWorld(p.X)
	v.OffsetX += (after - before) * v.ScaleX

	// y axis; screen y grows downwards, so the offset moves the other way
	before = v.Transform(width, height).ScreenYToWorld(p.Y)
	v.ScaleY = clampScale(v.ScaleY * factor)
	after = v.Transform(width, height).ScreenYToWorld(p.Y)
	v.OffsetY -= (after - before) * v.ScaleY

	return *v != old
}

func clampScale(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return DefaultScale
	case s < MinScale:
		return MinScale
	case s > MaxScale:
		return MaxScale
	}
	return s
}
