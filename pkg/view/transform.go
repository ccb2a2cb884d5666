package view

import "seehuhn.de/go/geom/vec"

// Transform maps between world coordinates (y up) and screen pixels
// (y down) for one viewport. It is a plain value; build it with
// ViewState.Transform.
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
	Width, Height    float64
}

// Center returns the screen position of the world origin.
func (t Transform) Center() vec.Vec2 {
	return vec.Vec2{X: t.Width/2 + t.OffsetX, Y: t.Height/2 + t.OffsetY}
}

// WorldXToScreen maps a world x coordinate to a screen column.
func (t Transform) WorldXToScreen(x float64) float64 {
	return t.Width/2 + t.OffsetX + x*t.ScaleX
}

// WorldYToScreen maps a world y coordinate to a screen row.
func (t Transform) WorldYToScreen(y float64) float64 {
	return t.Height/2 + t.OffsetY - y*t.ScaleY
}

// ScreenXToWorld maps a screen column to a world x coordinate.
func (t Transform) ScreenXToWorld(px float64) float64 {
	return (px - t.Width/2 - t.OffsetX) / t.ScaleX
}

// ScreenYToWorld maps a screen row to a world y coordinate.
func (t Transform) ScreenYToWorld(py float64) float64 {
	return (t.Height/2 + t.OffsetY - py) / t.ScaleY
}

// WorldToScreen maps a world point to screen pixels.
func (t Transform) WorldToScreen(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: t.WorldXToScreen(p.X), Y: t.WorldYToScreen(p.Y)}
}

// ScreenToWorld maps a screen point to world coordinates. It is the
// inverse of WorldToScreen.
func (t Transform) ScreenToWorld(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: t.ScreenXToWorld(p.X), Y: t.ScreenYToWorld(p.Y)}
}
