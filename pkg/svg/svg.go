// Package svg records plot frames as standalone SVG documents.
package svg

import (
	"fmt"
	"html"
	"math"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/plot"
)

// FontSize is the label size in pixels.
const FontSize = 10

// Canvas is a plot.Canvas that writes one SVG element per command.
type Canvas struct {
	width, height int
	body          strings.Builder
}

var _ plot.Canvas = (*Canvas)(nil)

// New returns an empty width x height document. Negative sizes count as
// zero.
func New(width, height int) *Canvas {
	return &Canvas{width: max(width, 0), height: max(height, 0)}
}

// Line implements plot.Canvas.
func (c *Canvas) Line(from, to vec.Vec2, role plot.Role) {
	if !finite(from) || !finite(to) {
		return
	}
	c.body.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="%s"/>
`, from.X, from.Y, to.X, to.Y, role))
}

// Text implements plot.Canvas. at is the left end of the baseline.
func (c *Canvas) Text(at vec.Vec2, s string, role plot.Role) {
	if !finite(at) {
		return
	}
	c.body.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="%s">%s</text>
`, at.X, at.Y, role, html.EscapeString(s)))
}

// String returns the complete document.
func (c *Canvas) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .grid { stroke: #e6e6e6; stroke-width: 1; }
  .axis { stroke: #808080; stroke-width: 1; }
  .tick { stroke: #404040; stroke-width: 1; }
  .label { font-family: sans-serif; font-size: %dpx; fill: #404040; }
  .curve { fill: none; stroke: #0000ff; stroke-width: 1; }
</style>
<rect width="%d" height="%d" fill="white"/>
`, c.width, c.height, c.width, c.height, FontSize, c.width, c.height))

	sb.WriteString(c.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
