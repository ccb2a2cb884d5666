// Package raster draws plot frames into RGBA images.
// Frames are rendered at a multiple of the target size and scaled down
// for smooth lines and text.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/plot"
)

// Colors assigns a colour to the background and to each drawing role.
type Colors struct {
	Background color.RGBA
	Grid       color.RGBA
	Axis       color.RGBA
	Tick       color.RGBA
	Label      color.RGBA
	Curve      color.RGBA
}

// Options configures a Canvas.
type Options struct {
	Width       int     // output width in pixels
	Height      int     // output height in pixels
	Supersample int     // render at this multiple of the output size
	FontSize    float64 // label size in points at 72 dpi
	LineWidth   float64 // stroke width in output pixels
	Colors      Colors
}

// Default returns an 800x600 canvas configuration with 4x supersampling.
func Default() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 4,
		FontSize:    10,
		LineWidth:   1,
		Colors: Colors{
			Background: color.RGBA{255, 255, 255, 255},
			Grid:       color.RGBA{230, 230, 230, 255},
			Axis:       color.RGBA{128, 128, 128, 255}, // gray
			Tick:       color.RGBA{64, 64, 64, 255},    // dark gray
			Label:      color.RGBA{64, 64, 64, 255},
			Curve:      color.RGBA{0, 0, 255, 255}, // blue
		},
	}
}

// Canvas is a plot.Canvas backed by an RGBA image.
type Canvas struct {
	opts  Options
	img   *image.RGBA
	scale float64 // supersampling factor
	face  font.Face
}

var _ plot.Canvas = (*Canvas)(nil)

// New returns a canvas filled with the background colour. Negative sizes
// count as zero and a Supersample below 1 disables supersampling.
func New(opts Options) *Canvas {
	opts.Width = max(opts.Width, 0)
	opts.Height = max(opts.Height, 0)
	opts.Supersample = max(opts.Supersample, 1)
	if !(opts.LineWidth > 0) {
		opts.LineWidth = 1
	}
	if !(opts.FontSize > 0) {
		opts.FontSize = Default().FontSize
	}
	s := opts.Supersample

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize * float64(s),
		DPI:     72,
		Hinting: font.HintingNone, // smoothed by the downsampling
	})
	if err != nil {
		panic(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width*s, opts.Height*s))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Colors.Background), image.Point{}, draw.Src)

	return &Canvas{
		opts:  opts,
		img:   img,
		scale: float64(s),
		face:  face,
	}
}

// Line implements plot.Canvas.
func (c *Canvas) Line(from, to vec.Vec2, role plot.Role) {
	// clip in output pixels, before scaling can overflow
	half := c.opts.LineWidth / 2
	margin := vec.Vec2{X: half + 1, Y: half + 1}
	size := vec.Vec2{X: float64(c.opts.Width), Y: float64(c.opts.Height)}
	a, b, ok := plot.ClipLine(from, to, vec.Vec2{}.Sub(margin), size.Add(margin))
	if !ok {
		return
	}
	c.drawLine(a.Mul(c.scale), b.Mul(c.scale), half*c.scale, c.color(role))
}

// Text implements plot.Canvas. at is the left end of the baseline.
func (c *Canvas) Text(at vec.Vec2, s string, role plot.Role) {
	if !finite(at) || s == "" {
		return
	}
	p := at.Mul(c.scale)
	b := c.img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	// labels starting this far out cannot reach the image
	limit := 64*c.opts.FontSize*c.scale + w + h
	if math.Abs(p.X) > limit || math.Abs(p.Y) > limit {
		return
	}

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.color(role)),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(p.X * 64)),
			Y: fixed.Int26_6(math.Round(p.Y * 64)),
		},
	}
	d.DrawString(s)
}

// Image returns the frame at the output size.
func (c *Canvas) Image() *image.RGBA {
	if c.opts.Supersample == 1 {
		return c.img
	}
	out := image.NewRGBA(image.Rect(0, 0, c.opts.Width, c.opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)
	return out
}

// EncodePNG writes img to w in PNG format.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (c *Canvas) color(role plot.Role) color.RGBA {
	cs := c.opts.Colors
	switch role {
	case plot.RoleGrid:
		return cs.Grid
	case plot.RoleAxis:
		return cs.Axis
	case plot.RoleTick:
		return cs.Tick
	case plot.RoleLabel:
		return cs.Label
	default:
		return cs.Curve
	}
}

// drawLine strokes a-b by stamping pixels across the line's width at
// every step along it.
func (c *Canvas) drawLine(a, b vec.Vec2, half float64, col color.RGBA) {
	d := b.Sub(a)
	dist := d.Length()
	if dist < 1 {
		for ty := -half; ty <= half; ty++ {
			for tx := -half; tx <= half; tx++ {
				c.img.SetRGBA(int(math.Floor(a.X+tx)), int(math.Floor(a.Y+ty)), col)
			}
		}
		return
	}

	steps := math.Max(math.Abs(d.X), math.Abs(d.Y))
	perp := vec.Vec2{X: -d.Y / dist, Y: d.X / dist}
	for i := 0.0; i <= steps; i++ {
		p := a.Add(d.Mul(i / steps))
		for off := -half; off <= half; off += 0.5 {
			q := p.Add(perp.Mul(off))
			c.img.SetRGBA(int(math.Floor(q.X)), int(math.Floor(q.Y)), col)
		}
	}
}

func finite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
