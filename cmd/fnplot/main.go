// Command fnplot renders and inspects plots of single-variable functions.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ha1tch/fnplot/pkg/evaluator"
	"github.com/ha1tch/fnplot/pkg/interact"
	"github.com/ha1tch/fnplot/pkg/plot"
	"github.com/ha1tch/fnplot/pkg/raster"
	"github.com/ha1tch/fnplot/pkg/svg"
	"github.com/ha1tch/fnplot/pkg/view"
)

const usage = `fnplot - function plotter

Usage:
  fnplot <command> [options]

Commands:
  render     Render a plot to PNG or SVG
  check      Check that a function definition compiles
  eval       Evaluate a function at given points
  ticks      Show the tick spacing chosen for a scale
  sample     Show curve sampling statistics

Examples:
  fnplot render -f "sin(x)/x" -o sinc.png
  fnplot render -f "1/x" -scale 80 -pan 100,0 -o recip.svg
  fnplot render -f "x^3 - x" -zoom 5@600,200 > cubic.png
  fnplot eval -f "sqrt(x)" -- -1 0 2
  fnplot ticks -scale 40 -extent 800

Use "fnplot <command> -h" for more information about a command.
`

// Limits on render output. A PNG is drawn at width*height*supersample^2
// pixels before it is scaled down.
const (
	maxImageSize    = 16384
	maxSupersample  = 8
	maxRasterPixels = 1 << 28
)

var (
	errUnknownCommand = errors.New("unknown command")
	errTerminal       = errors.New("refusing to write PNG to a terminal; use -o or redirect")
)

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the command line args, minus the program name, writing
// results to stdout.
func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", errUnknownCommand)
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "render":
		return cmdRender(args, stdout)
	case "check":
		return cmdCheck(args, stdout)
	case "eval":
		return cmdEval(args, stdout)
	case "ticks":
		return cmdTicks(args, stdout)
	case "sample":
		return cmdSample(args, stdout)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
}

func cmdRender(args []string, stdout io.Writer) error {
	fs := newFlagSet("render", "fnplot render -f <def> [options]")
	def := fs.String("f", "sin(x)", "function `definition` in x")
	width := fs.Int("W", 800, "image width in pixels")
	height := fs.Int("H", 600, "image height in pixels")
	scale := fs.Float64("scale", view.DefaultScale, "pixels per unit")
	pan := fs.String("pan", "", "pan the view by `dx,dy` pixels")
	zoom := fs.String("zoom", "", "zoom by wheel `r@x,y`: r notches at pixel (x, y)")
	tickX := fs.Float64("tick-x", 0, "manual x tick spacing (0 = auto)")
	tickY := fs.Float64("tick-y", 0, "manual y tick spacing (0 = auto)")
	output := fs.String("o", "", "output `file` (.png or .svg); PNG to stdout if empty")
	format := fs.String("format", "", "output format, png or svg (default from -o)")
	supersample := fs.Int("supersample", raster.Default().Supersample, "PNG supersampling factor")
	verbose := fs.Bool("v", false, "log render statistics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := log.New(io.Discard, "fnplot: ", 0)
	if *verbose {
		logger.SetOutput(os.Stderr)
	}

	if *format == "" {
		*format = "png"
		if strings.EqualFold(filepath.Ext(*output), ".svg") {
			*format = "svg"
		}
	}
	if *format != "png" && *format != "svg" {
		return fmt.Errorf("unknown output format %q", *format)
	}
	if !(*scale > 0) {
		return fmt.Errorf("scale must be positive, got %g", *scale)
	}
	if err := checkSize(*width, *height, *format, *supersample); err != nil {
		return err
	}

	c := interact.New(nil, *width, *height)
	if err := c.Define(*def); err != nil {
		return err
	}
	c.SetManualTicks(*tickX, *tickY)
	if err := drive(c, *scale, *pan, *zoom); err != nil {
		return err
	}
	v := c.View()
	logger.Printf("view: scale (%g, %g), offset (%g, %g)", v.ScaleX, v.ScaleY, v.OffsetX, v.OffsetY)

	var (
		data  []byte
		stats plot.Stats
	)
	switch *format {
	case "svg":
		canvas := svg.New(*width, *height)
		stats = c.Render(canvas)
		data = []byte(canvas.String())
	default:
		opts := raster.Default()
		opts.Width, opts.Height = *width, *height
		opts.Supersample = *supersample
		canvas := raster.New(opts)
		stats = c.Render(canvas)
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, canvas.Image()); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
		data = buf.Bytes()
	}
	logger.Printf("curve: %d segments, %d points, %d breaks", stats.Segments, stats.Points, stats.Breaks)

	if *output == "" {
		if *format == "png" && isTerminal(stdout) {
			return errTerminal
		}
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	logger.Printf("written: %s", *output)
	return nil
}

// drive applies the view flags through the controller the way
// interactive input would: the scale as wheel rotation about the centre,
// the pan as a drag and the zoom as a wheel event at a pointer position.
func drive(c *interact.Controller, scale float64, pan, zoom string) error {
	w, h := c.Size()
	if scale != view.DefaultScale {
		rotation := rotationFor(scale / view.DefaultScale)
		c.Wheel(float64(w)/2, float64(h)/2, rotation)
	}
	if pan != "" {
		d, err := parsePair(pan)
		if err != nil {
			return fmt.Errorf("-pan: %w", err)
		}
		c.PointerPress(0, 0)
		c.PointerDrag(d.X, d.Y)
		c.PointerRelease(d.X, d.Y)
	}
	if zoom != "" {
		r, p, err := parseZoom(zoom)
		if err != nil {
			return fmt.Errorf("-zoom: %w", err)
		}
		c.Wheel(p.X, p.Y, r)
	}
	return nil
}

func cmdCheck(args []string, stdout io.Writer) error {
	fs := newFlagSet("check", "fnplot check -f <def>")
	def := fs.String("f", "", "function `definition` in x")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := (evaluator.Expr{}).Compile(*def, interact.Variable); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

func cmdEval(args []string, stdout io.Writer) error {
	fs := newFlagSet("eval", "fnplot eval -f <def> x...")
	def := fs.String("f", "", "function `definition` in x")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fn, err := (evaluator.Expr{}).Compile(*def, interact.Variable)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no x values given")
	}

	for _, arg := range fs.Args() {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad x value %q", arg)
		}
		y, err := fn.Evaluate(x)
		if err != nil {
			fmt.Fprintf(stdout, "%g\tundefined\n", x)
			continue
		}
		fmt.Fprintf(stdout, "%g\t%g\n", x, y)
	}
	return nil
}

func cmdTicks(args []string, stdout io.Writer) error {
	fs := newFlagSet("ticks", "fnplot ticks -scale s -extent px [-manual t]")
	scale := fs.Float64("scale", view.DefaultScale, "pixels per unit")
	extent := fs.Float64("extent", 800, "axis length in pixels")
	manual := fs.Float64("manual", 0, "manual spacing (0 = auto)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !(*scale > 0) {
		return fmt.Errorf("scale must be positive, got %g", *scale)
	}

	spacing := view.TickSpacing(*scale, *extent, *manual)
	label, ok := view.FormatTick(spacing)
	if !ok {
		label = strconv.FormatFloat(spacing, 'g', -1, 64)
	}
	fmt.Fprintf(stdout, "spacing: %g\n", spacing)
	fmt.Fprintf(stdout, "label:   %s\n", label)
	fmt.Fprintf(stdout, "pixels:  %g\n", spacing*(*scale))
	return nil
}

func cmdSample(args []string, stdout io.Writer) error {
	fs := newFlagSet("sample", "fnplot sample -f <def> [-W px] [-H px]")
	def := fs.String("f", "", "function `definition` in x")
	width := fs.Int("W", 800, "viewport width in pixels")
	height := fs.Int("H", 600, "viewport height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fn, err := (evaluator.Expr{}).Compile(*def, interact.Variable)
	if err != nil {
		return err
	}

	if err := checkSize(*width, *height, "", 0); err != nil {
		return err
	}

	tr := view.Default().Transform(*width, *height)
	var rec plot.Recorder
	st := plot.DrawCurve(&rec, fn, tr)
	fmt.Fprintf(stdout, "segments: %d\n", st.Segments)
	fmt.Fprintf(stdout, "points:   %d\n", st.Points)
	fmt.Fprintf(stdout, "breaks:   %d\n", st.Breaks)
	fmt.Fprintf(stdout, "lines:    %d\n", len(rec.Commands))
	return nil
}

// checkSize validates the viewport size and, for PNG output, the
// supersampled raster size.
func checkSize(width, height int, format string, supersample int) error {
	if width < 1 || height < 1 || width > maxImageSize || height > maxImageSize {
		return fmt.Errorf("image size %dx%d out of range 1..%d", width, height, maxImageSize)
	}
	if format != "png" {
		return nil
	}
	if supersample < 1 || supersample > maxSupersample {
		return fmt.Errorf("supersample %d out of range 1..%d", supersample, maxSupersample)
	}
	if width*height*supersample*supersample > maxRasterPixels {
		return fmt.Errorf("image %dx%d at %dx supersampling is too large", width, height, supersample)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
