package main

import (
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/fnplot/pkg/view"
)

// newFlagSet returns a flag set that reports errors instead of exiting
// and prints synopsis above the flag defaults for -h.
func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s\n", synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parsePair parses "a,b" into a vector.
func parsePair(s string) (vec.Vec2, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return vec.Vec2{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := parseFinite(a)
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := parseFinite(b)
	if err != nil {
		return vec.Vec2{}, err
	}
	return vec.Vec2{X: x, Y: y}, nil
}

// parseZoom parses "r@x,y": r wheel notches at pixel (x, y).
func parseZoom(s string) (float64, vec.Vec2, error) {
	r, at, ok := strings.Cut(s, "@")
	if !ok {
		return 0, vec.Vec2{}, fmt.Errorf("want r@x,y, got %q", s)
	}
	rotation, err := parseFinite(r)
	if err != nil {
		return 0, vec.Vec2{}, err
	}
	p, err := parsePair(at)
	if err != nil {
		return 0, vec.Vec2{}, err
	}
	return rotation, p, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}

// rotationFor returns the wheel rotation that multiplies the scale by
// ratio.
func rotationFor(ratio float64) float64 {
	return math.Log(ratio) / math.Log(view.ZoomBase)
}
