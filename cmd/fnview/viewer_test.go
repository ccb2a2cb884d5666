package main

import (
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fnplot/pkg/interact"
	"github.com/ha1tch/fnplot/pkg/view"
)

func newTestViewer(t *testing.T, w, h int, cfg Config) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return newViewer(s, cfg, log.New(io.Discard, "", 0)), s
}

// screenRow returns the text of row y after drawing.
func screenRow(v *Viewer, s tcell.SimulationScreen, y int) string {
	v.draw()
	s.Show()
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			sb.WriteRune(r[0])
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeText(v *Viewer, s string) {
	for _, r := range s {
		v.handleEvent(char(r))
	}
}

func TestStartup(t *testing.T) {
	v, s := newTestViewer(t, 60, 12, DefaultConfig())

	if w, h := v.ctrl.Size(); w != 120 || h != 40 {
		t.Errorf("plot size = %dx%d dots, want 120x40", w, h)
	}
	if v.ctrl.Definition() != "sin(x)" {
		t.Errorf("startup function = %q, want sin(x)", v.ctrl.Definition())
	}

	status := screenRow(v, s, 11)
	if !strings.Contains(status, "f(x) = sin(x)  scale 40") {
		t.Errorf("status bar = %q", status)
	}
	help := screenRow(v, s, 10)
	if !strings.HasPrefix(help, " Drag:Pan  Wheel:Zoom") {
		t.Errorf("help bar = %q", help)
	}

	braille := 0
	for y := 0; y < 10; y++ {
		for _, r := range screenRow(v, s, y) {
			if r > 0x2800 && r <= 0x28ff {
				braille++
			}
		}
	}
	if braille == 0 {
		t.Error("plot area has no braille cells")
	}
}

func TestInvalidStartupFunction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Function = "sin("
	v, _ := newTestViewer(t, 60, 12, cfg)
	if v.ctrl.Function() != nil {
		t.Error("invalid startup function was installed")
	}
	if v.message != "Invalid function." || v.messageType != MsgError {
		t.Errorf("message = %q (%v), want Invalid function.", v.message, v.messageType)
	}
}

func TestMouseDragPans(t *testing.T) {
	v, _ := newTestViewer(t, 60, 12, DefaultConfig())

	v.handleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	if v.ctrl.Mode() != interact.Panning {
		t.Fatalf("press did not start panning")
	}
	v.handleEvent(tcell.NewEventMouse(12, 5, tcell.Button1, tcell.ModNone))
	v.handleEvent(tcell.NewEventMouse(13, 4, tcell.Button1, tcell.ModNone))
	v.handleEvent(tcell.NewEventMouse(13, 4, tcell.ButtonNone, tcell.ModNone))

	p := v.ctrl.View()
	if p.OffsetX != 6 || p.OffsetY != -4 {
		t.Errorf("offset = (%g, %g), want (6, -4)", p.OffsetX, p.OffsetY)
	}
	if v.ctrl.Mode() != interact.Idle {
		t.Errorf("release left mode %v", v.ctrl.Mode())
	}
}

func TestWheelZoomsAtPointer(t *testing.T) {
	v, _ := newTestViewer(t, 60, 12, DefaultConfig())
	x, y := 30*dotsX+1.0, 3*dotsY+2.0
	before := v.ctrl.WorldAt(x, y)

	v.handleEvent(tcell.NewEventMouse(30, 3, tcell.WheelUp, tcell.ModNone))

	p := v.ctrl.View()
	if math.Abs(p.ScaleX-44) > 1e-9 || math.Abs(p.ScaleY-44) > 1e-9 {
		t.Errorf("scale = (%g, %g), want 44", p.ScaleX, p.ScaleY)
	}
	after := v.ctrl.WorldAt(x, y)
	if after.Sub(before).Length() > 1e-9 {
		t.Errorf("point under the pointer moved from %v to %v", before, after)
	}

	v.handleEvent(tcell.NewEventMouse(30, 3, tcell.WheelDown, tcell.ModNone))
	if math.Abs(v.ctrl.View().ScaleX-40) > 1e-9 {
		t.Errorf("wheel down did not undo wheel up: scale %g", v.ctrl.View().ScaleX)
	}
}

func TestKeys(t *testing.T) {
	v, _ := newTestViewer(t, 60, 12, DefaultConfig())

	v.handleEvent(key(tcell.KeyLeft))
	v.handleEvent(key(tcell.KeyDown))
	if p := v.ctrl.View(); p.OffsetX != -keyPanStep || p.OffsetY != keyPanStep {
		t.Errorf("arrows moved offset to (%g, %g)", p.OffsetX, p.OffsetY)
	}

	v.handleEvent(char('+'))
	if s := v.ctrl.View().ScaleX; math.Abs(s-44) > 1e-9 {
		t.Errorf("'+' gave scale %g, want 44", s)
	}

	v.handleEvent(char('0'))
	if v.ctrl.View() != view.Default() {
		t.Errorf("'0' left view %+v", v.ctrl.View())
	}
	if v.message != "View reset" {
		t.Errorf("message = %q", v.message)
	}

	for _, ev := range []*tcell.EventKey{char('q'), key(tcell.KeyEscape), tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)} {
		if !v.handleEvent(ev) {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
}

func TestFunctionPrompt(t *testing.T) {
	v, s := newTestViewer(t, 60, 12, DefaultConfig())

	v.handleEvent(char('f'))
	if v.mode != ModeInput || v.inputBuffer != "sin(x)" {
		t.Fatalf("prompt: mode %v, buffer %q", v.mode, v.inputBuffer)
	}
	if row := screenRow(v, s, 5); !strings.Contains(row, "f(x) = sin(x)_") {
		t.Errorf("input box = %q", row)
	}

	// keys go to the prompt, not the plot
	for range "sin(x)" {
		v.handleEvent(key(tcell.KeyBackspace2))
	}
	typeText(v, "x^2-0")
	v.handleEvent(key(tcell.KeyEnter))

	if v.mode != ModeView {
		t.Errorf("Enter left mode %v", v.mode)
	}
	if v.ctrl.Definition() != "x^2-0" || v.config.Function != "x^2-0" {
		t.Errorf("definition %q, config %q", v.ctrl.Definition(), v.config.Function)
	}
	if v.ctrl.View() != view.Default() {
		t.Errorf("typing moved the view: %+v", v.ctrl.View())
	}

	v.handleEvent(key(tcell.KeyEnter))
	v.inputBuffer = ""
	typeText(v, "x^")
	v.handleEvent(key(tcell.KeyEnter))
	if v.message != "Invalid function." || v.messageType != MsgError {
		t.Errorf("message = %q", v.message)
	}
	if v.ctrl.Definition() != "x^2-0" {
		t.Errorf("rejected definition replaced the function: %q", v.ctrl.Definition())
	}

	v.handleEvent(char('f'))
	v.handleEvent(key(tcell.KeyEscape))
	if v.mode != ModeView || v.ctrl.Definition() != "x^2-0" {
		t.Errorf("Esc: mode %v, definition %q", v.mode, v.ctrl.Definition())
	}
}

func TestTicksPrompt(t *testing.T) {
	v, _ := newTestViewer(t, 60, 12, DefaultConfig())

	v.handleEvent(char('t'))
	typeText(v, "0.5, 2")
	v.handleEvent(key(tcell.KeyEnter))
	if p := v.ctrl.View(); p.ManualTickX != 0.5 || p.ManualTickY != 2 {
		t.Errorf("ticks = (%g, %g), want (0.5, 2)", p.ManualTickX, p.ManualTickY)
	}
	if v.config.TickX != 0.5 || v.config.TickY != 2 {
		t.Errorf("config ticks = (%g, %g)", v.config.TickX, v.config.TickY)
	}

	v.handleEvent(char('t'))
	if v.inputBuffer != "0.5,2" {
		t.Errorf("prompt prefilled with %q", v.inputBuffer)
	}
	v.inputBuffer = ""
	typeText(v, "wide")
	v.handleEvent(key(tcell.KeyEnter))
	if v.messageType != MsgError {
		t.Errorf("bad ticks accepted: %q", v.message)
	}
	if p := v.ctrl.View(); p.ManualTickX != 0.5 {
		t.Errorf("bad ticks changed the view: %+v", p)
	}
}

func TestParseTicks(t *testing.T) {
	tests := []struct {
		in     string
		tx, ty float64
		wantOK bool
	}{
		{"", 0, 0, true},
		{"1", 1, 1, true},
		{"0.25,4", 0.25, 4, true},
		{" 2 , 0 ", 2, 0, true},
		{"-1,1", 0, 0, false},
		{"1,x", 0, 0, false},
		{"inf", 0, 0, false},
		{"NaN,1", 0, 0, false},
	}
	for _, tt := range tests {
		tx, ty, err := parseTicks(tt.in)
		if (err == nil) != tt.wantOK {
			t.Errorf("parseTicks(%q) error = %v, want ok %v", tt.in, err, tt.wantOK)
			continue
		}
		if tt.wantOK && (tx != tt.tx || ty != tt.ty) {
			t.Errorf("parseTicks(%q) = (%g, %g), want (%g, %g)", tt.in, tx, ty, tt.tx, tt.ty)
		}
	}
}

func TestResizeEvent(t *testing.T) {
	v, s := newTestViewer(t, 60, 12, DefaultConfig())
	s.SetSize(90, 30)
	v.handleEvent(tcell.NewEventResize(90, 30))
	if w, h := v.ctrl.Size(); w != 180 || h != 112 {
		t.Errorf("plot size = %dx%d dots, want 180x112", w, h)
	}
	if !strings.Contains(screenRow(v, s, 29), "sin(x)") {
		t.Error("status bar not on the new last row")
	}
}

func TestMouseIgnoredWhilePrompting(t *testing.T) {
	v, _ := newTestViewer(t, 60, 12, DefaultConfig())
	v.handleEvent(char('f'))
	v.handleEvent(tcell.NewEventMouse(10, 5, tcell.WheelUp, tcell.ModNone))
	if v.ctrl.View() != view.Default() {
		t.Errorf("wheel during prompt changed the view")
	}
}
