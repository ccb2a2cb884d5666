// Command fnview is an interactive terminal plotter for functions of x.
package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fnplot/pkg/interact"
)

// keyPanStep is how far an arrow key moves the view, in dots.
const keyPanStep = 8

// Mode represents viewer mode
type Mode int

const (
	ModeView  Mode = iota // plot has the keyboard and mouse
	ModeInput             // a prompt is open
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative
	MsgError                      // Rejected input
	MsgSuccess                    // State changes
)

// Viewer holds all viewer state
type Viewer struct {
	screen tcell.Screen
	ctrl   *interact.Controller
	canvas *Braille
	dirty  bool // canvas needs re-rendering

	config Config
	logger *log.Logger

	mode        Mode
	message     string
	messageType MessageType

	// Input state
	inputBuffer string
	inputPrompt string
	inputAction func(string)
}

func main() {
	logger := log.New(io.Discard, "fnview: ", log.LstdFlags)
	if path := os.Getenv("FNVIEW_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log %s: %v\n", path, err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cfgPath := ConfigPath()
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		logger.Printf("ignoring %s: %v", cfgPath, err)
	}
	if len(os.Args) > 1 {
		cfg.Function = strings.Join(os.Args[1:], " ")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	v := newViewer(screen, cfg, logger)
	v.run()

	screen.Fini()

	if err := SaveConfig(cfgPath, v.config); err != nil {
		logger.Printf("saving %s: %v", cfgPath, err)
	}
}

// newViewer sets up a viewer on an initialized screen. An invalid
// startup function leaves the plot empty and reports the error in the
// status bar.
func newViewer(screen tcell.Screen, cfg Config, logger *log.Logger) *Viewer {
	v := &Viewer{
		screen: screen,
		config: cfg,
		logger: logger,
		dirty:  true,
	}
	v.canvas = NewBraille(0, 0)
	v.ctrl = interact.New(nil, 0, 0)
	v.ctrl.OnRedraw = func() { v.dirty = true }
	v.resize()
	v.ctrl.SetManualTicks(cfg.TickX, cfg.TickY)
	v.define(cfg.Function)
	return v
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		if v.handleEvent(v.screen.PollEvent()) {
			return
		}
	}
}

// handleEvent processes one event and reports whether to quit.
func (v *Viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	case *tcell.EventKey:
		if v.mode == ModeInput {
			return v.handleInputKey(ev)
		}
		return v.handleKey(ev)
	case *tcell.EventMouse:
		if v.mode == ModeView {
			v.handleMouse(ev)
		}
	case nil:
		return true // screen finalized
	}
	return false
}

// plotSize returns the plot area in cells: everything except the status
// and help bars.
func (v *Viewer) plotSize() (cols, rows int) {
	w, h := v.screen.Size()
	return w, max(h-2, 0)
}

func (v *Viewer) resize() {
	cols, rows := v.plotSize()
	v.canvas.Resize(cols, rows)
	v.dirty = true
	v.ctrl.Resize(v.canvas.Size())
	v.logger.Printf("resize: %dx%d cells", cols, rows)
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	w, h := v.ctrl.Size()
	cx, cy := float64(w)/2, float64(h)/2

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyEnter:
		v.promptFunction()
	case tcell.KeyLeft:
		v.ctrl.Pan(-keyPanStep, 0)
	case tcell.KeyRight:
		v.ctrl.Pan(keyPanStep, 0)
	case tcell.KeyUp:
		v.ctrl.Pan(0, -keyPanStep)
	case tcell.KeyDown:
		v.ctrl.Pan(0, keyPanStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'f', 'F':
			v.promptFunction()
		case 't', 'T':
			v.promptTicks()
		case '+', '=':
			v.ctrl.Wheel(cx, cy, v.config.WheelStep)
		case '-', '_':
			v.ctrl.Wheel(cx, cy, -v.config.WheelStep)
		case '0':
			v.ctrl.Reset()
			v.showMessage("View reset", MsgInfo)
		}
	}
	return false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	// centre of the cell, in dots
	x := float64(col*dotsX) + dotsX/2
	y := float64(row*dotsY) + dotsY/2
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		v.ctrl.Wheel(x, y, v.config.WheelStep)
	case buttons&tcell.WheelDown != 0:
		v.ctrl.Wheel(x, y, -v.config.WheelStep)
	case buttons&tcell.Button1 != 0:
		if v.ctrl.Mode() == interact.Panning {
			v.ctrl.PointerDrag(x, y)
		} else {
			v.ctrl.PointerPress(x, y)
		}
	default:
		if v.ctrl.Mode() == interact.Panning {
			v.ctrl.PointerRelease(x, y)
			p := v.ctrl.View()
			v.logger.Printf("pan: offset (%g, %g)", p.OffsetX, p.OffsetY)
		}
	}
}

func (v *Viewer) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		v.mode = ModeView
	case tcell.KeyEnter:
		v.mode = ModeView
		if v.inputAction != nil {
			v.inputAction(v.inputBuffer)
		}
		v.inputBuffer = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(v.inputBuffer); len(r) > 0 {
			v.inputBuffer = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		v.inputBuffer += string(ev.Rune())
	}
	return false
}

func (v *Viewer) prompt(label, initial string, action func(string)) {
	v.mode = ModeInput
	v.inputPrompt = label
	v.inputBuffer = initial
	v.inputAction = action
}

func (v *Viewer) promptFunction() {
	v.prompt("f(x) = ", v.ctrl.Definition(), v.define)
}

func (v *Viewer) promptTicks() {
	p := v.ctrl.View()
	initial := ""
	if p.ManualTickX > 0 || p.ManualTickY > 0 {
		initial = formatTicks(p.ManualTickX, p.ManualTickY)
	}
	v.prompt("ticks (x,y) = ", initial, v.setTicks)
}

// define makes definition the plotted function. A rejected definition
// keeps the current one.
func (v *Viewer) define(definition string) {
	if err := v.ctrl.Define(definition); err != nil {
		v.logger.Printf("define %q: %v", definition, err)
		v.showMessage("Invalid function.", MsgError)
		return
	}
	v.config.Function = definition
	v.logger.Printf("define %q", definition)
	v.showMessage("f(x) = "+definition, MsgSuccess)
}

// setTicks parses "tx,ty" or a single spacing for both axes. An empty
// string returns to automatic ticks.
func (v *Viewer) setTicks(s string) {
	tx, ty, err := parseTicks(s)
	if err != nil {
		v.showMessage(err.Error(), MsgError)
		return
	}
	v.ctrl.SetManualTicks(tx, ty)
	v.config.TickX, v.config.TickY = tx, ty
	if tx == 0 && ty == 0 {
		v.showMessage("Automatic ticks", MsgSuccess)
	} else {
		v.showMessage("Ticks "+formatTicks(tx, ty), MsgSuccess)
	}
}

func parseTicks(s string) (tx, ty float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	a, b, found := strings.Cut(s, ",")
	if !found {
		b = a
	}
	tx, errX := strconv.ParseFloat(strings.TrimSpace(a), 64)
	ty, errY := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errX != nil || errY != nil || !validTick(tx) || !validTick(ty) {
		return 0, 0, fmt.Errorf("invalid ticks %q", s)
	}
	return tx, ty, nil
}

func validTick(t float64) bool {
	return t >= 0 && !math.IsInf(t, 0)
}

func formatTicks(tx, ty float64) string {
	return strconv.FormatFloat(tx, 'g', -1, 64) + "," + strconv.FormatFloat(ty, 'g', -1, 64)
}

func (v *Viewer) showMessage(msg string, msgType MessageType) {
	v.message = msg
	v.messageType = msgType
}
