package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/fnplot/pkg/interact"
	"github.com/ha1tch/fnplot/pkg/plot"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// plotStyles colours the plot by drawing role.
var plotStyles = map[plot.Role]tcell.Style{
	plot.RoleGrid:  tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 70)),
	plot.RoleAxis:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	plot.RoleTick:  tcell.StyleDefault.Foreground(tcell.ColorSilver),
	plot.RoleLabel: tcell.StyleDefault.Foreground(tcell.ColorSilver),
	plot.RoleCurve: tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true),
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	if v.dirty {
		v.canvas.Clear()
		st := v.ctrl.Render(v.canvas)
		v.dirty = false
		v.logger.Printf("render: %d segments, %d points, %d breaks", st.Segments, st.Points, st.Breaks)
	}
	v.canvas.Draw(v.screen, 0, 0, plotStyles)

	if v.mode == ModeInput {
		v.drawInputBox(w, h)
	}
	v.drawStatusBar(w, h)
}

func (v *Viewer) drawStatusBar(w, h int) {
	if h < 2 {
		return
	}
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	// Function and scale
	p := v.ctrl.View()
	info := fmt.Sprintf("f(x) = %s  scale %.4g", v.ctrl.Definition(), p.ScaleX)
	if p.ScaleY != p.ScaleX {
		info += fmt.Sprintf("x%.4g", p.ScaleY)
	}
	v.drawString(1, y, info, styleStatus)

	// Mode
	modeStr := v.modeString()
	v.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)

	// Message
	if v.message != "" {
		style := styleMsgInfo
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		v.drawString(w-len([]rune(v.message))-2, y, v.message, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, v.helpString(), styleHelp)
}

func (v *Viewer) drawInputBox(w, h int) {
	boxW := min(60, w)
	boxH := 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	v.drawBox(boxX, boxY, boxW, boxH, styleInput)
	v.drawString(boxX+2, boxY+1, v.inputPrompt, styleInput)
	v.drawString(boxX+2+len([]rune(v.inputPrompt)), boxY+1, v.inputBuffer+"_", styleInput)
}

func (v *Viewer) drawBox(x, y, w, h int, style tcell.Style) {
	// Corners
	v.screen.SetContent(x, y, '┌', nil, styleBorder)
	v.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	v.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	v.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)

	for i := x + 1; i < x+w-1; i++ {
		v.screen.SetContent(i, y, '─', nil, styleBorder)
		v.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		v.screen.SetContent(x, i, '│', nil, styleBorder)
		v.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}

	// Fill
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			v.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (v *Viewer) modeString() string {
	switch {
	case v.mode == ModeInput:
		return "INPUT"
	case v.ctrl.Mode() == interact.Panning:
		return "PAN"
	}
	return ""
}

func (v *Viewer) helpString() string {
	if v.mode == ModeInput {
		return "Type text  Enter:Confirm  Esc:Cancel"
	}
	return "Drag:Pan  Wheel:Zoom  Arrows:Pan  +/-:Zoom  0:Reset  F:Function  T:Ticks  Q:Quit"
}
