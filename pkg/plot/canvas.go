// Package plot renders a function graph as a sequence of drawing
// commands: gridlines, axes, tick marks and labels, and the sampled
// curve. Rasterizing the commands is left to a Canvas implementation.
package plot

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Role tells a canvas what a command draws, so it can pick colours and
// line widths.
type Role int

const (
	RoleGrid  Role = iota // gridlines at every tick
	RoleAxis              // the x and y axes
	RoleTick              // tick marks on the axes
	RoleLabel             // tick labels
	RoleCurve             // the function graph
)

func (r Role) String() string {
	switch r {
	case RoleGrid:
		return "grid"
	case RoleAxis:
		return "axis"
	case RoleTick:
		return "tick"
	case RoleLabel:
		return "label"
	case RoleCurve:
		return "curve"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Canvas receives drawing commands in screen coordinates (pixels, y
// down). Text is anchored at the left end of its baseline.
type Canvas interface {
	Line(from, to vec.Vec2, role Role)
	Text(at vec.Vec2, s string, role Role)
}

// Op is the kind of a recorded command.
type Op int

const (
	OpLine Op = iota
	OpText
)

// Command is one recorded drawing operation. For OpText, From is the
// anchor and To is unused.
type Command struct {
	Op   Op
	Role Role
	From vec.Vec2
	To   vec.Vec2
	Text string
}

// Recorder is a Canvas that stores the commands it receives.
type Recorder struct {
	Commands []Command
}

func (r *Recorder) Line(from, to vec.Vec2, role Role) {
	r.Commands = append(r.Commands, Command{Op: OpLine, Role: role, From: from, To: to})
}

func (r *Recorder) Text(at vec.Vec2, s string, role Role) {
	r.Commands = append(r.Commands, Command{Op: OpText, Role: role, From: at, Text: s})
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Replay sends the recorded commands to c in order.
func (r *Recorder) Replay(c Canvas) {
	for _, cmd := range r.Commands {
		switch cmd.Op {
		case OpLine:
			c.Line(cmd.From, cmd.To, cmd.Role)
		case OpText:
			c.Text(cmd.From, cmd.Text, cmd.Role)
		}
	}
}

// WithRole returns the recorded commands of the given role.
func (r *Recorder) WithRole(role Role) []Command {
	var res []Command
	for _, cmd := range r.Commands {
		if cmd.Role == role {
			res = append(res, cmd)
		}
	}
	return res
}
