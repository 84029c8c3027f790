package trackicon

import (
	"math"
	"strconv"
)

// This file implements the turtle walk turning the command list into
// primitives. The walk is a single fold over the source lines; each step
// is a pure function of the previous state, so concurrent runs never
// share anything.

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// runState is the turtle scratch state threaded through the walk.
// isSetup stays true while only well formed "inicio" and "tamanho" lines
// have been seen; pendingMark stays true until the start/finish gate tick
// has been placed.
type runState struct {
	pose        Pose
	isSetup     bool
	pendingMark bool
}

// step consumes one source line and returns the next state plus the
// primitives the line contributes, in order. Tick marks use the pose
// before the line's own effect.
func (st runState) step(ln sourceLine, o Options) (runState, []Primitive) {
	var prims []Primitive
	if !st.isSetup && !st.pendingMark {
		prims = append(prims, Tick{At: st.pose})
	} else if !st.isSetup && st.pendingMark {
		prims = append(prims, Tick{At: st.pose, Inverted: true})
		st.pendingMark = false
	}

	switch cmd := ln.cmd.(type) {
	case Start:
		st.pose = Pose{X: cmd.X, Y: cmd.Y, Heading: cmd.Heading}
	case SetSize:
		prims = append(prims, Rect{Width: cmd.Width, Height: cmd.Height})
	case Straight:
		from := Point{X: st.pose.X, Y: st.pose.Y}
		to := Point{
			X: st.pose.X + cmd.Distance*math.Cos(radians(st.pose.Heading)),
			Y: st.pose.Y - cmd.Distance*math.Sin(radians(st.pose.Heading)),
		}
		prims = append(prims, Segment{From: from, To: to})
		if o.Labels {
			prims = append(prims, Label{
				At:   Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2},
				Text: strconv.Itoa(ln.number),
			})
		}
		st.pose.X, st.pose.Y = to.X, to.Y
		st.isSetup = false
	case Arc:
		arc, end, mid := sweepArc(st.pose, cmd)
		prims = append(prims, arc)
		if o.Labels {
			prims = append(prims, Label{At: mid, Text: strconv.Itoa(ln.number)})
		}
		st.pose = end
		st.isSetup = false
	case Unknown:
		// no geometry, but the track counts as started: the next line
		// gets a tick exactly as if this one had moved the turtle
		st.isSetup = false
	}
	return st, prims
}

// sweepArc computes the arc primitive for cmd starting at pose, the pose
// at the arc's end, and the point halfway along the traveled sweep (on
// the arc itself, not the chord).
func sweepArc(pose Pose, cmd Arc) (ArcPath, Pose, Point) {
	turn, sweep := 90.0, -cmd.Sweep
	if cmd.Side == Left {
		turn, sweep = -90.0, cmd.Sweep
	}
	center := Point{
		X: pose.X + cmd.Radius*math.Cos(radians(pose.Heading-turn)),
		Y: pose.Y - cmd.Radius*math.Sin(radians(pose.Heading-turn)),
	}
	startAngle := pose.Heading + turn
	arc := ArcPath{Center: center, Radius: cmd.Radius, StartAngle: startAngle, Sweep: sweep}

	heading := pose.Heading + sweep
	end := Pose{
		X:       center.X + cmd.Radius*math.Cos(radians(heading+turn)),
		Y:       center.Y - cmd.Radius*math.Sin(radians(heading+turn)),
		Heading: heading,
	}
	midAngle := startAngle + sweep/2
	mid := Point{
		X: center.X + cmd.Radius*math.Cos(radians(midAngle)),
		Y: center.Y - cmd.Radius*math.Sin(radians(midAngle)),
	}
	return arc, end, mid
}

// buildTrack folds the command list into a compiled track. The closing
// start/finish gate tick is placed unconditionally at the final pose,
// even when the source moved nothing.
func buildTrack(lines []sourceLine, o Options) *Track {
	track := &Track{opts: o}
	st := runState{isSetup: true, pendingMark: true}
	var prims []Primitive
	for _, ln := range lines {
		st, prims = st.step(ln, o)
		track.Primitives = append(track.Primitives, prims...)
		if sz, ok := ln.cmd.(SetSize); ok {
			track.Viewport = &Size{
				Width:  sz.Width + 2*o.RectMargin,
				Height: sz.Height + 2*o.RectMargin,
			}
		}
	}
	track.Primitives = append(track.Primitives, Tick{At: st.pose, Inverted: true})
	return track
}
