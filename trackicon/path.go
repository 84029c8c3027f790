package trackicon

import (
	"fmt"
	"math"
	"strings"
)

// This file defines the primitives produced by the turtle walk.

type primKind uint8

const (
	primSegment primKind = iota
	primArc
	primRect
	primTick
	primLabel
)

// Primitive is one drawable element of a compiled track. Primitives are
// immutable, carry no behavior beyond their replay on a driver, and are
// ordered as in the source.
type Primitive interface {
	// add itself on the driver `d`, using the build options `o`
	drawTo(d Driver, o Options)
	kind() primKind
}

// Segment is a straight piece of the track centerline.
type Segment struct {
	From, To Point
}

// ArcPath is a circular piece of the centerline. StartAngle and Sweep
// are in degrees, counter-clockwise from the 3 o'clock position; Sweep
// is negative for right turns.
type ArcPath struct {
	Center     Point
	Radius     float64
	StartAngle float64
	Sweep      float64
}

// Rect is the declared track bounding rectangle, anchored at the origin.
// The viewport margin is not part of the rectangle.
type Rect struct {
	Width, Height float64
}

// Tick is a short separator mark perpendicular to the path at a pose.
// The inverted form mirrors to the other side of the path and marks the
// start/finish gate.
type Tick struct {
	At       Pose
	Inverted bool
}

// Label carries the 1-based source line number of a motion command,
// anchored at the middle of its piece.
type Label struct {
	At   Point
	Text string
}

func (Segment) kind() primKind { return primSegment }
func (ArcPath) kind() primKind { return primArc }
func (Rect) kind() primKind    { return primRect }
func (Tick) kind() primKind    { return primTick }
func (Label) kind() primKind   { return primLabel }

func (p Segment) drawTo(d Driver, _ Options) {
	d.Line(p.From, p.To)
}

func (p ArcPath) drawTo(d Driver, _ Options) {
	d.Arc(p.Center, p.Radius, p.StartAngle, p.Sweep)
}

func (p Rect) drawTo(d Driver, _ Options) {
	d.Rect(p.Width, p.Height)
}

func (p Tick) drawTo(d Driver, o Options) {
	from, to := p.Endpoints(o)
	d.Line(from, to)
}

func (p Label) drawTo(d Driver, _ Options) {
	d.Label(p.At, p.Text)
}

// Endpoints returns the line covered by the tick for the given mark
// geometry: from MarkOffset to MarkOffset+MarkSize along the
// perpendicular of the pose heading, mirrored for the inverted form.
func (p Tick) Endpoints(o Options) (Point, Point) {
	perp := radians(p.At.Heading + 90)
	dx0 := o.MarkOffset * math.Cos(perp)
	dy0 := o.MarkOffset * math.Sin(perp)
	dx1 := dx0 + o.MarkSize*math.Cos(perp)
	dy1 := dy0 + o.MarkSize*math.Sin(perp)
	if p.Inverted {
		dx0, dy0, dx1, dy1 = -dx0, -dy0, -dx1, -dy1
	}
	return Point{X: p.At.X + dx0, Y: p.At.Y - dy0},
		Point{X: p.At.X + dx1, Y: p.At.Y - dy1}
}

// String returns a readable dump of the primitive list.
func (t *Track) String() string {
	chunks := make([]string, len(t.Primitives))
	for i, p := range t.Primitives {
		switch p := p.(type) {
		case Segment:
			chunks[i] = fmt.Sprintf("S%4.3f,%4.3f,%4.3f,%4.3f", p.From.X, p.From.Y, p.To.X, p.To.Y)
		case ArcPath:
			chunks[i] = fmt.Sprintf("A%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", p.Center.X, p.Center.Y, p.Radius, p.StartAngle, p.Sweep)
		case Rect:
			chunks[i] = fmt.Sprintf("R%4.3f,%4.3f", p.Width, p.Height)
		case Tick:
			prefix := "T"
			if p.Inverted {
				prefix = "G"
			}
			chunks[i] = fmt.Sprintf("%s%4.3f,%4.3f,%4.3f", prefix, p.At.X, p.At.Y, p.At.Heading)
		case Label:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f,%s", p.At.X, p.At.Y, p.Text)
		}
	}
	return strings.Join(chunks, " ")
}
