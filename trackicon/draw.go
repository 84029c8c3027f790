package trackicon

// Given a compiled track, implements how to draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// Point is a position in track units, y growing downwards.
type Point struct {
	X, Y float64
}

// Pose is the turtle placement: a position plus a heading in degrees.
// Headings are never normalized; two full left turns end at 720.
type Pose struct {
	X, Y    float64
	Heading float64
}

// Driver knows how to do the actual draw operations
// but doesn't need any knowledge of the track command language.
// In particular, tick marks are already reduced to plain lines
// before reaching the driver.
type Driver interface {
	// Line draws a straight line between the two points.
	Line(from, to Point)

	// Arc draws a circular arc around center. Angles are in degrees,
	// measured counter-clockwise from the 3 o'clock position; a negative
	// sweep runs clockwise.
	Arc(center Point, radius, startAngle, sweep float64)

	// Rect draws the track bounding rectangle, anchored at the origin.
	Rect(width, height float64)

	// Label draws the given text anchored at `at`.
	Label(at Point, text string)
}

// Options groups the geometry constants of a build.
type Options struct {
	MarkOffset float64 // distance from the centerline to a tick mark
	MarkSize   float64 // length of a tick mark
	RectMargin float64 // padding added around the declared size in the viewport hint
	Labels     bool    // emit a Label primitive per motion line
}

// DefaultOptions matches the historical constants of the generator:
// 4 unit tick marks offset 4 units from the path, a 30 unit margin,
// and line number labels enabled.
var DefaultOptions = Options{
	MarkOffset: 4,
	MarkSize:   4,
	RectMargin: 30,
	Labels:     true,
}

// Draw replays the compiled primitives into the driver `d`, in source
// order. The same track may be drawn any number of times, on any number
// of drivers.
func (t *Track) Draw(d Driver) {
	for _, p := range t.Primitives {
		p.drawTo(d, t.opts)
	}
}
