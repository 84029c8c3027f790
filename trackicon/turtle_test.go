package trackicon

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// approx absorbs the trigonometric noise of the turtle walk
// (cos(pi/2) is not exactly zero in float64).
var approx = cmpopts.EquateApprox(0, 1e-9)

func buildSource(t *testing.T, src string, opts Options) *Track {
	t.Helper()
	track, err := ReadTrackStream(strings.NewReader(src), IgnoreErrorMode, opts)
	if err != nil {
		t.Fatalf("can't build track: %s", err)
	}
	return track
}

func ticksOf(track *Track) (normal, inverted []Tick) {
	for _, p := range track.Primitives {
		if tick, ok := p.(Tick); ok {
			if tick.Inverted {
				inverted = append(inverted, tick)
			} else {
				normal = append(normal, tick)
			}
		}
	}
	return normal, inverted
}

func labelsOf(track *Track) (texts []string) {
	for _, p := range track.Primitives {
		if label, ok := p.(Label); ok {
			texts = append(texts, label.Text)
		}
	}
	return texts
}

func countKind(track *Track, k primKind) int {
	n := 0
	for _, p := range track.Primitives {
		if p.kind() == k {
			n++
		}
	}
	return n
}

// finalPose is the placement of the closing gate tick, which the walk
// always emits last.
func finalPose(t *testing.T, track *Track) Pose {
	t.Helper()
	last, ok := track.Primitives[len(track.Primitives)-1].(Tick)
	if !ok || !last.Inverted {
		t.Fatalf("expected a closing inverted tick, got %#v", track.Primitives[len(track.Primitives)-1])
	}
	return last.At
}

func TestStraightProjection(t *testing.T) {
	track := buildSource(t, "reta 100\n", DefaultOptions)
	want := []Primitive{
		Segment{From: Point{X: 0, Y: 0}, To: Point{X: 100, Y: 0}},
		Label{At: Point{X: 50, Y: 0}, Text: "1"},
		Tick{At: Pose{X: 100, Y: 0, Heading: 0}, Inverted: true},
	}
	if diff := cmp.Diff(want, track.Primitives); diff != "" {
		t.Errorf("incorrect primitives: %s", diff)
	}
	if track.Viewport != nil {
		t.Error("no tamanho line, expected a nil viewport hint")
	}
}

func TestArcRoundTrip(t *testing.T) {
	// a 180 degree left arc of radius 100 from (250,100,0) must come
	// back around to (250,-100) heading 180
	track := buildSource(t, "inicio 250 100 0\narco l 100 180\n", Options{RectMargin: 30})
	want := []Primitive{
		ArcPath{Center: Point{X: 250, Y: 0}, Radius: 100, StartAngle: -90, Sweep: 180},
		Tick{At: Pose{X: 250, Y: -100, Heading: 180}, Inverted: true},
	}
	if diff := cmp.Diff(want, track.Primitives, approx); diff != "" {
		t.Errorf("incorrect primitives: %s", diff)
	}
}

func TestHeadingNeverWrapped(t *testing.T) {
	track := buildSource(t, "arco l 100 270\narco l 100 270\n", Options{})
	if got := finalPose(t, track).Heading; got != 540 {
		t.Errorf("expected an accumulated heading of 540, got %g", got)
	}
	track = buildSource(t, "arco r 50 200\narco r 50 200\narco l 50 40\n", Options{})
	if got := finalPose(t, track).Heading; got != -360 {
		t.Errorf("expected an accumulated heading of -360, got %g", got)
	}
}

const ovalSource = `inicio 250 100 0
tamanho 600 400
reta 100
reta 100
arco r 100 180
reta 300
arco r 100 180
reta 100
`

func TestClosedOval(t *testing.T) {
	track := buildSource(t, ovalSource, DefaultOptions)

	want := []Primitive{
		Rect{Width: 600, Height: 400},
		Segment{From: Point{X: 250, Y: 100}, To: Point{X: 350, Y: 100}},
		Label{At: Point{X: 300, Y: 100}, Text: "3"},
		Tick{At: Pose{X: 350, Y: 100, Heading: 0}, Inverted: true},
		Segment{From: Point{X: 350, Y: 100}, To: Point{X: 450, Y: 100}},
		Label{At: Point{X: 400, Y: 100}, Text: "4"},
		Tick{At: Pose{X: 450, Y: 100, Heading: 0}},
		ArcPath{Center: Point{X: 450, Y: 200}, Radius: 100, StartAngle: 90, Sweep: -180},
		Label{At: Point{X: 550, Y: 200}, Text: "5"},
		Tick{At: Pose{X: 450, Y: 300, Heading: -180}},
		Segment{From: Point{X: 450, Y: 300}, To: Point{X: 150, Y: 300}},
		Label{At: Point{X: 300, Y: 300}, Text: "6"},
		Tick{At: Pose{X: 150, Y: 300, Heading: -180}},
		ArcPath{Center: Point{X: 150, Y: 200}, Radius: 100, StartAngle: -90, Sweep: -180},
		Label{At: Point{X: 50, Y: 200}, Text: "7"},
		Tick{At: Pose{X: 150, Y: 100, Heading: -360}},
		Segment{From: Point{X: 150, Y: 100}, To: Point{X: 250, Y: 100}},
		Label{At: Point{X: 200, Y: 100}, Text: "8"},
		Tick{At: Pose{X: 250, Y: 100, Heading: -360}, Inverted: true},
	}
	if diff := cmp.Diff(want, track.Primitives, approx); diff != "" {
		t.Errorf("incorrect primitives: %s", diff)
	}

	if track.Viewport == nil {
		t.Fatal("expected a viewport hint")
	}
	if diff := cmp.Diff(&Size{Width: 660, Height: 460}, track.Viewport); diff != "" {
		t.Errorf("incorrect viewport hint: %s", diff)
	}
}

func TestDeterminism(t *testing.T) {
	first := buildSource(t, ovalSource, DefaultOptions)
	second := buildSource(t, ovalSource, DefaultOptions)
	if diff := cmp.Diff(first.Primitives, second.Primitives); diff != "" {
		t.Errorf("two runs on the same source diverged: %s", diff)
	}
	if first.String() != second.String() {
		t.Error("two runs on the same source produced different dumps")
	}
}

func TestLabelsDisabled(t *testing.T) {
	opts := DefaultOptions
	opts.Labels = false
	track := buildSource(t, ovalSource, opts)
	if texts := labelsOf(track); len(texts) != 0 {
		t.Errorf("labels disabled, still got %v", texts)
	}
	// everything else is unchanged
	if got := countKind(track, primSegment); got != 4 {
		t.Errorf("expected 4 segments, got %d", got)
	}
	if got := countKind(track, primArc); got != 2 {
		t.Errorf("expected 2 arcs, got %d", got)
	}
	if got := countKind(track, primTick); got != 6 {
		t.Errorf("expected 6 ticks, got %d", got)
	}
}

func TestTickCardinality(t *testing.T) {
	// the gate tick is placed before the second motion line, a plain
	// tick before every following one, and the closing gate after the
	// last; setup lines never get ticks
	normal, inverted := ticksOf(buildSource(t, ovalSource, DefaultOptions))
	if len(normal) != 4 || len(inverted) != 2 {
		t.Fatalf("expected 4+2 ticks, got %d+%d", len(normal), len(inverted))
	}

	// a run with no motion line emits exactly the closing gate
	normal, inverted = ticksOf(buildSource(t, "inicio 10 20 30\ntamanho 1 1\n", DefaultOptions))
	if len(normal) != 0 || len(inverted) != 1 {
		t.Fatalf("expected the closing tick only, got %d+%d", len(normal), len(inverted))
	}
	if diff := cmp.Diff(Pose{X: 10, Y: 20, Heading: 30}, inverted[0].At); diff != "" {
		t.Errorf("closing tick misplaced: %s", diff)
	}
}

func TestEmptySourceClosingTick(t *testing.T) {
	track := buildSource(t, "", DefaultOptions)
	want := []Primitive{Tick{At: Pose{}, Inverted: true}}
	if diff := cmp.Diff(want, track.Primitives); diff != "" {
		t.Errorf("incorrect primitives: %s", diff)
	}
}

func TestUnknownLineStartsTrack(t *testing.T) {
	// the unknown line moves nothing but counts as "track has started":
	// it consumes the pending gate tick, and the following line gets a
	// plain tick at the unchanged pose
	track := buildSource(t, "reta 100\nfoo 1 2 3\nreta 100\n", DefaultOptions)
	want := []Primitive{
		Segment{From: Point{X: 0, Y: 0}, To: Point{X: 100, Y: 0}},
		Label{At: Point{X: 50, Y: 0}, Text: "1"},
		Tick{At: Pose{X: 100, Y: 0, Heading: 0}, Inverted: true},
		Tick{At: Pose{X: 100, Y: 0, Heading: 0}},
		Segment{From: Point{X: 100, Y: 0}, To: Point{X: 200, Y: 0}},
		Label{At: Point{X: 150, Y: 0}, Text: "3"},
		Tick{At: Pose{X: 200, Y: 0, Heading: 0}, Inverted: true},
	}
	if diff := cmp.Diff(want, track.Primitives, approx); diff != "" {
		t.Errorf("incorrect primitives: %s", diff)
	}
}

func TestMalformedSetupLineStartsTrack(t *testing.T) {
	// "inicio" with the wrong arity falls through to the started branch
	// instead of moving the pose, like any foreign keyword
	track := buildSource(t, "inicio 5 5\nreta 100\n", DefaultOptions)
	normal, inverted := ticksOf(track)
	if len(normal) != 0 || len(inverted) != 2 {
		t.Fatalf("expected 0+2 ticks, got %d+%d", len(normal), len(inverted))
	}
	// the gate tick sits at the origin: the malformed line left the pose alone
	if diff := cmp.Diff(Pose{}, inverted[0].At); diff != "" {
		t.Errorf("gate tick misplaced: %s", diff)
	}
}

func TestRepeatedSizeOverwritesViewport(t *testing.T) {
	track := buildSource(t, "tamanho 10 10\ntamanho 600 400\n", DefaultOptions)
	if got := countKind(track, primRect); got != 2 {
		t.Errorf("expected one rectangle per tamanho line, got %d", got)
	}
	if diff := cmp.Diff(&Size{Width: 660, Height: 460}, track.Viewport); diff != "" {
		t.Errorf("incorrect viewport hint: %s", diff)
	}
}

func TestDegenerateGeometry(t *testing.T) {
	// zero distances and radii are accepted silently
	track := buildSource(t, "reta 0\narco l 0 90\narco r 10 0\n", Options{})
	if got := countKind(track, primSegment); got != 1 {
		t.Errorf("expected the zero length segment, got %d segments", got)
	}
	if got := countKind(track, primArc); got != 2 {
		t.Errorf("expected both degenerate arcs, got %d", got)
	}
	if got := finalPose(t, track).Heading; got != 90 {
		t.Errorf("expected a final heading of 90, got %g", got)
	}
}

func TestTickEndpoints(t *testing.T) {
	from, to := Tick{At: Pose{X: 10, Y: 20, Heading: 0}}.Endpoints(DefaultOptions)
	if diff := cmp.Diff([]Point{{X: 10, Y: 16}, {X: 10, Y: 12}}, []Point{from, to}, approx); diff != "" {
		t.Errorf("incorrect tick: %s", diff)
	}
	from, to = Tick{At: Pose{X: 10, Y: 20, Heading: 0}, Inverted: true}.Endpoints(DefaultOptions)
	if diff := cmp.Diff([]Point{{X: 10, Y: 24}, {X: 10, Y: 28}}, []Point{from, to}, approx); diff != "" {
		t.Errorf("incorrect inverted tick: %s", diff)
	}
}
