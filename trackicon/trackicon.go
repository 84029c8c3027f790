// Provides parsing and rendering of line-follower track descriptions.
// Track sources are parsed into an abstract list of drawing primitives,
// which can then be consumed by painting drivers.
// See for example FollowerTrackCreator/trackraster or FollowerTrackCreator/trackpdf .
package trackicon

import (
	"io"
	"os"
)

// ErrorMode determines if the parser ignores, errors out, or logs a warning
// when it finds a line it does not recognize as a track command.
type ErrorMode uint8

const (
	// IgnoreErrorMode keeps unrecognized lines as silent no-ops
	// (the historical behavior, see turtle.go for their side effect).
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unrecognized lines and continues.
	WarnErrorMode
	// StrictErrorMode aborts the run on the first unrecognized line.
	StrictErrorMode
)

// Size is a width and height pair, in track units.
type Size struct {
	Width, Height float64
}

// Track holds the primitives compiled from a track source.
// See the Draw method to use it.
type Track struct {
	Primitives []Primitive

	// Viewport is the suggested size of the drawing surface: the declared
	// track size padded by the rectangle margin on each side.
	// It is nil when the source contains no "tamanho" line.
	Viewport *Size

	opts Options
}

// ReadTrackStream reads a track description from the given io.Reader.
// Each non blank line of the source is one command; the run fails only
// when a numeric argument of a well formed command does not parse
// (and, in StrictErrorMode, on unrecognized lines). On failure no
// primitives are returned.
func ReadTrackStream(stream io.Reader, errMode ErrorMode, opts Options) (*Track, error) {
	src, err := io.ReadAll(stream)
	if err != nil {
		return nil, err
	}
	lines, err := parseLines(string(src), errMode)
	if err != nil {
		return nil, err
	}
	return buildTrack(lines, opts), nil
}

// ReadTrack reads the track description from the named file.
func ReadTrack(trackFile string, errMode ErrorMode, opts Options) (*Track, error) {
	fin, errf := os.Open(trackFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadTrackStream(fin, errMode, opts)
}
