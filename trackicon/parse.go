package trackicon

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// This file converts each source line into a typed Command.
// The geometry itself is handled by the turtle walk in turtle.go.

type cmdKind uint8

// Human readable command constants
const (
	cmdStart cmdKind = iota
	cmdSize
	cmdStraight
	cmdArc
	cmdUnknown
)

// Command is one parsed source line.
type Command interface {
	command() cmdKind
}

// Side selects the turning direction of an arc.
type Side uint8

const (
	Right Side = iota
	Left
)

// Start overwrites the turtle pose; "inicio x y heading".
type Start struct {
	X, Y, Heading float64
}

// SetSize declares the track bounding rectangle; "tamanho width height".
type SetSize struct {
	Width, Height float64
}

// Straight advances the given distance along the current heading; "reta d".
type Straight struct {
	Distance float64
}

// Arc travels along a circular arc; "arco side radius sweep".
// The side token is the literal "l" for left, anything else means right.
// Sweep is a non negative magnitude in degrees, the sign of the traversal
// comes from Side alone.
type Arc struct {
	Side   Side
	Radius float64
	Sweep  float64
}

// Unknown keeps the raw tokens of a line with an unrecognized keyword, or
// a recognized keyword with the wrong argument count. It produces no
// geometry but still marks the track as started (see turtle.go).
type Unknown struct {
	Tokens []string
}

func (Start) command() cmdKind    { return cmdStart }
func (SetSize) command() cmdKind  { return cmdSize }
func (Straight) command() cmdKind { return cmdStraight }
func (Arc) command() cmdKind      { return cmdArc }
func (Unknown) command() cmdKind  { return cmdUnknown }

// ParseError locates a failed line in the track source.
type ParseError struct {
	Line int // 1-based
	err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.err)
}

func (e ParseError) Unwrap() error { return e.err }

// sourceLine binds a command to its 1-based source line number, used
// for error reporting and segment labels.
type sourceLine struct {
	number int
	cmd    Command
}

func parseFloats(tokens []string) ([]float64, error) {
	vs := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// parseLines splits the source into commands, skipping blank lines.
// The only fatal condition is a numeric token that does not parse on a
// line with a recognized keyword and the right argument count; in
// StrictErrorMode unrecognized lines are fatal as well.
func parseLines(src string, errMode ErrorMode) ([]sourceLine, error) {
	var out []sourceLine
	for idx, raw := range strings.Split(src, "\n") {
		tokens := strings.Fields(raw)
		if len(tokens) == 0 {
			continue
		}
		number := idx + 1
		cmd, err := parseCommand(tokens)
		if err != nil {
			return nil, ParseError{Line: number, err: err}
		}
		if unk, ok := cmd.(Unknown); ok {
			errStr := "cannot process track command " + unk.Tokens[0]
			if errMode == StrictErrorMode {
				return nil, ParseError{Line: number, err: errors.New(errStr)}
			} else if errMode == WarnErrorMode {
				log.Println(errStr)
			}
		}
		out = append(out, sourceLine{number: number, cmd: cmd})
	}
	return out, nil
}

// parseCommand matches the first token, lower-cased, against the four
// keywords. A keyword with the wrong argument count falls through to
// Unknown instead of failing: the original generator treats such lines
// exactly like a foreign keyword.
func parseCommand(tokens []string) (Command, error) {
	keyword := strings.ToLower(tokens[0])
	switch {
	case keyword == "inicio" && len(tokens) == 4:
		vs, err := parseFloats(tokens[1:])
		if err != nil {
			return nil, err
		}
		return Start{X: vs[0], Y: vs[1], Heading: vs[2]}, nil
	case keyword == "tamanho" && len(tokens) == 3:
		vs, err := parseFloats(tokens[1:])
		if err != nil {
			return nil, err
		}
		return SetSize{Width: vs[0], Height: vs[1]}, nil
	case keyword == "reta" && len(tokens) == 2:
		vs, err := parseFloats(tokens[1:])
		if err != nil {
			return nil, err
		}
		return Straight{Distance: vs[0]}, nil
	case keyword == "arco" && len(tokens) == 4:
		side := Right
		if tokens[1] == "l" {
			side = Left
		}
		vs, err := parseFloats(tokens[2:])
		if err != nil {
			return nil, err
		}
		return Arc{Side: side, Radius: vs[0], Sweep: vs[1]}, nil
	}
	return Unknown{Tokens: tokens}, nil
}
