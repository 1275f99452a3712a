// Package command implements the line-oriented move language shared by batch
// requests, websocket frames and the terminal client:
//
//	o x y // reveal the cell at x:y
//	m x y // toggle the mark at x:y (f is an alias)
//	n     // deal a new board with the same parameters
//	a     // reveal every cell (debug only)
//	g     // do nothing, just report the state
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNargs          = errors.New("invalid number of arguments")
	ErrDebugDisabled  = errors.New("debug commands are disabled")
)

type Op byte

const (
	Get       Op = 'g'
	Reveal    Op = 'o'
	Mark      Op = 'm'
	Reset     Op = 'n'
	RevealAll Op = 'a'
)

func (op Op) String() string {
	switch op {
	case Get:
		return "get"
	case Reveal:
		return "reveal"
	case Mark:
		return "mark"
	case Reset:
		return "reset"
	case RevealAll:
		return "reveal_all"
	default:
		return "unknown"
	}
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"m": 2,
	"f": 2,
	"n": 0,
	"a": 0,
}

type Command struct {
	Op   Op
	X, Y int
	// Line is the 1-based source line within a batch, 0 when the command
	// was not parsed from one.
	Line int
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return Command{}, ErrNargs
	}
	if parts[0] == "f" {
		parts[0] = "m"
	}
	c := Command{Op: Op(parts[0][0])}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		c.X, c.Y = x, y
	}
	return c, nil
}

// LineError points at the 1-based line of a batch that could not be
// executed.
type LineError struct {
	Line int
	Err  error
}

// [LineError] implements [error]
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseBatch parses newline-separated commands. Blank lines are skipped. The
// whole batch is rejected if any line is malformed.
func ParseBatch(text string) ([]Command, error) {
	var cmds []Command
	for i, line := range byPiece(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := Parse(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		c.Line = i + 1
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

type Options struct {
	AllowDebug bool
}

// Result is what happened to a game while executing a batch.
type Result struct {
	Executed int
	Changed  int
	Status   mines.GameStatus
}

// Execute applies commands to g in order. It stops after the command that
// ends the game. Debug commands are checked up front so a rejected batch
// leaves the game untouched.
func Execute(g *mines.Game, cmds []Command, opts Options) (Result, error) {
	var res Result
	for i, c := range cmds {
		if c.Op == RevealAll && !opts.AllowDebug {
			line := c.Line
			if line == 0 {
				line = i + 1
			}
			return res, &LineError{Line: line, Err: ErrDebugDisabled}
		}
	}
	for _, c := range cmds {
		wasOver := g.Board().Status().Over()
		switch c.Op {
		case Get:
		case Reveal:
			res.Changed += g.Reveal(c.X, c.Y).Changed
		case Mark:
			res.Changed += g.Mark(c.X, c.Y).Changed
		case Reset:
			if err := g.Reset(); err != nil {
				return res, err
			}
		case RevealAll:
			res.Changed += g.RevealAll().Changed
		default:
			return res, ErrUnknownCommand
		}
		res.Executed++
		if !wasOver && g.Board().Status().Over() {
			break
		}
	}
	res.Status = g.Board().Status()
	return res, nil
}
