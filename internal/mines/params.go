package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Validate reports the same [ConfigError] that [New] would.
func (p GameParams) Validate() error {
	_, err := newBoard(p.Width, p.Height, p.MineCount)
	return err
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, nil
}

// Game keeps the parameters a board was built from so it can be dealt again.
// The current board is replaced wholesale on reset, never mutated back.
type Game struct {
	params GameParams
	rnd    *rand.Rand
	board  *Board
}

func NewGame(params GameParams, rnd *rand.Rand) (*Game, error) {
	if rnd == nil {
		rnd = NewRand()
	}
	board, err := New(params.Width, params.Height, params.MineCount, rnd)
	if err != nil {
		return nil, err
	}
	return &Game{params: params, rnd: rnd, board: board}, nil
}

func (g *Game) Params() GameParams { return g.params }
func (g *Game) Board() *Board      { return g.board }

func (g *Game) Reset() error {
	board, err := New(g.params.Width, g.params.Height, g.params.MineCount, g.rnd)
	if err != nil {
		return err
	}
	g.board = board
	Log.WithFields(logrus.Fields{"seed": g.params.Seed()}).Debug("game reset")
	return nil
}

func (g *Game) Reveal(x, y int) Outcome { return g.board.Reveal(x, y) }
func (g *Game) Mark(x, y int) Outcome   { return g.board.Mark(x, y) }
func (g *Game) RevealAll() Outcome      { return g.board.RevealAll() }
