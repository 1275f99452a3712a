package mines

import (
	"hash/maphash"
	"iter"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// NewRand returns a PCG source seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Board is the whole state of one game. Cells are stored row-major, the cell
// at x:y lives at index x + y*width.
type Board struct {
	width, height, mineCount int
	cells                    []Cell
	status                   GameStatus
	exploded                 int // index of the mine that ended the game, or -1
}

func newBoard(width, height, mineCount int) (*Board, error) {
	cfgErr := func(err error) error {
		return &ConfigError{width, height, mineCount, err}
	}
	switch {
	case width < 1 || height < 1:
		return nil, cfgErr(ErrInvalidDimensions)
	case width > math.MaxInt/height:
		return nil, cfgErr(ErrInvalidDimensions)
	case mineCount < 0:
		return nil, cfgErr(ErrNegativeMineCount)
	case mineCount >= width*height:
		return nil, cfgErr(ErrTooManyMines)
	}
	b := &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
		cells:     make([]Cell, width*height),
		exploded:  -1,
	}
	return b, nil
}

// New builds a board with mineCount mines placed uniformly at random. The
// board is ready for play: pointers are derived before it is returned.
func New(width, height, mineCount int, rnd *rand.Rand) (*Board, error) {
	b, err := newBoard(width, height, mineCount)
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	b.placeMines(rnd)
	b.derivePointers()
	Log.WithFields(logrus.Fields{
		"width":      width,
		"height":     height,
		"mine_count": mineCount,
	}).Debug("board generated")
	return b, nil
}

// NewFromMines builds a board with mines at the given cell indices.
func NewFromMines(width, height int, mines []int) (*Board, error) {
	b, err := newBoard(width, height, len(mines))
	if err != nil {
		return nil, err
	}
	for _, i := range mines {
		if i < 0 || i >= len(b.cells) || b.cells[i].Kind == Mine {
			return nil, &ConfigError{width, height, len(mines), ErrInvalidMine}
		}
		b.cells[i].Kind = Mine
	}
	b.derivePointers()
	return b, nil
}

func (b *Board) Width() int         { return b.width }
func (b *Board) Height() int        { return b.height }
func (b *Board) MineCount() int     { return b.mineCount }
func (b *Board) Status() GameStatus { return b.status }

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

func (b *Board) index(x, y int) (int, bool) {
	if !b.InBounds(x, y) {
		return 0, false
	}
	return x + y*b.width, true
}

// Cell returns the cell at x:y. ok is false if the position is off the board.
func (b *Board) Cell(x, y int) (c Cell, ok bool) {
	i, ok := b.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return b.cells[i], true
}

// Cells returns a copy of the grid in row-major order.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// Marks is the number of currently marked cells.
func (b *Board) Marks() int {
	n := 0
	for _, c := range b.cells {
		if c.Marked {
			n++
		}
	}
	return n
}

// neighbours yields the indices of the up to 8 cells around cell i.
func (b *Board) neighbours(i int) iter.Seq[int] {
	x, y := i%b.width, i/b.width
	return func(yield func(int) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if j, ok := b.index(x+dx, y+dy); ok && !yield(j) {
					return
				}
			}
		}
	}
}

func (b *Board) outcome(changed int) Outcome {
	return Outcome{Status: b.status, Changed: changed}
}
