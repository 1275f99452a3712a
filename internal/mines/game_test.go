package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revealed(b *Board) (n int) {
	for _, c := range b.cells {
		if c.Status == Revealed {
			n++
		}
	}
	return
}

func TestRevealFloodsWholeEmptyBoard(t *testing.T) {
	b, err := New(50, 50, 0, nil)
	require.NoError(t, err)

	out := b.Reveal(25, 25)

	assert.Equal(t, 2500, out.Changed)
	assert.Equal(t, 2500, revealed(b))
}

func TestRevealStopsAtPointers(t *testing.T) {
	b := layout(t,
		"..*..",
		"..*..",
		"..*..",
	)

	out := b.Reveal(0, 0)

	assert.Equal(t, 6, out.Changed)
	assert.Equal(t, Playing, out.Status)
	for y := range 3 {
		for x := range 5 {
			c, _ := b.Cell(x, y)
			if x < 2 {
				assert.Equal(t, Revealed, c.Status, "cell %d:%d", x, y)
			} else {
				assert.Equal(t, Unrevealed, c.Status, "cell %d:%d", x, y)
			}
		}
	}
}

func TestRevealPointerDoesNotCascade(t *testing.T) {
	b := layout(t,
		"*..",
		"...",
		"...",
	)

	out := b.Reveal(1, 1)

	assert.Equal(t, 1, out.Changed)
	assert.Equal(t, 1, revealed(b))
}

func TestRevealIsIdempotent(t *testing.T) {
	b := layout(t,
		"..*..",
		"..*..",
		"..*..",
	)

	first := b.Reveal(0, 0)
	before := b.Cells()
	second := b.Reveal(0, 0)

	assert.Equal(t, 6, first.Changed)
	assert.Equal(t, 0, second.Changed)
	assert.Equal(t, before, b.Cells())
	assert.Equal(t, Playing, b.Status())
}

func TestRevealOutOfBoundsIsNoop(t *testing.T) {
	b, err := New(4, 3, 0, nil)
	require.NoError(t, err)
	before := b.Cells()

	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}, {-5, 17}} {
		out := b.Reveal(p[0], p[1])
		assert.Equal(t, 0, out.Changed)
		out = b.Mark(p[0], p[1])
		assert.Equal(t, 0, out.Changed)
	}

	assert.Equal(t, before, b.Cells())
	assert.Equal(t, Playing, b.Status())
}

func TestChordSatisfied(t *testing.T) {
	b := layout(t,
		"*.*",
		"...",
		"...",
		"..*",
	)
	b.Mark(0, 0)
	b.Mark(2, 0)
	require.Equal(t, Playing, b.Status())

	out := b.Reveal(1, 0)

	assert.Equal(t, Playing, out.Status)
	assert.Equal(t, 9, out.Changed)
	for _, p := range [][2]int{{0, 1}, {1, 1}, {2, 1}} {
		c, _ := b.Cell(p[0], p[1])
		assert.Equal(t, Revealed, c.Status, "cell %d:%d", p[0], p[1])
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}} {
		c, _ := b.Cell(p[0], p[1])
		assert.Equal(t, Unrevealed, c.Status)
		assert.True(t, c.Marked)
	}
	c, _ := b.Cell(2, 3)
	assert.Equal(t, Unrevealed, c.Status)
}

func TestChordUnsatisfied(t *testing.T) {
	b := layout(t,
		"*.*",
		"...",
		"...",
		"..*",
	)
	b.Mark(0, 0)

	out := b.Reveal(1, 0)

	assert.Equal(t, 1, out.Changed)
	assert.Equal(t, 1, revealed(b))
}

func TestChordWithoutMarksDoesNotCascade(t *testing.T) {
	b := layout(t,
		"*.*",
		"...",
		"...",
		"..*",
	)

	out := b.Reveal(1, 1)

	assert.Equal(t, 1, out.Changed)
}

// A chord trusts the marks. With a wrong mark it may open a mine, and since
// the mine was not the target of the reveal the game goes on.
func TestChordOnWrongMarkOpensMineWithoutLoss(t *testing.T) {
	b := layout(t,
		"*.*",
		"...",
		"...",
		"..*",
	)
	b.Mark(0, 0)
	b.Mark(0, 1)

	b.Reveal(1, 0)

	c, _ := b.Cell(2, 0)
	assert.Equal(t, Revealed, c.Status)
	assert.Equal(t, Playing, b.Status())
}

func TestRevealMineLoses(t *testing.T) {
	b, err := NewFromMines(3, 3, []int{1 + 1*3})
	require.NoError(t, err)

	out := b.Reveal(1, 1)

	assert.Equal(t, Lost, out.Status)
	assert.Equal(t, Lost, b.Status())
	c, _ := b.Cell(1, 1)
	assert.Equal(t, Revealed, c.Status)
	assert.Equal(t, 1, revealed(b))
}

func TestLossRevealsEveryMine(t *testing.T) {
	b := layout(t,
		"*.*",
		"...",
		"..*",
	)
	b.Mark(2, 2)

	out := b.Reveal(0, 0)

	assert.Equal(t, Lost, out.Status)
	assert.Equal(t, 3, out.Changed)
	for i, c := range b.cells {
		if c.Kind == Mine {
			assert.Equal(t, Revealed, c.Status, "mine %d", i)
		} else {
			assert.Equal(t, Unrevealed, c.Status, "cell %d", i)
		}
	}
}

func TestMarkingAllMinesWins(t *testing.T) {
	b := layout(t,
		"*...",
		"..*.",
		"....",
		"...*",
	)

	b.Mark(0, 0)
	b.Mark(2, 1)
	assert.Equal(t, Playing, b.Status())
	out := b.Mark(3, 3)

	assert.Equal(t, Won, out.Status)
	assert.Equal(t, Won, b.Status())
}

// The win check only counts marked mines. Extra marks on safe cells do not
// prevent a win.
func TestWinIgnoresMarksOnSafeCells(t *testing.T) {
	b := layout(t,
		"*...",
		"..*.",
		"....",
		"...*",
	)

	b.Mark(1, 0)
	b.Mark(3, 0)
	b.Mark(0, 0)
	b.Mark(2, 1)
	b.Mark(3, 3)

	assert.Equal(t, Won, b.Status())
}

func TestMarkToggles(t *testing.T) {
	b := layout(t, "*..", "...")

	out := b.Mark(2, 1)
	assert.Equal(t, 1, out.Changed)
	c, _ := b.Cell(2, 1)
	assert.True(t, c.Marked)
	assert.Equal(t, 1, b.Marks())

	b.Mark(2, 1)
	c, _ = b.Cell(2, 1)
	assert.False(t, c.Marked)
	assert.Equal(t, 0, b.Marks())
}

func TestMarkRevealedCellIsNoop(t *testing.T) {
	b := layout(t, "*..", "...")
	b.Reveal(2, 1)

	out := b.Mark(2, 1)

	assert.Equal(t, 0, out.Changed)
	c, _ := b.Cell(2, 1)
	assert.False(t, c.Marked)
}

func TestRevealClearsMark(t *testing.T) {
	b := layout(t, "*..", "...")
	b.Mark(2, 1)

	b.Reveal(2, 1)

	c, _ := b.Cell(2, 1)
	assert.Equal(t, Revealed, c.Status)
	assert.False(t, c.Marked)
}

func TestFinishedGameIgnoresMoves(t *testing.T) {
	b := layout(t,
		"*..",
		"...",
		"...",
	)
	b.Reveal(0, 0)
	require.Equal(t, Lost, b.Status())
	before := b.Cells()

	assert.Equal(t, 0, b.Reveal(2, 2).Changed)
	assert.Equal(t, 0, b.Mark(1, 1).Changed)
	assert.Equal(t, before, b.Cells())
	assert.Equal(t, Lost, b.Status())

	won := layout(t, "*..", "...")
	won.Mark(0, 0)
	require.Equal(t, Won, won.Status())
	assert.Equal(t, 0, won.Reveal(2, 1).Changed)
	assert.Equal(t, Won, won.Status())
}

func TestRevealAllKeepsStatus(t *testing.T) {
	b, err := New(8, 8, 10, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	b.Mark(0, 0)

	out := b.RevealAll()

	assert.Equal(t, 64, out.Changed)
	assert.Equal(t, Playing, out.Status)
	assert.Equal(t, 64, revealed(b))
	assert.Equal(t, 0, b.Marks())
}

func TestRandomGamesTerminate(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	r := rand.New(rand.NewPCG(5, 6))
	for range 200 {
		b, err := New(30, 16, 99, r)
		require.NoError(t, err)
		for b.Status() == Playing {
			x, y := r.IntN(32)-1, r.IntN(18)-1
			if r.IntN(4) == 0 {
				b.Mark(x, y)
			} else {
				b.Reveal(x, y)
			}
			if revealed(b) == len(b.cells) {
				break
			}
		}
		assert.LessOrEqual(t, revealed(b), len(b.cells))
	}
}
