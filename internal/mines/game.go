package mines

import "github.com/gammazero/deque"

// Reveal opens the cell at x:y. Opening an empty cell floods through its
// neighbours. Opening a pointer whose marked neighbours add up to its count
// also opens every unmarked neighbour (a chord). Off-board positions, already
// open cells and finished games are ignored.
func (b *Board) Reveal(x, y int) Outcome {
	if b.status.Over() {
		return b.outcome(0)
	}
	i, ok := b.index(x, y)
	if !ok {
		return b.outcome(0)
	}
	opened := b.flood(i)
	opened += b.evaluate(i, true)
	return b.outcome(opened)
}

// flood reveals cells reachable from cell i and returns how many were opened.
// A cell is opened at most once: anything already revealed is skipped when it
// comes off the queue.
func (b *Board) flood(i int) int {
	var (
		queue  deque.Deque[int]
		opened int
	)
	queue.PushBack(i)
	for queue.Len() > 0 {
		j := queue.PopFront()
		c := &b.cells[j]
		if c.Status == Revealed {
			continue
		}
		c.Status = Revealed
		c.Marked = false
		opened++

		switch {
		case c.Kind.IsPointer():
			marked := 0
			for k := range b.neighbours(j) {
				if b.cells[k].Marked {
					marked++
				}
			}
			if marked == 0 || marked != c.Kind.Count() {
				continue
			}
			for k := range b.neighbours(j) {
				if !b.cells[k].Marked {
					queue.PushBack(k)
				}
			}
		case c.Kind == Empty:
			for k := range b.neighbours(j) {
				queue.PushBack(k)
			}
		}
	}
	return opened
}

// Mark toggles the mark on the unrevealed cell at x:y.
func (b *Board) Mark(x, y int) Outcome {
	if b.status.Over() {
		return b.outcome(0)
	}
	i, ok := b.index(x, y)
	if !ok {
		return b.outcome(0)
	}
	changed := 0
	if c := &b.cells[i]; c.Status == Unrevealed {
		c.Marked = !c.Marked
		changed = 1
	}
	b.evaluate(i, false)
	return b.outcome(changed)
}

// RevealAll opens every cell without touching the game status.
func (b *Board) RevealAll() Outcome {
	opened := 0
	for i := range b.cells {
		if b.cells[i].Status == Unrevealed {
			b.cells[i].Status = Revealed
			b.cells[i].Marked = false
			opened++
		}
	}
	return b.outcome(opened)
}

// evaluate settles the game status after a move on cell i. A reveal that
// targeted a mine loses the game and exposes every mine. Otherwise the game is
// won once the number of marked mines reaches the mine count; marks on safe
// cells are not checked.
func (b *Board) evaluate(i int, revealed bool) (opened int) {
	if revealed && b.cells[i].Kind == Mine {
		for j := range b.cells {
			c := &b.cells[j]
			if c.Kind == Mine && c.Status == Unrevealed {
				c.Status = Revealed
				c.Marked = false
				opened++
			}
		}
		b.exploded = i
		b.status = Lost
		Log.WithField("cell", i).Debug("mine revealed")
		return opened
	}

	marked := 0
	for _, c := range b.cells {
		if c.Kind == Mine && c.Marked {
			marked++
		}
	}
	if marked == b.mineCount {
		b.status = Won
		Log.Debug("all mines marked")
	}
	return 0
}
