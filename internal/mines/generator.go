package mines

import (
	"math/rand/v2"
	"slices"
)

// placeMines draws mineCount distinct cells out of a shrinking pool of empty
// ones. The pool keeps row-major order so a seeded source always yields the
// same layout.
func (b *Board) placeMines(rnd *rand.Rand) {
	pool := make([]int, len(b.cells))
	for i := range pool {
		pool[i] = i
	}
	for range b.mineCount {
		k := rnd.IntN(len(pool))
		b.cells[pool[k]].Kind = Mine
		pool = slices.Delete(pool, k, k+1)
	}
}

// derivePointers turns every non-mine cell next to a mine into a pointer
// holding the number of its mined neighbours.
func (b *Board) derivePointers() {
	for i := range b.cells {
		if b.cells[i].Kind != Mine {
			continue
		}
		for j := range b.neighbours(i) {
			if b.cells[j].Kind != Mine {
				b.cells[j].Kind++
			}
		}
	}
}
