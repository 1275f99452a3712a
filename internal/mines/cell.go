package mines

import "strconv"

type Status uint8

const (
	Unrevealed Status = iota
	Revealed
)

func (s Status) String() string {
	switch s {
	case Unrevealed:
		return "unrevealed"
	case Revealed:
		return "revealed"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Kind is what a cell holds. Zero is an empty cell, 1 to 8 is a pointer with
// that many mined neighbours and -1 is a mine.
type Kind int8

const (
	Mine  Kind = -1
	Empty Kind = 0
)

// Pointer returns the kind of a cell with n mined neighbours.
func Pointer(n int) Kind {
	return Kind(n)
}

func (k Kind) IsMine() bool {
	return k == Mine
}

func (k Kind) IsPointer() bool {
	return 1 <= k && k <= 8
}

// Count is the number of mined neighbours of a pointer and zero otherwise.
func (k Kind) Count() int {
	if k.IsPointer() {
		return int(k)
	}
	return 0
}

func (k Kind) String() string {
	switch {
	case k == Mine:
		return "mine"
	case k == Empty:
		return "empty"
	case k.IsPointer():
		return "pointer(" + strconv.Itoa(int(k)) + ")"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

type Cell struct {
	Status Status
	Kind   Kind
	Marked bool
}
