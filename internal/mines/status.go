package mines

import "fmt"

type GameStatus uint8

const (
	Playing GameStatus = iota
	Won
	Lost
)

func (s GameStatus) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("GameStatus(%d)", uint8(s))
	}
}

// [GameStatus] implements [encoding.TextMarshaler]
func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*s = Playing
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown game status %q", text)
	}
	return nil
}

func (s GameStatus) Over() bool {
	return s != Playing
}

// Outcome describes the effect of a single move.
type Outcome struct {
	Status  GameStatus
	Changed int // cells revealed or (un)marked by the move
}
