package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type NewGameDTO struct {
	Width     int `schema:"width"`
	Height    int `schema:"height"`
	MineCount int `schema:"mine_count"`
}

// ParseNewGameDTO fills the fields missing from src with defaults.
func ParseNewGameDTO(src url.Values, defaults mines.GameParams) (mines.GameParams, error) {
	dto := NewGameDTO(defaults)
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}
	return mines.GameParams(dto), nil
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePositionDTO(src url.Values) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type SessionDTO struct {
	SessionId string           `json:"session_id"`
	Grid      mines.Grid       `json:"grid"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	MineCount int              `json:"mine_count"`
	Marks     int              `json:"marks"`
	Status    mines.GameStatus `json:"status"`
	StartedAt int64            `json:"started_at"`
	Token     string           `json:"token,omitempty"`
}

// NewSessionDTO must be called while holding the session, see [session.Session.Do].
func NewSessionDTO(s *session.Session, b *mines.Board) *SessionDTO {
	return &SessionDTO{
		SessionId: s.ID.String(),
		Grid:      b.View(),
		Width:     b.Width(),
		Height:    b.Height(),
		MineCount: b.MineCount(),
		Marks:     b.Marks(),
		Status:    b.Status(),
		StartedAt: s.StartedAt.UnixMilli(),
	}
}
