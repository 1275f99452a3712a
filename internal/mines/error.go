package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrNegativeMineCount = errors.New("mine count must not be negative")
	ErrTooManyMines      = errors.New("mine count must be less than cell count")
	ErrInvalidMine       = errors.New("mine index out of range or repeated")
)

// ConfigError is returned when a board cannot be constructed from the
// requested parameters. It wraps one of the Err* sentinels above.
type ConfigError struct {
	Width, Height, MineCount int
	Err                      error
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"invalid board %dx%d with %d mines: %s",
		e.Width, e.Height, e.MineCount, e.Err,
	)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
