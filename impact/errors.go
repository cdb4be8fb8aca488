package impact

import (
	"errors"
	"fmt"
)

// Error kinds reported by the simulation.
var (
	// ErrInvalidConfiguration indicates a scenario parameter outside its valid range.
	ErrInvalidConfiguration = errors.New("impact: invalid configuration")

	// ErrGridIndexOutOfRange indicates a surface cell access outside the grid.
	ErrGridIndexOutOfRange = errors.New("impact: grid index out of range")
)

// ConfigError names the configuration field that failed validation.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s, got %v", ErrInvalidConfiguration, e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// GridIndexError reports a cell index that does not lie on the surface grid.
type GridIndexError struct {
	X, Y          int
	Width, Height int
}

func (e *GridIndexError) Error() string {
	return fmt.Sprintf("%s: cell (%d, %d) not in [0, %d) x [0, %d)",
		ErrGridIndexOutOfRange, e.X, e.Y, e.Width, e.Height)
}

func (e *GridIndexError) Unwrap() error { return ErrGridIndexOutOfRange }
