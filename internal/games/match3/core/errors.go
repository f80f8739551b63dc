package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPalette is returned when a layout is requested without level data.
	ErrNoPalette = errors.New("match3: no palette")
	// ErrSetupExhausted is returned when no valid starting board was found
	// within the setup attempt budget.
	ErrSetupExhausted = errors.New("match3: setup attempts exhausted")
	// ErrNoLevel is returned when a session is started without a level.
	ErrNoLevel = errors.New("match3: no level")
)

// ValidationError contains details about an invalid level definition.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
