package enigma

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in a ConfigError) by checked
// machine construction.
var (
	// ErrUnknownRotor indicates a rotor number outside the catalog.
	ErrUnknownRotor = errors.New("unknown rotor number")

	// ErrUnknownReflector indicates a reflector name outside the catalog.
	ErrUnknownReflector = errors.New("unknown reflector")

	// ErrOffsetRange indicates a ring setting or position outside [0, 26).
	ErrOffsetRange = errors.New("offset out of range")

	// ErrBadPlugboard indicates a malformed or non-involutive plugboard spec.
	ErrBadPlugboard = errors.New("invalid plugboard")
)

// ConfigError reports which configuration field failed validation during
// checked construction. It is never produced by the transform itself.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("enigma config: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
