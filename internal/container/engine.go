// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
)

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

// ErrInvalidEngineType is the sentinel error wrapped by InvalidEngineTypeError.
var ErrInvalidEngineType = errors.New("invalid container engine type")

type (
	// EngineType identifies the container engine binary.
	// The zero value ("") is valid and means docker.
	EngineType string

	// InvalidEngineTypeError is returned when an EngineType is not a recognized engine.
	InvalidEngineTypeError struct {
		Value EngineType
	}
)

// String returns the string representation of the EngineType.
func (t EngineType) String() string { return string(t) }

// Validate returns an error if the EngineType is not one of the defined engines.
func (t EngineType) Validate() error {
	switch t {
	case EngineTypeDocker, EngineTypePodman, "":
		return nil
	default:
		return &InvalidEngineTypeError{Value: t}
	}
}

// Binary returns the executable name for the engine.
func (t EngineType) Binary() string {
	if t == "" {
		return string(EngineTypeDocker)
	}
	return string(t)
}

// Error implements the error interface.
func (e *InvalidEngineTypeError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: docker, podman)", e.Value)
}

// Unwrap returns ErrInvalidEngineType so callers can use errors.Is for programmatic detection.
func (e *InvalidEngineTypeError) Unwrap() error { return ErrInvalidEngineType }
