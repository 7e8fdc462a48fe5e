// SPDX-License-Identifier: MPL-2.0

// Package format names the output formats of the CLI and encodes values in
// the structured ones.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// Text is the human-oriented format; each command defines its layout.
	Text Format = "text"
	// JSON is indented JSON.
	JSON Format = "json"
	// YAML is a YAML document with two-space indentation.
	YAML Format = "yaml"
	// TOML is a TOML document.
	TOML Format = "toml"
)

// ErrInvalidFormat is the sentinel wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

// ErrNotStructured is returned by Encode for the text format.
var ErrNotStructured = errors.New("format has no generic encoding")

type (
	// Format selects how a value is written.
	Format string

	// InvalidFormatError is returned when a Format is not recognized.
	InvalidFormatError struct {
		Value Format
	}
)

// All returns the accepted formats.
func All() []Format {
	return []Format{Text, JSON, YAML, TOML}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Validate returns nil if f is a known format.
func (f Format) Validate() error {
	if slices.Contains(All(), f) {
		return nil
	}
	return &InvalidFormatError{Value: f}
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, yaml, toml)", e.Value)
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Encode writes v to w in the structured format f. Field names come from the
// json, yaml and toml struct tags respectively.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case TOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		return nil
	case Text:
		return fmt.Errorf("%w: %s", ErrNotStructured, f)
	default:
		return &InvalidFormatError{Value: f}
	}
}
