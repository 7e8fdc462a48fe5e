// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every record in text mode.
const Prefix = "dockwright"

const (
	// FormatText renders styled, human-readable records.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per record.
	FormatJSON Format = "json"
	// FormatLogfmt renders key=value records.
	FormatLogfmt Format = "logfmt"
)

// ErrInvalidFormat is the sentinel wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid log format")

type (
	// Format selects how log records are rendered.
	Format string

	// InvalidFormatError is returned when a Format is not recognized.
	InvalidFormatError struct {
		Value Format
	}

	// Options configure New.
	Options struct {
		// Format defaults to FormatText.
		Format Format
		// Verbose lowers the level to debug.
		Verbose bool
		// Timestamps adds the record time to every entry.
		Timestamps bool
	}
)

// Formats returns the accepted formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatLogfmt}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Validate returns nil if f is empty or a known format.
func (f Format) Validate() error {
	if f == "" || slices.Contains(Formats(), f) {
		return nil
	}
	return &InvalidFormatError{Value: f}
}

// Structured reports whether f is meant for machines rather than terminals.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatLogfmt
}

func (f Format) formatter() log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid log format %q (valid: text, json, logfmt)", e.Value)
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// New returns a slog logger writing to w through a charmbracelet/log handler.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		Formatter:       opts.Format.formatter(),
		ReportTimestamp: opts.Timestamps,
	})
	return slog.New(handler), nil
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, opts Options) error {
	logger, err := New(w, opts)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

