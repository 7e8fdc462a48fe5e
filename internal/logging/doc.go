// SPDX-License-Identifier: MPL-2.0

// Package logging builds the process logger. Call sites use log/slog; records
// are rendered by charmbracelet/log so CLI output matches the rest of the
// terminal styling.
package logging
