// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for dockwright.
//
// This package implements the Cobra command hierarchy for the dockwright CLI:
// the root command, `render` (Dockerfile and command-line generation),
// `extensions` (listing and help) and `config` management.
package cmd
