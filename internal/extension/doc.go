// SPDX-License-Identifier: MPL-2.0

// Package extension defines the contract shared by every dockwright extension.
//
// An extension is activated by a single command-line flag and contributes three
// independent text artifacts to a container build:
//
//   - a preamble, emitted before the main FROM instruction
//   - a snippet, emitted inside the main build stage
//   - docker args, appended to the container engine's run command line
//
// Extensions are looked up by name through a Registry, which preserves the
// order in which they were declared. Compose walks the active extensions in
// that order and collects their contributions, so the generated Dockerfile is
// deterministic for a given set of flags.
package extension
