// SPDX-License-Identifier: MPL-2.0

// Package container builds container engine command lines (Docker/Podman)
// from generated images and extension run arguments.
//
// Nothing here executes the engine. RunCommand and BuildCommand produce an
// argv for callers that exec it themselves and a shell-quoted line for
// printing.
package container
