// SPDX-License-Identifier: MPL-2.0

// Package plan turns parsed extension arguments into a build plan: the
// generated Dockerfile, its content-derived image tag and the engine command
// lines that build and run it. It decouples the CLI layer from composition,
// assembly and command generation. Nothing here executes a container engine.
package plan
