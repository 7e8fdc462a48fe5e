// SPDX-License-Identifier: MPL-2.0

// Package dockerfile assembles the generated Dockerfile from extension
// contributions and provides the shell-escaping helpers extensions use to
// embed file content in RUN instructions.
//
// The assembled layout is:
//
//	# Preamble from extension [name]
//	<preamble>
//	...
//	FROM <base image>
//	USER root
//	# Snippet from extension [name]
//	<snippet>
//	...
//
// Image tags are derived from a hash of the Dockerfile text so that identical
// flag combinations map to the same tag.
package dockerfile
