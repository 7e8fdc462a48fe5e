// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/dockwright/config.cue (defaulting to
// ~/.config/dockwright/config.cue), falling back to ./config.cue. Values can be
// overridden with DOCKWRIGHT_* environment variables, e.g. DOCKWRIGHT_CONTAINER_ENGINE
// or DOCKWRIGHT_UI_VERBOSE.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
