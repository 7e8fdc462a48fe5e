// SPDX-License-Identifier: MPL-2.0

// Package builtin contains the extensions shipped with dockwright and the
// static catalog that registers them.
//
// Presence-only extensions (home, pulse, user, ...) generate their output
// unconditionally: deciding whether an extension takes part in a build is
// the registry's job, based on the activating flag. Extensions that carry a
// value (devices, env, network, ...) return "" when the value is absent.
package builtin
