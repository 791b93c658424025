// SPDX-License-Identifier: MPL-2.0

// Package change implements the declarative change language applied to a
// region model before re-serialization.
//
// Each user-supplied token is one directive. A bare pattern deletes the
// lumps it matches (or, under inversion, becomes a keep-list entry).
// "pattern=value" modifies matching lumps; "+name=value" adds a new lump
// after the current last one. Values are literal bytes, ":path" to read a
// payload from a file, or "@" to keep the current content. Tokens naming a
// configured group expand recursively before parsing; a cyclic group
// reference is fatal.
package change
