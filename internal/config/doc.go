// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/wadlump/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/wadlump/config.cue on
// macOS, %APPDATA%\wadlump\config.cue on Windows), falling back to a
// config.cue in the current directory. It carries default conversion
// behavior (case preservation, namespace bucketing, lumps-only output),
// UI preferences, and the named lump groups the change engine expands.
//
// Files are validated against an embedded CUE schema (config_schema.cue)
// before being merged into Viper, so malformed configs fail with clear
// messages instead of silently misbehaving.
package config
