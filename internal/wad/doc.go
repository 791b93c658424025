// SPDX-License-Identifier: MPL-2.0

// Package wad implements the region model for Doom WAD containers.
//
// A WAD container is a flat binary archive: a fixed 12-byte header, a flat
// directory of fixed-size entries, and concatenated byte payloads. This
// package treats the container as a mutable, ordered collection of regions
// (header, directory, lumps, and gaps), readable from either the binary
// container or its exploded one-file-per-region directory representation,
// and serializable back to both forms.
package wad
