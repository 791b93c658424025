// SPDX-License-Identifier: MPL-2.0

// Package endoom works with ENDOOM lumps: the 80x25 text screen shown on
// exit, stored as 4000 bytes of interleaved code page 437 characters and
// color attributes.
//
// A lump can be displayed on an ANSI terminal, split into editable
// foreground/background/text files, and joined back from such files. See
// https://doomwiki.org/wiki/ENDOOM for the format.
package endoom
