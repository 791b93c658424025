// SPDX-License-Identifier: MPL-2.0

package endoom

import (
	"fmt"
	"hash/crc32"

	"wadlump-cli/internal/issue"
)

const (
	// Rows and Cols are the fixed text mode dimensions of an ENDOOM screen.
	Rows = 25
	Cols = 80

	// LumpSize is the wire size: one character byte plus one attribute
	// byte per cell.
	LumpSize = Rows * Cols * 2
)

// Cell is one character cell. Char is the code page 437 character. Fg and
// Bg are 4-bit VGA colors; bit 0x08 means bright for the foreground and
// blinking for the background.
type Cell struct {
	Char byte
	Fg   byte
	Bg   byte
}

// Screen is a decoded ENDOOM lump. The wire pair of each cell is kept as
// decoded so random coloring can hash the stored bytes even after
// character normalization or cleaning.
type Screen struct {
	cells [Rows * Cols]Cell
	wire  [Rows * Cols][2]byte
}

// At returns the cell at the given row and column.
func (s *Screen) At(row, col int) Cell {
	return s.cells[row*Cols+col]
}

// Set replaces the cell at the given row and column.
func (s *Screen) Set(row, col int, c Cell) {
	s.cells[row*Cols+col] = c
	s.wire[row*Cols+col] = [2]byte{c.Char, c.Bg<<4 | c.Fg}
}

// DecodeNotes reports lossy normalizations applied while decoding, so
// callers can warn about them.
type DecodeNotes struct {
	// NullMapped is set when one or more null (0) characters were
	// replaced with spaces.
	NullMapped bool
	// NbspMapped is set when one or more NBSP (255) characters were
	// replaced with spaces.
	NbspMapped bool
	// Padded is set when a short lump was padded with black spaces.
	Padded bool
}

// Decode parses raw lump bytes into a Screen. Null and NBSP characters
// are normalized to spaces since they display identically. Unless
// tolerant is set, the lump must be exactly LumpSize bytes; with
// tolerant, short input is padded with black spaces and excess bytes are
// ignored.
func Decode(data []byte, tolerant bool) (*Screen, DecodeNotes, error) {
	var notes DecodeNotes
	if len(data) != LumpSize && !tolerant {
		var verb string
		if len(data) < LumpSize {
			verb = "less"
		} else {
			verb = "more"
		}
		return nil, notes, issue.NewErrorContext().
			WithOperation("decode ENDOOM lump").
			WithSuggestion("pass --tolerant to pad or truncate the lump").
			Wrap(fmt.Errorf("lump is %s than %d bytes (got %d)", verb, LumpSize, len(data))).
			BuildError()
	}
	if len(data) < LumpSize {
		notes.Padded = true
	}

	s := &Screen{}
	for i := range s.cells {
		char, attr := byte(' '), byte(0)
		if 2*i+1 < len(data) {
			char, attr = data[2*i], data[2*i+1]
		}
		s.wire[i] = [2]byte{char, attr}
		switch char {
		case 0:
			notes.NullMapped = true
			char = ' '
		case 255:
			notes.NbspMapped = true
			char = ' '
		}
		s.cells[i] = Cell{Char: char, Fg: attr & 0x0f, Bg: attr >> 4}
	}
	return s, notes, nil
}

// Encode serializes the screen back to LumpSize bytes.
func (s *Screen) Encode() []byte {
	out := make([]byte, LumpSize)
	for i, c := range s.cells {
		out[2*i] = c.Char
		out[2*i+1] = c.Bg<<4 | c.Fg
	}
	return out
}

// Clean normalizes color combinations that display identically so that
// each visual has one canonical form. Spaces take the background color
// as foreground, full blocks take the foreground color as background,
// and any other character whose colors fully match becomes a space.
func (s *Screen) Clean() {
	for i := range s.cells {
		c := &s.cells[i]
		bright := c.Fg&8 != 0
		blink := c.Bg&8 != 0
		switch {
		case c.Char == ' ' && !blink:
			// Blinking spaces are left alone since the high bit means
			// bright rather than blink on the foreground side.
			c.Fg = c.Bg
		case c.Char == 0xdb && !bright && !blink:
			// Full block: only the foreground shows.
			c.Bg = c.Fg
		case c.Fg == c.Bg && !bright:
			c.Char = ' '
		}
	}
}

// RandomColors replaces each cell's colors with a hash of its two wire
// bytes as stored in the lump, before character normalization.
// Identically encoded cells get identical colors, which exposes
// formatting inconsistencies that normally render the same. The offsets
// keep black spaces black, and backgrounds avoid the blink bit.
func (s *Screen) RandomColors() {
	for i := range s.cells {
		c := &s.cells[i]
		pair := []byte{s.wire[i][0], s.wire[i][1], 'X'}
		fg := byte((crc32.ChecksumIEEE(pair[:2]) - 13) % 16)
		bg := byte((crc32.ChecksumIEEE(pair) - 4) % 8)
		if bg == fg && bg != 0 {
			bg++
			if bg >= 8 {
				bg = 0
			}
		}
		c.Fg, c.Bg = fg, bg
	}
}
