// SPDX-License-Identifier: MPL-2.0

package endoom

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Render writes the screen to w as 25 lines of 80 characters. With plain
// set only the text is written; otherwise each cell is colored with its
// VGA attribute mapped onto the 16-color ANSI palette, using the
// terminal blink attribute for blinking backgrounds.
func (s *Screen) Render(w io.Writer, plain bool) error {
	styles := make(map[[2]byte]lipgloss.Style)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := s.At(row, col)
			text := string(CP437ToRune(c.Char))
			if !plain {
				key := [2]byte{c.Fg, c.Bg}
				st, ok := styles[key]
				if !ok {
					st = cellStyle(c)
					styles[key] = st
				}
				text = st.Render(text)
			}
			if _, err := io.WriteString(w, text); err != nil {
				return fmt.Errorf("render screen: %w", err)
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("render screen: %w", err)
		}
	}
	return nil
}

func cellStyle(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(ANSIIndex(c.Fg)))).
		Background(lipgloss.Color(strconv.Itoa(ANSIIndex(c.Bg & 7))))
	if c.Bg&8 != 0 {
		st = st.Blink(true)
	}
	return st
}
