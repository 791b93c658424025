// SPDX-License-Identifier: MPL-2.0

package endoom

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"wadlump-cli/internal/issue"
)

// Join reads a split directory back into a Screen. With plain set the
// color files are ignored and every cell is bright white on black. With
// tolerant set, missing files, short files, and unknown letters or
// characters fall back to defaults (bright white foreground, black
// background, space text) instead of failing.
func Join(dir string, plain, tolerant bool) (*Screen, error) {
	text, err := readSplitFile(dir, TextFile, tolerant)
	if err != nil {
		return nil, err
	}
	var fg, bg []string
	if !plain {
		if fg, err = readSplitFile(dir, ForegroundFile, tolerant); err != nil {
			return nil, err
		}
		if bg, err = readSplitFile(dir, BackgroundFile, tolerant); err != nil {
			return nil, err
		}
	}

	s := &Screen{}
	for row := 0; row < Rows; row++ {
		fgLine := padLine(line(fg, row), 'W')
		bgLine := padLine(line(bg, row), '.')
		textLine := padRunes(line(text, row))
		if !tolerant {
			if err := checkWidth(dir, ForegroundFile, line(fg, row), !plain); err != nil {
				return nil, err
			}
			if err := checkWidth(dir, BackgroundFile, line(bg, row), !plain); err != nil {
				return nil, err
			}
			if err := checkWidth(dir, TextFile, line(text, row), true); err != nil {
				return nil, err
			}
		}
		for col := 0; col < Cols; col++ {
			cell := Cell{Fg: 0x0f, Bg: 0x00}
			if !plain {
				if color, ok := LetterColor(fgLine[col]); ok {
					cell.Fg = color
				} else if !tolerant {
					return nil, joinErr(dir, fmt.Errorf("unknown foreground letter %q", fgLine[col]))
				}
				cell.Bg = 0
				if color, ok := LetterColor(bgLine[col]); ok {
					cell.Bg = color
				} else if !tolerant {
					return nil, joinErr(dir, fmt.Errorf("unknown background letter %q", bgLine[col]))
				}
			}
			cell.Char = ' '
			if b, ok := RuneToCP437(textLine[col]); ok {
				cell.Char = b
			} else if !tolerant {
				return nil, joinErr(dir, fmt.Errorf("character %q is not representable in code page 437", textLine[col]))
			}
			s.Set(row, col, cell)
		}
	}
	return s, nil
}

func joinErr(dir string, cause error) error {
	return issue.NewErrorContext().
		WithOperation("join split directory").
		WithResource(dir).
		WithSuggestion("pass --tolerant to substitute defaults for malformed data").
		Wrap(cause).
		BuildError()
}

// readSplitFile returns the file's lines, or nil when the file is missing
// and tolerant is set.
func readSplitFile(dir, name string, tolerant bool) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if tolerant && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, joinErr(dir, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), nil
}

func line(lines []string, row int) string {
	if row >= len(lines) {
		return ""
	}
	return lines[row]
}

func checkWidth(dir, name, s string, present bool) error {
	if present && len([]rune(s)) != Cols {
		return joinErr(dir, fmt.Errorf("%s has a line that is not %d characters: %q", name, Cols, s))
	}
	return nil
}

func padLine(s string, pad byte) []byte {
	out := []byte(s)
	for len(out) < Cols {
		out = append(out, pad)
	}
	return out[:Cols]
}

func padRunes(s string) []rune {
	out := []rune(s)
	for len(out) < Cols {
		out = append(out, ' ')
	}
	return out[:Cols]
}
