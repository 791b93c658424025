// SPDX-License-Identifier: MPL-2.0

package endoom

import (
	"os"
	"path/filepath"
	"strings"

	"wadlump-cli/internal/issue"
)

// File names used inside a split directory.
const (
	ForegroundFile = "foreground"
	BackgroundFile = "background"
	TextFile       = "text"
)

// Split writes the screen into dir as three editable files: foreground
// and background hold one color letter per cell, text holds the Unicode
// characters. With plain set the color files are skipped. Each file has
// 25 newline-terminated lines of 80 characters.
func (s *Screen) Split(dir string, plain bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return issue.NewErrorContext().
			WithOperation("create split directory").
			WithResource(dir).
			Wrap(err).
			BuildError()
	}

	var fg, bg, text strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := s.At(row, col)
			fg.WriteByte(ColorLetter(c.Fg))
			bg.WriteByte(ColorLetter(c.Bg))
			text.WriteRune(CP437ToRune(c.Char))
		}
		fg.WriteByte('\n')
		bg.WriteByte('\n')
		text.WriteByte('\n')
	}

	type part struct {
		name string
		body string
	}
	files := []part{{TextFile, text.String()}}
	if !plain {
		files = append(files,
			part{ForegroundFile, fg.String()},
			part{BackgroundFile, bg.String()})
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.body), 0o644); err != nil {
			return issue.NewErrorContext().
				WithOperation("write split file").
				WithResource(path).
				Wrap(err).
				BuildError()
		}
	}
	return nil
}
