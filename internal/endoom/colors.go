// SPDX-License-Identifier: MPL-2.0

package endoom

// The attribute byte stores colors in VGA order (blue and red swapped
// relative to ANSI): black, blue, green, cyan, red, magenta, brown, white.
var vgaToANSI = [8]int{0, 4, 2, 6, 1, 5, 3, 7}

// colorLetters assigns one letter per base color for the split files.
// Bright variants use the uppercase letter; bright black gets '*' since
// '.' has no uppercase form.
var colorLetters = [8]byte{'.', 'b', 'g', 'c', 'r', 'm', 'y', 'w'}

// ANSIIndex converts a 4-bit VGA color to the matching ANSI 256-color
// palette index (0..15).
func ANSIIndex(color byte) int {
	idx := vgaToANSI[color&7]
	if color&8 != 0 {
		idx += 8
	}
	return idx
}

// ColorLetter renders a 4-bit VGA color as its split-file letter.
func ColorLetter(color byte) byte {
	letter := colorLetters[color&7]
	if color&8 == 0 {
		return letter
	}
	if letter == '.' {
		return '*'
	}
	return letter - ('a' - 'A')
}

// LetterColor parses a split-file letter back to a 4-bit VGA color.
func LetterColor(letter byte) (byte, bool) {
	if letter == '*' {
		return 8, true
	}
	bright := byte(0)
	if letter >= 'A' && letter <= 'Z' {
		bright = 8
		letter += 'a' - 'A'
	}
	for i, l := range colorLetters {
		if l == letter {
			return byte(i) | bright, true
		}
	}
	return 0, false
}
