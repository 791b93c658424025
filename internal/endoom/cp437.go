// SPDX-License-Identifier: MPL-2.0

package endoom

// Code page 437 to Unicode. Codes 32..126 are plain ASCII; the two tables
// cover the control range and the upper half.

var cp437Low = [32]rune{
	' ', '☺', '☻', '♥', '♦', '♣', '♠', '•',
	'◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨',
	'↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// cp437High maps codes 127..255.
var cp437High = [129]rune{
	'⌂',
	'Ç', 'ü', 'é', 'â', 'ä', 'à', 'å', 'ç',
	'ê', 'ë', 'è', 'ï', 'î', 'ì', 'Ä', 'Å',
	'É', 'æ', 'Æ', 'ô', 'ö', 'ò', 'û', 'ù',
	'ÿ', 'Ö', 'Ü', '¢', '£', '¥', '₧', 'ƒ',
	'á', 'í', 'ó', 'ú', 'ñ', 'Ñ', 'ª', 'º',
	'¿', '⌐', '¬', '½', '¼', '¡', '«', '»',
	'░', '▒', '▓', '│', '┤', '╡', '╢', '╖',
	'╕', '╣', '║', '╗', '╝', '╜', '╛', '┐',
	'└', '┴', '┬', '├', '─', '┼', '╞', '╟',
	'╚', '╔', '╩', '╦', '╠', '═', '╬', '╧',
	'╨', '╤', '╥', '╙', '╘', '╒', '╓', '╫',
	'╪', '┘', '┌', '█', '▄', '▌', '▐', '▀',
	'α', 'ß', 'Γ', 'π', 'Σ', 'σ', 'µ', 'τ',
	'Φ', 'Θ', 'Ω', 'δ', '∞', 'φ', 'ε', '∩',
	'≡', '±', '≥', '≤', '⌠', '⌡', '÷', '≈',
	'°', '∙', '·', '√', 'ⁿ', '²', '■', ' ',
}

var runeToCP437 map[rune]byte

func init() {
	runeToCP437 = make(map[rune]byte, 256)
	for i, r := range cp437Low {
		runeToCP437[r] = byte(i)
	}
	for b := byte(32); b < 127; b++ {
		runeToCP437[rune(b)] = b
	}
	for i, r := range cp437High {
		runeToCP437[r] = byte(127 + i)
	}
}

// CP437ToRune maps a code page 437 byte to its Unicode equivalent.
func CP437ToRune(b byte) rune {
	switch {
	case b < 32:
		return cp437Low[b]
	case b < 127:
		return rune(b)
	default:
		return cp437High[b-127]
	}
}

// RuneToCP437 maps a rune back to its code page 437 byte. The second
// return value reports whether the rune exists in the code page.
func RuneToCP437(r rune) (byte, bool) {
	b, ok := runeToCP437[r]
	return b, ok
}
