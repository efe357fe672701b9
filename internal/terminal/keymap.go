// Package terminal implements the interactive terminal front end: it puts the
// terminal into cbreak mode, reads key presses and maps them to the keypad.
package terminal

import "errors"

// ErrUnsupported is returned on platforms without termios support.
var ErrUnsupported = errors.New("interactive terminal not supported on this platform")

// Clear moves the cursor home and clears the screen.
const Clear = "\x1b[H\x1b[2J"

// Home moves the cursor to the top left corner without clearing, redrawing
// over the previous frame avoids flicker.
const Home = "\x1b[H"

// keymap maps the left hand block of a QWERTY keyboard to the hexadecimal
// keypad layout:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Key returns the keypad key for a byte read from the terminal.
// Upper case letters map to the same keys as lower case ones.
func Key(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keymap[b]
	return key, ok
}
