// Package nibble splits CHIP-8 instruction words into 4 bit fields and joins
// fields back into immediates and addresses.
package nibble

// Nibbles holds the four 4 bit fields of an instruction word, most significant first.
type Nibbles struct {
	N1, N2, N3, N4 uint8
}

// Split returns all four nibbles of the word.
func Split(word uint16) Nibbles {
	return Nibbles{
		N1: First(word),
		N2: Second(word),
		N3: Third(word),
		N4: Fourth(word),
	}
}

// First returns bits 12-15.
func First(word uint16) uint8 {
	return uint8((word & 0xF000) >> 12)
}

// Second returns bits 8-11.
func Second(word uint16) uint8 {
	return uint8((word & 0x0F00) >> 8)
}

// Third returns bits 4-7.
func Third(word uint16) uint8 {
	return uint8((word & 0x00F0) >> 4)
}

// Fourth returns bits 0-3.
func Fourth(word uint16) uint8 {
	return uint8(word & 0x000F)
}

// Byte concatenates two nibbles into an 8 bit immediate.
func Byte(hi, lo uint8) uint8 {
	return hi<<4 | lo
}

// Address concatenates three nibbles into a 12 bit address.
func Address(a, b, c uint8) uint16 {
	return uint16(a)<<8 | uint16(b)<<4 | uint16(c)
}
