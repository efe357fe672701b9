package machine

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: font glyphs, 5 bytes each, digits 0-F
//	0x050-0x1FF: reserved for the interpreter, unused
//	0x200-0xFFF: program and data space
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address programs are loaded at and execution starts from.
	ProgramStart = 0x200

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes per font glyph.
	GlyphSize = 5
)

const (
	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, written as carry, borrow and collision flag.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack holds.
	StackDepth = 16

	// InstructionSize is the size of one instruction word in bytes.
	InstructionSize = 2
)

const (
	// DisplayWidth is the framebuffer width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the framebuffer height in pixels.
	DisplayHeight = 32
)

// font holds the hexadecimal digit glyphs 0-F, 4 pixels wide and 5 rows high.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
