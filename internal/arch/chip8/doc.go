// Package chip8 renders CHIP-8 instruction words as assembly mnemonics.
//
// Instruction definitions come from the retrogolib CHIP-8 tables. Each 16 bit
// word is matched against the opcodes registered for its first nibble using the
// opcode mask and value, the first match wins.
//
// # Output Format
//
// Operands follow the classic Cowgod notation:
//
//	cls
//	jp $208
//	jp V0, $300
//	ld V1, $0A
//	ld I, $2F0
//	drw V1, V2, $4
//	ld [I], V3
//
// Words without a matching definition are rendered as a data directive
// (".word $0000") so that traces and fault reports always have text to show.
//
// # Usage Example
//
//	text := chip8.Disassemble(0xD124) // "drw V1, V2, $4"
//
//	ins, ok := chip8.Decode(0x2300)
//	if ok && ins.IsCall() {
//		...
//	}
package chip8
