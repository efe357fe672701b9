package interpreter

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOpcode is returned for instruction words outside the opcode table.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrKeyOutOfRange is returned for key indices above 0xF.
	ErrKeyOutOfRange = errors.New("key out of range")
	// ErrRandomSource is returned when the secure random source fails.
	ErrRandomSource = errors.New("random source unavailable")
	// ErrBreakpoint is returned by Step when the next instruction sits on a
	// breakpoint. The instruction is not executed and the machine is not halted.
	ErrBreakpoint = errors.New("breakpoint reached")
)

// Fault describes a fatal runtime violation of a program. After a fault the
// interpreter is halted and returns the same fault until it is reset.
type Fault struct {
	PC          uint16 // address of the faulting instruction
	Opcode      uint16 // faulting instruction word, zero if it could not be fetched
	Instruction string // disassembly of the instruction, empty if it could not be fetched
	Err         error
}

func (f *Fault) Error() string {
	if f.Instruction == "" {
		return fmt.Sprintf("fault at $%04X: %v", f.PC, f.Err)
	}
	return fmt.Sprintf("fault at $%04X executing $%04X (%s): %v", f.PC, f.Opcode, f.Instruction, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
