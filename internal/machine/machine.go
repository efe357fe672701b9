// Package machine contains the CHIP-8 machine state: memory, registers, timers,
// call stack, program counter and framebuffer.
package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressOutOfRange is returned for memory accesses past the end of memory.
	ErrAddressOutOfRange = errors.New("address out of range")
	// ErrStackOverflow is returned when a call is made with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when a return is made with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// Machine is the complete mutable state of one CHIP-8 machine.
// It is plain data, owned by exactly one interpreter.
type Machine struct {
	Memory [MemorySize]byte

	V          [RegisterCount]uint8 // general purpose registers V0-VF
	I          uint16               // index register
	DelayTimer uint8
	SoundTimer uint8

	PC    uint16 // program counter
	Stack [StackDepth]uint16
	SP    uint8 // index of the next free stack slot

	Display Framebuffer
}

// New returns a machine in its initial state with the font installed.
func New() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// Reset returns the machine to its initial state, identical to a newly
// created machine.
func (m *Machine) Reset() {
	*m = Machine{
		PC: ProgramStart,
	}
	copy(m.Memory[FontStart:], font[:])
}

// LoadProgram copies the program image into memory starting at ProgramStart.
// Bytes that do not fit into memory are dropped. Registers, timers, stack and
// framebuffer are left untouched. It returns the number of bytes written.
func (m *Machine) LoadProgram(program []byte) int {
	return copy(m.Memory[ProgramStart:], program)
}

// ReadByte returns the byte at the given address.
func (m *Machine) ReadByte(address uint16) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.Memory[address], nil
}

// Slice returns length bytes of memory starting at address. The returned slice
// aliases machine memory.
func (m *Machine) Slice(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	return m.Memory[int(address) : int(address)+length], nil
}

// Opcode returns the big-endian instruction word at the given address.
func (m *Machine) Opcode(address uint16) (uint16, error) {
	high, err := m.ReadByte(address)
	if err != nil {
		return 0, err
	}
	low, err := m.ReadByte(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}

// Push pushes a return address onto the call stack.
func (m *Machine) Push(address uint16) error {
	if int(m.SP) >= StackDepth {
		return fmt.Errorf("pushing $%03X at depth %d: %w", address, m.SP, ErrStackOverflow)
	}
	m.Stack[m.SP] = address
	m.SP++
	return nil
}

// Pop removes and returns the most recent return address from the call stack.
func (m *Machine) Pop() (uint16, error) {
	if m.SP == 0 {
		return 0, ErrStackUnderflow
	}
	m.SP--
	return m.Stack[m.SP], nil
}

// GlyphAddress returns the address of the font glyph for the digit.
func GlyphAddress(digit uint8) uint16 {
	return FontStart + uint16(digit)*GlyphSize
}

func checkRange(address uint16, length int) error {
	if length < 0 || int(address)+length > MemorySize {
		return fmt.Errorf("accessing %d bytes at $%04X: %w", length, address, ErrAddressOutOfRange)
	}
	return nil
}
