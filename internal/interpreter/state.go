package interpreter

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/set"
)

// PressKey marks the key as held down.
func (in *Interpreter) PressKey(key uint8) error {
	if err := checkKey(key); err != nil {
		return err
	}
	in.keys.Press(key)
	return nil
}

// ReleaseKey marks the key as released.
func (in *Interpreter) ReleaseKey(key uint8) error {
	if err := checkKey(key); err != nil {
		return err
	}
	in.keys.Release(key)
	return nil
}

// ReleaseAllKeys releases every key.
func (in *Interpreter) ReleaseAllKeys() {
	in.keys.ReleaseAll()
}

// PressedKeys returns all held keys in ascending order.
func (in *Interpreter) PressedKeys() []uint8 {
	return in.keys.Pressed()
}

// SetBreakpoints replaces the breakpoint addresses.
func (in *Interpreter) SetBreakpoints(addresses ...uint16) {
	in.stopped = false
	in.breakpoints = set.New[uint16]()
	for _, address := range addresses {
		in.breakpoints.Add(address)
	}
}

// Framebuffer returns a copy of the display, indexed [y][x].
func (in *Interpreter) Framebuffer() machine.Framebuffer {
	return in.machine.Display
}

// Pixels returns the display flattened in row-major order, true meaning lit.
func (in *Interpreter) Pixels() []bool {
	return in.machine.Display.Pixels()
}

// Registers returns a copy of the general purpose registers V0-VF.
func (in *Interpreter) Registers() [machine.RegisterCount]uint8 {
	return in.machine.V
}

// Index returns the index register.
func (in *Interpreter) Index() uint16 {
	return in.machine.I
}

// ProgramCounter returns the address of the next instruction.
func (in *Interpreter) ProgramCounter() uint16 {
	return in.machine.PC
}

// StackPointer returns the current call depth.
func (in *Interpreter) StackPointer() uint8 {
	return in.machine.SP
}

// DelayTimer returns the delay timer.
func (in *Interpreter) DelayTimer() uint8 {
	return in.machine.DelayTimer
}

// SoundTimer returns the sound timer.
func (in *Interpreter) SoundTimer() uint8 {
	return in.machine.SoundTimer
}

// AwaitingKey returns the register receiving a pending key read, if any.
func (in *Interpreter) AwaitingKey() (uint8, bool) {
	return in.awaitRegister, in.awaiting
}

// Halted returns whether the interpreter stopped on a fault.
func (in *Interpreter) Halted() bool {
	return in.fault != nil
}

// Fault returns the fault that halted the interpreter, or nil.
func (in *Interpreter) Fault() *Fault {
	return in.fault
}

// Disassemble returns the assembly text of the instruction at the program
// counter, or an empty string if the program counter is outside of memory.
func (in *Interpreter) Disassemble() string {
	opcode, err := in.machine.Opcode(in.machine.PC)
	if err != nil {
		return ""
	}
	return chip8.Disassemble(opcode)
}

func checkKey(key uint8) error {
	if key >= keypad.KeyCount {
		return fmt.Errorf("key $%02X: %w", key, ErrKeyOutOfRange)
	}
	return nil
}
