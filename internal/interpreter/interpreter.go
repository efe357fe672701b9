// Package interpreter implements the CHIP-8 fetch, decode and execute loop.
//
// The interpreter owns one machine state and one keypad. It is synchronous and
// single threaded: the embedder calls Step or Frame repeatedly, presses and
// releases keys between calls and reads the framebuffer for rendering.
//
// The blocking key read of the Fx0A instruction is realized by polling. While a
// key is awaited, Step only checks the keypad and returns without executing
// anything until a key is held down.
package interpreter

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/nibble"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// StepsPerFrame is the number of instructions executed by one Frame call.
const StepsPerFrame = 8

// Options configures an interpreter.
type Options struct {
	// Random is the source for the random instruction. It defaults to the
	// operating system's cryptographically secure generator.
	Random io.Reader
	// Trace enables debug logging of every executed instruction.
	Trace bool
}

// Interpreter executes CHIP-8 programs.
type Interpreter struct {
	logger  *log.Logger
	machine *machine.Machine
	keys    *keypad.Keypad
	random  io.Reader
	trace   bool

	awaiting      bool  // a key read is pending
	awaitRegister uint8 // register receiving the pending key

	breakpoints set.Set[uint16]
	stopped     bool   // execution stopped at the breakpoint at stoppedAt
	stoppedAt   uint16 // address of the breakpoint that stopped execution
	fault       *Fault
}

// New returns an interpreter in its initial state. It fails if the random
// source can not deliver data, there is no fallback to a weaker generator.
func New(logger *log.Logger, options Options) (*Interpreter, error) {
	random := options.Random
	if random == nil {
		random = rand.Reader
	}

	var sample [1]byte
	if _, err := io.ReadFull(random, sample[:]); err != nil {
		return nil, fmt.Errorf("reading random source: %w: %w", ErrRandomSource, err)
	}

	return &Interpreter{
		logger:      logger,
		machine:     machine.New(),
		keys:        keypad.New(),
		random:      random,
		trace:       options.Trace,
		breakpoints: set.New[uint16](),
	}, nil
}

// Reset returns the interpreter to its initial state: memory is cleared and the
// font reinstalled, registers, timers, stack and framebuffer are zeroed, all keys
// are released and any pending key read or fault is discarded.
// Breakpoints are kept.
func (in *Interpreter) Reset() {
	in.machine.Reset()
	in.keys.ReleaseAll()
	in.awaiting = false
	in.awaitRegister = 0
	in.stopped = false
	in.fault = nil
}

// LoadProgram copies the program image into memory at the program start address.
// Bytes beyond the end of memory are dropped. It returns the number of bytes loaded.
func (in *Interpreter) LoadProgram(program []byte) int {
	n := in.machine.LoadProgram(program)
	if n < len(program) {
		in.logger.Warn("Program truncated to fit into memory",
			log.Int("size", len(program)),
			log.Int("loaded", n))
	}
	return n
}

// Step executes a single instruction, or polls the keypad while a key read is
// pending. It returns a *Fault if the program performed an illegal operation and
// ErrBreakpoint if the next instruction is a breakpoint. The step following a
// breakpoint stop executes the instruction at the breakpoint.
func (in *Interpreter) Step() error {
	if in.fault != nil {
		return in.fault
	}

	if in.awaiting {
		key, ok := in.keys.FirstPressed()
		if !ok {
			return nil
		}
		in.machine.V[in.awaitRegister] = key
		in.awaiting = false
	} else if pc := in.machine.PC; in.breakpoints.Contains(pc) && (!in.stopped || in.stoppedAt != pc) {
		in.stopped = true
		in.stoppedAt = pc
		return ErrBreakpoint
	}

	in.stopped = false
	return in.execute()
}

// Frame decrements the delay timer and executes StepsPerFrame steps.
// It stops at the first error and returns it.
func (in *Interpreter) Frame() error {
	if in.fault != nil {
		return in.fault
	}

	if in.machine.DelayTimer > 0 {
		in.machine.DelayTimer--
	}

	for range StepsPerFrame {
		if err := in.Step(); err != nil {
			return err
		}
	}
	return nil
}

// execute fetches, decodes and executes the instruction at the program counter.
func (in *Interpreter) execute() error {
	pc := in.machine.PC

	opcode, err := in.machine.Opcode(pc)
	if err != nil {
		return in.halt(&Fault{PC: pc, Err: err})
	}

	if in.trace {
		in.traceInstruction(pc, opcode)
	}

	e, err := in.dispatch(nibble.Split(opcode))
	if err == nil {
		err = in.apply(e)
	}
	if err != nil {
		return in.halt(&Fault{
			PC:          pc,
			Opcode:      opcode,
			Instruction: chip8.Disassemble(opcode),
			Err:         err,
		})
	}
	return nil
}

func (in *Interpreter) halt(fault *Fault) error {
	in.fault = fault
	in.logger.Debug("Machine halted",
		log.Hex("pc", fault.PC),
		log.Hex("opcode", fault.Opcode),
		log.Err(fault.Err))
	return fault
}

func (in *Interpreter) traceInstruction(pc, opcode uint16) {
	ins, _ := chip8.Decode(opcode)
	in.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("instruction", chip8.Disassemble(opcode)),
		log.String("flow", ins.Flow()),
		log.Hex("index", in.machine.I),
		log.Uint8("sp", in.machine.SP))
}
