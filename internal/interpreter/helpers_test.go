package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// constantReader is a random source returning the same byte forever.
type constantReader byte

func (r constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

// failingReader is a random source that is never available.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()

	in, err := New(log.NewTestLogger(t), Options{Random: constantReader(0xFF)})
	if err != nil {
		t.Fatalf("creating interpreter: %v", err)
	}
	return in
}

// loadOpcodes loads the instruction words as big-endian program bytes.
func loadOpcodes(in *Interpreter, opcodes ...uint16) {
	program := make([]byte, 0, 2*len(opcodes))
	for _, opcode := range opcodes {
		program = append(program, byte(opcode>>8), byte(opcode))
	}
	in.LoadProgram(program)
}

func step(t *testing.T, in *Interpreter) {
	t.Helper()

	if err := in.Step(); err != nil {
		t.Fatalf("step at $%04X: %v", in.machine.PC, err)
	}
}

const start = uint16(machine.ProgramStart)
