package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	in := newTestInterpreter(t)

	assert.Equal(t, start, in.ProgramCounter())
	assert.Equal(t, uint16(0), in.Index())
	assert.Equal(t, uint8(0), in.StackPointer())
	assert.Equal(t, uint8(0), in.DelayTimer())
	assert.Equal(t, uint8(0), in.SoundTimer())
	assert.False(t, in.Halted())
	assert.Nil(t, in.Fault())
	assert.Empty(t, in.PressedKeys())
	assert.Len(t, in.Pixels(), machine.DisplayWidth*machine.DisplayHeight)

	// glyph of digit 0
	assert.Equal(t, byte(0xF0), in.machine.Memory[0])
	assert.Equal(t, byte(0x90), in.machine.Memory[1])
}

func TestNewDefaultRandomSource(t *testing.T) {
	in, err := New(log.NewTestLogger(t), Options{})
	assert.NoError(t, err)
	assert.NotNil(t, in.random)
}

func TestNewRandomSourceFailure(t *testing.T) {
	in, err := New(log.NewTestLogger(t), Options{Random: failingReader{}})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRandomSource))
	assert.Nil(t, in)
}

func TestRandomSourceFailureAtRuntime(t *testing.T) {
	in := newTestInterpreter(t)
	in.random = failingReader{}
	loadOpcodes(in, 0xC0FF)

	err := in.Step()
	assert.True(t, errors.Is(err, ErrRandomSource))
	assert.True(t, in.Halted())
}

func TestLoadProgramTruncates(t *testing.T) {
	in := newTestInterpreter(t)

	program := make([]byte, 5000)
	n := in.LoadProgram(program)

	assert.Equal(t, machine.MemorySize-machine.ProgramStart, n)
}

func TestReset(t *testing.T) {
	in := newTestInterpreter(t)
	in.SetBreakpoints(0x300)
	loadOpcodes(in, 0x6A22, 0xA123, 0x2300, 0xF00A)
	assert.NoError(t, in.PressKey(0x3))

	for range 3 {
		step(t, in)
	}
	in.machine.DelayTimer = 9
	in.machine.Display[1][1] = true

	in.Reset()

	assert.Equal(t, machine.New().Memory, in.machine.Memory)
	assert.Equal(t, [machine.RegisterCount]uint8{}, in.Registers())
	assert.Equal(t, start, in.ProgramCounter())
	assert.Equal(t, uint16(0), in.Index())
	assert.Equal(t, uint8(0), in.StackPointer())
	assert.Equal(t, uint8(0), in.DelayTimer())
	assert.Equal(t, 0, in.machine.Display.Lit())
	assert.Empty(t, in.PressedKeys())
	assert.True(t, in.breakpoints.Contains(0x300))
}

func TestResetClearsFault(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0xFFFF)

	assert.Error(t, in.Step())
	assert.True(t, in.Halted())

	in.Reset()
	assert.False(t, in.Halted())

	loadOpcodes(in, 0x6A01)
	step(t, in)
	assert.Equal(t, uint8(1), in.Registers()[0xA])
}

func TestResetCancelsKeyWait(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0xF00A)
	step(t, in)

	in.Reset()

	_, awaiting := in.AwaitingKey()
	assert.False(t, awaiting)
}

func TestUnknownOpcode(t *testing.T) {
	opcodes := []uint16{0x0123, 0x5121, 0x8008, 0x800F, 0x9121, 0xE000, 0xE19F, 0xF000, 0xFFFF}

	for _, opcode := range opcodes {
		in := newTestInterpreter(t)
		loadOpcodes(in, opcode)

		err := in.Step()
		assert.True(t, errors.Is(err, ErrUnknownOpcode))

		var fault *Fault
		assert.True(t, errors.As(err, &fault))
		assert.Equal(t, start, fault.PC)
		assert.Equal(t, opcode, fault.Opcode)
		assert.NotEmpty(t, fault.Instruction)
		assert.Equal(t, start, in.ProgramCounter())
	}
}

func TestFaultRepeats(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x5121)

	first := in.Step()
	assert.Error(t, first)

	second := in.Step()
	assert.Equal(t, first, second)
	assert.Equal(t, first, in.Frame())
	assert.True(t, in.Fault() == second)
}

func TestStackOverflow(t *testing.T) {
	in := newTestInterpreter(t)
	// recursive call into itself
	loadOpcodes(in, 0x2200)

	for range machine.StackDepth {
		step(t, in)
	}
	assert.Equal(t, uint8(machine.StackDepth), in.StackPointer())

	err := in.Step()
	assert.True(t, errors.Is(err, machine.ErrStackOverflow))
	assert.Equal(t, uint8(machine.StackDepth), in.StackPointer())
	assert.True(t, in.Halted())
}

func TestStackUnderflow(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x00EE)

	err := in.Step()
	assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
	assert.Equal(t, uint8(0), in.StackPointer())
	assert.Equal(t, start, in.ProgramCounter())
}

func TestFetchOutOfRange(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x1FFF)
	step(t, in)

	err := in.Step()
	assert.True(t, errors.Is(err, machine.ErrAddressOutOfRange))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0xFFF), fault.PC)
	assert.Equal(t, "", fault.Instruction)
	assert.Equal(t, "", in.Disassemble())
}

func TestMemoryAccessOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
	}{
		{"draw", 0xD01F},
		{"bcd", 0xF033},
		{"store", 0xFF55},
		{"load", 0xFF65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter(t)
			in.machine.I = 0xFFE
			loadOpcodes(in, tt.opcode)

			err := in.Step()
			assert.True(t, errors.Is(err, machine.ErrAddressOutOfRange))
			assert.True(t, in.Halted())
			assert.Equal(t, 0, in.machine.Display.Lit())
		})
	}
}

func TestKeyRegisterOutOfRange(t *testing.T) {
	for _, opcode := range []uint16{0xE09E, 0xE0A1} {
		in := newTestInterpreter(t)
		in.machine.V[0] = 0x10
		loadOpcodes(in, opcode)

		err := in.Step()
		assert.True(t, errors.Is(err, ErrKeyOutOfRange))
		assert.True(t, in.Halted())
	}
}

func TestPressKey(t *testing.T) {
	in := newTestInterpreter(t)

	assert.NoError(t, in.PressKey(0xF))
	assert.NoError(t, in.PressKey(0x1))
	keys := in.PressedKeys()
	assert.Len(t, keys, 2)
	assert.Equal(t, uint8(0x1), keys[0])
	assert.Equal(t, uint8(0xF), keys[1])

	assert.NoError(t, in.ReleaseKey(0x1))
	assert.Len(t, in.PressedKeys(), 1)

	in.ReleaseAllKeys()
	assert.Empty(t, in.PressedKeys())

	assert.True(t, errors.Is(in.PressKey(0x10), ErrKeyOutOfRange))
	assert.True(t, errors.Is(in.ReleaseKey(0xFF), ErrKeyOutOfRange))
}

func TestBreakpoint(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x6001, 0x6102, 0x6203)
	in.SetBreakpoints(start + 2)

	step(t, in)

	err := in.Step()
	assert.True(t, errors.Is(err, ErrBreakpoint))
	assert.Equal(t, start+2, in.ProgramCounter())
	assert.Equal(t, uint8(0), in.Registers()[1])
	assert.False(t, in.Halted())

	in.SetBreakpoints()
	step(t, in)
	assert.Equal(t, uint8(2), in.Registers()[1])
}

func TestBreakpointResume(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x6001, 0x6002, 0x1200)
	in.SetBreakpoints(start)

	assert.True(t, errors.Is(in.Step(), ErrBreakpoint))
	assert.Equal(t, start, in.ProgramCounter())

	step(t, in)
	assert.Equal(t, start+2, in.ProgramCounter())
	assert.Equal(t, uint8(1), in.Registers()[0])

	step(t, in)
	step(t, in)
	// back at the breakpoint after the jump
	assert.True(t, errors.Is(in.Step(), ErrBreakpoint))
	assert.Equal(t, start, in.ProgramCounter())
}

func TestBreakpointResumeFrame(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x7001, 0x7001, 0x1204)
	in.SetBreakpoints(start + 2)

	assert.True(t, errors.Is(in.Frame(), ErrBreakpoint))
	assert.Equal(t, uint8(1), in.Registers()[0])

	// the next frame runs the instruction at the breakpoint
	assert.NoError(t, in.Frame())
	assert.Equal(t, uint8(2), in.Registers()[0])
	assert.Equal(t, start+4, in.ProgramCounter())
}

func TestBreakpointStopClearedOnReset(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x6001)
	in.SetBreakpoints(start)
	assert.True(t, errors.Is(in.Step(), ErrBreakpoint))

	in.Reset()
	loadOpcodes(in, 0x6001)
	assert.True(t, errors.Is(in.Step(), ErrBreakpoint))

	in.SetBreakpoints(start)
	assert.True(t, errors.Is(in.Step(), ErrBreakpoint))
	step(t, in)
	assert.Equal(t, uint8(1), in.Registers()[0])
}

func TestBreakpointStopsFrame(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x7001, 0x7001, 0x7001, 0x7001)
	in.SetBreakpoints(start + 4)

	err := in.Frame()
	assert.True(t, errors.Is(err, ErrBreakpoint))
	assert.Equal(t, uint8(2), in.Registers()[0])
}

func TestFrame(t *testing.T) {
	in := newTestInterpreter(t)
	in.machine.DelayTimer = 2
	in.machine.SoundTimer = 2
	// counting loop: ADD V0, 1 then JP back
	loadOpcodes(in, 0x7001, 0x1200)

	assert.NoError(t, in.Frame())
	assert.Equal(t, uint8(StepsPerFrame/2), in.Registers()[0])
	assert.Equal(t, uint8(1), in.DelayTimer())
	assert.Equal(t, uint8(2), in.SoundTimer())

	assert.NoError(t, in.Frame())
	assert.NoError(t, in.Frame())
	assert.Equal(t, uint8(0), in.DelayTimer())
	assert.Equal(t, uint8(3*StepsPerFrame/2), in.Registers()[0])
}

func TestFrameDelayTimerRead(t *testing.T) {
	in := newTestInterpreter(t)
	// the delay timer is decremented before the instructions of the frame run
	loadOpcodes(in, 0x6005, 0xF015, 0x1204)

	assert.NoError(t, in.Frame())
	assert.Equal(t, uint8(5), in.DelayTimer())

	assert.NoError(t, in.Frame())
	assert.Equal(t, uint8(4), in.DelayTimer())
}

func TestFrameKeyWait(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0xF10A, 0x7201, 0x1202)

	assert.NoError(t, in.Frame())
	assert.Equal(t, start+2, in.ProgramCounter())
	_, awaiting := in.AwaitingKey()
	assert.True(t, awaiting)

	assert.NoError(t, in.PressKey(0x7))
	assert.NoError(t, in.Frame())
	assert.Equal(t, uint8(0x7), in.Registers()[1])
	assert.Equal(t, uint8(StepsPerFrame/2), in.Registers()[2])
}

func TestKeyWaitIgnoresBreakpoint(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0xF10A, 0x6201)
	step(t, in)

	in.SetBreakpoints(start + 2)
	assert.NoError(t, in.PressKey(0x2))
	step(t, in)

	assert.Equal(t, uint8(1), in.Registers()[2])
}

func TestFramebufferIsCopy(t *testing.T) {
	in := newTestInterpreter(t)
	fb := in.Framebuffer()
	fb[0][0] = true

	assert.False(t, in.machine.Display[0][0])
}

func TestTrace(t *testing.T) {
	in, err := New(log.NewTestLogger(t), Options{Random: constantReader(1), Trace: true})
	assert.NoError(t, err)
	loadOpcodes(in, 0x2204, 0x0000, 0x00EE)

	step(t, in)
	step(t, in)
	assert.Equal(t, start+2, in.ProgramCounter())
}

func TestDisassemble(t *testing.T) {
	in := newTestInterpreter(t)
	loadOpcodes(in, 0x00E0)

	assert.Equal(t, chip8cpu.Cls.Name, in.Disassemble())
}

func TestFaultError(t *testing.T) {
	fault := &Fault{PC: 0x200, Opcode: 0x5121, Instruction: ".word $5121", Err: ErrUnknownOpcode}
	assert.Equal(t, "fault at $0200 executing $5121 (.word $5121): unknown opcode", fault.Error())

	fault = &Fault{PC: 0xFFF, Err: machine.ErrAddressOutOfRange}
	assert.Equal(t, "fault at $0FFF: address out of range", fault.Error())
}
