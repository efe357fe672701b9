package interpreter

import "github.com/retroenv/retrochip8/internal/machine"

// effectKind is the control flow change produced by executing one instruction.
type effectKind uint8

const (
	effectNone     effectKind = iota // leave the program counter untouched
	effectContinue                   // advance to the next instruction
	effectAwaitKey                   // advance and block until a key is pressed
	effectSkipNext                   // skip the next instruction
	effectJump                       // jump to address
	effectCall                       // enter subroutine at address
	effectReturn                     // exit subroutine
)

type effect struct {
	kind     effectKind
	address  uint16 // jump and call target
	register uint8  // destination of the awaited key
}

var (
	continueEffect = effect{kind: effectContinue}
	skipEffect     = effect{kind: effectSkipNext}
)

// skipIf returns the skip effect if the condition holds and continue otherwise.
func skipIf(condition bool) effect {
	if condition {
		return skipEffect
	}
	return continueEffect
}

// apply repositions the program counter according to the effect.
func (in *Interpreter) apply(e effect) error {
	m := in.machine

	switch e.kind {
	case effectNone:

	case effectContinue:
		m.PC += machine.InstructionSize

	case effectAwaitKey:
		in.awaiting = true
		in.awaitRegister = e.register
		m.PC += machine.InstructionSize

	case effectSkipNext:
		m.PC += 2 * machine.InstructionSize

	case effectJump:
		m.PC = e.address

	case effectCall:
		if err := m.Push(m.PC + machine.InstructionSize); err != nil {
			return err
		}
		m.PC = e.address

	case effectReturn:
		address, err := m.Pop()
		if err != nil {
			return err
		}
		m.PC = address
	}

	return nil
}
