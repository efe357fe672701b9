package interpreter

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/nibble"
)

// dispatch executes the semantic rule of the decoded instruction and returns
// the resulting control flow effect. Register nibbles are named x and y,
// byte immediates kk and addresses nnn.
func (in *Interpreter) dispatch(n nibble.Nibbles) (effect, error) {
	m := in.machine
	x, y := n.N2, n.N3
	kk := nibble.Byte(n.N3, n.N4)
	nnn := nibble.Address(n.N2, n.N3, n.N4)

	switch n.N1 {
	case 0x0:
		switch {
		case n.N2 == 0x0 && n.N3 == 0xE && n.N4 == 0x0: // 00E0 CLS
			m.Display.Clear()
			return continueEffect, nil
		case n.N2 == 0x0 && n.N3 == 0xE && n.N4 == 0xE: // 00EE RET
			return effect{kind: effectReturn}, nil
		}

	case 0x1: // 1nnn JP addr
		return effect{kind: effectJump, address: nnn}, nil

	case 0x2: // 2nnn CALL addr
		return effect{kind: effectCall, address: nnn}, nil

	case 0x3: // 3xkk SE Vx, byte
		return skipIf(m.V[x] == kk), nil

	case 0x4: // 4xkk SNE Vx, byte
		return skipIf(m.V[x] != kk), nil

	case 0x5: // 5xy0 SE Vx, Vy
		if n.N4 == 0x0 {
			return skipIf(m.V[x] == m.V[y]), nil
		}

	case 0x6: // 6xkk LD Vx, byte
		m.V[x] = kk
		return continueEffect, nil

	case 0x7: // 7xkk ADD Vx, byte
		m.V[x] += kk
		return continueEffect, nil

	case 0x8:
		if in.arithmetic(x, y, n.N4) {
			return continueEffect, nil
		}

	case 0x9: // 9xy0 SNE Vx, Vy
		if n.N4 == 0x0 {
			return skipIf(m.V[x] != m.V[y]), nil
		}

	case 0xA: // Annn LD I, addr
		m.I = nnn
		return continueEffect, nil

	case 0xB: // Bnnn JP V0, addr
		return effect{kind: effectJump, address: nnn + uint16(m.V[0])}, nil

	case 0xC: // Cxkk RND Vx, byte
		var b [1]byte
		if _, err := io.ReadFull(in.random, b[:]); err != nil {
			return effect{}, fmt.Errorf("%w: %w", ErrRandomSource, err)
		}
		m.V[x] = b[0] & kk
		return continueEffect, nil

	case 0xD: // Dxyn DRW Vx, Vy, nibble
		if err := in.draw(m.V[x], m.V[y], n.N4); err != nil {
			return effect{}, err
		}
		return continueEffect, nil

	case 0xE:
		switch kk {
		case 0x9E: // Ex9E SKP Vx
			pressed, err := in.keyPressed(m.V[x])
			return skipIf(pressed), err
		case 0xA1: // ExA1 SKNP Vx
			pressed, err := in.keyPressed(m.V[x])
			return skipIf(!pressed), err
		}

	case 0xF:
		return in.misc(x, kk)
	}

	return effect{}, ErrUnknownOpcode
}

// arithmetic executes the 8xy_ register operations. It returns false for
// unassigned operation nibbles.
func (in *Interpreter) arithmetic(x, y, operation uint8) bool {
	v := &in.machine.V
	vx, vy := v[x], v[y]

	switch operation {
	case 0x0: // LD Vx, Vy
		v[x] = vy

	case 0x1: // OR Vx, Vy
		v[x] = vx | vy

	case 0x2: // AND Vx, Vy
		v[x] = vx & vy

	case 0x3: // XOR Vx, Vy
		v[x] = vx ^ vy

	case 0x4: // ADD Vx, Vy
		sum := uint16(vx) + uint16(vy)
		v[x] = uint8(sum)
		v[machine.FlagRegister] = flag(sum > 0xFF)

	case 0x5: // SUB Vx, Vy
		v[machine.FlagRegister] = flag(vx > vy)
		v[x] = saturatingSub(vx, vy)

	case 0x6: // SHR Vx
		v[machine.FlagRegister] = vx & 0x1
		v[x] = vx >> 1

	case 0x7: // SUBN Vx, Vy
		v[machine.FlagRegister] = flag(vy > vx)
		v[x] = saturatingSub(vy, vx)

	case 0xE: // SHL Vx
		v[machine.FlagRegister] = vx >> 7
		v[x] = vx << 1

	default:
		return false
	}

	return true
}

// misc executes the Fx__ timer, keypad, index and memory transfer instructions.
func (in *Interpreter) misc(x, operation uint8) (effect, error) {
	m := in.machine

	switch operation {
	case 0x07: // LD Vx, DT
		m.V[x] = m.DelayTimer

	case 0x0A: // LD Vx, K
		return effect{kind: effectAwaitKey, register: x}, nil

	case 0x15: // LD DT, Vx
		m.DelayTimer = m.V[x]

	case 0x18: // LD ST, Vx
		m.SoundTimer = m.V[x]

	case 0x1E: // ADD I, Vx
		m.I += uint16(m.V[x])

	case 0x29: // LD F, Vx
		m.I = machine.GlyphAddress(m.V[x])

	case 0x33: // LD B, Vx
		digits, err := m.Slice(m.I, 3)
		if err != nil {
			return effect{}, err
		}
		value := m.V[x]
		digits[0] = value / 100
		digits[1] = value / 10 % 10
		digits[2] = value % 10

	case 0x55: // LD [I], Vx
		memory, err := m.Slice(m.I, int(x)+1)
		if err != nil {
			return effect{}, err
		}
		copy(memory, m.V[:x+1])

	case 0x65: // LD Vx, [I]
		memory, err := m.Slice(m.I, int(x)+1)
		if err != nil {
			return effect{}, err
		}
		copy(m.V[:x+1], memory)

	default:
		return effect{}, ErrUnknownOpcode
	}

	return continueEffect, nil
}

// draw XORs an n byte sprite read from memory at I onto the display at vx, vy.
// Coordinates wrap around the display edges. VF is set if any lit pixel was
// turned off and cleared otherwise. The coordinates are register values read
// before VF is cleared.
func (in *Interpreter) draw(vx, vy, height uint8) error {
	m := in.machine

	// a zero height sprite reads no memory, I may point anywhere
	var sprite []byte
	if height > 0 {
		var err error
		if sprite, err = m.Slice(m.I, int(height)); err != nil {
			return err
		}
	}

	m.V[machine.FlagRegister] = 0
	for row, data := range sprite {
		for column := range 8 {
			lit := data&(0x80>>column) != 0
			if m.Display.Flip(int(vx)+column, int(vy)+row, lit) {
				m.V[machine.FlagRegister] = 1
			}
		}
	}
	return nil
}

// keyPressed queries the keypad for a key taken from a register.
func (in *Interpreter) keyPressed(key uint8) (bool, error) {
	if key >= keypad.KeyCount {
		return false, fmt.Errorf("register value $%02X: %w", key, ErrKeyOutOfRange)
	}
	return in.keys.IsPressed(key), nil
}

func flag(condition bool) uint8 {
	if condition {
		return 1
	}
	return 0
}

func saturatingSub(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}
