// Package keypad implements the 16 key CHIP-8 input matrix.
package keypad

// KeyCount is the number of logical keys, addressed 0x0-0xF.
const KeyCount = 16

// Keypad tracks which logical keys are currently held down.
// Key indices outside 0x0-0xF are a caller error and panic.
type Keypad struct {
	keys [KeyCount]bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Press marks the key as held down.
func (k *Keypad) Press(key uint8) {
	k.keys[key] = true
}

// Release marks the key as released.
func (k *Keypad) Release(key uint8) {
	k.keys[key] = false
}

// ReleaseAll releases every key.
func (k *Keypad) ReleaseAll() {
	k.keys = [KeyCount]bool{}
}

// IsPressed returns whether the key is held down.
func (k *Keypad) IsPressed(key uint8) bool {
	return k.keys[key]
}

// FirstPressed returns the lowest indexed key that is held down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}

// Pressed returns all held keys in ascending order.
func (k *Keypad) Pressed() []uint8 {
	var keys []uint8
	for i, pressed := range k.keys {
		if pressed {
			keys = append(keys, uint8(i))
		}
	}
	return keys
}
