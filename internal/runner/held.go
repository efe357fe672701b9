package runner

import "github.com/retroenv/retrochip8/internal/keypad"

// heldKeys tracks how many frames each terminal key stays pressed. Terminals
// only report key presses, a release is simulated after the hold time.
type heldKeys struct {
	hold      int
	remaining [keypad.KeyCount]int
}

func newHeldKeys(hold int) *heldKeys {
	return &heldKeys{hold: max(hold, 1)}
}

// press starts or restarts the hold time of the key.
func (h *heldKeys) press(key uint8) {
	h.remaining[key] = h.hold
}

// tick counts down one frame and returns the keys whose hold time ran out.
func (h *heldKeys) tick() []uint8 {
	var released []uint8
	for key, frames := range h.remaining {
		if frames == 0 {
			continue
		}
		h.remaining[key] = frames - 1
		if frames == 1 {
			released = append(released, uint8(key))
		}
	}
	return released
}
