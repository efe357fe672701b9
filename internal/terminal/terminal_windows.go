package terminal

import (
	"context"
	"os"
)

// Terminal is not available on windows.
type Terminal struct{}

// Open always fails on windows.
func Open(*os.File) (*Terminal, error) {
	return nil, ErrUnsupported
}

// Start does nothing on windows.
func (t *Terminal) Start(context.Context) {}

// Keys returns a nil channel on windows.
func (t *Terminal) Keys() <-chan byte {
	return nil
}

// Close does nothing on windows.
func (t *Terminal) Close() error {
	return nil
}
