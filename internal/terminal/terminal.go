//go:build !windows

package terminal

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal reads key presses from a terminal in cbreak mode.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	keys chan byte
}

// Open switches the input terminal to cbreak mode, disabling line buffering
// and echo. Signal keys like Ctrl-C keep working. Close restores the
// previous mode.
func Open(input *os.File) (*Terminal, error) {
	t := &Terminal{
		input: input,
		keys:  make(chan byte, 64),
	}

	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.cbreakAttr = t.canAttr
	termios.Cfmakecbreak(&t.cbreakAttr)

	if err := termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &t.cbreakAttr); err != nil {
		return nil, fmt.Errorf("setting cbreak mode: %w", err)
	}
	return t, nil
}

// Start reads the input on a helper goroutine and sends every byte to the
// Keys channel. The goroutine blocks in Read, it ends when a read fails,
// for example after the input file is closed, or when a byte arrives after
// the context was canceled. A goroutine left blocked on stdin ends with the
// process.
func (t *Terminal) Start(ctx context.Context) {
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := t.input.Read(buf)
			if err != nil {
				return
			}
			for _, b := range buf[:n] {
				select {
				case t.keys <- b:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Keys returns the channel of bytes read from the terminal.
func (t *Terminal) Keys() <-chan byte {
	return t.keys
}

// Close restores the terminal mode that was active before Open.
func (t *Terminal) Close() error {
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}
