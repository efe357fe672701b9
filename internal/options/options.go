// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrogolib/arch"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input program image"`
	Output string `flag:"o" usage:"output screen dump file (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	System      string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Frames      int    `flag:"frames" usage:"number of frames to run, 0 runs until interrupted"`
	Rate        int    `flag:"rate" usage:"frames per second, 0 runs unthrottled" default:"60"`
	Keys        string `flag:"keys" usage:"scripted key input, for example 10:5,20:!5,30:*"`
	Breakpoints string `flag:"break" usage:"comma separated breakpoint addresses"`
	Hold        int    `flag:"hold" usage:"frames an interactive key press stays held" default:"4"`
	Interactive bool   `flag:"interactive" usage:"read keys from the terminal and draw every frame"`
	Trace       bool   `flag:"trace" usage:"log every executed instruction"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the runner binary.
type Program struct {
	Parameters
	Flags
}

// KeyAction is the change a scripted key event applies to the keypad.
type KeyAction int

const (
	KeyPress      KeyAction = iota // press the key
	KeyRelease                     // release the key
	KeyReleaseAll                  // release every key
)

// KeyEvent is a scripted keypad change applied before the given frame runs.
type KeyEvent struct {
	Frame  int
	Key    uint8 // unused for KeyReleaseAll
	Action KeyAction
}

// Runner defines options to control a program run.
type Runner struct {
	System      arch.System // system type, only chip8 is supported
	Frames      int         // frames to run, 0 runs until the context is canceled
	Rate        int         // frames per second, 0 disables pacing
	Hold        int         // frames an interactive key stays pressed
	Keys        []KeyEvent  // scripted input ordered by frame
	Breakpoints []uint16
	Interactive bool
	Trace       bool
}

// NewRunner returns a new options instance with the given pacing defaults.
func NewRunner(rate, hold int) Runner {
	return Runner{
		System: arch.CHIP8System,
		Rate:   rate,
		Hold:   hold,
	}
}
