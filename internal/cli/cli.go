// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Runner{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Runner{}, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	runOpts, err := createRunnerOptions(opts)
	if err != nil {
		return opts, options.Runner{}, err
	}

	return opts, runOpts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)
	if opts.Trace {
		opts.Debug = true
	}

	switch {
	case opts.Frames < 0:
		return fmt.Errorf("invalid frame count %d: must not be negative", opts.Frames)
	case opts.Rate < 0:
		return fmt.Errorf("invalid frame rate %d: must not be negative", opts.Rate)
	case opts.Hold < 1:
		return fmt.Errorf("invalid key hold %d: must be at least 1 frame", opts.Hold)
	}
	return nil
}

// createRunnerOptions creates runner options based on program options
func createRunnerOptions(opts options.Program) (options.Runner, error) {
	runOpts := options.NewRunner(opts.Rate, opts.Hold)
	runOpts.Frames = opts.Frames
	runOpts.Interactive = opts.Interactive
	runOpts.Trace = opts.Trace

	keys, err := ParseKeyScript(opts.Keys)
	if err != nil {
		return options.Runner{}, fmt.Errorf("parsing key script: %w", err)
	}
	runOpts.Keys = keys

	breakpoints, err := ParseBreakpoints(opts.Breakpoints)
	if err != nil {
		return options.Runner{}, fmt.Errorf("parsing breakpoints: %w", err)
	}
	runOpts.Breakpoints = breakpoints

	return runOpts, nil
}

// ParseKeyScript parses a comma separated list of scripted key events.
// Every event has the form frame:key to press a key, frame:!key to release
// it or frame:* to release all keys. Keys are hexadecimal digits 0-F.
func ParseKeyScript(script string) ([]options.KeyEvent, error) {
	var events []options.KeyEvent

	for _, entry := range strings.Split(script, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		frameText, keyText, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("key event '%s' is missing the frame separator", entry)
		}

		frame, err := strconv.Atoi(frameText)
		if err != nil || frame < 0 {
			return nil, fmt.Errorf("key event '%s' has an invalid frame number", entry)
		}

		event := options.KeyEvent{Frame: frame}
		switch {
		case keyText == "*":
			event.Action = options.KeyReleaseAll
			events = append(events, event)
			continue
		case strings.HasPrefix(keyText, "!"):
			event.Action = options.KeyRelease
			keyText = keyText[1:]
		}

		key, err := strconv.ParseUint(keyText, 16, 8)
		if err != nil || key >= keypad.KeyCount {
			return nil, fmt.Errorf("key event '%s' has an invalid key, expected 0-F", entry)
		}
		event.Key = uint8(key)
		events = append(events, event)
	}

	return events, nil
}

var errAddressRange = errors.New("address outside of memory")

// ParseBreakpoints parses a comma separated list of hexadecimal addresses.
// Addresses can be prefixed with $ or 0x.
func ParseBreakpoints(list string) ([]uint16, error) {
	var addresses []uint16

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		text := strings.TrimPrefix(entry, "$")
		text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")

		address, err := strconv.ParseUint(text, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid breakpoint address '%s': %w", entry, err)
		}
		if address >= machine.MemorySize {
			return nil, fmt.Errorf("breakpoint '%s': %w", entry, errAddressRange)
		}
		addresses = append(addresses, uint16(address))
	}

	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program image")
	flags.StringVar(&opts.Output, "o", "", "name of the output screen dump file, printed on console if no name given")
	flags.StringVar(&opts.System, "s", "", "system to run (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames to run, 0 runs until interrupted")
	flags.IntVar(&opts.Rate, "rate", config.DefaultFrameRate, "frames per second, 0 runs as fast as possible")
	flags.StringVar(&opts.Keys, "keys", "", "scripted key input as frame:key, frame:!key to release or frame:* to release all, for example 10:5,20:!5")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated hexadecimal breakpoint addresses, for example 0x200,0x2a4")
	flags.IntVar(&opts.Hold, "hold", config.DefaultKeyHoldFrames, "number of frames an interactive key press stays held")
	flags.BoolVar(&opts.Interactive, "interactive", false, "read keys from the terminal and draw the screen every frame")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
