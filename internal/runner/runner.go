// Package runner orchestrates a program run: detection, loading, frame pacing,
// input and screen output around one interpreter.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/interpreter"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// Result describes the machine state at the end of a run.
type Result struct {
	Frames     int  // frames that completed
	Breakpoint bool // the run stopped at a breakpoint
	Screen     machine.Framebuffer
	Registers  [machine.RegisterCount]uint8
	PC         uint16
	SoundTimer uint8
}

// KeySource delivers bytes typed on an interactive terminal.
type KeySource interface {
	Keys() <-chan byte
}

// Runner orchestrates the complete run workflow.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the program named in the options and runs it. The final
// screen is written to the writer.
func (r *Runner) Execute(ctx context.Context, opts options.Program, runOpts options.Runner, writer io.Writer) (*Result, error) {
	system, err := r.detector.Detect(opts)
	if err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}
	runOpts.System = system

	program, err := r.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	app.PrintInfo(r.logger, opts, runOpts, len(program))

	if !runOpts.Interactive {
		return r.ExecuteWithProgram(ctx, program, runOpts, writer, nil)
	}

	term, err := terminal.Open(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		if err := term.Close(); err != nil {
			r.logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()
	term.Start(ctx)

	return r.ExecuteWithProgram(ctx, program, runOpts, writer, term)
}

// ExecuteWithProgram runs an already loaded program image. Keys typed on the
// optional key source are pressed for runOpts.Hold frames and the screen is
// drawn to stdout after every frame when a key source is given.
// This is useful for testing and programmatic usage where the program is already in memory.
func (r *Runner) ExecuteWithProgram(ctx context.Context, program []byte, runOpts options.Runner,
	writer io.Writer, keys KeySource) (*Result, error) {

	in, err := interpreter.New(r.logger, interpreter.Options{Trace: runOpts.Trace})
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}
	in.LoadProgram(program)
	in.SetBreakpoints(runOpts.Breakpoints...)

	s := &session{
		logger:  r.logger,
		in:      in,
		options: runOpts,
		script:  sortedScript(runOpts.Keys),
		held:    newHeldKeys(runOpts.Hold),
	}
	if keys != nil {
		s.keys = keys.Keys()
		s.display = screen.New(os.Stdout, screen.TerminalOptions)
		_, _ = io.WriteString(os.Stdout, terminal.Clear)
	}

	runErr := s.run(ctx)
	result := s.result()

	if err := screen.New(writer, screen.DumpOptions).Write(result.Screen); err != nil {
		return result, fmt.Errorf("writing screen dump: %w", err)
	}
	if runErr != nil {
		return result, runErr
	}

	r.logger.Debug("Run finished",
		log.Int("frames", result.Frames),
		log.Hex("pc", result.PC),
		log.Uint8("sound_timer", result.SoundTimer))
	return result, nil
}

// session is the state of one run.
type session struct {
	logger  *log.Logger
	in      *interpreter.Interpreter
	options options.Runner

	script []options.KeyEvent // remaining scripted key events
	keys   <-chan byte        // interactive input, nil if not interactive
	held   *heldKeys
	// display draws every frame in interactive mode
	display *screen.Writer

	frames     int
	breakpoint bool
}

func (s *session) run(ctx context.Context) error {
	var tick <-chan time.Time
	if s.options.Rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.options.Rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for s.options.Frames == 0 || s.frames < s.options.Frames {
		if err := wait(ctx, tick); err != nil {
			return fmt.Errorf("running frame %d: %w", s.frames, err)
		}

		if err := s.applyInput(); err != nil {
			return err
		}

		err := s.in.Frame()
		if err == nil {
			s.frames++
			s.releaseExpired()
			if err := s.draw(); err != nil {
				return err
			}
			continue
		}

		if errors.Is(err, interpreter.ErrBreakpoint) {
			s.breakpoint = true
			s.logBreakpoint()
			return nil
		}

		var fault *interpreter.Fault
		if errors.As(err, &fault) {
			s.logger.Error("Program fault",
				log.Hex("pc", fault.PC),
				log.Hex("opcode", fault.Opcode),
				log.String("instruction", fault.Instruction),
				log.Int("frame", s.frames),
				log.Err(fault.Err))
		}
		return fmt.Errorf("running frame %d: %w", s.frames, err)
	}
	return nil
}

// wait blocks until the next frame is due. Without a ticker it only checks
// for cancellation.
func wait(ctx context.Context, tick <-chan time.Time) error {
	if tick == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}

// applyInput applies the scripted key events of the current frame and presses
// the keys typed on the terminal since the previous frame.
func (s *session) applyInput() error {
	for len(s.script) > 0 && s.script[0].Frame <= s.frames {
		event := s.script[0]
		s.script = s.script[1:]

		var err error
		switch event.Action {
		case options.KeyPress:
			err = s.in.PressKey(event.Key)
		case options.KeyRelease:
			err = s.in.ReleaseKey(event.Key)
		case options.KeyReleaseAll:
			s.in.ReleaseAllKeys()
		}
		if err != nil {
			return fmt.Errorf("applying key event of frame %d: %w", event.Frame, err)
		}
	}

	for {
		select {
		case b := <-s.keys:
			key, ok := terminal.Key(b)
			if !ok {
				continue
			}
			if err := s.in.PressKey(key); err != nil {
				return fmt.Errorf("pressing key: %w", err)
			}
			s.held.press(key)
		default:
			return nil
		}
	}
}

// releaseExpired releases the terminal keys whose hold time ran out.
func (s *session) releaseExpired() {
	for _, key := range s.held.tick() {
		_ = s.in.ReleaseKey(key)
	}
}

func (s *session) draw() error {
	if s.display == nil {
		return nil
	}
	if _, err := io.WriteString(os.Stdout, terminal.Home); err != nil {
		return fmt.Errorf("writing cursor position: %w", err)
	}
	if err := s.display.Write(s.in.Framebuffer()); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	return nil
}

func (s *session) logBreakpoint() {
	registers := s.in.Registers()
	buf := &strings.Builder{}
	for i, value := range registers {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "V%X=$%02X", i, value)
	}

	s.logger.Info("Breakpoint reached",
		log.Hex("pc", s.in.ProgramCounter()),
		log.String("instruction", s.in.Disassemble()),
		log.Hex("index", s.in.Index()),
		log.Uint8("sp", s.in.StackPointer()),
		log.Uint8("dt", s.in.DelayTimer()),
		log.Uint8("st", s.in.SoundTimer()),
		log.String("registers", buf.String()))
}

func (s *session) result() *Result {
	return &Result{
		Frames:     s.frames,
		Breakpoint: s.breakpoint,
		Screen:     s.in.Framebuffer(),
		Registers:  s.in.Registers(),
		PC:         s.in.ProgramCounter(),
		SoundTimer: s.in.SoundTimer(),
	}
}

// sortedScript returns a copy of the key events ordered by frame. Events of
// the same frame keep their order.
func sortedScript(events []options.KeyEvent) []options.KeyEvent {
	script := slices.Clone(events)
	slices.SortStableFunc(script, func(a, b options.KeyEvent) int {
		return a.Frame - b.Frame
	})
	return script
}
