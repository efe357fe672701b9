// Package app provides the main application helpers for the runner binary.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	archsys "github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the program that is about to run.
func PrintInfo(logger *log.Logger, opts options.Program, runOpts options.Runner, size int) {
	if opts.Quiet {
		return
	}

	switch runOpts.System {
	case archsys.CHIP8System:
		logger.Info("Running Chip-8 program",
			log.String("file", opts.Input),
			log.Int("size", size),
			log.Int("frames", runOpts.Frames),
			log.Int("rate", runOpts.Rate),
		)
		if runOpts.Frames == 0 && !runOpts.Interactive {
			logger.Info("Running until interrupted, press Ctrl+C to stop")
		}

	default:
		logger.Warn("Unexpected system", log.Stringer("system", runOpts.System))
	}
}
