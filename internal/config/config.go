// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultFrameRate is the rate of the CHIP-8 timers in Hz.
	DefaultFrameRate = 60
	// DefaultKeyHoldFrames is the number of frames a terminal key press is held.
	// Terminals report key presses but no releases.
	DefaultKeyHoldFrames = 4
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
