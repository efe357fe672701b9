// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, runOpts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts, runOpts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Run interrupted")
			return
		}
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program, runOpts options.Runner) (err error) {
	writer, err := createWriter(opts)
	if err != nil {
		return err
	}
	if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
		defer func() {
			err = closeOutput(closer, err)
		}()
	}

	r := runner.New(logger)
	if _, err := r.Execute(ctx, opts, runOpts, writer); err != nil {
		return fmt.Errorf("executing program: %w", err)
	}
	return nil
}

// closeOutput closes the output file. A close error is returned when the
// run itself succeeded, otherwise the run error takes precedence.
func closeOutput(output io.Closer, err error) error {
	if closeErr := output.Close(); closeErr != nil && err == nil {
		return fmt.Errorf("closing output file: %w", closeErr)
	}
	return err
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}
