// Package main implements the main entry point for the Avnera firmware disassembler
package main

import (
	"context"
	"errors"

	"github.com/retroenv/avneradisasm/internal/cli"
	"github.com/retroenv/avneradisasm/internal/config"
	"github.com/retroenv/avneradisasm/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/tebeka/atexit"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		atexit.Exit(1)
	}

	// informational output would be mixed into a piped listing
	if opts.Batch == "" && config.ListingToPipe(opts.Output) && !opts.Debug {
		opts.Quiet = true
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Error("Finding files failed", log.Err(err))
		atexit.Exit(1)
	}

	var failed bool
	for _, file := range files {
		opts.Input = file
		if len(files) > 1 || opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, disasmOptions); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				atexit.Exit(1)
			}
			logger.Error("Disassembling failed", log.Err(err))
			failed = true
		}
	}

	if failed {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
