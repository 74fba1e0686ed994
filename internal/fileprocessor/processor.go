// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/avneradisasm/internal/options"
	"github.com/retroenv/avneradisasm/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/tebeka/atexit"
)

// ErrNoFiles is returned when a batch pattern does not match any file.
var ErrNoFiles = errors.New("no files to process")

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	writer, cleanup, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	pipe := pipeline.New(logger)
	_, err = pipe.Execute(ctx, opts, disasmOptions, writer)
	if cerr := cleanup(err != nil); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("processing file %s: %w", opts.Input, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch == "" {
		return []string{opts.Input}, nil
	}

	matches, err := filepath.Glob(opts.Batch)
	if err != nil {
		return nil, fmt.Errorf("globbing batch pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern '%s'", ErrNoFiles, opts.Batch)
	}
	return matches, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

// createWriter returns the writer for the listing and a cleanup function that
// closes it. The cleanup removes a partially written output file if the
// processing failed. The output file is also removed if the program exits
// through atexit before the cleanup is called.
func createWriter(opts options.Program) (io.Writer, func(failed bool) error, error) {
	if opts.Output == "" {
		return os.Stdout, func(bool) error { return nil }, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}

	handler := atexit.Register(func() {
		_ = file.Close()
		_ = os.Remove(opts.Output)
	})

	cleanup := func(failed bool) error {
		_ = handler.Cancel()

		closeErr := file.Close()
		if failed {
			_ = os.Remove(opts.Output)
			return nil
		}
		if closeErr != nil {
			return fmt.Errorf("closing output file %s: %w", opts.Output, closeErr)
		}
		return nil
	}

	return file, cleanup, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("avneradisasm", log.String("version", buildinfo.Version(version, commit, date)))
}
