// Package loader handles firmware image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/avneradisasm/internal/options"
)

var (
	// ErrStartOutOfRange is returned when the start offset is outside of the image.
	ErrStartOutOfRange = errors.New("start offset out of range")
	// ErrEmptyImage is returned when the window to disassemble contains no bytes.
	ErrEmptyImage = errors.New("empty image")
)

// Loader handles loading firmware images from disk.
type Loader struct{}

// New creates a new firmware image loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the input file of the options and returns the bytes of the
// configured window of it.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	return l.LoadFromBytes(data, opts.Start, opts.Length)
}

// LoadFromBytes returns the window of the given data that starts at start and
// contains length bytes. A length of 0 selects all bytes until the end of the
// data, a window exceeding the data is cut at its end.
func (l *Loader) LoadFromBytes(data []byte, start, length int) ([]byte, error) {
	if start < 0 || start > len(data) {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrStartOutOfRange, start, len(data))
	}

	end := len(data)
	if length > 0 {
		end = min(start+length, len(data))
	}

	window := data[start:end]
	if len(window) == 0 {
		return nil, ErrEmptyImage
	}
	return window, nil
}
