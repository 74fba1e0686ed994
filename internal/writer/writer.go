// Package writer implements the assembly listing output.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/avneradisasm/internal/program"
)

const (
	dataBytesPerLine = 16
	directivePrefix  = "  "
)

type lineWriterFunc func(line string, byteCount int) error

// Writer implements the assembly listing output of a program.
type Writer struct {
	app     *program.Program
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	OffsetComments bool
	ZeroBytes      bool // output trailing zero bytes
}

// New creates a new writer.
func New(app *program.Program, writer io.Writer, options Options) *Writer {
	return &Writer{
		app:     app,
		options: options,
		writer:  writer,
	}
}

// Write writes the complete listing.
func (w Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	endIndex := w.app.LastNonZeroByte(w.options.ZeroBytes)
	if err := w.ProcessOffsets(endIndex); err != nil {
		return err
	}

	if omitted := len(w.app.Offsets) - endIndex; omitted > 0 {
		if _, err := fmt.Fprintf(w.writer, "\n; %d trailing zero bytes omitted\n", omitted); err != nil {
			return fmt.Errorf("writing zero bytes comment: %w", err)
		}
	}
	return nil
}

// ProcessOffsets writes all code offsets, labels and their comments until the given end index.
func (w Writer) ProcessOffsets(endIndex int) error {
	var previousLineWasCode bool

	for i := 0; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if err := w.writeLabel(i, offset); err != nil {
			return err
		}

		// print an empty line in case of data after code and vice versa
		if i > 0 && offset.Label == "" && offset.IsType(program.CodeOffset) != previousLineWasCode {
			if _, err := fmt.Fprintln(w.writer); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = offset.IsType(program.CodeOffset)

		adjustment, err := w.writeOffset(i, endIndex, offset)
		if err != nil {
			return err
		}
		i += adjustment
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		if _, err := fmt.Fprintf(buf, "%s.byte ", directivePrefix); err != nil {
			return fmt.Errorf("writing data prefix: %w", err)
		}

		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// WriteCommentHeader writes the CRC32 checksum and base address as comments to the output.
func (w Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; Image CRC32 checksum: %08x\n", w.app.Checksums.Image); err != nil {
		return fmt.Errorf("writing image checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Image size: %d bytes\n", len(w.app.Offsets)); err != nil {
		return fmt.Errorf("writing image size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Base address: $%04x\n\n", w.app.BaseAddress); err != nil {
		return fmt.Errorf("writing base address: %w", err)
	}
	return nil
}

func (w Writer) writeOffset(index, endIndex int, offset program.Offset) (int, error) {
	if offset.IsType(program.CodeOffset) && len(offset.Data) == 0 {
		return 0, nil
	}

	if offset.IsType(program.DataOffset) {
		count, err := w.bundleDataWrites(index, endIndex)
		if err != nil {
			return 0, err
		}
		if count > 0 {
			return count - 1, nil
		}
		return 0, nil
	}

	if err := w.writeCodeLine(offset); err != nil {
		return 0, fmt.Errorf("writing code line: %w", err)
	}
	return len(offset.Data) - 1, nil
}

func (w Writer) writeLabel(index int, offset program.Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(offset program.Offset) error {
	if offset.Comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", offset.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", offset.Code, offset.Comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// bundleDataWrites collects the data bytes starting at the index to create bundled writes of data bytes per line.
func (w Writer) bundleDataWrites(startIndex, endIndex int) (int, error) {
	data := w.getData(startIndex, endIndex)
	if len(data) == 0 {
		return 0, nil
	}

	currentIndex := startIndex
	lineWriter := func(line string, byteCount int) error {
		var err error

		offset := w.app.Offsets[currentIndex]
		if w.options.OffsetComments && !offset.HasAddressComment {
			comment := fmt.Sprintf("$%04X", offset.Address)
			if offset.Comment == "" {
				offset.Comment = comment
			} else {
				offset.Comment = comment + "  " + offset.Comment
			}
		}

		if offset.Comment == "" {
			_, err = fmt.Fprintf(w.writer, "%s\n", line)
		} else {
			_, err = fmt.Fprintf(w.writer, "%-32s ; %s\n", line, offset.Comment)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		currentIndex += byteCount
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return 0, fmt.Errorf("writing data: %w", err)
	}

	return len(data), nil
}

func (w Writer) getData(startIndex, endIndex int) []byte {
	var data []byte

	for i := startIndex; i < endIndex; i++ {
		offset := w.app.Offsets[i]

		if !offset.IsType(program.DataOffset) || len(offset.Data) == 0 {
			break
		}
		// stop at first label, code or commented offset after start index
		if i > startIndex && (offset.IsType(program.CodeOffset) || offset.Label != "" || offset.Comment != "") {
			break
		}

		data = append(data, offset.Data...)
	}

	return data
}
