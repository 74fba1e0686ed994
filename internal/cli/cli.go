// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/avneradisasm/internal/options"
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	return parseFlags(os.Args[0], os.Args[1:])
}

func parseFlags(name string, arguments []string) (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)
	var disasmOptions options.Disassembler
	readDisasmOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, flag.ErrHelp) {
			msg = ""
		}
		return opts, disasmOptions, &UsageError{flags: flags, msg: msg}
	}

	args := flags.Args()
	if len(args) == 0 && opts.Batch == "" && opts.Input == "" {
		return opts, disasmOptions, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasmOptions, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, disasmOptions, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	disasmOptions = createDisasmOptions(opts)
	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// ShowUsage prints the error message if any and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: avneradisasm [options] <file to disassemble>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to disassemble, please pass the file to disassemble as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions validates the file window options.
func validateOptions(opts options.Program) error {
	if opts.Start < 0 {
		return fmt.Errorf("invalid start offset %d", opts.Start)
	}
	if opts.Length < 0 {
		return fmt.Errorf("invalid length %d", opts.Length)
	}
	return nil
}

// createDisasmOptions creates disassembler options based on program options
func createDisasmOptions(opts options.Program) options.Disassembler {
	disasmOptions := options.NewDisassembler(opts.BaseAddress)
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets
	disasmOptions.ZeroBytes = opts.ZeroBytes
	return disasmOptions
}

// parseAddress parses a 16 bit address given as decimal, 0x prefixed hex or $ prefixed hex number.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "$"); ok {
		s = "0x" + rest
	}

	value, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing address '%s': %w", s, err)
	}
	return uint16(value), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input firmware image")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.bin")
	flags.Func("base", "address the first disassembled byte is loaded at, decimal or hex (default 0)", func(s string) error {
		address, err := parseAddress(s)
		if err != nil {
			return err
		}
		opts.BaseAddress = address
		return nil
	})
	flags.IntVar(&opts.Start, "start", 0, "file offset to start disassembling at")
	flags.IntVar(&opts.Length, "length", 0, "number of bytes to disassemble, 0 disassembles until the end of the file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readDisasmOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the image")
}
