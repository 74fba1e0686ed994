// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input firmware image"`
	Output string `flag:"o" usage:"output .asm file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.bin)"`
}

// Flags contains behavior options.
type Flags struct {
	BaseAddress uint16 `flag:"base" usage:"address the first disassembled byte is loaded at"`
	Start       int    `flag:"start" usage:"file offset to start disassembling at"`
	Length      int    `flag:"length" usage:"number of bytes to disassemble (default: until end of file)"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes"`
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the disassembler.
type Disassembler struct {
	BaseAddress uint16 // address of the first byte of the image

	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler(baseAddress uint16) Disassembler {
	return Disassembler{
		BaseAddress: baseAddress,

		HexComments:    true,
		OffsetComments: true,
	}
}
