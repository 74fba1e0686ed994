package avnera

// Architecture constants for generic multi architecture frameworks.
const (
	// AddressWidth is the width of a memory address in bits.
	AddressWidth = 16
	// WordWidth is the width of the smallest addressable unit in bits.
	WordWidth = 8
	// MinInstructionLength is the shortest instruction in bytes.
	MinInstructionLength = 1
	// MaxInstructionLength is the longest instruction in bytes.
	MaxInstructionLength = 3
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 8
)

// Address is a memory address of the architecture.
type Address = uint16

// Word is the smallest addressable unit of the architecture.
type Word = uint8

// Arch describes the architecture to generic multi architecture code.
type Arch struct {
	Name                 string
	AddressWidth         int
	WordWidth            int
	MinInstructionLength int
	MaxInstructionLength int
}

// Avnera is the descriptor of this architecture.
var Avnera = Arch{
	Name:                 "avnera",
	AddressWidth:         AddressWidth,
	WordWidth:            WordWidth,
	MinInstructionLength: MinInstructionLength,
	MaxInstructionLength: MaxInstructionLength,
}
