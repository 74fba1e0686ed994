package avnera

import "fmt"

// Operand is an operand of an instruction. The set of implementations is
// closed: Empty, Register, RegisterPair, AbsoluteMem, IndirectMem,
// IndirectMemOffset, RelativeBranch, Imm8 and Imm16.
type Operand interface {
	fmt.Stringer

	isOperand()
}

// Empty fills an unused operand slot. Instruction.Operand never returns it.
type Empty struct{}

// Register is a direct register reference rN.
type Register struct {
	N uint8
}

// RegisterPair is the 16-bit register pair rN:rN+1.
// Programs seem to only use even N, this is not enforced.
type RegisterPair struct {
	N uint8
}

// AbsoluteMem is a memory access at a fixed 16-bit address.
type AbsoluteMem struct {
	Addr uint16
}

// IndirectMem is a memory access through the register pair [rN:rN+1].
type IndirectMem struct {
	N uint8
}

// IndirectMemOffset is a memory access through the register pair
// [rN:rN+1 + Offs] with an unsigned 8-bit offset.
type IndirectMemOffset struct {
	N    uint8
	Offs uint8
}

// RelativeBranch is a branch by Rel bytes relative to the address of the
// next instruction.
type RelativeBranch struct {
	Rel int8
}

// Imm8 is an 8-bit immediate.
type Imm8 struct {
	Imm uint8
}

// Imm16 is a 16-bit immediate, usually the target of jmp or call.
type Imm16 struct {
	Imm uint16
}

func (Empty) isOperand()             {}
func (Register) isOperand()          {}
func (RegisterPair) isOperand()      {}
func (AbsoluteMem) isOperand()       {}
func (IndirectMem) isOperand()       {}
func (IndirectMemOffset) isOperand() {}
func (RelativeBranch) isOperand()    {}
func (Imm8) isOperand()              {}
func (Imm16) isOperand()             {}
