package avnera

// Instruction is a decoded instruction. Instructions specify at most one
// explicit register or register pair and may also specify an immediate or a
// memory address, resulting in zero, one or two operands. Operands are stored
// in encoding order.
type Instruction struct {
	opcode       Opcode
	operands     [2]Operand
	operandCount uint8
	length       uint8
}

func newInstruction0(opcode Opcode) Instruction {
	return Instruction{
		opcode:   opcode,
		operands: [2]Operand{Empty{}, Empty{}},
	}
}

func newInstruction1(opcode Opcode, operand Operand) Instruction {
	return Instruction{
		opcode:       opcode,
		operands:     [2]Operand{operand, Empty{}},
		operandCount: 1,
	}
}

func newInstruction2(opcode Opcode, first, second Operand) Instruction {
	return Instruction{
		opcode:       opcode,
		operands:     [2]Operand{first, second},
		operandCount: 2,
	}
}

// Opcode returns the opcode of the instruction.
func (i Instruction) Opcode() Opcode {
	return i.opcode
}

// Len returns the number of bytes the instruction was decoded from.
func (i Instruction) Len() int {
	return int(i.length)
}

// OperandCount returns the number of operands of the instruction.
func (i Instruction) OperandCount() int {
	return int(i.operandCount)
}

// Operand returns the operand at the given index and whether it exists.
func (i Instruction) Operand(index int) (Operand, bool) {
	if index < 0 || index >= int(i.operandCount) {
		return nil, false
	}
	return i.operands[index], true
}

// Operands returns all operands of the instruction.
func (i Instruction) Operands() []Operand {
	return i.operands[:i.operandCount]
}

// BranchTarget returns the destination of a branch, jump or call instruction
// located at the given address.
func (i Instruction) BranchTarget(address uint16) (uint16, bool) {
	if !i.opcode.IsJump() && !i.opcode.IsCall() {
		return 0, false
	}

	for _, op := range i.Operands() {
		switch op := op.(type) {
		case RelativeBranch:
			next := address + uint16(i.length)
			return next + uint16(int16(op.Rel)), true
		case Imm16:
			return op.Imm, true
		}
	}
	return 0, false
}
