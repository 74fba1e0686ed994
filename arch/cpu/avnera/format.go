package avnera

import (
	"fmt"
	"strings"
)

func (Empty) String() string {
	return ""
}

func (o Register) String() string {
	return fmt.Sprintf("r%d", o.N)
}

func (o RegisterPair) String() string {
	return fmt.Sprintf("r%d:r%d", o.N, int(o.N)+1)
}

func (o AbsoluteMem) String() string {
	return fmt.Sprintf("[0x%04x]", o.Addr)
}

func (o IndirectMem) String() string {
	return fmt.Sprintf("[r%d:r%d]", o.N, int(o.N)+1)
}

func (o IndirectMemOffset) String() string {
	return fmt.Sprintf("[r%d:r%d + 0x%x]", o.N, int(o.N)+1, o.Offs)
}

// String renders the branch relative to the address of the next instruction.
// The sign is a prefix, negative offsets are not shown in two's complement.
func (o RelativeBranch) String() string {
	if o.Rel < 0 {
		return fmt.Sprintf("$-0x%x", -int(o.Rel))
	}
	return fmt.Sprintf("$+0x%x", o.Rel)
}

func (o Imm8) String() string {
	return fmt.Sprintf("0x%02x", o.Imm)
}

func (o Imm16) String() string {
	return fmt.Sprintf("0x%04x", o.Imm)
}

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	if o >= opcodeCount {
		return fmt.Sprintf("opcode(%d)", uint8(o))
	}
	return opcodes[o].name
}

// String returns the canonical assembly text of the instruction.
func (i Instruction) String() string {
	if i.opcode >= opcodeCount {
		return i.opcode.String()
	}
	return i.expand(opcodes[i.opcode].template, "")
}

// StringWithTarget returns the assembly text of the instruction with the
// branch destination operand replaced by the given label. Instructions without
// a branch destination render like String.
func (i Instruction) StringWithTarget(label string) string {
	if i.opcode >= opcodeCount {
		return i.opcode.String()
	}
	return i.expand(opcodes[i.opcode].template, label)
}

// expand replaces the operand placeholders of a rendering template.
// {N} is replaced by operand N, {N:x} by the value of the immediate
// operand N as bare hex number. A non empty label replaces the branch
// destination operand.
func (i Instruction) expand(template, label string) string {
	var buf strings.Builder
	buf.Grow(len(template) + 16)

	for {
		start := strings.IndexByte(template, '{')
		if start < 0 {
			buf.WriteString(template)
			return buf.String()
		}
		end := strings.IndexByte(template[start:], '}')
		if end < 0 {
			buf.WriteString(template)
			return buf.String()
		}
		end += start

		buf.WriteString(template[:start])
		i.writePlaceholder(&buf, template[start+1:end], label)
		template = template[end+1:]
	}
}

func (i Instruction) writePlaceholder(buf *strings.Builder, placeholder, label string) {
	index, verb, _ := strings.Cut(placeholder, ":")
	if len(index) != 1 || index[0] < '0' || index[0] > '1' {
		return
	}

	op := i.operands[index[0]-'0']
	if op == nil {
		return
	}
	if label != "" && i.isTarget(op) {
		buf.WriteString(label)
		return
	}

	if verb != "x" {
		buf.WriteString(op.String())
		return
	}

	switch op := op.(type) {
	case Imm8:
		fmt.Fprintf(buf, "%x", op.Imm)
	case Imm16:
		fmt.Fprintf(buf, "%x", op.Imm)
	default:
		buf.WriteString(op.String())
	}
}

// isTarget returns whether the operand is the branch destination of the instruction.
func (i Instruction) isTarget(op Operand) bool {
	if !i.opcode.IsJump() && !i.opcode.IsCall() {
		return false
	}
	switch op.(type) {
	case RelativeBranch, Imm16:
		return true
	default:
		return false
	}
}
