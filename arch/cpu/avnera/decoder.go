package avnera

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when the input ends before the instruction is complete.
	ErrTruncated = errors.New("truncated instruction")
	// ErrInvalidOpcode is returned for opcode bytes that do not encode a known instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
)

const (
	familyMask  = 0xf8
	lowBitsMask = 0x07
)

// familyDecoder decodes all instructions of one opcode family. The opcode
// byte has already been consumed from the reader.
type familyDecoder func(opcode byte, r Reader) (Instruction, error)

// families maps the top 5 bits of the opcode byte to the family decoder,
// nil entries are unpopulated families.
var families = [256 >> 3]familyDecoder{
	0x00 >> 3: registerForm(Inc),
	0x08 >> 3: registerForm(Adc),
	0x10 >> 3: registerForm(MovRegToAcc),
	0x18 >> 3: registerForm(Or),
	0x20 >> 3: registerForm(And),
	0x28 >> 3: registerForm(Xor),
	0x30 >> 3: registerForm(Rcl),
	0x38 >> 3: registerForm(Rcr),
	0x40 >> 3: registerForm(Dec),
	0x48 >> 3: registerForm(Sbc),
	0x50 >> 3: registerForm(Add),
	0x58 >> 3: flagOrUnknown(0x59, Scf, Op5xHi),
	0x60 >> 3: decodeBit,
	0x68 >> 3: flagOrUnknown(0x69, Ccf, Op6xHi),
	0x70 >> 3: registerForm(MovAccToReg),
	0x78 >> 3: registerForm(Cmp),
	0x80 >> 3: registerForm(Push),
	0x88 >> 3: registerForm(Pop),
	0x90 >> 3: conditionalBranch(Jnz, Jnc, JccLowGroup),
	0x98 >> 3: conditionalBranch(Jz, Jc, JccHighGroup),
	0xb8 >> 3: decodeControl,
	0xc0 >> 3: decodeIncW,
	0xc8 >> 3: registerAbsolute(StoreAbs16),
	0xd0 >> 3: indirect(StoreIndirect),
	0xd8 >> 3: indirectOffset(StoreIndirectOffset),
	0xe0 >> 3: decodeLoadImm8,
	0xe8 >> 3: registerAbsolute(LoadAbs16),
	0xf0 >> 3: indirect(LoadIndirect),
	0xf8 >> 3: indirectOffset(LoadIndirectOffset),
}

// DecodeSlice decodes a single instruction from the start of the given data.
func DecodeSlice(data []byte) (Instruction, error) {
	return Decode(NewSliceReader(data))
}

// Decode decodes the next instruction from the reader. On error the reader
// position is undefined and no instruction is returned.
func Decode(r Reader) (Instruction, error) {
	r.Mark()
	opcode, err := r.Next()
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: reading opcode: %w", ErrTruncated, err)
	}

	decode := families[(opcode&familyMask)>>3]
	if decode == nil {
		return Instruction{}, fmt.Errorf("%w: %02x", ErrInvalidOpcode, opcode)
	}

	inst, err := decode(opcode, r)
	if err != nil {
		return Instruction{}, err
	}

	inst.length = uint8(r.Offset())
	return inst, nil
}

func lowBits(opcode byte) uint8 {
	return opcode & lowBitsMask
}

func registerForm(op Opcode) familyDecoder {
	return func(opcode byte, _ Reader) (Instruction, error) {
		return newInstruction1(op, Register{N: lowBits(opcode)}), nil
	}
}

// flagOrUnknown handles a family where a single byte value is a zero operand
// flag instruction and all other values are a not yet understood opcode.
func flagOrUnknown(exact byte, flag, unknown Opcode) familyDecoder {
	return func(opcode byte, _ Reader) (Instruction, error) {
		if opcode == exact {
			return newInstruction0(flag), nil
		}
		return newInstruction1(unknown, Imm8{Imm: lowBits(opcode)}), nil
	}
}

func decodeBit(opcode byte, _ Reader) (Instruction, error) {
	return newInstruction1(Bit, Imm8{Imm: lowBits(opcode)}), nil
}

// conditionalBranch handles a branch family. The low bits select the
// condition, 0 and 1 are known conditions, all others keep the raw selector
// as first operand.
func conditionalBranch(cond0, cond1, group Opcode) familyDecoder {
	return func(opcode byte, r Reader) (Instruction, error) {
		rel, err := readByte(opcode, r)
		if err != nil {
			return Instruction{}, err
		}
		target := RelativeBranch{Rel: int8(rel)}

		switch low := lowBits(opcode); low {
		case 0:
			return newInstruction1(cond0, target), nil
		case 1:
			return newInstruction1(cond1, target), nil
		default:
			return newInstruction2(group, Imm8{Imm: low}, target), nil
		}
	}
}

func decodeControl(opcode byte, r Reader) (Instruction, error) {
	switch opcode {
	case 0xb9:
		return newInstruction0(Ret), nil
	case 0xba:
		return newInstruction0(Iret), nil
	case 0xbc, 0xbf:
		addr, err := readWord(opcode, r)
		if err != nil {
			return Instruction{}, err
		}
		op := Jmp
		if opcode == 0xbf {
			op = Call
		}
		return newInstruction1(op, Imm16{Imm: addr}), nil
	default:
		return Instruction{}, fmt.Errorf("%w: %02x", ErrInvalidOpcode, opcode)
	}
}

func decodeIncW(opcode byte, _ Reader) (Instruction, error) {
	return newInstruction1(IncW, RegisterPair{N: lowBits(opcode)}), nil
}

func registerAbsolute(op Opcode) familyDecoder {
	return func(opcode byte, r Reader) (Instruction, error) {
		addr, err := readWord(opcode, r)
		if err != nil {
			return Instruction{}, err
		}
		return newInstruction2(op, Register{N: lowBits(opcode)}, AbsoluteMem{Addr: addr}), nil
	}
}

func indirect(op Opcode) familyDecoder {
	return func(opcode byte, _ Reader) (Instruction, error) {
		return newInstruction1(op, IndirectMem{N: lowBits(opcode)}), nil
	}
}

func indirectOffset(op Opcode) familyDecoder {
	return func(opcode byte, r Reader) (Instruction, error) {
		offs, err := readByte(opcode, r)
		if err != nil {
			return Instruction{}, err
		}
		return newInstruction1(op, IndirectMemOffset{N: lowBits(opcode), Offs: offs}), nil
	}
}

func decodeLoadImm8(opcode byte, r Reader) (Instruction, error) {
	imm, err := readByte(opcode, r)
	if err != nil {
		return Instruction{}, err
	}
	return newInstruction2(LoadImm8, Register{N: lowBits(opcode)}, Imm8{Imm: imm}), nil
}

// readByte reads an operand byte of the instruction with the given opcode.
func readByte(opcode byte, r Reader) (byte, error) {
	b, err := r.Next()
	if err != nil {
		return 0, fmt.Errorf("%w: reading operand of opcode %02x: %w", ErrTruncated, opcode, err)
	}
	return b, nil
}

// readWord reads a little-endian 16-bit operand of the instruction with the given opcode.
func readWord(opcode byte, r Reader) (uint16, error) {
	low, err := readByte(opcode, r)
	if err != nil {
		return 0, err
	}
	high, err := readByte(opcode, r)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}
