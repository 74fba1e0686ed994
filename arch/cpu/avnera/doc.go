// Package avnera provides a decoder for the undocumented 8-bit instruction set
// found in Avnera wireless audio microcontrollers.
//
// # Architecture Overview
//
// The instruction set has no public documentation. The encoding implemented
// here was inferred from firmware dumps:
//   - 8 general purpose 8-bit registers r0-r7, r0 acts as accumulator
//   - register pairs rN:rN+1 form 16-bit pointers
//   - 16-bit address space, instructions are 1 to 3 bytes long
//   - multi-byte immediates and addresses are little-endian
//
// # Opcode Families
//
// The top 5 bits of the first byte select an opcode family, the bottom 3 bits
// usually select a register. A few families carve out exact byte values for
// unrelated opcodes:
//
//	0x59       scf        (rest of 0x58-0x5f is op5xhi)
//	0x69       ccf        (rest of 0x68-0x6f is op6xhi)
//	0xb9       ret
//	0xba       iret
//	0xbc nn nn jmp
//	0xbf nn nn call
//
// # Usage Example
//
//	inst, err := avnera.DecodeSlice([]byte{0xbc, 0x8a, 0xd9})
//	if err != nil {
//		return fmt.Errorf("decoding instruction: %w", err)
//	}
//	fmt.Println(inst) // jmp 0xd98a
//
// Decoding of a longer buffer is done by reusing a SliceReader:
//
//	r := avnera.NewSliceReader(data)
//	for r.Remaining() > 0 {
//		inst, err := avnera.Decode(r)
//		...
//	}
//
// # Limitations
//
// Flag effects, stack location and interrupt behavior are unknown and not
// modeled. Register indices are not range checked.
package avnera
