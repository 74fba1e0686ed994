package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/avneradisasm/internal/program"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	funcNaming  = "func_%04x"
	labelNaming = "label_%04x"
)

// processJumpDestinations names all branch, jump and call destinations and
// updates the instructions referencing them with the generated label name.
func (dis *Disasm) processJumpDestinations() {
	dis.collectDestinations()
	for _, address := range dis.sortedDestinations() {
		// if the offset is marked as code but does not have opcode bytes, the jump destination
		// is inside the second or third byte of an instruction.
		offsetInfo := dis.app.OffsetInfo(address)
		if offsetInfo.IsType(program.CodeOffset) && len(offsetInfo.Data) == 0 {
			dis.handleJumpIntoInstruction(address)
		}
	}

	// instructions converted to data no longer reference their destinations
	dis.collectDestinations()
	for _, address := range dis.sortedDestinations() {
		offsetInfo := dis.app.OffsetInfo(address)

		// a called address is named as function even if it is also branched to
		if dis.callDestinations.Contains(address) {
			offsetInfo.SetType(program.CallDestination)
			offsetInfo.Label = fmt.Sprintf(funcNaming, address)
		} else {
			offsetInfo.SetType(program.JumpDestination)
			offsetInfo.Label = fmt.Sprintf(labelNaming, address)
		}
	}

	dis.updateBranchingInstructions()
}

// collectDestinations collects the destinations inside the image of all
// instructions that are still code.
func (dis *Disasm) collectDestinations() {
	dis.branchDestinations = set.New[uint16]()
	dis.callDestinations = set.New[uint16]()

	for index, inst := range dis.instructions {
		offsetInfo := &dis.app.Offsets[index]
		if !offsetInfo.IsType(program.CodeOffset) {
			continue
		}

		target, ok := inst.BranchTarget(offsetInfo.Address)
		if !ok {
			continue
		}
		if _, inImage := dis.app.Index(target); !inImage {
			continue
		}

		if inst.Opcode().IsCall() {
			dis.callDestinations.Add(target)
		} else {
			dis.branchDestinations.Add(target)
		}
	}
}

// sortedDestinations returns all collected destinations in address order.
func (dis *Disasm) sortedDestinations() []uint16 {
	destinations := make([]uint16, 0, len(dis.branchDestinations)+len(dis.callDestinations))
	for dest := range dis.branchDestinations {
		destinations = append(destinations, dest)
	}
	for dest := range dis.callDestinations {
		if !dis.branchDestinations.Contains(dest) {
			destinations = append(destinations, dest)
		}
	}
	slices.Sort(destinations)
	return destinations
}

// updateBranchingInstructions renders all instructions that reference a
// destination inside the image with the label of the destination.
func (dis *Disasm) updateBranchingInstructions() {
	for index, inst := range dis.instructions {
		offsetInfo := &dis.app.Offsets[index]
		if !offsetInfo.IsType(program.CodeOffset) {
			continue // converted to data
		}

		target, ok := inst.BranchTarget(offsetInfo.Address)
		if !ok {
			continue
		}
		destination := dis.app.OffsetInfo(target)
		if destination == nil || destination.Label == "" {
			continue
		}

		offsetInfo.Code = inst.StringWithTarget(destination.Label)
	}
}

// handleJumpIntoInstruction converts an instruction that has a jump destination label inside
// its second or third opcode bytes into data.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	// look backwards for instruction start
	index, _ := dis.app.Index(address)
	for index > 0 && len(dis.app.Offsets[index].Data) == 0 {
		index--
	}

	offsetInfo := &dis.app.Offsets[index]
	dis.logger.Debug("Branch into instruction detected",
		log.Hex("address", offsetInfo.Address),
		log.Hex("destination", address))

	offsetInfo.Comment = "branch into instruction detected: " + offsetInfo.Code
	offsetInfo.Code = ""
	dis.changeAddressRangeToCodeAsData(index, len(offsetInfo.Data))
}

// changeAddressRangeToCode sets a range of offsets to code types.
func (dis *Disasm) changeAddressRangeToCode(index, length int) {
	for i := index; i < index+length && i < len(dis.app.Offsets); i++ {
		dis.app.Offsets[i].SetType(program.CodeOffset)
	}
}

// changeAddressRangeToCodeAsData converts the offsets of an instruction to
// single data bytes.
func (dis *Disasm) changeAddressRangeToCodeAsData(index, length int) {
	for i := index; i < index+length && i < len(dis.app.Offsets); i++ {
		offsetInfo := &dis.app.Offsets[i]
		offsetInfo.ClearType(program.CodeOffset)
		offsetInfo.SetType(program.DataOffset | program.CodeAsData)
		offsetInfo.Data = dis.data[i : i+1]
	}
}
