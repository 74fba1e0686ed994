// Package disasm implements a linear sweep disassembler for Avnera firmware images.
package disasm

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/retroenv/avneradisasm/arch/cpu/avnera"
	"github.com/retroenv/avneradisasm/internal/options"
	"github.com/retroenv/avneradisasm/internal/program"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ErrImageTooLarge is returned for images that exceed the 16 bit address space.
var ErrImageTooLarge = errors.New("image exceeds address space")

const maxImageSize = 1 << avnera.AddressWidth

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	data []byte
	app  *program.Program

	instructions map[int]avnera.Instruction // decoded instructions by offset index

	branchDestinations set.Set[uint16] // set of all addresses that are branched or jumped to
	callDestinations   set.Set[uint16] // set of all addresses that are called
}

// New creates a new disassembler for the given image.
func New(logger *log.Logger, data []byte, options options.Disassembler) (*Disasm, error) {
	if len(data) > maxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	dis := &Disasm{
		logger:             logger,
		options:            options,
		data:               data,
		app:                program.New(options.BaseAddress, len(data)),
		instructions:       map[int]avnera.Instruction{},
		branchDestinations: set.New[uint16](),
		callDestinations:   set.New[uint16](),
	}

	dis.logger.Debug("Base address",
		log.Hex("address", options.BaseAddress))

	return dis, nil
}

// Process disassembles the image.
func (dis *Disasm) Process(ctx context.Context) (*program.Program, error) {
	if err := dis.sweep(ctx); err != nil {
		return nil, err
	}

	dis.processJumpDestinations()

	if err := dis.convertToProgram(); err != nil {
		return nil, err
	}

	dis.logger.Debug("Disassembly finished",
		log.Int("instructions", len(dis.instructions)),
		log.Int("labels", len(dis.branchDestinations)+len(dis.callDestinations)))

	return dis.app, nil
}

// sweep decodes the image from start to end. Bytes that do not decode to an
// instruction are marked as data and decoding resumes at the next byte.
// Trailing zero bytes are kept as data unless they are part of the output.
func (dis *Disasm) sweep(ctx context.Context) error {
	r := avnera.NewSliceReader(dis.data)
	end := dis.codeEnd()

	for r.Pos() < end {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sweeping at index %d: %w", r.Pos(), err)
		}

		index := r.Pos()
		address := dis.options.BaseAddress + uint16(index)

		inst, err := avnera.Decode(r)
		if err != nil {
			dis.logger.Debug("Decoding instruction failed",
				log.Hex("address", address),
				log.Hex("byte", dis.data[index]),
				log.Err(err))

			dis.setData(index)
			r.Seek(index + 1)
			continue
		}

		dis.setCode(index, address, inst)
	}

	if r.Pos() < len(dis.data) {
		dis.logger.Debug("Keeping trailing zero bytes as data",
			log.Int("count", len(dis.data)-r.Pos()))
	}
	for index := r.Pos(); index < len(dis.data); index++ {
		dis.setData(index)
	}

	return nil
}

// codeEnd returns the index after the last non zero byte of the image. The
// zero byte decodes as an instruction, padding would otherwise be listed as
// code. All bytes are decoded if zero bytes are part of the output.
func (dis *Disasm) codeEnd() int {
	end := len(dis.data)
	if dis.options.ZeroBytes {
		return end
	}
	for end > 0 && dis.data[end-1] == 0 {
		end--
	}
	return end
}

func (dis *Disasm) setData(index int) {
	offsetInfo := &dis.app.Offsets[index]
	offsetInfo.Data = dis.data[index : index+1]
	offsetInfo.SetType(program.DataOffset)
}

func (dis *Disasm) setCode(index int, address uint16, inst avnera.Instruction) {
	offsetInfo := &dis.app.Offsets[index]
	offsetInfo.Data = dis.data[index : index+inst.Len()]
	offsetInfo.Code = inst.String()
	dis.changeAddressRangeToCode(index, inst.Len())
	dis.instructions[index] = inst

	target, ok := inst.BranchTarget(address)
	if !ok {
		return
	}
	if _, inImage := dis.app.Index(target); !inImage {
		dis.logger.Debug("Branch destination outside of image",
			log.Hex("address", address),
			log.Hex("destination", target))
	}
}

// convertToProgram sets the comments of all code offsets and calculates the
// image checksum. Data comments are completed by the writer.
func (dis *Disasm) convertToProgram() error {
	for i := range dis.app.Offsets {
		offsetInfo := &dis.app.Offsets[i]
		if !offsetInfo.IsType(program.CodeOffset) || len(offsetInfo.Data) == 0 {
			continue
		}
		if err := dis.setComment(offsetInfo); err != nil {
			return fmt.Errorf("setting comment at address %04x: %w", offsetInfo.Address, err)
		}
	}

	crc32q := crc32.MakeTable(crc32.IEEE)
	dis.app.Checksums.Image = crc32.Checksum(dis.data, crc32q)
	return nil
}

// setComment generates and sets the comment of an offset based on the
// disassembler options.
func (dis *Disasm) setComment(offsetInfo *program.Offset) error {
	var comments []string

	if dis.options.OffsetComments {
		offsetInfo.HasAddressComment = true
		comments = []string{fmt.Sprintf("$%04X", offsetInfo.Address)}
	}

	if dis.options.HexComments {
		hexComment, err := offsetInfo.HexCodeComment()
		if err != nil {
			return fmt.Errorf("generating hex comment: %w", err)
		}
		comments = append(comments, hexComment)
	}

	if offsetInfo.Comment != "" {
		comments = append(comments, offsetInfo.Comment)
	}
	offsetInfo.Comment = strings.Join(comments, "  ")
	return nil
}
