// Package program represents a disassembled firmware image.
package program

import (
	"fmt"
	"strings"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Address uint16
	Data    []byte // data byte or all opcode bytes that are part of the instruction

	Type OffsetType

	Label   string // name of label or subroutine if identified as a jump destination
	Code    string // asm output of this instruction
	Comment string

	HasAddressComment bool
}

// HexCodeComment returns the data bytes of the offset as hex values.
func (o *Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}

	for i, b := range o.Data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		if _, err := fmt.Fprintf(buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}

	return buf.String(), nil
}

// Checksums contains the CRC32 checksum to identify the image.
type Checksums struct {
	Image uint32
}

// Program defines a firmware image that contains code or data.
type Program struct {
	BaseAddress uint16
	Checksums   Checksums

	// one offset per image byte, the continuation bytes of an
	// instruction have no data
	Offsets []Offset
}

// New creates a new program for an image of the given size loaded at the base address.
func New(baseAddress uint16, size int) *Program {
	app := &Program{
		BaseAddress: baseAddress,
		Offsets:     make([]Offset, size),
	}
	for i := range app.Offsets {
		app.Offsets[i].Address = baseAddress + uint16(i)
	}
	return app
}

// Index returns the offset index of the address and whether the address is
// part of the image.
func (p *Program) Index(address uint16) (int, bool) {
	index := int(address - p.BaseAddress)
	if index >= len(p.Offsets) {
		return 0, false
	}
	return index, true
}

// OffsetInfo returns the offset for the given address or nil if the address
// is not part of the image.
func (p *Program) OffsetInfo(address uint16) *Offset {
	index, ok := p.Index(address)
	if !ok {
		return nil
	}
	return &p.Offsets[index]
}

// LastNonZeroByte searches for the last offset that is not a zero data byte
// and returns the index after it. All offsets are returned if zero bytes are
// kept.
func (p *Program) LastNonZeroByte(zeroBytes bool) int {
	if zeroBytes {
		return len(p.Offsets)
	}

	for i := len(p.Offsets) - 1; i >= 0; i-- {
		offset := p.Offsets[i]
		if offset.Label != "" || !offset.IsType(DataOffset) {
			return i + 1
		}
		if len(offset.Data) > 0 && offset.Data[0] != 0 {
			return i + 1
		}
	}

	return 0
}
