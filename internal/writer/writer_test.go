package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/avneradisasm/internal/program"
	"github.com/retroenv/retrogolib/assert"
)

func testProgram() *program.Program {
	app := program.New(0x1000, 5)
	app.Checksums.Image = 0xdeadbeef

	app.Offsets[0].Data = []byte{0x90, 0x02}
	app.Offsets[0].Code = "jnz label_1004"
	app.Offsets[0].Comment = "$1000  90 02"
	app.Offsets[0].HasAddressComment = true
	app.Offsets[0].SetType(program.CodeOffset)
	app.Offsets[1].SetType(program.CodeOffset)

	app.Offsets[2].Data = []byte{0xb9}
	app.Offsets[2].Code = "ret"
	app.Offsets[2].Comment = "$1002  B9"
	app.Offsets[2].HasAddressComment = true
	app.Offsets[2].SetType(program.CodeOffset)

	app.Offsets[3].Data = []byte{0xaa}
	app.Offsets[3].SetType(program.DataOffset)

	app.Offsets[4].Data = []byte{0x00}
	app.Offsets[4].Label = "label_1004"
	app.Offsets[4].SetType(program.DataOffset | program.JumpDestination)
	return app
}

func TestWriter_Write(t *testing.T) {
	expected := `; Image CRC32 checksum: deadbeef
; Image size: 5 bytes
; Base address: $1000

  jnz label_1004                 ; $1000  90 02
  ret                            ; $1002  B9

  .byte $aa                      ; $1003

label_1004:
  .byte $00                      ; $1004
`

	var buf bytes.Buffer
	w := New(testProgram(), &buf, Options{OffsetComments: true})
	assert.NoError(t, w.Write())
	assert.Equal(t, expected, buf.String())
}

func TestWriter_NoOffsetComments(t *testing.T) {
	app := program.New(0, 2)
	app.Offsets[0].Data = []byte{0x84}
	app.Offsets[0].Code = "push r4"
	app.Offsets[0].SetType(program.CodeOffset)
	app.Offsets[1].Data = []byte{0x8b}
	app.Offsets[1].Code = "pop r3"
	app.Offsets[1].SetType(program.CodeOffset)

	var buf bytes.Buffer
	w := New(app, &buf, Options{})
	assert.NoError(t, w.ProcessOffsets(len(app.Offsets)))
	assert.Equal(t, "  push r4\n  pop r3\n", buf.String())
}

func TestWriter_TrailingZeroBytes(t *testing.T) {
	newProgram := func() *program.Program {
		app := program.New(0, 20)
		for i := range app.Offsets {
			app.Offsets[i].Data = []byte{0x00}
			app.Offsets[i].SetType(program.DataOffset)
		}
		app.Offsets[0].Data = []byte{0x01}
		return app
	}

	var buf bytes.Buffer
	w := New(newProgram(), &buf, Options{OffsetComments: true})
	assert.NoError(t, w.Write())
	output := buf.String()
	assert.True(t, strings.Contains(output, "  .byte $01"))
	assert.False(t, strings.Contains(output, ".byte $00"))
	assert.True(t, strings.HasSuffix(output, "\n; 19 trailing zero bytes omitted\n"))

	buf.Reset()
	w = New(newProgram(), &buf, Options{OffsetComments: true, ZeroBytes: true})
	assert.NoError(t, w.Write())
	output = buf.String()
	assert.False(t, strings.Contains(output, "omitted"))
	assert.True(t, strings.Contains(output, "; $0000\n"))
	assert.True(t, strings.Contains(output, "  .byte $00, $00, $00, $00 "))
	assert.True(t, strings.Contains(output, "; $0010\n"))
}

func TestWriter_BundleDataWrites(t *testing.T) {
	data := make([]byte, 18)
	for i := range data {
		data[i] = byte(i)
	}

	var buf bytes.Buffer
	w := New(program.New(0, 0), &buf, Options{})
	assert.NoError(t, w.BundleDataWrites(data, nil))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  .byte $00, $01, "))
	assert.True(t, strings.HasSuffix(lines[0], "$0e, $0f"))
	assert.Equal(t, "  .byte $10, $11", lines[1])
}

func TestWriter_DataCommentSplitsBundle(t *testing.T) {
	app := program.New(0x2000, 3)
	for i := range app.Offsets {
		app.Offsets[i].Data = []byte{0xff}
		app.Offsets[i].SetType(program.DataOffset)
	}
	app.Offsets[1].Comment = "branch into instruction detected: jmp 0x1234"

	var buf bytes.Buffer
	w := New(app, &buf, Options{})
	assert.NoError(t, w.ProcessOffsets(len(app.Offsets)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "  .byte $ff", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  .byte $ff, $ff"))
	assert.True(t, strings.HasSuffix(lines[1], "; branch into instruction detected: jmp 0x1234"))
}
