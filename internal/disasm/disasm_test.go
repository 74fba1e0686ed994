package disasm_test

import (
	"context"
	"hash/crc32"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/retroenv/avneradisasm/internal/config"
	"github.com/retroenv/avneradisasm/internal/disasm"
	"github.com/retroenv/avneradisasm/internal/options"
	"github.com/retroenv/avneradisasm/internal/program"
)

var _ = Describe("Disasm", func() {
	var opts options.Disassembler

	process := func(data []byte) *program.Program {
		dis, err := disasm.New(config.CreateLogger(false, true), data, opts)
		Expect(err).NotTo(HaveOccurred())

		app, err := dis.Process(context.Background())
		Expect(err).NotTo(HaveOccurred())
		return app
	}

	BeforeEach(func() {
		opts = options.NewDisassembler(0x1000)
	})

	Context("linear sweep", func() {
		It("should decode instructions and keep invalid bytes as data", func() {
			app := process([]byte{0x90, 0x02, 0xb9, 0xaa, 0xb9})

			Expect(app.Offsets).To(HaveLen(5))
			Expect(app.Offsets[0].IsType(program.CodeOffset)).To(BeTrue())
			Expect(app.Offsets[0].Data).To(Equal([]byte{0x90, 0x02}))
			Expect(app.Offsets[1].IsType(program.CodeOffset)).To(BeTrue())
			Expect(app.Offsets[1].Data).To(BeEmpty())
			Expect(app.Offsets[2].Code).To(Equal("ret"))

			Expect(app.Offsets[3].IsType(program.DataOffset)).To(BeTrue())
			Expect(app.Offsets[3].Data).To(Equal([]byte{0xaa}))
			Expect(app.Offsets[3].Code).To(BeEmpty())
		})

		It("should keep a truncated instruction as data and resume after its first byte", func() {
			app := process([]byte{0xb9, 0xe8, 0x34})

			Expect(app.Offsets[0].Code).To(Equal("ret"))
			Expect(app.Offsets[1].IsType(program.DataOffset)).To(BeTrue())
			Expect(app.Offsets[1].Data).To(Equal([]byte{0xe8}))
			Expect(app.Offsets[2].Code).To(Equal("rcl r4"))
		})

		It("should resume decoding after an invalid byte", func() {
			app := process([]byte{0xbd, 0xe4, 0x0e})

			Expect(app.Offsets[0].IsType(program.DataOffset)).To(BeTrue())
			Expect(app.Offsets[1].Code).To(Equal("r4 <- 0x0e"))
		})

		It("should calculate the image checksum", func() {
			data := []byte{0xc9, 0xf2, 0xed, 0xb9}
			app := process(data)

			Expect(app.Checksums.Image).To(Equal(crc32.ChecksumIEEE(data)))
			Expect(app.BaseAddress).To(Equal(uint16(0x1000)))
		})
	})

	Context("comments", func() {
		It("should add address and hex comments", func() {
			app := process([]byte{0xe4, 0x0e})
			Expect(app.Offsets[0].Comment).To(Equal("$1000  E4 0E"))
			Expect(app.Offsets[0].HasAddressComment).To(BeTrue())
		})

		It("should omit disabled comments", func() {
			opts.HexComments = false
			app := process([]byte{0xe4, 0x0e})
			Expect(app.Offsets[0].Comment).To(Equal("$1000"))

			opts.OffsetComments = false
			app = process([]byte{0xe4, 0x0e})
			Expect(app.Offsets[0].Comment).To(BeEmpty())
		})
	})

	Context("labels", func() {
		It("should name branch destinations", func() {
			app := process([]byte{0x90, 0x02, 0xb9, 0xaa, 0xb9})

			Expect(app.Offsets[4].Label).To(Equal("label_1004"))
			Expect(app.Offsets[4].IsType(program.JumpDestination)).To(BeTrue())
			Expect(app.Offsets[0].Code).To(Equal("jnz label_1004"))
		})

		It("should name call destinations as functions", func() {
			opts.BaseAddress = 0x2000
			app := process([]byte{0xbf, 0x04, 0x20, 0xb9, 0xb9})

			Expect(app.Offsets[4].Label).To(Equal("func_2004"))
			Expect(app.Offsets[4].IsType(program.CallDestination)).To(BeTrue())
			Expect(app.Offsets[0].Code).To(Equal("call func_2004"))
		})

		It("should prefer the function name for called branch destinations", func() {
			opts.BaseAddress = 0
			app := process([]byte{0xbf, 0x05, 0x00, 0x98, 0x00, 0xb9})

			Expect(app.Offsets[5].Label).To(Equal("func_0005"))
			Expect(app.Offsets[3].Code).To(Equal("jz func_0005"))
		})

		It("should keep destinations outside of the image unnamed", func() {
			app := process([]byte{0xbc, 0x00, 0x80})

			Expect(app.Offsets[0].Code).To(Equal("jmp 0x8000"))
			for _, offset := range app.Offsets {
				Expect(offset.Label).To(BeEmpty())
			}
		})

		It("should convert instructions that are branched into to data", func() {
			opts.BaseAddress = 0
			app := process([]byte{0x90, 0x01, 0xbc, 0x34, 0x12})

			Expect(app.Offsets[0].Code).To(Equal("jnz label_0003"))
			Expect(app.Offsets[3].Label).To(Equal("label_0003"))

			for i := 2; i < 5; i++ {
				Expect(app.Offsets[i].IsType(program.CodeOffset)).To(BeFalse())
				Expect(app.Offsets[i].IsType(program.DataOffset | program.CodeAsData)).To(BeTrue())
				Expect(app.Offsets[i].Data).To(HaveLen(1))
			}
			Expect(app.Offsets[2].Comment).To(Equal("branch into instruction detected: jmp 0x1234"))
			Expect(app.Offsets[2].Code).To(BeEmpty())
		})

		It("should not name destinations of instructions converted to data", func() {
			opts.BaseAddress = 0
			app := process([]byte{0x90, 0x01, 0xbc, 0x05, 0x00, 0xb9})

			Expect(app.Offsets[3].Label).To(Equal("label_0003"))
			Expect(app.Offsets[2].IsType(program.CodeAsData)).To(BeTrue())
			Expect(app.Offsets[5].Label).To(BeEmpty())
			Expect(app.Offsets[5].IsType(program.JumpDestination)).To(BeFalse())
			Expect(app.Offsets[5].Code).To(Equal("ret"))
		})

		It("should keep a destination that is also referenced by code", func() {
			opts.BaseAddress = 0
			app := process([]byte{0x90, 0x01, 0xbc, 0x07, 0x00, 0x90, 0x00, 0xb9})

			Expect(app.Offsets[2].IsType(program.CodeAsData)).To(BeTrue())
			Expect(app.Offsets[7].Label).To(Equal("label_0007"))
			Expect(app.Offsets[5].Code).To(Equal("jnz label_0007"))
		})

		It("should resolve backward branches", func() {
			opts.BaseAddress = 0x0100
			app := process([]byte{0x05, 0x98, 0xfd})

			Expect(app.Offsets[0].Label).To(Equal("label_0100"))
			Expect(app.Offsets[1].Code).To(Equal("jz label_0100"))
		})
	})

	Context("trailing zero bytes", func() {
		It("should keep trailing zero bytes as data", func() {
			app := process([]byte{0xb9, 0x00, 0x00, 0x00})

			Expect(app.Offsets[0].Code).To(Equal("ret"))
			for i := 1; i < 4; i++ {
				Expect(app.Offsets[i].IsType(program.DataOffset)).To(BeTrue())
				Expect(app.Offsets[i].Code).To(BeEmpty())
			}
			Expect(app.LastNonZeroByte(false)).To(Equal(1))
		})

		It("should decode an instruction whose operands reach into the padding", func() {
			app := process([]byte{0xbf, 0x00, 0x00, 0x00, 0x00})

			Expect(app.Offsets[0].Data).To(Equal([]byte{0xbf, 0x00, 0x00}))
			Expect(app.Offsets[3].IsType(program.DataOffset)).To(BeTrue())
			Expect(app.Offsets[4].IsType(program.DataOffset)).To(BeTrue())
			Expect(app.LastNonZeroByte(false)).To(Equal(3))
		})

		It("should decode zero bytes if they are part of the output", func() {
			opts.ZeroBytes = true
			app := process([]byte{0xb9, 0x00, 0x00})

			Expect(app.Offsets[1].Code).To(Equal("inc r0"))
			Expect(app.Offsets[2].Code).To(Equal("inc r0"))
		})
	})

	Context("errors", func() {
		It("should stop on cancelled context", func() {
			dis, err := disasm.New(config.CreateLogger(false, true), []byte{0xb9, 0xb9}, opts)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err = dis.Process(ctx)
			Expect(err).To(MatchError(context.Canceled))
		})

		It("should reject images exceeding the address space", func() {
			_, err := disasm.New(config.CreateLogger(false, true), make([]byte, 0x10001), opts)
			Expect(err).To(MatchError(disasm.ErrImageTooLarge))
		})
	})
})
