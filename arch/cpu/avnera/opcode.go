package avnera

// Opcode is the operation of an instruction. Instruction behavior is mostly
// unknown, the names are best guesses from firmware analysis.
type Opcode uint8

// Opcodes ordered by their encoding family.
const (
	Inc                 Opcode = iota // increment rN
	Adc                               // add rN with carry into r0
	MovRegToAcc                       // move rN to r0
	Or                                // bitwise or rN into r0
	And                               // bitwise and rN into r0
	Xor                               // bitwise xor rN into r0
	Rcl                               // rotate rN left through carry
	Rcr                               // rotate rN right through carry
	Dec                               // decrement rN
	Sbc                               // subtract rN with carry from r0
	Add                               // add rN into r0
	Op5xHi                            // unknown, 0x58-0x5f except 0x59
	Scf                               // set carry flag
	Bit                               // toggle bit n in r0
	Op6xHi                            // unknown, 0x68-0x6f except 0x69
	Ccf                               // clear carry flag
	MovAccToReg                       // move r0 to rN
	Cmp                               // compare r0 and rN
	Push                              // push rN
	Pop                               // pop rN
	Jnz                               // branch if z is clear
	Jnc                               // branch if c is clear
	JccLowGroup                       // branch on unknown condition, 0x92-0x97
	Jz                                // branch if z is set
	Jc                                // branch if c is set
	JccHighGroup                      // branch on unknown condition, 0x9a-0x9f
	Ret                               // return
	Iret                              // return from interrupt
	Jmp                               // jump to absolute address
	Call                              // call absolute address
	IncW                              // increment rN:rN+1
	StoreAbs16                        // store rN to absolute address
	StoreIndirect                     // store r0 to [rN:rN+1]
	StoreIndirectOffset               // store r0 to [rN:rN+1 + offs]
	LoadImm8                          // load immediate into rN
	LoadAbs16                         // load rN from absolute address
	LoadIndirect                      // load r0 from [rN:rN+1]
	LoadIndirectOffset                // load r0 from [rN:rN+1 + offs]

	opcodeCount
)

// opcode flags.
const (
	flagJump = 1 << iota
	flagCall
	flagReturn
	flagConditional
)

// opcodeInfo contains the static properties of an opcode.
type opcodeInfo struct {
	name     string
	arity    uint8
	template string // rendering template, see format.go
	flags    uint8
}

var opcodes = [opcodeCount]opcodeInfo{
	Inc:                 {name: "inc", arity: 1, template: "inc {0}"},
	Adc:                 {name: "adc", arity: 1, template: "adc r0, {0}"},
	MovRegToAcc:         {name: "movregtoacc", arity: 1, template: "r0 <- {0}"},
	Or:                  {name: "or", arity: 1, template: "r0 |= {0}"},
	And:                 {name: "and", arity: 1, template: "r0 &= {0}"},
	Xor:                 {name: "xor", arity: 1, template: "r0 ^= {0}"},
	Rcl:                 {name: "rcl", arity: 1, template: "rcl {0}"},
	Rcr:                 {name: "rcr", arity: 1, template: "rcr {0}"},
	Dec:                 {name: "dec", arity: 1, template: "dec {0}"},
	Sbc:                 {name: "sbc", arity: 1, template: "sbc r0, {0}"},
	Add:                 {name: "add", arity: 1, template: "r0 += {0}"},
	Op5xHi:              {name: "op5xhi", arity: 1, template: "op5xhi {0}"},
	Scf:                 {name: "scf", arity: 0, template: "scf"},
	Bit:                 {name: "bit", arity: 1, template: "bit r0, {0}"},
	Op6xHi:              {name: "op6xhi", arity: 1, template: "op6xhi {0}"},
	Ccf:                 {name: "ccf", arity: 0, template: "ccf"},
	MovAccToReg:         {name: "movacctoreg", arity: 1, template: "{0} <- r0"},
	Cmp:                 {name: "cmp", arity: 1, template: "cmp r0, {0}"},
	Push:                {name: "push", arity: 1, template: "push {0}"},
	Pop:                 {name: "pop", arity: 1, template: "pop {0}"},
	Jnz:                 {name: "jnz", arity: 1, template: "jnz {0}", flags: flagJump | flagConditional},
	Jnc:                 {name: "jnc", arity: 1, template: "jnc {0}", flags: flagJump | flagConditional},
	JccLowGroup:         {name: "jcclo", arity: 2, template: "jcc.lo.{0:x} {1}", flags: flagJump | flagConditional},
	Jz:                  {name: "jz", arity: 1, template: "jz {0}", flags: flagJump | flagConditional},
	Jc:                  {name: "jc", arity: 1, template: "jc {0}", flags: flagJump | flagConditional},
	JccHighGroup:        {name: "jcchi", arity: 2, template: "jcc.hi.{0:x} {1}", flags: flagJump | flagConditional},
	Ret:                 {name: "ret", arity: 0, template: "ret", flags: flagReturn},
	Iret:                {name: "iret", arity: 0, template: "iret", flags: flagReturn},
	Jmp:                 {name: "jmp", arity: 1, template: "jmp {0}", flags: flagJump},
	Call:                {name: "call", arity: 1, template: "call {0}", flags: flagCall},
	IncW:                {name: "incw", arity: 1, template: "incw {0}"},
	StoreAbs16:          {name: "storeabs16", arity: 2, template: "{1} <- {0}"},
	StoreIndirect:       {name: "storeindirect", arity: 1, template: "{0} <- r0"},
	StoreIndirectOffset: {name: "storeindirectoffset", arity: 1, template: "{0} <- r0"},
	LoadImm8:            {name: "loadimm8", arity: 2, template: "{0} <- {1}"},
	LoadAbs16:           {name: "loadabs16", arity: 2, template: "{0} <- {1}"},
	LoadIndirect:        {name: "loadindirect", arity: 1, template: "r0 <- {0}"},
	LoadIndirectOffset:  {name: "loadindirectoffset", arity: 1, template: "r0 <- {0}"},
}

// Arity returns the number of operands that instructions of this opcode have.
func (o Opcode) Arity() int {
	if o >= opcodeCount {
		return 0
	}
	return int(opcodes[o].arity)
}

// IsJump returns true if the opcode transfers control without returning,
// conditional branches included.
func (o Opcode) IsJump() bool {
	return o.hasFlag(flagJump)
}

// IsConditionalBranch returns true if the opcode branches depending on a condition.
func (o Opcode) IsConditionalBranch() bool {
	return o.hasFlag(flagConditional)
}

// IsCall returns true if the opcode is a subroutine call.
func (o Opcode) IsCall() bool {
	return o.hasFlag(flagCall)
}

// IsReturn returns true if the opcode returns from a subroutine or interrupt.
func (o Opcode) IsReturn() bool {
	return o.hasFlag(flagReturn)
}

func (o Opcode) hasFlag(flag uint8) bool {
	if o >= opcodeCount {
		return false
	}
	return opcodes[o].flags&flag != 0
}
