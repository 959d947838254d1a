// Package core implements the MIPS-I integer interpreter: register file,
// memory, ALU, branch/jump unit, load/store unit, and the machine that
// ties them together. It is the minimal instruction-execution semantics
// needed to feed a faithful stream of retired instructions to an analyzer.
package core

// Format identifies which of the three MIPS instruction encodings a
// retired instruction used.
type Format uint8

const (
	// FormatR is the register-register encoding (op, rs, rt, rd, shamt, func).
	FormatR Format = iota
	// FormatI is the register-immediate encoding (op, rs, rt, imm16).
	FormatI
	// FormatJ is the jump encoding (op, target26).
	FormatJ
)

// Mnemonic identifies the specific operation a retired instruction performs,
// independent of its raw opcode/function encoding. The analyzers match on
// Mnemonic rather than re-deriving identity from raw fields.
type Mnemonic uint8

// MIPS-I mnemonics implemented by this simulator.
const (
	MNone Mnemonic = iota
	MADD
	MADDU
	MADDI
	MADDIU
	MSUB
	MSUBU
	MAND
	MOR
	MXOR
	MNOR
	MANDI
	MORI
	MXORI
	MLUI
	MSLT
	MSLTU
	MSLTI
	MSLTIU
	MSLL
	MSRL
	MSRA
	MSLLV
	MSRLV
	MSRAV
	MMULT
	MMULTU
	MDIV
	MDIVU
	MMFHI
	MMTHI
	MMFLO
	MMTLO
	MLB
	MLBU
	MLH
	MLHU
	MLW
	MLWL
	MLWR
	MSB
	MSH
	MSW
	MSWL
	MSWR
	MBEQ
	MBNE
	MBLEZ
	MBGTZ
	MBLTZ
	MBGEZ
	MBLTZAL
	MBGEZAL
	MJ
	MJAL
	MJR
	MJALR
	MSYSCALL
	MBREAK
)

// Raw MIPS-I opcode (6-bit) values, as they appear in bits [31:26] of an
// instruction word.
const (
	OpSPECIAL uint8 = 0x00
	OpREGIMM  uint8 = 0x01
	OpJ       uint8 = 0x02
	OpJAL     uint8 = 0x03
	OpBEQ     uint8 = 0x04
	OpBNE     uint8 = 0x05
	OpBLEZ    uint8 = 0x06
	OpBGTZ    uint8 = 0x07
	OpADDI    uint8 = 0x08
	OpADDIU   uint8 = 0x09
	OpSLTI    uint8 = 0x0A
	OpSLTIU   uint8 = 0x0B
	OpANDI    uint8 = 0x0C
	OpORI     uint8 = 0x0D
	OpXORI    uint8 = 0x0E
	OpLUI     uint8 = 0x0F
	OpLB      uint8 = 0x20
	OpLH      uint8 = 0x21
	OpLWL     uint8 = 0x22
	OpLW      uint8 = 0x23
	OpLBU     uint8 = 0x24
	OpLHU     uint8 = 0x25
	OpLWR     uint8 = 0x26
	OpSB      uint8 = 0x28
	OpSH      uint8 = 0x29
	OpSWL     uint8 = 0x2A
	OpSW      uint8 = 0x2B
	OpSWR     uint8 = 0x2E
)

// Raw MIPS-I function (6-bit) values for op == OpSPECIAL, bits [5:0].
const (
	FnSLL     uint8 = 0x00
	FnSRL     uint8 = 0x02
	FnSRA     uint8 = 0x03
	FnSLLV    uint8 = 0x04
	FnSRLV    uint8 = 0x06
	FnSRAV    uint8 = 0x07
	FnJR      uint8 = 0x08
	FnJALR    uint8 = 0x09
	FnSYSCALL uint8 = 0x0C
	FnBREAK   uint8 = 0x0D
	FnMFHI    uint8 = 0x10
	FnMTHI    uint8 = 0x11
	FnMFLO    uint8 = 0x12
	FnMTLO    uint8 = 0x13
	FnMULT    uint8 = 0x18
	FnMULTU   uint8 = 0x19
	FnDIV     uint8 = 0x1A
	FnDIVU    uint8 = 0x1B
	FnADD     uint8 = 0x20
	FnADDU    uint8 = 0x21
	FnSUB     uint8 = 0x22
	FnSUBU    uint8 = 0x23
	FnAND     uint8 = 0x24
	FnOR      uint8 = 0x25
	FnXOR     uint8 = 0x26
	FnNOR     uint8 = 0x27
	FnSLT     uint8 = 0x2A
	FnSLTU    uint8 = 0x2B
)

// rt-field discriminators for op == OpREGIMM.
const (
	RtBLTZ   uint8 = 0x00
	RtBGEZ   uint8 = 0x01
	RtBLTZAL uint8 = 0x10
	RtBGEZAL uint8 = 0x11
)

// Instruction is the tagged record produced by the core for every retired
// instruction. It is the sole input to the hazard analyzer, branch
// predictors, and superscalar pair checker.
type Instruction struct {
	Format   Format
	Mnemonic Mnemonic

	Op   uint8
	Func uint8

	Rs, Rt, Rd uint8
	Shamt      uint8

	Imm    int32  // sign-extended for R/I consumers that need it
	Target uint32 // 26-bit jump target, J-type only
}

// IsNOP reports whether the instruction is the canonical encoded NOP
// (sll $0, $0, 0 — every field zero).
func (i Instruction) IsNOP() bool {
	return i.Format == FormatR &&
		i.Op == OpSPECIAL && i.Func == FnSLL &&
		i.Rs == 0 && i.Rt == 0 && i.Rd == 0 && i.Shamt == 0
}

// RegisterView exposes read-only access to architectural register values,
// used by analyzers that need the already-executed operand values (e.g.
// to compute the actual outcome of a conditional branch) rather than just
// the instruction's encoded fields.
type RegisterView interface {
	Reg(i uint8) uint32
}
