// Package decode turns a raw 32-bit MIPS-I instruction word into the bare
// bitfields the core execution units need. It performs no semantic
// interpretation of its own (§4.6): a driver dispatches a decoded Word to
// core.Machine.ExecuteR/ExecuteI/ExecuteJ, which is where mnemonic identity
// and execution semantics live.
package decode

import "github.com/sarchlab/mipssim/core"

// Word is the field-level decode of one instruction word, tagged with the
// encoding Format a driver needs to pick the right Machine.Execute* call.
type Word struct {
	Format core.Format

	Op    uint8
	Rs    uint8
	Rt    uint8
	Rd    uint8
	Shamt uint8
	Funct uint8

	Imm16    uint16
	Target26 uint32
}

// Decode extracts a Word from a big-endian-loaded 32-bit instruction word.
func Decode(raw uint32) Word {
	op := uint8(raw >> 26)

	switch {
	case isRFormat(op):
		return decodeR(raw, op)
	case isJFormat(op):
		return decodeJ(raw, op)
	default:
		return decodeI(raw, op)
	}
}

// isRFormat reports whether op selects the register-register encoding: the
// SPECIAL opcode, whose operation is determined by the function field.
func isRFormat(op uint8) bool {
	return op == core.OpSPECIAL
}

// isJFormat reports whether op selects the jump encoding (j/jal).
func isJFormat(op uint8) bool {
	return op == core.OpJ || op == core.OpJAL
}

// decodeR extracts the register-register fields: rs | rt | rd | shamt | funct.
func decodeR(raw uint32, op uint8) Word {
	return Word{
		Format: core.FormatR,
		Op:     op,
		Rs:     uint8((raw >> 21) & 0x1F),
		Rt:     uint8((raw >> 16) & 0x1F),
		Rd:     uint8((raw >> 11) & 0x1F),
		Shamt:  uint8((raw >> 6) & 0x1F),
		Funct:  uint8(raw & 0x3F),
	}
}

// decodeJ extracts the jump fields: op | target26. OpREGIMM's rt field
// selects among bltz/bgez/bltzal/bgezal but still uses the I-type layout,
// so it is handled by decodeI, not here.
func decodeJ(raw uint32, op uint8) Word {
	return Word{
		Format:   core.FormatJ,
		Op:       op,
		Target26: raw & 0x3FFFFFF,
	}
}

// decodeI extracts the register-immediate fields: rs | rt | imm16. This
// also covers OpREGIMM, whose rt field the caller further dispatches on
// (§4.1's bltz/bgez/bltzal/bgezal family).
func decodeI(raw uint32, op uint8) Word {
	return Word{
		Format: core.FormatI,
		Op:     op,
		Rs:     uint8((raw >> 21) & 0x1F),
		Rt:     uint8((raw >> 16) & 0x1F),
		Imm16:  uint16(raw & 0xFFFF),
	}
}
