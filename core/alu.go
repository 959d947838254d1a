package core

// ALU implements MIPS-I arithmetic, logical, shift, compare, and
// multiply/divide operations against a register file.
type ALU struct {
	state *State
}

// NewALU creates a new ALU connected to the given register state.
func NewALU(state *State) *ALU {
	return &ALU{state: state}
}

func signBit(x uint32) uint32 {
	return x >> 31
}

// ADD performs signed addition, raising a fatal overflow error when both
// operands share a sign that differs from the result's sign (§4.1, §9).
func (a *ALU) ADD(rd, rs, rt uint8) error {
	op1 := a.state.Reg(rs)
	op2 := a.state.Reg(rt)
	result := op1 + op2
	if signBit(op1) == signBit(op2) && signBit(op1) != signBit(result) {
		return newOverflow(a.state.PC, "add")
	}
	a.state.SetReg(rd, result)
	return nil
}

// ADDU performs unsigned addition; it wraps silently on overflow.
func (a *ALU) ADDU(rd, rs, rt uint8) {
	a.state.SetReg(rd, a.state.Reg(rs)+a.state.Reg(rt))
}

// ADDI performs signed addition with a sign-extended immediate, raising a
// fatal overflow error under the same rule as ADD.
func (a *ALU) ADDI(rt, rs uint8, imm int32) error {
	op1 := a.state.Reg(rs)
	op2 := uint32(imm)
	result := op1 + op2
	if signBit(op1) == signBit(op2) && signBit(op1) != signBit(result) {
		return newOverflow(a.state.PC, "addi")
	}
	a.state.SetReg(rt, result)
	return nil
}

// ADDIU performs unsigned addition with a sign-extended immediate; wraps silently.
func (a *ALU) ADDIU(rt, rs uint8, imm int32) {
	a.state.SetReg(rt, a.state.Reg(rs)+uint32(imm))
}

// SUB performs subtraction. addu/addiu/sub/subu wrap silently per §4.1.
func (a *ALU) SUB(rd, rs, rt uint8) {
	a.state.SetReg(rd, a.state.Reg(rs)-a.state.Reg(rt))
}

// SUBU performs unsigned subtraction; wraps silently.
func (a *ALU) SUBU(rd, rs, rt uint8) {
	a.state.SetReg(rd, a.state.Reg(rs)-a.state.Reg(rt))
}

// AND performs bitwise AND.
func (a *ALU) AND(rd, rs, rt uint8) {
	a.state.SetReg(rd, a.state.Reg(rs)&a.state.Reg(rt))
}

// OR performs bitwise OR.
func (a *ALU) OR(rd, rs, rt uint8) {
	a.state.SetReg(rd, a.state.Reg(rs)|a.state.Reg(rt))
}

// XOR performs bitwise XOR.
func (a *ALU) XOR(rd, rs, rt uint8) {
	a.state.SetReg(rd, a.state.Reg(rs)^a.state.Reg(rt))
}

// NOR performs bitwise NOR.
func (a *ALU) NOR(rd, rs, rt uint8) {
	a.state.SetReg(rd, ^(a.state.Reg(rs) | a.state.Reg(rt)))
}

// ANDI performs bitwise AND with a zero-extended 16-bit immediate (§4.1).
func (a *ALU) ANDI(rt, rs uint8, imm16 uint16) {
	a.state.SetReg(rt, a.state.Reg(rs)&uint32(imm16))
}

// ORI performs bitwise OR with a zero-extended 16-bit immediate.
func (a *ALU) ORI(rt, rs uint8, imm16 uint16) {
	a.state.SetReg(rt, a.state.Reg(rs)|uint32(imm16))
}

// XORI performs bitwise XOR with a zero-extended 16-bit immediate.
func (a *ALU) XORI(rt, rs uint8, imm16 uint16) {
	a.state.SetReg(rt, a.state.Reg(rs)^uint32(imm16))
}

// LUI loads a 16-bit immediate into the upper half of rt, zeroing the lower half.
func (a *ALU) LUI(rt uint8, imm16 uint16) {
	a.state.SetReg(rt, uint32(imm16)<<16)
}

// SLT sets rd to 1 if rs < rt as signed integers, else 0.
func (a *ALU) SLT(rd, rs, rt uint8) {
	if int32(a.state.Reg(rs)) < int32(a.state.Reg(rt)) {
		a.state.SetReg(rd, 1)
	} else {
		a.state.SetReg(rd, 0)
	}
}

// SLTU sets rd to 1 if rs < rt as unsigned integers, else 0.
func (a *ALU) SLTU(rd, rs, rt uint8) {
	if a.state.Reg(rs) < a.state.Reg(rt) {
		a.state.SetReg(rd, 1)
	} else {
		a.state.SetReg(rd, 0)
	}
}

// SLTI sets rt to 1 if rs < imm as signed integers, else 0.
func (a *ALU) SLTI(rt, rs uint8, imm int32) {
	if int32(a.state.Reg(rs)) < imm {
		a.state.SetReg(rt, 1)
	} else {
		a.state.SetReg(rt, 0)
	}
}

// SLTIU sets rt to 1 if rs < imm as unsigned integers (imm sign-extended
// then reinterpreted unsigned, per MIPS-I convention), else 0.
func (a *ALU) SLTIU(rt, rs uint8, imm int32) {
	if a.state.Reg(rs) < uint32(imm) {
		a.state.SetReg(rt, 1)
	} else {
		a.state.SetReg(rt, 0)
	}
}

// SLL shifts rt left by the 5-bit shamt into rd.
func (a *ALU) SLL(rd, rt, shamt uint8) {
	a.state.SetReg(rd, a.state.Reg(rt)<<(shamt&0x1F))
}

// SRL shifts rt right (logical) by the 5-bit shamt into rd.
func (a *ALU) SRL(rd, rt, shamt uint8) {
	a.state.SetReg(rd, a.state.Reg(rt)>>(shamt&0x1F))
}

// SRA shifts rt right (arithmetic, sign-preserving) by the 5-bit shamt into rd.
func (a *ALU) SRA(rd, rt, shamt uint8) {
	a.state.SetReg(rd, uint32(int32(a.state.Reg(rt))>>(shamt&0x1F)))
}

// SLLV shifts rt left by rs&0x1F into rd.
func (a *ALU) SLLV(rd, rt, rs uint8) {
	a.state.SetReg(rd, a.state.Reg(rt)<<(a.state.Reg(rs)&0x1F))
}

// SRLV shifts rt right (logical) by rs&0x1F into rd.
func (a *ALU) SRLV(rd, rt, rs uint8) {
	a.state.SetReg(rd, a.state.Reg(rt)>>(a.state.Reg(rs)&0x1F))
}

// SRAV shifts rt right (arithmetic) by rs&0x1F into rd.
func (a *ALU) SRAV(rd, rt, rs uint8) {
	a.state.SetReg(rd, uint32(int32(a.state.Reg(rt))>>(a.state.Reg(rs)&0x1F)))
}

// MULT produces a signed 64-bit product of rs and rt into HI:LO.
func (a *ALU) MULT(rs, rt uint8) {
	product := int64(int32(a.state.Reg(rs))) * int64(int32(a.state.Reg(rt)))
	a.state.HI = uint32(uint64(product) >> 32)
	a.state.LO = uint32(product)
}

// MULTU produces an unsigned 64-bit product of rs and rt into HI:LO.
func (a *ALU) MULTU(rs, rt uint8) {
	product := uint64(a.state.Reg(rs)) * uint64(a.state.Reg(rt))
	a.state.HI = uint32(product >> 32)
	a.state.LO = uint32(product)
}

// DIV produces signed quotient (LO) and remainder (HI) of rs/rt. Division
// by zero is undefined at the MIPS level; per §7 this must not crash, so a
// deterministic zero result is produced instead.
func (a *ALU) DIV(rs, rt uint8) {
	n := int32(a.state.Reg(rs))
	d := int32(a.state.Reg(rt))
	if d == 0 {
		a.state.LO = 0
		a.state.HI = 0
		return
	}
	a.state.LO = uint32(n / d)
	a.state.HI = uint32(n % d)
}

// DIVU produces unsigned quotient (LO) and remainder (HI) of rs/rt.
func (a *ALU) DIVU(rs, rt uint8) {
	n := a.state.Reg(rs)
	d := a.state.Reg(rt)
	if d == 0 {
		a.state.LO = 0
		a.state.HI = 0
		return
	}
	a.state.LO = n / d
	a.state.HI = n % d
}

// MFHI copies HI into rd.
func (a *ALU) MFHI(rd uint8) {
	a.state.SetReg(rd, a.state.HI)
}

// MTHI copies rs into HI.
func (a *ALU) MTHI(rs uint8) {
	a.state.HI = a.state.Reg(rs)
}

// MFLO copies LO into rd.
func (a *ALU) MFLO(rd uint8) {
	a.state.SetReg(rd, a.state.LO)
}

// MTLO copies rs into LO.
func (a *ALU) MTLO(rs uint8) {
	a.state.LO = a.state.Reg(rs)
}
