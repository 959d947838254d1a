package core

// BranchUnit evaluates MIPS-I branch predicates and performs link-register
// writes. It does not touch PC/NPC directly: the branch-delay-slot PC
// bookkeeping is orchestrated by Machine, which alone knows the pending
// "next PC" state across the one-instruction delay (§4.1).
type BranchUnit struct {
	state *State
}

// NewBranchUnit creates a new branch unit connected to the given register state.
func NewBranchUnit(state *State) *BranchUnit {
	return &BranchUnit{state: state}
}

// branchTarget computes a PC-relative branch target from the delay slot's
// own address, per §4.1: PC_of_delay_slot + (sign_ext(imm) << 2).
func branchTarget(pcDelaySlot uint32, imm int32) uint32 {
	return pcDelaySlot + uint32(imm<<2)
}

// jumpTarget computes an absolute jump target from a 26-bit encoded field
// and the delay slot's own address, per §4.1.
func jumpTarget(pcDelaySlot uint32, target26 uint32) uint32 {
	return (pcDelaySlot & 0xF0000000) | (target26 << 2)
}

// TakenBEQ reports whether rs == rt.
func (b *BranchUnit) TakenBEQ(rs, rt uint8) bool {
	return b.state.Reg(rs) == b.state.Reg(rt)
}

// TakenBNE reports whether rs != rt.
func (b *BranchUnit) TakenBNE(rs, rt uint8) bool {
	return b.state.Reg(rs) != b.state.Reg(rt)
}

// TakenBLEZ reports whether rs <= 0 (signed).
func (b *BranchUnit) TakenBLEZ(rs uint8) bool {
	return int32(b.state.Reg(rs)) <= 0
}

// TakenBGTZ reports whether rs > 0 (signed).
func (b *BranchUnit) TakenBGTZ(rs uint8) bool {
	return int32(b.state.Reg(rs)) > 0
}

// TakenBLTZ reports whether rs < 0 (signed).
func (b *BranchUnit) TakenBLTZ(rs uint8) bool {
	return int32(b.state.Reg(rs)) < 0
}

// TakenBGEZ reports whether rs >= 0 (signed).
func (b *BranchUnit) TakenBGEZ(rs uint8) bool {
	return int32(b.state.Reg(rs)) >= 0
}

// LinkReturn saves a return address into rd (used by jal/jalr/bltzal/bgezal).
func (b *BranchUnit) LinkReturn(rd uint8, returnAddr uint32) {
	b.state.SetReg(rd, returnAddr)
}
