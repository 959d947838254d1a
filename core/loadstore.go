package core

// LoadStoreUnit implements MIPS-I load and store instructions, including
// the unaligned lwl/lwr/swl/swr family, against a register file and a
// word-addressed big-endian-lane memory.
type LoadStoreUnit struct {
	state *State
	mem   *Memory
}

// NewLoadStoreUnit creates a new load/store unit connected to the given
// register state and memory.
func NewLoadStoreUnit(state *State, mem *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{state: state, mem: mem}
}

func (u *LoadStoreUnit) addr(rs uint8, imm int32) uint32 {
	return u.state.Reg(rs) + uint32(imm)
}

// LB loads a sign-extended byte.
func (u *LoadStoreUnit) LB(rt, rs uint8, imm int32) {
	b := u.mem.ReadByte(u.addr(rs, imm))
	u.state.SetReg(rt, uint32(int32(int8(b))))
}

// LBU loads a zero-extended byte.
func (u *LoadStoreUnit) LBU(rt, rs uint8, imm int32) {
	b := u.mem.ReadByte(u.addr(rs, imm))
	u.state.SetReg(rt, uint32(b))
}

// LH loads a sign-extended halfword.
func (u *LoadStoreUnit) LH(rt, rs uint8, imm int32) {
	h := u.mem.ReadHalf(u.addr(rs, imm))
	u.state.SetReg(rt, uint32(int32(int16(h))))
}

// LHU loads a zero-extended halfword.
func (u *LoadStoreUnit) LHU(rt, rs uint8, imm int32) {
	h := u.mem.ReadHalf(u.addr(rs, imm))
	u.state.SetReg(rt, uint32(h))
}

// LW loads a full word.
func (u *LoadStoreUnit) LW(rt, rs uint8, imm int32) {
	u.state.SetReg(rt, u.mem.ReadWord(u.addr(rs, imm)))
}

// LWL loads the bytes from the addressed byte through the end of its word
// into the most-significant portion of rt, preserving rt's existing low
// bits (§4.1).
func (u *LoadStoreUnit) LWL(rt, rs uint8, imm int32) {
	addr := u.addr(rs, imm)
	word := u.mem.ReadWord(addr &^ 3)
	shift := (addr & 3) * 8
	oldRT := u.state.Reg(rt)
	mask := (uint32(1) << shift) - 1
	u.state.SetReg(rt, (word<<shift)|(oldRT&mask))
}

// LWR loads the bytes from the start of the word through the addressed byte
// into the least-significant portion of rt, preserving rt's existing high
// bits (§4.1).
func (u *LoadStoreUnit) LWR(rt, rs uint8, imm int32) {
	addr := u.addr(rs, imm)
	word := u.mem.ReadWord(addr &^ 3)
	shift := (3 - (addr & 3)) * 8
	oldRT := u.state.Reg(rt)
	mask := uint32(0xFFFFFFFF) << (32 - shift)
	u.state.SetReg(rt, (word>>shift)|(oldRT&mask))
}

// SB stores the low byte of rt.
func (u *LoadStoreUnit) SB(rt, rs uint8, imm int32) {
	u.mem.WriteByte(u.addr(rs, imm), uint8(u.state.Reg(rt)))
}

// SH stores the low halfword of rt.
func (u *LoadStoreUnit) SH(rt, rs uint8, imm int32) {
	u.mem.WriteHalf(u.addr(rs, imm), uint16(u.state.Reg(rt)))
}

// SW stores the full word of rt.
func (u *LoadStoreUnit) SW(rt, rs uint8, imm int32) {
	u.mem.WriteWord(u.addr(rs, imm), u.state.Reg(rt))
}

// SWL is the store symmetric to LWL: the high bytes of rt are written from
// the addressed byte through the end of its word, leaving the bytes before
// the addressed byte untouched.
func (u *LoadStoreUnit) SWL(rt, rs uint8, imm int32) {
	addr := u.addr(rs, imm)
	wordAddr := addr &^ 3
	shift := (addr & 3) * 8
	oldWord := u.mem.ReadWord(wordAddr)
	rtVal := u.state.Reg(rt)
	mask := uint32(0xFFFFFFFF) << (32 - shift)
	u.mem.WriteWord(wordAddr, (rtVal>>shift)|(oldWord&mask))
}

// SWR is the store symmetric to LWR: the low bytes of rt are written from
// the start of the word through the addressed byte, leaving the bytes after
// the addressed byte untouched.
func (u *LoadStoreUnit) SWR(rt, rs uint8, imm int32) {
	addr := u.addr(rs, imm)
	wordAddr := addr &^ 3
	shift := (3 - (addr & 3)) * 8
	oldWord := u.mem.ReadWord(wordAddr)
	rtVal := u.state.Reg(rt)
	mask := (uint32(1) << shift) - 1
	u.mem.WriteWord(wordAddr, (rtVal<<shift)|(oldWord&mask))
}
