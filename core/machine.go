package core

// Machine ties together the register file, memory, and execution units into
// a single instruction-at-a-time interpreter. It owns no global state: a
// caller constructs as many Machines as it needs (e.g. one per simulated
// hart), each with its own State and Memory.
type Machine struct {
	State *State
	Mem   *Memory

	alu *ALU
	bu  *BranchUnit
	lsu *LoadStoreUnit

	stopped bool
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithMemory attaches a pre-populated memory (e.g. after ELF loading)
// instead of the default empty one.
func WithMemory(mem *Memory) Option {
	return func(m *Machine) { m.Mem = mem }
}

// NewMachine builds a Machine with a fresh register file and, unless
// overridden by WithMemory, a fresh empty memory.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{State: &State{}, Mem: NewMemory()}
	for _, opt := range opts {
		opt(m)
	}
	m.alu = NewALU(m.State)
	m.bu = NewBranchUnit(m.State)
	m.lsu = NewLoadStoreUnit(m.State, m.Mem)
	return m
}

// Begin resets architectural state for hart procIx and clears the stop flag.
func (m *Machine) Begin(procIx uint32) {
	m.State.Begin(procIx)
	m.stopped = false
}

// Stopped reports whether a syscall instruction has signaled the end of
// the run. The driver is expected to check this after every retired
// instruction and halt the fetch loop once it is true.
func (m *Machine) Stopped() bool {
	return m.stopped
}

// SetEntry overrides the initial PC/NPC pair to the loader-supplied entry
// point, bypassing the zero default Begin leaves in place. ELF loading is
// a driver concern (§4.7); the core only needs the resulting address.
func (m *Machine) SetEntry(pc uint32) {
	m.State.PC = pc
	m.State.NPC = pc + 4
}

// finishBranch commits the delay-slot PC advance and, if taken, overrides
// NPC with the branch/jump target so the instruction two steps from now
// reads from it --- the delay-slot instruction itself always executes
// first (§4.1).
func (m *Machine) finishBranch(pcDelaySlot uint32, taken bool, target uint32) {
	m.State.Advance()
	if taken {
		m.State.NPC = target
	}
}

// ExecuteR executes a register-format (SPECIAL or derived) instruction and
// returns the retired instruction record.
func (m *Machine) ExecuteR(rs, rt, rd, shamt, funct uint8) (Instruction, error) {
	pcDelaySlot := m.State.PC + 4
	inst := Instruction{Format: FormatR, Op: OpSPECIAL, Func: funct, Rs: rs, Rt: rt, Rd: rd, Shamt: shamt}

	var err error
	taken := false
	var target uint32

	switch funct {
	case FnSLL:
		inst.Mnemonic = MSLL
		m.alu.SLL(rd, rt, shamt)
	case FnSRL:
		inst.Mnemonic = MSRL
		m.alu.SRL(rd, rt, shamt)
	case FnSRA:
		inst.Mnemonic = MSRA
		m.alu.SRA(rd, rt, shamt)
	case FnSLLV:
		inst.Mnemonic = MSLLV
		m.alu.SLLV(rd, rt, rs)
	case FnSRLV:
		inst.Mnemonic = MSRLV
		m.alu.SRLV(rd, rt, rs)
	case FnSRAV:
		inst.Mnemonic = MSRAV
		m.alu.SRAV(rd, rt, rs)
	case FnJR:
		inst.Mnemonic = MJR
		taken = true
		target = m.State.Reg(rs)
	case FnJALR:
		inst.Mnemonic = MJALR
		taken = true
		target = m.State.Reg(rs)
		linkReg := rd
		if linkReg == 0 {
			linkReg = 31
		}
		m.bu.LinkReturn(linkReg, pcDelaySlot+4)
	case FnSYSCALL:
		inst.Mnemonic = MSYSCALL
		m.stopped = true
	case FnBREAK:
		inst.Mnemonic = MBREAK
		err = newBreak(m.State.PC)
	case FnMFHI:
		inst.Mnemonic = MMFHI
		m.alu.MFHI(rd)
	case FnMTHI:
		inst.Mnemonic = MMTHI
		m.alu.MTHI(rs)
	case FnMFLO:
		inst.Mnemonic = MMFLO
		m.alu.MFLO(rd)
	case FnMTLO:
		inst.Mnemonic = MMTLO
		m.alu.MTLO(rs)
	case FnMULT:
		inst.Mnemonic = MMULT
		m.alu.MULT(rs, rt)
	case FnMULTU:
		inst.Mnemonic = MMULTU
		m.alu.MULTU(rs, rt)
	case FnDIV:
		inst.Mnemonic = MDIV
		m.alu.DIV(rs, rt)
	case FnDIVU:
		inst.Mnemonic = MDIVU
		m.alu.DIVU(rs, rt)
	case FnADD:
		inst.Mnemonic = MADD
		err = m.alu.ADD(rd, rs, rt)
	case FnADDU:
		inst.Mnemonic = MADDU
		m.alu.ADDU(rd, rs, rt)
	case FnSUB:
		inst.Mnemonic = MSUB
		m.alu.SUB(rd, rs, rt)
	case FnSUBU:
		inst.Mnemonic = MSUBU
		m.alu.SUBU(rd, rs, rt)
	case FnAND:
		inst.Mnemonic = MAND
		m.alu.AND(rd, rs, rt)
	case FnOR:
		inst.Mnemonic = MOR
		m.alu.OR(rd, rs, rt)
	case FnXOR:
		inst.Mnemonic = MXOR
		m.alu.XOR(rd, rs, rt)
	case FnNOR:
		inst.Mnemonic = MNOR
		m.alu.NOR(rd, rs, rt)
	case FnSLT:
		inst.Mnemonic = MSLT
		m.alu.SLT(rd, rs, rt)
	case FnSLTU:
		inst.Mnemonic = MSLTU
		m.alu.SLTU(rd, rs, rt)
	}

	m.finishBranch(pcDelaySlot, taken, target)
	return inst, err
}

// ExecuteI executes an immediate-format instruction (including REGIMM
// branches) and returns the retired instruction record.
func (m *Machine) ExecuteI(op uint8, rs, rt uint8, imm16 uint16) (Instruction, error) {
	pcDelaySlot := m.State.PC + 4
	imm := int32(int16(imm16))
	inst := Instruction{Format: FormatI, Op: op, Rs: rs, Rt: rt, Imm: imm}

	var err error
	taken := false
	var target uint32

	switch op {
	case OpREGIMM:
		switch rt {
		case RtBLTZ:
			inst.Mnemonic = MBLTZ
			taken = m.bu.TakenBLTZ(rs)
		case RtBGEZ:
			inst.Mnemonic = MBGEZ
			taken = m.bu.TakenBGEZ(rs)
		case RtBLTZAL:
			inst.Mnemonic = MBLTZAL
			taken = m.bu.TakenBLTZ(rs)
			m.bu.LinkReturn(31, pcDelaySlot+4)
		case RtBGEZAL:
			inst.Mnemonic = MBGEZAL
			taken = m.bu.TakenBGEZ(rs)
			m.bu.LinkReturn(31, pcDelaySlot+4)
		}
		if taken {
			target = branchTarget(pcDelaySlot, imm)
		}
	case OpBEQ:
		inst.Mnemonic = MBEQ
		taken = m.bu.TakenBEQ(rs, rt)
		target = branchTarget(pcDelaySlot, imm)
	case OpBNE:
		inst.Mnemonic = MBNE
		taken = m.bu.TakenBNE(rs, rt)
		target = branchTarget(pcDelaySlot, imm)
	case OpBLEZ:
		inst.Mnemonic = MBLEZ
		taken = m.bu.TakenBLEZ(rs)
		target = branchTarget(pcDelaySlot, imm)
	case OpBGTZ:
		inst.Mnemonic = MBGTZ
		taken = m.bu.TakenBGTZ(rs)
		target = branchTarget(pcDelaySlot, imm)
	case OpADDI:
		inst.Mnemonic = MADDI
		err = m.alu.ADDI(rt, rs, imm)
	case OpADDIU:
		inst.Mnemonic = MADDIU
		m.alu.ADDIU(rt, rs, imm)
	case OpSLTI:
		inst.Mnemonic = MSLTI
		m.alu.SLTI(rt, rs, imm)
	case OpSLTIU:
		inst.Mnemonic = MSLTIU
		m.alu.SLTIU(rt, rs, imm)
	case OpANDI:
		inst.Mnemonic = MANDI
		m.alu.ANDI(rt, rs, imm16)
	case OpORI:
		inst.Mnemonic = MORI
		m.alu.ORI(rt, rs, imm16)
	case OpXORI:
		inst.Mnemonic = MXORI
		m.alu.XORI(rt, rs, imm16)
	case OpLUI:
		inst.Mnemonic = MLUI
		m.alu.LUI(rt, imm16)
	case OpLB:
		inst.Mnemonic = MLB
		m.lsu.LB(rt, rs, imm)
	case OpLBU:
		inst.Mnemonic = MLBU
		m.lsu.LBU(rt, rs, imm)
	case OpLH:
		inst.Mnemonic = MLH
		m.lsu.LH(rt, rs, imm)
	case OpLHU:
		inst.Mnemonic = MLHU
		m.lsu.LHU(rt, rs, imm)
	case OpLW:
		inst.Mnemonic = MLW
		m.lsu.LW(rt, rs, imm)
	case OpLWL:
		inst.Mnemonic = MLWL
		m.lsu.LWL(rt, rs, imm)
	case OpLWR:
		inst.Mnemonic = MLWR
		m.lsu.LWR(rt, rs, imm)
	case OpSB:
		inst.Mnemonic = MSB
		m.lsu.SB(rt, rs, imm)
	case OpSH:
		inst.Mnemonic = MSH
		m.lsu.SH(rt, rs, imm)
	case OpSW:
		inst.Mnemonic = MSW
		m.lsu.SW(rt, rs, imm)
	case OpSWL:
		inst.Mnemonic = MSWL
		m.lsu.SWL(rt, rs, imm)
	case OpSWR:
		inst.Mnemonic = MSWR
		m.lsu.SWR(rt, rs, imm)
	}

	m.finishBranch(pcDelaySlot, taken, target)
	return inst, err
}

// ExecuteJ executes a jump-format instruction (j/jal) and returns the
// retired instruction record.
func (m *Machine) ExecuteJ(op uint8, target26 uint32) (Instruction, error) {
	pcDelaySlot := m.State.PC + 4
	inst := Instruction{Format: FormatJ, Op: op, Target: target26}

	target := jumpTarget(pcDelaySlot, target26)
	switch op {
	case OpJ:
		inst.Mnemonic = MJ
	case OpJAL:
		inst.Mnemonic = MJAL
		m.bu.LinkReturn(31, pcDelaySlot+4)
	}

	m.finishBranch(pcDelaySlot, true, target)
	return inst, nil
}
