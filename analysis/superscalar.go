package analysis

import "github.com/sarchlab/mipssim/core"

// group is one of the fourteen instruction classes the dual-issue pairing
// checker distinguishes, per §4.5.
type group uint8

const (
	gArithLog group = iota
	gDivMult
	gShift
	gShiftV
	gJumpR
	gMoveFrom
	gMoveTo
	gArithLogI
	gLoadI
	gBranch
	gBranchZ
	gLoadStore
	gJump
	gTrap
)

// classify maps a retired instruction to its pairing group, per §4.5.
func classify(inst core.Instruction) group {
	switch inst.Mnemonic {
	case core.MADD, core.MADDU, core.MSUB, core.MSUBU,
		core.MAND, core.MOR, core.MXOR, core.MNOR,
		core.MSLT, core.MSLTU:
		return gArithLog
	case core.MMULT, core.MMULTU, core.MDIV, core.MDIVU:
		return gDivMult
	case core.MSLL, core.MSRL, core.MSRA:
		return gShift
	case core.MSLLV, core.MSRLV, core.MSRAV:
		return gShiftV
	case core.MJR, core.MJALR:
		return gJumpR
	case core.MMFHI, core.MMFLO:
		return gMoveFrom
	case core.MMTHI, core.MMTLO:
		return gMoveTo
	case core.MADDI, core.MADDIU, core.MSLTI, core.MSLTIU,
		core.MANDI, core.MORI, core.MXORI:
		return gArithLogI
	case core.MLUI:
		return gLoadI
	case core.MBEQ, core.MBNE:
		return gBranch
	case core.MBLEZ, core.MBGTZ, core.MBLTZ, core.MBGEZ, core.MBLTZAL, core.MBGEZAL:
		return gBranchZ
	case core.MLB, core.MLBU, core.MLH, core.MLHU, core.MLW, core.MLWL, core.MLWR,
		core.MSB, core.MSH, core.MSW, core.MSWL, core.MSWR:
		return gLoadStore
	case core.MJ, core.MJAL:
		return gJump
	case core.MSYSCALL, core.MBREAK:
		return gTrap
	default:
		return gArithLog
	}
}

// pairableGroups lists which (older, newer) group pairs may dual-issue
// together, per §4.5 rule 3. Any combination not listed here never pairs:
// only ArithLog and ArithLogI pair with their own group, a LoadStore op may
// only be the newer half after an ArithLog, ArithLogI or LoadI op, and
// ShiftV, DivMult, MoveFrom, MoveTo, JumpR, Branch, BranchZ, Jump and Trap
// never pair at all.
var pairableGroups = map[[2]group]bool{
	{gArithLog, gArithLog}:   true,
	{gArithLog, gArithLogI}:  true,
	{gArithLog, gLoadI}:      true,
	{gArithLog, gLoadStore}:  true,
	{gArithLogI, gArithLog}:  true,
	{gArithLogI, gArithLogI}: true,
	{gArithLogI, gLoadI}:     true,
	{gArithLogI, gLoadStore}: true,
	{gLoadI, gArithLog}:      true,
	{gLoadI, gArithLogI}:     true,
	{gLoadI, gLoadStore}:     true,
	{gShift, gArithLog}:      true,
	{gShift, gArithLogI}:     true,
	{gArithLog, gShift}:      true,
	{gArithLogI, gShift}:     true,
}

// writesReg reports the register (if any) inst writes, reusing the hazard
// analyzer's writer classification (§4.3) since the two rules agree on what
// "produces a value" means; HI/LO are folded to their pseudo-indices so
// RAW/WAW/overlap checks can treat them uniformly with GPRs.
func writesReg(inst core.Instruction) (uint8, bool) {
	switch inst.Mnemonic {
	case core.MMULT, core.MMULTU, core.MDIV, core.MDIVU:
		return 0, false // dual write; handled by writesHILO
	}
	return writerReg(inst)
}

// writesHILO reports whether inst writes HI, LO, or both.
func writesHILO(inst core.Instruction) (hi, lo bool) {
	switch inst.Mnemonic {
	case core.MMULT, core.MMULTU, core.MDIV, core.MDIVU:
		return true, true
	case core.MMTHI:
		return true, false
	case core.MMTLO:
		return false, true
	default:
		return false, false
	}
}

// readsHILO reports whether inst reads HI, LO, or both.
func readsHILO(inst core.Instruction) (hi, lo bool) {
	switch inst.Mnemonic {
	case core.MMFHI:
		return true, false
	case core.MMFLO:
		return false, true
	default:
		return false, false
	}
}

// conflicts reports whether second cannot issue alongside first in the same
// bundle: a RAW, WAW, WAR, or HI/LO read/write overlap between the two, per
// §4.5 rules 4 and 5.
func conflicts(first, second core.Instruction) bool {
	fw, fwOK := writesReg(first)
	sw, swOK := writesReg(second)

	for _, r := range readDeps(second) {
		if fwOK && fw != 0 && r.reg == fw {
			return true // RAW
		}
	}
	for _, r := range readDeps(first) {
		if swOK && sw != 0 && r.reg == sw {
			return true // WAR
		}
	}
	if fwOK && swOK && fw != 0 && fw == sw {
		return true // WAW
	}

	fhiW, floW := writesHILO(first)
	shiW, sloW := writesHILO(second)
	shiR, sloR := readsHILO(second)
	fhiR, floR := readsHILO(first)

	if (fhiW && (shiW || shiR)) || (floW && (sloW || sloR)) {
		return true
	}
	if (shiW && (fhiW || fhiR)) || (sloW && (floW || floR)) {
		return true
	}
	return false
}

// canPair reports whether first and second (second immediately following
// first in program order) may dual-issue together, per §4.5 rules 2 to 5:
// both are classifiable, their groups are an allowed combination, and no
// register or HI/LO conflict lies between them. The latch (rule 1) is
// applied by Superscalar.Observe.
func canPair(first, second core.Instruction) bool {
	if first.Mnemonic == core.MNone || second.Mnemonic == core.MNone {
		return false
	}
	g1, g2 := classify(first), classify(second)

	switch g1 {
	case gBranch, gBranchZ, gJump, gJumpR, gTrap, gDivMult, gMoveFrom, gMoveTo:
		return false
	}
	switch g2 {
	case gBranch, gBranchZ, gJump, gJumpR, gTrap, gDivMult, gMoveFrom, gMoveTo:
		return false
	}
	if !pairableGroups[[2]group{g1, g2}] {
		return false
	}
	if conflicts(first, second) {
		return false
	}
	return true
}

// Superscalar tracks dual-issue pairing opportunities across the retired
// stream, per §4.5. super_loaded latches after a pair so that a freshly
// paired instruction cannot immediately pair again as the first half of the
// next bundle (no 3-in-a-row triple pairing).
type Superscalar struct {
	Pairs      int
	superLoaded bool
}

// NewSuperscalar creates a superscalar checker with an empty latch.
func NewSuperscalar() *Superscalar {
	return &Superscalar{}
}

// Observe evaluates whether the two newest window entries (prev, the
// instruction immediately before cur in program order) can dual-issue, and
// updates Pairs/the latch accordingly. hasPrev is false when there is no prior
// instruction to pair against yet.
func (s *Superscalar) Observe(prev core.Instruction, cur core.Instruction, hasPrev bool) {
	if !hasPrev {
		s.superLoaded = false
		return
	}
	if s.superLoaded {
		s.superLoaded = false
		return
	}
	if canPair(prev, cur) {
		s.Pairs++
		s.superLoaded = true
		return
	}
	s.superLoaded = false
}
