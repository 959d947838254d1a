package analysis

import "github.com/sarchlab/mipssim/core"

// Register pseudo-indices for the producer-distance table: HI and LO sit
// past the 32 architectural GPRs (§3).
const (
	regHI = 32
	regLO = 33
	regCount = 34
)

// pipeline depths tracked by the hazard analyzer, in table order.
var pipelineDepths = [3]int{5, 7, 13}

// hazardTable[forwarding][depthIndex] is the maximum producer-consumer
// distance that still counts as a hazard, per §4.3.
var hazardTable = [2][3]int{
	{2, 1, 1}, // no forwarding: 5, 7, 13
	{1, 2, 3}, // with forwarding: 5, 7, 13
}

// loadLookback[depthIndex] bounds how many of the immediately preceding
// instructions are consulted for a load when deciding whether forwarding
// can possibly apply at that depth.
var loadLookback = [3]int{1, 2, 3}

// HazardAnalyzer tracks per-register producer distance and counts data and
// control hazards across three pipeline depths and two forwarding policies.
type HazardAnalyzer struct {
	lastWrite [regCount]int

	hazardTable  [2][3]int
	loadLookback [3]int

	// DataHazards and ControlHazards are indexed [depthIndex][forwardingIndex],
	// forwardingIndex 0 = no forwarding, 1 = with forwarding.
	DataHazards    [3][2]int
	ControlHazards [3][2]int
}

// NewHazardAnalyzer creates a hazard analyzer with every last_write entry
// initialized to zero and the default thresholds from §4.3.
func NewHazardAnalyzer() *HazardAnalyzer {
	return NewHazardAnalyzerWithConfig(DefaultConfig())
}

// NewHazardAnalyzerWithConfig creates a hazard analyzer using cfg's
// thresholds and lookback distances instead of the §4.3 defaults.
func NewHazardAnalyzerWithConfig(cfg Config) *HazardAnalyzer {
	return &HazardAnalyzer{
		hazardTable:  [2][3]int{cfg.HazardNoForward, cfg.HazardForward},
		loadLookback: cfg.LoadLookback,
	}
}

// readDep describes one architectural register a retired instruction reads,
// classified as contributing to a data or a control hazard.
type readDep struct {
	reg       uint8
	isControl bool
}

// readDeps classifies the instruction's source registers per §4.3.
func readDeps(inst core.Instruction) []readDep {
	switch inst.Mnemonic {
	case core.MMFHI:
		return []readDep{{regHI, false}}
	case core.MMFLO:
		return []readDep{{regLO, false}}
	case core.MMTHI, core.MMTLO:
		return []readDep{{inst.Rs, false}}
	case core.MJR, core.MJALR:
		return []readDep{{inst.Rs, true}}
	case core.MSLL, core.MSRL, core.MSRA:
		return []readDep{{inst.Rt, false}}
	case core.MSLLV, core.MSRLV, core.MSRAV:
		return []readDep{{inst.Rt, false}, {inst.Rs, false}}
	case core.MBEQ, core.MBNE:
		return []readDep{{inst.Rs, true}, {inst.Rt, true}}
	case core.MBLEZ, core.MBGTZ, core.MBLTZ, core.MBGEZ, core.MBLTZAL, core.MBGEZAL:
		return []readDep{{inst.Rs, true}}
	case core.MSB, core.MSH, core.MSW, core.MSWL, core.MSWR:
		return []readDep{{inst.Rs, false}, {inst.Rt, false}}
	case core.MLUI, core.MSYSCALL, core.MBREAK, core.MJ, core.MJAL:
		return nil
	case core.MADD, core.MADDU, core.MSUB, core.MSUBU,
		core.MAND, core.MOR, core.MXOR, core.MNOR,
		core.MSLT, core.MSLTU,
		core.MMULT, core.MMULTU, core.MDIV, core.MDIVU:
		return []readDep{{inst.Rs, false}, {inst.Rt, false}}
	default:
		// Generic I-type (addi/addiu/slti/sltiu/andi/ori/xori/loads): reads rs.
		return []readDep{{inst.Rs, false}}
	}
}

// dedupeReads drops r0 reads and collapses repeat reads of the same
// register (e.g. add r2,r1,r1) to a single readDep, so an instruction never
// contributes more than one hazard count per distinct register it reads.
func dedupeReads(deps []readDep) []readDep {
	out := deps[:0]
	for _, dep := range deps {
		if dep.reg == 0 {
			continue
		}
		duplicate := false
		for _, kept := range out {
			if kept.reg == dep.reg {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, dep)
		}
	}
	return out
}

// isLoad reports whether inst is one of lb/lbu/lh/lhu/lw, the only
// mnemonics that can produce a load-use hazard under forwarding.
func isLoad(inst core.Instruction) bool {
	switch inst.Mnemonic {
	case core.MLB, core.MLBU, core.MLH, core.MLHU, core.MLW:
		return true
	default:
		return false
	}
}

// CheckReads evaluates the read-side hazard check (push step 1, §4.2) for
// inst against the current producer-distance table, given the retired
// count so far (0-based: the count of instructions retired strictly before
// inst) and the window of prior non-NOP instructions for load-lookback.
func (h *HazardAnalyzer) CheckReads(inst core.Instruction, retiredBefore int, w *window) {
	deps := dedupeReads(readDeps(inst))
	if len(deps) == 0 {
		return
	}

	for depthIdx := range pipelineDepths {
		lookback := h.loadLookback[depthIdx]
		loadInLookback := false
		for i := 0; i < lookback; i++ {
			if prior, ok := w.at(i); ok && isLoad(prior) {
				loadInLookback = true
				break
			}
		}

		for _, dep := range deps {
			distance := retiredBefore - h.lastWrite[dep.reg]

			bucket := &h.DataHazards
			if dep.isControl {
				bucket = &h.ControlHazards
			}

			if h.hazardTable[0][depthIdx] >= distance {
				bucket[depthIdx][0]++
			}
			if loadInLookback && h.hazardTable[1][depthIdx] >= distance {
				bucket[depthIdx][1]++
			}
		}
	}
}

// writerReg returns the single architectural register inst writes, and
// whether it writes one at all, per §4.3. mult/multu/div/divu write both
// HI and LO and are handled separately by RecordWrite.
func writerReg(inst core.Instruction) (uint8, bool) {
	switch inst.Mnemonic {
	case core.MMTHI:
		return regHI, true
	case core.MMTLO:
		return regLO, true
	case core.MMULT, core.MMULTU, core.MDIV, core.MDIVU:
		return 0, false // handled specially: writes both HI and LO
	case core.MJ, core.MSYSCALL, core.MBREAK,
		core.MBEQ, core.MBNE, core.MBLEZ, core.MBGTZ, core.MBLTZ, core.MBGEZ,
		core.MSB, core.MSH, core.MSW, core.MSWL, core.MSWR:
		return 0, false
	case core.MJALR:
		if inst.Rd == 0 {
			return 31, true
		}
		return inst.Rd, true
	case core.MJAL, core.MBLTZAL, core.MBGEZAL:
		return 31, true
	}
	switch inst.Format {
	case core.FormatR:
		return inst.Rd, true
	case core.FormatI:
		return inst.Rt, true
	default:
		return 0, false
	}
}

// RecordWrite applies push step 2 (§4.2): update last_write[] for whatever
// register(s) inst produces, at the given (0-based) retired index.
func (h *HazardAnalyzer) RecordWrite(inst core.Instruction, retiredIndex int) {
	switch inst.Mnemonic {
	case core.MMULT, core.MMULTU, core.MDIV, core.MDIVU:
		h.lastWrite[regHI] = retiredIndex
		h.lastWrite[regLO] = retiredIndex
		return
	}
	if reg, ok := writerReg(inst); ok && reg != 0 {
		h.lastWrite[reg] = retiredIndex
	}
}

// SkipNOP implements the NOP bookkeeping rule in §4.3: pretend the NOP
// never happened by bumping every last_write entry forward by one, so
// producer distances stay unchanged even though retired advances across it.
func (h *HazardAnalyzer) SkipNOP() {
	for i := range h.lastWrite {
		h.lastWrite[i]++
	}
}
