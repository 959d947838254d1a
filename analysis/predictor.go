package analysis

import "github.com/sarchlab/mipssim/core"

// satInit is the initial value of every 2-bit saturating counter (§3):
// "weakly taken", biasing the first prediction towards taken.
const satInit = 2

// clampSat keeps a 2-bit saturating counter in [0,3].
func clampSat(c int, taken bool) int {
	if taken {
		if c < 3 {
			c++
		}
	} else {
		if c > 0 {
			c--
		}
	}
	return c
}

// PredictorStats accumulates one predictor's outcome counters (§3, §4.4).
type PredictorStats struct {
	Mispredictions int
	Total          int
}

// StaticPredictor always predicts backwards branches taken, per §4.4.
type StaticPredictor struct {
	Stats PredictorStats
}

// Update evaluates the static predictor against imm (which determines the
// predicted direction) and the actual outcome, updating Stats.
func (p *StaticPredictor) Update(imm int32, actual bool) {
	predicted := imm < 0
	p.Stats.Total++
	if predicted != actual {
		p.Stats.Mispredictions++
	}
}

// SaturatingPredictor is a single 2-bit saturating counter shared across
// all branches (a bimodal predictor with one global entry), per §4.4.
type SaturatingPredictor struct {
	state int
	Stats PredictorStats
}

// NewSaturatingPredictor creates a saturating predictor at its initial state.
func NewSaturatingPredictor() *SaturatingPredictor {
	return &SaturatingPredictor{state: satInit}
}

// Update predicts from the pre-update state, compares to actual, then
// adjusts the counter.
func (p *SaturatingPredictor) Update(actual bool) {
	predicted := p.state >= 2
	p.Stats.Total++
	if predicted != actual {
		p.Stats.Mispredictions++
	}
	p.state = clampSat(p.state, actual)
}

// State returns the current counter value, mostly useful for tests.
func (p *SaturatingPredictor) State() int {
	return p.state
}

// TwoLevelPredictor indexes a table of four saturating counters by a 2-bit
// global history register, per §4.4.
type TwoLevelPredictor struct {
	history int
	table   [4]int
	Stats   PredictorStats
}

// NewTwoLevelPredictor creates a two-level predictor with history zero and
// every table entry at its initial saturating value.
func NewTwoLevelPredictor() *TwoLevelPredictor {
	p := &TwoLevelPredictor{}
	for i := range p.table {
		p.table[i] = satInit
	}
	return p
}

// Update predicts using the counter the current history selects, compares
// to actual, updates that counter, then shifts actual into history.
func (p *TwoLevelPredictor) Update(actual bool) {
	counter := p.table[p.history]
	predicted := counter >= 2
	p.Stats.Total++
	if predicted != actual {
		p.Stats.Mispredictions++
	}
	p.table[p.history] = clampSat(counter, actual)

	bit := 0
	if actual {
		bit = 1
	}
	p.history = ((p.history << 1) | bit) & 3
}

// History returns the current global history register, mostly for tests.
func (p *TwoLevelPredictor) History() int {
	return p.history
}

// actualTaken computes whether a conditional branch was actually taken,
// recomputed from the already-executed register values rather than the
// raw instruction fields. The source compares inst.rs (a register index)
// for blez/bgtz/bltz/bgez, which is a bug; this compares R[rs], matching
// the stated intent (§9).
func actualTaken(inst core.Instruction, regs core.RegisterView) bool {
	switch inst.Mnemonic {
	case core.MBEQ:
		return regs.Reg(inst.Rs) == regs.Reg(inst.Rt)
	case core.MBNE:
		return regs.Reg(inst.Rs) != regs.Reg(inst.Rt)
	case core.MBLEZ:
		return int32(regs.Reg(inst.Rs)) <= 0
	case core.MBGTZ:
		return int32(regs.Reg(inst.Rs)) > 0
	case core.MBLTZ:
		return int32(regs.Reg(inst.Rs)) < 0
	case core.MBGEZ:
		return int32(regs.Reg(inst.Rs)) >= 0
	default:
		return false
	}
}

// isConditionalBranch reports whether inst is one of the six mnemonics the
// branch predictors track (§4.4). bltzal/bgezal/jal/jr/jalr are excluded:
// only beq/bne/blez/bgtz/bltz/bgez feed the predictors.
func isConditionalBranch(inst core.Instruction) bool {
	switch inst.Mnemonic {
	case core.MBEQ, core.MBNE, core.MBLEZ, core.MBGTZ, core.MBLTZ, core.MBGEZ:
		return true
	default:
		return false
	}
}

// Predictors bundles the three independent branch predictors and the
// shared total-branches counter.
type Predictors struct {
	Static      StaticPredictor
	Saturating  *SaturatingPredictor
	TwoLevel    *TwoLevelPredictor
	TotalBranches int
}

// NewPredictors creates the three predictors at their initial states.
func NewPredictors() *Predictors {
	return &Predictors{
		Saturating: NewSaturatingPredictor(),
		TwoLevel:   NewTwoLevelPredictor(),
	}
}

// Observe feeds one conditional branch's outcome to all three predictors,
// if inst is in fact a conditional branch; otherwise it is a no-op.
func (p *Predictors) Observe(inst core.Instruction, regs core.RegisterView) {
	if !isConditionalBranch(inst) {
		return
	}
	actual := actualTaken(inst, regs)
	p.TotalBranches++
	p.Static.Update(inst.Imm, actual)
	p.Saturating.Update(actual)
	p.TwoLevel.Update(actual)
}
