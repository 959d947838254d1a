package analysis

import "github.com/sarchlab/mipssim/core"

// Analyzer implements the microarchitectural analysis engine: the hazard
// detector, the three branch predictors, and the superscalar pairing
// checker, all driven by one retired-instruction stream (§3, §4.2).
type Analyzer struct {
	Hazard      *HazardAnalyzer
	Predictors  *Predictors
	Superscalar *Superscalar

	window *window

	Retired int
	NOPs    int
}

// NewAnalyzer creates an analyzer with every sub-component at its initial
// state, per §3, using the default §4.3 hazard configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer using cfg's hazard thresholds.
func NewAnalyzerWithConfig(cfg Config) *Analyzer {
	return &Analyzer{
		Hazard:      NewHazardAnalyzerWithConfig(cfg),
		Predictors:  NewPredictors(),
		Superscalar: NewSuperscalar(),
		window:      newWindow(),
	}
}

// Push feeds one retired instruction through the five-step analysis
// pipeline (§4.2): read-side hazard check, write-side last_write update,
// branch outcome, window update, superscalar pair test. regs must reflect
// register state after inst has executed.
func (a *Analyzer) Push(inst core.Instruction, regs core.RegisterView) {
	a.Retired++
	retiredBefore := a.Retired - 1

	if inst.IsNOP() {
		a.NOPs++
		a.Hazard.SkipNOP()
		a.Superscalar.Observe(core.Instruction{}, inst, false)
		return
	}

	// Step 1: read-side hazard check.
	a.Hazard.CheckReads(inst, retiredBefore, a.window)

	// Step 2: write-side last_write update.
	a.Hazard.RecordWrite(inst, retiredBefore)

	// Step 3: branch outcome.
	a.Predictors.Observe(inst, regs)

	// Step 4: window update, then step 5: superscalar pair test against
	// the instruction that was newest before this push.
	prev, hasPrev := a.window.at(0)
	a.window.push(inst)
	a.Superscalar.Observe(prev, inst, hasPrev)
}
