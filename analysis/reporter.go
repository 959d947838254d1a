package analysis

import (
	"fmt"
	"io"
)

// stallPerMispred gives the estimated stall cycles a single misprediction
// costs at each pipeline depth, per §4.4: a 5-stage pipeline flushes 1
// cycle, a 7-stage flushes 5, a 13-stage flushes 13.
var stallPerMispred = [3]int{1, 5, 13}

// Report is the end-of-run summary an Analyzer produces, per §6's end()
// contract.
type Report struct {
	Retired int
	NOPs    int

	DataHazards    [3][2]int
	ControlHazards [3][2]int

	TotalBranches       int
	StaticMispredicts   int
	SaturatingMispredicts int
	TwoLevelMispredicts int

	SuperscalarPairs int
}

// Report snapshots the analyzer's current counters into a Report.
func (a *Analyzer) Report() Report {
	return Report{
		Retired:               a.Retired,
		NOPs:                  a.NOPs,
		DataHazards:           a.Hazard.DataHazards,
		ControlHazards:        a.Hazard.ControlHazards,
		TotalBranches:         a.Predictors.TotalBranches,
		StaticMispredicts:     a.Predictors.Static.Stats.Mispredictions,
		SaturatingMispredicts: a.Predictors.Saturating.Stats.Mispredictions,
		TwoLevelMispredicts:   a.Predictors.TwoLevel.Stats.Mispredictions,
		SuperscalarPairs:      a.Superscalar.Pairs,
	}
}

// StallEstimate returns the estimated stall cycles a predictor's
// mispredictions cost at the given pipeline depth index (0=5,1=7,2=13),
// per §4.4.
func (r Report) StallEstimate(mispredicts, depthIndex int) int {
	return mispredicts * stallPerMispred[depthIndex]
}

// Write renders a human-readable end-of-run report to w, per §6.
func (r Report) Write(w io.Writer) error {
	depths := [3]int{5, 7, 13}

	if _, err := fmt.Fprintf(w, "instructions retired: %d (nops: %d)\n", r.Retired, r.NOPs); err != nil {
		return err
	}
	for i, depth := range depths {
		if _, err := fmt.Fprintf(w, "hazards @%2d-stage: data=%d/%d control=%d/%d (no-fwd/fwd)\n",
			depth,
			r.DataHazards[i][0], r.DataHazards[i][1],
			r.ControlHazards[i][0], r.ControlHazards[i][1],
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "branches: %d\n", r.TotalBranches); err != nil {
		return err
	}
	predictors := []struct {
		name string
		miss int
	}{
		{"static", r.StaticMispredicts},
		{"saturating", r.SaturatingMispredicts},
		{"two-level", r.TwoLevelMispredicts},
	}
	for _, p := range predictors {
		rate := 0.0
		if r.TotalBranches > 0 {
			rate = float64(p.miss) / float64(r.TotalBranches) * 100
		}
		if _, err := fmt.Fprintf(w, "  %-10s mispredicts=%d (%.1f%%) stalls@5/7/13=%d/%d/%d\n",
			p.name, p.miss, rate,
			r.StallEstimate(p.miss, 0), r.StallEstimate(p.miss, 1), r.StallEstimate(p.miss, 2),
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "superscalar pairs: %d\n", r.SuperscalarPairs); err != nil {
		return err
	}
	return nil
}
