package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/analysis"
)

var _ = Describe("SaturatingPredictor", func() {
	It("starts weakly-taken and mispredicts at most about half of a strictly alternating stream", func() {
		p := analysis.NewSaturatingPredictor()
		Expect(p.State()).To(Equal(2))

		outcomes := []bool{true, false, true, false, true, false}
		for _, actual := range outcomes {
			p.Update(actual)
		}
		Expect(p.Stats.Mispredictions).To(BeNumerically("<=", len(outcomes)/2+1))
	})

	It("converges to zero mispredictions on a constant stream", func() {
		p := analysis.NewSaturatingPredictor()
		for i := 0; i < 10; i++ {
			p.Update(true)
		}
		Expect(p.Stats.Mispredictions).To(BeNumerically("<=", 1))
		Expect(p.State()).To(Equal(3))
	})

	It("never leaves the [0,3] range", func() {
		p := analysis.NewSaturatingPredictor()
		for i := 0; i < 20; i++ {
			p.Update(false)
			Expect(p.State()).To(BeNumerically(">=", 0))
			Expect(p.State()).To(BeNumerically("<=", 3))
		}
	})
})

var _ = Describe("TwoLevelPredictor", func() {
	It("starts at history zero with every counter weakly-taken", func() {
		p := analysis.NewTwoLevelPredictor()
		Expect(p.History()).To(Equal(0))
	})

	It("reaches steady state on a short periodic pattern", func() {
		p := analysis.NewTwoLevelPredictor()
		pattern := []bool{true, true, false, false}
		for round := 0; round < 3; round++ {
			for _, actual := range pattern {
				p.Update(actual)
			}
		}
		missesLastRound := 0
		for _, actual := range pattern {
			before := p.Stats.Mispredictions
			p.Update(actual)
			if p.Stats.Mispredictions > before {
				missesLastRound++
			}
		}
		Expect(missesLastRound).To(BeNumerically("<=", 1))
	})
})

var _ = Describe("StaticPredictor", func() {
	It("predicts taken for negative immediates and not-taken otherwise", func() {
		p := &analysis.StaticPredictor{}
		p.Update(-1, true)
		Expect(p.Stats.Mispredictions).To(Equal(0))

		p.Update(1, false)
		Expect(p.Stats.Mispredictions).To(Equal(0))

		p.Update(-1, false)
		Expect(p.Stats.Mispredictions).To(Equal(1))
	})
})
