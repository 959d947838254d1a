package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/analysis"
	"github.com/sarchlab/mipssim/core"
)

var _ = Describe("Superscalar", func() {
	var s *analysis.Superscalar

	BeforeEach(func() {
		s = analysis.NewSuperscalar()
	})

	It("pairs two independent arithmetic-logical ops", func() {
		a := core.Instruction{Format: core.FormatR, Mnemonic: core.MADD, Rs: 1, Rt: 2, Rd: 3}
		b := core.Instruction{Format: core.FormatR, Mnemonic: core.MAND, Rs: 4, Rt: 5, Rd: 6}
		s.Observe(core.Instruction{}, a, false)
		s.Observe(a, b, true)
		Expect(s.Pairs).To(Equal(1))
	})

	It("never pairs two memory ops together", func() {
		a := core.Instruction{Format: core.FormatI, Mnemonic: core.MLW, Rs: 1, Rt: 2}
		b := core.Instruction{Format: core.FormatI, Mnemonic: core.MSW, Rs: 1, Rt: 3}
		s.Observe(core.Instruction{}, a, false)
		s.Observe(a, b, true)
		Expect(s.Pairs).To(Equal(0))
	})

	It("never pairs a branch as either half", func() {
		branch := core.Instruction{Format: core.FormatI, Mnemonic: core.MBEQ, Rs: 1, Rt: 2}
		arith := core.Instruction{Format: core.FormatR, Mnemonic: core.MADD, Rs: 3, Rt: 4, Rd: 5}
		s.Observe(core.Instruction{}, branch, false)
		s.Observe(branch, arith, true)
		Expect(s.Pairs).To(Equal(0))
	})

	It("refuses a RAW-dependent pair", func() {
		a := core.Instruction{Format: core.FormatR, Mnemonic: core.MADD, Rs: 1, Rt: 2, Rd: 3}
		b := core.Instruction{Format: core.FormatR, Mnemonic: core.MAND, Rs: 3, Rt: 4, Rd: 5}
		s.Observe(core.Instruction{}, a, false)
		s.Observe(a, b, true)
		Expect(s.Pairs).To(Equal(0))
	})

	It("latches after a pair so three in a row cannot all mutually pair", func() {
		a := core.Instruction{Format: core.FormatR, Mnemonic: core.MADD, Rs: 1, Rt: 2, Rd: 3}
		b := core.Instruction{Format: core.FormatR, Mnemonic: core.MAND, Rs: 4, Rt: 5, Rd: 6}
		c := core.Instruction{Format: core.FormatR, Mnemonic: core.MOR, Rs: 7, Rt: 8, Rd: 9}

		s.Observe(core.Instruction{}, a, false)
		s.Observe(a, b, true) // pairs a+b
		s.Observe(b, c, true) // latched: b may not start a new pair with c
		Expect(s.Pairs).To(Equal(1))
	})
})
