package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/analysis"
	"github.com/sarchlab/mipssim/core"
)

var _ = Describe("Analyzer", func() {
	var (
		m   *core.Machine
		a   *analysis.Analyzer
		run func(f func() (core.Instruction, error))
	)

	BeforeEach(func() {
		m = core.NewMachine()
		m.Begin(0)
		a = analysis.NewAnalyzer()
		run = func(f func() (core.Instruction, error)) {
			inst, _ := f()
			a.Push(inst, m.State)
		}
	})

	It("counts two no-forwarding data hazards at depth 5 for back-to-back producers (§8 scenario 1)", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 1, 5) })  // addi r1,r0,5
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 2, 7) })  // addi r2,r0,7
		run(func() (core.Instruction, error) { return m.ExecuteR(1, 2, 3, 0, core.FnADD) }) // add r3,r1,r2
		run(func() (core.Instruction, error) { return m.ExecuteR(0, 0, 0, 0, core.FnSYSCALL) })

		Expect(m.State.Reg(3)).To(BeEquivalentTo(12))
		Expect(a.Retired).To(Equal(4))
		Expect(a.NOPs).To(Equal(0))
		Expect(a.Hazard.DataHazards[0][0]).To(Equal(2)) // depth 5, no forwarding
		Expect(a.Hazard.DataHazards[0][1]).To(Equal(0)) // depth 5, with forwarding
		Expect(a.Predictors.TotalBranches).To(Equal(0))
	})

	It("detects a load-use hazard even with forwarding (§8 scenario 4)", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpLW, 0, 1, 0) })     // lw r1,0(r0)
		run(func() (core.Instruction, error) { return m.ExecuteR(1, 1, 2, 0, core.FnADD) }) // add r2,r1,r1

		Expect(a.Hazard.DataHazards[0][1]).To(Equal(1))
	})

	It("reconstructs an immediate via lui/ori (§8 scenario 5)", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpLUI, 0, 1, 0x1234) })
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpORI, 1, 1, 0x5678) })

		Expect(m.State.Reg(1)).To(BeEquivalentTo(0x12345678))
	})

	It("does not take a false branch and leaves downstream state correct (§8 scenario 2)", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 1, 1) }) // addi r1,r0,1
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpBEQ, 1, 0, 2) })   // beq r1,r0,+8
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 2, 2) }) // addi r2,r0,2 (delay slot)
		run(func() (core.Instruction, error) { return m.ExecuteR(0, 0, 0, 0, core.FnSYSCALL) })

		Expect(m.State.Reg(2)).To(BeEquivalentTo(2))
		Expect(a.Predictors.TotalBranches).To(Equal(1))
		Expect(a.Predictors.Static.Stats.Mispredictions).To(Equal(0))
		Expect(a.Predictors.Saturating.Stats.Mispredictions).To(Equal(1))
	})

	It("converges the saturating predictor and keeps the static predictor perfect on a backward-taken loop (§8 scenario 3)", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 1, 1) }) // addi r1,r0,1: r1 != r0 always
		for i := 0; i < 4; i++ {
			run(func() (core.Instruction, error) { return m.ExecuteI(core.OpBNE, 1, 0, 0xffff) })
			run(func() (core.Instruction, error) { return m.ExecuteR(0, 0, 0, 0, core.FnSLL) }) // nop delay slot
		}

		Expect(a.Predictors.TotalBranches).To(Equal(4))
		Expect(a.Predictors.Static.Stats.Mispredictions).To(Equal(0))
		Expect(a.Predictors.Saturating.Stats.Mispredictions).To(BeNumerically("<=", 1))
	})

	It("terminates on overflow (§8 scenario 6)", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpLUI, 0, 1, 0x7fff) })
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpORI, 1, 1, 0xffff) })
		Expect(m.State.Reg(1)).To(BeEquivalentTo(0x7fffffff))

		_, err := m.ExecuteI(core.OpADDI, 1, 1, 1)
		Expect(err).To(HaveOccurred())
	})

	It("counts a NOP and advances last_write without contributing a hazard", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 1, 1) })
		run(func() (core.Instruction, error) { return m.ExecuteR(0, 0, 0, 0, core.FnSLL) }) // nop
		run(func() (core.Instruction, error) { return m.ExecuteR(1, 1, 2, 0, core.FnADD) })

		Expect(a.NOPs).To(Equal(1))
		Expect(a.Retired).To(Equal(3))
	})

	It("recognizes a dual-issue pair of two independent arithmetic ops", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 1, 1) })
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 2, 2) })

		Expect(a.Superscalar.Pairs).To(Equal(1))
	})

	It("refuses to pair a RAW-dependent pair of arithmetic ops", func() {
		run(func() (core.Instruction, error) { return m.ExecuteI(core.OpADDI, 0, 1, 1) })
		run(func() (core.Instruction, error) { return m.ExecuteR(1, 1, 2, 0, core.FnADD) })

		Expect(a.Superscalar.Pairs).To(Equal(0))
	})
})
