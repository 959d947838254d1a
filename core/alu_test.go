package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/core"
)

var _ = Describe("ALU", func() {
	var (
		state *core.State
		alu   *core.ALU
	)

	BeforeEach(func() {
		state = &core.State{}
		alu = core.NewALU(state)
	})

	It("is antisymmetric for slt", func() {
		pairs := [][2]uint32{
			{1, 2}, {2, 1}, {5, 5}, {0xFFFFFFFF, 1}, {1, 0xFFFFFFFF},
		}
		for _, p := range pairs {
			state.SetReg(1, p[0])
			state.SetReg(2, p[1])
			alu.SLT(10, 1, 2)
			ab := state.Reg(10)
			alu.SLT(11, 2, 1)
			ba := state.Reg(11)
			Expect(ab + ba).To(BeNumerically("<=", 1))
			if p[0] != p[1] {
				Expect(ab + ba).To(BeEquivalentTo(1))
			}
		}
	})

	It("recovers the signed 16-bit value through sign extension", func() {
		for _, imm16 := range []uint16{0x0000, 0x7FFF, 0x8000, 0xFFFF, 0x1234} {
			alu.ADDI(1, 0, int32(int16(imm16)))
			Expect(int16(state.Reg(1))).To(Equal(int16(imm16)))
		}
	})

	It("wraps addu silently past the unsigned maximum", func() {
		state.SetReg(1, 0xFFFFFFFF)
		state.SetReg(2, 2)
		alu.ADDU(3, 1, 2)
		Expect(state.Reg(3)).To(BeEquivalentTo(1))
	})

	It("raises an overflow error on add when operand signs agree but the result's does not", func() {
		state.SetReg(1, 0x7FFFFFFF)
		state.SetReg(2, 1)
		err := alu.ADD(3, 1, 2)
		Expect(err).To(HaveOccurred())
	})

	It("does not overflow add when operand signs differ", func() {
		state.SetReg(1, 0x7FFFFFFF)
		state.SetReg(2, 0xFFFFFFFF) // -1
		err := alu.ADD(3, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(state.Reg(3)).To(BeEquivalentTo(0x7FFFFFFE))
	})

	It("produces a 64-bit product into HI:LO for mult", func() {
		state.SetReg(1, 0xFFFFFFFF) // -1
		state.SetReg(2, 0xFFFFFFFF) // -1
		alu.MULT(1, 2)
		Expect(state.HI).To(BeEquivalentTo(0))
		Expect(state.LO).To(BeEquivalentTo(1)) // (-1)*(-1) = 1
	})

	It("places quotient in LO and remainder in HI for div", func() {
		state.SetReg(1, 17)
		state.SetReg(2, 5)
		alu.DIV(1, 2)
		Expect(state.LO).To(BeEquivalentTo(3))
		Expect(state.HI).To(BeEquivalentTo(2))
	})

	It("discards writes to r0", func() {
		state.SetReg(1, 9)
		alu.ADD(0, 1, 1)
		Expect(state.Reg(0)).To(BeEquivalentTo(0))
	})
})
