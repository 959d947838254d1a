package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipssim/core"
)

var _ = Describe("Memory", func() {
	var mem *core.Memory

	BeforeEach(func() {
		mem = core.NewMemory()
	})

	It("round-trips a word", func() {
		mem.WriteWord(0x1000, 0xDEADBEEF)
		Expect(mem.ReadWord(0x1000)).To(BeEquivalentTo(0xDEADBEEF))
	})

	It("round-trips every byte lane without disturbing its neighbors", func() {
		mem.WriteWord(0x1000, 0)
		for lane := uint32(0); lane < 4; lane++ {
			mem.WriteByte(0x1000+lane, uint8(0x10+lane))
		}
		for lane := uint32(0); lane < 4; lane++ {
			Expect(mem.ReadByte(0x1000 + lane)).To(BeEquivalentTo(0x10 + lane))
		}
	})

	It("round-trips both halfword lanes", func() {
		mem.WriteWord(0x2000, 0)
		mem.WriteHalf(0x2000, 0xAAAA)
		mem.WriteHalf(0x2002, 0xBBBB)
		Expect(mem.ReadHalf(0x2000)).To(BeEquivalentTo(0xAAAA))
		Expect(mem.ReadHalf(0x2002)).To(BeEquivalentTo(0xBBBB))
	})

	It("reads unwritten addresses as zero", func() {
		Expect(mem.ReadWord(0x4000)).To(BeEquivalentTo(0))
	})
})

var _ = Describe("LoadStoreUnit", func() {
	var (
		state *core.State
		mem   *core.Memory
		lsu   *core.LoadStoreUnit
	)

	BeforeEach(func() {
		state = &core.State{}
		mem = core.NewMemory()
		lsu = core.NewLoadStoreUnit(state, mem)
	})

	It("round-trips a stored word through lw/sw", func() {
		state.SetReg(2, 0x1234ABCD)
		lsu.SW(2, 0, 0x100)
		lsu.LW(3, 0, 0x100)
		Expect(state.Reg(3)).To(BeEquivalentTo(0x1234ABCD))
	})

	It("round-trips a stored byte through lb/sb", func() {
		state.SetReg(2, 0xFFFFFF80) // -128 sign-extended
		lsu.SB(2, 0, 0x200)
		lsu.LB(3, 0, 0x200)
		Expect(int32(state.Reg(3))).To(Equal(int32(-128)))
	})

	It("round-trips a stored halfword through lh/sh", func() {
		state.SetReg(2, 0x00007FFF)
		lsu.SH(2, 0, 0x300)
		lsu.LH(3, 0, 0x300)
		Expect(state.Reg(3)).To(BeEquivalentTo(0x7FFF))
	})

	It("reassembles a word via lwl(A)+lwr(A+3) at every byte alignment", func() {
		bytes := [8]uint8{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
		for i, b := range bytes {
			mem.WriteByte(0x400+uint32(i), b)
		}
		state.SetReg(1, 0x400)

		for a := int32(0); a < 4; a++ {
			expected := uint32(bytes[a])<<24 | uint32(bytes[a+1])<<16 | uint32(bytes[a+2])<<8 | uint32(bytes[a+3])
			state.SetReg(5, 0)
			lsu.LWL(5, 1, a)
			lsu.LWR(5, 1, a+3)
			Expect(state.Reg(5)).To(BeEquivalentTo(expected), "alignment %d", a)
		}
	})
})
