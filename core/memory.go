package core

// Memory implements the DM abstraction: a word-addressed, big-endian-lane
// read/write store. Word-aligned accesses go straight through; byte and
// halfword accesses are synthesized here from a full-word read-modify-write,
// matching the lane layout mandated by the partial-load/store semantics in
// §4.1 and §9 ("DM as storing big-endian-lane words regardless of host byte
// order"). This stands in for the memory image; it is not a cache model.
type Memory struct {
	words map[uint32]uint32
}

// NewMemory creates an empty word-addressed memory.
func NewMemory() *Memory {
	return &Memory{words: make(map[uint32]uint32)}
}

// ReadWord reads the 32-bit word at a word-aligned address. Unwritten
// addresses read as zero.
func (m *Memory) ReadWord(addr uint32) uint32 {
	return m.words[addr&^3]
}

// WriteWord writes a full 32-bit word at a word-aligned address.
func (m *Memory) WriteWord(addr uint32, value uint32) {
	m.words[addr&^3] = value
}

// byteShift returns the bit shift for the byte lane addr falls in. Lane 0
// is the most-significant byte of the word (big-endian within the word).
func byteShift(addr uint32) uint32 {
	return (3 - (addr & 3)) * 8
}

// halfShift returns the bit shift for the halfword lane addr falls in.
func halfShift(addr uint32) uint32 {
	return (1 - ((addr & 3) >> 1)) * 16
}

// ReadByte extracts the byte at addr from its containing word.
func (m *Memory) ReadByte(addr uint32) uint8 {
	word := m.ReadWord(addr)
	return uint8(word >> byteShift(addr))
}

// WriteByte writes a single byte lane, leaving the rest of the word intact.
func (m *Memory) WriteByte(addr uint32, value uint8) {
	shift := byteShift(addr)
	word := m.ReadWord(addr)
	word = (word &^ (0xFF << shift)) | (uint32(value) << shift)
	m.WriteWord(addr, word)
}

// ReadHalf extracts the halfword at addr from its containing word.
func (m *Memory) ReadHalf(addr uint32) uint16 {
	word := m.ReadWord(addr)
	return uint16(word >> halfShift(addr))
}

// WriteHalf writes a single halfword lane, leaving the rest of the word intact.
func (m *Memory) WriteHalf(addr uint32, value uint16) {
	shift := halfShift(addr)
	word := m.ReadWord(addr)
	word = (word &^ (0xFFFF << shift)) | (uint32(value) << shift)
	m.WriteWord(addr, word)
}
