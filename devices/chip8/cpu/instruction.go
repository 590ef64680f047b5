package cpu

import (
	"github.com/hexaflex/chip8/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	PC     uint16      // Instruction address.
	Opcode uint16      // Raw instruction word.
	Op     arch.Opcode // Resolved instruction; arch.Invalid if unknown.
	Family int         // Top nibble.
	X      int         // First register selector.
	Y      int         // Second register selector.
	N      byte        // Low nibble.
	KK     byte        // Low byte.
	Addr   uint16      // Low 12 bits.
}

// Decode fetches and decodes the instruction at pc from the given memory bank.
// Returns false if the word does not encode a known instruction. The operand
// fields are filled in either way.
func (i *Instruction) Decode(m Memory, pc uint16) bool {
	i.PC = pc
	i.Opcode = m.U16(int(pc) & AddressMask)
	i.Family = arch.Family(i.Opcode)
	i.X = arch.X(i.Opcode)
	i.Y = arch.Y(i.Opcode)
	i.N = arch.N(i.Opcode)
	i.KK = arch.KK(i.Opcode)
	i.Addr = arch.Addr(i.Opcode)

	var ok bool
	i.Op, ok = arch.Lookup(i.Opcode)
	return ok
}

// String returns the disassembled instruction.
func (i *Instruction) String() string {
	return arch.Disassemble(i.Opcode)
}
