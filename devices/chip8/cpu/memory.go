package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	MemoryCapacity = 0x1000                        // Size of the address space.
	AddressMask    = MemoryCapacity - 1            // Mask applied to computed addresses.
	ProgramStart   = 0x200                         // Load address of a ROM image and initial PC.
	MaxROMSize     = MemoryCapacity - ProgramStart // Largest ROM image that fits.
	FontStart      = 0x000                         // Address of the builtin hex font.
)

// Memory defines the system's memory bank.
type Memory []byte

// NewMemory returns a zeroed memory bank with the font preloaded.
func NewMemory() Memory {
	m := make(Memory, MemoryCapacity)
	m.Write(FontStart, fontset[:])
	return m
}

// U8 returns the byte at the given address.
func (m Memory) U8(addr int) byte {
	m.check(addr)
	return m[addr]
}

// SetU8 sets the byte at the given address.
func (m Memory) SetU8(addr int, value byte) {
	m.check(addr)
	m[addr] = value
}

// U16 returns the big-endian 16-bit value at the given address.
// The second byte wraps around the end of the address space.
func (m Memory) U16(addr int) uint16 {
	return uint16(m.U8(addr))<<8 | uint16(m.U8((addr+1)&AddressMask))
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(address int, p []byte) {
	if len(p) == 0 {
		return
	}
	m.check(address)
	m.check(address + len(p) - 1)
	copy(m[address:], p)
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(address int, p []byte) {
	if len(p) == 0 {
		return
	}
	m.check(address)
	m.check(address + len(p) - 1)
	copy(p, m[address:])
}

// Load copies the rom image into the program area. Any previous program
// is cleared first. Memory is left untouched if the image is rejected.
func (m Memory) Load(rom []byte) error {
	if err := CheckROM(rom); err != nil {
		return err
	}

	program := m[ProgramStart:]
	for i := range program {
		program[i] = 0
	}

	copy(program, rom)
	return nil
}

// CheckROM returns an error if the rom image can not be loaded.
func CheckROM(rom []byte) error {
	if len(rom) == 0 {
		return ErrROMEmpty
	}

	if len(rom) > MaxROMSize {
		return errors.Wrap(ErrROMTooLarge, f("%d bytes, limit is %d", len(rom), MaxROMSize))
	}

	return nil
}

// check panics if addr lies outside the address space. Callers mask
// computed addresses first, so this only trips on programming errors.
func (m Memory) check(addr int) {
	if addr < 0 || addr >= len(m) {
		panic(fmt.Sprintf("memory access out of range: %#x", addr))
	}
}
