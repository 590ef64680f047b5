// Package cpu implements the CHIP-8 CPU along with its memory bank and
// display surface.
package cpu

import (
	"fmt"
	"strings"
	"time"

	"github.com/hexaflex/chip8/arch"
)

// Register file dimensions.
const (
	RegisterCount = 16 // Number of general purpose registers V0-VF.
	StackDepth    = 16 // Maximum number of nested subroutine calls.
	VF            = 0xf
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// CPU implements the runtime.
type CPU struct {
	V          [RegisterCount]byte // General purpose registers. VF doubles as flag register.
	I          uint16              // Index register.
	PC         uint16              // Program counter.
	SP         byte                // Number of entries on the call stack.
	Stack      [StackDepth]uint16  // Return addresses.
	DelayTimer byte
	SoundTimer byte

	memory  Memory      // System memory.
	display Framebuffer // Display surface.
	keypad  Keypad      // Input source.
	rng     Entropy     // Random number source.
	trace   TraceFunc   // Handler for debug trace output.
	instr   Instruction // Decoded instruction data.
	waiting bool        // Blocked on LD Vx, K.
}

// New creates a new CPU, reset and ready to load a program.
// Nil arguments are replaced by defaults: no tracing, a keypad without
// any keys pressed and a time seeded entropy source.
func New(trace TraceFunc, keypad Keypad, rng Entropy) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	if keypad == nil {
		keypad = noKeys{}
	}

	if rng == nil {
		rng = NewEntropy(time.Now().UnixNano())
	}

	c := &CPU{
		trace:  trace,
		keypad: keypad,
		rng:    rng,
	}

	c.Reset()
	return c
}

// Reset clears memory, registers and display and preloads the font.
func (c *CPU) Reset() {
	c.memory = NewMemory()
	c.display = Framebuffer{}
	c.display.Clear()

	c.V = [RegisterCount]byte{}
	c.I = 0
	c.PC = ProgramStart
	c.SP = 0
	c.Stack = [StackDepth]uint16{}
	c.DelayTimer = 0
	c.SoundTimer = 0
	c.waiting = false
}

// Load copies the given rom image into memory.
func (c *CPU) Load(rom []byte) error {
	return c.memory.Load(rom)
}

// Memory returns the cpu's memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Display returns the display surface.
func (c *CPU) Display() *Framebuffer {
	return &c.display
}

// SoundActive returns true while the sound timer is running.
func (c *CPU) SoundActive() bool {
	return c.SoundTimer > 0
}

// Waiting returns true if the last step blocked on a key press.
func (c *CPU) Waiting() bool {
	return c.waiting
}

// Frame decrements the delay and sound timers. It is called at 60Hz.
func (c *CPU) Frame() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
	}
}

// Step performs a single fetch-decode-execute cycle.
//
// A returned error is fatal. It is of type *Error and the CPU state is left
// exactly as it was before the failing instruction.
func (c *CPU) Step() error {
	mem := c.memory
	instr := &c.instr

	if !instr.Decode(mem, c.PC) {
		return NewError(instr, ErrInvalidOpcode)
	}

	c.trace(instr)

	v := c.V[:]
	x, y := instr.X, instr.Y
	next := c.PC + 2

	switch instr.Op {
	case arch.CLS:
		c.display.Clear()

	case arch.RET:
		if c.SP == 0 {
			return NewError(instr, ErrStackUnderflow)
		}
		c.SP--
		next = c.Stack[c.SP] + 2

	case arch.JP:
		next = instr.Addr

	case arch.CALL:
		if int(c.SP) >= StackDepth {
			return NewError(instr, ErrStackOverflow)
		}
		c.Stack[c.SP] = c.PC
		c.SP++
		next = instr.Addr

	case arch.SEI:
		if v[x] == instr.KK {
			next += 2
		}
	case arch.SNEI:
		if v[x] != instr.KK {
			next += 2
		}
	case arch.SE:
		if v[x] == v[y] {
			next += 2
		}
	case arch.SNE:
		if v[x] != v[y] {
			next += 2
		}

	case arch.LDI:
		v[x] = instr.KK
	case arch.ADDI:
		v[x] += instr.KK

	case arch.LD:
		v[x] = v[y]
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]
	case arch.ADD:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = byte(sum)
		v[VF] = byte(sum >> 8)
	case arch.SUB:
		flag := _bool(v[x] >= v[y])
		v[x] -= v[y]
		v[VF] = flag
	case arch.SUBN:
		flag := _bool(v[y] >= v[x])
		v[x] = v[y] - v[x]
		v[VF] = flag
	case arch.SHR:
		flag := v[x] & 1
		v[x] >>= 1
		v[VF] = flag
	case arch.SHL:
		flag := v[x] >> 7
		v[x] <<= 1
		v[VF] = flag

	case arch.LDIDX:
		c.I = instr.Addr
	case arch.JPV0:
		next = uint16(v[0]) + instr.Addr
	case arch.RND:
		v[x] = c.rng.Byte() & instr.KK

	case arch.DRW:
		var rows [15]byte
		sprite := rows[:instr.N]
		for i := range sprite {
			sprite[i] = mem.U8((int(c.I) + i) & AddressMask)
		}
		collision := c.display.DrawSprite(int(v[x]), int(v[y]), sprite)
		v[VF] = _bool(collision)

	case arch.SKP:
		if c.keypad.IsPressed(v[x] & 0xf) {
			next += 2
		}
	case arch.SKNP:
		if !c.keypad.IsPressed(v[x] & 0xf) {
			next += 2
		}

	case arch.LDVDT:
		v[x] = c.DelayTimer
	case arch.LDKEY:
		key, ok := c.keypad.Pressed()
		if !ok {
			c.waiting = true
			return nil
		}
		v[x] = key & 0xf
	case arch.LDDTV:
		c.DelayTimer = v[x]
	case arch.LDSTV:
		c.SoundTimer = v[x]
	case arch.ADDIDX:
		c.I += uint16(v[x])
	case arch.LDFONT:
		c.I = FontStart + uint16(v[x])*GlyphSize

	case arch.BCD:
		value := v[x]
		mem.SetU8(int(c.I)&AddressMask, value/100)
		mem.SetU8(int(c.I+1)&AddressMask, value/10%10)
		mem.SetU8(int(c.I+2)&AddressMask, value%10)
	case arch.STORE:
		for i := 0; i <= x; i++ {
			mem.SetU8((int(c.I)+i)&AddressMask, v[i])
		}
	case arch.LOAD:
		for i := 0; i <= x; i++ {
			v[i] = mem.U8((int(c.I) + i) & AddressMask)
		}
	}

	c.waiting = false
	c.PC = next
	return nil
}

// String returns a dump of the register file.
func (c *CPU) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PC: %04x I: %04x SP: %02x DT: %02x ST: %02x\n",
		c.PC, c.I, c.SP, c.DelayTimer, c.SoundTimer)

	for i, reg := range c.V {
		fmt.Fprintf(&sb, "%s=%02x", arch.RegisterName(i), reg)
		if i < len(c.V)-1 {
			sb.WriteString(" ")
		}
	}

	if c.SP > 0 {
		sb.WriteString("\nstack:")
		for _, addr := range c.Stack[:c.SP] {
			fmt.Fprintf(&sb, " %04x", addr)
		}
	}

	return sb.String()
}

func _bool(v bool) byte {
	if v {
		return 1
	}
	return 0
}
