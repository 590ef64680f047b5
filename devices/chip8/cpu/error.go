package cpu

import (
	"errors"
	"fmt"

	"github.com/hexaflex/chip8/translate"
)

var f = translate.From

var (
	// Load errors. The program can be rejected without side effects.
	ErrROMTooLarge = errors.New(f("rom too large"))
	ErrROMEmpty    = errors.New(f("rom empty"))

	// Runtime errors. Execution can not continue after one of these.
	ErrInvalidOpcode  = errors.New(f("invalid opcode"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
)

// Error defines a runtime error. It carries the instruction that failed.
type Error struct {
	Instruction
	Err error
}

// NewError creates a new runtime error for the given instruction.
func NewError(instr *Instruction, err error) *Error {
	return &Error{
		Instruction: *instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %04x: %v", e.PC, e.Opcode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
