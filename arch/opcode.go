// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

import "fmt"

// Opcode identifies a single CHIP-8 instruction, independent of its operands.
type Opcode int

// Known opcodes.
const (
	Invalid Opcode = iota

	CLS  // 00E0
	RET  // 00EE
	JP   // 1nnn
	CALL // 2nnn
	SEI  // 3xkk
	SNEI // 4xkk
	SE   // 5xy0
	LDI  // 6xkk
	ADDI // 7xkk

	LD   // 8xy0
	OR   // 8xy1
	AND  // 8xy2
	XOR  // 8xy3
	ADD  // 8xy4
	SUB  // 8xy5
	SHR  // 8xy6
	SUBN // 8xy7
	SHL  // 8xyE

	SNE    // 9xy0
	LDIDX  // Annn
	JPV0   // Bnnn
	RND    // Cxkk
	DRW    // Dxyn
	SKP    // Ex9E
	SKNP   // ExA1
	LDVDT  // Fx07
	LDKEY  // Fx0A
	LDDTV  // Fx15
	LDSTV  // Fx18
	ADDIDX // Fx1E
	LDFONT // Fx29
	BCD    // Fx33
	STORE  // Fx55
	LOAD   // Fx65
)

// Family returns the top nibble of the instruction word.
func Family(word uint16) int { return int(word >> 12) }

// X returns the first register selector.
func X(word uint16) int { return int(word>>8) & 0xf }

// Y returns the second register selector.
func Y(word uint16) int { return int(word>>4) & 0xf }

// N returns the lowest nibble.
func N(word uint16) byte { return byte(word & 0xf) }

// KK returns the low byte.
func KK(word uint16) byte { return byte(word) }

// Addr returns the low 12 bits.
func Addr(word uint16) uint16 { return word & 0x0fff }

// Lookup resolves the instruction word to its opcode.
// Returns false if the word does not encode a known instruction.
func Lookup(word uint16) (Opcode, bool) {
	switch Family(word) {
	case 0x0:
		switch word {
		case 0x00e0:
			return CLS, true
		case 0x00ee:
			return RET, true
		}
	case 0x1:
		return JP, true
	case 0x2:
		return CALL, true
	case 0x3:
		return SEI, true
	case 0x4:
		return SNEI, true
	case 0x5:
		return SE, true
	case 0x6:
		return LDI, true
	case 0x7:
		return ADDI, true
	case 0x8:
		if op := aluTable[N(word)]; op != Invalid {
			return op, true
		}
	case 0x9:
		return SNE, true
	case 0xa:
		return LDIDX, true
	case 0xb:
		return JPV0, true
	case 0xc:
		return RND, true
	case 0xd:
		return DRW, true
	case 0xe:
		switch KK(word) {
		case 0x9e:
			return SKP, true
		case 0xa1:
			return SKNP, true
		}
	case 0xf:
		if op, ok := miscTable[KK(word)]; ok {
			return op, true
		}
	}
	return Invalid, false
}

// aluTable maps the low nibble of family 8 words.
var aluTable = [16]Opcode{
	0x0: LD,
	0x1: OR,
	0x2: AND,
	0x3: XOR,
	0x4: ADD,
	0x5: SUB,
	0x6: SHR,
	0x7: SUBN,
	0xe: SHL,
}

// miscTable maps the low byte of family F words.
var miscTable = map[byte]Opcode{
	0x07: LDVDT,
	0x0a: LDKEY,
	0x15: LDDTV,
	0x18: LDSTV,
	0x1e: ADDIDX,
	0x29: LDFONT,
	0x33: BCD,
	0x55: STORE,
	0x65: LOAD,
}

// Name returns the mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(op Opcode) (string, bool) {
	switch op {
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case JP, JPV0:
		return "JP", true
	case CALL:
		return "CALL", true
	case SEI, SE:
		return "SE", true
	case SNEI, SNE:
		return "SNE", true
	case LDI, LD, LDIDX, LDVDT, LDKEY, LDDTV, LDSTV, LDFONT, BCD, STORE, LOAD:
		return "LD", true
	case ADDI, ADD, ADDIDX:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SHR:
		return "SHR", true
	case SUBN:
		return "SUBN", true
	case SHL:
		return "SHL", true
	case RND:
		return "RND", true
	case DRW:
		return "DRW", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true
	}
	return "", false
}

// Operands returns the operand listing for the given instruction word,
// formatted in conventional CHIP-8 assembler notation.
func Operands(op Opcode, word uint16) string {
	x, y := X(word), Y(word)
	r := RegisterName

	switch op {
	case JP, CALL:
		return fmt.Sprintf("$%03x", Addr(word))
	case JPV0:
		return fmt.Sprintf("V0, $%03x", Addr(word))
	case SEI, SNEI, LDI, ADDI, RND:
		return fmt.Sprintf("%s, $%02x", r(x), KK(word))
	case SE, SNE, LD, OR, AND, XOR, ADD, SUB, SUBN:
		return fmt.Sprintf("%s, %s", r(x), r(y))
	case SHR, SHL, SKP, SKNP:
		return r(x)
	case LDIDX:
		return fmt.Sprintf("I, $%03x", Addr(word))
	case DRW:
		return fmt.Sprintf("%s, %s, %d", r(x), r(y), N(word))
	case LDVDT:
		return fmt.Sprintf("%s, DT", r(x))
	case LDKEY:
		return fmt.Sprintf("%s, K", r(x))
	case LDDTV:
		return fmt.Sprintf("DT, %s", r(x))
	case LDSTV:
		return fmt.Sprintf("ST, %s", r(x))
	case ADDIDX:
		return fmt.Sprintf("I, %s", r(x))
	case LDFONT:
		return fmt.Sprintf("F, %s", r(x))
	case BCD:
		return fmt.Sprintf("B, %s", r(x))
	case STORE:
		return fmt.Sprintf("[I], %s", r(x))
	case LOAD:
		return fmt.Sprintf("%s, [I]", r(x))
	}
	return ""
}

// Disassemble returns a human readable form of the given instruction word.
// Unknown words are rendered as a data directive.
func Disassemble(word uint16) string {
	op, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf("DW $%04x", word)
	}

	name, _ := Name(op)
	if args := Operands(op, word); len(args) > 0 {
		return name + " " + args
	}
	return name
}
