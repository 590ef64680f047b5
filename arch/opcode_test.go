package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word uint16
		op   Opcode
		ok   bool
	}{
		{0x00e0, CLS, true},
		{0x00ee, RET, true},
		{0x0000, Invalid, false},
		{0x00ff, Invalid, false},
		{0x0123, Invalid, false},
		{0x1234, JP, true},
		{0x2300, CALL, true},
		{0x3a12, SEI, true},
		{0x4a12, SNEI, true},
		{0x5ab0, SE, true},
		{0x6a12, LDI, true},
		{0x7a12, ADDI, true},
		{0x8ab0, LD, true},
		{0x8ab1, OR, true},
		{0x8ab2, AND, true},
		{0x8ab3, XOR, true},
		{0x8ab4, ADD, true},
		{0x8ab5, SUB, true},
		{0x8ab6, SHR, true},
		{0x8ab7, SUBN, true},
		{0x8abe, SHL, true},
		{0x8ab8, Invalid, false},
		{0x8abf, Invalid, false},
		{0x9ab0, SNE, true},
		{0xa123, LDIDX, true},
		{0xb123, JPV0, true},
		{0xca0f, RND, true},
		{0xdab5, DRW, true},
		{0xea9e, SKP, true},
		{0xeaa1, SKNP, true},
		{0xea00, Invalid, false},
		{0xfa07, LDVDT, true},
		{0xfa0a, LDKEY, true},
		{0xfa15, LDDTV, true},
		{0xfa18, LDSTV, true},
		{0xfa1e, ADDIDX, true},
		{0xfa29, LDFONT, true},
		{0xfa33, BCD, true},
		{0xfa55, STORE, true},
		{0xfa65, LOAD, true},
		{0xfa99, Invalid, false},
	}

	for _, entry := range table {
		op, ok := Lookup(entry.word)
		assert.Equal(entry.ok, ok, "%04x", entry.word)
		assert.Equal(entry.op, op, "%04x", entry.word)
	}
}

func TestFields(t *testing.T) {
	assert := assert.New(t)

	const word = 0xd5a7
	assert.Equal(0xd, Family(word))
	assert.Equal(0x5, X(word))
	assert.Equal(0xa, Y(word))
	assert.Equal(byte(0x7), N(word))
	assert.Equal(byte(0xa7), KK(word))
	assert.Equal(uint16(0x5a7), Addr(word))
}

func TestNameCoversAllOpcodes(t *testing.T) {
	for op := CLS; op <= LOAD; op++ {
		if _, ok := Name(op); !ok {
			t.Fatalf("opcode %d has no name", op)
		}
	}

	if _, ok := Name(Invalid); ok {
		t.Fatalf("invalid opcode has a name")
	}
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word uint16
		want string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1234, "JP $234"},
		{0xb300, "JP V0, $300"},
		{0x2300, "CALL $300"},
		{0x6a12, "LD VA, $12"},
		{0x8124, "ADD V1, V2"},
		{0x812e, "SHL V1"},
		{0xa2f0, "LD I, $2f0"},
		{0xd015, "DRW V0, V1, 5"},
		{0xf30a, "LD V3, K"},
		{0xf333, "LD B, V3"},
		{0xf355, "LD [I], V3"},
		{0xf365, "LD V3, [I]"},
		{0x00ff, "DW $00ff"},
	}

	for _, entry := range table {
		assert.Equal(entry.want, Disassemble(entry.word), "%04x", entry.word)
	}
}

func TestRegisterName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("V0", RegisterName(0))
	assert.Equal("VA", RegisterName(10))
	assert.Equal("VF", RegisterName(RegisterCount-1))
	assert.Equal("V1", RegisterName(0x11), "index wraps to 4 bits")
}
