package cpu

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemory(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	assert.Len(m, MemoryCapacity)
	assert.Equal(fontset[:], []byte(m[FontStart:FontStart+len(fontset)]))
	assert.Equal(make([]byte, MemoryCapacity-len(fontset)), []byte(m[len(fontset):]))
}

func TestMemoryAccess(t *testing.T) {
	assert := assert.New(t)

	m := NewMemory()
	m.SetU8(0x300, 0x12)
	m.SetU8(0x301, 0x34)
	assert.Equal(byte(0x12), m.U8(0x300))
	assert.Equal(uint16(0x1234), m.U16(0x300))

	m.SetU8(0xfff, 0xab)
	assert.Equal(uint16(0xabf0), m.U16(0xfff), "second byte wraps to address 0")

	p := make([]byte, 2)
	m.Read(0x300, p)
	assert.Equal([]byte{0x12, 0x34}, p)
}

func TestMemoryOutOfRange(t *testing.T) {
	m := NewMemory()

	assert.Panics(t, func() { m.U8(MemoryCapacity) })
	assert.Panics(t, func() { m.SetU8(-1, 0) })
	assert.Panics(t, func() { m.Write(0xffe, []byte{1, 2, 3}) })
}

func TestLoad(t *testing.T) {
	table := []struct {
		name string
		size int
		err  error
	}{
		{"empty", 0, ErrROMEmpty},
		{"small", 2, nil},
		{"exact", MaxROMSize, nil},
		{"one too many", MaxROMSize + 1, ErrROMTooLarge},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			m := NewMemory()
			m.SetU8(0x500, 0x77)

			rom := bytes.Repeat([]byte{0xa5}, entry.size)
			err := m.Load(rom)

			if entry.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, entry.err), "%v", err)
				assert.Equal(t, byte(0x77), m.U8(0x500), "memory must be untouched")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, rom, []byte(m[ProgramStart:ProgramStart+entry.size]))
			assert.Equal(t, fontset[:], []byte(m[:len(fontset)]))
		})
	}
}

func TestLoadClearsPreviousProgram(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Load([]byte{1, 2, 3, 4}))
	require.NoError(t, m.Load([]byte{9}))

	assert.Equal(t, []byte{9, 0, 0, 0}, []byte(m[ProgramStart:ProgramStart+4]))
}

func TestCPULoadRejectsBeforeExecution(t *testing.T) {
	c := New(nil, nil, nil)

	err := c.Load(make([]byte, MaxROMSize+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrROMTooLarge))
	assert.Equal(t, uint16(ProgramStart), c.PC)
}
