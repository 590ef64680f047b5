package termio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

func TestRender(t *testing.T) {
	assert := assert.New(t)

	var fb cpu.Framebuffer
	fb.DrawSprite(0, 0, []byte{0x80, 0x00, 0x80, 0x80})
	fb.DrawSprite(63, 31, []byte{0x80})
	snap := fb.Snapshot()

	var out bytes.Buffer
	require.NoError(t, Render(&out, &snap))

	s := strings.TrimPrefix(out.String(), cursorHome)
	lines := strings.Split(strings.TrimSuffix(s, "\r\n"), "\r\n")
	require.Len(t, lines, cpu.DisplayHeight/2)

	first := []rune(lines[0])
	second := []rune(lines[1])
	last := []rune(lines[len(lines)-1])

	assert.Len(first, cpu.DisplayWidth)
	assert.Equal('▀', first[0])
	assert.Equal(' ', first[1])
	assert.Equal('█', second[0])
	assert.Equal('▄', last[cpu.DisplayWidth-1])
}

func TestKeys(t *testing.T) {
	assert := assert.New(t)

	d := New(DefaultDevice, nil, 2)
	_, ok := d.Pressed()
	assert.False(ok)

	d.input <- 'W'
	d.input <- 'v'
	require.NoError(t, d.Update())

	assert.True(d.IsPressed(0x5))
	assert.True(d.IsPressed(0xf))
	assert.False(d.IsPressed(0x0))

	key, ok := d.Pressed()
	assert.True(ok)
	assert.Equal(byte(0x5), key)

	// Keys are released after the hold period.
	require.NoError(t, d.Update())
	assert.True(d.IsPressed(0x5))
	require.NoError(t, d.Update())
	assert.False(d.IsPressed(0x5))
	_, ok = d.Pressed()
	assert.False(ok)
}

func TestQuitKeys(t *testing.T) {
	for _, b := range []byte{keyEsc, keyInterrupt} {
		d := New(DefaultDevice, nil, 0)
		assert.False(t, d.ShouldClose())

		d.input <- b
		require.NoError(t, d.Update())
		assert.True(t, d.ShouldClose())
	}
}

func TestPresentSkipsClean(t *testing.T) {
	var out bytes.Buffer
	var snap cpu.Snapshot

	d := New(DefaultDevice, &out, 0)
	require.NoError(t, d.Present(&snap, false))
	assert.Zero(t, out.Len())

	require.NoError(t, d.Present(&snap, true))
	assert.NotZero(t, out.Len())
}

func TestShutdownWithoutStartup(t *testing.T) {
	assert.NoError(t, New(DefaultDevice, nil, 0).Shutdown())
}
