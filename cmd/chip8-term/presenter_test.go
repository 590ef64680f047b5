package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/script"
	"github.com/hexaflex/chip8/vm"
)

func TestHeadlessScriptedRun(t *testing.T) {
	assert := assert.New(t)

	//   $200 LD V1, K
	//   $202 LD F, V1
	//   $204 DRW V0, V0, 5
	//   $206 JP $206
	rom := []byte{0xf1, 0x0a, 0xf1, 0x29, 0xd0, 0x05, 0x12, 0x06}

	sd, err := script.Load("one.star", "def keys(frame):\n    return [1] if frame == 3 else []\n")
	require.NoError(t, err)

	present := &limiter{limit: 10}
	m, err := vm.New(vm.DefaultConfig(), nil, &scripted{Device: sd}, present, nil)
	require.NoError(t, err)
	require.NoError(t, m.Load(rom))
	require.NoError(t, m.Startup())
	defer m.Shutdown()

	require.NoError(t, m.RunFrames(100))
	assert.Equal(10, present.frames)
	assert.True(present.ShouldClose())
	assert.Equal(byte(1), m.CPU().V[1])

	// Glyph 1 is 0x20 0x60 0x20 0x20 0x70.
	assert.False(present.last.At(0, 0))
	assert.True(present.last.At(2, 0))
	assert.True(present.last.At(1, 1))
	assert.True(present.last.At(3, 4))
}

func TestLimiterWithoutLimit(t *testing.T) {
	var snap cpu.Snapshot
	l := &limiter{}
	require.NoError(t, l.Present(&snap, true))
	assert.False(t, l.ShouldClose())
}
