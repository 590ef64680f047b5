package script

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pulse = `
def keys(frame):
    if frame % 4 < 2:
        return [0x5, 0xa]
    return None
`

func TestKeys(t *testing.T) {
	assert := assert.New(t)

	d, err := Load("pulse.star", pulse)
	require.NoError(t, err)
	require.NoError(t, d.Startup())

	want := []bool{true, true, false, false, true}
	for frame, down := range want {
		require.NoError(t, d.Update())
		assert.Equal(down, d.IsPressed(0x5), "frame %d", frame)
		assert.Equal(down, d.IsPressed(0xa), "frame %d", frame)
		assert.False(d.IsPressed(0x0), "frame %d", frame)

		key, ok := d.Pressed()
		assert.Equal(down, ok)
		if ok {
			assert.Equal(byte(0x5), key)
		}
	}

	assert.Equal(len(want), d.Frame())

	require.NoError(t, d.Startup())
	assert.Zero(d.Frame())
}

func TestPredeclared(t *testing.T) {
	d, err := Load("all.star", "def keys(frame):\n    return range(KEY_COUNT)\n")
	require.NoError(t, err)
	require.NoError(t, d.Update())

	for key := byte(0); key < 16; key++ {
		assert.True(t, d.IsPressed(key))
	}
}

func TestNoKeysFunc(t *testing.T) {
	_, err := Load("empty.star", "x = 1\n")
	assert.True(t, errors.Is(err, ErrNoKeysFunc))
}

func TestSyntaxError(t *testing.T) {
	_, err := Load("bad.star", "def keys(frame)\n")
	assert.Error(t, err)
}

func TestInvalidKeys(t *testing.T) {
	for _, src := range []string{
		"def keys(frame):\n    return [16]\n",
		"def keys(frame):\n    return [-1]\n",
		"def keys(frame):\n    return ['a']\n",
		"def keys(frame):\n    return 3\n",
	} {
		d, err := Load("invalid.star", src)
		require.NoError(t, err)

		err = d.Update()
		assert.True(t, errors.Is(err, ErrInvalidKey), src)
	}
}

func TestRuntimeError(t *testing.T) {
	d, err := Load("fail.star", "def keys(frame):\n    return 1 // 0\n")
	require.NoError(t, err)
	assert.Error(t, d.Update())
}
