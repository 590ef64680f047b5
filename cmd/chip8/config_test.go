package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBreakpoints(t *testing.T) {
	set, err := parseBreakpoints("200, $2a4,0x3F0,,")
	require.NoError(t, err)
	assert.Equal(t, map[uint16]bool{0x200: true, 0x2a4: true, 0x3f0: true}, set)

	set, err = parseBreakpoints("")
	require.NoError(t, err)
	assert.Empty(t, set)

	for _, v := range []string{"1000", "xyz", "-1"} {
		_, err := parseBreakpoints(v)
		assert.Error(t, err, v)
	}
}

func TestPrettyFrequency(t *testing.T) {
	assert.Equal(t, "600.00 Hz", prettyFrequency(600))
	assert.Equal(t, "1.50 KHz", prettyFrequency(1500))
	assert.Equal(t, "2.00 MHz", prettyFrequency(2e6))
}
