package buzzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTone(t *testing.T) {
	assert := assert.New(t)

	d := New("", 60)
	require.NoError(t, d.Startup())

	d.Tone(true)
	d.Tone(false)

	perFrame := SampleRate / 60
	assert.Equal(2*perFrame, d.Samples())
	assert.InDelta(2.0/60, d.Duration(), 0.001)

	half := SampleRate / Frequency / 2
	assert.Equal(Amplitude, d.samples[0])
	assert.Equal(Amplitude, d.samples[half-1])
	assert.Equal(-Amplitude, d.samples[half])

	for _, v := range d.samples[perFrame:] {
		assert.Zero(v)
	}
}

func TestStartupDiscards(t *testing.T) {
	d := New("", 60)
	d.Tone(true)
	require.NoError(t, d.Startup())
	assert.Zero(t, d.Samples())
}

func TestShutdownWritesFile(t *testing.T) {
	assert := assert.New(t)

	file := filepath.Join(t.TempDir(), "tone.wav")
	d := New(file, 60)
	require.NoError(t, d.Startup())

	for i := 0; i < 30; i++ {
		d.Tone(i < 10)
	}

	require.NoError(t, d.Shutdown())

	fd, err := os.Open(file)
	require.NoError(t, err)
	defer fd.Close()

	dec := wav.NewDecoder(fd)
	require.True(t, dec.IsValidFile())
	assert.Equal(uint32(SampleRate), dec.SampleRate)
	assert.Equal(uint16(1), dec.NumChans)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Len(buf.Data, d.Samples())
	assert.Equal(Amplitude, buf.Data[0])
}

func TestShutdownWithoutFile(t *testing.T) {
	d := New("", 60)
	d.Tone(true)
	assert.NoError(t, d.Shutdown())
}
