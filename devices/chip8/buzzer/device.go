// Package buzzer records the CHIP-8 tone to a WAV file.
//
// The machine reports once per frame whether the sound timer is running.
// Each report is turned into one frame's worth of square wave or silence,
// and the whole recording is encoded when the device shuts down.
package buzzer

import (
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Output properties.
const (
	SampleRate = 44100 // Samples per second.
	BitDepth   = 16    // Bits per sample.
	Frequency  = 440   // Tone frequency in herz.
	Amplitude  = 0x2000
	pcmFormat  = 1
)

// Device buffers the tone as 16-bit mono PCM.
type Device struct {
	filename  string
	frameRate int
	samples   []int
	phase     int
}

var _ devices.Device = &Device{}

// New creates a new device which writes to filename on shutdown.
// frameRate is the number of Tone calls per second.
func New(filename string, frameRate int) *Device {
	return &Device{
		filename:  filename,
		frameRate: frameRate,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.Buzzer
}

// Startup discards anything recorded so far.
func (d *Device) Startup() error {
	d.samples = d.samples[:0]
	d.phase = 0
	return nil
}

// Shutdown writes the recording to the output file.
func (d *Device) Shutdown() error {
	if len(d.filename) == 0 {
		return nil
	}

	fd, err := os.Create(d.filename)
	if err != nil {
		return err
	}

	defer fd.Close()

	if err := d.Encode(fd); err != nil {
		return errors.Wrapf(err, "encode %s", d.filename)
	}

	log.Printf("%s wrote %.2fs of audio to %s", d.ID(), d.Duration(), d.filename)
	return nil
}

// Tone appends one frame of audio: a square wave if on is set, silence
// otherwise.
func (d *Device) Tone(on bool) {
	n := SampleRate / d.frameRate
	half := SampleRate / Frequency / 2

	for i := 0; i < n; i++ {
		if !on {
			d.samples = append(d.samples, 0)
			continue
		}

		if (d.phase/half)%2 == 0 {
			d.samples = append(d.samples, Amplitude)
		} else {
			d.samples = append(d.samples, -Amplitude)
		}
		d.phase++
	}

	if !on {
		d.phase = 0
	}
}

// Samples returns the number of samples recorded.
func (d *Device) Samples() int {
	return len(d.samples)
}

// Duration returns the length of the recording in seconds.
func (d *Device) Duration() float64 {
	return float64(len(d.samples)) / SampleRate
}

// Encode writes the recording as a WAV stream.
func (d *Device) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, BitDepth, 1, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           d.samples,
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
