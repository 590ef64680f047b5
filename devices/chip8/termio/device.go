// Package termio runs the CHIP-8 display and keypad on a terminal.
//
// The terminal is put in raw mode and the display is drawn with half block
// characters. Terminals only report key presses, never releases, so a key
// is held for a fixed number of frames after each press.
package termio

import (
	"io"
	"log"
	"time"

	"github.com/pkg/term"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

// Default properties.
const (
	DefaultDevice     = "/dev/tty"
	DefaultHoldFrames = 6
	pollTimeout       = 100 * time.Millisecond
)

// Key codes that end the session.
const (
	keyInterrupt = 3
	keyEsc       = 27
)

// Layout maps host keys onto the hex keypad, the same way the window
// frontend does.
var Layout = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Device is both the keypad and the presenter of a terminal session.
type Device struct {
	path       string
	out        io.Writer
	term       *term.Term
	input      chan byte
	endPoll    chan struct{}
	done       chan struct{}
	held       [cpu.KeyCount]int
	holdFrames int
	quit       bool
}

var _ devices.Device = &Device{}
var _ cpu.Keypad = &Device{}

// New creates a new device reading keys from the terminal at path and
// drawing to out. Each key press is held for holdFrames frames.
func New(path string, out io.Writer, holdFrames int) *Device {
	if holdFrames < 1 {
		holdFrames = DefaultHoldFrames
	}

	return &Device{
		path:       path,
		out:        out,
		input:      make(chan byte, 64),
		holdFrames: holdFrames,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.Terminal
}

// Startup puts the terminal in raw mode and starts reading keys.
func (d *Device) Startup() error {
	t, err := term.Open(d.path, term.RawMode, term.ReadTimeout(pollTimeout))
	if err != nil {
		return err
	}

	d.term = t
	d.endPoll = make(chan struct{})
	d.done = make(chan struct{})
	go d.poll()

	_, err = io.WriteString(d.out, clearScreen+hideCursor)
	return err
}

// Shutdown stops reading keys and restores the terminal.
func (d *Device) Shutdown() error {
	if d.term == nil {
		return nil
	}

	close(d.endPoll)
	<-d.done

	io.WriteString(d.out, showCursor)

	if err := d.term.Restore(); err != nil {
		d.term.Close()
		d.term = nil
		return err
	}

	err := d.term.Close()
	d.term = nil
	return err
}

// poll reads from the terminal until Shutdown is called. Reads time out
// regularly so the end signal is noticed.
func (d *Device) poll() {
	defer close(d.done)

	var buf [16]byte
	for {
		select {
		case <-d.endPoll:
			return
		default:
		}

		n, err := d.term.Read(buf[:])
		if err != nil && err != io.EOF {
			log.Println(d.ID(), err)
			return
		}

		for _, b := range buf[:n] {
			select {
			case d.input <- b:
			default:
			}
		}
	}
}

// Update consumes pending input. Held keys count down by one frame.
func (d *Device) Update() error {
	for key := range d.held {
		if d.held[key] > 0 {
			d.held[key]--
		}
	}

	for {
		select {
		case b := <-d.input:
			d.press(b)
		default:
			return nil
		}
	}
}

func (d *Device) press(b byte) {
	switch b {
	case keyInterrupt, keyEsc:
		d.quit = true
		return
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	if key, ok := Layout[b]; ok {
		d.held[key] = d.holdFrames
	}
}

// IsPressed returns true if the given key is held down.
func (d *Device) IsPressed(key byte) bool {
	return d.held[key&0xf] > 0
}

// Pressed returns the lowest key that is held down.
func (d *Device) Pressed() (byte, bool) {
	for key, n := range d.held {
		if n > 0 {
			return byte(key), true
		}
	}
	return 0, false
}

// Present draws the display if it changed.
func (d *Device) Present(snap *cpu.Snapshot, dirty bool) error {
	if !dirty {
		return nil
	}
	return Render(d.out, snap)
}

// ShouldClose returns true once Esc or Ctrl-C was pressed.
func (d *Device) ShouldClose() bool {
	return d.quit
}
