// Package keypad maps the host keyboard onto the 16 key CHIP-8 keypad.
package keypad

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

// Layout maps each CHIP-8 key to a host key. The hex keypad
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// sits on the left hand side of a QWERTY keyboard.
var Layout = [cpu.KeyCount]glfw.Key{
	0x1: glfw.Key1, 0x2: glfw.Key2, 0x3: glfw.Key3, 0xc: glfw.Key4,
	0x4: glfw.KeyQ, 0x5: glfw.KeyW, 0x6: glfw.KeyE, 0xd: glfw.KeyR,
	0x7: glfw.KeyA, 0x8: glfw.KeyS, 0x9: glfw.KeyD, 0xe: glfw.KeyF,
	0xa: glfw.KeyZ, 0x0: glfw.KeyX, 0xb: glfw.KeyC, 0xf: glfw.KeyV,
}

type state struct {
	pressed     bool
	justPressed bool
}

// Device polls the keyboard of a glfw window.
type Device struct {
	window      *glfw.Window
	state       [cpu.KeyCount]state
	initialized bool
}

var _ devices.Device = &Device{}
var _ cpu.Keypad = &Device{}

// New creates a new device reading keys from the given window.
func New(window *glfw.Window) *Device {
	return &Device{window: window}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.Keypad
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	d.reset()
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	d.initialized = false
	d.reset()
	return nil
}

// Update updates keypad state. glfw.PollEvents must have been called
// for the state to be current.
func (d *Device) Update() error {
	if !d.initialized {
		return nil
	}

	for key, hostKey := range Layout {
		ks := d.state[key]
		pressed := d.window.GetKey(hostKey) == glfw.Press

		ks.justPressed = pressed && !ks.pressed
		ks.pressed = pressed

		d.state[key] = ks
	}

	return nil
}

// IsPressed returns true if the given key is held down.
func (d *Device) IsPressed(key byte) bool {
	return d.state[key&0xf].pressed
}

// Pressed returns a key that went down since the previous update. Failing
// that, the lowest key that is held down is returned.
func (d *Device) Pressed() (byte, bool) {
	for key, ks := range d.state {
		if ks.justPressed {
			return byte(key), true
		}
	}

	for key, ks := range d.state {
		if ks.pressed {
			return byte(key), true
		}
	}

	return 0, false
}

func (d *Device) reset() {
	for key := range d.state {
		d.state[key] = state{}
	}
}
