// Package script drives the keypad from a Starlark program.
//
// The program must define a function keys(frame) which is called once per
// frame and returns the keys held during that frame, as an iterable of
// integers in the range 0-15. None means no keys are held.
//
//	def keys(frame):
//	    if frame % 20 < 10:
//	        return [0x5]
//	    return None
package script

import (
	"log"

	"github.com/pkg/errors"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/translate"
)

var f = translate.From

// Known errors.
var (
	ErrNoKeysFunc = errors.New(f("script does not define keys(frame)"))
	ErrInvalidKey = errors.New(f("invalid key"))
)

// Device is a keypad whose state is computed by a script.
type Device struct {
	name   string
	thread *starlark.Thread
	keys   starlark.Callable
	frame  int
	down   [cpu.KeyCount]bool
}

var _ devices.Device = &Device{}
var _ cpu.Keypad = &Device{}

// Load compiles and runs the top level of the given script. src may be
// anything starlark.ExecFileOptions accepts: nil to read the named file,
// a string or a byte slice.
func Load(name string, src interface{}) (*Device, error) {
	d := &Device{name: name}
	d.thread = &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Println(d.ID(), msg)
		},
	}

	predeclared := starlark.StringDict{
		"KEY_COUNT": starlark.MakeInt(cpu.KeyCount),
	}

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, d.thread, name, src, predeclared)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}

	keys, ok := globals["keys"].(starlark.Callable)
	if !ok {
		return nil, errors.Wrapf(ErrNoKeysFunc, "%s", name)
	}

	d.keys = keys
	return d, nil
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.Script
}

// Startup rewinds the script to frame 0.
func (d *Device) Startup() error {
	d.frame = 0
	d.down = [cpu.KeyCount]bool{}
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// Frame returns the number of the next frame to be evaluated.
func (d *Device) Frame() int {
	return d.frame
}

// Update calls keys(frame) and records the keys it returns.
func (d *Device) Update() error {
	frame := d.frame
	d.frame++

	v, err := starlark.Call(d.thread, d.keys, starlark.Tuple{starlark.MakeInt(frame)}, nil)
	if err != nil {
		return errors.Wrapf(err, "%s: frame %d", d.name, frame)
	}

	var down [cpu.KeyCount]bool

	if v != starlark.None {
		iter := starlark.Iterate(v)
		if iter == nil {
			return errors.Wrapf(ErrInvalidKey, "%s: frame %d: keys returned %s", d.name, frame, v.Type())
		}
		defer iter.Done()

		var x starlark.Value
		for iter.Next(&x) {
			key, err := starlark.AsInt32(x)
			if err != nil || key < 0 || key >= cpu.KeyCount {
				return errors.Wrapf(ErrInvalidKey, "%s: frame %d: %s", d.name, frame, x)
			}
			down[key] = true
		}
	}

	d.down = down
	return nil
}

// IsPressed returns true if the given key is held down.
func (d *Device) IsPressed(key byte) bool {
	return d.down[key&0xf]
}

// Pressed returns the lowest key that is held down.
func (d *Device) Pressed() (byte, bool) {
	for key, v := range d.down {
		if v {
			return byte(key), true
		}
	}
	return 0, false
}
