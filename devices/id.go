package devices

import "fmt"

// ID identifies a device.
// The upper 16 bits hold the device manufacturer id.
// The lower 16 bits hold the device serial number.
type ID uint32

// Known device ids.
const (
	Clock    = ID(0xc8c8<<16 | 0x0001)
	Keypad   = ID(0xc8c8<<16 | 0x0002)
	Screen   = ID(0xc8c8<<16 | 0x0003)
	Buzzer   = ID(0xc8c8<<16 | 0x0004)
	Terminal = ID(0xc8c8<<16 | 0x0005)
	Script   = ID(0xc8c8<<16 | 0x0006)
)

// NewID creates a new id with the given components.
func NewID(manufacturer, serial int) ID {
	return ID(manufacturer&0xffff)<<16 | ID(serial&0xffff)
}

// Manufacturer returns the manufacturer component of the Id.
func (id ID) Manufacturer() int {
	return int(id>>16) & 0xffff
}

// Serial returns the device serial number component of the Id.
func (id ID) Serial() int {
	return int(id) & 0xffff
}

func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Manufacturer(), id.Serial())
}
