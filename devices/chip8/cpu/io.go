package cpu

import (
	"math/rand"
)

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad is the input source queried by the key instructions.
// Keys are identified by their hex value 0x0-0xF.
type Keypad interface {
	// IsPressed returns true if the given key is currently held down.
	IsPressed(key byte) bool

	// Pressed returns any key that is currently held down.
	Pressed() (byte, bool)

	// Update refreshes the key state. It is called once per frame by the driver.
	Update() error
}

// Entropy supplies the random bytes used by the RND instruction.
type Entropy interface {
	Byte() byte
}

type randEntropy struct {
	rng *rand.Rand
}

// NewEntropy returns a pseudo random entropy source with the given seed.
// Equal seeds yield equal byte sequences.
func NewEntropy(seed int64) Entropy {
	return &randEntropy{rng: rand.New(rand.NewSource(seed))}
}

func (e *randEntropy) Byte() byte {
	return byte(e.rng.Intn(256))
}

// noKeys is used when no keypad is connected.
type noKeys struct{}

func (noKeys) IsPressed(byte) bool   { return false }
func (noKeys) Pressed() (byte, bool) { return 0, false }
func (noKeys) Update() error         { return nil }
