package vm

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/chip8/clock"
)

// DefaultInstructionsPerFrame yields roughly 600 instructions per second at 60Hz.
const DefaultInstructionsPerFrame = 10

// Config defines machine configuration.
type Config struct {
	InstructionsPerFrame int   // Number of CPU steps executed per frame.
	FrameRate            int   // Frames per second; also the timer frequency.
	Seed                 int64 // Seed for the RND instruction. Only used if FixedSeed is set.
	FixedSeed            bool  // Use Seed instead of a time based seed.
}

// SetSeed selects a fixed seed for the RND instruction. Any value,
// including 0, gives a reproducible run.
func (c *Config) SetSeed(seed int64) {
	c.Seed = seed
	c.FixedSeed = true
}

// seed returns the seed the entropy source is created with.
func (c Config) seed() int64 {
	if c.FixedSeed {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		InstructionsPerFrame: DefaultInstructionsPerFrame,
		FrameRate:            clock.DefaultRate,
	}
}

// Validate returns an error if the configuration can not be used.
func (c Config) Validate() error {
	if c.InstructionsPerFrame < 1 {
		return errors.Wrap(ErrInvalidConfig, f("instructions per frame must be positive, have %d", c.InstructionsPerFrame))
	}
	if c.FrameRate < 1 {
		return errors.Wrap(ErrInvalidConfig, f("frame rate must be positive, have %d", c.FrameRate))
	}
	return nil
}
