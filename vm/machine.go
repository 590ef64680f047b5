// Package vm drives a CHIP-8 CPU at a fixed frame rate and connects it
// to the host's input, display and audio devices.
package vm

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/clock"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

// Presenter is the sink the display contents are handed to once per frame.
type Presenter interface {
	// Present receives the display contents. dirty is false if nothing
	// changed since the previous frame.
	Present(snap *cpu.Snapshot, dirty bool) error

	// ShouldClose returns true once the host asked to end the session.
	ShouldClose() bool
}

// Speaker is told once per frame whether the sound timer is running.
type Speaker interface {
	Tone(on bool)
}

// Machine controls the execution of a CPU.
type Machine struct {
	config     Config
	cpu        *cpu.CPU
	keypad     cpu.Keypad
	presenter  Presenter
	speaker    Speaker
	clock      *clock.Device
	devices    devices.Map
	start      time.Time
	cycleCount uint64
	frameCount uint64
	running    bool
	loaded     bool
}

// New creates a new machine. keypad, presenter and speaker are optional.
// Any of them that implement devices.Device are started and stopped along
// with the machine.
func New(config Config, trace cpu.TraceFunc, keypad cpu.Keypad, presenter Presenter, speaker Speaker) (*Machine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		config:    config,
		cpu:       cpu.New(trace, keypad, cpu.NewEntropy(config.seed())),
		keypad:    keypad,
		presenter: presenter,
		speaker:   speaker,
		clock:     clock.New(config.FrameRate),
		running:   true,
	}

	m.devices.Connect(m.clock)
	for _, v := range []interface{}{keypad, presenter, speaker} {
		if dev, ok := v.(devices.Device); ok {
			m.devices.Connect(dev)
		}
	}

	return m, nil
}

// Connect adds a device which is started and stopped along with the
// machine. Returns false if a device with the same ID is already connected.
func (m *Machine) Connect(dev devices.Device) bool {
	return m.devices.Connect(dev)
}

// CPU returns the machine's processor.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// Config returns the machine configuration.
func (m *Machine) Config() Config {
	return m.config
}

// Load resets the cpu and loads the given program. A rejected program
// leaves the machine, and any program it was running, untouched.
func (m *Machine) Load(rom []byte) error {
	if err := cpu.CheckROM(rom); err != nil {
		return errors.Wrap(err, "load")
	}

	m.cpu.Reset()
	m.loaded = false

	if err := m.cpu.Load(rom); err != nil {
		return errors.Wrap(err, "load")
	}

	m.loaded = true
	m.setRunning(m.running)
	return nil
}

// Startup initializes the connected devices.
func (m *Machine) Startup() error {
	m.setRunning(m.running)
	return m.devices.Startup()
}

// Shutdown disposes of device resources.
func (m *Machine) Shutdown() error {
	return m.devices.Shutdown()
}

// Running returns true if the CPU is currently running.
func (m *Machine) Running() bool {
	return m.running
}

// Frequency returns the current instruction rate in herz.
func (m *Machine) Frequency() float64 {
	if !m.running {
		return 0
	}
	return float64(m.cycleCount) / time.Since(m.start).Seconds()
}

// Frames returns the number of frames run so far.
func (m *Machine) Frames() uint64 {
	return m.frameCount
}

// ToggleRun starts or stops program execution.
func (m *Machine) ToggleRun() {
	m.setRunning(!m.running)
}

// Start resumes execution of the program.
func (m *Machine) Start() {
	m.setRunning(true)
}

// Stop pauses execution of the program. Frames keep being presented.
func (m *Machine) Stop() {
	m.setRunning(false)
}

// Step performs a single execution step, regardless of the run state.
func (m *Machine) Step() error {
	if !m.loaded {
		return ErrNotLoaded
	}

	m.cycleCount++
	return m.cpu.Step()
}

// RunFrame runs one frame: the keypad is updated, the configured number of
// instructions is executed, the timers tick once and the display and sound
// state are handed to the presenter and speaker.
//
// A CPU error stops the machine and is returned as is.
func (m *Machine) RunFrame() error {
	if !m.loaded {
		return ErrNotLoaded
	}

	if m.keypad != nil {
		if err := m.keypad.Update(); err != nil {
			return errors.Wrap(err, "keypad")
		}
	}

	if m.running {
		// The trace handler may stop the machine halfway through a frame.
		for i := 0; i < m.config.InstructionsPerFrame && m.running; i++ {
			if err := m.Step(); err != nil {
				m.setRunning(false)
				return err
			}
		}

		if m.speaker != nil {
			m.speaker.Tone(m.cpu.SoundActive())
		}

		m.cpu.Frame()
	}

	m.frameCount++

	if m.presenter != nil {
		display := m.cpu.Display()
		snap := display.Snapshot()
		if err := m.presenter.Present(&snap, display.TakeDirty()); err != nil {
			return errors.Wrap(err, "present")
		}
	}

	return nil
}

// RunFrames runs up to n frames back to back, without pacing.
// It returns early if the presenter asks to close.
func (m *Machine) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := m.RunFrame(); err != nil {
			return err
		}

		if m.closing() {
			return nil
		}
	}
	return nil
}

// Run runs frames at the configured frame rate until ctx is done, the
// presenter asks to close or the CPU fails. Startup must have been called.
func (m *Machine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.clock.C():
		}

		if err := m.RunFrame(); err != nil {
			return err
		}

		if m.closing() {
			return nil
		}
	}
}

func (m *Machine) closing() bool {
	return m.presenter != nil && m.presenter.ShouldClose()
}

// setRunning determines if the CPU is running or is paused.
func (m *Machine) setRunning(v bool) {
	m.running = v
	m.start = time.Now()
	m.cycleCount = 0
}
